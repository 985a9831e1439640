package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/labgrid/equipment-booking-backend/internal/auth"
)

func TestJWTRoundTrip(t *testing.T) {
	m := auth.NewJWTManager("test-secret", time.Minute)

	token, err := m.GenerateAccessToken("user-1", "wang@lab.edu.cn")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := m.ParseAndValidate(token)
	require.NoError(t, err)
	require.Equal(t, "user-1", claims.UserID)
	require.Equal(t, "wang@lab.edu.cn", claims.Email)
}

func TestJWTRejectsWrongSecret(t *testing.T) {
	m := auth.NewJWTManager("secret-a", time.Minute)
	token, err := m.GenerateAccessToken("user-1", "wang@lab.edu.cn")
	require.NoError(t, err)

	other := auth.NewJWTManager("secret-b", time.Minute)
	_, err = other.ParseAndValidate(token)
	require.Error(t, err)
}

func TestJWTRejectsExpiredToken(t *testing.T) {
	m := auth.NewJWTManager("test-secret", -time.Minute)
	token, err := m.GenerateAccessToken("user-1", "wang@lab.edu.cn")
	require.NoError(t, err)

	_, err = m.ParseAndValidate(token)
	require.Error(t, err)
}
