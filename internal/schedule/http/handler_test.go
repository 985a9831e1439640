package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/labgrid/equipment-booking-backend/internal/equipment"
	"github.com/labgrid/equipment-booking-backend/internal/schedule"
)

const testEquipmentID = "1b4e28ba-2fa1-11d2-883f-0016d3cca427"

type fakeBookings struct {
	bookings []schedule.ExistingBooking
}

func (f *fakeBookings) InRange(_ context.Context, equipmentID string, from, to time.Time) ([]schedule.ExistingBooking, error) {
	var out []schedule.ExistingBooking
	for _, b := range f.bookings {
		if equipmentID != "" && b.EquipmentID != equipmentID {
			continue
		}
		if b.Start.Before(to) && b.End.After(from) {
			out = append(out, b)
		}
	}
	return out, nil
}

type fakeEquipment struct{}

func (fakeEquipment) GetByID(_ context.Context, id string) (*equipment.Equipment, error) {
	if id != testEquipmentID {
		return nil, equipment.ErrNotFound
	}
	return &equipment.Equipment{ID: id, Name: "扫描电子显微镜", Category: "电镜", IsActive: true}, nil
}

type fakeProjects struct{}

func (fakeProjects) ActiveInfos(_ context.Context) ([]schedule.ProjectInfo, error) {
	return []schedule.ProjectInfo{
		{
			Name:         "新型纳米材料表征研究",
			Category:     "材料科学",
			Keywords:     []string{"纳米", "表征", "材料"},
			Members:      []string{"王小明", "李华"},
			LastActiveAt: time.Now().Add(-24 * time.Hour),
		},
	}, nil
}

func newTestRouter(bookings []schedule.ExistingBooking) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewHandler(&fakeBookings{bookings: bookings}, fakeEquipment{}, fakeProjects{})
	noAuth := func(c *gin.Context) { c.Next() }
	RegisterRoutes(r.Group("/v1"), h, noAuth)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGridEndpoint(t *testing.T) {
	day := time.Now().AddDate(0, 0, 1)
	date := day.Format("2006-01-02")
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)

	r := newTestRouter([]schedule.ExistingBooking{
		{
			ID:          "b-1",
			EquipmentID: testEquipmentID,
			Start:       dayStart.Add(9 * time.Hour),
			End:         dayStart.Add(11 * time.Hour),
			Status:      schedule.StatusConfirmed,
		},
	})

	w := doJSON(t, r, http.MethodPost, "/v1/schedule/grid", gin.H{
		"equipment_id": testEquipmentID,
		"date":         date,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp GridResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, date, resp.Date)
	require.Len(t, resp.Cells, schedule.SlotsPerDay)

	states := make(map[string]schedule.SlotState, len(resp.Cells))
	for _, cell := range resp.Cells {
		states[cell.Label] = cell.State
	}
	require.Equal(t, schedule.SlotBooked, states["09:00"])
	require.Equal(t, schedule.SlotBooked, states["10:30"])
}

func TestGridEndpointRejectsBadDate(t *testing.T) {
	r := newTestRouter(nil)

	w := doJSON(t, r, http.MethodPost, "/v1/schedule/grid", gin.H{
		"equipment_id": testEquipmentID,
		"date":         "2024/03/15",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestConflictsEndpoint(t *testing.T) {
	r := newTestRouter(nil)

	start := time.Date(2030, 3, 15, 9, 0, 0, 0, time.UTC)

	w := doJSON(t, r, http.MethodPost, "/v1/schedule/conflicts", gin.H{
		"slots": []gin.H{
			{"start": start, "end": start.Add(2 * time.Hour)},
			{"start": start.Add(time.Hour), "end": start.Add(3 * time.Hour)},
		},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp schedule.ConflictDetection
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.True(t, resp.HasConflict)
	require.Equal(t, schedule.ConflictOverlapSelf, resp.Type)
	require.NotEmpty(t, resp.Message)
}

func TestRecommendationsEndpoint(t *testing.T) {
	r := newTestRouter(nil)

	from := time.Now().UTC().AddDate(0, 0, 1).Truncate(24 * time.Hour)
	to := from.AddDate(0, 0, 3)

	path := fmt.Sprintf("/v1/schedule/recommendations?equipment_id=%s&from=%s&to=%s",
		testEquipmentID,
		from.Format(time.RFC3339),
		to.Format(time.RFC3339),
	)

	w := doJSON(t, r, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp RecommendationsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Recommendations, schedule.DefaultRecommendationLimit)
	for _, rec := range resp.Recommendations {
		require.NotEmpty(t, rec.Reason)
		require.GreaterOrEqual(t, rec.Score, 0)
		require.LessOrEqual(t, rec.Score, 100)
	}
}

func TestRecommendationsEndpointRejectsWideRange(t *testing.T) {
	r := newTestRouter(nil)

	from := time.Now().UTC().AddDate(0, 0, 1)
	to := from.AddDate(0, 2, 0)

	path := fmt.Sprintf("/v1/schedule/recommendations?equipment_id=%s&from=%s&to=%s",
		testEquipmentID,
		from.Format(time.RFC3339),
		to.Format(time.RFC3339),
	)

	w := doJSON(t, r, http.MethodGet, path, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDurationEndpoint(t *testing.T) {
	r := newTestRouter(nil)

	path := "/v1/schedule/duration?purpose=" + "%E8%A7%82%E5%AF%9F" + "&equipment_id=" + testEquipmentID

	w := doJSON(t, r, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp schedule.DurationSuggestion
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Positive(t, resp.RecommendedHours)
	require.NotEmpty(t, resp.Reason)
}

func TestDurationEndpointUnknownEquipment(t *testing.T) {
	r := newTestRouter(nil)

	path := "/v1/schedule/duration?purpose=test&equipment_id=9b4e28ba-2fa1-11d2-883f-0016d3cca427"

	w := doJSON(t, r, http.MethodGet, path, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestFormSuggestionsEndpoint(t *testing.T) {
	r := newTestRouter(nil)

	w := doJSON(t, r, http.MethodPost, "/v1/schedule/form-suggestions", gin.H{
		"equipment_id": testEquipmentID,
		"purpose":      "纳米材料表征",
		"booker_name":  "王小明",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp schedule.FormSuggestions
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Projects)
	require.Equal(t, "新型纳米材料表征研究", resp.Projects[0].Name)
	require.NotNil(t, resp.SampleInfo)
	require.NotEmpty(t, resp.CompletionTips)
}

func TestHeatmapEndpoint(t *testing.T) {
	base := time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC) // Friday

	r := newTestRouter([]schedule.ExistingBooking{
		{
			ID:          "b-1",
			EquipmentID: testEquipmentID,
			Start:       base,
			End:         base.Add(2 * time.Hour),
			Status:      schedule.StatusCompleted,
		},
	})

	path := fmt.Sprintf("/v1/schedule/heatmap?equipment_id=%s&from=%s&to=%s",
		testEquipmentID,
		base.AddDate(0, 0, -7).Format(time.RFC3339),
		base.AddDate(0, 0, 7).Format(time.RFC3339),
	)

	w := doJSON(t, r, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp HeatmapResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Cells, 7*24)

	var total int
	for _, cell := range resp.Cells {
		if cell.Weekday == int(time.Friday) && (cell.Hour == 9 || cell.Hour == 10) {
			require.Equal(t, 1, cell.Count)
		}
		total += cell.Count
	}
	require.Equal(t, 2, total)
}
