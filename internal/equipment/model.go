package equipment

import (
	"net/http"
	"time"

	"github.com/labgrid/equipment-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound     = apperror.New(http.StatusNotFound, "equipment not found")
	ErrNameRequired = apperror.New(http.StatusBadRequest, "equipment name is required")
	ErrNameTaken    = apperror.New(http.StatusConflict, "equipment name already exists")
)

// Equipment represents a bookable instrument, such as a microscope or a
// chromatograph.
type Equipment struct {
	ID            string // UUID
	Name          string
	Category      string // e.g. 显微镜, 色谱, 离心机
	Location      string
	ContactUserID *string
	ContactName   string
	Description   *string
	PhotoFileID   *string
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Filter defines filter options for listing equipment.
type Filter struct {
	Name     string
	Category string
	Location string
	IsActive *bool

	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}

// UpdateRequest holds fields that may be changed on existing equipment.
// Nil means "leave unchanged".
type UpdateRequest struct {
	Name          *string
	Category      *string
	Location      *string
	ContactUserID *string
	Description   *string
	PhotoFileID   *string
	IsActive      *bool
}
