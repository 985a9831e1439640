package project

import (
	"net/http"
	"time"

	"github.com/labgrid/equipment-booking-backend/internal/pkg/apperror"
	"github.com/labgrid/equipment-booking-backend/internal/schedule"
)

var (
	ErrNotFound     = apperror.New(http.StatusNotFound, "project not found")
	ErrNameRequired = apperror.New(http.StatusBadRequest, "project name is required")
	ErrNameTaken    = apperror.New(http.StatusConflict, "project name already exists")
)

// Project represents a research project that bookings can be attributed to.
// Keywords drive relevance matching against booking purposes; Members holds
// the display names of participating researchers.
type Project struct {
	ID           string // UUID
	Name         string
	Category     string
	Keywords     []string
	Members      []string
	LastActiveAt time.Time
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Info converts the project to the shape the suggestion engine consumes.
func (p *Project) Info() schedule.ProjectInfo {
	return schedule.ProjectInfo{
		Name:         p.Name,
		Category:     p.Category,
		Keywords:     p.Keywords,
		Members:      p.Members,
		LastActiveAt: p.LastActiveAt,
	}
}

// Filter defines filter options for listing projects.
type Filter struct {
	Name     string
	Category string
	Member   string
	IsActive *bool

	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}

// UpdateRequest holds fields that may be changed on an existing project.
// Nil means "leave unchanged".
type UpdateRequest struct {
	Name     *string
	Category *string
	Keywords *[]string
	Members  *[]string
	IsActive *bool
}
