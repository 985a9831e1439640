package http

import (
	"time"

	"github.com/labgrid/equipment-booking-backend/internal/pkg/request"
	"github.com/labgrid/equipment-booking-backend/internal/project"
)

// ListProjectsRequest defines query parameters for listing projects.
type ListProjectsRequest struct {
	request.ListParams
	Name     string `form:"name"`
	Category string `form:"category"`
	Member   string `form:"member"`
	IsActive *bool  `form:"is_active"`
	SortBy   string `form:"sort_by" binding:"omitempty,oneof=name category last_active_at created_at"`
}

// Validate performs custom validation for ListProjectsRequest.
func (r *ListProjectsRequest) Validate() error {
	return nil
}

// ProjectResponse is the shape of project data returned in API responses.
type ProjectResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Category     string    `json:"category"`
	Keywords     []string  `json:"keywords"`
	Members      []string  `json:"members"`
	LastActiveAt time.Time `json:"last_active_at"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ProjectTag is a brief representation of a project.
type ProjectTag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// NewProjectResponse converts a domain project to the API response shape.
func NewProjectResponse(p *project.Project) ProjectResponse {
	return ProjectResponse{
		ID:           p.ID,
		Name:         p.Name,
		Category:     p.Category,
		Keywords:     p.Keywords,
		Members:      p.Members,
		LastActiveAt: p.LastActiveAt,
		IsActive:     p.IsActive,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

// CreateProjectRequest defines the payload for creating a project.
type CreateProjectRequest struct {
	Name     string   `json:"name" binding:"required"`
	Category string   `json:"category"`
	Keywords []string `json:"keywords"`
	Members  []string `json:"members"`
}

// Validate performs custom validation for CreateProjectRequest.
func (r *CreateProjectRequest) Validate() error {
	return nil
}

// UpdateProjectRequest defines fields allowed to be updated via PATCH.
type UpdateProjectRequest struct {
	Name     *string   `json:"name"`
	Category *string   `json:"category"`
	Keywords *[]string `json:"keywords"`
	Members  *[]string `json:"members"`
	IsActive *bool     `json:"is_active"`
}

// Validate performs custom validation for UpdateProjectRequest.
func (r *UpdateProjectRequest) Validate() error {
	return nil
}
