package http

import (
	"time"

	"github.com/labgrid/equipment-booking-backend/internal/equipment"
	"github.com/labgrid/equipment-booking-backend/internal/file"
	"github.com/labgrid/equipment-booking-backend/internal/pkg/request"
)

// ListEquipmentRequest defines query parameters for listing equipment.
type ListEquipmentRequest struct {
	request.ListParams
	Name     string `form:"name"`
	Category string `form:"category"`
	Location string `form:"location"`
	IsActive *bool  `form:"is_active"`
	SortBy   string `form:"sort_by" binding:"omitempty,oneof=name category created_at"`
}

// Validate performs custom validation for ListEquipmentRequest.
func (r *ListEquipmentRequest) Validate() error {
	return nil
}

// EquipmentResponse is the shape of equipment data returned in API responses.
type EquipmentResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Location    string    `json:"location"`
	ContactID   *string   `json:"contact_user_id"`
	ContactName string    `json:"contact_name"`
	Description *string   `json:"description"`
	PhotoURL    *string   `json:"photo_url"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// EquipmentTag is a brief representation of equipment.
type EquipmentTag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// NewEquipmentResponse converts domain equipment to the API response shape.
func NewEquipmentResponse(e *equipment.Equipment) EquipmentResponse {
	var photoURL *string
	if e.PhotoFileID != nil {
		u := file.FileURL(*e.PhotoFileID)
		photoURL = &u
	}

	return EquipmentResponse{
		ID:          e.ID,
		Name:        e.Name,
		Category:    e.Category,
		Location:    e.Location,
		ContactID:   e.ContactUserID,
		ContactName: e.ContactName,
		Description: e.Description,
		PhotoURL:    photoURL,
		IsActive:    e.IsActive,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

// CreateEquipmentRequest defines the payload for registering equipment.
type CreateEquipmentRequest struct {
	Name          string `json:"name" binding:"required"`
	Category      string `json:"category" binding:"required"`
	Location      string `json:"location"`
	ContactUserID string `json:"contact_user_id" binding:"omitempty,uuid"`
	Description   string `json:"description"`
}

// Validate performs custom validation for CreateEquipmentRequest.
func (r *CreateEquipmentRequest) Validate() error {
	return nil
}

// UpdateEquipmentRequest defines fields allowed to be updated via PATCH.
// Use pointers to distinguish between "field not sent" and "field sent as empty".
type UpdateEquipmentRequest struct {
	Name          *string `json:"name"`
	Category      *string `json:"category"`
	Location      *string `json:"location"`
	ContactUserID *string `json:"contact_user_id" binding:"omitempty,uuid"`
	Description   *string `json:"description"`
	PhotoFileID   *string `json:"photo_file_id" binding:"omitempty,uuid"`
	IsActive      *bool   `json:"is_active"`
}

// Validate performs custom validation for UpdateEquipmentRequest.
func (r *UpdateEquipmentRequest) Validate() error {
	return nil
}
