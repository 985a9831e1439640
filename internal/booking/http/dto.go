package http

import (
	"time"

	"github.com/labgrid/equipment-booking-backend/internal/booking"
	equipHttp "github.com/labgrid/equipment-booking-backend/internal/equipment/http"
	"github.com/labgrid/equipment-booking-backend/internal/pkg/request"
	projectHttp "github.com/labgrid/equipment-booking-backend/internal/project/http"
	userHttp "github.com/labgrid/equipment-booking-backend/internal/user/http"
)

// ListBookingsRequest defines query parameters for listing bookings.
type ListBookingsRequest struct {
	request.ListParams
	EquipmentID   string     `form:"equipment_id" binding:"omitempty,uuid"`
	ProjectID     string     `form:"project_id" binding:"omitempty,uuid"`
	Status        string     `form:"status" binding:"omitempty,oneof=pending confirmed cancelled completed"`
	UserID        string     `form:"user_id" binding:"omitempty,uuid"`
	StartTimeFrom *time.Time `form:"start_time_from" time_format:"2006-01-02T15:04:05Z07:00"`
	StartTimeTo   *time.Time `form:"start_time_to" time_format:"2006-01-02T15:04:05Z07:00"`
	SortBy        string     `form:"sort_by" binding:"omitempty,oneof=start_time end_time created_at status"`
}

// Validate performs custom validation for ListBookingsRequest.
func (r *ListBookingsRequest) Validate() error {
	if r.StartTimeFrom != nil && r.StartTimeTo != nil {
		if r.StartTimeFrom.After(*r.StartTimeTo) {
			return booking.ErrInvalidTimeRange
		}
	}
	return nil
}

type BookingResponse struct {
	ID        string                  `json:"id"`
	Equipment equipHttp.EquipmentTag  `json:"equipment"`
	User      userHttp.UserTag        `json:"user"`
	Project   *projectHttp.ProjectTag `json:"project"`
	Purpose   string                  `json:"purpose"`
	StartTime time.Time               `json:"start_time"`
	EndTime   time.Time               `json:"end_time"`
	Status    string                  `json:"status"`
	CreatedAt time.Time               `json:"created_at"`
	UpdatedAt time.Time               `json:"updated_at"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	var proj *projectHttp.ProjectTag
	if b.ProjectID != nil {
		proj = &projectHttp.ProjectTag{ID: *b.ProjectID, Name: b.ProjectName}
	}

	return BookingResponse{
		ID:        b.ID,
		Equipment: equipHttp.EquipmentTag{ID: b.EquipmentID, Name: b.EquipmentName},
		User:      userHttp.UserTag{ID: b.UserID, Name: b.UserName},
		Project:   proj,
		Purpose:   b.Purpose,
		StartTime: b.StartTime,
		EndTime:   b.EndTime,
		Status:    string(b.Status),
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

type CreateBookingRequest struct {
	EquipmentID string    `json:"equipment_id" binding:"required,uuid"`
	ProjectID   string    `json:"project_id" binding:"omitempty,uuid"`
	Purpose     string    `json:"purpose" binding:"required"`
	StartTime   time.Time `json:"start_time" binding:"required"`
	EndTime     time.Time `json:"end_time" binding:"required"`
}

// Validate performs custom validation for CreateBookingRequest.
func (r *CreateBookingRequest) Validate() error {
	if !r.StartTime.Before(r.EndTime) {
		return booking.ErrInvalidTimeRange
	}
	return nil
}

type UpdateBookingRequest struct {
	StartTime *time.Time `json:"start_time"`
	EndTime   *time.Time `json:"end_time"`
	Status    *string    `json:"status" binding:"omitempty,oneof=pending confirmed cancelled completed"`
	Purpose   *string    `json:"purpose"`
	ProjectID *string    `json:"project_id"`
}

// Validate performs custom validation for UpdateBookingRequest.
func (r *UpdateBookingRequest) Validate() error {
	if r.StartTime != nil && r.EndTime != nil {
		if !r.StartTime.Before(*r.EndTime) {
			return booking.ErrInvalidTimeRange
		}
	}
	return nil
}

// UsageStatsResponse is the cached platform-wide usage heatmap.
type UsageStatsResponse struct {
	Cells      []HeatmapCellResponse `json:"cells"`
	ComputedAt time.Time             `json:"computed_at"`
}

// HeatmapCellResponse is one weekday/hour bucket of the usage heatmap.
type HeatmapCellResponse struct {
	Weekday int `json:"weekday"`
	Hour    int `json:"hour"`
	Count   int `json:"count"`
}
