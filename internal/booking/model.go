package booking

import (
	"net/http"
	"time"

	"github.com/labgrid/equipment-booking-backend/internal/pkg/apperror"
	"github.com/labgrid/equipment-booking-backend/internal/schedule"
)

var (
	ErrNotFound          = apperror.New(http.StatusNotFound, "booking not found")
	ErrTimeConflict      = apperror.New(http.StatusConflict, "time slot already booked")
	ErrInvalidTimeRange  = apperror.New(http.StatusBadRequest, "start time must be before end time")
	ErrInvalidStatus     = apperror.New(http.StatusBadRequest, "invalid booking status")
	ErrEquipmentNotFound = apperror.New(http.StatusNotFound, "equipment not found")
	ErrEquipmentInactive = apperror.New(http.StatusBadRequest, "equipment is not available for booking")
	ErrProjectNotFound   = apperror.New(http.StatusNotFound, "project not found")
	ErrPermissionDenied  = apperror.New(http.StatusForbidden, "permission denied")
	ErrStartTimePast     = apperror.New(http.StatusBadRequest, "cannot create booking in the past")
	ErrPurposeRequired   = apperror.New(http.StatusBadRequest, "booking purpose is required")
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

// ValidStatus reports whether s is one of the known booking statuses.
func ValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

type Booking struct {
	ID            string
	EquipmentID   string
	EquipmentName string
	UserID        string
	UserName      string
	ProjectID     *string
	ProjectName   string
	Purpose       string
	StartTime     time.Time
	EndTime       time.Time
	Status        Status
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ToSchedule converts the booking to the engine's read-only view.
func (b *Booking) ToSchedule() schedule.ExistingBooking {
	return schedule.ExistingBooking{
		ID:          b.ID,
		EquipmentID: b.EquipmentID,
		Start:       b.StartTime,
		End:         b.EndTime,
		OwnerName:   b.UserName,
		Purpose:     b.Purpose,
		Status:      schedule.BookingStatus(b.Status),
	}
}

// ToScheduleBookings converts a list of bookings to engine views.
func ToScheduleBookings(bookings []*Booking) []schedule.ExistingBooking {
	out := make([]schedule.ExistingBooking, len(bookings))
	for i, b := range bookings {
		out[i] = b.ToSchedule()
	}
	return out
}

type Filter struct {
	UserID      string
	EquipmentID string
	ProjectID   string
	Status      string
	StartTime   *time.Time // Filter bookings ending after this time
	EndTime     *time.Time // Filter bookings starting before this time
	Page        int
	PageSize    int
	SortBy      string
	SortOrder   string
}
