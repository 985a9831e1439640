package http

import (
	"net/http"
	"time"

	"github.com/labgrid/equipment-booking-backend/internal/pkg/apperror"
	"github.com/labgrid/equipment-booking-backend/internal/schedule"
)

var (
	errInvalidDate  = apperror.New(http.StatusBadRequest, "date must be in YYYY-MM-DD format")
	errInvalidRange = apperror.New(http.StatusBadRequest, "from must be before to")
	errRangeTooWide = apperror.New(http.StatusBadRequest, "requested range is too wide")
)

// maxRangeDays caps how much booking history a single request may scan.
const maxRangeDays = 31

// SlotRange is a client-side candidate time window.
type SlotRange struct {
	Start time.Time `json:"start" binding:"required"`
	End   time.Time `json:"end" binding:"required"`
}

func (s SlotRange) toCandidate() schedule.CandidateSlot {
	return schedule.CandidateSlot{Start: s.Start, End: s.End}
}

func toCandidates(ranges []SlotRange) []schedule.CandidateSlot {
	out := make([]schedule.CandidateSlot, len(ranges))
	for i, r := range ranges {
		out[i] = r.toCandidate()
	}
	return out
}

// GridRequest asks for the classified half-hour grid of one equipment-day.
// Selected carries the caller's tentative, not yet submitted slots so they
// render distinctly from stored bookings.
type GridRequest struct {
	EquipmentID string      `json:"equipment_id" binding:"required,uuid"`
	Date        string      `json:"date" binding:"required"`
	Selected    []SlotRange `json:"selected"`
}

// Validate performs custom validation for GridRequest.
func (r *GridRequest) Validate() error {
	if _, err := time.Parse("2006-01-02", r.Date); err != nil {
		return errInvalidDate
	}
	return nil
}

// GridResponse is the classified day grid.
type GridResponse struct {
	Date  string              `json:"date"`
	Cells []schedule.SlotCell `json:"cells"`
}

// ConflictCheckRequest carries the caller's candidate slots for validation.
type ConflictCheckRequest struct {
	Slots []SlotRange `json:"slots" binding:"required"`
}

// Validate performs custom validation for ConflictCheckRequest.
func (r *ConflictCheckRequest) Validate() error {
	return nil
}

// RecommendationsRequest defines query parameters for slot recommendations.
type RecommendationsRequest struct {
	EquipmentID string    `form:"equipment_id" binding:"required,uuid"`
	From        time.Time `form:"from" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
	To          time.Time `form:"to" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
	Limit       int       `form:"limit" binding:"omitempty,min=1,max=20"`
}

// Validate performs custom validation for RecommendationsRequest.
func (r *RecommendationsRequest) Validate() error {
	if !r.From.Before(r.To) {
		return errInvalidRange
	}
	if r.To.Sub(r.From) > maxRangeDays*24*time.Hour {
		return errRangeTooWide
	}
	return nil
}

// RecommendationsResponse is the ranked list of free windows.
type RecommendationsResponse struct {
	Recommendations []schedule.Recommendation `json:"recommendations"`
}

// DurationRequest defines query parameters for the duration advisor.
type DurationRequest struct {
	Purpose     string `form:"purpose"`
	EquipmentID string `form:"equipment_id" binding:"omitempty,uuid"`
}

// Validate performs custom validation for DurationRequest.
func (r *DurationRequest) Validate() error {
	return nil
}

// FormSuggestionsRequest carries the partially filled booking form.
type FormSuggestionsRequest struct {
	EquipmentID string `json:"equipment_id" binding:"omitempty,uuid"`
	Purpose     string `json:"purpose"`
	Project     string `json:"project"`
	BookerName  string `json:"booker_name"`
}

// Validate performs custom validation for FormSuggestionsRequest.
func (r *FormSuggestionsRequest) Validate() error {
	return nil
}

// HeatmapRequest defines query parameters for the per-equipment usage heatmap.
type HeatmapRequest struct {
	EquipmentID string    `form:"equipment_id" binding:"required,uuid"`
	From        time.Time `form:"from" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
	To          time.Time `form:"to" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
}

// Validate performs custom validation for HeatmapRequest.
func (r *HeatmapRequest) Validate() error {
	if !r.From.Before(r.To) {
		return errInvalidRange
	}
	return nil
}

// HeatmapResponse is the aggregated weekday/hour usage grid.
type HeatmapResponse struct {
	Cells []schedule.HeatmapCell `json:"cells"`
}
