package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/labgrid/equipment-booking-backend/internal/equipment"
	"github.com/labgrid/equipment-booking-backend/internal/pkg/response"
	"github.com/labgrid/equipment-booking-backend/internal/schedule"
)

// BookingSource provides the stored reservations the engine reasons about.
type BookingSource interface {
	InRange(ctx context.Context, equipmentID string, from, to time.Time) ([]schedule.ExistingBooking, error)
}

// EquipmentSource resolves equipment metadata for category-aware suggestions.
type EquipmentSource interface {
	GetByID(ctx context.Context, id string) (*equipment.Equipment, error)
}

// ProjectSource provides the active projects for form suggestions.
type ProjectSource interface {
	ActiveInfos(ctx context.Context) ([]schedule.ProjectInfo, error)
}

type Handler struct {
	bookings  BookingSource
	equipment EquipmentSource
	projects  ProjectSource
}

func NewHandler(bookings BookingSource, equipmentSrc EquipmentSource, projects ProjectSource) *Handler {
	return &Handler{
		bookings:  bookings,
		equipment: equipmentSrc,
		projects:  projects,
	}
}

// Grid classifies every half-hour cell of one equipment-day, taking the
// caller's tentative selections into account.
func (h *Handler) Grid(c *gin.Context) {
	var req GridRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	if err := req.Validate(); err != nil {
		response.Error(c, err)
		return
	}

	day, _ := time.Parse("2006-01-02", req.Date)

	bookings, err := h.bookings.InRange(c.Request.Context(), req.EquipmentID, day, day.AddDate(0, 0, 1))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load bookings"})
		return
	}

	cells := schedule.DayGrid(day, bookings, toCandidates(req.Selected), time.Now())

	c.JSON(http.StatusOK, GridResponse{
		Date:  req.Date,
		Cells: cells,
	})
}

// CheckConflicts validates the caller's candidate slots against each other
// before submission.
func (h *Handler) CheckConflicts(c *gin.Context) {
	var req ConflictCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	result := schedule.DetectConflicts(toCandidates(req.Slots))

	c.JSON(http.StatusOK, result)
}

// Recommendations returns ranked free windows for the equipment.
func (h *Handler) Recommendations(c *gin.Context) {
	var req RecommendationsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	if err := req.Validate(); err != nil {
		response.Error(c, err)
		return
	}

	bookings, err := h.bookings.InRange(c.Request.Context(), req.EquipmentID, req.From, req.To)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load bookings"})
		return
	}

	recs := schedule.BestTimeRecommendations(req.From, req.To, bookings, time.Now())

	limit := req.Limit
	if limit == 0 {
		limit = schedule.DefaultRecommendationLimit
	}
	if len(recs) > limit {
		recs = recs[:limit]
	}

	c.JSON(http.StatusOK, RecommendationsResponse{Recommendations: recs})
}

// Duration suggests how long to book for the given purpose and equipment.
func (h *Handler) Duration(c *gin.Context) {
	var req DurationRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	equipmentName, ok := h.equipmentName(c, req.EquipmentID)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, schedule.SuggestDuration(req.Purpose, equipmentName))
}

// FormSuggestions returns contextual help for the partially filled booking
// form: purpose presets, ranked projects, sample info and completion tips.
func (h *Handler) FormSuggestions(c *gin.Context) {
	var req FormSuggestionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	equipmentName, ok := h.equipmentName(c, req.EquipmentID)
	if !ok {
		return
	}

	projects, err := h.projects.ActiveInfos(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load projects"})
		return
	}

	form := schedule.FormState{
		Purpose:    req.Purpose,
		Project:    req.Project,
		BookerName: req.BookerName,
	}

	c.JSON(http.StatusOK, schedule.SmartFormSuggestions(form, equipmentName, projects))
}

// Heatmap aggregates one equipment's historical usage per weekday and hour.
func (h *Handler) Heatmap(c *gin.Context) {
	var req HeatmapRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	if err := req.Validate(); err != nil {
		response.Error(c, err)
		return
	}

	bookings, err := h.bookings.InRange(c.Request.Context(), req.EquipmentID, req.From, req.To)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load bookings"})
		return
	}

	c.JSON(http.StatusOK, HeatmapResponse{Cells: schedule.UsageHeatmap(bookings)})
}

// equipmentName resolves the equipment name for suggestion endpoints.
// An empty ID resolves to an empty name; an unknown ID writes a 404 and
// reports not ok.
func (h *Handler) equipmentName(c *gin.Context, equipmentID string) (string, bool) {
	if equipmentID == "" {
		return "", true
	}

	eq, err := h.equipment.GetByID(c.Request.Context(), equipmentID)
	if err != nil {
		if errors.Is(err, equipment.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "equipment not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get equipment"})
		}
		return "", false
	}
	return eq.Name, true
}
