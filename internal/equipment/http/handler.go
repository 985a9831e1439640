package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/labgrid/equipment-booking-backend/internal/equipment"
	"github.com/labgrid/equipment-booking-backend/internal/pkg/request"
	"github.com/labgrid/equipment-booking-backend/internal/pkg/response"
)

type Handler struct {
	service equipment.Service
}

func NewHandler(service equipment.Service) *Handler {
	return &Handler{service: service}
}

// Create registers a new piece of equipment.
// Access Control: Admin only.
func (h *Handler) Create(c *gin.Context) {
	var body CreateEquipmentRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	if err := body.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	e, err := h.service.Create(c.Request.Context(), equipment.CreateRequest{
		Name:          body.Name,
		Category:      body.Category,
		Location:      body.Location,
		ContactUserID: body.ContactUserID,
		Description:   body.Description,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewEquipmentResponse(e))
}

// List retrieves a paginated equipment catalog with optional filtering.
func (h *Handler) List(c *gin.Context) {
	var req ListEquipmentRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	filter := equipment.Filter{
		Name:      req.Name,
		Category:  req.Category,
		Location:  req.Location,
		IsActive:  req.IsActive,
		Page:      req.Page,
		PageSize:  req.PageSize,
		SortBy:    req.SortBy,
		SortOrder: strings.ToUpper(req.SortOrder),
	}

	items, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list equipment"})
		return
	}

	resps := make([]EquipmentResponse, len(items))
	for i, e := range items {
		resps[i] = NewEquipmentResponse(e)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(resps, req.Page, req.PageSize, total))
}

// Get retrieves a single piece of equipment by ID.
func (h *Handler) Get(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	e, err := h.service.GetByID(c.Request.Context(), req.ID)
	if err != nil {
		if errors.Is(err, equipment.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "equipment not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get equipment"})
		return
	}

	c.JSON(http.StatusOK, NewEquipmentResponse(e))
}

// Update modifies specific attributes of equipment.
// Access Control: Admin only.
func (h *Handler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	var body UpdateEquipmentRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body", "details": err.Error()})
		return
	}

	if err := body.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	e, err := h.service.Update(c.Request.Context(), uri.ID, equipment.UpdateRequest{
		Name:          body.Name,
		Category:      body.Category,
		Location:      body.Location,
		ContactUserID: body.ContactUserID,
		Description:   body.Description,
		PhotoFileID:   body.PhotoFileID,
		IsActive:      body.IsActive,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewEquipmentResponse(e))
}

// Delete performs a soft delete on equipment.
// Access Control: Admin only.
func (h *Handler) Delete(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	if err := h.service.Delete(c.Request.Context(), req.ID); err != nil {
		if errors.Is(err, equipment.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "equipment not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete equipment"})
		return
	}

	c.Status(http.StatusNoContent)
}
