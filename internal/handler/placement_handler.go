package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tnpcell/placement-office-api/internal/models"
	"github.com/tnpcell/placement-office-api/internal/service"
	appErrors "github.com/tnpcell/placement-office-api/pkg/errors"
	"github.com/tnpcell/placement-office-api/pkg/response"
)

// PlacementHandler exposes ledger record endpoints.
type PlacementHandler struct {
	service *service.PlacementService
}

// NewPlacementHandler constructs a placement handler.
func NewPlacementHandler(svc *service.PlacementService) *PlacementHandler {
	return &PlacementHandler{service: svc}
}

// List godoc
// @Summary List placement records
// @Tags Placements
// @Produce json
// @Param year query int false "Filter by year"
// @Param company query string false "Filter by company name"
// @Param include_inactive query bool false "Include soft-deleted records"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /placements [get]
func (h *PlacementHandler) List(c *gin.Context) {
	var filter models.PlacementFilter
	filter.Year = yearQuery(c)
	filter.Company = strings.TrimSpace(c.Query("company"))
	filter.IncludeInactive = c.Query("include_inactive") == "true"
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filter.Page = page
	}
	if size, err := strconv.Atoi(c.DefaultQuery("limit", "50")); err == nil {
		filter.PageSize = size
	}

	records, pagination, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, records, pagination)
}

// Get godoc
// @Summary Get placement record
// @Tags Placements
// @Produce json
// @Param id path string true "Record ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /placements/{id} [get]
func (h *PlacementHandler) Get(c *gin.Context) {
	record, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, record, nil)
}

// Create godoc
// @Summary Create placement record
// @Tags Placements
// @Accept json
// @Produce json
// @Param payload body service.CreatePlacementRequest true "Placement payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /placements [post]
func (h *PlacementHandler) Create(c *gin.Context) {
	var req service.CreatePlacementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	record, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, record)
}

// Update godoc
// @Summary Update placement record
// @Tags Placements
// @Accept json
// @Produce json
// @Param id path string true "Record ID"
// @Param payload body service.UpdatePlacementRequest true "Placement payload"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /placements/{id} [put]
func (h *PlacementHandler) Update(c *gin.Context) {
	var req service.UpdatePlacementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	record, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, record, nil)
}

// Delete godoc
// @Summary Soft-delete placement record
// @Tags Placements
// @Produce json
// @Param id path string true "Record ID"
// @Success 204 "No Content"
// @Failure 404 {object} response.Envelope
// @Router /placements/{id} [delete]
func (h *PlacementHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Activate godoc
// @Summary Restore a soft-deleted placement record
// @Tags Placements
// @Produce json
// @Param id path string true "Record ID"
// @Success 204 "No Content"
// @Failure 404 {object} response.Envelope
// @Router /placements/{id}/activate [post]
func (h *PlacementHandler) Activate(c *gin.Context) {
	if err := h.service.Activate(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
