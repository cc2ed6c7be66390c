package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tnpcell/placement-office-api/internal/service"
	appErrors "github.com/tnpcell/placement-office-api/pkg/errors"
	"github.com/tnpcell/placement-office-api/pkg/response"
)

// TipHandler exposes preparation tip endpoints.
type TipHandler struct {
	service *service.TipService
}

// NewTipHandler constructs the handler.
func NewTipHandler(svc *service.TipService) *TipHandler {
	return &TipHandler{service: svc}
}

// ListPublic godoc
// @Summary List active tips
// @Tags Tips
// @Produce json
// @Param year query int false "Filter by graduation year"
// @Success 200 {object} response.Envelope
// @Router /public/tips [get]
func (h *TipHandler) ListPublic(c *gin.Context) {
	tips, err := h.service.ListActive(c.Request.Context(), yearQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, tips, nil)
}

// List godoc
// @Summary List tips (admin)
// @Tags Tips
// @Produce json
// @Param include_inactive query bool false "Include inactive tips"
// @Success 200 {object} response.Envelope
// @Router /tips [get]
func (h *TipHandler) List(c *gin.Context) {
	tips, err := h.service.List(c.Request.Context(), c.Query("include_inactive") == "true")
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, tips, nil)
}

// Get godoc
// @Summary Get tip
// @Tags Tips
// @Produce json
// @Param id path string true "Tip ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /tips/{id} [get]
func (h *TipHandler) Get(c *gin.Context) {
	tip, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, tip, nil)
}

// Create godoc
// @Summary Create tip
// @Tags Tips
// @Accept json
// @Produce json
// @Param payload body service.CreateTipRequest true "Tip payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /tips [post]
func (h *TipHandler) Create(c *gin.Context) {
	var req service.CreateTipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	tip, err := h.service.Create(c.Request.Context(), req, actorFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, tip)
}

// Update godoc
// @Summary Update tip
// @Tags Tips
// @Accept json
// @Produce json
// @Param id path string true "Tip ID"
// @Param payload body service.UpdateTipRequest true "Tip payload"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /tips/{id} [put]
func (h *TipHandler) Update(c *gin.Context) {
	var req service.UpdateTipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	tip, err := h.service.Update(c.Request.Context(), c.Param("id"), req, actorFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, tip, nil)
}

// Delete godoc
// @Summary Soft-delete tip
// @Tags Tips
// @Produce json
// @Param id path string true "Tip ID"
// @Success 204 "No Content"
// @Failure 404 {object} response.Envelope
// @Router /tips/{id} [delete]
func (h *TipHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
