package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tnpcell/placement-office-api/internal/models"
	"github.com/tnpcell/placement-office-api/internal/service"
	appErrors "github.com/tnpcell/placement-office-api/pkg/errors"
	"github.com/tnpcell/placement-office-api/pkg/response"
)

// PublicInfoHandler exposes public info item endpoints.
type PublicInfoHandler struct {
	service *service.PublicInfoService
}

// NewPublicInfoHandler constructs the handler.
func NewPublicInfoHandler(svc *service.PublicInfoService) *PublicInfoHandler {
	return &PublicInfoHandler{service: svc}
}

func infoTypeQuery(c *gin.Context) *models.PublicInfoType {
	raw := strings.ToLower(strings.TrimSpace(c.Query("type")))
	if raw == "" {
		return nil
	}
	infoType := models.PublicInfoType(raw)
	return &infoType
}

// ListPublic godoc
// @Summary List currently visible public info items
// @Tags PublicInfo
// @Produce json
// @Param type query string false "Item type (announcement, link, resource, faq)"
// @Success 200 {object} response.Envelope
// @Router /public/info [get]
func (h *PublicInfoHandler) ListPublic(c *gin.Context) {
	items, err := h.service.ListVisible(c.Request.Context(), infoTypeQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, nil)
}

// List godoc
// @Summary List public info items (admin)
// @Tags PublicInfo
// @Produce json
// @Param type query string false "Item type"
// @Param include_inactive query bool false "Include inactive items"
// @Success 200 {object} response.Envelope
// @Router /info [get]
func (h *PublicInfoHandler) List(c *gin.Context) {
	filter := models.PublicInfoFilter{
		Type:            infoTypeQuery(c),
		Category:        strings.TrimSpace(c.Query("category")),
		IncludeInactive: c.Query("include_inactive") == "true",
	}
	items, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, nil)
}

// Get godoc
// @Summary Get public info item
// @Tags PublicInfo
// @Produce json
// @Param id path string true "Item ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /info/{id} [get]
func (h *PublicInfoHandler) Get(c *gin.Context) {
	item, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item, nil)
}

// Create godoc
// @Summary Create public info item
// @Tags PublicInfo
// @Accept json
// @Produce json
// @Param payload body service.CreatePublicInfoRequest true "Item payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /info [post]
func (h *PublicInfoHandler) Create(c *gin.Context) {
	var req service.CreatePublicInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	item, err := h.service.Create(c.Request.Context(), req, actorFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, item)
}

// Update godoc
// @Summary Update public info item
// @Tags PublicInfo
// @Accept json
// @Produce json
// @Param id path string true "Item ID"
// @Param payload body service.UpdatePublicInfoRequest true "Item payload"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /info/{id} [put]
func (h *PublicInfoHandler) Update(c *gin.Context) {
	var req service.UpdatePublicInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	item, err := h.service.Update(c.Request.Context(), c.Param("id"), req, actorFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item, nil)
}

// Delete godoc
// @Summary Soft-delete public info item
// @Tags PublicInfo
// @Produce json
// @Param id path string true "Item ID"
// @Success 204 "No Content"
// @Failure 404 {object} response.Envelope
// @Router /info/{id} [delete]
func (h *PublicInfoHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
