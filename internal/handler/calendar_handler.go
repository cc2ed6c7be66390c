package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tnpcell/placement-office-api/internal/models"
	"github.com/tnpcell/placement-office-api/internal/service"
	appErrors "github.com/tnpcell/placement-office-api/pkg/errors"
	"github.com/tnpcell/placement-office-api/pkg/response"
)

// CalendarHandler exposes public-calendar publication endpoints.
type CalendarHandler struct {
	service *service.PublicationService
}

// NewCalendarHandler constructs the handler.
func NewCalendarHandler(svc *service.PublicationService) *CalendarHandler {
	return &CalendarHandler{service: svc}
}

// ListPublic godoc
// @Summary List the public recruiting calendar
// @Description Active entries only, canonical dates, soonest first
// @Tags Calendar
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /public/calendar [get]
func (h *CalendarHandler) ListPublic(c *gin.Context) {
	entries, err := h.service.ListActivePublic(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entries, nil)
}

// Get godoc
// @Summary Get the calendar entry for an activity
// @Tags Calendar
// @Produce json
// @Param activityId path string true "Activity ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /calendar/{activityId} [get]
func (h *CalendarHandler) Get(c *gin.Context) {
	entry, err := h.service.GetByActivityID(c.Request.Context(), c.Param("activityId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entry, nil)
}

// Publish godoc
// @Summary Publish an activity to the public calendar
// @Description Idempotent per activity; republishing refreshes the entry
// @Tags Calendar
// @Accept json
// @Produce json
// @Param payload body models.ActivitySnapshot true "Activity snapshot"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /calendar/publish [post]
func (h *CalendarHandler) Publish(c *gin.Context) {
	var activity models.ActivitySnapshot
	if err := c.ShouldBindJSON(&activity); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid activity payload"))
		return
	}
	if activity.ID == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "activity id is required"))
		return
	}
	entry, err := h.service.Publish(c.Request.Context(), activity, actorFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entry, nil)
}

// Unpublish godoc
// @Summary Retract an activity from the public calendar
// @Description Returns success=false when the activity was never published
// @Tags Calendar
// @Produce json
// @Param activityId path string true "Activity ID"
// @Success 200 {object} response.Envelope
// @Router /calendar/{activityId}/unpublish [post]
func (h *CalendarHandler) Unpublish(c *gin.Context) {
	result, err := h.service.Unpublish(c.Request.Context(), c.Param("activityId"), actorFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Delete godoc
// @Summary Permanently remove an activity's calendar entry
// @Tags Calendar
// @Produce json
// @Param activityId path string true "Activity ID"
// @Success 204 "No Content"
// @Router /calendar/{activityId} [delete]
func (h *CalendarHandler) Delete(c *gin.Context) {
	if err := h.service.DeleteByActivityID(c.Request.Context(), c.Param("activityId")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
