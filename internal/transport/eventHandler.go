package transport

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wtchen/clubroll/internal/entity"
	"github.com/wtchen/clubroll/internal/service"
)

type EventHandler struct {
	eventService      service.EventService
	attendanceService service.AttendanceService
}

func NewEventHandler(eventService service.EventService, attendanceService service.AttendanceService) *EventHandler {
	return &EventHandler{
		eventService:      eventService,
		attendanceService: attendanceService,
	}
}

func (h *EventHandler) CreateEvent(c *gin.Context) {
	var req service.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	event, err := h.eventService.CreateDraft(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"status": "success", "id": event.ID, "event": event})
}

// ListEvents returns the drafts, date ascending, for the admin edit list.
func (h *EventHandler) ListEvents(c *gin.Context) {
	drafts, err := h.eventService.ListDrafts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"events": drafts})
}

func (h *EventHandler) NextDueEvent(c *gin.Context) {
	event, err := h.eventService.NextDueDraft(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if event == nil {
		c.JSON(http.StatusOK, gin.H{"event": nil})
		return
	}

	c.JSON(http.StatusOK, gin.H{"event": event})
}

func (h *EventHandler) UpdateEvent(c *gin.Context) {
	var req entity.EventUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	event, err := h.eventService.Edit(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "event": event})
}

func (h *EventHandler) PublishEvent(c *gin.Context) {
	event, err := h.eventService.Publish(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "event": event})
}

// EventStats renders the four-bucket classification for one event.
func (h *EventHandler) EventStats(c *gin.Context) {
	summary, err := h.attendanceService.EventStatistics(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

func respondError(c *gin.Context, err error) {
	switch err {
	case entity.ErrEventNotFound, entity.ErrMemberNotFound, entity.ErrResponseNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case entity.ErrInvalidEventDate, entity.ErrInvalidEventTime,
		entity.ErrInvalidResponseStatus, entity.ErrEventNotDraft, entity.ErrInvalidInput:
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
