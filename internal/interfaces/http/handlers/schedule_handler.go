package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/seclearn/analytics/internal/application/dto"
	"github.com/seclearn/analytics/internal/application/service"
	"github.com/seclearn/analytics/pkg/errors"
	"github.com/seclearn/analytics/pkg/logger"
)

// ScheduleHandler serves report schedule registration and lookup.
type ScheduleHandler struct {
	scheduler service.SchedulerService
	log       logger.Logger
}

// NewScheduleHandler creates the schedule endpoints handler.
func NewScheduleHandler(scheduler service.SchedulerService, log logger.Logger) *ScheduleHandler {
	return &ScheduleHandler{scheduler: scheduler, log: log}
}

// CreateSchedule handles POST /api/v1/schedules.
func (h *ScheduleHandler) CreateSchedule(c *gin.Context) {
	var req dto.CreateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.SendError(c, errors.ErrInvalidRequest(err.Error()))
		return
	}

	schedule, err := req.ToModel()
	if err != nil {
		dto.SendError(c, errors.ErrInvalidRequest("tenant_id must be a UUID"))
		return
	}

	if err := h.scheduler.CreateSchedule(c.Request.Context(), schedule); err != nil {
		dto.SendError(c, err)
		return
	}
	dto.SendCreated(c, dto.NewScheduleResponse(schedule))
}

// GetSchedule handles GET /api/v1/schedules/:schedule_id.
func (h *ScheduleHandler) GetSchedule(c *gin.Context) {
	id, err := uuid.Parse(c.Param("schedule_id"))
	if err != nil {
		dto.SendError(c, errors.ErrInvalidRequest("schedule_id must be a UUID"))
		return
	}

	schedule, err := h.scheduler.GetSchedule(c.Request.Context(), id)
	if err != nil {
		dto.SendError(c, err)
		return
	}
	dto.SendSuccess(c, dto.NewScheduleResponse(schedule))
}
