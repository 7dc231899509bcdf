package http

import (
	"encoding/json"
	"net/http"

	"github.com/faceclock/attendance-backend-go/internal/domain/schedule"
	"github.com/faceclock/attendance-backend-go/internal/handler/http/response"
)

type ScheduleHandler interface {
	GetWorkSchedule(w http.ResponseWriter, r *http.Request)
	UpdateWorkSchedule(w http.ResponseWriter, r *http.Request)
}

type scheduleHandlerImpl struct {
	scheduleService schedule.ScheduleService
}

func NewScheduleHandler(scheduleService schedule.ScheduleService) ScheduleHandler {
	return &scheduleHandlerImpl{
		scheduleService: scheduleService,
	}
}

// GetWorkSchedule implements ScheduleHandler. The defaults are served
// until an explicit update has been made.
func (h *scheduleHandlerImpl) GetWorkSchedule(w http.ResponseWriter, r *http.Request) {
	sched, err := h.scheduleService.GetSchedule(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, mapScheduleToResponse(sched))
}

// UpdateWorkSchedule implements ScheduleHandler.
func (h *scheduleHandlerImpl) UpdateWorkSchedule(w http.ResponseWriter, r *http.Request) {
	var req schedule.UpdateScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	sched, err := h.scheduleService.UpdateSchedule(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Schedule updated successfully", mapScheduleToResponse(sched))
}

func mapScheduleToResponse(sched schedule.Schedule) schedule.ScheduleResponse {
	return schedule.ScheduleResponse{
		StartTime:                  sched.StartTime.String(),
		EndTime:                    sched.EndTime.String(),
		LateThresholdMinutes:       sched.LateThresholdMinutes,
		EarlyLeaveThresholdMinutes: sched.EarlyLeaveThresholdMinutes,
		SyncFrequency:              sched.SyncFrequency,
	}
}
