package schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/faceclock/attendance-backend-go/internal/domain/schedule"
)

type ScheduleServiceImpl struct {
	schedule.ScheduleRepository
}

func NewScheduleService(repo schedule.ScheduleRepository) schedule.ScheduleService {
	return &ScheduleServiceImpl{ScheduleRepository: repo}
}

// GetSchedule implements schedule.ScheduleService. A missing singleton
// row is not an error; the defaults apply until someone updates them.
func (s *ScheduleServiceImpl) GetSchedule(ctx context.Context) (schedule.Schedule, error) {
	sched, err := s.ScheduleRepository.Get(ctx)
	if err != nil {
		if errors.Is(err, schedule.ErrScheduleNotFound) {
			return schedule.Default(), nil
		}
		return schedule.Schedule{}, fmt.Errorf("failed to get schedule: %w", err)
	}
	return sched, nil
}

// UpdateSchedule implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) UpdateSchedule(ctx context.Context, req schedule.UpdateScheduleRequest) (schedule.Schedule, error) {
	if err := req.Validate(); err != nil {
		return schedule.Schedule{}, err
	}

	start, err := schedule.ParseTimeOfDay(req.StartTime)
	if err != nil {
		return schedule.Schedule{}, err
	}
	end, err := schedule.ParseTimeOfDay(req.EndTime)
	if err != nil {
		return schedule.Schedule{}, err
	}

	sched, err := s.ScheduleRepository.Replace(ctx, schedule.Schedule{
		ID:                         schedule.ScheduleID,
		StartTime:                  start,
		EndTime:                    end,
		LateThresholdMinutes:       req.LateThresholdMinutes,
		EarlyLeaveThresholdMinutes: req.EarlyLeaveThresholdMinutes,
		SyncFrequency:              req.SyncFrequency,
	})
	if err != nil {
		return schedule.Schedule{}, fmt.Errorf("failed to replace schedule: %w", err)
	}
	return sched, nil
}
