package attendance

import (
	"fmt"
	"time"

	"github.com/faceclock/attendance-backend-go/internal/domain/attendance"
	"github.com/faceclock/attendance-backend-go/internal/domain/schedule"
)

// Classify labels a single attendance event against the schedule. It
// is a pure function of its inputs; callers decide what to do with an
// error instead of the classifier silently defaulting.
//
// Events whose time-of-day falls outside [start, end] are labeled
// ontime unconditionally — out-of-window events are not penalized.
// Boundary comparisons are inclusive: an event exactly on the
// threshold is ontime.
func Classify(ts time.Time, kind attendance.EventKind, sched schedule.Schedule) (attendance.Label, error) {
	tod := schedule.At(ts)

	if tod.MinutesOfDay() < sched.StartTime.MinutesOfDay() ||
		tod.MinutesOfDay() > sched.EndTime.MinutesOfDay() {
		return attendance.LabelOnTime, nil
	}

	switch kind {
	case attendance.EventCheckIn:
		lateBoundary := sched.StartTime.AddMinutes(sched.LateThresholdMinutes)
		if tod.MinutesOfDay() <= lateBoundary.MinutesOfDay() {
			return attendance.LabelOnTime, nil
		}
		return attendance.LabelLate, nil

	case attendance.EventCheckOut:
		earlyBoundary := sched.EndTime.AddMinutes(-sched.EarlyLeaveThresholdMinutes)
		if tod.MinutesOfDay() >= earlyBoundary.MinutesOfDay() {
			return attendance.LabelOnTime, nil
		}
		return attendance.LabelEarly, nil

	default:
		return "", fmt.Errorf("unknown event kind %q", kind)
	}
}

// latenessMinutes is how far past the scheduled start a late check-in
// landed, for notification payloads.
func latenessMinutes(ts time.Time, sched schedule.Schedule) int {
	diff := schedule.At(ts).MinutesOfDay() - sched.StartTime.MinutesOfDay()
	if diff < 0 {
		return 0
	}
	return diff
}
