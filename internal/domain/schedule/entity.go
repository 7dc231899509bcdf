package schedule

import (
	"fmt"
	"time"
)

// ScheduleID is the fixed key of the singleton schedule row. There is
// exactly one work schedule system-wide.
const ScheduleID = "default"

// TimeOfDay is a minute-precision wall-clock time. Arithmetic wraps
// around midnight, carrying hours when minutes overflow or underflow
// (08:50 + 15min = 09:05, never 08:65).
type TimeOfDay struct {
	Hour   int
	Minute int
}

// MinutesOfDay returns minutes since midnight.
func (t TimeOfDay) MinutesOfDay() int {
	return t.Hour*60 + t.Minute
}

// AddMinutes returns the time-of-day n minutes later, wrapping at
// midnight. Negative n subtracts, borrowing an hour when the minute
// component underflows.
func (t TimeOfDay) AddMinutes(n int) TimeOfDay {
	const day = 24 * 60
	total := (t.MinutesOfDay() + n) % day
	if total < 0 {
		total += day
	}
	return TimeOfDay{Hour: total / 60, Minute: total % 60}
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// TimeOfDayFromMinutes builds a TimeOfDay from minutes since midnight.
func TimeOfDayFromMinutes(m int) TimeOfDay {
	return TimeOfDay{Hour: m / 60, Minute: m % 60}
}

// At returns the clock time of the given instant in its own location.
func At(ts time.Time) TimeOfDay {
	return TimeOfDay{Hour: ts.Hour(), Minute: ts.Minute()}
}

// ParseTimeOfDay parses "HH:MM" on a 24-hour clock.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return TimeOfDay{}, fmt.Errorf("invalid time of day %q: %w", s, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return TimeOfDay{}, fmt.Errorf("invalid time of day %q", s)
	}
	return TimeOfDay{Hour: h, Minute: m}, nil
}

// Schedule is the singleton work-schedule configuration. It is created
// with defaults on first use and only ever replaced whole, never
// partially updated.
type Schedule struct {
	ID                         string
	StartTime                  TimeOfDay
	EndTime                    TimeOfDay
	LateThresholdMinutes       int
	EarlyLeaveThresholdMinutes int
	SyncFrequency              int
	CreatedAt                  time.Time
	UpdatedAt                  time.Time
}

// Default returns the schedule used until an explicit update is made:
// 08:00-17:00, 15 minutes of check-in grace, 30 minutes of
// early-leave grace.
func Default() Schedule {
	return Schedule{
		ID:                         ScheduleID,
		StartTime:                  TimeOfDay{Hour: 8},
		EndTime:                    TimeOfDay{Hour: 17},
		LateThresholdMinutes:       15,
		EarlyLeaveThresholdMinutes: 30,
		SyncFrequency:              1,
	}
}
