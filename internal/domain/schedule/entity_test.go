package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeOfDayAddMinutes(t *testing.T) {
	tests := []struct {
		name  string
		start TimeOfDay
		add   int
		want  string
	}{
		{name: "no carry", start: TimeOfDay{Hour: 8, Minute: 10}, add: 15, want: "08:25"},
		{name: "carries into next hour", start: TimeOfDay{Hour: 8, Minute: 50}, add: 15, want: "09:05"},
		{name: "subtraction borrows an hour", start: TimeOfDay{Hour: 17, Minute: 0}, add: -30, want: "16:30"},
		{name: "subtraction across hour", start: TimeOfDay{Hour: 9, Minute: 10}, add: -20, want: "08:50"},
		{name: "wraps past midnight", start: TimeOfDay{Hour: 23, Minute: 50}, add: 20, want: "00:10"},
		{name: "wraps backwards past midnight", start: TimeOfDay{Hour: 0, Minute: 10}, add: -20, want: "23:50"},
		{name: "zero is identity", start: TimeOfDay{Hour: 12, Minute: 34}, add: 0, want: "12:34"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.start.AddMinutes(tt.add).String())
		})
	}
}

func TestTimeOfDayMinutesOfDay(t *testing.T) {
	assert.Equal(t, 0, TimeOfDay{}.MinutesOfDay())
	assert.Equal(t, 495, TimeOfDay{Hour: 8, Minute: 15}.MinutesOfDay())
	assert.Equal(t, 1439, TimeOfDay{Hour: 23, Minute: 59}.MinutesOfDay())
}

func TestTimeOfDayFromMinutes(t *testing.T) {
	assert.Equal(t, TimeOfDay{Hour: 8, Minute: 15}, TimeOfDayFromMinutes(495))
	assert.Equal(t, TimeOfDay{}, TimeOfDayFromMinutes(0))
}

func TestAt(t *testing.T) {
	ts := time.Date(2026, 3, 10, 14, 42, 59, 0, time.UTC)
	assert.Equal(t, TimeOfDay{Hour: 14, Minute: 42}, At(ts))
}

func TestParseTimeOfDay(t *testing.T) {
	tod, err := ParseTimeOfDay("08:05")
	require.NoError(t, err)
	assert.Equal(t, TimeOfDay{Hour: 8, Minute: 5}, tod)

	for _, bad := range []string{"25:00", "08:60", "8am", ""} {
		_, err := ParseTimeOfDay(bad)
		assert.Error(t, err, bad)
	}
}

func TestDefault(t *testing.T) {
	sched := Default()
	assert.Equal(t, ScheduleID, sched.ID)
	assert.Equal(t, "08:00", sched.StartTime.String())
	assert.Equal(t, "17:00", sched.EndTime.String())
	assert.Equal(t, 15, sched.LateThresholdMinutes)
	assert.Equal(t, 30, sched.EarlyLeaveThresholdMinutes)
	assert.Equal(t, 1, sched.SyncFrequency)
}
