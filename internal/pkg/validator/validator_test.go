package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidEmployeeCode(t *testing.T) {
	valid := []string{"EMP-001", "EMP-123456", "HR-999", "STAFF-0001"}
	for _, code := range valid {
		assert.True(t, IsValidEmployeeCode(code), code)
	}

	invalid := []string{"", "EMP001", "emp-001", "E-001", "EMP-01", "EMP-0000001", "EMP-001X"}
	for _, code := range invalid {
		assert.False(t, IsValidEmployeeCode(code), code)
	}
}

func TestIsValidTimeOfDay(t *testing.T) {
	valid := []string{"00:00", "08:15", "17:00", "23:59"}
	for _, s := range valid {
		assert.True(t, IsValidTimeOfDay(s), s)
	}

	invalid := []string{"", "24:00", "08:60", "8:15", "08:5", "0815", "noon"}
	for _, s := range invalid {
		assert.False(t, IsValidTimeOfDay(s), s)
	}
}

func TestIsValidDate(t *testing.T) {
	_, ok := IsValidDate("2026-03-10")
	assert.True(t, ok)

	for _, s := range []string{"", "10-03-2026", "2026-13-01", "2026-03-10T08:00:00Z"} {
		_, ok := IsValidDate(s)
		assert.False(t, ok, s)
	}
}

func TestValidationErrorsToMap(t *testing.T) {
	errs := ValidationErrors{
		{Field: "start_time", Message: "must be HH:MM on a 24-hour clock"},
		{Field: "sync_frequency", Message: "must be at least 1"},
	}

	m := errs.ToMap()
	assert.Len(t, m, 2)
	assert.Equal(t, "must be at least 1", m["sync_frequency"])
	assert.Contains(t, errs.Error(), "start_time")
}
