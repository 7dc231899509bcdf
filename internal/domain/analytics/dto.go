package analytics

// TrendPoint counts attended days per calendar date.
type TrendPoint struct {
	Day   string `json:"day"`
	Count int    `json:"count"`
}

// HourlyPoint counts check-ins for one clock hour of a day.
type HourlyPoint struct {
	Hour  int `json:"hour"`
	Count int `json:"count"`
}

// DepartmentCount is headcount present per department.
type DepartmentCount struct {
	Department string `json:"department"`
	Count      int    `json:"count"`
}

// DurationStats aggregates work durations over a range, in minutes.
type DurationStats struct {
	Average  float64 `json:"average"`
	Longest  int     `json:"longest"`
	Shortest int     `json:"shortest"`
}

// LateRate is late check-ins over total check-ins in a range.
type LateRate struct {
	TotalCheckIns int     `json:"total_checkins"`
	LateCheckIns  int     `json:"late_checkins"`
	Rate          float64 `json:"rate"`
}

// SummaryStats heads the insight bundle. Critical is the late
// check-in count; Compliance is the on-time share in percent.
type SummaryStats struct {
	Total          int     `json:"total"`
	Critical       int     `json:"critical"`
	Compliance     float64 `json:"compliance"`
	TotalEmployees int     `json:"total_employees"`
}

// InsightBundle is the fixed-shape statistics payload handed to the
// external summarizer.
type InsightBundle struct {
	Summary     SummaryStats      `json:"summary"`
	Departments []DepartmentCount `json:"departments"`
	Hourly      []HourlyPoint     `json:"hourly"`
	Duration    DurationStats     `json:"duration"`
	Trend       []TrendPoint      `json:"trend"`
}

// InsightResponse pairs the bundle with the generated text. Summary
// is empty when the summarizer is unavailable; the bundle is still
// returned.
type InsightResponse struct {
	Bundle  InsightBundle `json:"bundle"`
	Summary string        `json:"summary"`
}
