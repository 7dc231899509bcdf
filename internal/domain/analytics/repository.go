package analytics

import "context"

// AnalyticsRepository runs read-only aggregations over attendance
// records. Every query counts only records with a check-in; a record
// without one represents an absence, not an event. Callers pass
// pre-clamped date ranges — the service layer guarantees end <= today.
type AnalyticsRepository interface {
	TrendByDay(ctx context.Context, startDate, endDate string) ([]TrendPoint, error)
	LateArrivalRate(ctx context.Context, startDate, endDate string) (LateRate, error)
	WorkDurationStats(ctx context.Context, startDate, endDate string) (DurationStats, error)
	DepartmentPresence(ctx context.Context, date string) ([]DepartmentCount, error)
	HourlyCheckIns(ctx context.Context, date string, timezone string) ([]HourlyPoint, error)
}
