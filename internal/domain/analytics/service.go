package analytics

import "context"

type AnalyticsService interface {
	// Trend returns attended-day counts for the last `days` calendar
	// days, never including dates after today.
	Trend(ctx context.Context, days int) ([]TrendPoint, error)

	LateArrivalRate(ctx context.Context, startDate, endDate string) (LateRate, error)
	WorkDuration(ctx context.Context, startDate, endDate string) (DurationStats, error)
	DepartmentPresence(ctx context.Context, date string) ([]DepartmentCount, error)
	HourlyHistogram(ctx context.Context, date string) ([]HourlyPoint, error)

	// Insights builds the full statistics bundle for the last `days`
	// days and asks the external summarizer for a text summary.
	Insights(ctx context.Context, days int) (InsightResponse, error)
}
