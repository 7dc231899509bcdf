package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/faceclock/attendance-backend-go/internal/domain/analytics"
	"github.com/faceclock/attendance-backend-go/internal/pkg/database"
)

type analyticsRepository struct {
	db *database.DB
}

func NewAnalyticsRepository(db *database.DB) analytics.AnalyticsRepository {
	return &analyticsRepository{db: db}
}

// TrendByDay implements analytics.AnalyticsRepository.
func (r *analyticsRepository) TrendByDay(ctx context.Context, startDate, endDate string) ([]analytics.TrendPoint, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT date, COUNT(*)
		FROM attendance_records
		WHERE check_in_at IS NOT NULL
		  AND date >= $1 AND date <= $2
		GROUP BY date
		ORDER BY date ASC
	`

	rows, err := q.Query(ctx, query, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance trend: %w", err)
	}
	defer rows.Close()

	var points []analytics.TrendPoint
	for rows.Next() {
		var day time.Time
		var count int
		if err := rows.Scan(&day, &count); err != nil {
			return nil, fmt.Errorf("failed to scan trend point: %w", err)
		}
		points = append(points, analytics.TrendPoint{Day: day.Format("2006-01-02"), Count: count})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return points, nil
}

// LateArrivalRate implements analytics.AnalyticsRepository.
func (r *analyticsRepository) LateArrivalRate(ctx context.Context, startDate, endDate string) (analytics.LateRate, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COUNT(*) AS total,
			COALESCE(SUM(CASE WHEN check_in_status = 'late' THEN 1 ELSE 0 END), 0) AS late
		FROM attendance_records
		WHERE check_in_at IS NOT NULL
		  AND date >= $1 AND date <= $2
	`

	var stats analytics.LateRate
	if err := q.QueryRow(ctx, query, startDate, endDate).Scan(&stats.TotalCheckIns, &stats.LateCheckIns); err != nil {
		return analytics.LateRate{}, fmt.Errorf("failed to get late arrival rate: %w", err)
	}

	if stats.TotalCheckIns > 0 {
		stats.Rate = float64(stats.LateCheckIns) / float64(stats.TotalCheckIns)
	}
	return stats, nil
}

// WorkDurationStats implements analytics.AnalyticsRepository.
func (r *analyticsRepository) WorkDurationStats(ctx context.Context, startDate, endDate string) (analytics.DurationStats, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COALESCE(AVG(work_duration_minutes), 0),
			COALESCE(MAX(work_duration_minutes), 0),
			COALESCE(MIN(work_duration_minutes), 0)
		FROM attendance_records
		WHERE check_in_at IS NOT NULL
		  AND check_out_at IS NOT NULL
		  AND date >= $1 AND date <= $2
	`

	var stats analytics.DurationStats
	if err := q.QueryRow(ctx, query, startDate, endDate).Scan(&stats.Average, &stats.Longest, &stats.Shortest); err != nil {
		return analytics.DurationStats{}, fmt.Errorf("failed to get work duration stats: %w", err)
	}
	return stats, nil
}

// DepartmentPresence implements analytics.AnalyticsRepository.
func (r *analyticsRepository) DepartmentPresence(ctx context.Context, date string) ([]analytics.DepartmentCount, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT e.department, COUNT(*)
		FROM attendance_records a
		JOIN employees e ON e.employee_id = a.employee_id
		WHERE a.check_in_at IS NOT NULL
		  AND a.date = $1
		GROUP BY e.department
		ORDER BY COUNT(*) DESC, e.department ASC
	`

	rows, err := q.Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("failed to query department presence: %w", err)
	}
	defer rows.Close()

	var counts []analytics.DepartmentCount
	for rows.Next() {
		var dc analytics.DepartmentCount
		if err := rows.Scan(&dc.Department, &dc.Count); err != nil {
			return nil, fmt.Errorf("failed to scan department count: %w", err)
		}
		counts = append(counts, dc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return counts, nil
}

// HourlyCheckIns implements analytics.AnalyticsRepository. Check-in
// timestamps are stored in UTC; the histogram buckets by the wall
// clock of the configured location.
func (r *analyticsRepository) HourlyCheckIns(ctx context.Context, date string, timezone string) ([]analytics.HourlyPoint, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXTRACT(HOUR FROM check_in_at AT TIME ZONE $2)::int AS hour, COUNT(*)
		FROM attendance_records
		WHERE check_in_at IS NOT NULL
		  AND date = $1
		GROUP BY hour
		ORDER BY hour ASC
	`

	rows, err := q.Query(ctx, query, date, timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to query hourly check-ins: %w", err)
	}
	defer rows.Close()

	var points []analytics.HourlyPoint
	for rows.Next() {
		var hp analytics.HourlyPoint
		if err := rows.Scan(&hp.Hour, &hp.Count); err != nil {
			return nil, fmt.Errorf("failed to scan hourly point: %w", err)
		}
		points = append(points, hp)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return points, nil
}
