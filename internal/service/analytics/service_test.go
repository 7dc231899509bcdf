package analytics

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/faceclock/attendance-backend-go/internal/domain/analytics"
	"github.com/faceclock/attendance-backend-go/internal/domain/employee"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAnalyticsRepo struct {
	trendStart, trendEnd string
	lateRateEnd          string
	durationEnd          string
	presenceDate         string
	hourlyDate           string

	lateRate analytics.LateRate
}

func (r *fakeAnalyticsRepo) TrendByDay(_ context.Context, startDate, endDate string) ([]analytics.TrendPoint, error) {
	r.trendStart, r.trendEnd = startDate, endDate
	return []analytics.TrendPoint{{Day: startDate, Count: 3}}, nil
}

func (r *fakeAnalyticsRepo) LateArrivalRate(_ context.Context, _, endDate string) (analytics.LateRate, error) {
	r.lateRateEnd = endDate
	return r.lateRate, nil
}

func (r *fakeAnalyticsRepo) WorkDurationStats(_ context.Context, _, endDate string) (analytics.DurationStats, error) {
	r.durationEnd = endDate
	return analytics.DurationStats{Average: 480, Longest: 600, Shortest: 300}, nil
}

func (r *fakeAnalyticsRepo) DepartmentPresence(_ context.Context, date string) ([]analytics.DepartmentCount, error) {
	r.presenceDate = date
	return []analytics.DepartmentCount{{Department: "Engineering", Count: 4}}, nil
}

func (r *fakeAnalyticsRepo) HourlyCheckIns(_ context.Context, date, _ string) ([]analytics.HourlyPoint, error) {
	r.hourlyDate = date
	return []analytics.HourlyPoint{{Hour: 8, Count: 5}}, nil
}

type fakeCounter struct {
	active int
}

func (fakeCounter) Create(context.Context, employee.Employee) (employee.Employee, error) {
	return employee.Employee{}, nil
}

func (fakeCounter) GetByEmployeeID(context.Context, string) (employee.Employee, error) {
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (fakeCounter) List(context.Context, employee.EmployeeFilter) ([]employee.Employee, int64, error) {
	return nil, 0, nil
}

func (fakeCounter) Update(context.Context, employee.Employee) error {
	return nil
}

func (c fakeCounter) CountActive(context.Context) (int, error) {
	return c.active, nil
}

type stubSummarizer struct {
	summary string
	err     error
}

func (s stubSummarizer) Summarize(context.Context, analytics.InsightBundle) (string, error) {
	return s.summary, s.err
}

func newTestService(repo *fakeAnalyticsRepo, summarizer stubSummarizer) analytics.AnalyticsService {
	return NewAnalyticsService(repo, fakeCounter{active: 7}, summarizer, slog.New(slog.DiscardHandler), time.UTC)
}

func TestFutureEndDatesAreClamped(t *testing.T) {
	repo := &fakeAnalyticsRepo{}
	svc := newTestService(repo, stubSummarizer{})

	today := time.Now().UTC().Format("2006-01-02")
	future := time.Now().UTC().AddDate(0, 0, 7).Format("2006-01-02")

	_, err := svc.LateArrivalRate(context.Background(), "2026-01-01", future)
	require.NoError(t, err)
	assert.Equal(t, today, repo.lateRateEnd)

	_, err = svc.WorkDuration(context.Background(), "2026-01-01", future)
	require.NoError(t, err)
	assert.Equal(t, today, repo.durationEnd)

	_, err = svc.DepartmentPresence(context.Background(), future)
	require.NoError(t, err)
	assert.Equal(t, today, repo.presenceDate)

	_, err = svc.HourlyHistogram(context.Background(), future)
	require.NoError(t, err)
	assert.Equal(t, today, repo.hourlyDate)
}

func TestPastEndDatesPassThrough(t *testing.T) {
	repo := &fakeAnalyticsRepo{}
	svc := newTestService(repo, stubSummarizer{})

	_, err := svc.LateArrivalRate(context.Background(), "2026-01-01", "2026-01-31")
	require.NoError(t, err)
	assert.Equal(t, "2026-01-31", repo.lateRateEnd)
}

func TestTrendRangeEndsToday(t *testing.T) {
	repo := &fakeAnalyticsRepo{}
	svc := newTestService(repo, stubSummarizer{})

	_, err := svc.Trend(context.Background(), 7)
	require.NoError(t, err)

	now := time.Now().UTC()
	assert.Equal(t, now.Format("2006-01-02"), repo.trendEnd)
	assert.Equal(t, now.AddDate(0, 0, -6).Format("2006-01-02"), repo.trendStart)
}

func TestInsightsBundle(t *testing.T) {
	repo := &fakeAnalyticsRepo{
		lateRate: analytics.LateRate{TotalCheckIns: 20, LateCheckIns: 5, Rate: 0.25},
	}
	svc := newTestService(repo, stubSummarizer{summary: "Attendance held steady this month."})

	result, err := svc.Insights(context.Background(), 30)
	require.NoError(t, err)

	assert.Equal(t, 20, result.Bundle.Summary.Total)
	assert.Equal(t, 5, result.Bundle.Summary.Critical)
	assert.InDelta(t, 75.0, result.Bundle.Summary.Compliance, 0.001)
	assert.Equal(t, 7, result.Bundle.Summary.TotalEmployees)
	assert.Len(t, result.Bundle.Trend, 1)
	assert.Len(t, result.Bundle.Departments, 1)
	assert.Len(t, result.Bundle.Hourly, 1)
	assert.Equal(t, "Attendance held steady this month.", result.Summary)
}

func TestInsightsDegradesWithoutSummarizer(t *testing.T) {
	repo := &fakeAnalyticsRepo{
		lateRate: analytics.LateRate{TotalCheckIns: 10, LateCheckIns: 2},
	}
	svc := newTestService(repo, stubSummarizer{err: errors.New("circuit open")})

	result, err := svc.Insights(context.Background(), 30)
	require.NoError(t, err)

	// The statistics still come back, just without generated text.
	assert.Empty(t, result.Summary)
	assert.Equal(t, 10, result.Bundle.Summary.Total)
}

func TestInsightsEmptyRange(t *testing.T) {
	repo := &fakeAnalyticsRepo{}
	svc := newTestService(repo, stubSummarizer{})

	result, err := svc.Insights(context.Background(), 30)
	require.NoError(t, err)

	assert.Zero(t, result.Bundle.Summary.Total)
	assert.Zero(t, result.Bundle.Summary.Compliance)
}
