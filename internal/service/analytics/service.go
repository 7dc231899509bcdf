package analytics

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/faceclock/attendance-backend-go/internal/domain/analytics"
	"github.com/faceclock/attendance-backend-go/internal/domain/employee"
	"github.com/faceclock/attendance-backend-go/internal/pkg/insight"
	"golang.org/x/sync/errgroup"
)

const dateLayout = "2006-01-02"

// AnalyticsServiceImpl aggregates stored attendance records. Every
// range it hands to the repository is clamped so no date after today
// (in the configured timezone) is ever queried.
type AnalyticsServiceImpl struct {
	analytics.AnalyticsRepository
	employeeRepo employee.EmployeeRepository
	summarizer   insight.Summarizer
	logger       *slog.Logger
	loc          *time.Location
}

func NewAnalyticsService(
	repo analytics.AnalyticsRepository,
	employeeRepo employee.EmployeeRepository,
	summarizer insight.Summarizer,
	logger *slog.Logger,
	loc *time.Location,
) analytics.AnalyticsService {
	if loc == nil {
		loc = time.Local
	}
	return &AnalyticsServiceImpl{
		AnalyticsRepository: repo,
		employeeRepo:        employeeRepo,
		summarizer:          summarizer,
		logger:              logger,
		loc:                 loc,
	}
}

func (s *AnalyticsServiceImpl) today() string {
	return time.Now().In(s.loc).Format(dateLayout)
}

// clampEnd caps a range's end at today so half-open records created by
// a clock skew or a caller asking about the future never show up as
// absences.
func (s *AnalyticsServiceImpl) clampEnd(endDate string) string {
	if today := s.today(); endDate > today {
		return today
	}
	return endDate
}

// rangeForDays returns [today-(days-1), today] in the configured
// timezone.
func (s *AnalyticsServiceImpl) rangeForDays(days int) (string, string) {
	if days < 1 {
		days = 1
	}
	now := time.Now().In(s.loc)
	start := now.AddDate(0, 0, -(days - 1))
	return start.Format(dateLayout), now.Format(dateLayout)
}

// Trend implements analytics.AnalyticsService.
func (s *AnalyticsServiceImpl) Trend(ctx context.Context, days int) ([]analytics.TrendPoint, error) {
	startDate, endDate := s.rangeForDays(days)
	return s.AnalyticsRepository.TrendByDay(ctx, startDate, endDate)
}

// LateArrivalRate implements analytics.AnalyticsService.
func (s *AnalyticsServiceImpl) LateArrivalRate(ctx context.Context, startDate, endDate string) (analytics.LateRate, error) {
	return s.AnalyticsRepository.LateArrivalRate(ctx, startDate, s.clampEnd(endDate))
}

// WorkDuration implements analytics.AnalyticsService.
func (s *AnalyticsServiceImpl) WorkDuration(ctx context.Context, startDate, endDate string) (analytics.DurationStats, error) {
	return s.AnalyticsRepository.WorkDurationStats(ctx, startDate, s.clampEnd(endDate))
}

// DepartmentPresence implements analytics.AnalyticsService.
func (s *AnalyticsServiceImpl) DepartmentPresence(ctx context.Context, date string) ([]analytics.DepartmentCount, error) {
	return s.AnalyticsRepository.DepartmentPresence(ctx, s.clampEnd(date))
}

// HourlyHistogram implements analytics.AnalyticsService.
func (s *AnalyticsServiceImpl) HourlyHistogram(ctx context.Context, date string) ([]analytics.HourlyPoint, error) {
	return s.AnalyticsRepository.HourlyCheckIns(ctx, s.clampEnd(date), s.loc.String())
}

// Insights implements analytics.AnalyticsService. The statistics fan
// out concurrently; the summarizer runs afterwards and degrades to an
// empty summary when unavailable, never failing the bundle.
func (s *AnalyticsServiceImpl) Insights(ctx context.Context, days int) (analytics.InsightResponse, error) {
	startDate, endDate := s.rangeForDays(days)

	var bundle analytics.InsightBundle
	var lateRate analytics.LateRate

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		trend, err := s.AnalyticsRepository.TrendByDay(gCtx, startDate, endDate)
		if err != nil {
			return fmt.Errorf("failed to get attendance trend: %w", err)
		}
		bundle.Trend = trend
		return nil
	})

	g.Go(func() error {
		rate, err := s.AnalyticsRepository.LateArrivalRate(gCtx, startDate, endDate)
		if err != nil {
			return fmt.Errorf("failed to get late arrival rate: %w", err)
		}
		lateRate = rate
		return nil
	})

	g.Go(func() error {
		duration, err := s.AnalyticsRepository.WorkDurationStats(gCtx, startDate, endDate)
		if err != nil {
			return fmt.Errorf("failed to get work duration stats: %w", err)
		}
		bundle.Duration = duration
		return nil
	})

	g.Go(func() error {
		departments, err := s.AnalyticsRepository.DepartmentPresence(gCtx, endDate)
		if err != nil {
			return fmt.Errorf("failed to get department presence: %w", err)
		}
		bundle.Departments = departments
		return nil
	})

	g.Go(func() error {
		hourly, err := s.AnalyticsRepository.HourlyCheckIns(gCtx, endDate, s.loc.String())
		if err != nil {
			return fmt.Errorf("failed to get hourly check-ins: %w", err)
		}
		bundle.Hourly = hourly
		return nil
	})

	g.Go(func() error {
		count, err := s.employeeRepo.CountActive(gCtx)
		if err != nil {
			return fmt.Errorf("failed to count active employees: %w", err)
		}
		bundle.Summary.TotalEmployees = count
		return nil
	})

	if err := g.Wait(); err != nil {
		return analytics.InsightResponse{}, err
	}

	bundle.Summary.Total = lateRate.TotalCheckIns
	bundle.Summary.Critical = lateRate.LateCheckIns
	if lateRate.TotalCheckIns > 0 {
		onTime := lateRate.TotalCheckIns - lateRate.LateCheckIns
		bundle.Summary.Compliance = float64(onTime) / float64(lateRate.TotalCheckIns) * 100
	}

	summary, err := s.summarizer.Summarize(ctx, bundle)
	if err != nil {
		s.logger.Warn("insight summarizer unavailable, returning bundle without summary", "error", err)
		summary = ""
	}

	return analytics.InsightResponse{Bundle: bundle, Summary: summary}, nil
}
