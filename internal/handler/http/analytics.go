package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/faceclock/attendance-backend-go/internal/domain/analytics"
	"github.com/faceclock/attendance-backend-go/internal/handler/http/response"
	"github.com/faceclock/attendance-backend-go/internal/pkg/validator"
)

type AnalyticsHandler interface {
	Trend(w http.ResponseWriter, r *http.Request)
	LateRate(w http.ResponseWriter, r *http.Request)
	Duration(w http.ResponseWriter, r *http.Request)
	Departments(w http.ResponseWriter, r *http.Request)
	Hourly(w http.ResponseWriter, r *http.Request)
	Insights(w http.ResponseWriter, r *http.Request)
}

type analyticsHandlerImpl struct {
	analyticsService analytics.AnalyticsService
}

func NewAnalyticsHandler(analyticsService analytics.AnalyticsService) AnalyticsHandler {
	return &analyticsHandlerImpl{
		analyticsService: analyticsService,
	}
}

func queryDays(r *http.Request, fallback int) int {
	v := r.URL.Query().Get("days")
	if v == "" {
		return fallback
	}
	days, err := strconv.Atoi(v)
	if err != nil || days < 1 {
		return fallback
	}
	return days
}

// queryDateRange reads start_date/end_date, defaulting to the last 30
// days ending today.
func queryDateRange(r *http.Request) (string, string, error) {
	const layout = "2006-01-02"

	startDate := r.URL.Query().Get("start_date")
	endDate := r.URL.Query().Get("end_date")

	var errs validator.ValidationErrors
	if startDate != "" {
		if _, ok := validator.IsValidDate(startDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "start_date", Message: "must be YYYY-MM-DD"})
		}
	}
	if endDate != "" {
		if _, ok := validator.IsValidDate(endDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must be YYYY-MM-DD"})
		}
	}
	if len(errs) > 0 {
		return "", "", errs
	}

	now := time.Now()
	if endDate == "" {
		endDate = now.Format(layout)
	}
	if startDate == "" {
		startDate = now.AddDate(0, 0, -29).Format(layout)
	}
	return startDate, endDate, nil
}

func queryDate(r *http.Request) (string, error) {
	date := r.URL.Query().Get("date")
	if date == "" {
		return time.Now().Format("2006-01-02"), nil
	}
	if _, ok := validator.IsValidDate(date); !ok {
		return "", validator.ValidationErrors{
			{Field: "date", Message: "must be YYYY-MM-DD"},
		}
	}
	return date, nil
}

// Trend implements AnalyticsHandler.
func (h *analyticsHandlerImpl) Trend(w http.ResponseWriter, r *http.Request) {
	result, err := h.analyticsService.Trend(r.Context(), queryDays(r, 30))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// LateRate implements AnalyticsHandler.
func (h *analyticsHandlerImpl) LateRate(w http.ResponseWriter, r *http.Request) {
	startDate, endDate, err := queryDateRange(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.analyticsService.LateArrivalRate(r.Context(), startDate, endDate)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// Duration implements AnalyticsHandler.
func (h *analyticsHandlerImpl) Duration(w http.ResponseWriter, r *http.Request) {
	startDate, endDate, err := queryDateRange(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.analyticsService.WorkDuration(r.Context(), startDate, endDate)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// Departments implements AnalyticsHandler.
func (h *analyticsHandlerImpl) Departments(w http.ResponseWriter, r *http.Request) {
	date, err := queryDate(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.analyticsService.DepartmentPresence(r.Context(), date)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// Hourly implements AnalyticsHandler.
func (h *analyticsHandlerImpl) Hourly(w http.ResponseWriter, r *http.Request) {
	date, err := queryDate(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.analyticsService.HourlyHistogram(r.Context(), date)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// Insights implements AnalyticsHandler.
func (h *analyticsHandlerImpl) Insights(w http.ResponseWriter, r *http.Request) {
	result, err := h.analyticsService.Insights(r.Context(), queryDays(r, 30))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}
