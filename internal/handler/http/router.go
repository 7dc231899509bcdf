package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
)

func NewRouter(
	env string,
	attendanceHandler AttendanceHandler,
	scheduleHandler ScheduleHandler,
	employeeHandler EmployeeHandler,
	analyticsHandler AnalyticsHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "attendance-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/attendance", func(r chi.Router) {
			r.Post("/resolve", attendanceHandler.Resolve)
			r.Get("/records", attendanceHandler.ListRecords)
		})

		r.Route("/schedule", func(r chi.Router) {
			r.Get("/", scheduleHandler.GetWorkSchedule)
			r.Put("/", scheduleHandler.UpdateWorkSchedule)
		})

		r.Route("/employees", func(r chi.Router) {
			r.Get("/", employeeHandler.List)
			r.Post("/", employeeHandler.Create)
			r.Route("/{employeeID}", func(r chi.Router) {
				r.Get("/", employeeHandler.Get)
				r.Put("/", employeeHandler.Update)
				r.Delete("/", employeeHandler.Deactivate)
			})
		})

		r.Route("/analytics", func(r chi.Router) {
			r.Get("/trend", analyticsHandler.Trend)
			r.Get("/late-rate", analyticsHandler.LateRate)
			r.Get("/duration", analyticsHandler.Duration)
			r.Get("/departments", analyticsHandler.Departments)
			r.Get("/hourly", analyticsHandler.Hourly)
		})

		r.Route("/insights", func(r chi.Router) {
			r.Get("/summary", analyticsHandler.Insights)
		})
	})
	return r
}
