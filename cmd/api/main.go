package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/faceclock/attendance-backend-go/internal/config"
	appHTTP "github.com/faceclock/attendance-backend-go/internal/handler/http"
	"github.com/faceclock/attendance-backend-go/internal/pkg/database"
	"github.com/faceclock/attendance-backend-go/internal/pkg/insight"
	"github.com/faceclock/attendance-backend-go/internal/pkg/notify"
	"github.com/faceclock/attendance-backend-go/internal/repository/postgresql"
	analyticsService "github.com/faceclock/attendance-backend-go/internal/service/analytics"
	attendanceService "github.com/faceclock/attendance-backend-go/internal/service/attendance"
	employeeService "github.com/faceclock/attendance-backend-go/internal/service/employee"
	scheduleService "github.com/faceclock/attendance-backend-go/internal/service/schedule"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.App.LogLevel),
	})).With(
		slog.String("app", "attendance-backend"),
		slog.String("env", cfg.App.Env),
	)

	loc, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		log.Fatal("Invalid APP_TIMEZONE: ", err)
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	recordRepo := postgresql.NewRecordRepository(db)
	scheduleRepo := postgresql.NewScheduleRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	analyticsRepo := postgresql.NewAnalyticsRepository(db)

	var notifier notify.Notifier = notify.NewLogNotifier(logger)
	if cfg.Notify.QueueURL != "" {
		awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
			awsconfig.WithRegion(cfg.Notify.Region),
		)
		if err != nil {
			log.Fatal("Failed to load AWS config: ", err)
		}
		notifier = notify.NewSQSNotifier(sqs.NewFromConfig(awsCfg), cfg.Notify.QueueURL)
	}

	var summarizer insight.Summarizer = insight.Disabled{}
	if cfg.Insight.APIURL != "" {
		summarizer = insight.NewHTTPClient(cfg.Insight.APIURL)
	}

	scheduleSvc := scheduleService.NewScheduleService(scheduleRepo)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo)
	attendanceSvc := attendanceService.NewAttendanceService(
		recordRepo,
		employeeRepo,
		scheduleSvc,
		notifier,
		logger,
		loc,
	)
	analyticsSvc := analyticsService.NewAnalyticsService(
		analyticsRepo,
		employeeRepo,
		summarizer,
		logger,
		loc,
	)

	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	scheduleHandler := appHTTP.NewScheduleHandler(scheduleSvc)
	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)
	analyticsHandler := appHTTP.NewAnalyticsHandler(analyticsSvc)

	router := appHTTP.NewRouter(
		cfg.App.Env,
		attendanceHandler,
		scheduleHandler,
		employeeHandler,
		analyticsHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
