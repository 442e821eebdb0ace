package http

import (
	"log/slog"
	"os"
	"strings"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/haulops/payroll-engine/internal/config"
	"github.com/haulops/payroll-engine/internal/handler/http/middleware"
	"github.com/haulops/payroll-engine/internal/pkg/jwt"
)

// Version is stamped at build time with -ldflags.
var Version = "dev"

type Handlers struct {
	Shift      ShiftHandler
	Attendance AttendanceHandler
	Tariff     TariffHandler
	Payroll    PayrollHandler
	Report     ReportHandler
}

// ParseLogLevel maps LOG_LEVEL onto slog levels, defaulting to info.
func ParseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func NewRouter(cfg *config.Config, JWTService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(cfg.App.Env != "development")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "haulops-payroll"),
		slog.String("version", Version),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.App.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  ParseLogLevel(cfg.App.LogLevel),
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
		r.Use(middleware.AuthRequired)

		r.Route("/shifts", func(r chi.Router) {
			r.Post("/clock-in", h.Shift.ClockIn)
			r.Post("/clock-out", h.Shift.ClockOut)
			r.Post("/{id}/truck-usages", h.Shift.RecordTruckUsage)
		})

		r.Route("/attendance", func(r chi.Router) {
			r.Get("/me", h.Attendance.GetMyMonth)

			r.With(middleware.RequireManager).Get("/employees/{id}", h.Attendance.GetEmployeeLedger)
		})

		// Manager only
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireManager)

			r.Get("/tariffs/resolve", h.Tariff.Resolve)

			r.Route("/payroll", func(r chi.Router) {
				r.Post("/preview", h.Payroll.Preview)
				r.Route("/payslips", func(r chi.Router) {
					r.Get("/", h.Payroll.List)
					r.Post("/", h.Payroll.Publish)
					r.Post("/batch", h.Payroll.PublishMonth)
					r.Get("/{id}", h.Payroll.Get)
					r.Get("/{id}/pdf", h.Payroll.DownloadPDF)
				})
			})

			r.Route("/reports", func(r chi.Router) {
				r.Get("/daily", h.Report.Daily)
				r.Get("/monthly", h.Report.Monthly)
				r.Get("/monthly/export", h.Report.ExportMonthly)
			})
		})
	})

	return r
}
