package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/haulops/payroll-engine/internal/app"
	"github.com/haulops/payroll-engine/internal/config"
	appHTTP "github.com/haulops/payroll-engine/internal/handler/http"
	"github.com/haulops/payroll-engine/internal/pkg/cron"
	"github.com/haulops/payroll-engine/internal/pkg/jwt"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: appHTTP.ParseLogLevel(cfg.App.LogLevel),
	})))

	db, err := app.OpenDB(cfg)
	if err != nil {
		slog.Error("Error connecting to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.App.RunMigrations {
		applied, err := db.Migrate(ctx, cfg.App.MigrationsDir)
		if err != nil {
			slog.Error("Migration failed", "error", err)
			return
		}
		slog.Info("Migrations applied", "count", applied)
	}

	services := app.NewServices(cfg, db)
	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	router := appHTTP.NewRouter(cfg, JWTService, appHTTP.Handlers{
		Shift:      appHTTP.NewShiftHandler(services.Shift),
		Attendance: appHTTP.NewAttendanceHandler(services.Attendance),
		Tariff:     appHTTP.NewTariffHandler(services.Tariff),
		Payroll:    appHTTP.NewPayrollHandler(services.Payroll),
		Report:     appHTTP.NewReportHandler(services.Report),
	})

	scheduler := cron.NewScheduler()
	cron.NewShiftJobs(services.Shift, cfg.Cron.StaleShiftInterval).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Server running", "addr", server.Addr, "env", cfg.App.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
	}
	slog.Info("Server stopped")
}
