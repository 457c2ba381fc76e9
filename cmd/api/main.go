package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/student-attendance/internal/config"
	appHTTP "github.com/cmlabs-hris/student-attendance/internal/handler/http"
	"github.com/cmlabs-hris/student-attendance/internal/pkg/cron"
	"github.com/cmlabs-hris/student-attendance/internal/pkg/logger"
	"github.com/cmlabs-hris/student-attendance/internal/pkg/sse"
	attendanceService "github.com/cmlabs-hris/student-attendance/internal/service/attendance"
	"github.com/cmlabs-hris/student-attendance/internal/view"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	log := logger.New(os.Stdout, logger.Options{
		App:     cfg.App.Name,
		Version: cfg.App.Version,
		Env:     cfg.App.Env,
		Level:   cfg.SlogLevel(),
	})
	slog.SetDefault(log)

	hub := sse.NewHub(cfg.SSE.BufferSize)
	attendanceSvc := attendanceService.NewAttendanceService(hub, attendanceService.WithLogger(log))

	scheduler := cron.NewScheduler(log)
	attendanceJobs := cron.NewAttendanceJobs(attendanceSvc, log)
	scheduler.AddJob("roster_snapshot", cfg.Cron.SnapshotInterval, attendanceJobs.LogRosterSnapshot)

	renderer, err := view.NewRenderer()
	if err != nil {
		log.Error("Failed to initialize renderer", "error", err)
		os.Exit(1)
	}

	pageHandler := appHTTP.NewPageHandler(attendanceSvc, renderer, appHTTP.PageOptions{
		Title:     cfg.App.Name,
		Location:  cfg.Location(),
		KeepAlive: cfg.SSE.KeepAlive,
	})
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)

	router := appHTTP.NewRouter(
		log,
		appHTTP.RouterConfig{AllowedOrigins: cfg.CORS.AllowedOrigins},
		pageHandler,
		attendanceHandler,
	)

	// request contexts derive from baseCtx so event streams end on shutdown
	baseCtx, cancelBase := context.WithCancel(context.Background())
	defer cancelBase()

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return baseCtx },
	}
	server.RegisterOnShutdown(func() {
		log.Info("Closing live update streams", "subscribers", hub.TotalSubscribers())
		cancelBase()
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("Server running", "addr", fmt.Sprintf("http://localhost%s", cfg.Addr()))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Server error", "error", err)
			stop()
		}
	}()

	scheduler.Start(ctx)

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Graceful shutdown failed", "error", err)
		os.Exit(1)
	}
	scheduler.Stop()
	// last snapshot before exit
	scheduler.RunOnce(context.Background())
	log.Info("Server stopped")
}
