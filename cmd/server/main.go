package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"netsecurepro/internal/api"
	"netsecurepro/internal/api/view"
	"netsecurepro/internal/app/service"
	"netsecurepro/internal/common/security"
	"netsecurepro/internal/domain/repository"
	"netsecurepro/internal/platform/config"
	"netsecurepro/internal/platform/database"
	"netsecurepro/internal/platform/logging"
)

func main() {
	// 1. Load Configuration
	if err := config.Load(); err != nil {
		log.Fatalf("Could not load configuration: %v", err)
	}
	logging.Setup(config.AppConfig)
	slog.Info("configuration loaded", "env", config.AppConfig.Env)

	// 2. Initialize Sessions
	security.InitSessions()

	// 3. Initialize Database (creates the schema if absent)
	if err := database.Connect(); err != nil {
		slog.Error("could not connect to database", "error", err)
		os.Exit(1)
	}
	defer database.Close()

	// 4. Initialize Repositories
	userRepo := repository.NewGormUserRepository(database.DB)
	alertRepo := repository.NewGormAlertRepository(database.DB)
	logRepo := repository.NewGormLogRepository(database.DB)

	// 5. Initialize Services
	authService := service.NewAuthService(userRepo)
	dashboardService := service.NewDashboardService(alertRepo, logRepo)

	// 6. Initialize Views & Router
	renderer, err := view.New()
	if err != nil {
		slog.Error("could not parse templates", "error", err)
		os.Exit(1)
	}
	router := api.NewRouter(authService, dashboardService, userRepo, renderer)

	server := &http.Server{
		Addr:         ":" + config.AppConfig.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 7. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", config.AppConfig.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	<-stop

	slog.Info("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown failed", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
