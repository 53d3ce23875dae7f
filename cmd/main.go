package main

import (
	"context"
	"errors"
	"fmt"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/Dosada05/campus-tournaments/config"
	"github.com/Dosada05/campus-tournaments/db"
	"github.com/Dosada05/campus-tournaments/handlers"
	"github.com/Dosada05/campus-tournaments/logger"
	"github.com/Dosada05/campus-tournaments/repositories"
	api "github.com/Dosada05/campus-tournaments/routes"
	"github.com/Dosada05/campus-tournaments/services"
	"github.com/Dosada05/campus-tournaments/storage"
	"github.com/Dosada05/campus-tournaments/utils"
	"github.com/Dosada05/campus-tournaments/validation"
)

const (
	requestTimeout  = 30 * time.Second
	shutdownTimeout = 15 * time.Second
)

func main() {
	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		bootLogger := logger.New("info")
		bootLogger.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.New(cfg.LogLevel)
	log.Info().
		Int("port", cfg.ServerPort).
		Str("campus_timezone", cfg.CampusLocation.String()).
		Msg("configuration loaded")

	// Подключение к базе данных
	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close database connection")
		} else {
			log.Info().Msg("database connection closed")
		}
	}()
	log.Info().Msg("database connection established")

	if err := db.Migrate(dbConn, log); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Архив выгрузок в Cloudflare R2 (необязательно)
	var uploader storage.FileUploader
	if cfg.StorageEnabled() {
		uploader, err = storage.NewCloudflareR2Uploader(context.Background(), storage.CloudflareR2UploaderConfig{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
			PublicBaseURL:   cfg.R2PublicBaseURL,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize Cloudflare R2 uploader")
		}
		log.Info().Str("bucket", cfg.R2BucketName).Msg("Cloudflare R2 export archive enabled")
	} else {
		log.Info().Msg("export archive disabled: R2 is not configured")
	}

	// Инициализация репозиториев
	tournamentRepo := repositories.NewPostgresTournamentRepository(dbConn)
	registrationRepo := repositories.NewPostgresRegistrationRepository(dbConn)
	leaderboardRepo := repositories.NewPostgresLeaderboardRepository(dbConn)

	// Инициализация сервисов
	validator := validation.New(cfg.Departments)
	verifier, err := services.NewStaticCredentialVerifier(cfg.AdminUsername, cfg.AdminPassword, utils.BcryptCost)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize admin credentials")
	}

	tournamentService := services.NewTournamentService(tournamentRepo, validator, cfg.CampusLocation, time.Now)
	registrationService := services.NewRegistrationService(tournamentRepo, registrationRepo, validator, time.Now)
	leaderboardService := services.NewLeaderboardService(tournamentRepo, leaderboardRepo, validator, time.Now)
	dashboardService := services.NewDashboardService(tournamentRepo, time.Now)
	exportService := services.NewExportService(tournamentRepo, registrationRepo, uploader, cfg.CampusLocation, time.Now)
	sessionService := services.NewAdminSessionService(verifier, cfg.SessionSecret, cfg.SessionTTL, time.Now)
	log.Info().Msg("services initialized")

	// Настройка маршрутизатора
	router := chi.NewRouter()
	api.SetupRoutes(
		router,
		api.Options{
			Logger:         log,
			AllowedOrigins: cfg.AllowedOrigins,
			Sessions:       sessionService,
			RequestTimeout: requestTimeout,
		},
		handlers.NewTournamentHandler(tournamentService),
		handlers.NewRegistrationHandler(registrationService, exportService),
		handlers.NewLeaderboardHandler(leaderboardService),
		handlers.NewDashboardHandler(dashboardService),
		handlers.NewAdminHandler(sessionService, cfg.SessionTTL),
	)

	// Настройка и запуск HTTP-сервера
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: requestTimeout + 5*time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     stdlog.New(log.With().Str("component", "http").Logger(), "", 0),
	}

	if err := run(server, log); err != nil {
		log.Error().Err(err).Msg("server terminated with error")
		os.Exit(1)
	}
	log.Info().Msg("application exited")
}

// run запускает сервер и ждёт SIGINT/SIGTERM для плавной остановки.
func run(server *http.Server, log zerolog.Logger) error {
	serverErrors := make(chan error, 1)
	go func() {
		log.Info().Str("address", server.Addr).Msg("starting server")
		serverErrors <- server.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		log.Info().Msg("server stopped gracefully")
		return nil
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			if closeErr := server.Close(); closeErr != nil {
				log.Error().Err(closeErr).Msg("failed to force close server")
			}
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		log.Info().Msg("server shutdown complete")
		return nil
	}
}
