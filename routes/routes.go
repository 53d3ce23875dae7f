package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/Dosada05/campus-tournaments/handlers"
	"github.com/Dosada05/campus-tournaments/middleware"
)

type Options struct {
	Logger         zerolog.Logger
	AllowedOrigins []string
	Sessions       middleware.SessionChecker
	RequestTimeout time.Duration
}

func SetupRoutes(
	router chi.Router,
	opts Options,
	tournamentHandler *handlers.TournamentHandler,
	registrationHandler *handlers.RegistrationHandler,
	leaderboardHandler *handlers.LeaderboardHandler,
	dashboardHandler *handlers.DashboardHandler,
	adminHandler *handlers.AdminHandler,
) {
	router.Use(middleware.RequestLogger(opts.Logger))
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders:   []string{"Content-Disposition", "X-Export-URL", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	if opts.RequestTimeout > 0 {
		router.Use(chiMiddleware.Timeout(opts.RequestTimeout))
	}

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	router.Route("/api", func(r chi.Router) {
		// Публичная часть портала
		r.Get("/tournaments", tournamentHandler.ListHandler)
		r.Route("/tournaments/{tournamentID}", func(r chi.Router) {
			r.Get("/", tournamentHandler.GetByIDHandler)
			r.Post("/registrations", registrationHandler.RegisterHandler)
			r.Get("/leaderboard", leaderboardHandler.TournamentHandler)
		})
		r.Get("/registrations", registrationHandler.LookupHandler)
		r.Get("/leaderboards", leaderboardHandler.PublicHandler)

		r.Route("/admin", func(r chi.Router) {
			r.Post("/login", adminHandler.LoginHandler)
			r.Post("/logout", adminHandler.LogoutHandler)
			r.Get("/session", adminHandler.SessionHandler)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAdmin(opts.Sessions))

				r.Get("/tournaments", dashboardHandler.OverviewHandler)
				r.Post("/tournaments", tournamentHandler.CreateHandler)
				r.Route("/tournaments/{tournamentID}", func(r chi.Router) {
					r.Put("/", tournamentHandler.UpdateHandler)
					r.Delete("/", tournamentHandler.DeleteHandler)
					r.Get("/form", tournamentHandler.GetFormHandler)
					r.Get("/registrations", registrationHandler.RosterHandler)
					r.Get("/registrations/export", registrationHandler.ExportHandler)
					r.Get("/leaderboard", leaderboardHandler.TournamentHandler)
					r.Post("/leaderboard", leaderboardHandler.AddEntryHandler)
				})
				r.Delete("/leaderboard/{entryID}", leaderboardHandler.DeleteEntryHandler)
			})
		})
	})
}
