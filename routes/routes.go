package routes

import (
	"github.com/cupstage/cupstage/handlers"
	"github.com/cupstage/cupstage/middleware"
	"github.com/cupstage/cupstage/models"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func SetupRoutes(
	router *chi.Mux,
	jwtSecret string,
	authHandler *handlers.AuthHandler,
	tournamentHandler *handlers.TournamentHandler,
	participantHandler *handlers.ParticipantHandler,
	matchHandler *handlers.MatchHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	authenticate := middleware.Authenticate(jwtSecret)
	organizerOnly := middleware.Authorize(models.RoleOrganizer, models.RoleAdmin)

	router.Post("/auth/signup", authHandler.SignupHandler)
	router.Post("/auth/signin", authHandler.SigninHandler)

	router.Route("/tournaments", func(r chi.Router) {
		// Public read surface: anyone can browse tournaments and the
		// computed bracket or table.
		r.Get("/", tournamentHandler.ListHandler)
		r.Get("/{tournamentID}", tournamentHandler.GetByIDHandler)
		r.Get("/{tournamentID}/view", tournamentHandler.ViewHandler)
		r.Get("/{tournamentID}/participants", participantHandler.ListHandler)
		r.Get("/{tournamentID}/matches", matchHandler.ListHandler)

		// Organizer-only mutations.
		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Use(organizerOnly)

			r.Post("/", tournamentHandler.CreateHandler)
			r.Put("/{tournamentID}", tournamentHandler.UpdateDetailsHandler)
			r.Patch("/{tournamentID}/status", tournamentHandler.UpdateStatusHandler)
			r.Put("/{tournamentID}/logo", tournamentHandler.UploadLogoHandler)
			r.Delete("/{tournamentID}", tournamentHandler.DeleteHandler)

			r.Post("/{tournamentID}/participants", participantHandler.RegisterHandler)
			r.Delete("/{tournamentID}/participants/{participantID}", participantHandler.RemoveHandler)

			r.Post("/{tournamentID}/matches", matchHandler.ScheduleHandler)
		})
	})

	router.Route("/matches", func(r chi.Router) {
		r.Use(authenticate)
		r.Use(organizerOnly)

		r.Patch("/{matchID}/result", matchHandler.ReportResultHandler)
		r.Patch("/{matchID}/schedule", matchHandler.RescheduleHandler)
		r.Delete("/{matchID}", matchHandler.DeleteHandler)
	})

	router.Get("/ws/tournaments/{tournamentID}", webSocketHandler.ServeWs)
}
