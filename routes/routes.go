package routes

import (
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware" // Alias to avoid conflict
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/GastonDeS/SportMatch-Back/handlers"
	"github.com/GastonDeS/SportMatch-Back/middleware"
)

func SetupRoutes(
	router *chi.Mux,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	eventHandler *handlers.EventHandler,
	sportHandler *handlers.SportHandler,
	participantHandler *handlers.ParticipantHandler,
	healthHandler *handlers.HealthHandler,
	webSocketHandler *handlers.WebSocketHandler,
	jwtSecret string,
) {
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Get("/health", healthHandler.HealthCheck)
	router.Get("/sports", sportHandler.GetSports)

	router.Post("/auth/signup", authHandler.Signup)
	router.Post("/auth/signin", authHandler.Signin)

	router.Route("/events", func(r chi.Router) {
		r.Get("/", eventHandler.SearchEvents)
		r.Get("/{eventId}", eventHandler.GetEvent)
		r.Get("/{eventId}/live", webSocketHandler.ServeEventFeed)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate([]byte(jwtSecret)))

			r.Post("/", eventHandler.CreateEvent)
			r.Put("/{eventId}/participants", participantHandler.JoinEvent)
			r.Delete("/{eventId}/participants", participantHandler.LeaveEvent)
			r.Get("/{eventId}/owner/participants", participantHandler.ListParticipants)
			r.Put("/{eventId}/owner/participants", participantHandler.AcceptParticipant)
			r.Delete("/{eventId}/owner/participants", participantHandler.RemoveParticipant)
		})
	})

	router.Route("/users", func(r chi.Router) {
		r.Get("/", userHandler.GetUsers)
		r.Get("/{userId}", userHandler.GetUser)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate([]byte(jwtSecret)))

			r.Put("/{userId}", userHandler.UpdateUser)
			r.Put("/{userId}/avatar", userHandler.UploadAvatar)
			r.Post("/{userId}/rating", userHandler.RateUser)
		})
	})

	router.Get("/swagger/*", httpSwagger.Handler())
}
