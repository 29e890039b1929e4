package controller

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"go.uber.org/zap"
)

// authRateLimit caps credential attempts per client IP.
const (
	authRateLimit  = 10
	authRatePeriod = time.Minute
)

func NewRouter(
	secret string,
	corsOrigins []string,
	authHandler *AuthHandler,
	catalogHandler *CatalogHandler,
	appointmentHandler *AppointmentHandler,
	adminHandler *AdminHandler,
	logger *zap.Logger,
) *chi.Mux {
	router := chi.NewRouter()

	router.Use(middleware.Recoverer)
	router.Use(RequestLogger(logger))
	// origins must be explicit: browsers refuse a wildcard on
	// credentialed requests, which would break the session cookie
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   corsOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Use(httprate.LimitByIP(authRateLimit, authRatePeriod))
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/logout", authHandler.Logout)
		})

		// public browsing
		r.Get("/specialties", catalogHandler.ListSpecialties)
		r.Get("/specialties/{id}/doctors", catalogHandler.ListDoctorsBySpecialty)

		// patient surface
		r.Group(func(r chi.Router) {
			r.Use(Authenticate(secret))

			r.Get("/doctors/{id}/slots", catalogHandler.ListSlots)
			r.Post("/appointments", appointmentHandler.Book)
			r.Get("/appointments", appointmentHandler.List)
			r.Post("/appointments/{id}/cancel", appointmentHandler.Cancel)
		})

		// administrative surface
		r.Route("/admin", func(r chi.Router) {
			r.Use(Authenticate(secret))
			r.Use(RequireAdmin)

			r.Post("/specialties", adminHandler.CreateSpecialty)
			r.Put("/specialties/{id}", adminHandler.UpdateSpecialty)
			r.Delete("/specialties/{id}", adminHandler.DeleteSpecialty)

			r.Get("/doctors", adminHandler.ListDoctors)
			r.Post("/doctors", adminHandler.CreateDoctor)
			r.Put("/doctors/{id}", adminHandler.UpdateDoctor)
			r.Delete("/doctors/{id}", adminHandler.DeleteDoctor)

			r.Get("/appointments", adminHandler.ListAppointments)
			r.Post("/appointments/{id}/complete", adminHandler.CompleteAppointment)
			r.Post("/appointments/{id}/cancel", adminHandler.CancelAppointment)
		})
	})

	return router
}
