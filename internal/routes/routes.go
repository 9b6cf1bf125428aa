package routes

import (
	"net/http"

	"github.com/dcyoung23/balance-web/internal/handlers"
	"github.com/dcyoung23/balance-web/internal/metrics"
	appmw "github.com/dcyoung23/balance-web/internal/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

func NewRoutes() *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(metrics.Instrument)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Works Fine!"))
	})

	r.Post("/auth/register", handlers.RegisterHandler)
	r.Post("/auth/login", handlers.LoginHandler)
	r.With(appmw.Authenticated).Get("/auth/me", handlers.MeHandler)

	r.With(appmw.Authenticated).Get("/balance", handlers.GetBalanceHandler)
	r.With(appmw.Authenticated).Put("/balance", handlers.UpdateBalanceHandler)

	r.With(appmw.Authenticated).Route("/schedule", func(r chi.Router) {
		r.Get("/", handlers.GetScheduleHandler)
		r.Post("/", handlers.AddScheduleItemHandler)
		r.Get("/{id}", handlers.GetScheduleItemHandler)
		r.Put("/{id}", handlers.EditScheduleItemHandler)
		r.Post("/{id}/post", handlers.PostScheduleItemHandler)
		r.Post("/{id}/snooze", handlers.SnoozeScheduleItemHandler)
		r.Post("/{id}/complete", handlers.CompleteScheduleItemHandler)
	})

	r.With(appmw.Authenticated).Get("/lookups", handlers.LookupsHandler)

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return r
}
