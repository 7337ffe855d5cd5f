package api

import (
	"net/http"

	_ "ratesboard/docs"
	"ratesboard/internal/rate/handler"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	swagger "github.com/swaggo/http-swagger"
)

func NewRouter(rateHandler *handler.Handler, metricsHandler http.Handler) *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Heartbeat("/healthz"))

	// Swagger UI
	router.Get("/swagger/*", swagger.WrapHandler)
	router.Handle("/metrics", metricsHandler)

	router.Get("/", rateHandler.Index)
	router.Get("/ws/notifications", rateHandler.NotificationsWS)

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/rates", rateHandler.ListRates)
		r.Post("/rates/refresh", rateHandler.Refresh)
		r.Get("/rates/export.csv", rateHandler.ExportCSV)
		r.Get("/rates/export.xlsx", rateHandler.ExportXLSX)

		r.Get("/notifications", rateHandler.ListNotifications)
		r.Delete("/notifications/{id}", rateHandler.DismissNotification)
	})
	return router
}
