package handler

import (
	"context"
	"io"
	"net/http"

	"ratesboard/internal/domain"
	"ratesboard/internal/notify"
	"ratesboard/internal/rate"
	"ratesboard/internal/web"

	"github.com/go-chi/render"
	"github.com/google/uuid"
)

type RatesService interface {
	Load(ctx context.Context) error
	Query(q rate.Query) (rate.View, error)
	ExportRows(scope rate.ExportScope, filter string) []domain.Rate
	Snapshot() rate.Snapshot
}

type QueryValidator interface {
	Validate(q rate.Query) error
	Defaults() rate.Query
}

type Exporter interface {
	ServeCSV(w http.ResponseWriter, rows []domain.Rate) error
	ServeXLSX(w http.ResponseWriter, rows []domain.Rate) error
}

type Notifications interface {
	Visible() []domain.Notification
	Dismiss(id uuid.UUID) bool
	Subscribe() (<-chan notify.Event, func())
}

type PageRenderer interface {
	RenderIndex(w io.Writer, data web.IndexData) error
}

type Handler struct {
	service       RatesService
	validator     QueryValidator
	exporter      Exporter
	notifications Notifications
	pages         PageRenderer
}

func NewRateHandler(service RatesService, validator QueryValidator, exporter Exporter, notifications Notifications, pages PageRenderer) *Handler {
	return &Handler{
		service:       service,
		validator:     validator,
		exporter:      exporter,
		notifications: notifications,
		pages:         pages,
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, r *http.Request, statusCode int, errorMsg string) {
	render.Status(r, statusCode)
	render.JSON(w, r, errorResponse{
		Error: errorMsg,
	})
}
