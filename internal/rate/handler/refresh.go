package handler

import (
	"context"
	"errors"
	"net/http"

	"ratesboard/internal/rate"

	"github.com/go-chi/render"
	"github.com/sirupsen/logrus"
)

const (
	refreshStatusLoaded = "loaded"
)

type RefreshResponse struct {
	Status string `json:"status" example:"loaded"`
	Total  int    `json:"total" example:"64"`
}

// Refresh godoc
// @Summary Re-fetch exchange rates
// @Description Fetch the rate set again and replace the loaded rows
// @Tags Rates
// @Produce json
// @Success 200 {object} RefreshResponse
// @Failure 409 {object} errorResponse "superseded by a newer fetch"
// @Failure 502 {object} errorResponse "upstream fetch failed"
// @Router /rates/refresh [post]
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	err := h.service.Load(r.Context())
	switch {
	case err == nil:
	case errors.Is(err, rate.ErrFetchSuperseded):
		writeError(w, r, http.StatusConflict, err.Error())
		return
	case errors.Is(err, context.Canceled):
		logrus.WithFields(logrus.Fields{"handler": "Refresh"}).Info("client went away before refresh finished")
		return
	default:
		logrus.WithError(err).WithFields(logrus.Fields{"handler": "Refresh"}).Error("exchange rates refresh failed")
		writeError(w, r, http.StatusBadGateway, err.Error())
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, RefreshResponse{
		Status: refreshStatusLoaded,
		Total:  len(h.service.Snapshot().Rows),
	})
}
