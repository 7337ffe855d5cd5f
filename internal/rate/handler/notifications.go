package handler

import (
	"net/http"

	"ratesboard/internal/domain"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"
)

type ListNotificationsResponse struct {
	Notifications []domain.Notification `json:"notifications"`
}

// ListNotifications godoc
// @Summary List visible notifications
// @Tags Notifications
// @Produce json
// @Success 200 {object} ListNotificationsResponse
// @Router /notifications [get]
func (h *Handler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusOK)
	render.JSON(w, r, ListNotificationsResponse{
		Notifications: h.notifications.Visible(),
	})
}

// DismissNotification godoc
// @Summary Dismiss a notification
// @Description Remove a visible or queued notification; the next queued one is shown
// @Tags Notifications
// @Param id path string true "Notification ID"
// @Success 204
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /notifications/{id} [delete]
func (h *Handler) DismissNotification(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid notification ID format")
		return
	}

	if !h.notifications.Dismiss(id) {
		writeError(w, r, http.StatusNotFound, domain.ErrNotificationNotFound.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
