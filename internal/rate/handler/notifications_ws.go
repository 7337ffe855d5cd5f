package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"ratesboard/internal/domain"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const (
	wsWriteWait      = 10 * time.Second
	wsPongWait       = 60 * time.Second
	wsPingPeriod     = (wsPongWait * 9) / 10
	wsMaxMessageSize = 512

	wsFrameSnapshot = "snapshot"
	wsFrameDismiss  = "dismiss"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

type wsSnapshotFrame struct {
	Type          string                `json:"type"`
	Notifications []domain.Notification `json:"notifications"`
}

type wsClientFrame struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

// NotificationsWS streams notifications over a websocket: a snapshot of the
// visible ones first, then shown and dismissed events. Clients dismiss with
// {"type":"dismiss","id":"..."} frames.
func (h *Handler) NotificationsWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{"handler": "NotificationsWS"}).Warn("websocket upgrade failed")
		return
	}
	defer func() { _ = conn.Close() }()

	// subscribe before the snapshot so nothing falls in between; clients dedupe by id
	events, unsubscribe := h.notifications.Subscribe()
	defer unsubscribe()

	_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
	if err := conn.WriteJSON(wsSnapshotFrame{Type: wsFrameSnapshot, Notifications: h.notifications.Visible()}); err != nil {
		return
	}

	done := make(chan struct{})
	go h.readDismissFrames(conn, done)

	ticker := time.NewTicker(wsPingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case ev, ok := <-events:
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down"))
				return
			}
			if err := conn.WriteJSON(ev); err != nil {
				return
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(wsWriteWait)); err != nil {
				return
			}
		}
	}
}

func (h *Handler) readDismissFrames(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)

	conn.SetReadLimit(wsMaxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(wsPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logrus.WithError(err).WithFields(logrus.Fields{"handler": "NotificationsWS"}).Debug("websocket closed unexpectedly")
			}
			return
		}

		var frame wsClientFrame
		if err := json.Unmarshal(data, &frame); err != nil || frame.Type != wsFrameDismiss {
			continue
		}
		id, err := uuid.Parse(frame.ID)
		if err != nil {
			continue
		}
		h.notifications.Dismiss(id)
	}
}
