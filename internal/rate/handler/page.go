package handler

import (
	"bytes"
	"net/http"

	"ratesboard/internal/web"

	"github.com/sirupsen/logrus"
)

// Index renders the rates page. An invalid query falls back to the default view
// and is reported on the page with status 400.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	status := http.StatusOK
	data := web.IndexData{}

	q, err := h.parseQuery(r.URL.Query())
	if err != nil {
		status = http.StatusBadRequest
		data.Error = err.Error()
		q = h.validator.Defaults()
	}

	data.View, err = h.service.Query(q)
	if err != nil {
		msg := "ups, couldn't render rates this time"
		logrus.WithError(err).WithFields(logrus.Fields{"handler": "Index"}).Error(msg)
		http.Error(w, msg, http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := h.pages.RenderIndex(&buf, data); err != nil {
		msg := "ups, couldn't render rates this time"
		logrus.WithError(err).WithFields(logrus.Fields{"handler": "Index"}).Error(msg)
		http.Error(w, msg, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
