package handler

import (
	"errors"
	"net/http"
	"unicode/utf8"

	"ratesboard/internal/domain"
	"ratesboard/internal/exporter"
	"ratesboard/internal/rate"
	"ratesboard/internal/web"

	"github.com/sirupsen/logrus"
)

var errInvalidScope = errors.New("scope must be all or filtered")

// ExportCSV godoc
// @Summary Export rates as CSV
// @Description Download the loaded rates as export.csv. The header follows the first record's field order.
// @Tags Export
// @Produce text/csv
// @Param scope query string false "Rows to export" Enums(all, filtered) default(all)
// @Param filter query string false "Name filter, used with scope=filtered"
// @Success 200 {string} string "CSV document"
// @Success 204 "nothing to export"
// @Failure 400 {object} errorResponse
// @Router /rates/export.csv [get]
func (h *Handler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, "ExportCSV", h.exporter.ServeCSV)
}

// ExportXLSX godoc
// @Summary Export rates as XLSX
// @Description Download the loaded rates as export.xlsx
// @Tags Export
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param scope query string false "Rows to export" Enums(all, filtered) default(all)
// @Param filter query string false "Name filter, used with scope=filtered"
// @Success 200 {file} file "XLSX workbook"
// @Success 204 "nothing to export"
// @Failure 400 {object} errorResponse
// @Router /rates/export.xlsx [get]
func (h *Handler) ExportXLSX(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, "ExportXLSX", h.exporter.ServeXLSX)
}

func (h *Handler) export(w http.ResponseWriter, r *http.Request, name string, serve func(http.ResponseWriter, []domain.Rate) error) {
	scope := rate.ExportScope(r.URL.Query().Get(web.ParamScope))
	switch scope {
	case "":
		scope = rate.ScopeAll
	case rate.ScopeAll, rate.ScopeFiltered:
	default:
		writeError(w, r, http.StatusBadRequest, errInvalidScope.Error())
		return
	}

	filter := r.URL.Query().Get(web.ParamFilter)
	if utf8.RuneCountInString(filter) > rate.MaxFilterLength {
		writeError(w, r, http.StatusBadRequest, rate.ErrFilterTooLong.Error())
		return
	}

	rows := h.service.ExportRows(scope, filter)
	if err := serve(w, rows); err != nil {
		if errors.Is(err, domain.ErrNothingToExport) {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		msg := "ups, couldn't export rates this time"
		logrus.WithError(err).WithFields(logrus.Fields{"handler": name, "scope": scope, "rows": len(rows)}).Error(msg)
		if !errors.Is(err, exporter.ErrWriteFailed) {
			writeError(w, r, http.StatusInternalServerError, msg)
		}
	}
}
