package exporter

import (
	"errors"
	"fmt"
	"net/http"

	"ratesboard/internal/adapters"
	"ratesboard/internal/domain"
)

const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"

	CSVFileName  = "export.csv"
	XLSXFileName = "export.xlsx"

	ExportingCSVMessage  = "Exporting CSV..."
	ExportingXLSXMessage = "Exporting XLSX..."

	csvContentType  = "text/csv; charset=utf-8"
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// ErrWriteFailed means the response was already started when writing failed.
var ErrWriteFailed = errors.New("failed to write export")

// Exporter turns row sets into downloadable files.
type Exporter struct {
	notifier adapters.Notifier
	metrics  adapters.Metrics
}

func New(notifier adapters.Notifier, metrics adapters.Metrics) *Exporter {
	return &Exporter{notifier: notifier, metrics: metrics}
}

// ServeCSV announces the export and writes rows as an export.csv attachment.
// Empty input returns domain.ErrNothingToExport and writes nothing.
func (e *Exporter) ServeCSV(w http.ResponseWriter, rows []domain.Rate) error {
	text, err := ToCSV(rows)
	if err != nil {
		return err
	}
	e.notifier.Info(ExportingCSVMessage)
	e.metrics.IncExport(FormatCSV)

	return download(w, csvContentType, CSVFileName, []byte(text))
}

// ServeXLSX is ServeCSV for a spreadsheet workbook.
func (e *Exporter) ServeXLSX(w http.ResponseWriter, rows []domain.Rate) error {
	data, err := ToXLSX(rows)
	if err != nil {
		return err
	}
	e.notifier.Info(ExportingXLSXMessage)
	e.metrics.IncExport(FormatXLSX)

	return download(w, xlsxContentType, XLSXFileName, data)
}

func download(w http.ResponseWriter, contentType, fileName string, data []byte) error {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("%w %s: %v", ErrWriteFailed, fileName, err)
	}
	return nil
}
