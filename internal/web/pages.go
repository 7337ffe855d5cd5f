package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"ratesboard/internal/domain"
	"ratesboard/internal/rate"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	indexTemplate = "index.html"

	ExportCSVURL       = "/api/v1/rates/export.csv"
	ExportXLSXURL      = "/api/v1/rates/export.xlsx"
	NotificationsWSURL = "/ws/notifications"

	loadingRefreshSeconds = 2
	filterDebounceMillis  = 250
)

// IndexData feeds the rates page. Its methods build the table links.
type IndexData struct {
	View rate.View
	// Error is a query problem shown above the table.
	Error string
}

func (d IndexData) PageURL(n int) string {
	q := d.View.Query
	q.Page = n
	return tableURL(q)
}

func (d IndexData) FirstURL() string { return d.PageURL(1) }
func (d IndexData) PrevURL() string  { return d.PageURL(d.View.Page.Number - 1) }
func (d IndexData) NextURL() string  { return d.PageURL(d.View.Page.Number + 1) }
func (d IndexData) LastURL() string  { return d.PageURL(d.View.Page.Pages) }

// SortURL sorts by field, flipping the order when field is already the sort column.
func (d IndexData) SortURL(field string) string {
	q := d.View.Query
	q.Page = 1
	if q.SortField == field && !q.Descending() {
		q.SortOrder = rate.SortDesc
	} else {
		q.SortOrder = rate.SortAsc
	}
	q.SortField = field
	return tableURL(q)
}

func (d IndexData) SortIndicator(field string) string {
	if d.View.Query.SortField != field {
		return ""
	}
	if d.View.Query.Descending() {
		return "▼"
	}
	return "▲"
}

func (d IndexData) ClearURL() string {
	q := d.View.Query
	q.Filter = ""
	q.Page = 1
	return tableURL(q)
}

// PerPageChoices lists the selectable sizes followed by ALL.
func (d IndexData) PerPageChoices() []int {
	return append(append([]int{}, d.View.PerPageOptions...), rate.PerPageAll)
}

func (d IndexData) PerPageValue(n int) string { return perPageValue(n) }

func (d IndexData) PerPageLabel(n int) string {
	if n == rate.PerPageAll {
		return PerPageAllLabel
	}
	return perPageValue(n)
}

func (d IndexData) ExportURL() string        { return ExportCSVURL }
func (d IndexData) ExportXLSXURL() string    { return ExportXLSXURL }
func (d IndexData) NotificationsURL() string { return NotificationsWSURL }
func (d IndexData) RefreshSeconds() int      { return loadingRefreshSeconds }

// FilterDebounceMillis is how long the search box waits after a keystroke
// before resubmitting the filter.
func (d IndexData) FilterDebounceMillis() int { return filterDebounceMillis }

// Pages renders the server-side views.
type Pages struct {
	tmpl *template.Template
}

func NewPages() (*Pages, error) {
	tmpl, err := template.New("").Funcs(template.FuncMap{
		"cell": cell,
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &Pages{tmpl: tmpl}, nil
}

func (p *Pages) RenderIndex(w io.Writer, data IndexData) error {
	return p.tmpl.ExecuteTemplate(w, indexTemplate, data)
}

func cell(r domain.Rate, key string) string {
	v, _ := r.Lookup(key)
	return v
}
