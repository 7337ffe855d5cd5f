package handler

import (
	"net/http"
	"time"

	"ratesboard/internal/domain"
	"ratesboard/internal/rate"

	"github.com/go-chi/render"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type RateResponse struct {
	Name  string          `json:"name" example:"Bitcoin"`
	Unit  string          `json:"unit" example:"BTC"`
	Value decimal.Decimal `json:"value" swaggertype:"string" example:"1"`
	Type  string          `json:"type" example:"crypto"`
}

type ColumnResponse struct {
	ID           string `json:"id" example:"name"`
	Name         string `json:"name" example:"Name"`
	Grow         int    `json:"grow" example:"6"`
	Right        bool   `json:"right"`
	Sortable     bool   `json:"sortable"`
	WidthPercent int    `json:"width_percent" example:"50"`
}

type ListRatesResponse struct {
	State     string           `json:"state" example:"loaded"`
	Columns   []ColumnResponse `json:"columns"`
	Rows      []RateResponse   `json:"rows"`
	Filter    string           `json:"filter" example:"bit"`
	Sort      string           `json:"sort" example:"name"`
	Order     string           `json:"order" example:"asc"`
	Page      int              `json:"page" example:"1"`
	PerPage   int              `json:"per_page" example:"10"`
	Pages     int              `json:"pages" example:"3"`
	From      int              `json:"from" example:"1"`
	To        int              `json:"to" example:"10"`
	Filtered  int              `json:"filtered" example:"24"`
	Total     int              `json:"total" example:"64"`
	UpdatedAt *time.Time       `json:"updated_at,omitempty" example:"2025-01-02T15:04:05Z"`
}

// ListRates godoc
// @Summary List exchange rates
// @Description Filtered, sorted and paginated view of the loaded exchange rates
// @Tags Rates
// @Produce json
// @Param filter query string false "Case-insensitive name filter"
// @Param page query int false "Page number" default(1)
// @Param per_page query string false "Page size, one of the configured sizes or all" default(10)
// @Param sort query string false "Sort column" Enums(name, type, unit, value) default(name)
// @Param order query string false "Sort order" Enums(asc, desc) default(asc)
// @Param from query int false "0-based index of a row to keep on screen, replaces page"
// @Success 200 {object} ListRatesResponse
// @Failure 400 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /rates [get]
func (h *Handler) ListRates(w http.ResponseWriter, r *http.Request) {
	q, err := h.parseQuery(r.URL.Query())
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	view, err := h.service.Query(q)
	if err != nil {
		msg := "ups, couldn't list rates this time"
		logrus.WithError(err).WithFields(logrus.Fields{"handler": "ListRates", "sort": q.SortField}).Error(msg)
		writeError(w, r, http.StatusInternalServerError, msg)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, newListRatesResponse(view))
}

func newListRatesResponse(view rate.View) ListRatesResponse {
	res := ListRatesResponse{
		State:    string(view.State),
		Columns:  make([]ColumnResponse, 0, len(view.Columns)),
		Rows:     make([]RateResponse, 0, len(view.Page.Rows)),
		Filter:   view.Query.Filter,
		Sort:     view.Query.SortField,
		Order:    view.Query.SortOrder,
		Page:     view.Page.Number,
		PerPage:  view.Page.PerPage,
		Pages:    view.Page.Pages,
		From:     view.Page.From,
		To:       view.Page.To,
		Filtered: view.Filtered(),
		Total:    view.Total,
	}
	if !view.UpdatedAt.IsZero() {
		updatedAt := view.UpdatedAt
		res.UpdatedAt = &updatedAt
	}
	for _, c := range view.Columns {
		res.Columns = append(res.Columns, ColumnResponse{
			ID:           c.ID,
			Name:         c.Name,
			Grow:         c.Grow,
			Right:        c.Right,
			Sortable:     c.Sortable,
			WidthPercent: c.WidthPercent,
		})
	}
	for _, row := range view.Page.Rows {
		res.Rows = append(res.Rows, newRateResponse(row))
	}
	return res
}

func newRateResponse(r domain.Rate) RateResponse {
	return RateResponse{Name: r.Name, Unit: r.Unit, Value: r.Value, Type: r.Type}
}
