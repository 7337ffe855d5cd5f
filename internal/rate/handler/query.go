package handler

import (
	"net/url"
	"strconv"
	"strings"

	"ratesboard/internal/rate"
	"ratesboard/internal/web"
)

// parseQuery overlays URL parameters on the validator defaults and validates the result.
func (h *Handler) parseQuery(values url.Values) (rate.Query, error) {
	q := h.validator.Defaults()

	if values.Has(web.ParamFilter) {
		q.Filter = values.Get(web.ParamFilter)
	}
	if raw := values.Get(web.ParamPage); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return q, rate.ErrInvalidPage
		}
		q.Page = n
	}
	if raw := values.Get(web.ParamPerPage); raw != "" {
		if strings.EqualFold(raw, web.PerPageAllValue) {
			q.PerPage = rate.PerPageAll
		} else {
			n, err := strconv.Atoi(raw)
			if err != nil {
				return q, rate.ErrInvalidPerPage
			}
			q.PerPage = n
		}
	}
	if raw := values.Get(web.ParamSort); raw != "" {
		q.SortField = strings.ToLower(raw)
	}
	if raw := values.Get(web.ParamOrder); raw != "" {
		q.SortOrder = strings.ToLower(raw)
	}
	if raw := values.Get(web.ParamFrom); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return q, rate.ErrInvalidFrom
		}
		q.From = n
	}

	if err := h.validator.Validate(q); err != nil {
		return q, err
	}
	return q, nil
}
