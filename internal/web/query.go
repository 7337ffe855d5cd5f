package web

import (
	"net/url"
	"strconv"

	"ratesboard/internal/rate"
)

// URL parameters shared by the page and the JSON API.
const (
	ParamFilter  = "filter"
	ParamPage    = "page"
	ParamPerPage = "per_page"
	ParamSort    = "sort"
	ParamOrder   = "order"
	ParamFrom    = "from"
	ParamScope   = "scope"

	PerPageAllValue = "all"
	PerPageAllLabel = "ALL"

	// TableAnchor is appended to table links so the browser scrolls the table into view.
	TableAnchor = "#rates"
)

// EncodeQuery is the inverse of the handler's query parsing. Default values are left out.
func EncodeQuery(q rate.Query) url.Values {
	v := url.Values{}
	if q.Filter != "" {
		v.Set(ParamFilter, q.Filter)
	}
	if q.Page > 1 {
		v.Set(ParamPage, strconv.Itoa(q.Page))
	}
	v.Set(ParamPerPage, perPageValue(q.PerPage))
	if q.SortField != "" {
		v.Set(ParamSort, q.SortField)
	}
	if q.SortOrder != "" {
		v.Set(ParamOrder, q.SortOrder)
	}
	return v
}

func tableURL(q rate.Query) string {
	return "/?" + EncodeQuery(q).Encode() + TableAnchor
}

func perPageValue(n int) string {
	if n == rate.PerPageAll {
		return PerPageAllValue
	}
	return strconv.Itoa(n)
}
