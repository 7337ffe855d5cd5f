package rate

import (
	"ratesboard/internal/domain"
	"slices"
)

// PerPageAll shows every row on one page.
const PerPageAll = 0

// Page is one window of a row set.
type Page struct {
	Number  int
	PerPage int
	Pages   int
	Total   int
	// From and To are 1-based row positions; both are 0 for an empty page.
	From int
	To   int
	Rows []domain.Rate
}

func (p Page) HasPrev() bool { return p.Number > 1 }
func (p Page) HasNext() bool { return p.Number < p.Pages }

// FirstRowIndex is the 0-based index of the first row on the page.
func (p Page) FirstRowIndex() int {
	if p.From == 0 {
		return 0
	}
	return p.From - 1
}

// Paginate cuts rows into pages of perPage rows and returns the requested one.
// The page number is clamped into range.
func Paginate(rows []domain.Rate, page, perPage int) Page {
	total := len(rows)
	if perPage < 0 {
		perPage = PerPageAll
	}

	pages := 1
	if perPage > 0 && total > 0 {
		pages = (total + perPage - 1) / perPage
	}
	number := min(max(page, 1), pages)

	start, end := 0, total
	if perPage > 0 {
		start = min((number-1)*perPage, total)
		end = min(start+perPage, total)
	}

	p := Page{
		Number:  number,
		PerPage: perPage,
		Pages:   pages,
		Total:   total,
		Rows:    slices.Clone(rows[start:end]),
	}
	if end > start {
		p.From = start + 1
		p.To = end
	}
	return p
}

// PageForRow returns the page that holds rowIndex (0-based) at perPage rows per page.
// Used on page-size changes so the first visible row stays on screen.
func PageForRow(rowIndex, perPage int) int {
	if perPage <= 0 || rowIndex <= 0 {
		return 1
	}
	return rowIndex/perPage + 1
}
