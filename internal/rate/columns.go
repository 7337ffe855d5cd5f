package rate

import "ratesboard/internal/domain"

type Column struct {
	ID       string
	Name     string
	Grow     int
	Right    bool
	Sortable bool
	// share of the table width, in percent
	WidthPercent int
}

var columnDefs = []Column{
	{ID: domain.FieldName, Name: "Name", Grow: 6, Sortable: true},
	{ID: domain.FieldType, Name: "Type", Grow: 2, Sortable: true},
	{ID: domain.FieldUnit, Name: "Unit", Grow: 2, Sortable: true},
	{ID: domain.FieldValue, Name: "Value", Grow: 2, Sortable: true, Right: true},
}

// Columns returns the table column definitions in display order.
func Columns() []Column {
	total := 0
	for _, c := range columnDefs {
		total += c.Grow
	}
	out := make([]Column, len(columnDefs))
	for i, c := range columnDefs {
		c.WidthPercent = c.Grow * 100 / total
		out[i] = c
	}
	return out
}
