package rate

import (
	"ratesboard/internal/domain"
	"slices"
	"strings"
)

type compareFunc func(a, b domain.Rate) int

var comparators = map[string]compareFunc{
	domain.FieldName:  func(a, b domain.Rate) int { return compareFold(a.Name, b.Name) },
	domain.FieldType:  func(a, b domain.Rate) int { return compareFold(a.Type, b.Type) },
	domain.FieldUnit:  func(a, b domain.Rate) int { return compareFold(a.Unit, b.Unit) },
	domain.FieldValue: func(a, b domain.Rate) int { return a.Value.Cmp(b.Value) },
}

// Sort returns a sorted copy of rows. The sort is stable, so equal keys keep
// their fetch order in both directions.
func Sort(rows []domain.Rate, field string, desc bool) ([]domain.Rate, error) {
	cmp, ok := comparators[field]
	if !ok {
		return nil, ErrInvalidSortField
	}
	out := slices.Clone(rows)
	slices.SortStableFunc(out, func(a, b domain.Rate) int {
		if desc {
			return cmp(b, a)
		}
		return cmp(a, b)
	})
	return out, nil
}

func compareFold(a, b string) int {
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}
