package rate

import (
	"ratesboard/internal/domain"
	"strings"
)

// Filter returns the rows whose name contains text, ignoring case.
// Rows without a name never match. Order is preserved and rows are not modified.
func Filter(rows []domain.Rate, text string) []domain.Rate {
	needle := strings.ToLower(text)
	out := make([]domain.Rate, 0, len(rows))
	for _, r := range rows {
		if r.Name == "" {
			continue
		}
		if strings.Contains(strings.ToLower(r.Name), needle) {
			out = append(out, r)
		}
	}
	return out
}
