package exporter

import (
	"strings"

	"ratesboard/internal/domain"
)

// Record is a keyed row with a stable key order.
type Record interface {
	Keys() []string
	Lookup(key string) (string, bool)
}

// ToCSV renders rows as CSV text. The header is the first row's key order;
// every row is followed by a newline. A key missing from a row yields an empty field.
// Fields are joined as-is, without quoting or escaping.
func ToCSV[R Record](rows []R) (string, error) {
	if len(rows) == 0 {
		return "", domain.ErrNothingToExport
	}

	header := rows[0].Keys()

	var b strings.Builder
	b.WriteString(strings.Join(header, ","))
	b.WriteByte('\n')

	fields := make([]string, len(header))
	for _, row := range rows {
		for i, key := range header {
			v, _ := row.Lookup(key)
			fields[i] = v
		}
		b.WriteString(strings.Join(fields, ","))
		b.WriteByte('\n')
	}
	return b.String(), nil
}
