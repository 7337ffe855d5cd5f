package exporter

import (
	"bytes"
	"fmt"

	"ratesboard/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const SheetName = "Rates"

// NumericRecord is a Record whose numeric fields are written as number cells.
type NumericRecord interface {
	Number(key string) (decimal.Decimal, bool)
}

// ToXLSX renders rows into a single-sheet workbook laid out like ToCSV.
func ToXLSX[R Record](rows []R) ([]byte, error) {
	if len(rows) == 0 {
		return nil, domain.ErrNothingToExport
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	header := rows[0].Keys()
	if err := writeRow(f, 1, toAny(header)); err != nil {
		return nil, err
	}

	values := make([]any, len(header))
	for i, row := range rows {
		for j, key := range header {
			values[j] = cellValue(row, key)
		}
		if err := writeRow(f, i+2, values); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func cellValue[R Record](row R, key string) any {
	if nr, ok := any(row).(NumericRecord); ok {
		if d, ok := nr.Number(key); ok {
			return d.InexactFloat64()
		}
	}
	v, _ := row.Lookup(key)
	return v
}

func writeRow(f *excelize.File, rowNum int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
		return fmt.Errorf("failed to write row %d: %w", rowNum, err)
	}
	return nil
}

func toAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
