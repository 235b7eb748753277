package fileProcessor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/akolanti/cogcompanion/internal/config"
	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

var errNotWorkbook = errors.New("not an xls workbook")

type sheet struct {
	Name      string
	Rows      [][]string
	TotalRows int
}

func extractXLSX(_ context.Context, data []byte) (string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to open xlsx: %w", err)
	}
	defer f.Close()

	names := f.GetSheetList()
	var sheets []sheet
	for _, name := range names[:min(len(names), config.MaxExcelSheets)] {
		rows, err := f.GetRows(name)
		if err != nil {
			return "", fmt.Errorf("failed to read sheet %q: %w", name, err)
		}
		sheets = append(sheets, sheet{Name: name, Rows: rows[:min(len(rows), config.MaxTabularRows)], TotalRows: len(rows)})
	}
	return formatWorkbook(sheets, len(names)), nil
}

func extractXLS(_ context.Context, data []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed xls: %v", r)
		}
	}()

	wb, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return "", fmt.Errorf("failed to open xls: %w", err)
	}
	if wb == nil {
		return "", errNotWorkbook
	}

	total := wb.NumSheets()
	var sheets []sheet
	for i := 0; i < min(total, config.MaxExcelSheets); i++ {
		ws := wb.GetSheet(i)
		if ws == nil {
			continue
		}
		// MaxRow is the last row index, not a count
		s := sheet{Name: ws.Name, TotalRows: int(ws.MaxRow) + 1}
		for r := 0; r < min(s.TotalRows, config.MaxTabularRows); r++ {
			if cells, ok := xlsRow(ws, r); ok {
				s.Rows = append(s.Rows, cells)
			}
		}
		sheets = append(sheets, s)
	}
	return formatWorkbook(sheets, total), nil
}

// xlsRow reads one row; the library panics on rows that were never written.
func xlsRow(ws *xls.WorkSheet, i int) (cells []string, ok bool) {
	defer func() {
		if recover() != nil {
			cells, ok = nil, false
		}
	}()
	row := ws.Row(i)
	for c := 0; c < row.LastCol(); c++ {
		cells = append(cells, row.Col(c))
	}
	return cells, true
}

func formatWorkbook(sheets []sheet, totalSheets int) string {
	var b strings.Builder
	b.WriteString("Excel Data:\n")
	b.WriteString(strings.Repeat("=", 50) + "\n")
	for _, s := range sheets {
		fmt.Fprintf(&b, "\n--- Sheet: %s ---\n", s.Name)
		for _, row := range s.Rows {
			b.WriteString(strings.Join(row, " | ") + "\n")
		}
		if s.TotalRows > config.MaxTabularRows {
			fmt.Fprintf(&b, "... and %d more rows\n", s.TotalRows-config.MaxTabularRows)
		}
	}
	if totalSheets > config.MaxExcelSheets {
		fmt.Fprintf(&b, "\n... and %d more sheets", totalSheets-config.MaxExcelSheets)
	}
	return strings.TrimSpace(b.String())
}
