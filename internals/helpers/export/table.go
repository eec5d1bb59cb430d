// Package export merender grid (header + rows) ke CSV atau XLSX.
package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// Table: satu grid. Sheet dipakai sebagai nama sheet XLSX.
// Preamble: baris judul sebelum header, dipisah satu baris kosong.
type Table struct {
	Sheet    string
	Preamble [][]string
	Header   []string
	Rows     [][]any
}

func (t *Table) Append(row ...any) { t.Rows = append(t.Rows, row) }

func cellString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}

// WriteCSV: kutip ganda di dalam field di-escape jadi "" (encoding/csv).
func WriteCSV(w io.Writer, tables ...Table) error {
	cw := csv.NewWriter(w)
	for i, t := range tables {
		if i > 0 {
			// baris kosong pemisah antar section
			if err := cw.Write([]string{""}); err != nil {
				return err
			}
		}
		if len(tables) > 1 && t.Sheet != "" {
			if err := cw.Write([]string{t.Sheet}); err != nil {
				return err
			}
		}
		for _, line := range t.Preamble {
			if err := cw.Write(line); err != nil {
				return err
			}
		}
		if len(t.Preamble) > 0 {
			if err := cw.Write([]string{""}); err != nil {
				return err
			}
		}
		if err := cw.Write(t.Header); err != nil {
			return err
		}
		for _, row := range t.Rows {
			rec := make([]string, len(row))
			for j, v := range row {
				rec[j] = cellString(v)
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteXLSX: satu sheet per table, header bold + freeze baris pertama.
func WriteXLSX(w io.Writer, tables ...Table) error {
	f := excelize.NewFile()
	defer f.Close()

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	first := f.GetSheetName(f.GetActiveSheetIndex())
	for i, t := range tables {
		name := t.Sheet
		if name == "" {
			name = fmt.Sprintf("Sheet%d", i+1)
		}
		if i == 0 {
			if err := f.SetSheetName(first, name); err != nil {
				return err
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return err
		}

		headerRow := 1
		for r, line := range t.Preamble {
			for c, v := range line {
				cell, _ := excelize.CoordinatesToCellName(c+1, r+1)
				if err := f.SetCellValue(name, cell, v); err != nil {
					return fmt.Errorf("set preamble %s: %w", cell, err)
				}
			}
		}
		if len(t.Preamble) > 0 {
			headerRow = len(t.Preamble) + 2
		}

		for c, h := range t.Header {
			cell, _ := excelize.CoordinatesToCellName(c+1, headerRow)
			if err := f.SetCellValue(name, cell, h); err != nil {
				return fmt.Errorf("set header %s: %w", cell, err)
			}
		}
		if len(t.Header) > 0 {
			firstCell, _ := excelize.CoordinatesToCellName(1, headerRow)
			last, _ := excelize.CoordinatesToCellName(len(t.Header), headerRow)
			topLeft, _ := excelize.CoordinatesToCellName(1, headerRow+1)
			_ = f.SetCellStyle(name, firstCell, last, bold)
			_ = f.SetPanes(name, &excelize.Panes{Freeze: true, YSplit: headerRow, TopLeftCell: topLeft, ActivePane: "bottomLeft"})
		}
		for r, row := range t.Rows {
			for c, v := range row {
				cell, _ := excelize.CoordinatesToCellName(c+1, headerRow+r+1)
				if err := f.SetCellValue(name, cell, v); err != nil {
					return fmt.Errorf("set cell %s: %w", cell, err)
				}
			}
		}
	}
	_, err = f.WriteTo(w)
	return err
}
