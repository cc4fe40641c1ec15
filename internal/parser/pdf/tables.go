package pdf

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/tsawler/tabula"
)

// TableEngine detects tables in a PDF and returns them as row-major cell
// grids. Table extraction is optional enrichment: callers swallow its
// errors.
type TableEngine interface {
	Extract(data []byte) ([][][]string, error)
}

// tabulaEngine detects tables geometrically via tsawler/tabula.
type tabulaEngine struct{}

func (tabulaEngine) Extract(data []byte) ([][][]string, error) {
	// tabula's reader wants a seekable file
	tmp, err := os.CreateTemp("", "invoice-tables-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	if _, err := tmp.Seek(0, 0); err != nil {
		tmp.Close()
		return nil, err
	}
	defer tmp.Close()

	doc, err := tabula.AnalyzeDocument(tmp.Name())
	if err != nil {
		return nil, fmt.Errorf("parse pdf: %w", err)
	}

	var grids [][][]string
	for _, table := range doc.ExtractTables() {
		if table.RowCount() == 0 || table.ColCount() == 0 {
			continue
		}
		grid, err := csvToGrid(table.ToCSV())
		if err != nil || len(grid) == 0 {
			continue
		}
		grids = append(grids, grid)
	}
	return grids, nil
}

// csvToGrid converts a table's CSV export into a cell grid.
func csvToGrid(csvText string) ([][]string, error) {
	r := csv.NewReader(strings.NewReader(csvText))
	r.FieldsPerRecord = -1 // ragged rows are fine
	rows, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	grid := make([][]string, 0, len(rows))
	for _, row := range rows {
		cells := make([]string, len(row))
		for i, c := range row {
			cells[i] = strings.TrimSpace(c)
		}
		grid = append(grid, cells)
	}
	return grid, nil
}
