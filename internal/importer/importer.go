// Package importer reads vocabulary lists from spreadsheets.
package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/vytor/lexiflash/internal/models"
)

var ErrNoSheet = errors.New("importer: sheet not found")

// Config selects the columns that hold each field. Columns are spreadsheet
// letters ("A", "B", ...); an empty example column is ignored.
type Config struct {
	TermColumn        string
	TranslationColumn string
	ExampleAColumn    string
	ExampleBColumn    string
	SheetName         string // first sheet when empty
	StartRow          int    // 1-based
}

func DefaultConfig() Config {
	return Config{
		TermColumn:        "A",
		TranslationColumn: "B",
		ExampleAColumn:    "C",
		ExampleBColumn:    "D",
		StartRow:          2,
	}
}

// Result holds the parsed words in file order and the rows that were skipped.
type Result struct {
	Words     []models.Vocabulary
	Processed int
	Skipped   int
	Errors    []string
}

type columns struct {
	term, translation, exampleA, exampleB int
}

func (c Config) columns() (columns, error) {
	idx := func(letter string) (int, error) {
		if letter == "" {
			return -1, nil
		}
		n, err := excelize.ColumnNameToNumber(strings.ToUpper(letter))
		if err != nil {
			return 0, fmt.Errorf("column %q: %w", letter, err)
		}
		return n - 1, nil
	}
	var cols columns
	var err error
	if cols.term, err = idx(c.TermColumn); err != nil {
		return cols, err
	}
	if cols.translation, err = idx(c.TranslationColumn); err != nil {
		return cols, err
	}
	if cols.exampleA, err = idx(c.ExampleAColumn); err != nil {
		return cols, err
	}
	if cols.exampleB, err = idx(c.ExampleBColumn); err != nil {
		return cols, err
	}
	if cols.term < 0 || cols.translation < 0 {
		return cols, errors.New("term and translation columns are required")
	}
	return cols, nil
}

// ReadFile parses path as CSV when it has a .csv extension and as an Excel
// workbook otherwise.
func ReadFile(path string, cfg Config) (*Result, error) {
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open CSV file: %w", err)
		}
		defer f.Close()
		return ReadCSV(f, cfg)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()
	return ReadWorkbook(f, cfg)
}

// ReadWorkbook parses the configured sheet of an open workbook.
func ReadWorkbook(f *excelize.File, cfg Config) (*Result, error) {
	sheet := cfg.SheetName
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		return nil, fmt.Errorf("%w: %q", ErrNoSheet, sheet)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %w", err)
	}
	return parseRows(rows, cfg)
}

// ReadCSV parses comma separated rows from r.
func ReadCSV(r io.Reader, cfg Config) (*Result, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("error reading CSV: %w", err)
	}
	return parseRows(rows, cfg)
}

func parseRows(rows [][]string, cfg Config) (*Result, error) {
	cols, err := cfg.columns()
	if err != nil {
		return nil, err
	}
	start := max(cfg.StartRow, 1)

	res := &Result{Errors: []string{}}
	for i, row := range rows {
		rowNum := i + 1
		if rowNum < start {
			continue
		}
		if isBlank(row) {
			continue
		}
		res.Processed++

		term, translation := cell(row, cols.term), cell(row, cols.translation)
		if term == "" || translation == "" {
			res.Skipped++
			res.Errors = append(res.Errors, fmt.Sprintf("Row %d: term and translation are required", rowNum))
			continue
		}
		res.Words = append(res.Words, models.Vocabulary{
			Term:        term,
			Translation: translation,
			ExampleA:    cell(row, cols.exampleA),
			ExampleB:    cell(row, cols.exampleB),
		})
	}
	return res, nil
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
