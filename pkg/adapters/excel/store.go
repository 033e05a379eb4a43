// Package excel implements ports.RowStore on an xlsx workbook.
package excel

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"

	"github.com/opskit/slipway/pkg/domain"
)

// DefaultFile is the default workbook path, relative to the working directory.
const DefaultFile = "mse_trace_analysis_enriched_V2.xlsx"

// sheetName is used when the workbook has to be created from scratch.
const sheetName = "MSE Trace Analysis"

// subjectIndex is the zero-based position of domain.SubjectColumn.
const subjectIndex = 3

// Store reads and appends rows of the analysis spreadsheet. It assumes a
// single in-process writer at a time; there is no file locking.
type Store struct {
	path string
}

// NewStore creates a row store over the workbook at path.
func NewStore(path string) *Store {
	if path == "" {
		path = DefaultFile
	}
	return &Store{path: path}
}

// Path returns the backing workbook path.
func (s *Store) Path() string {
	return s.path
}

// ReadAll implements ports.RowStore. The first worksheet's row 1 is the
// header; every later row becomes a RowRecord keyed by header name. Columns
// with an empty header (the sheet's unnamed index column) are skipped, and
// cells with no value map to the empty string.
func (s *Store) ReadAll(ctx context.Context) ([]domain.RowRecord, error) {
	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read spreadsheet: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := sheetRows(f, sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read spreadsheet rows: %w", err)
	}
	if len(rows) == 0 {
		return []domain.RowRecord{}, nil
	}

	header := rows[0]
	records := make([]domain.RowRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		record := make(domain.RowRecord, len(header))
		for i, name := range header {
			if name == "" {
				continue
			}
			if i < len(row) {
				record[name] = row[i]
			} else {
				record[name] = ""
			}
		}
		records = append(records, record)
	}
	return records, nil
}

// Append implements ports.RowStore. A missing workbook is created with the
// fixed header before the append; any other open failure is an error. The
// new row populates only the subject-name column. Appends are unconditional;
// there is no de-duplication against prior rows.
func (s *Store) Append(ctx context.Context, subjectName string) error {
	f, created, err := s.openOrCreate()
	if err != nil {
		return err
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := sheetRows(f, sheet)
	if err != nil {
		return fmt.Errorf("failed to read spreadsheet rows: %w", err)
	}

	// Write each cell explicitly. SetSheetRow skips empty strings, so a row
	// with an empty subject would never materialize and the next append
	// would land on top of it.
	rowNum := len(rows) + 1
	for i := range domain.Columns {
		cell, err := excelize.CoordinatesToCellName(i+1, rowNum)
		if err != nil {
			return fmt.Errorf("failed to compute append position: %w", err)
		}
		value := ""
		if i == subjectIndex {
			value = subjectName
		}
		if err := f.SetCellStr(sheet, cell, value); err != nil {
			return fmt.Errorf("failed to append spreadsheet row: %w", err)
		}
	}

	if created {
		if err := f.SaveAs(s.path); err != nil {
			return fmt.Errorf("failed to write spreadsheet: %w", err)
		}
		return nil
	}
	if err := f.Save(); err != nil {
		return fmt.Errorf("failed to write spreadsheet: %w", err)
	}
	return nil
}

// sheetRows returns every row element of the sheet. Unlike GetRows it does
// not drop trailing rows whose cells are all empty, so appended rows with an
// empty subject still count.
func sheetRows(f *excelize.File, sheet string) ([][]string, error) {
	iter, err := f.Rows(sheet)
	if err != nil {
		return nil, err
	}
	var rows [][]string
	for iter.Next() {
		row, err := iter.Columns()
		if err != nil {
			_ = iter.Close()
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, iter.Close()
}

// openOrCreate opens the workbook, or builds a fresh one carrying the fixed
// header when the file does not exist yet.
func (s *Store) openOrCreate() (*excelize.File, bool, error) {
	f, err := excelize.OpenFile(s.path)
	if err == nil {
		return f, false, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, false, fmt.Errorf("failed to open spreadsheet: %w", err)
	}

	f = excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		_ = f.Close()
		return nil, false, fmt.Errorf("failed to initialize spreadsheet: %w", err)
	}

	header := make([]interface{}, len(domain.Columns))
	for i, name := range domain.Columns {
		header[i] = name
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		_ = f.Close()
		return nil, false, fmt.Errorf("failed to initialize spreadsheet header: %w", err)
	}
	return f, true, nil
}
