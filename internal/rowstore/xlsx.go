package rowstore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/xuri/excelize/v2"
)

const defaultSheet = "Sheet1"

// XLSXStore keeps every table as a sheet of a single workbook file. The first
// row of each sheet is the header row. Every mutation saves the workbook.
type XLSXStore struct {
	mu    sync.Mutex
	path  string
	file  *excelize.File
	fresh bool
}

// OpenXLSXStore opens the workbook at path, or prepares a new one when the file
// does not exist yet.
func OpenXLSXStore(path string) (*XLSXStore, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return &XLSXStore{path: path, file: excelize.NewFile(), fresh: true}, nil
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	return &XLSXStore{path: path, file: f}, nil
}

// Path returns the workbook location on disk.
func (s *XLSXStore) Path() string { return s.path }

// Table returns the sheet backing the named table, creating it with its header
// row if absent.
func (s *XLSXStore) Table(_ context.Context, name string) (Table, error) {
	headers, err := HeadersFor(name)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx, err := s.file.GetSheetIndex(name)
	if err != nil {
		return nil, fmt.Errorf("failed to look up sheet %s: %w", name, err)
	}
	if idx == -1 {
		if err := s.createSheet(name, headers); err != nil {
			return nil, err
		}
	}
	return &xlsxTable{store: s, name: name, headers: headers}, nil
}

func (s *XLSXStore) createSheet(name string, headers []string) error {
	// A new workbook starts with an empty default sheet; reuse it for the first table.
	if s.fresh && len(s.file.GetSheetList()) == 1 && s.file.GetSheetList()[0] == defaultSheet {
		if err := s.file.SetSheetName(defaultSheet, name); err != nil {
			return fmt.Errorf("failed to rename default sheet: %w", err)
		}
	} else if _, err := s.file.NewSheet(name); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", name, err)
	}
	s.fresh = false

	if err := s.writeRow(name, 1, headers); err != nil {
		return err
	}
	return s.save()
}

func (s *XLSXStore) writeRow(sheet string, rowNum int, cells []string) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	values := make([]any, len(cells))
	for i, c := range cells {
		values[i] = c
	}
	if err := s.file.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write row %d of %s: %w", rowNum, sheet, err)
	}
	return nil
}

// dataRows returns the stored cell values of every data row, header excluded.
// Number formats applied in a spreadsheet app are ignored, so a Qty styled as
// "#,##0" still reads as "1500".
func (s *XLSXStore) dataRows(sheet string) ([][]string, error) {
	rows, err := s.file.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}
	if len(rows) <= 1 {
		return [][]string{}, nil
	}
	return rows[1:], nil
}

func (s *XLSXStore) save() error {
	if err := s.file.SaveAs(s.path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

// Close releases the workbook.
func (s *XLSXStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.file.Close()
}

type xlsxTable struct {
	store   *XLSXStore
	name    string
	headers []string
}

func (t *xlsxTable) Name() string { return t.name }

func (t *xlsxTable) Headers() []string {
	out := make([]string, len(t.headers))
	copy(out, t.headers)
	return out
}

func (t *xlsxTable) Rows(_ context.Context) ([]Row, error) {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	data, err := t.store.dataRows(t.name)
	if err != nil {
		return nil, err
	}
	rows := make([]Row, len(data))
	for i, cells := range data {
		rows[i] = fromCells(t.headers, cells)
	}
	return rows, nil
}

func (t *xlsxTable) Append(_ context.Context, row Row) error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	data, err := t.store.dataRows(t.name)
	if err != nil {
		return err
	}
	// Data rows start below the header at row 2.
	if err := t.store.writeRow(t.name, len(data)+2, toCells(t.headers, row)); err != nil {
		return err
	}
	return t.store.save()
}

func (t *xlsxTable) Update(_ context.Context, position int, row Row) error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	data, err := t.store.dataRows(t.name)
	if err != nil {
		return err
	}
	if position < 0 || position >= len(data) {
		return ErrRowOutOfRange
	}
	if err := t.store.writeRow(t.name, position+2, toCells(t.headers, row)); err != nil {
		return err
	}
	return t.store.save()
}

func (t *xlsxTable) Delete(_ context.Context, position int) error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	data, err := t.store.dataRows(t.name)
	if err != nil {
		return err
	}
	if position < 0 || position >= len(data) {
		return ErrRowOutOfRange
	}
	if err := t.store.file.RemoveRow(t.name, position+2); err != nil {
		return fmt.Errorf("failed to remove row from %s: %w", t.name, err)
	}
	return t.store.save()
}
