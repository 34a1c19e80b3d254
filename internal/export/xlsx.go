// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/pdiddy/papers-list/pkg/types"
)

const xlsxSheet = "Papers"

// XLSXSink writes rows into a single worksheet and saves the workbook on
// Close.
type XLSXSink struct {
	path string
	f    *excelize.File
	next int // next 1-based row
	err  error
}

// NewXLSXSink starts a workbook that will be saved to path.
func NewXLSXSink(path string) *XLSXSink {
	f := excelize.NewFile()
	s := &XLSXSink{path: path, f: f, next: 1}

	if err := f.SetSheetName("Sheet1", xlsxSheet); err != nil {
		s.err = fmt.Errorf("naming sheet: %w", err)
		return s
	}
	if err := s.appendRow(Columns); err != nil {
		s.err = fmt.Errorf("writing header: %w", err)
		return s
	}

	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		s.err = fmt.Errorf("creating header style: %w", err)
		return s
	}
	last, _ := excelize.CoordinatesToCellName(len(Columns), 1)
	if err := f.SetCellStyle(xlsxSheet, "A1", last, style); err != nil {
		s.err = fmt.Errorf("styling header: %w", err)
	}
	return s
}

// Write appends one row to the worksheet.
func (s *XLSXSink) Write(row types.Row) error {
	if s.err != nil {
		return s.err
	}
	if err := s.appendRow(Record(row)); err != nil {
		return fmt.Errorf("writing XLSX row %s: %w", row.ID, err)
	}
	return nil
}

func (s *XLSXSink) appendRow(values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, s.next)
	if err != nil {
		return err
	}
	if err := s.f.SetSheetRow(xlsxSheet, cell, &values); err != nil {
		return err
	}
	s.next++
	return nil
}

// Close saves the workbook to disk.
func (s *XLSXSink) Close() error {
	defer s.f.Close()
	if s.err != nil {
		return s.err
	}
	if err := s.f.SaveAs(s.path); err != nil {
		return fmt.Errorf("saving %s: %w", s.path, err)
	}
	return nil
}
