package tabular

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// XLSXSource reads one worksheet of an XLSX workbook as a row source,
// using excelize's streaming row iterator so large workbooks are not
// held in memory twice.
type XLSXSource struct {
	file   *excelize.File
	rows   *excelize.Rows
	header []string
}

var _ Source = (*XLSXSource)(nil)

// OpenXLSX opens the named sheet of the workbook at path and reads its
// header row.
func OpenXLSX(path, sheet string) (*XLSXSource, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}

	rows, err := f.Rows(sheet)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("open sheet %q: %w", sheet, err)
	}

	if !rows.Next() {
		rows.Close()
		f.Close()
		if err := rows.Error(); err != nil {
			return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
		}
		return nil, fmt.Errorf("sheet %q in %s is empty", sheet, path)
	}

	header, err := rows.Columns()
	if err != nil {
		rows.Close()
		f.Close()
		return nil, fmt.Errorf("read xlsx header: %w", err)
	}

	return &XLSXSource{
		file:   f,
		rows:   rows,
		header: CleanRecord(header),
	}, nil
}

// Header returns the cleaned header row.
func (s *XLSXSource) Header() []string {
	return s.header
}

// Next returns the next data row, or io.EOF when the sheet is exhausted.
// Trailing empty cells beyond the last populated one are absent from the
// returned slice; downstream padding handles that.
func (s *XLSXSource) Next() ([]string, error) {
	if !s.rows.Next() {
		if err := s.rows.Error(); err != nil {
			return nil, fmt.Errorf("read xlsx row: %w", err)
		}
		return nil, io.EOF
	}

	record, err := s.rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("read xlsx row: %w", err)
	}
	return record, nil
}

// Close releases the row iterator and the workbook.
func (s *XLSXSource) Close() error {
	if err := s.rows.Close(); err != nil {
		s.file.Close()
		return err
	}
	return s.file.Close()
}

// XLSXSink writes the augmented table to a new XLSX workbook.
type XLSXSink struct {
	file  *excelize.File
	path  string
	sheet string
	row   int
}

var _ Sink = (*XLSXSink)(nil)

// CreateXLSX prepares a new workbook with a single sheet. The file is
// written when Close is called.
func CreateXLSX(path, sheet string) (*XLSXSink, error) {
	f := excelize.NewFile()
	if sheet != "Sheet1" {
		if err := f.SetSheetName("Sheet1", sheet); err != nil {
			f.Close()
			return nil, fmt.Errorf("name sheet %q: %w", sheet, err)
		}
	}
	return &XLSXSink{file: f, path: path, sheet: sheet}, nil
}

// WriteHeader writes the output header row.
func (s *XLSXSink) WriteHeader(header []string) error {
	return s.writeRecord(header)
}

// WriteRow writes one augmented data row.
func (s *XLSXSink) WriteRow(row []string) error {
	return s.writeRecord(row)
}

func (s *XLSXSink) writeRecord(record []string) error {
	s.row++
	cell, err := excelize.CoordinatesToCellName(1, s.row)
	if err != nil {
		return fmt.Errorf("xlsx cell for row %d: %w", s.row, err)
	}

	values := make([]interface{}, len(record))
	for i, v := range record {
		values[i] = v
	}
	if err := s.file.SetSheetRow(s.sheet, cell, &values); err != nil {
		return fmt.Errorf("write xlsx row %d: %w", s.row, err)
	}
	return nil
}

// Close saves the workbook to disk.
func (s *XLSXSink) Close() error {
	if err := s.file.SaveAs(s.path); err != nil {
		s.file.Close()
		return fmt.Errorf("save xlsx: %w", err)
	}
	return s.file.Close()
}
