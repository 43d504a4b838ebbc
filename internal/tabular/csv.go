package tabular

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// CSVSource reads a CSV file as a row source. The underlying reader is
// wrapped with BOM skipping and UTF-8 sanitization so files exported
// from Windows spreadsheet tools parse cleanly.
type CSVSource struct {
	file   *os.File
	reader *csv.Reader
	header []string
}

var _ Source = (*CSVSource)(nil)

// OpenCSV opens path and reads its header row.
func OpenCSV(path string) (*CSVSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}

	r := csv.NewReader(Wrap(f))
	r.FieldsPerRecord = -1 // ragged rows are padded downstream

	header, err := r.Read()
	if err == io.EOF {
		f.Close()
		return nil, fmt.Errorf("csv %s is empty", path)
	}
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	return &CSVSource{
		file:   f,
		reader: r,
		header: CleanRecord(header),
	}, nil
}

// Header returns the cleaned header row.
func (s *CSVSource) Header() []string {
	return s.header
}

// Next returns the next data row, or io.EOF when the file is exhausted.
func (s *CSVSource) Next() ([]string, error) {
	record, err := s.reader.Read()
	if err == io.EOF {
		return nil, io.EOF
	}
	if err != nil {
		return nil, fmt.Errorf("read csv row: %w", err)
	}
	return record, nil
}

// Close releases the underlying file.
func (s *CSVSource) Close() error {
	return s.file.Close()
}

// CSVSink writes the augmented table to a CSV file.
type CSVSink struct {
	file   *os.File
	writer *csv.Writer
}

var _ Sink = (*CSVSink)(nil)

// CreateCSV creates (or truncates) the output file at path.
func CreateCSV(path string) (*CSVSink, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create csv: %w", err)
	}
	return &CSVSink{file: f, writer: csv.NewWriter(f)}, nil
}

// WriteHeader writes the output header row.
func (s *CSVSink) WriteHeader(header []string) error {
	return s.writer.Write(header)
}

// WriteRow writes one augmented data row.
func (s *CSVSink) WriteRow(row []string) error {
	return s.writer.Write(row)
}

// Close flushes buffered rows and closes the file.
func (s *CSVSink) Close() error {
	s.writer.Flush()
	if err := s.writer.Error(); err != nil {
		s.file.Close()
		return fmt.Errorf("flush csv: %w", err)
	}
	return s.file.Close()
}
