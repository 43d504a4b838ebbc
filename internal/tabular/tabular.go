// Package tabular provides row sources and sinks for batch ingestion.
//
// A batch run reads rows from one Source and writes the augmented table
// to one Sink. CSV files and XLSX workbooks are the two variants; both
// implement the same pair of interfaces so the ingestion core never knows
// which kind of table it is processing.
package tabular

// Source yields the rows of one tabular input. The header row is read
// eagerly when the source is opened; Next returns data rows in file
// order and io.EOF when exhausted.
type Source interface {
	Header() []string
	Next() ([]string, error)
	Close() error
}

// Sink receives the augmented output table. WriteHeader must be called
// once before any WriteRow. Close flushes and finalizes the output.
type Sink interface {
	WriteHeader(header []string) error
	WriteRow(row []string) error
	Close() error
}
