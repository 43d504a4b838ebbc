package ingest

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/scicrunch/interlex-ingest/internal/tabular"
)

// Output columns appended after the original columns of every row.
const (
	ColError    = "error"
	ColSuccess  = "success"
	ColFragment = "InterLex Fragment"
)

// Summary aggregates one batch run.
type Summary struct {
	Rows      int
	Submitted int
	Rejected  int
}

// Run drives a whole batch: header gate, then every row strictly in
// input order, one at a time.
//
// The output table always carries one row per input row, the original
// fields untouched, with the error, success, and fragment columns
// appended. A header mismatch fails before any row is processed; a
// registry fault aborts mid-batch with the summary so far.
func Run(ctx context.Context, src tabular.Source, sink tabular.Sink, ing *Ingestor, log *slog.Logger) (Summary, error) {
	if log == nil {
		log = slog.Default()
	}

	header := src.Header()
	if err := CheckHeader(header); err != nil {
		return Summary{}, fmt.Errorf("header check: %w", err)
	}
	idx := MakeHeaderIndex(header)

	out := make([]string, 0, len(header)+3)
	out = append(out, header...)
	out = append(out, ColError, ColSuccess, ColFragment)
	if err := sink.WriteHeader(out); err != nil {
		return Summary{}, fmt.Errorf("write header: %w", err)
	}

	var sum Summary
	for {
		record, err := src.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return sum, fmt.Errorf("row %d: %w", sum.Rows+1, err)
		}
		record = tabular.PadRecord(record, len(header))

		row := RowFromRecord(record, idx)
		outcome, err := ing.IngestRow(ctx, row)
		if err != nil {
			return sum, fmt.Errorf("row %d: %w", sum.Rows+1, err)
		}

		sum.Rows++
		if outcome.Success {
			sum.Submitted++
		} else {
			sum.Rejected++
		}

		augmented := make([]string, 0, len(header)+3)
		augmented = append(augmented, record[:len(header)]...)
		augmented = append(augmented, outcome.Error, outcome.SuccessToken(), outcome.Fragment)
		if err := sink.WriteRow(augmented); err != nil {
			return sum, fmt.Errorf("write row %d: %w", sum.Rows, err)
		}

		log.Debug("row processed",
			"row", sum.Rows,
			"label", row.Label,
			"success", outcome.Success,
		)
	}

	log.Info("batch complete",
		"rows", sum.Rows,
		"submitted", sum.Submitted,
		"rejected", sum.Rejected,
	)
	return sum, nil
}
