package ingest

import (
	"fmt"
	"sort"
)

// ExtraHeaderError reports columns present in the input that are not
// part of the contract. Unknown columns would be silently dropped from
// the output table, so they fail the batch outright.
type ExtraHeaderError struct {
	Columns []string // sorted
}

func (e *ExtraHeaderError) Error() string {
	return fmt.Sprintf("extra headers: %v", e.Columns)
}

// MissingHeaderError reports required columns absent from the input.
type MissingHeaderError struct {
	Columns []string // sorted
}

func (e *MissingHeaderError) Error() string {
	return fmt.Sprintf("missing headers: %v", e.Columns)
}

// CheckHeader verifies that the input table carries exactly the required
// column set, in any order. Extra columns are checked before missing
// ones, so a header with both problems reports only the extras.
// Pure set logic, no side effects.
func CheckHeader(columns []string) error {
	present := make(map[string]bool, len(columns))
	for _, c := range columns {
		present[c] = true
	}

	required := make(map[string]bool, len(RequiredColumns))
	for _, c := range RequiredColumns {
		required[c] = true
	}

	var extra []string
	for c := range present {
		if !required[c] {
			extra = append(extra, c)
		}
	}
	if len(extra) > 0 {
		sort.Strings(extra)
		return &ExtraHeaderError{Columns: extra}
	}

	var missing []string
	for _, c := range RequiredColumns {
		if !present[c] {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return &MissingHeaderError{Columns: missing}
	}

	return nil
}
