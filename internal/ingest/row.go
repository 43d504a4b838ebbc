package ingest

import "github.com/scicrunch/interlex-ingest/internal/tabular"

// Column names of the input table contract. Matching is order-independent
// but case-sensitive.
const (
	ColLabel      = "label"
	ColType       = "type"
	ColSynonyms   = "synonyms"
	ColDefinition = "definition"
	ColComment    = "comment"
	ColSuperclass = "superclass"
	ColCurie      = "curie"
	ColPreferred  = "preferred"
)

// RequiredColumns is the exact column set a batch must carry.
var RequiredColumns = []string{
	ColLabel, ColType, ColSynonyms, ColDefinition,
	ColComment, ColSuperclass, ColCurie, ColPreferred,
}

// Entity type tags accepted by the registry.
const (
	TypeTerm         = "term"
	TypeTermSet      = "TermSet"
	TypePDE          = "pde" // personal data element
	TypeCDE          = "cde" // common data element
	TypeAnnotation   = "annotation"
	TypeRelationship = "relationship"
)

// HeaderIndex maps column names to their position in a record.
type HeaderIndex map[string]int

// MakeHeaderIndex builds a HeaderIndex from a cleaned header row.
// Computed once per batch, reused for every row.
func MakeHeaderIndex(header []string) HeaderIndex {
	idx := make(HeaderIndex, len(header))
	for i, name := range header {
		idx[name] = i
	}
	return idx
}

// EntityRow is one candidate entity, built from one input record and
// never mutated afterwards.
type EntityRow struct {
	Label      string
	Type       string
	Synonyms   string // raw comma-delimited form
	Definition string
	Comment    string
	Superclass string
	Curie      string
	Preferred  string
}

// RowFromRecord extracts an EntityRow from a raw record. Cells are
// cleaned on the way in; the record itself is left untouched so the
// original fields survive verbatim into the output table.
func RowFromRecord(record []string, idx HeaderIndex) EntityRow {
	cell := func(name string) string {
		pos, ok := idx[name]
		if !ok || pos >= len(record) {
			return ""
		}
		return tabular.CleanCell(record[pos])
	}

	return EntityRow{
		Label:      cell(ColLabel),
		Type:       cell(ColType),
		Synonyms:   cell(ColSynonyms),
		Definition: cell(ColDefinition),
		Comment:    cell(ColComment),
		Superclass: cell(ColSuperclass),
		Curie:      cell(ColCurie),
		Preferred:  cell(ColPreferred),
	}
}

// Outcome is the per-row result of one validation and submission cycle.
type Outcome struct {
	// Error holds the first failing check's message, empty on success.
	Error string

	// Success is true only when the entity was actually submitted.
	Success bool

	// Fragment is the registry-assigned identifier, set only on success.
	Fragment string
}

// SuccessToken returns the literal output token for the success column.
func (o Outcome) SuccessToken() string {
	if o.Success {
		return "T"
	}
	return "F"
}
