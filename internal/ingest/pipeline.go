package ingest

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/scicrunch/interlex-ingest/internal/interlex"
)

// Ingestor validates and submits one entity row at a time.
type Ingestor struct {
	checker  *Checker
	registry Registry
	prefixes PrefixTable
	log      *slog.Logger
}

// NewIngestor creates an ingestor bound to a registry, a prefix table,
// and the acting user's id. A nil logger falls back to slog.Default.
func NewIngestor(registry Registry, prefixes PrefixTable, userID string, log *slog.Logger) *Ingestor {
	if log == nil {
		log = slog.Default()
	}
	return &Ingestor{
		checker:  NewChecker(registry, prefixes, userID),
		registry: registry,
		prefixes: prefixes,
		log:      log,
	}
}

// rowCheck names one step of the fixed validation sequence.
type rowCheck struct {
	name string
	run  func(ctx context.Context) (string, error)
}

// IngestRow runs the validation sequence for one row and submits the
// entity when every check passes.
//
// The sequence is the single source of truth for check order: synonym
// duplicates, curie existence, superclass existence, label duplicate.
// The first non-empty message rejects the row and later checks never
// run, so the recorded error always names the earliest failure.
//
// Validation failures come back as data in the Outcome; a non-nil error
// means a registry fault and the row's outcome is undecided.
func (ing *Ingestor) IngestRow(ctx context.Context, row EntityRow) (Outcome, error) {
	synonyms := ExpandSynonyms(row.Synonyms)

	checks := []rowCheck{
		{"synonym-duplicates", func(ctx context.Context) (string, error) {
			return ing.checker.CheckSynonymDuplicates(ctx, synonyms, "")
		}},
		{"curie-existence", func(ctx context.Context) (string, error) {
			return ing.checker.CheckCurieExistence(ctx, row.Curie)
		}},
		{"superclass-existence", func(ctx context.Context) (string, error) {
			return ing.checker.CheckSuperclass(ctx, row.Superclass)
		}},
		{"label-duplicate", func(ctx context.Context) (string, error) {
			return ing.checker.CheckLabelDuplicate(ctx, row.Label, "")
		}},
	}

	for _, check := range checks {
		msg, err := check.run(ctx)
		if err != nil {
			return Outcome{}, fmt.Errorf("%s check for %q: %w", check.name, row.Label, err)
		}
		if msg != "" {
			ing.log.Debug("row rejected",
				"label", row.Label,
				"check", check.name,
				"reason", msg,
			)
			return Outcome{Error: msg}, nil
		}
	}

	ent, err := ing.registry.AddEntity(ctx, interlex.AddEntityRequest{
		Label:       row.Label,
		Type:        row.Type,
		Definition:  row.Definition,
		Comment:     row.Comment,
		Synonyms:    synonyms,
		Superclass:  row.Superclass,
		ExistingIDs: []interlex.ExistingID{ing.prefixes.ExpandCurie(row.Curie, row.Preferred)},
	})
	if err != nil {
		return Outcome{}, fmt.Errorf("add entity %q: %w", row.Label, err)
	}

	ing.log.Debug("row submitted", "label", row.Label, "ilx", ent.ILX)
	return Outcome{Success: true, Fragment: ent.ILX}, nil
}
