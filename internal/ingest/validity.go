package ingest

import (
	"context"
	"fmt"
	"strings"

	"github.com/scicrunch/interlex-ingest/internal/interlex"
)

// Registry is the surface the validation pipeline needs from InterLex.
// Satisfied by *interlex.Client; tests provide fakes.
type Registry interface {
	EntityByCurie(ctx context.Context, curie string) (interlex.Entity, error)
	EntityByID(ctx context.Context, id string) (interlex.Entity, error)
	TermExists(ctx context.Context, label, uid string) ([]interlex.TermMatch, error)
	AddEntity(ctx context.Context, req interlex.AddEntityRequest) (interlex.Entity, error)
}

// nativeIDPrefixes mark registry-native identifiers. A superclass
// carrying one of these is fetched directly instead of being resolved
// as a curie. Matching is case-sensitive.
var nativeIDPrefixes = []string{"ILX:", "TMP:", "ilx_", "tmp_"}

func hasNativeID(s string) bool {
	for _, prefix := range nativeIDPrefixes {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}
	return false
}

// Check failure messages. The wording matches what InterLex curators
// already see from the existing tooling; downstream sheets key off it.
const (
	msgPrefixMissing     = "Curie %s does not have a prefix that exists in InterLex."
	msgCurieExists       = "Curie %s already exists with InterLex ID %s"
	msgSuperclassMissing = "Superclass %s does not exist in InterLex."
	msgLabelExists       = "Label %s already exists with InterLex ID %s"
	msgSynonymExists     = "Synonym %s already exists in InterLex with ID %s"
)

// Checker runs the per-row validity checks against the registry.
//
// Every check is read-only. Each returns a message and an error: a
// non-empty message is a validation failure (data, not a fault), while
// a non-nil error is a transport fault that should stop the batch.
type Checker struct {
	registry Registry
	prefixes PrefixTable
	userID   string
}

// NewChecker creates a checker. userID scopes duplicate label and
// synonym queries; it is the acting user's id.
func NewChecker(registry Registry, prefixes PrefixTable, userID string) *Checker {
	return &Checker{registry: registry, prefixes: prefixes, userID: userID}
}

// CheckCuriePrefix verifies that a curie's prefix is known to the
// registry, so it can later be expanded into a proper IRI. Any failure
// to split or resolve reports the same missing-prefix message; malformed
// input never produces a fault.
func (c *Checker) CheckCuriePrefix(curie string) string {
	prefix, _, ok := splitCurie(curie)
	if !ok {
		return fmt.Sprintf(msgPrefixMissing, curie)
	}
	if _, found := c.prefixes[prefix]; !found {
		return fmt.Sprintf(msgPrefixMissing, curie)
	}
	return ""
}

// CheckCurieExistence fails when any curie in the comma-delimited list
// already resolves to a registry entity. A bad prefix anywhere in the
// list fails immediately; the first existing curie wins and the rest
// are never queried.
func (c *Checker) CheckCurieExistence(ctx context.Context, curies string) (string, error) {
	for _, curie := range strings.Split(curies, ",") {
		curie = strings.TrimSpace(curie)

		if msg := c.CheckCuriePrefix(curie); msg != "" {
			return msg, nil
		}

		ent, err := c.registry.EntityByCurie(ctx, curie)
		if err != nil {
			return "", err
		}
		if ent.Exists() {
			return fmt.Sprintf(msgCurieExists, curie, ent.ILX), nil
		}
	}
	return "", nil
}

// CheckSuperclass fails when the referenced parent entity cannot be
// found. Native registry ids are fetched directly; anything else is
// resolved as a curie, with prefix problems propagated as-is.
func (c *Checker) CheckSuperclass(ctx context.Context, superclass string) (string, error) {
	var (
		ent interlex.Entity
		err error
	)

	if hasNativeID(superclass) {
		ent, err = c.registry.EntityByID(ctx, superclass)
	} else {
		if msg := c.CheckCuriePrefix(superclass); msg != "" {
			return msg, nil
		}
		ent, err = c.registry.EntityByCurie(ctx, superclass)
	}
	if err != nil {
		return "", err
	}

	if !ent.Exists() {
		return fmt.Sprintf(msgSuperclassMissing, superclass), nil
	}
	return "", nil
}

// CheckLabelDuplicate fails when the acting user already owns a term
// with this label. The message carries the matched record's stored
// label and id, not the input verbatim.
func (c *Checker) CheckLabelDuplicate(ctx context.Context, label, uid string) (string, error) {
	if uid == "" {
		uid = c.userID
	}

	matches, err := c.registry.TermExists(ctx, label, uid)
	if err != nil {
		return "", err
	}
	if len(matches) > 0 {
		m := matches[0]
		return fmt.Sprintf(msgLabelExists, m.Label, m.ILX), nil
	}
	return "", nil
}

// CheckSynonymDuplicates fails on the first synonym that already exists
// as a term label under the user's scope. Remaining synonyms are not
// checked once one hits.
func (c *Checker) CheckSynonymDuplicates(ctx context.Context, synonyms []string, uid string) (string, error) {
	if uid == "" {
		uid = c.userID
	}

	for _, synonym := range synonyms {
		matches, err := c.registry.TermExists(ctx, synonym, uid)
		if err != nil {
			return "", err
		}
		if len(matches) > 0 {
			m := matches[0]
			return fmt.Sprintf(msgSynonymExists, m.Label, m.ILX), nil
		}
	}
	return "", nil
}
