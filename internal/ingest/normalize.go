package ingest

import (
	"strings"

	"github.com/scicrunch/interlex-ingest/internal/interlex"
)

// PrefixTable maps curie prefixes to the namespace IRIs they expand to.
// Built once per run from the registry's curie catalog and read-only
// afterwards; safe to share across rows.
type PrefixTable map[string]string

// NewPrefixTable builds the table from the registry catalog. Catalog
// entries with an empty prefix are dropped.
func NewPrefixTable(catalog []interlex.CuriePrefix) PrefixTable {
	table := make(PrefixTable, len(catalog))
	for _, entry := range catalog {
		if entry.Prefix == "" {
			continue
		}
		table[entry.Prefix] = entry.Namespace
	}
	return table
}

// splitCurie splits a curie on its LAST colon into prefix and local id.
// ok is false when there is no colon at all; a malformed value never
// panics, it just fails to split.
func splitCurie(curie string) (prefix, localID string, ok bool) {
	i := strings.LastIndex(curie, ":")
	if i < 0 {
		return "", "", false
	}
	return curie[:i], curie[i+1:], true
}

// ExpandSynonyms splits a comma-delimited synonym field into its parts,
// trimming surrounding whitespace. Order is preserved, empty pieces are
// kept, and nothing is deduplicated here; duplicate handling belongs to
// validation.
func ExpandSynonyms(raw string) []string {
	parts := strings.Split(raw, ",")
	synonyms := make([]string, len(parts))
	for i, part := range parts {
		synonyms[i] = strings.TrimSpace(part)
	}
	return synonyms
}

// ExpandCurie expands a curie into the existing-id form the registry
// expects on submission. The prefix must already have passed
// CheckCuriePrefix; an unknown prefix expands against an empty
// namespace.
func (t PrefixTable) ExpandCurie(curie, preferred string) interlex.ExistingID {
	prefix, localID, _ := splitCurie(curie)

	id := interlex.ExistingID{
		IRI:   t[prefix] + localID,
		Curie: curie,
	}
	if flagTrue(preferred) {
		id.Preferred = 1
	}
	return id
}

// flagTrue reports whether a preferred-flag cell normalizes to true.
// Accepted forms are "t", "true", and "1", case-insensitively.
func flagTrue(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "t", "true", "1":
		return true
	}
	return false
}
