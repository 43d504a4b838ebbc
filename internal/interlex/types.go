package interlex

// Entity is a term record as returned by the registry. Lookup endpoints
// signal absence with an empty ILX field rather than an error.
type Entity struct {
	ILX        string `json:"ilx"`
	Label      string `json:"label"`
	Type       string `json:"type"`
	Definition string `json:"definition"`
	Comment    string `json:"comment"`
	Superclass string `json:"superclass"`
	UID        string `json:"uid"`
}

// Exists reports whether the lookup actually resolved to a registry term.
func (e Entity) Exists() bool {
	return e.ILX != ""
}

// TermMatch is one hit from a scoped duplicate-label query.
type TermMatch struct {
	Label string `json:"label"`
	ILX   string `json:"ilx"`
	UID   string `json:"uid"`
}

// CuriePrefix is one entry of the registry's curie catalog, mapping a
// curie prefix to the namespace IRI it expands to.
type CuriePrefix struct {
	Prefix    string `json:"prefix"`
	Namespace string `json:"namespace"`
}

// ExistingID is an external identifier attached to a new term at
// submission time. Preferred is 1 when the expanded curie should become
// the term's preferred external id, else 0.
type ExistingID struct {
	IRI       string `json:"iri"`
	Curie     string `json:"curie"`
	Preferred int    `json:"preferred"`
}

// AddEntityRequest carries all fields of a term submission.
type AddEntityRequest struct {
	Label       string       `json:"label"`
	Type        string       `json:"type"`
	Definition  string       `json:"definition,omitempty"`
	Comment     string       `json:"comment,omitempty"`
	Synonyms    []string     `json:"synonyms,omitempty"`
	Superclass  string       `json:"superclass,omitempty"`
	ExistingIDs []ExistingID `json:"existing_ids,omitempty"`
}

// User identifies the authenticated account behind the API key.
type User struct {
	ID string `json:"id"`
}
