package ingest

import (
	"context"
	"reflect"
	"testing"

	"github.com/scicrunch/interlex-ingest/internal/interlex"
)

func validRow() EntityRow {
	return EntityRow{
		Label:      "Lateral brain",
		Type:       TypeTerm,
		Synonyms:   "side brain",
		Definition: "Lateral region of the brain.",
		Comment:    "bulk ingest test",
		Superclass: "ILX:0108124",
		Curie:      "UBERON:12345",
		Preferred:  "T",
	}
}

func newTestIngestor(reg *fakeRegistry) *Ingestor {
	return NewIngestor(reg, testPrefixes(), "42", nil)
}

func TestIngestRow_Submits(t *testing.T) {
	reg := newFakeRegistry()
	reg.byID["ILX:0108124"] = interlex.Entity{ILX: "ilx_0108124", Label: "Organ"}
	ing := newTestIngestor(reg)

	outcome, err := ing.IngestRow(context.Background(), validRow())
	if err != nil {
		t.Fatalf("IngestRow() error = %v", err)
	}
	if !outcome.Success {
		t.Fatalf("outcome = %+v, want success", outcome)
	}
	if outcome.Fragment != "tmp_0100001" {
		t.Errorf("Fragment = %q, want assigned ilx", outcome.Fragment)
	}
	if outcome.Error != "" {
		t.Errorf("Error = %q, want empty on success", outcome.Error)
	}

	if len(reg.added) != 1 {
		t.Fatalf("added entities = %d, want 1", len(reg.added))
	}
	got := reg.added[0]
	if got.Label != "Lateral brain" || got.Type != TypeTerm {
		t.Errorf("submitted label/type = %q/%q", got.Label, got.Type)
	}
	if !reflect.DeepEqual(got.Synonyms, []string{"side brain"}) {
		t.Errorf("submitted synonyms = %v", got.Synonyms)
	}
	wantID := interlex.ExistingID{
		IRI:       "http://purl.obolibrary.org/obo/UBERON_12345",
		Curie:     "UBERON:12345",
		Preferred: 1,
	}
	if !reflect.DeepEqual(got.ExistingIDs, []interlex.ExistingID{wantID}) {
		t.Errorf("submitted existing ids = %+v, want %+v", got.ExistingIDs, wantID)
	}
}

func TestIngestRow_CheckOrder(t *testing.T) {
	reg := newFakeRegistry()
	reg.byID["ILX:0108124"] = interlex.Entity{ILX: "ilx_0108124"}
	ing := newTestIngestor(reg)

	if _, err := ing.IngestRow(context.Background(), validRow()); err != nil {
		t.Fatalf("IngestRow() error = %v", err)
	}

	want := []string{
		"exists:side brain:42",   // synonym duplicates first
		"curie:UBERON:12345",     // then curie existence
		"id:ILX:0108124",         // then superclass
		"exists:Lateral brain:42", // then label duplicate
		"add:Lateral brain",      // submission last
	}
	if !reflect.DeepEqual(reg.calls, want) {
		t.Errorf("registry calls = %v, want %v", reg.calls, want)
	}
}

func TestIngestRow_SynonymDuplicateStopsEverything(t *testing.T) {
	reg := newFakeRegistry()
	reg.terms["side brain"] = []interlex.TermMatch{{Label: "Side brain", ILX: "ilx_0200001"}}
	ing := newTestIngestor(reg)

	outcome, err := ing.IngestRow(context.Background(), validRow())
	if err != nil {
		t.Fatalf("IngestRow() error = %v", err)
	}
	if outcome.Success {
		t.Fatal("outcome success = true, want rejection")
	}
	want := "Synonym Side brain already exists in InterLex with ID ilx_0200001"
	if outcome.Error != want {
		t.Errorf("Error = %q, want %q", outcome.Error, want)
	}
	if !reflect.DeepEqual(reg.calls, []string{"exists:side brain:42"}) {
		t.Errorf("registry calls = %v, want only the first check", reg.calls)
	}
}

func TestIngestRow_CurieExistsStopsBeforeSubmit(t *testing.T) {
	reg := newFakeRegistry()
	reg.byCurie["UBERON:12345"] = interlex.Entity{ILX: "ilx_0101431"}
	reg.byID["ILX:0108124"] = interlex.Entity{ILX: "ilx_0108124"}
	ing := newTestIngestor(reg)

	outcome, err := ing.IngestRow(context.Background(), validRow())
	if err != nil {
		t.Fatalf("IngestRow() error = %v", err)
	}
	want := "Curie UBERON:12345 already exists with InterLex ID ilx_0101431"
	if outcome.Error != want {
		t.Errorf("Error = %q, want %q", outcome.Error, want)
	}
	if len(reg.added) != 0 {
		t.Errorf("added entities = %d, want none after rejection", len(reg.added))
	}
	for _, call := range reg.calls {
		if call == "id:ILX:0108124" {
			t.Error("superclass checked after curie rejection; checks must short-circuit")
		}
	}
}

func TestIngestRow_MissingSuperclass(t *testing.T) {
	reg := newFakeRegistry()
	ing := newTestIngestor(reg)

	outcome, err := ing.IngestRow(context.Background(), validRow())
	if err != nil {
		t.Fatalf("IngestRow() error = %v", err)
	}
	want := "Superclass ILX:0108124 does not exist in InterLex."
	if outcome.Error != want {
		t.Errorf("Error = %q, want %q", outcome.Error, want)
	}
}

func TestIngestRow_RegistryFault(t *testing.T) {
	reg := newFakeRegistry()
	reg.err = context.DeadlineExceeded
	ing := newTestIngestor(reg)

	if _, err := ing.IngestRow(context.Background(), validRow()); err == nil {
		t.Fatal("IngestRow() error = nil, want fault from registry")
	}
}
