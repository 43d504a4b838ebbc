package tabular

import (
	"io"
	"os"
	"path/filepath"
	"testing"
)

func writeTempCSV(t *testing.T, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "in.csv")
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestOpenCSV_HeaderAndRows(t *testing.T) {
	path := writeTempCSV(t, []byte("label,type\nBrain,term\nForebrain,term\n"))

	src, err := OpenCSV(path)
	if err != nil {
		t.Fatalf("OpenCSV() error = %v", err)
	}
	defer src.Close()

	header := src.Header()
	if len(header) != 2 || header[0] != "label" || header[1] != "type" {
		t.Errorf("Header() = %v", header)
	}

	var rows [][]string
	for {
		row, err := src.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Next() error = %v", err)
		}
		rows = append(rows, row)
	}

	if len(rows) != 2 {
		t.Fatalf("read %d rows, want 2", len(rows))
	}
	if rows[0][0] != "Brain" || rows[1][0] != "Forebrain" {
		t.Errorf("rows = %v", rows)
	}
}

func TestOpenCSV_BOMHeader(t *testing.T) {
	content := append([]byte{0xEF, 0xBB, 0xBF}, []byte("label,type\nBrain,term\n")...)
	path := writeTempCSV(t, content)

	src, err := OpenCSV(path)
	if err != nil {
		t.Fatalf("OpenCSV() error = %v", err)
	}
	defer src.Close()

	if src.Header()[0] != "label" {
		t.Errorf("Header()[0] = %q, want %q (BOM must be stripped)", src.Header()[0], "label")
	}
}

func TestOpenCSV_RaggedRows(t *testing.T) {
	path := writeTempCSV(t, []byte("label,type,synonyms\nBrain,term\n"))

	src, err := OpenCSV(path)
	if err != nil {
		t.Fatalf("OpenCSV() error = %v", err)
	}
	defer src.Close()

	row, err := src.Next()
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}

	padded := PadRecord(row, len(src.Header()))
	if len(padded) != 3 {
		t.Fatalf("PadRecord() len = %d, want 3", len(padded))
	}
	if padded[2] != "" {
		t.Errorf("padded[2] = %q, want empty", padded[2])
	}
}

func TestOpenCSV_Empty(t *testing.T) {
	path := writeTempCSV(t, []byte(""))

	if _, err := OpenCSV(path); err == nil {
		t.Fatal("OpenCSV() expected error for empty file")
	}
}

func TestCSVSink_Roundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")

	sink, err := CreateCSV(path)
	if err != nil {
		t.Fatalf("CreateCSV() error = %v", err)
	}
	if err := sink.WriteHeader([]string{"label", "error", "success"}); err != nil {
		t.Fatalf("WriteHeader() error = %v", err)
	}
	if err := sink.WriteRow([]string{"Brain", "", "T"}); err != nil {
		t.Fatalf("WriteRow() error = %v", err)
	}
	if err := sink.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	src, err := OpenCSV(path)
	if err != nil {
		t.Fatalf("OpenCSV() error = %v", err)
	}
	defer src.Close()

	if src.Header()[2] != "success" {
		t.Errorf("Header() = %v", src.Header())
	}
	row, err := src.Next()
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	if row[0] != "Brain" || row[2] != "T" {
		t.Errorf("row = %v", row)
	}
}

func TestCleanCell(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "Brain", "Brain"},
		{"surrounding whitespace", "  Brain \t", "Brain"},
		{"excel text formula", `="0000955"`, "0000955"},
		{"empty", "", ""},
		{"only whitespace", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanCell(tt.input); got != tt.want {
				t.Errorf("CleanCell(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestCleanHeader_PreservesCase(t *testing.T) {
	if got := CleanHeader(" Label "); got != "Label" {
		t.Errorf("CleanHeader() = %q, want %q", got, "Label")
	}
}
