package tabular

import "strings"

// CleanCell normalizes one raw cell value: surrounding whitespace is
// trimmed and the Excel text-formula artifact (="value") is unwrapped.
func CleanCell(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, `="`) && strings.HasSuffix(s, `"`) && len(s) >= 3 {
		s = s[2 : len(s)-1]
	}
	return strings.TrimSpace(s)
}

// CleanHeader normalizes one header cell. Besides CleanCell treatment it
// drops a stray BOM that survived decoding. Case is preserved: the
// column contract is case-sensitive.
func CleanHeader(s string) string {
	s = strings.TrimPrefix(s, "\ufeff")
	return CleanCell(s)
}

// CleanRecord applies CleanHeader to every cell of a header row.
func CleanRecord(record []string) []string {
	out := make([]string, len(record))
	for i, cell := range record {
		out[i] = CleanHeader(cell)
	}
	return out
}

// PadRecord extends a ragged row with empty cells up to width.
func PadRecord(record []string, width int) []string {
	if len(record) >= width {
		return record
	}
	padded := make([]string, width)
	copy(padded, record)
	return padded
}
