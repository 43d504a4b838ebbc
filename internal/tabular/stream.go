package tabular

// stream.go provides reader wrappers that clean up common CSV file
// issues before parsing, without loading the whole file:
//
//   - BOMSkipper: removes a UTF-8 BOM (0xEF 0xBB 0xBF) from Windows files
//   - UTF8Sanitizer: replaces invalid UTF-8 bytes with '?'
//
// Wrap applies both in the correct order.

import (
	"io"
	"unicode/utf8"
)

// Wrap layers BOM skipping and UTF-8 sanitization over r.
func Wrap(r io.Reader) io.Reader {
	return NewUTF8Sanitizer(NewBOMSkipper(r))
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// BOMSkipper removes a leading UTF-8 byte order mark, if present.
type BOMSkipper struct {
	reader  io.Reader
	checked bool
	buf     []byte
	err     error
}

// NewBOMSkipper creates a reader that drops a leading UTF-8 BOM.
func NewBOMSkipper(r io.Reader) *BOMSkipper {
	return &BOMSkipper{reader: r}
}

// Read implements io.Reader.
func (b *BOMSkipper) Read(p []byte) (int, error) {
	if !b.checked {
		b.checked = true

		head := make([]byte, len(utf8BOM))
		n, err := io.ReadFull(b.reader, head)
		if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
			return 0, err
		}
		head = head[:n]

		if string(head) != string(utf8BOM) {
			b.buf = head
		}
		if err != nil {
			b.err = io.EOF
		}
	}

	// Drain leftover bytes from the BOM probe first.
	if len(b.buf) > 0 {
		n := copy(p, b.buf)
		b.buf = b.buf[n:]
		return n, nil
	}

	if b.err != nil {
		return 0, b.err
	}
	return b.reader.Read(p)
}

// UTF8Sanitizer replaces invalid UTF-8 bytes with '?' on the fly.
//
// A single-byte replacement keeps the output no longer than the input,
// which lets sanitization happen in place in the read buffer. A rune
// split across two reads is held back until the rest of it arrives.
type UTF8Sanitizer struct {
	reader  io.Reader
	pending []byte
	eof     bool
}

// NewUTF8Sanitizer creates a streaming UTF-8 sanitizer over r.
func NewUTF8Sanitizer(r io.Reader) *UTF8Sanitizer {
	return &UTF8Sanitizer{
		reader:  r,
		pending: make([]byte, 0, utf8.UTFMax),
	}
}

// Read implements io.Reader.
func (s *UTF8Sanitizer) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	// Prepend bytes held back from the previous read.
	n := copy(p, s.pending)
	s.pending = s.pending[:0]

	m, err := s.reader.Read(p[n:])
	n += m
	if err == io.EOF {
		s.eof = true
	}
	if n == 0 {
		return 0, err
	}

	w := 0
	for r := 0; r < n; {
		if p[r] < utf8.RuneSelf {
			p[w] = p[r]
			w++
			r++
			continue
		}

		ch, size := utf8.DecodeRune(p[r:n])
		if ch == utf8.RuneError && size == 1 {
			// Possibly the start of a rune cut off by the buffer
			// boundary; hold it back until more bytes arrive.
			if !s.eof && utf8.RuneStart(p[r]) && n-r < utf8.UTFMax {
				s.pending = append(s.pending, p[r:n]...)
				break
			}
			p[w] = '?'
			w++
			r++
			continue
		}

		copy(p[w:], p[r:r+size])
		w += size
		r += size
	}

	return w, err
}
