// SPDX-License-Identifier: GPL-3.0-or-later

package bytestring

import "io"

// Reader reads the content of a [*ByteString] sequentially.
//
// Construct using [*ByteString.NewReader]. A Reader never reads outside
// the window of the byte string it was created from.
type Reader struct {
	buf []byte
	pos int
}

var (
	_ io.Reader     = &Reader{}
	_ io.ByteReader = &Reader{}
	_ io.WriterTo   = &Reader{}
)

// NewReader returns a [*Reader] over the content of s. The reader shares
// the backing array of s without copying.
func (s *ByteString) NewReader() *Reader {
	return &Reader{buf: s.view()}
}

// Available returns the number of bytes that can still be read.
func (r *Reader) Available() int {
	return len(r.buf) - r.pos
}

// Read implements [io.Reader].
func (r *Reader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if r.pos >= len(r.buf) {
		return 0, io.EOF
	}
	n := copy(p, r.buf[r.pos:])
	r.pos += n
	return n, nil
}

// ReadByte implements [io.ByteReader].
func (r *Reader) ReadByte() (byte, error) {
	if r.pos >= len(r.buf) {
		return 0, io.EOF
	}
	b := r.buf[r.pos]
	r.pos++
	return b, nil
}

// Skip advances the reader by up to n bytes and returns the number of
// bytes actually skipped. A negative n skips nothing.
func (r *Reader) Skip(n int64) int64 {
	if n <= 0 {
		return 0
	}
	n = min(n, int64(r.Available()))
	r.pos += int(n)
	return n
}

// WriteTo implements [io.WriterTo].
func (r *Reader) WriteTo(w io.Writer) (int64, error) {
	if r.pos >= len(r.buf) {
		return 0, nil
	}
	n, err := w.Write(r.buf[r.pos:])
	r.pos += n
	return int64(n), err
}
