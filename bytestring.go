// SPDX-License-Identifier: GPL-3.0-or-later

package bytestring

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"iter"
	"sync/atomic"
)

// Errors returned by the functions and methods of this package.
var (
	// ErrInvalidArgument indicates that a source is absent or that an
	// offset, length, or size is negative or inconsistent.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrIndexOutOfRange indicates that an index or range falls outside
	// the bounds of a byte string or buffer.
	ErrIndexOutOfRange = errors.New("index out of range")
)

// ByteString is an immutable sequence of bytes.
//
// A ByteString is a view over buf[off:off+n]. The backing array may be
// shared with other byte strings produced by [*ByteString.Substring], but
// it is never written after construction.
//
// Construct using [New], [NewRange], [From], [FromByteString], or
// [FromReader]. The zero-length byte string is [Empty].
type ByteString struct {
	buf []byte
	off int
	n   int

	// hash caches the hash code in the low 32 bits; hashComputed is
	// set once the low bits are valid.
	hash atomic.Uint64
}

const hashComputed = 1 << 32

// Empty is the zero-length byte string.
var Empty = &ByteString{buf: []byte{}}

// wrap returns a byte string owning buf. The caller must not retain buf.
func wrap(buf []byte) *ByteString {
	if len(buf) == 0 {
		return Empty
	}
	return &ByteString{buf: buf, n: len(buf)}
}

// New returns a byte string containing a copy of b.
//
// It returns [ErrInvalidArgument] if b is nil.
func New(b []byte) (*ByteString, error) {
	if b == nil {
		return nil, fmt.Errorf("%w: source cannot be nil", ErrInvalidArgument)
	}
	return NewRange(b, 0, len(b))
}

// NewRange returns a byte string containing a copy of b[off:off+n].
//
// It returns [ErrInvalidArgument] if b is nil or the range does not
// fit inside b.
func NewRange(b []byte, off, n int) (*ByteString, error) {
	if b == nil {
		return nil, fmt.Errorf("%w: source cannot be nil", ErrInvalidArgument)
	}
	if err := checkSourceRange(len(b), off, n); err != nil {
		return nil, err
	}
	return wrap(bytes.Clone(b[off : off+n])), nil
}

// FromByteString returns a deep copy of s that never shares the
// backing array of s.
func FromByteString(s *ByteString) (*ByteString, error) {
	if s == nil {
		return nil, fmt.Errorf("%w: source cannot be nil", ErrInvalidArgument)
	}
	return wrap(bytes.Clone(s.view())), nil
}

// FromByteStringRange returns a deep copy of the n bytes of s starting
// at off.
func FromByteStringRange(s *ByteString, off, n int) (*ByteString, error) {
	if s == nil {
		return nil, fmt.Errorf("%w: source cannot be nil", ErrInvalidArgument)
	}
	if err := checkSourceRange(s.n, off, n); err != nil {
		return nil, err
	}
	return wrap(bytes.Clone(s.view()[off : off+n])), nil
}

// From returns a byte string built from individual byte values. Each
// value is truncated to its low eight bits.
func From(values ...int) *ByteString {
	if len(values) == 0 {
		return Empty
	}
	buf := make([]byte, len(values))
	for i, v := range values {
		buf[i] = byte(v)
	}
	return wrap(buf)
}

// FromReader reads exactly n bytes from r into a new byte string,
// advancing r by n bytes.
//
// A short read is reported as [io.ErrUnexpectedEOF] or [io.EOF] as
// returned by [io.ReadFull].
func FromReader(r io.Reader, n int) (*ByteString, error) {
	if r == nil {
		return nil, fmt.Errorf("%w: reader cannot be nil", ErrInvalidArgument)
	}
	if n < 0 {
		return nil, fmt.Errorf("%w: negative count %d", ErrInvalidArgument, n)
	}
	if n == 0 {
		return Empty, nil
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, fmt.Errorf("reading %d bytes: %w", n, err)
	}
	return wrap(buf), nil
}

func checkSourceRange(size, off, n int) error {
	if off < 0 || n < 0 {
		return fmt.Errorf("%w: negative offset or length: offset=%d, length=%d",
			ErrInvalidArgument, off, n)
	}
	if n > size-off {
		return fmt.Errorf("%w: range exceeds source: offset=%d, length=%d, source length=%d",
			ErrInvalidArgument, off, n, size)
	}
	return nil
}

// view returns the observable window. The result must never be written.
//
// A nil *ByteString has an empty view.
func (s *ByteString) view() []byte {
	if s == nil {
		return nil
	}
	end := s.off + s.n
	return s.buf[s.off:end:end]
}

// Len returns the number of bytes in s.
func (s *ByteString) Len() int {
	return s.n
}

// IsEmpty returns true if and only if s.Len() is zero.
func (s *ByteString) IsEmpty() bool {
	return s.n == 0
}

// Footprint returns the size of the backing array retained by s, which
// exceeds s.Len() when s is a slice of a larger byte string.
func (s *ByteString) Footprint() int {
	return len(s.buf)
}

// ByteAt returns the byte at the given index.
//
// It returns [ErrIndexOutOfRange] unless 0 <= index < s.Len().
func (s *ByteString) ByteAt(index int) (byte, error) {
	if index < 0 || index >= s.n {
		return 0, fmt.Errorf("%w: index=%d, length=%d", ErrIndexOutOfRange, index, s.n)
	}
	return s.buf[s.off+index], nil
}

// SubstringFrom is equivalent to s.Substring(begin, s.Len()).
func (s *ByteString) SubstringFrom(begin int) (*ByteString, error) {
	return s.Substring(begin, s.n)
}

// Substring returns the bytes in the half-open range [begin, end).
//
// The result shares the backing array of s without copying. If the range
// covers the whole of s, the result is s itself. If the range is empty,
// the result is [Empty].
//
// It returns [ErrIndexOutOfRange] if begin is negative, end is larger
// than s.Len(), or end is smaller than begin.
func (s *ByteString) Substring(begin, end int) (*ByteString, error) {
	if begin < 0 || end > s.n || end < begin {
		return nil, fmt.Errorf("%w: begin=%d, end=%d, length=%d",
			ErrIndexOutOfRange, begin, end, s.n)
	}
	if begin == 0 && end == s.n {
		return s, nil
	}
	if begin == end {
		return Empty, nil
	}
	return &ByteString{buf: s.buf, off: s.off + begin, n: end - begin}, nil
}

// Compact returns a byte string with the same content as s whose backing
// array is exactly s.Len() bytes long. If s already satisfies this
// condition, Compact returns s itself.
func (s *ByteString) Compact() *ByteString {
	if len(s.buf) == s.n {
		return s
	}
	return wrap(bytes.Clone(s.view()))
}

// Concat returns a byte string containing s followed by b.
//
// If b is empty, the result is s itself. It returns [ErrInvalidArgument]
// if b is nil.
func (s *ByteString) Concat(b []byte) (*ByteString, error) {
	if b == nil {
		return nil, fmt.Errorf("%w: source cannot be nil", ErrInvalidArgument)
	}
	return s.ConcatRange(b, 0, len(b))
}

// ConcatRange returns a byte string containing s followed by b[off:off+n].
//
// If n is zero, the result is s itself.
func (s *ByteString) ConcatRange(b []byte, off, n int) (*ByteString, error) {
	if b == nil {
		return nil, fmt.Errorf("%w: source cannot be nil", ErrInvalidArgument)
	}
	if err := checkSourceRange(len(b), off, n); err != nil {
		return nil, err
	}
	if n == 0 {
		return s, nil
	}
	buf := make([]byte, s.n+n)
	copy(buf, s.view())
	copy(buf[s.n:], b[off:off+n])
	return wrap(buf), nil
}

// ConcatStrings returns a byte string containing s followed by each of
// others, in order, using a single allocation.
//
// If others add no bytes, the result is s itself.
func (s *ByteString) ConcatStrings(others ...*ByteString) (*ByteString, error) {
	total := s.n
	for i, other := range others {
		if other == nil {
			return nil, fmt.Errorf("%w: byte string %d is nil", ErrInvalidArgument, i)
		}
		total += other.n
	}
	if total == s.n {
		return s, nil
	}
	buf := make([]byte, total)
	pos := copy(buf, s.view())
	for _, other := range others {
		pos += copy(buf[pos:], other.view())
	}
	return wrap(buf), nil
}

// Equal returns true if s and other contain the same bytes. The backing
// arrays and offsets of the two views do not matter.
func (s *ByteString) Equal(other *ByteString) bool {
	if s == other {
		return true
	}
	if s == nil || other == nil {
		return false
	}
	return s.n == other.n && bytes.Equal(s.view(), other.view())
}

// HashCode returns the hash code of s, computed over its bytes as
// h = 37*h + b where b is the sign-extended byte value.
//
// The result is cached, so repeated calls are cheap.
func (s *ByteString) HashCode() int32 {
	if cached := s.hash.Load(); cached&hashComputed != 0 {
		return int32(uint32(cached))
	}
	var h int32
	for _, b := range s.view() {
		h = 37*h + int32(int8(b))
	}
	s.hash.Store(hashComputed | uint64(uint32(h)))
	return h
}

// String returns a debug representation containing the length and the
// hash code of s, but not its content.
func (s *ByteString) String() string {
	return fmt.Sprintf("[len=%d, hashCode=%d]", s.n, s.HashCode())
}

// Hex returns the hexadecimal encoding of the content of s.
func (s *ByteString) Hex() string {
	return hex.EncodeToString(s.view())
}

// Bytes returns a copy of the content of s.
func (s *ByteString) Bytes() []byte {
	return bytes.Clone(s.view())
}

// CopyTo copies the content of s into dst starting at off and returns the
// number of bytes copied, which is always s.Len().
//
// It returns [ErrIndexOutOfRange] if dst[off:] is shorter than s.
func (s *ByteString) CopyTo(dst []byte, off int) (int, error) {
	if off < 0 || s.n > len(dst)-off {
		return 0, fmt.Errorf("%w: offset=%d, length=%d, destination length=%d",
			ErrIndexOutOfRange, off, s.n, len(dst))
	}
	return copy(dst[off:], s.view()), nil
}

// WriteTo implements [io.WriterTo].
func (s *ByteString) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(s.view())
	return int64(n), err
}

// Cursor returns a read-only [*bytes.Reader] over the content of s. The
// reader shares the backing array of s without copying.
func (s *ByteString) Cursor() *bytes.Reader {
	return bytes.NewReader(s.view())
}

// ForEach calls fn for each byte of s, in order.
func (s *ByteString) ForEach(fn func(b byte)) {
	for _, b := range s.view() {
		fn(b)
	}
}

// All returns an iterator over the indexes and bytes of s.
func (s *ByteString) All() iter.Seq2[int, byte] {
	return func(yield func(int, byte) bool) {
		for i, b := range s.view() {
			if !yield(i, b) {
				return
			}
		}
	}
}
