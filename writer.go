// SPDX-License-Identifier: GPL-3.0-or-later

package bytestring

import (
	"fmt"
	"io"
)

// DefaultChunkSize is the chunk size used by [NewWriter].
const DefaultChunkSize = 1024

// Writer accumulates bytes and materializes them as a [*ByteString].
//
// Bytes are written into fixed-size chunks. A full chunk is moved to the
// list of flushed chunks and never written again, so the writer grows
// without copying what it has already accumulated. A single write that
// does not fit in a default-size chunk gets a chunk sized exactly to it.
//
// A Writer is not safe for concurrent use.
//
// Construct using [NewWriter] or [NewWriterSize].
type Writer struct {
	chunks    [][]byte
	chunkSize int
	current   []byte
	chunkPos  int
	flushed   int
}

var (
	_ io.Writer       = &Writer{}
	_ io.ByteWriter   = &Writer{}
	_ io.StringWriter = &Writer{}
	_ io.ReaderFrom   = &Writer{}
)

// NewWriter returns a [*Writer] using [DefaultChunkSize].
func NewWriter() *Writer {
	return &Writer{chunkSize: DefaultChunkSize}
}

// NewWriterSize returns a [*Writer] using the given chunk size.
//
// It returns [ErrInvalidArgument] if size is not positive.
func NewWriterSize(size int) (*Writer, error) {
	if size < 1 {
		return nil, fmt.Errorf("%w: chunk size must be positive: %d", ErrInvalidArgument, size)
	}
	return &Writer{chunkSize: size}, nil
}

// ensure makes sure the current chunk has room for at least one byte,
// flushing it when full. A new chunk is sized to hold size bytes.
func (w *Writer) ensure(size int) {
	if w.current == nil {
		w.current = make([]byte, max(size, w.chunkSize))
	}
	if w.chunkPos == len(w.current) {
		w.chunks = append(w.chunks, w.current)
		w.flushed += len(w.current)
		w.current = make([]byte, max(size, w.chunkSize))
		w.chunkPos = 0
	}
}

// WriteByte implements [io.ByteWriter]. It never fails.
func (w *Writer) WriteByte(c byte) error {
	w.ensure(1)
	w.current[w.chunkPos] = c
	w.chunkPos++
	return nil
}

// Write implements [io.Writer]. It never fails.
func (w *Writer) Write(p []byte) (int, error) {
	total := len(p)
	if total == 0 {
		return 0, nil
	}

	w.ensure(total)

	// 1. top off the current chunk and move to a chunk that fits the rest
	if w.chunkPos+len(p) > len(w.current) {
		n := copy(w.current[w.chunkPos:], p)
		w.chunkPos += n
		w.ensure(len(p) - n)
		p = p[n:]
	}

	// 2. the remainder now fits in the current chunk
	w.chunkPos += copy(w.current[w.chunkPos:], p)
	return total, nil
}

// WriteString implements [io.StringWriter]. It never fails.
func (w *Writer) WriteString(s string) (int, error) {
	return w.Write([]byte(s))
}

// WriteSlice writes b[off:off+n].
//
// It returns [ErrInvalidArgument] if b is nil and [ErrIndexOutOfRange]
// if the range does not fit inside b. Nothing is written on failure.
func (w *Writer) WriteSlice(b []byte, off, n int) error {
	if b == nil {
		return fmt.Errorf("%w: source cannot be nil", ErrInvalidArgument)
	}
	if off < 0 || n < 0 || n > len(b)-off {
		return fmt.Errorf("%w: offset=%d, length=%d, source length=%d",
			ErrIndexOutOfRange, off, n, len(b))
	}
	_, _ = w.Write(b[off : off+n]) // Write never fails
	return nil
}

// ReadFrom implements [io.ReaderFrom] by reading directly into the
// writer's chunks until r returns [io.EOF].
func (w *Writer) ReadFrom(r io.Reader) (int64, error) {
	var total int64
	for {
		w.ensure(1)
		n, err := r.Read(w.current[w.chunkPos:])
		w.chunkPos += n
		total += int64(n)
		if err == io.EOF {
			return total, nil
		}
		if err != nil {
			return total, err
		}
	}
}

// Size returns the number of bytes written since the writer was created
// or last reset.
//
// Materializing does not change the size: see [*Writer.ByteString].
func (w *Writer) Size() int {
	return w.flushed + w.chunkPos
}

// NumChunks returns the number of flushed chunks. The chunk currently
// being filled is not counted.
func (w *Writer) NumChunks() int {
	return len(w.chunks)
}

// Reset discards everything written so far.
func (w *Writer) Reset() {
	clear(w.chunks)
	w.chunks = w.chunks[:0]
	w.current = nil
	w.chunkPos = 0
	w.flushed = 0
}

// ByteString returns everything written so far as a single [*ByteString].
//
// As a side effect, the writer is rebuilt so that the returned content is
// its only flushed chunk. Hence [*Writer.Size] reports the same value
// before and after this call, and calling ByteString again without any
// new write returns an equal byte string.
func (w *Writer) ByteString() *ByteString {
	total := w.flushed + w.chunkPos
	if total == 0 {
		w.Reset()
		return Empty
	}

	// 1. already a single flushed chunk: flushed chunks are never
	// written again, so the chunk can back the result directly
	if len(w.chunks) == 1 && w.chunkPos == 0 {
		return wrap(w.chunks[0])
	}

	// 2. copy the flushed chunks and the live prefix of the current one
	buf := make([]byte, total)
	pos := 0
	for _, chunk := range w.chunks {
		pos += copy(buf[pos:], chunk)
	}
	copy(buf[pos:], w.current[:w.chunkPos])

	// 3. restart from the materialized buffer
	w.Reset()
	w.chunks = append(w.chunks, buf)
	w.flushed = len(buf)

	return wrap(buf)
}

// String returns a debug representation of the writer state.
func (w *Writer) String() string {
	return fmt.Sprintf("[size=%d, chunks=%d]", w.Size(), w.NumChunks())
}
