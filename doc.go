// SPDX-License-Identifier: GPL-3.0-or-later

// Package bytestring implements an immutable byte string and a chunked
// writer that produces byte strings.
//
// [*ByteString] is a read-only view over a backing array. Construction
// always copies the caller's bytes, while [*ByteString.Substring] shares
// the backing array of its parent without copying. Use
// [*ByteString.Compact] to release a large backing array retained by a
// small slice.
//
// [*Writer] accumulates bytes into fixed-size chunks and materializes
// them into a single [*ByteString] using [*Writer.ByteString].
//
// This package does not implement any text semantics: a [*ByteString]
// is a sequence of bytes, not a string of characters. Its String method
// prints the length and the hash code, not the content.
package bytestring
