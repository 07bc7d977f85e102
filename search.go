// SPDX-License-Identifier: GPL-3.0-or-later

package bytestring

import "bytes"

// The search methods below treat a nil pattern as the empty pattern.
//
// Substring search uses a brute-force scan that skips ahead to the next
// occurrence of the first (or, backwards, the last) pattern byte and then
// verifies the rest of the pattern. The worst case is O(n*m), which is
// fine for the short protocol fields this type is meant for.

// IndexByte returns the index of the first occurrence of v in s, or -1.
func (s *ByteString) IndexByte(v byte) int {
	return s.IndexByteFrom(v, 0)
}

// IndexByteFrom returns the smallest index k >= from such that the byte
// at k equals v, or -1. A negative from is treated as zero.
func (s *ByteString) IndexByteFrom(v byte, from int) int {
	source := s.view()
	for i := max(from, 0); i < len(source); i++ {
		if source[i] == v {
			return i
		}
	}
	return -1
}

// LastIndexByte returns the index of the last occurrence of v in s, or -1.
func (s *ByteString) LastIndexByte(v byte) int {
	return s.LastIndexByteFrom(v, s.n-1)
}

// LastIndexByteFrom returns the largest index k <= from such that the
// byte at k equals v, or -1. A from beyond the end searches the whole
// of s; a negative from yields -1.
func (s *ByteString) LastIndexByteFrom(v byte, from int) int {
	source := s.view()
	for i := min(from, len(source)-1); i >= 0; i-- {
		if source[i] == v {
			return i
		}
	}
	return -1
}

// Index returns the index of the first occurrence of pattern in s, or -1.
func (s *ByteString) Index(pattern *ByteString) int {
	return indexOf(s.view(), pattern.view(), 0)
}

// IndexFrom returns the smallest index k >= from at which pattern occurs
// in s, or -1.
//
// The empty pattern occurs at from itself, clamped to [0, s.Len()].
func (s *ByteString) IndexFrom(pattern *ByteString, from int) int {
	return indexOf(s.view(), pattern.view(), from)
}

// IndexBytes is like [*ByteString.Index] with a raw byte pattern.
func (s *ByteString) IndexBytes(pattern []byte) int {
	return indexOf(s.view(), pattern, 0)
}

// IndexBytesFrom is like [*ByteString.IndexFrom] with a raw byte pattern.
func (s *ByteString) IndexBytesFrom(pattern []byte, from int) int {
	return indexOf(s.view(), pattern, from)
}

// LastIndex returns the index of the last occurrence of pattern in s, or
// -1. The last occurrence of the empty pattern is at s.Len().
func (s *ByteString) LastIndex(pattern *ByteString) int {
	return lastIndexOf(s.view(), pattern.view(), s.n)
}

// LastIndexFrom returns the largest index k <= from at which pattern
// occurs in s, or -1.
func (s *ByteString) LastIndexFrom(pattern *ByteString, from int) int {
	return lastIndexOf(s.view(), pattern.view(), from)
}

// LastIndexBytes is like [*ByteString.LastIndex] with a raw byte pattern.
func (s *ByteString) LastIndexBytes(pattern []byte) int {
	return lastIndexOf(s.view(), pattern, s.n)
}

// LastIndexBytesFrom is like [*ByteString.LastIndexFrom] with a raw byte
// pattern.
func (s *ByteString) LastIndexBytesFrom(pattern []byte, from int) int {
	return lastIndexOf(s.view(), pattern, from)
}

// Contains returns true if pattern occurs in s.
func (s *ByteString) Contains(pattern *ByteString) bool {
	return s.Index(pattern) >= 0
}

// ContainsBytes returns true if pattern occurs in s.
func (s *ByteString) ContainsBytes(pattern []byte) bool {
	return s.IndexBytes(pattern) >= 0
}

// HasPrefix returns true if s begins with prefix.
func (s *ByteString) HasPrefix(prefix *ByteString) bool {
	return hasPrefixAt(s.view(), prefix.view(), 0)
}

// HasPrefixAt returns true if s[at:] begins with prefix. It returns false
// if at is negative or greater than s.Len().
func (s *ByteString) HasPrefixAt(prefix *ByteString, at int) bool {
	return hasPrefixAt(s.view(), prefix.view(), at)
}

// HasPrefixBytes is like [*ByteString.HasPrefix] with a raw byte prefix.
func (s *ByteString) HasPrefixBytes(prefix []byte) bool {
	return hasPrefixAt(s.view(), prefix, 0)
}

// HasPrefixBytesAt is like [*ByteString.HasPrefixAt] with a raw byte
// prefix.
func (s *ByteString) HasPrefixBytesAt(prefix []byte, at int) bool {
	return hasPrefixAt(s.view(), prefix, at)
}

// HasSuffix returns true if s ends with suffix.
func (s *ByteString) HasSuffix(suffix *ByteString) bool {
	return s.HasSuffixBytes(suffix.view())
}

// HasSuffixBytes is like [*ByteString.HasSuffix] with a raw byte suffix.
func (s *ByteString) HasSuffixBytes(suffix []byte) bool {
	return hasPrefixAt(s.view(), suffix, s.n-len(suffix))
}

func hasPrefixAt(source, prefix []byte, at int) bool {
	if at < 0 || at > len(source)-len(prefix) {
		return false
	}
	return bytes.Equal(source[at:at+len(prefix)], prefix)
}

func indexOf(source, target []byte, from int) int {
	if from >= len(source) {
		if len(target) == 0 {
			return len(source)
		}
		return -1
	}
	from = max(from, 0)
	if len(target) == 0 {
		return from
	}

	first := target[0]
	last := len(source) - len(target)
	for i := from; i <= last; i++ {
		// 1. skip to the next occurrence of the first byte
		if source[i] != first {
			i++
			for i <= last && source[i] != first {
				i++
			}
		}

		// 2. verify the remaining bytes of the pattern
		if i <= last {
			j := i + 1
			end := j + len(target) - 1
			for k := 1; j < end && source[j] == target[k]; k++ {
				j++
			}
			if j == end {
				return i
			}
		}
	}
	return -1
}

func lastIndexOf(source, target []byte, from int) int {
	if from < 0 {
		return -1
	}
	from = min(from, len(source)-len(target))
	if len(target) == 0 {
		return from
	}

	tail := len(target) - 1
	lastByte := target[tail]
	i := tail + from
	for {
		// 1. skip back to the previous occurrence of the last byte
		for i >= tail && source[i] != lastByte {
			i--
		}
		if i < tail {
			return -1
		}

		// 2. verify the remaining bytes of the pattern, right to left
		j, k := i-1, tail-1
		for k >= 0 && source[j] == target[k] {
			j--
			k--
		}
		if k < 0 {
			return j + 1
		}
		i--
	}
}
