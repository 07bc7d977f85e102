// SPDX-License-Identifier: GPL-3.0-or-later

package bytestring

import (
	"bytes"
	"encoding"
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// cborEncMode uses Core Deterministic Encoding (RFC 8949 §4.2), so the
// same content always produces identical bytes.
var cborEncMode cbor.EncMode

var cborDecMode cbor.DecMode

func init() {
	var err error
	cborEncMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("bytestring: CBOR encoder initialization failed: " + err.Error())
	}
	cborDecMode, err = cbor.DecOptions{}.DecMode()
	if err != nil {
		panic("bytestring: CBOR decoder initialization failed: " + err.Error())
	}
}

var (
	_ cbor.Marshaler             = &ByteString{}
	_ cbor.Unmarshaler           = &ByteString{}
	_ encoding.BinaryMarshaler   = &ByteString{}
	_ encoding.BinaryUnmarshaler = &ByteString{}
)

// MarshalCBOR implements [cbor.Marshaler]. The content of s is encoded
// as a CBOR byte string (major type 2).
func (s *ByteString) MarshalCBOR() ([]byte, error) {
	return cborEncMode.Marshal(s.view())
}

// UnmarshalCBOR implements [cbor.Unmarshaler].
//
// The receiver must be a freshly allocated zero ByteString: decoding into
// [Empty] or into a byte string that already holds content returns
// [ErrInvalidArgument].
func (s *ByteString) UnmarshalCBOR(data []byte) error {
	if err := s.checkUnmarshalTarget(); err != nil {
		return err
	}
	var content []byte
	if err := cborDecMode.Unmarshal(data, &content); err != nil {
		return fmt.Errorf("decoding CBOR byte string: %w", err)
	}
	s.setContent(content)
	return nil
}

// MarshalBinary implements [encoding.BinaryMarshaler]. The encoding is
// the raw content of s.
func (s *ByteString) MarshalBinary() ([]byte, error) {
	return s.Bytes(), nil
}

// UnmarshalBinary implements [encoding.BinaryUnmarshaler] with the same
// receiver restrictions as [*ByteString.UnmarshalCBOR].
func (s *ByteString) UnmarshalBinary(data []byte) error {
	if err := s.checkUnmarshalTarget(); err != nil {
		return err
	}
	s.setContent(data)
	return nil
}

func (s *ByteString) checkUnmarshalTarget() error {
	if s == Empty || s.buf != nil {
		return fmt.Errorf("%w: cannot unmarshal into a non-zero ByteString", ErrInvalidArgument)
	}
	return nil
}

// setContent initializes a zero ByteString with a copy of content and
// drops any hash code cached while it was empty.
func (s *ByteString) setContent(content []byte) {
	s.buf = bytes.Clone(content)
	if s.buf == nil {
		s.buf = []byte{}
	}
	s.off = 0
	s.n = len(s.buf)
	s.hash.Store(0)
}
