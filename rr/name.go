// SPDX-License-Identifier: GPL-3.0-or-later

package rr

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bassosimone/bytestring"
	"github.com/miekg/dns"
	"golang.org/x/net/idna"
)

// ErrInvalidName indicates that a domain name is empty or does not follow
// the host-name syntax.
var ErrInvalidName = errors.New("invalid domain name")

const (
	// MaxNameLength is the maximum length of a name in presentation form.
	MaxNameLength = 255

	// MaxLabelLength is the maximum length of a single label.
	MaxLabelLength = 63
)

// Name is a validated domain name.
//
// A name is absolute when it ends with a dot. The root name "." is
// absolute and has no labels. The zero Name is not a valid name and is
// rejected by every record constructor.
//
// Construct using [ParseName] or [NameFromByteString].
type Name struct {
	name     string
	absolute bool
}

// ParseName parses a domain name in presentation form.
//
// Leading and trailing whitespace is ignored. Labels containing non-ASCII
// characters are encoded with Punycode before validation, so the result
// only contains letters, digits, hyphens, underscores, and dots.
//
// It returns [ErrInvalidName] if s is not a valid name.
func ParseName(s string) (Name, error) {
	s = strings.TrimSpace(s)
	if s == "." {
		return Name{name: s, absolute: true}, nil
	}

	// 1. IDNA encode all but the root label
	absolute := dns.IsFqdn(s)
	ascii, err := idna.Punycode.ToASCII(strings.TrimSuffix(s, "."))
	if err != nil {
		return Name{}, fmt.Errorf("%w: %q: %w", ErrInvalidName, s, err)
	}
	if absolute {
		ascii += "."
	}

	// 2. check the host-name syntax
	if err := validateName(ascii); err != nil {
		return Name{}, err
	}
	return Name{name: ascii, absolute: absolute}, nil
}

// NameFromByteString parses an ASCII domain name held in s.
//
// Unlike [ParseName], no whitespace is trimmed and no IDNA encoding is
// applied: every byte must already be valid in a host name.
func NameFromByteString(s *bytestring.ByteString) (Name, error) {
	if s == nil {
		return Name{}, fmt.Errorf("%w: name cannot be nil", bytestring.ErrInvalidArgument)
	}
	name := string(s.Bytes())
	if name == "." {
		return Name{name: name, absolute: true}, nil
	}
	if err := validateName(name); err != nil {
		return Name{}, err
	}
	return Name{name: name, absolute: s.HasSuffixBytes([]byte{'.'})}, nil
}

// validateName checks that every label is non-empty, at most
// [MaxLabelLength] bytes long, starts with a letter, a digit, or an
// underscore, continues with letters, digits, or hyphens, and does not
// end with a hyphen. The whole name is at most [MaxNameLength] bytes.
func validateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidName)
	}
	if len(name) > MaxNameLength {
		return fmt.Errorf("%w: name longer than %d bytes", ErrInvalidName, MaxNameLength)
	}

	labels := strings.Split(strings.TrimSuffix(name, "."), ".")
	for _, label := range labels {
		if err := validateLabel(label); err != nil {
			return fmt.Errorf("%w: %q: %s", ErrInvalidName, name, err.Error())
		}
	}
	return nil
}

func validateLabel(label string) error {
	switch {
	case label == "":
		return errors.New("empty label")
	case len(label) > MaxLabelLength:
		return fmt.Errorf("label longer than %d bytes", MaxLabelLength)
	case label[len(label)-1] == '-':
		return errors.New("label ends with a hyphen")
	}
	for i := 0; i < len(label); i++ {
		c := label[i]
		switch {
		case isLetter(c) || isDigit(c):
		case c == '_' && i == 0:
		case c == '-' && i > 0:
		default:
			return fmt.Errorf("invalid character %q at position %d", c, i)
		}
	}
	return nil
}

func isLetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

// String returns the name in presentation form, as parsed.
func (n Name) String() string {
	return n.name
}

// IsAbsolute returns true if the name ends with a dot.
func (n Name) IsAbsolute() bool {
	return n.absolute
}

// IsZero returns true for the zero Name.
func (n Name) IsZero() bool {
	return n.name == ""
}

// Labels returns the number of labels in the name. The root name has
// zero labels.
func (n Name) Labels() int {
	return dns.CountLabel(n.name)
}

// Fqdn returns the name in presentation form with a trailing dot.
func (n Name) Fqdn() string {
	return dns.Fqdn(n.name)
}

// Canonical returns the lowercase fully-qualified form of the name.
func (n Name) Canonical() string {
	return dns.CanonicalName(n.name)
}

// Equal returns true if the two names have the same absoluteness and are
// equal ignoring ASCII case.
func (n Name) Equal(other Name) bool {
	return n.absolute == other.absolute && equalASCIIName(n.name, other.name)
}

// SPDX-License-Identifier: BSD-3-Clause
//
// Borrowed from Go src/net package.
func equalASCIIName(x, y string) bool {
	if len(x) != len(y) {
		return false
	}
	for i := 0; i < len(x); i++ {
		a := x[i]
		b := y[i]
		if 'A' <= a && a <= 'Z' {
			a += 0x20
		}
		if 'A' <= b && b <= 'Z' {
			b += 0x20
		}
		if a != b {
			return false
		}
	}
	return true
}
