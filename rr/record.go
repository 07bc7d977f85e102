// SPDX-License-Identifier: GPL-3.0-or-later

package rr

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/bassosimone/bytestring"
	"github.com/miekg/dns"
)

// Errors returned when constructing or converting records.
var (
	// ErrInvalidRecord indicates that a record field violates the
	// constraints of its record type.
	ErrInvalidRecord = errors.New("invalid resource record")

	// ErrUnsupportedType indicates that [FromRR] has no value type for
	// the record type of its argument.
	ErrUnsupportedType = errors.New("unsupported resource record type")
)

// MaxDataLength is the maximum length of the data of a record.
const MaxDataLength = 65535

// Header contains the fields common to all resource records.
type Header struct {
	// Name is the owner name.
	Name Name

	// Type is the record type (for example [dns.TypeDNSKEY]).
	Type uint16

	// Class is the record class (for example [dns.ClassINET]).
	Class uint16

	// TTL is the time to live in seconds.
	TTL uint32
}

func newHeader(name Name, rrtype, class uint16, ttl uint32) (Header, error) {
	if name.IsZero() {
		return Header{}, fmt.Errorf("%w: missing owner name", ErrInvalidName)
	}
	return Header{Name: name, Type: rrtype, Class: class, TTL: ttl}, nil
}

// String returns a debug representation of the header using the type
// and class mnemonics.
func (h Header) String() string {
	return fmt.Sprintf("name=%s, type=%s, class=%s, ttl=%d",
		h.Name, dns.Type(h.Type), dns.Class(h.Class), h.TTL)
}

// rrHeader converts to the header of a [dns.RR]. The owner name is made
// fully qualified as [github.com/miekg/dns] requires.
func (h Header) rrHeader() dns.RR_Header {
	return dns.RR_Header{
		Name:   h.Name.Fqdn(),
		Rrtype: h.Type,
		Class:  h.Class,
		Ttl:    h.TTL,
	}
}

// Record is a resource record.
type Record interface {
	// Header returns the common record fields.
	Header() Header

	// RR converts the record to the equivalent [dns.RR].
	RR() dns.RR

	// String returns a debug representation of the record. Binary
	// fields are summarized as [*bytestring.ByteString.String] does
	// and their content is not printed.
	String() string
}

// checkData validates a binary record field.
func checkData(field string, data *bytestring.ByteString, maxLength int) error {
	if data == nil {
		return fmt.Errorf("%w: %s cannot be nil", bytestring.ErrInvalidArgument, field)
	}
	if data.Len() > maxLength {
		return fmt.Errorf("%w: %s longer than %d bytes: %d", ErrInvalidRecord, field, maxLength, data.Len())
	}
	return nil
}

func algorithmString(algorithm uint8) string {
	if s, ok := dns.AlgorithmToString[algorithm]; ok {
		return s
	}
	return strconv.Itoa(int(algorithm))
}

func digestTypeString(digestType uint8) string {
	if s, ok := dns.HashToString[digestType]; ok {
		return s
	}
	return strconv.Itoa(int(digestType))
}
