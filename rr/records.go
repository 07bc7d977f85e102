// SPDX-License-Identifier: GPL-3.0-or-later

package rr

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"slices"
	"strings"

	"github.com/bassosimone/bytestring"
	"github.com/miekg/dns"
)

const (
	// MaxCharacterStringLength is the maximum length of each string of
	// a [*TXT] record.
	MaxCharacterStringLength = 255

	// MaxCAATagLength is the maximum length of the tag of a [*CAA] record.
	MaxCAATagLength = 15

	// CAAFlagCritical is the issuer-critical flag of a [*CAA] record.
	CAAFlagCritical = 0x80
)

var (
	_ Record = &Raw{}
	_ Record = &NULL{}
	_ Record = &TXT{}
	_ Record = &DNSKEY{}
	_ Record = &DS{}
	_ Record = &SSHFP{}
	_ Record = &TLSA{}
	_ Record = &CAA{}
)

// Raw is a record of any type whose data is kept uninterpreted.
//
// Construct using [NewRaw].
type Raw struct {
	Hdr  Header
	Data *bytestring.ByteString
}

// NewRaw returns a [*Raw] record of the given type.
func NewRaw(name Name, rrtype, class uint16, ttl uint32, data *bytestring.ByteString) (*Raw, error) {
	hdr, err := newHeader(name, rrtype, class, ttl)
	if err != nil {
		return nil, err
	}
	if err := checkData("data", data, MaxDataLength); err != nil {
		return nil, err
	}
	return &Raw{Hdr: hdr, Data: data}, nil
}

// Header implements [Record].
func (r *Raw) Header() Header {
	return r.Hdr
}

// RR implements [Record] using the RFC 3597 unknown-type representation.
func (r *Raw) RR() dns.RR {
	return &dns.RFC3597{Hdr: r.Hdr.rrHeader(), Rdata: r.Data.Hex()}
}

func (r *Raw) String() string {
	return fmt.Sprintf("%s, len=%d", r.Hdr, r.Data.Len())
}

// NULL is a NULL record (RFC 1035).
//
// Construct using [NewNULL].
type NULL struct {
	Hdr  Header
	Data *bytestring.ByteString
}

// NewNULL returns a [*NULL] record.
func NewNULL(name Name, class uint16, ttl uint32, data *bytestring.ByteString) (*NULL, error) {
	hdr, err := newHeader(name, dns.TypeNULL, class, ttl)
	if err != nil {
		return nil, err
	}
	if err := checkData("data", data, MaxDataLength); err != nil {
		return nil, err
	}
	return &NULL{Hdr: hdr, Data: data}, nil
}

// Header implements [Record].
func (r *NULL) Header() Header {
	return r.Hdr
}

// RR implements [Record].
func (r *NULL) RR() dns.RR {
	return &dns.NULL{Hdr: r.Hdr.rrHeader(), Data: string(r.Data.Bytes())}
}

func (r *NULL) String() string {
	return fmt.Sprintf("%s, data=%s", r.Hdr, r.Data)
}

// TXT is a TXT record (RFC 1035) holding a list of character strings.
//
// Construct using [NewTXT].
type TXT struct {
	Hdr  Header
	Text []*bytestring.ByteString
}

// NewTXT returns a [*TXT] record. The text slice is copied.
//
// Each string must be at most [MaxCharacterStringLength] bytes long and
// the length-prefixed strings together must fit in [MaxDataLength].
func NewTXT(name Name, class uint16, ttl uint32, text []*bytestring.ByteString) (*TXT, error) {
	hdr, err := newHeader(name, dns.TypeTXT, class, ttl)
	if err != nil {
		return nil, err
	}
	var total int
	for i, s := range text {
		if err := checkData(fmt.Sprintf("text[%d]", i), s, MaxCharacterStringLength); err != nil {
			return nil, err
		}
		total += 1 + s.Len()
	}
	if total > MaxDataLength {
		return nil, fmt.Errorf("%w: text longer than %d bytes: %d", ErrInvalidRecord, MaxDataLength, total)
	}
	return &TXT{Hdr: hdr, Text: slices.Clone(text)}, nil
}

// Header implements [Record].
func (r *TXT) Header() Header {
	return r.Hdr
}

// RR implements [Record].
func (r *TXT) RR() dns.RR {
	w := bytestring.NewWriter()
	for _, s := range r.Text {
		_ = w.WriteByte(byte(s.Len()))
		_, _ = s.WriteTo(w)
	}
	return fromRdata(r.Hdr.rrHeader(), w.ByteString())
}

// Joined returns the concatenation of all the strings, which is how
// protocols such as DKIM and SPF interpret a TXT record split across
// several character strings.
func (r *TXT) Joined() *bytestring.ByteString {
	w := bytestring.NewWriter()
	for _, s := range r.Text {
		_, _ = s.WriteTo(w)
	}
	return w.ByteString()
}

func (r *TXT) String() string {
	return fmt.Sprintf("%s, text=%v", r.Hdr, r.Text)
}

// DNSKEY is a DNSKEY record (RFC 4034) or, depending on Hdr.Type, a
// CDNSKEY record (RFC 7344).
//
// Construct using [NewDNSKEY] or [NewCDNSKEY].
type DNSKEY struct {
	Hdr       Header
	Flags     uint16
	Protocol  uint8
	Algorithm uint8
	PublicKey *bytestring.ByteString
}

// NewDNSKEY returns a [*DNSKEY] record.
func NewDNSKEY(name Name, class uint16, ttl uint32,
	flags uint16, protocol, algorithm uint8, publicKey *bytestring.ByteString) (*DNSKEY, error) {
	return newDNSKEY(name, dns.TypeDNSKEY, class, ttl, flags, protocol, algorithm, publicKey)
}

// NewCDNSKEY returns a [*DNSKEY] record with the CDNSKEY type.
func NewCDNSKEY(name Name, class uint16, ttl uint32,
	flags uint16, protocol, algorithm uint8, publicKey *bytestring.ByteString) (*DNSKEY, error) {
	return newDNSKEY(name, dns.TypeCDNSKEY, class, ttl, flags, protocol, algorithm, publicKey)
}

func newDNSKEY(name Name, rrtype, class uint16, ttl uint32,
	flags uint16, protocol, algorithm uint8, publicKey *bytestring.ByteString) (*DNSKEY, error) {
	hdr, err := newHeader(name, rrtype, class, ttl)
	if err != nil {
		return nil, err
	}
	if err := checkData("public key", publicKey, MaxDataLength); err != nil {
		return nil, err
	}
	rr := &DNSKEY{
		Hdr:       hdr,
		Flags:     flags,
		Protocol:  protocol,
		Algorithm: algorithm,
		PublicKey: publicKey,
	}
	return rr, nil
}

// Header implements [Record].
func (r *DNSKEY) Header() Header {
	return r.Hdr
}

// RR implements [Record].
func (r *DNSKEY) RR() dns.RR {
	key := r.dnsKey()
	if r.Hdr.Type == dns.TypeCDNSKEY {
		return &dns.CDNSKEY{DNSKEY: *key}
	}
	return key
}

func (r *DNSKEY) dnsKey() *dns.DNSKEY {
	return &dns.DNSKEY{
		Hdr:       r.Hdr.rrHeader(),
		Flags:     r.Flags,
		Protocol:  r.Protocol,
		Algorithm: r.Algorithm,
		PublicKey: base64.StdEncoding.EncodeToString(r.PublicKey.Bytes()),
	}
}

// IsZoneKey returns true if the zone key flag is set.
func (r *DNSKEY) IsZoneKey() bool {
	return r.Flags&dns.ZONE != 0
}

// IsSecureEntryPoint returns true if the secure entry point flag is set.
func (r *DNSKEY) IsSecureEntryPoint() bool {
	return r.Flags&dns.SEP != 0
}

// IsRevoked returns true if the revoke flag (RFC 5011) is set.
func (r *DNSKEY) IsRevoked() bool {
	return r.Flags&dns.REVOKE != 0
}

// KeyTag returns the key tag (RFC 4034 appendix B) of the key.
func (r *DNSKEY) KeyTag() uint16 {
	return r.dnsKey().KeyTag()
}

// ToDS returns the [*DS] record that delegates to this key using the
// given digest type (for example [dns.SHA256]).
//
// It returns [ErrInvalidRecord] if the digest type is not supported.
func (r *DNSKEY) ToDS(digestType uint8) (*DS, error) {
	ds := r.dnsKey().ToDS(digestType)
	if ds == nil {
		return nil, fmt.Errorf("%w: cannot compute %s digest", ErrInvalidRecord, digestTypeString(digestType))
	}
	digest, err := hex.DecodeString(ds.Digest)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRecord, err)
	}
	return newDigestRecord(r.Hdr.Name, dns.TypeDS, r.Hdr.Class, r.Hdr.TTL,
		ds.KeyTag, ds.Algorithm, ds.DigestType, digest)
}

func (r *DNSKEY) String() string {
	return fmt.Sprintf("%s, flags=%d, protocol=%d, algorithm=%s, publicKey=%s",
		r.Hdr, r.Flags, r.Protocol, algorithmString(r.Algorithm), r.PublicKey)
}

// DS is a DS record (RFC 4034) or, depending on Hdr.Type, a CDS record
// (RFC 7344).
//
// Construct using [NewDS], [NewCDS], or [*DNSKEY.ToDS].
type DS struct {
	Hdr        Header
	KeyTag     uint16
	Algorithm  uint8
	DigestType uint8
	Digest     *bytestring.ByteString
}

// NewDS returns a [*DS] record.
func NewDS(name Name, class uint16, ttl uint32,
	keyTag uint16, algorithm, digestType uint8, digest *bytestring.ByteString) (*DS, error) {
	return newDS(name, dns.TypeDS, class, ttl, keyTag, algorithm, digestType, digest)
}

// NewCDS returns a [*DS] record with the CDS type.
func NewCDS(name Name, class uint16, ttl uint32,
	keyTag uint16, algorithm, digestType uint8, digest *bytestring.ByteString) (*DS, error) {
	return newDS(name, dns.TypeCDS, class, ttl, keyTag, algorithm, digestType, digest)
}

func newDS(name Name, rrtype, class uint16, ttl uint32,
	keyTag uint16, algorithm, digestType uint8, digest *bytestring.ByteString) (*DS, error) {
	hdr, err := newHeader(name, rrtype, class, ttl)
	if err != nil {
		return nil, err
	}
	if err := checkData("digest", digest, MaxDataLength); err != nil {
		return nil, err
	}
	rr := &DS{
		Hdr:        hdr,
		KeyTag:     keyTag,
		Algorithm:  algorithm,
		DigestType: digestType,
		Digest:     digest,
	}
	return rr, nil
}

// newDigestRecord is like newDS with a raw digest.
func newDigestRecord(name Name, rrtype, class uint16, ttl uint32,
	keyTag uint16, algorithm, digestType uint8, digest []byte) (*DS, error) {
	value, err := bytestring.New(digest)
	if err != nil {
		return nil, err
	}
	return newDS(name, rrtype, class, ttl, keyTag, algorithm, digestType, value)
}

// Header implements [Record].
func (r *DS) Header() Header {
	return r.Hdr
}

// RR implements [Record].
func (r *DS) RR() dns.RR {
	ds := &dns.DS{
		Hdr:        r.Hdr.rrHeader(),
		KeyTag:     r.KeyTag,
		Algorithm:  r.Algorithm,
		DigestType: r.DigestType,
		Digest:     r.Digest.Hex(),
	}
	if r.Hdr.Type == dns.TypeCDS {
		return &dns.CDS{DS: *ds}
	}
	return ds
}

func (r *DS) String() string {
	return fmt.Sprintf("%s, keyTag=%d, algorithm=%s, digestType=%s, digest=%s",
		r.Hdr, r.KeyTag, algorithmString(r.Algorithm), digestTypeString(r.DigestType), r.Digest)
}

// SSHFP is an SSH key fingerprint record (RFC 4255).
//
// Construct using [NewSSHFP].
type SSHFP struct {
	Hdr             Header
	Algorithm       uint8
	FingerprintType uint8
	Fingerprint     *bytestring.ByteString
}

// NewSSHFP returns a [*SSHFP] record.
func NewSSHFP(name Name, class uint16, ttl uint32,
	algorithm, fingerprintType uint8, fingerprint *bytestring.ByteString) (*SSHFP, error) {
	hdr, err := newHeader(name, dns.TypeSSHFP, class, ttl)
	if err != nil {
		return nil, err
	}
	if err := checkData("fingerprint", fingerprint, MaxDataLength); err != nil {
		return nil, err
	}
	rr := &SSHFP{
		Hdr:             hdr,
		Algorithm:       algorithm,
		FingerprintType: fingerprintType,
		Fingerprint:     fingerprint,
	}
	return rr, nil
}

// Header implements [Record].
func (r *SSHFP) Header() Header {
	return r.Hdr
}

// RR implements [Record].
func (r *SSHFP) RR() dns.RR {
	return &dns.SSHFP{
		Hdr:         r.Hdr.rrHeader(),
		Algorithm:   r.Algorithm,
		Type:        r.FingerprintType,
		FingerPrint: r.Fingerprint.Hex(),
	}
}

func (r *SSHFP) String() string {
	return fmt.Sprintf("%s, algorithm=%d, fingerprintType=%d, fingerprint=%s",
		r.Hdr, r.Algorithm, r.FingerprintType, r.Fingerprint)
}

// TLSA is a TLS certificate association record (RFC 6698).
//
// Construct using [NewTLSA].
type TLSA struct {
	Hdr          Header
	Usage        uint8
	Selector     uint8
	MatchingType uint8
	Data         *bytestring.ByteString
}

// NewTLSA returns a [*TLSA] record.
func NewTLSA(name Name, class uint16, ttl uint32,
	usage, selector, matchingType uint8, data *bytestring.ByteString) (*TLSA, error) {
	hdr, err := newHeader(name, dns.TypeTLSA, class, ttl)
	if err != nil {
		return nil, err
	}
	if err := checkData("certificate association data", data, MaxDataLength); err != nil {
		return nil, err
	}
	rr := &TLSA{
		Hdr:          hdr,
		Usage:        usage,
		Selector:     selector,
		MatchingType: matchingType,
		Data:         data,
	}
	return rr, nil
}

// Header implements [Record].
func (r *TLSA) Header() Header {
	return r.Hdr
}

// RR implements [Record].
func (r *TLSA) RR() dns.RR {
	return &dns.TLSA{
		Hdr:          r.Hdr.rrHeader(),
		Usage:        r.Usage,
		Selector:     r.Selector,
		MatchingType: r.MatchingType,
		Certificate:  r.Data.Hex(),
	}
}

func (r *TLSA) String() string {
	return fmt.Sprintf("%s, usage=%d, selector=%d, matchingType=%d, data=%s",
		r.Hdr, r.Usage, r.Selector, r.MatchingType, r.Data)
}

// CAA is a certification authority authorization record (RFC 8659).
//
// Construct using [NewCAA].
type CAA struct {
	Hdr   Header
	Flags uint8
	Tag   *bytestring.ByteString
	Value *bytestring.ByteString
}

// NewCAA returns a [*CAA] record.
//
// The tag must contain between 1 and [MaxCAATagLength] ASCII letters
// and digits.
func NewCAA(name Name, class uint16, ttl uint32,
	flags uint8, tag, value *bytestring.ByteString) (*CAA, error) {
	hdr, err := newHeader(name, dns.TypeCAA, class, ttl)
	if err != nil {
		return nil, err
	}
	if err := checkData("tag", tag, MaxCAATagLength); err != nil {
		return nil, err
	}
	if tag.IsEmpty() {
		return nil, fmt.Errorf("%w: empty tag", ErrInvalidRecord)
	}
	for i, c := range tag.All() {
		if !isLetter(c) && !isDigit(c) {
			return nil, fmt.Errorf("%w: invalid tag character %q at position %d", ErrInvalidRecord, c, i)
		}
	}
	if err := checkData("value", value, MaxDataLength-2-tag.Len()); err != nil {
		return nil, err
	}
	return &CAA{Hdr: hdr, Flags: flags, Tag: tag, Value: value}, nil
}

// Header implements [Record].
func (r *CAA) Header() Header {
	return r.Hdr
}

// RR implements [Record].
func (r *CAA) RR() dns.RR {
	w := bytestring.NewWriter()
	_ = w.WriteByte(r.Flags)
	_ = w.WriteByte(byte(r.Tag.Len()))
	_, _ = r.Tag.WriteTo(w)
	_, _ = r.Value.WriteTo(w)
	caa := fromRdata(r.Hdr.rrHeader(), w.ByteString()).(*dns.CAA)

	// miekg/dns unpacks the value verbatim but reads backslash escapes
	// when packing it.
	caa.Value = strings.ReplaceAll(caa.Value, `\`, `\\`)
	return caa
}

// IsCritical returns true if the issuer-critical flag is set.
func (r *CAA) IsCritical() bool {
	return r.Flags&CAAFlagCritical != 0
}

func (r *CAA) String() string {
	return fmt.Sprintf("%s, flags=%d, tag=%s, value=%s", r.Hdr, r.Flags, r.Tag, r.Value)
}
