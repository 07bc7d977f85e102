// SPDX-License-Identifier: GPL-3.0-or-later

package rr

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"

	"github.com/bassosimone/bytestring"
	"github.com/bassosimone/runtimex"
	"github.com/miekg/dns"
)

// FromRR converts a decoded [dns.RR] to the equivalent [Record].
//
// The supported types are DNSKEY, CDNSKEY, DS, CDS, TXT, SSHFP, TLSA,
// CAA, NULL, and RFC 3597 unknown records (converted to [*Raw]). Any
// other type causes [ErrUnsupportedType].
//
// The strings of TXT records and the tag and value of CAA records are
// stored as wire bytes, with the presentation escapes of miekg/dns
// (such as \DDD and \") resolved.
func FromRR(rr dns.RR) (Record, error) {
	if rr == nil {
		return nil, fmt.Errorf("%w: record cannot be nil", bytestring.ErrInvalidArgument)
	}
	hdr := rr.Header()
	name, err := ParseName(hdr.Name)
	if err != nil {
		return nil, err
	}

	switch v := rr.(type) {
	case *dns.DNSKEY:
		return asRecord(dnskeyFromRR(name, dns.TypeDNSKEY, v))

	case *dns.CDNSKEY:
		return asRecord(dnskeyFromRR(name, dns.TypeCDNSKEY, &v.DNSKEY))

	case *dns.DS:
		return asRecord(dsFromRR(name, dns.TypeDS, v))

	case *dns.CDS:
		return asRecord(dsFromRR(name, dns.TypeCDS, &v.DS))

	case *dns.TXT:
		return asRecord(txtFromRR(name, v))

	case *dns.SSHFP:
		fingerprint, err := hexValue("fingerprint", v.FingerPrint)
		if err != nil {
			return nil, err
		}
		return asRecord(NewSSHFP(name, hdr.Class, hdr.Ttl, v.Algorithm, v.Type, fingerprint))

	case *dns.TLSA:
		data, err := hexValue("certificate", v.Certificate)
		if err != nil {
			return nil, err
		}
		return asRecord(NewTLSA(name, hdr.Class, hdr.Ttl, v.Usage, v.Selector, v.MatchingType, data))

	case *dns.CAA:
		return asRecord(caaFromRR(name, v))

	case *dns.NULL:
		return asRecord(NewNULL(name, hdr.Class, hdr.Ttl, stringValue(v.Data)))

	case *dns.RFC3597:
		data, err := hexValue("rdata", v.Rdata)
		if err != nil {
			return nil, err
		}
		return asRecord(NewRaw(name, hdr.Rrtype, hdr.Class, hdr.Ttl, data))

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, dns.Type(hdr.Rrtype))
	}
}

// asRecord avoids wrapping a nil pointer into a non-nil [Record].
func asRecord[T Record](record T, err error) (Record, error) {
	if err != nil {
		return nil, err
	}
	return record, nil
}

func dnskeyFromRR(name Name, rrtype uint16, v *dns.DNSKEY) (*DNSKEY, error) {
	key, err := base64.StdEncoding.DecodeString(v.PublicKey)
	if err != nil {
		return nil, fmt.Errorf("%w: public key: %w", ErrInvalidRecord, err)
	}
	publicKey, err := bytestring.New(key)
	if err != nil {
		return nil, err
	}
	return newDNSKEY(name, rrtype, v.Hdr.Class, v.Hdr.Ttl, v.Flags, v.Protocol, v.Algorithm, publicKey)
}

func dsFromRR(name Name, rrtype uint16, v *dns.DS) (*DS, error) {
	digest, err := hex.DecodeString(v.Digest)
	if err != nil {
		return nil, fmt.Errorf("%w: digest: %w", ErrInvalidRecord, err)
	}
	return newDigestRecord(name, rrtype, v.Hdr.Class, v.Hdr.Ttl, v.KeyTag, v.Algorithm, v.DigestType, digest)
}

func hexValue(field, value string) (*bytestring.ByteString, error) {
	data, err := hex.DecodeString(value)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidRecord, field, err)
	}
	return bytestring.New(data)
}

func stringValue(value string) *bytestring.ByteString {
	w := bytestring.NewWriter()
	_, _ = w.WriteString(value)
	return w.ByteString()
}

func txtFromRR(name Name, v *dns.TXT) (*TXT, error) {
	data, err := rdataOf(v)
	if err != nil {
		return nil, err
	}
	var text []*bytestring.ByteString
	for off := 0; off < data.Len(); {
		s, next, err := characterString(data, off)
		if err != nil {
			return nil, err
		}
		text = append(text, s)
		off = next
	}
	return NewTXT(name, v.Hdr.Class, v.Hdr.Ttl, text)
}

func caaFromRR(name Name, v *dns.CAA) (*CAA, error) {
	data, err := rdataOf(v)
	if err != nil {
		return nil, err
	}
	flags, err := data.ByteAt(0)
	if err != nil {
		return nil, fmt.Errorf("%w: missing CAA flags", ErrInvalidRecord)
	}
	tag, off, err := characterString(data, 1)
	if err != nil {
		return nil, err
	}
	value, err := data.SubstringFrom(off)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRecord, err)
	}
	return NewCAA(name, v.Hdr.Class, v.Hdr.Ttl, flags, tag, value)
}

// rdataOf returns the wire-format RDATA of rr, packed by miekg/dns.
func rdataOf(rr dns.RR) (*bytestring.ByteString, error) {
	rr = dns.Copy(rr)
	rr.Header().Name = "."
	msg := make([]byte, dns.Len(rr)+1)
	off, err := dns.PackRR(rr, msg, 0, nil, false)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRecord, err)
	}
	return bytestring.NewRange(msg, off-int(rr.Header().Rdlength), int(rr.Header().Rdlength))
}

// characterString reads the length-prefixed string at off and returns
// it with the offset that follows it.
func characterString(data *bytestring.ByteString, off int) (*bytestring.ByteString, int, error) {
	length, err := data.ByteAt(off)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: missing character-string length at %d", ErrInvalidRecord, off)
	}
	end := off + 1 + int(length)
	s, err := data.Substring(off+1, end)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: truncated character-string at %d: %w", ErrInvalidRecord, off, err)
	}
	return s, end, nil
}

// fromRdata builds the miekg/dns value of rdata, which also escapes
// binary strings into presentation form.
func fromRdata(hdr dns.RR_Header, rdata *bytestring.ByteString) dns.RR {
	hdr.Rdlength = uint16(rdata.Len())
	rr, _ := runtimex.PanicOnError2(dns.UnpackRRWithHeader(hdr, rdata.Bytes(), 0))
	rr.Header().Rdlength = 0
	return rr
}
