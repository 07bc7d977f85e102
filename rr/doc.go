// SPDX-License-Identifier: GPL-3.0-or-later

// Package rr contains DNS resource-record values whose payloads are
// opaque binary strings.
//
// Each record type (for example [*DNSKEY], [*TLSA], or [*TXT]) carries a
// common [Header] plus its type-specific fields, and binary fields are
// held as immutable [*bytestring.ByteString] values. Records are built
// with validating constructors such as [NewDNSKEY], or converted from
// decoded [github.com/miekg/dns] values using [FromRR]. The reverse
// conversion is available through the RR method of the [Record]
// interface.
//
// The record fields are exported plain data. The constructors validate
// them, but assigning to a field afterwards bypasses that validation.
//
// Owner names are represented by [Name], which validates the host-name
// syntax of RFC 1123 and encodes internationalised names with Punycode.
//
// This package does not encode or decode the DNS wire format: use
// [github.com/miekg/dns] for that and convert with [FromRR].
package rr
