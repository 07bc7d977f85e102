//
// SPDX-License-Identifier: BSD-3-Clause
//
// Adapted from: https://github.com/rbmk-project/rbmk/blob/v0.17.0/pkg/dns/dnscore/response.go
//

package rr

import (
	"errors"

	"github.com/miekg/dns"
)

// ErrNoData indicates that a message contains no convertible answer for
// the question.
var ErrNoData = errors.New("no answer from DNS server")

// ExtractAnswers converts the answers of msg that pertain to question into
// records, in the order in which they appear in the message.
//
// An answer pertains to the question when its class matches and its owner
// name is the question name or an alias reached from it through the chain
// of CNAME records in the answer section. Answers whose type [FromRR]
// does not support (including the CNAME records themselves) are skipped.
//
// It returns [ErrNoData] if no answer remains. Validating the message
// against the query that produced it is up to the caller.
func ExtractAnswers(question dns.Question, msg *dns.Msg) ([]Record, error) {
	// 1. follow the CNAME chain starting from the question name
	validNames := make(map[string]bool)
	currentName := dns.CanonicalName(question.Name)
	validNames[currentName] = true
	for _, answer := range msg.Answer {
		if cname, ok := answer.(*dns.CNAME); ok {
			header := cname.Header()
			if equalASCIIName(currentName, dns.CanonicalName(header.Name)) && header.Class == question.Qclass {
				currentName = dns.CanonicalName(cname.Target)
				validNames[currentName] = true
			}
		}
	}

	// 2. convert the answers owned by a name in the chain
	var records []Record
	for _, answer := range msg.Answer {
		header := answer.Header()
		if !validNames[dns.CanonicalName(header.Name)] || header.Class != question.Qclass {
			continue
		}
		record, err := FromRR(answer)
		if errors.Is(err, ErrUnsupportedType) {
			continue
		}
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	// 3. handle the case of no valid answers
	if len(records) < 1 {
		return nil, ErrNoData
	}
	return records, nil
}
