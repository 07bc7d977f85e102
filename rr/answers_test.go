// SPDX-License-Identifier: GPL-3.0-or-later

package rr

import (
	"testing"

	"github.com/miekg/dns"
	"github.com/stretchr/testify/require"
)

func TestExtractAnswers(t *testing.T) {
	question := dns.Question{Name: "WWW.example.com.", Qtype: dns.TypeTXT, Qclass: dns.ClassINET}

	newMsg := func(answers ...dns.RR) *dns.Msg {
		msg := new(dns.Msg)
		msg.Answer = answers
		return msg
	}

	cname := mustNewRR("www.example.com. 300 IN CNAME alias.example.net.")
	aliasTXT := mustNewRR(`alias.example.net. 300 IN TXT "hello"`)
	ownTXT := mustNewRR(`www.example.com. 300 IN TXT "direct"`)
	otherTXT := mustNewRR(`other.example.org. 300 IN TXT "ignored"`)
	aliasA := mustNewRR("alias.example.net. 300 IN A 192.0.2.1")
	chaosTXT := mustNewRR(`alias.example.net. 300 CH TXT "wrong class"`)

	t.Run("FollowsCNAMEChain", func(t *testing.T) {
		records, err := ExtractAnswers(question, newMsg(cname, aliasTXT, otherTXT, aliasA, chaosTXT))
		require.NoError(t, err)
		require.Len(t, records, 1)
		txt, ok := records[0].(*TXT)
		require.True(t, ok)
		require.Equal(t, "alias.example.net.", txt.Hdr.Name.String())
		require.Equal(t, []byte("hello"), txt.Joined().Bytes())
	})

	t.Run("KeepsMessageOrder", func(t *testing.T) {
		records, err := ExtractAnswers(question, newMsg(cname, aliasTXT, ownTXT))
		require.NoError(t, err)
		require.Len(t, records, 2)
		require.Equal(t, []byte("hello"), records[0].(*TXT).Joined().Bytes())
		require.Equal(t, []byte("direct"), records[1].(*TXT).Joined().Bytes())
	})

	t.Run("IgnoresUnrelatedCNAME", func(t *testing.T) {
		unrelated := mustNewRR("other.example.org. 300 IN CNAME alias.example.net.")
		_, err := ExtractAnswers(question, newMsg(unrelated, aliasTXT))
		require.ErrorIs(t, err, ErrNoData)
	})

	t.Run("NoData", func(t *testing.T) {
		_, err := ExtractAnswers(question, newMsg(cname, aliasA, otherTXT))
		require.ErrorIs(t, err, ErrNoData)

		_, err = ExtractAnswers(question, newMsg())
		require.ErrorIs(t, err, ErrNoData)
	})

	t.Run("MalformedAnswer", func(t *testing.T) {
		malformed := &dns.DS{
			Hdr:    dns.RR_Header{Name: "www.example.com.", Rrtype: dns.TypeDS, Class: dns.ClassINET, Ttl: 300},
			Digest: "not hex",
		}
		_, err := ExtractAnswers(question, newMsg(ownTXT, malformed))
		require.ErrorIs(t, err, ErrInvalidRecord)
	})
}
