// SPDX-License-Identifier: GPL-3.0-or-later

package rr_test

import (
	"fmt"

	"github.com/bassosimone/bytestring"
	"github.com/bassosimone/bytestring/rr"
	"github.com/bassosimone/runtimex"
	"github.com/miekg/dns"
)

func Example_parseName() {
	name := runtimex.PanicOnError1(rr.ParseName("bücher.example."))
	fmt.Printf("%s\n", name)
	fmt.Printf("absolute=%v labels=%d\n", name.IsAbsolute(), name.Labels())

	// Output:
	// xn--bcher-kva.example.
	// absolute=true labels=2
}

func Example_fromRR() {
	parsed := runtimex.PanicOnError1(dns.NewRR(
		"example.com. 3600 IN DS 60485 5 1 2BB183AF5F22588179A53B0A98631FAD1A292118"))
	record := runtimex.PanicOnError1(rr.FromRR(parsed))
	fmt.Printf("%s\n", record.Header())

	ds := record.(*rr.DS)
	fmt.Printf("keyTag=%d digest=%s\n", ds.KeyTag, ds.Digest.Hex())

	// Output:
	// name=example.com., type=DS, class=IN, ttl=3600
	// keyTag=60485 digest=2bb183af5f22588179a53b0a98631fad1a292118
}

func Example_txt() {
	name := runtimex.PanicOnError1(rr.ParseName("example.com."))
	text := []*bytestring.ByteString{
		runtimex.PanicOnError1(bytestring.New([]byte("v=DKIM1; k=rsa; "))),
		runtimex.PanicOnError1(bytestring.New([]byte("p=MIGfMA0GCSqGSIb3"))),
	}
	record := runtimex.PanicOnError1(rr.NewTXT(name, dns.ClassINET, 300, text))
	fmt.Printf("%s\n", record.Joined().Bytes())

	// Output:
	// v=DKIM1; k=rsa; p=MIGfMA0GCSqGSIb3
}
