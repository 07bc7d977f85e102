// SPDX-License-Identifier: GPL-3.0-or-later

package rr

import (
	"strings"
	"testing"

	"github.com/bassosimone/bytestring"
	"github.com/bassosimone/runtimex"
	"github.com/stretchr/testify/require"
)

func TestParseName(t *testing.T) {
	label63 := strings.Repeat("a", 63)

	tests := []struct {
		name     string
		input    string
		expected string
		absolute bool
		labels   int
		err      error
	}{
		{"Relative", "example.com", "example.com", false, 2, nil},
		{"Absolute", "example.com.", "example.com.", true, 2, nil},
		{"Root", ".", ".", true, 0, nil},
		{"TrimSpace", "  www.Example.COM.  ", "www.Example.COM.", true, 3, nil},
		{"SingleLabel", "localhost", "localhost", false, 1, nil},
		{"LeadingDigit", "1password.com", "1password.com", false, 2, nil},
		{"InteriorHyphen", "a-b.c", "a-b.c", false, 2, nil},
		{"ServiceLabels", "_443._tcp.example.com.", "_443._tcp.example.com.", true, 4, nil},
		{"PunycodeLabel", "xn--bcher-kva.example", "xn--bcher-kva.example", false, 2, nil},
		{"Internationalised", "bücher.example.", "xn--bcher-kva.example.", true, 2, nil},
		{"LongestLabel", label63 + ".com", label63 + ".com", false, 2, nil},
		{"LongestName", strings.Repeat(label63+".", 3) + label63, strings.Repeat(label63+".", 3) + label63, false, 4, nil},

		{"Empty", "", "", false, 0, ErrInvalidName},
		{"Blank", "   ", "", false, 0, ErrInvalidName},
		{"LeadingHyphen", "-abc.com", "", false, 0, ErrInvalidName},
		{"TrailingHyphen", "abc-.com", "", false, 0, ErrInvalidName},
		{"EmptyLabel", "a..b", "", false, 0, ErrInvalidName},
		{"LeadingDot", ".com", "", false, 0, ErrInvalidName},
		{"InteriorUnderscore", "a_b.com", "", false, 0, ErrInvalidName},
		{"InteriorSpace", "exa mple.com", "", false, 0, ErrInvalidName},
		{"LabelTooLong", label63 + "a.com", "", false, 0, ErrInvalidName},
		{"NameTooLong", strings.Repeat(label63+".", 4), "", false, 0, ErrInvalidName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, err := ParseName(tt.input)
			if tt.err != nil {
				require.ErrorIs(t, err, tt.err)
				require.True(t, name.IsZero())
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.expected, name.String())
			require.Equal(t, tt.absolute, name.IsAbsolute())
			require.Equal(t, tt.labels, name.Labels())
			require.False(t, name.IsZero())
		})
	}
}

func TestNameFromByteString(t *testing.T) {
	fromString := func(s string) *bytestring.ByteString {
		return runtimex.PanicOnError1(bytestring.New([]byte(s)))
	}

	name := runtimex.PanicOnError1(NameFromByteString(fromString("example.com.")))
	require.Equal(t, "example.com.", name.String())
	require.True(t, name.IsAbsolute())

	window := runtimex.PanicOnError1(fromString("www.example.com.").Substring(4, 15))
	name = runtimex.PanicOnError1(NameFromByteString(window))
	require.Equal(t, "example.com", name.String())
	require.False(t, name.IsAbsolute())

	name = runtimex.PanicOnError1(NameFromByteString(fromString(".")))
	require.True(t, name.IsAbsolute())
	require.Equal(t, 0, name.Labels())

	for _, invalid := range []string{"", " example.com", "bücher.example", "-a.b"} {
		_, err := NameFromByteString(fromString(invalid))
		require.ErrorIs(t, err, ErrInvalidName)
	}

	_, err := NameFromByteString(nil)
	require.ErrorIs(t, err, bytestring.ErrInvalidArgument)
}

func TestNameEqual(t *testing.T) {
	tests := []struct {
		name     string
		x        string
		y        string
		expected bool
	}{
		{"EqualNames", "example.com.", "example.com.", true},
		{"EqualNamesDifferentCase", "Example.COM.", "exaMple.com.", true},
		{"DifferentNames", "example.com.", "example.org.", false},
		{"DifferentLengths", "example.com.", "example.co.uk.", false},
		{"OnlyPrefixMatch", "example.co.", "example.co.uk.", false},
		{"AbsoluteAndRelative", "example.com.", "example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x := runtimex.PanicOnError1(ParseName(tt.x))
			y := runtimex.PanicOnError1(ParseName(tt.y))
			require.Equal(t, tt.expected, x.Equal(y))
			require.Equal(t, tt.expected, y.Equal(x))
		})
	}
}

func TestEqualASCIIName(t *testing.T) {
	tests := []struct {
		name     string
		x        string
		y        string
		expected bool
	}{
		{"EqualNames", "example.com.", "example.com.", true},
		{"EqualNamesDifferentCase", "Example.COM.", "exaMple.com.", true},
		{"DifferentNames", "example.com.", "example.org.", false},
		{"EmptyStrings", "", "", true},
		{"OneEmptyString", "example.com.", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, equalASCIIName(tt.x, tt.y))
		})
	}
}

func TestNameForms(t *testing.T) {
	name := runtimex.PanicOnError1(ParseName("WWW.Example.com"))
	require.Equal(t, "WWW.Example.com", name.String())
	require.Equal(t, "WWW.Example.com.", name.Fqdn())
	require.Equal(t, "www.example.com.", name.Canonical())

	root := runtimex.PanicOnError1(ParseName("."))
	require.Equal(t, ".", root.Fqdn())
	require.Equal(t, ".", root.Canonical())

	require.True(t, Name{}.IsZero())
	require.Equal(t, "", Name{}.String())
}
