package xccdf

import (
	"encoding/xml"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEscape(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "draft", "draft"},
		{"empty", "", ""},
		{"ampersand", "a & b", "a &amp; b"},
		{"angle brackets", "<b>", "&lt;b&gt;"},
		{"quotes", `say "hi" it's`, "say &quot;hi&quot; it&apos;s"},
		{"existing entity is re-escaped", "&lt;", "&amp;lt;"},
		{"all five", `&<>"'`, "&amp;&lt;&gt;&quot;&apos;"},
		{"unicode untouched", "résumé ✓", "résumé ✓"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Escape(tt.input))
		})
	}
}

var roundTripInputs = []string{
	"",
	"plain",
	`&<>"'`,
	"&amp; is already an entity",
	"&#60; &#x3C; &unknown;",
	"]]> ends a cdata section",
	`<script>alert("x")</script>`,
	"a='b' c=\"d\"",
	"tab\tand\nnewline",
	"résumé ✓ 日本語 \U0001F600",
	"<?xml version=\"1.0\"?><!-- c -->",
}

// decodeEscaped places the escaped value in a double-quoted attribute, a
// single-quoted attribute and element text, then decodes all three.
func decodeEscaped(t *testing.T, s string) (dq, sq, text string) {
	t.Helper()
	e := Escape(s)
	doc := `<e dq="` + e + `" sq='` + e + `'>` + e + `</e>`

	var got struct {
		DQ   string `xml:"dq,attr"`
		SQ   string `xml:"sq,attr"`
		Text string `xml:",chardata"`
	}
	require.NoError(t, xml.Unmarshal([]byte(doc), &got), "document: %s", doc)
	return got.DQ, got.SQ, got.Text
}

func TestEscape_RoundTrip(t *testing.T) {
	for _, s := range roundTripInputs {
		t.Run(s, func(t *testing.T) {
			dq, sq, text := decodeEscaped(t, s)
			assert.Equal(t, s, dq)
			assert.Equal(t, s, sq)
			assert.Equal(t, s, text)
		})
	}
}

// xmlSafe reports whether every rune of s is an XML 1.0 Char that parsers
// return unchanged. Carriage returns are excluded: end-of-line handling
// turns them into newlines.
func xmlSafe(s string) bool {
	if !utf8.ValidString(s) {
		return false
	}
	return strings.IndexFunc(s, func(r rune) bool {
		switch {
		case r == '\t', r == '\n':
			return false
		case r >= 0x20 && r <= 0xD7FF:
			return false
		case r >= 0xE000 && r <= 0xFFFD:
			return false
		case r >= 0x10000 && r <= 0x10FFFF:
			return false
		}
		return true
	}) < 0
}

func FuzzEscape(f *testing.F) {
	for _, s := range roundTripInputs {
		f.Add(s)
	}
	f.Fuzz(func(t *testing.T, s string) {
		if !xmlSafe(s) {
			t.Skip()
		}
		dq, sq, text := decodeEscaped(t, s)
		if dq != s || sq != s || text != s {
			t.Fatalf("round trip of %q: attr %q / %q, text %q", s, dq, sq, text)
		}
	})
}
