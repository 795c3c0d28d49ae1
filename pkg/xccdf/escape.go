package xccdf

import "strings"

var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

// Escape replaces the five XML-reserved characters with their predefined
// entities. Ampersands are handled first so existing entities are escaped
// rather than preserved.
func Escape(s string) string {
	return escaper.Replace(s)
}
