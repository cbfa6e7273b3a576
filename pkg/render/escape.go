package render

import "strings"

// textEscaper escapes characters that are significant in HTML content.
var textEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// attrEscaper additionally escapes whitespace that would be normalized away
// inside attribute values.
var attrEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
	"\n", "&#10;",
	"\r", "&#13;",
	"\t", "&#9;",
)

// escapeHTML escapes text for safe inclusion in HTML content.
func escapeHTML(s string) string {
	return textEscaper.Replace(s)
}

// escapeAttr escapes text for safe inclusion in a double-quoted attribute.
func escapeAttr(s string) string {
	return attrEscaper.Replace(s)
}
