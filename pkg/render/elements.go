package render

import "github.com/vango-dev/siteheader/pkg/vdom"

// isVoidElement returns true if the tag is a void element.
func isVoidElement(tag string) bool {
	return vdom.IsVoidElement(tag)
}

// inlineElements are kept on one line in pretty-printed output.
var inlineElements = map[string]bool{
	"a":      true,
	"b":      true,
	"button": true,
	"em":     true,
	"i":      true,
	"img":    true,
	"path":   true,
	"small":  true,
	"span":   true,
	"strong": true,
	"svg":    true,
	"title":  true,
}

// isInlineElement returns true if the tag is an inline element.
func isInlineElement(tag string) bool {
	return inlineElements[tag]
}

// booleanAttrs are attributes that don't need a value.
// When true, they're rendered as just the attribute name.
var booleanAttrs = map[string]bool{
	"async":     true,
	"defer":     true,
	"disabled":  true,
	"hidden":    true,
	"itemscope": true,
	"open":      true,
}

// isBooleanAttr returns true if the attribute is a boolean attribute.
func isBooleanAttr(name string) bool {
	return booleanAttrs[name]
}
