package vdom

import (
	"fmt"
	"strings"
)

// attr creates an Attr with the given key and value.
func attr(key string, value any) Attr {
	return Attr{Key: key, Value: value}
}

// Identity attributes

// ID sets the id attribute.
func ID(id string) Attr { return attr("id", id) }

// Class sets the class attribute, joining non-empty classes with spaces.
func Class(classes ...string) Attr {
	parts := make([]string, 0, len(classes))
	for _, c := range classes {
		if c = strings.TrimSpace(c); c != "" {
			parts = append(parts, c)
		}
	}
	return attr("class", strings.Join(parts, " "))
}

// ClassIf sets the class attribute only when cond is true.
func ClassIf(cond bool, classes ...string) Attr {
	if !cond {
		return Attr{}
	}
	return Class(classes...)
}

// StyleAttr sets the style attribute.
func StyleAttr(style string) Attr { return attr("style", style) }

// Data creates a data-* attribute.
// Example: Data("state", "open") → data-state="open"
func Data(key, value string) Attr { return attr("data-"+key, value) }

// Accessibility attributes

// Role sets the role attribute.
func Role(role string) Attr { return attr("role", role) }

// AriaLabel sets the aria-label attribute.
func AriaLabel(label string) Attr { return attr("aria-label", label) }

// AriaHidden sets the aria-hidden attribute.
func AriaHidden(hidden bool) Attr { return attr("aria-hidden", hidden) }

// AriaExpanded sets the aria-expanded attribute.
func AriaExpanded(expanded bool) Attr { return attr("aria-expanded", expanded) }

// AriaControls sets the aria-controls attribute.
func AriaControls(id string) Attr { return attr("aria-controls", id) }

// AriaCurrent sets the aria-current attribute.
func AriaCurrent(value string) Attr { return attr("aria-current", value) }

// AriaHasPopup sets the aria-haspopup attribute.
func AriaHasPopup(value string) Attr { return attr("aria-haspopup", value) }

// Focusable sets the SVG focusable attribute.
func Focusable(focusable bool) Attr { return attr("focusable", focusable) }

// TabIndex sets the tabindex attribute.
func TabIndex(index int) Attr { return attr("tabindex", index) }

// Hidden sets the hidden attribute.
func Hidden() Attr { return attr("hidden", true) }

// TitleAttr sets the title attribute (named to avoid conflict with Title element).
func TitleAttr(title string) Attr { return attr("title", title) }

// Lang sets the lang attribute.
func Lang(lang string) Attr { return attr("lang", lang) }

// Link attributes

// Href sets the href attribute.
func Href(url string) Attr { return attr("href", url) }

// Rel sets the rel attribute.
func Rel(rel string) Attr { return attr("rel", rel) }

// Type sets the type attribute.
func Type(t string) Attr { return attr("type", t) }

// Media attributes

// Src sets the src attribute.
func Src(url string) Attr { return attr("src", url) }

// Alt sets the alt attribute. An empty alt is kept and rendered, marking the
// image as decorative.
func Alt(text string) Attr { return attr("alt", Empty(text)) }

// Width sets the width attribute.
func Width(w string) Attr { return attr("width", w) }

// Height sets the height attribute.
func Height(h string) Attr { return attr("height", h) }

// Microdata attributes

// ItemType sets the itemtype attribute.
func ItemType(url string) Attr { return attr("itemtype", url) }

// ItemScope sets the itemscope attribute.
func ItemScope() Attr { return attr("itemscope", true) }

// SVG attributes

// ViewBox sets the viewBox attribute.
func ViewBox(box string) Attr { return attr("viewBox", box) }

// Fill sets the fill attribute.
func Fill(fill string) Attr { return attr("fill", fill) }

// D sets the path data attribute.
func D(d string) Attr { return attr("d", d) }

// Document attributes

// Charset sets the charset attribute.
func Charset(charset string) Attr { return attr("charset", charset) }

// NameAttr sets the name attribute.
func NameAttr(name string) Attr { return attr("name", name) }

// ContentAttr sets the content attribute.
func ContentAttr(content string) Attr { return attr("content", content) }

// Attribute creates an arbitrary attribute.
func Attribute(key string, value any) Attr { return attr(key, value) }

// Empty marks a string attribute that must render even when it is "".
type Empty string

// attrString converts an attribute value to its string form.
func attrString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case Empty:
		return string(v)
	case bool:
		if v {
			return "true"
		}
		return "false"
	default:
		return fmt.Sprintf("%v", v)
	}
}

// splitClasses splits a class attribute into individual classes.
func splitClasses(class string) []string {
	return strings.Fields(class)
}
