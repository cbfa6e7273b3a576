package vdom

// voidElements are elements that cannot have children.
var voidElements = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"link":   true,
	"meta":   true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

// IsVoidElement returns true if the tag is a void element.
func IsVoidElement(tag string) bool {
	return voidElements[tag]
}

// createElement creates a new VNode with the given tag and arguments.
// Arguments can be: nil, Attr, []Attr, *VNode, []*VNode, Component, string.
func createElement(tag string, args []any) *VNode {
	node := &VNode{
		Kind:     KindElement,
		Tag:      tag,
		Props:    make(Props),
		Children: make([]*VNode, 0),
	}

	for _, arg := range args {
		switch v := arg.(type) {
		case nil:
			continue

		case Attr:
			node.setAttr(v)

		case []Attr:
			for _, a := range v {
				node.setAttr(a)
			}

		case *VNode:
			if v != nil {
				node.Children = append(node.Children, v)
			}

		case []*VNode:
			for _, child := range v {
				if child != nil {
					node.Children = append(node.Children, child)
				}
			}

		case Component:
			node.Children = append(node.Children, &VNode{
				Kind: KindComponent,
				Comp: v,
			})

		case string:
			node.Children = append(node.Children, Text(v))
		}
	}

	return node
}

// setAttr applies a single attribute. Repeated class attributes accumulate
// and an empty class is ignored; every other key is last-write-wins.
func (v *VNode) setAttr(a Attr) {
	if a.IsEmpty() {
		return
	}
	switch a.Key {
	case "key":
		if s, ok := a.Value.(string); ok {
			v.Key = s
		}
		return
	case "class":
		s, ok := a.Value.(string)
		if !ok {
			break
		}
		if s == "" {
			return
		}
		if existing, _ := v.Props["class"].(string); existing != "" {
			v.Props["class"] = existing + " " + s
			return
		}
	}
	v.Props[a.Key] = a.Value
}

// Content sectioning elements

func Header(args ...any) *VNode { return createElement("header", args) }
func Footer(args ...any) *VNode { return createElement("footer", args) }
func Main(args ...any) *VNode   { return createElement("main", args) }
func Nav(args ...any) *VNode    { return createElement("nav", args) }

// Text content elements

func Div(args ...any) *VNode  { return createElement("div", args) }
func P(args ...any) *VNode    { return createElement("p", args) }
func Span(args ...any) *VNode { return createElement("span", args) }
func Ul(args ...any) *VNode   { return createElement("ul", args) }
func Li(args ...any) *VNode   { return createElement("li", args) }

// Inline and interactive elements

func A(args ...any) *VNode      { return createElement("a", args) }
func Button(args ...any) *VNode { return createElement("button", args) }
func Img(args ...any) *VNode    { return createElement("img", args) }

// Document elements, used for full preview pages

func Html(args ...any) *VNode   { return createElement("html", args) }
func Head(args ...any) *VNode   { return createElement("head", args) }
func Body(args ...any) *VNode   { return createElement("body", args) }
func Title(args ...any) *VNode  { return createElement("title", args) }
func Meta(args ...any) *VNode   { return createElement("meta", args) }
func Link(args ...any) *VNode   { return createElement("link", args) }
func Script(args ...any) *VNode { return createElement("script", args) }

// SVG elements

func Svg(args ...any) *VNode  { return createElement("svg", args) }
func Path(args ...any) *VNode { return createElement("path", args) }

// CustomElement creates an element with a custom tag name.
func CustomElement(tag string, args ...any) *VNode {
	return createElement(tag, args)
}
