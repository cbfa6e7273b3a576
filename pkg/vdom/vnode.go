package vdom

// VKind is the node type discriminator.
type VKind uint8

const (
	KindElement   VKind = iota // <div>, <a>, etc.
	KindText                   // Plain text node
	KindFragment               // Grouping without wrapper
	KindComponent              // Nested component
	KindRaw                    // Raw HTML (trusted content only)
)

// String returns the string representation of the VKind.
func (k VKind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	case KindFragment:
		return "Fragment"
	case KindComponent:
		return "Component"
	case KindRaw:
		return "Raw"
	default:
		return "Unknown"
	}
}

// VNode is a node of the virtual tree.
type VNode struct {
	Kind     VKind     // Node type
	Tag      string    // Element tag name (e.g., "nav")
	Props    Props     // Attributes
	Children []*VNode  // Child nodes
	Key      string    // Reconciliation key
	Text     string    // For KindText and KindRaw
	Comp     Component // For KindComponent
}

// Props holds element attributes.
type Props map[string]any

// Attr returns the attribute value as a string, or "" when unset.
func (v *VNode) Attr(key string) string {
	if v == nil || v.Props == nil {
		return ""
	}
	switch val := v.Props[key].(type) {
	case string:
		return val
	case nil:
		return ""
	default:
		return attrString(val)
	}
}

// HasClass reports whether the class attribute contains the given class.
func (v *VNode) HasClass(class string) bool {
	for _, c := range splitClasses(v.Attr("class")) {
		if c == class {
			return true
		}
	}
	return false
}

// TextContent concatenates all descendant text nodes.
func (v *VNode) TextContent() string {
	if v == nil {
		return ""
	}
	if v.Kind == KindText {
		return v.Text
	}
	var out string
	for _, child := range v.Children {
		out += child.TextContent()
	}
	return out
}

// Attr represents a single attribute.
type Attr struct {
	Key   string
	Value any
}

// IsEmpty returns true if this is an empty/nil attribute.
func (a Attr) IsEmpty() bool {
	return a.Key == ""
}

// Component is anything that can render to a VNode.
type Component interface {
	Render() *VNode
}

// FuncComponent wraps a render function.
type FuncComponent struct {
	render func() *VNode
}

// Render implements Component.
func (f *FuncComponent) Render() *VNode {
	return f.render()
}

// Func creates a component from a render function.
func Func(render func() *VNode) Component {
	return &FuncComponent{render: render}
}
