package render

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/vango-dev/siteheader/pkg/vdom"
)

// RendererConfig configures the HTML renderer.
type RendererConfig struct {
	// Pretty enables pretty-printed HTML output with indentation.
	// Should only be used for previews as it increases output size.
	Pretty bool

	// Indent is the string used for each indentation level in pretty mode.
	// Defaults to two spaces if not specified.
	Indent string
}

// Renderer renders VNode trees to HTML. It holds no per-render state and is
// safe for concurrent use.
type Renderer struct {
	config RendererConfig
}

// NewRenderer creates a new Renderer with the given configuration.
func NewRenderer(config RendererConfig) *Renderer {
	if config.Indent == "" {
		config.Indent = "  "
	}
	return &Renderer{config: config}
}

// RenderToString renders a VNode tree to an HTML string.
func (r *Renderer) RenderToString(node *vdom.VNode) (string, error) {
	var buf bytes.Buffer
	if err := r.RenderToWriter(&buf, node); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderToWriter streams a VNode tree to the given writer.
func (r *Renderer) RenderToWriter(w io.Writer, node *vdom.VNode) error {
	return r.renderNode(w, node, 0)
}

// renderNode dispatches rendering based on node kind.
func (r *Renderer) renderNode(w io.Writer, node *vdom.VNode, depth int) error {
	if node == nil {
		return nil
	}

	switch node.Kind {
	case vdom.KindElement:
		return r.renderElement(w, node, depth)
	case vdom.KindText:
		return writeString(w, escapeHTML(node.Text))
	case vdom.KindFragment:
		return r.renderChildren(w, node, depth)
	case vdom.KindComponent:
		if node.Comp == nil {
			return nil
		}
		return r.renderNode(w, node.Comp.Render(), depth)
	case vdom.KindRaw:
		return writeString(w, node.Text)
	default:
		return fmt.Errorf("unknown node kind: %d", node.Kind)
	}
}

// renderElement renders an HTML element with its attributes and children.
func (r *Renderer) renderElement(w io.Writer, node *vdom.VNode, depth int) error {
	tag := node.Tag
	if tag == "" {
		return fmt.Errorf("element without tag")
	}

	if r.config.Pretty && depth > 0 {
		r.writeIndent(w, depth)
	}

	if err := writeString(w, "<"+tag); err != nil {
		return err
	}
	if err := r.renderAttributes(w, node); err != nil {
		return err
	}
	if err := writeString(w, ">"); err != nil {
		return err
	}

	if isVoidElement(tag) {
		r.newline(w)
		return nil
	}

	blockChildren := r.config.Pretty && len(node.Children) > 0 && !isInlineElement(tag)
	if blockChildren {
		r.newline(w)
	}
	if err := r.renderChildren(w, node, depth+1); err != nil {
		return err
	}
	if blockChildren {
		r.writeIndent(w, depth)
	}

	if err := writeString(w, "</"+tag+">"); err != nil {
		return err
	}
	r.newline(w)
	return nil
}

// renderChildren renders children in order.
func (r *Renderer) renderChildren(w io.Writer, node *vdom.VNode, depth int) error {
	for _, child := range node.Children {
		if err := r.renderNode(w, child, depth); err != nil {
			return err
		}
	}
	return nil
}

// renderAttributes renders all attributes for an element in sorted order.
func (r *Renderer) renderAttributes(w io.Writer, node *vdom.VNode) error {
	if len(node.Props) == 0 {
		return nil
	}

	keys := make([]string, 0, len(node.Props))
	for key := range node.Props {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := node.Props[key]

		// Internal props
		if strings.HasPrefix(key, "_") || key == "key" {
			continue
		}

		if isBooleanAttr(key) {
			if b, ok := value.(bool); ok {
				if b {
					if err := writeString(w, " "+key); err != nil {
						return err
					}
				}
				continue
			}
		}

		if empty, ok := value.(vdom.Empty); ok {
			if err := writeString(w, ` `+key+`="`+escapeAttr(string(empty))+`"`); err != nil {
				return err
			}
			continue
		}

		str := attrToString(value)
		if str == "" {
			continue
		}
		if err := writeString(w, ` `+key+`="`+escapeAttr(str)+`"`); err != nil {
			return err
		}
	}

	return nil
}

// attrToString converts an attribute value to a string.
func attrToString(value any) string {
	if value == nil {
		return ""
	}
	switch v := value.(type) {
	case string:
		return v
	case bool:
		if v {
			return "true"
		}
		return "false"
	case int:
		return fmt.Sprintf("%d", v)
	case int64:
		return fmt.Sprintf("%d", v)
	case float64:
		return fmt.Sprintf("%g", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func (r *Renderer) newline(w io.Writer) {
	if r.config.Pretty {
		w.Write([]byte{'\n'})
	}
}

// writeIndent writes indentation for pretty printing.
func (r *Renderer) writeIndent(w io.Writer, depth int) {
	for i := 0; i < depth; i++ {
		w.Write([]byte(r.config.Indent))
	}
}

func writeString(w io.Writer, s string) error {
	_, err := io.WriteString(w, s)
	return err
}
