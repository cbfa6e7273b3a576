package vdom

import "fmt"

// Text creates a text node.
func Text(content string) *VNode {
	return &VNode{
		Kind: KindText,
		Text: content,
	}
}

// Textf creates a formatted text node.
func Textf(format string, args ...any) *VNode {
	return Text(fmt.Sprintf(format, args...))
}

// Raw creates an unescaped HTML node.
// Use with caution - can lead to XSS if content is user-provided.
func Raw(html string) *VNode {
	return &VNode{
		Kind: KindRaw,
		Text: html,
	}
}

// Fragment groups children without a wrapper element.
func Fragment(children ...any) *VNode {
	node := &VNode{
		Kind:     KindFragment,
		Children: make([]*VNode, 0),
	}

	for _, child := range children {
		switch v := child.(type) {
		case nil:
			continue
		case *VNode:
			if v != nil {
				node.Children = append(node.Children, v)
			}
		case []*VNode:
			for _, c := range v {
				if c != nil {
					node.Children = append(node.Children, c)
				}
			}
		case string:
			node.Children = append(node.Children, Text(v))
		case Component:
			node.Children = append(node.Children, &VNode{
				Kind: KindComponent,
				Comp: v,
			})
		}
	}

	return node
}

// If returns the node if condition is true, nil otherwise.
func If(condition bool, node *VNode) *VNode {
	if condition {
		return node
	}
	return nil
}

// IfElse returns the first node if condition is true, the second otherwise.
func IfElse(condition bool, ifTrue, ifFalse *VNode) *VNode {
	if condition {
		return ifTrue
	}
	return ifFalse
}

// When is like If but with lazy evaluation.
// The function is only called if condition is true.
func When(condition bool, fn func() *VNode) *VNode {
	if condition {
		return fn()
	}
	return nil
}

// Range maps a slice to VNodes, dropping nil results.
func Range[T any](items []T, fn func(item T, index int) *VNode) []*VNode {
	result := make([]*VNode, 0, len(items))
	for i, item := range items {
		node := fn(item, i)
		if node != nil {
			result = append(result, node)
		}
	}
	return result
}

// Key creates a key attribute for reconciliation.
// The key is converted to a string using fmt.Sprintf.
func Key(key any) Attr {
	return attr("key", fmt.Sprintf("%v", key))
}

// Nothing returns nil, useful for conditional rendering.
func Nothing() *VNode {
	return nil
}

// Walk visits node and its descendants depth-first, in document order.
// Component nodes are expanded by calling Render. Returning false from fn
// skips the node's children.
func Walk(node *VNode, fn func(*VNode) bool) {
	if node == nil {
		return
	}
	if !fn(node) {
		return
	}
	if node.Kind == KindComponent && node.Comp != nil {
		Walk(node.Comp.Render(), fn)
		return
	}
	for _, child := range node.Children {
		Walk(child, fn)
	}
}

// FindAll returns every node in the tree matching pred, in document order.
func FindAll(node *VNode, pred func(*VNode) bool) []*VNode {
	var out []*VNode
	Walk(node, func(n *VNode) bool {
		if pred(n) {
			out = append(out, n)
		}
		return true
	})
	return out
}

// Find returns the first node matching pred, or nil.
func Find(node *VNode, pred func(*VNode) bool) *VNode {
	var found *VNode
	Walk(node, func(n *VNode) bool {
		if found != nil {
			return false
		}
		if pred(n) {
			found = n
			return false
		}
		return true
	})
	return found
}

// ByTag matches elements with the given tag.
func ByTag(tag string) func(*VNode) bool {
	return func(n *VNode) bool {
		return n.Kind == KindElement && n.Tag == tag
	}
}

// ByClass matches elements carrying the given class.
func ByClass(class string) func(*VNode) bool {
	return func(n *VNode) bool {
		return n.Kind == KindElement && n.HasClass(class)
	}
}
