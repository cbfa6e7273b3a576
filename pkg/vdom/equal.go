package vdom

import "reflect"

// Equal reports whether two trees are structurally identical: same kinds,
// tags, keys, text, attributes and children in the same order. Component
// nodes are compared by their rendered output.
func Equal(a, b *VNode) bool {
	if a == nil || b == nil {
		return a == b
	}

	if isRenderable(a) || isRenderable(b) {
		return Equal(expand(a), expand(b))
	}

	if a.Kind != b.Kind || a.Tag != b.Tag || a.Key != b.Key || a.Text != b.Text {
		return false
	}
	if !propsEqual(a.Props, b.Props) {
		return false
	}
	if len(a.Children) != len(b.Children) {
		return false
	}
	for i := range a.Children {
		if !Equal(a.Children[i], b.Children[i]) {
			return false
		}
	}
	return true
}

// isRenderable reports whether n is a component node with a component.
func isRenderable(n *VNode) bool {
	return n.Kind == KindComponent && n.Comp != nil
}

// expand renders component nodes; other nodes are returned as-is.
func expand(n *VNode) *VNode {
	if isRenderable(n) {
		return n.Comp.Render()
	}
	return n
}

// propsEqual compares attribute maps, treating nil and empty as equal.
func propsEqual(a, b Props) bool {
	if len(a) != len(b) {
		return false
	}
	for key, av := range a {
		bv, ok := b[key]
		if !ok {
			return false
		}
		if !reflect.DeepEqual(av, bv) {
			return false
		}
	}
	return true
}
