// Package vdom provides the virtual node tree that site headers render to.
//
// A header is a pure projection of its inputs into a VNode tree. The tree is
// an in-memory description of HTML: elements, text, fragments, embedded
// components and raw markup. It is rendered to HTML by the render package and
// compared structurally with Equal.
//
// # Core Types
//
// VNode is the fundamental building block. Props holds attributes. Attr is a
// single key/value pair passed to element constructors.
//
// # Element API
//
// Elements are created using variadic factory functions:
//
//	Nav(Class("nav"), AriaLabel("Main"),
//	    A(Href("/courses"), Class("nav-link"), Text("Courses")),
//	)
//
// Arguments may be attributes, child nodes, slices of either, strings (text
// children), components or nil. Nil arguments are skipped, which keeps
// conditional attributes and children inline.
//
// # Keys
//
// Key sets a reconciliation key on a node. Keys are never rendered; they let
// clients that patch the DOM keep list items stable across re-renders.
package vdom
