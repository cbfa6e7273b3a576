// Package render converts header VNode trees into HTML.
//
// Output is deterministic: attributes are written in sorted order, text and
// attribute values are escaped, void elements get no closing tag and boolean
// attributes are written bare. Rendering the same tree twice yields the same
// bytes, which is what lets published header fragments be cached and diffed.
//
// # Basic Usage
//
//	renderer := render.NewRenderer(render.RendererConfig{})
//	html, err := renderer.RenderToString(node)
//
// # Full Pages
//
// RenderPage wraps a body in a complete HTML5 document, used by the preview
// server:
//
//	err := renderer.RenderPage(w, render.PageData{
//	    Title: "Header preview",
//	    Body:  body,
//	})
//
// # Security
//
// All text content is escaped. KindRaw nodes are written verbatim and must
// only carry trusted markup.
package render
