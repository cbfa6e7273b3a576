package render

import (
	"io"

	"github.com/vango-dev/siteheader/pkg/vdom"
)

// PageData contains all data needed to render a complete HTML page.
type PageData struct {
	// Body is the root VNode for the page content.
	Body *vdom.VNode

	// Title is the page title.
	Title string

	// Lang is the language attribute for the html element.
	// Defaults to "en" if not specified.
	Lang string

	// StyleSheets contains paths to external stylesheets.
	StyleSheets []string

	// Scripts contains paths to deferred scripts.
	Scripts []string
}

// RenderPage renders a complete HTML5 document.
func (r *Renderer) RenderPage(w io.Writer, page PageData) error {
	lang := page.Lang
	if lang == "" {
		lang = "en"
	}

	head := vdom.Head(
		vdom.Meta(vdom.Charset("utf-8")),
		vdom.Meta(vdom.NameAttr("viewport"), vdom.ContentAttr("width=device-width, initial-scale=1")),
		vdom.If(page.Title != "", vdom.Title(vdom.Text(page.Title))),
		vdom.Range(page.StyleSheets, func(href string, _ int) *vdom.VNode {
			return vdom.Link(vdom.Rel("stylesheet"), vdom.Href(href))
		}),
		vdom.Range(page.Scripts, func(src string, _ int) *vdom.VNode {
			return vdom.Script(vdom.Src(src), vdom.Attribute("defer", true))
		}),
	)

	doc := vdom.Html(vdom.Lang(lang), head, vdom.Body(page.Body))

	if err := writeString(w, "<!DOCTYPE html>"); err != nil {
		return err
	}
	r.newline(w)
	return r.RenderToWriter(w, doc)
}
