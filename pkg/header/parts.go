package header

import (
	"github.com/vango-dev/siteheader/pkg/i18n"
	"github.com/vango-dev/siteheader/pkg/vdom"
)

// schemaOrganization marks the mobile linked logo as the site's organization.
const schemaOrganization = "http://schema.org/Organization"

func skipLink(env Env) *vdom.VNode {
	return vdom.A(
		vdom.Class("nav-skip sr-only sr-only-focusable"),
		vdom.Href("#main"),
		vdom.Text(env.msg(i18n.MsgSkipNav)),
	)
}

// logo renders the identity as a static image, or as a link when it has a
// destination.
func logo(id Identity, extra ...vdom.Attr) *vdom.VNode {
	if id.LogoDestination == nil {
		return vdom.Img(vdom.Class("logo"), vdom.Src(id.Logo), vdom.Alt(id.LogoAltText))
	}
	return vdom.A(
		vdom.Class("logo"),
		vdom.Href(*id.LogoDestination),
		extra,
		vdom.Img(vdom.Class("d-block"), vdom.Src(id.Logo), vdom.Alt(id.LogoAltText)),
	)
}

// avatar renders a round avatar of the given CSS size, falling back to a
// generic icon when src is empty.
func avatar(src, alt, size string, class string) *vdom.VNode {
	var inner *vdom.VNode
	if src == "" {
		inner = avatarIcon()
	} else {
		inner = vdom.Img(vdom.Class("d-block w-100 h-100"), vdom.Src(src), vdom.Alt(alt))
	}
	return vdom.Span(
		vdom.Class("avatar overflow-hidden d-inline-flex rounded-circle", class),
		vdom.StyleAttr("height: "+size+"; width: "+size),
		inner,
	)
}

func icon(d string) *vdom.VNode {
	return vdom.Svg(
		vdom.Role("img"),
		vdom.AriaHidden(true),
		vdom.Focusable(false),
		vdom.Width("24"),
		vdom.Height("24"),
		vdom.ViewBox("0 0 24 24"),
		vdom.Path(vdom.D(d), vdom.Fill("currentColor")),
	)
}

func caretIcon() *vdom.VNode {
	return icon("M7 10l5 5 5-5z")
}

func menuIcon() *vdom.VNode {
	return icon("M3 18h18v-2H3v2zm0-5h18v-2H3v2zm0-7v2h18V6H3z")
}

func avatarIcon() *vdom.VNode {
	return icon("M12 2C6.48 2 2 6.48 2 12s4.48 10 10 10 10-4.48 10-10S17.52 2 12 2zm0 3c1.66 0 3 1.34 3 3s-1.34 3-3 3-3-1.34-3-3 1.34-3 3-3zm0 14.2c-2.5 0-4.71-1.28-6-3.22.03-1.99 4-3.08 6-3.08 1.99 0 5.97 1.09 6 3.08-1.29 1.94-3.5 3.22-6 3.22z")
}

// navLink renders a main menu link with its active state.
func navLink(l NavLink) *vdom.VNode {
	return vdom.A(
		vdom.Key(l.Key),
		vdom.Class("nav-link"),
		vdom.ClassIf(l.Active, "nav-link__active"),
		currentIf(l.Active),
		vdom.Href(l.Href),
		vdom.Text(l.Label),
	)
}

func currentIf(active bool) vdom.Attr {
	if !active {
		return vdom.Attr{}
	}
	return vdom.AriaCurrent("page")
}
