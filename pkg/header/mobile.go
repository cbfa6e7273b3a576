package header

import (
	"github.com/vango-dev/siteheader/pkg/disclosure"
	"github.com/vango-dev/siteheader/pkg/i18n"
	"github.com/vango-dev/siteheader/pkg/vdom"
)

// Mobile renders the narrow-screen header: a hamburger disclosure for the
// main menu, the logo, and an avatar disclosure for account or logged-out
// actions. Either disclosure is left out entirely when it would be empty.
// A Prerendered main menu counts as non-empty and is placed inside the
// hamburger disclosure.
type Mobile struct {
	props Props
	env   Env
}

// NewMobile validates props and returns a mobile presenter.
func NewMobile(props Props, env Env) (*Mobile, error) {
	if err := props.Validate(); err != nil {
		return nil, err
	}
	return &Mobile{props: props, env: env.withDefaults()}, nil
}

// Render builds the header tree.
func (m *Mobile) Render() *vdom.VNode {
	main := ProjectMainMenu(m.props.MainMenu, m.env.Location)
	hasAccount := len(m.props.UserMenu) > 0 || len(m.props.LoggedOutItems) > 0

	logoAlign := "justify-content-center"
	if m.env.Settings.MinimalHeader {
		logoAlign = "justify-content-left pl-3"
	}

	return vdom.Header(
		vdom.AriaLabel(m.env.msg(i18n.MsgMainHeader)),
		vdom.Class("site-header-mobile d-flex justify-content-between align-items-center shadow"),
		vdom.ClassIf(m.props.StickyOnMobile, "sticky-top"),
		skipLink(m.env),
		vdom.When(!main.Empty(), func() *vdom.VNode { return m.mainMenu(main) }),
		vdom.Div(
			vdom.Class("w-100 d-flex", logoAlign),
			logo(m.props.Identity, vdom.ItemType(schemaOrganization)),
		),
		vdom.When(hasAccount, m.accountMenu),
	)
}

func (m *Mobile) mainMenu(main MainProjection) *vdom.VNode {
	var items []*vdom.VNode
	if main.Prerendered != nil {
		items = []*vdom.VNode{main.Prerendered}
	} else {
		items = make([]*vdom.VNode, 0, len(main.Items))
		for _, item := range main.Items {
			switch it := item.(type) {
			case NavLink:
				items = append(items, navLink(it))
			case SubmenuTrigger:
				items = append(items, m.submenu(it))
			}
		}
	}

	label := m.env.msg(i18n.MsgMainMenu)
	return vdom.Div(
		vdom.Class("w-100 d-flex justify-content-start"),
		m.env.Disclosure.Menu(disclosure.Spec{
			ID:    "hdr-mobile-main",
			Tag:   "div",
			Attrs: []vdom.Attr{vdom.Class("position-static")},
			Trigger: disclosure.Part{
				Tag:      "button",
				Attrs:    []vdom.Attr{vdom.Class("icon-button"), vdom.AriaLabel(label), vdom.TitleAttr(label)},
				Children: []*vdom.VNode{menuIcon()},
			},
			Content: disclosure.Part{
				Tag: "nav",
				Attrs: []vdom.Attr{
					vdom.AriaLabel(m.env.msg(i18n.MsgMainNav)),
					vdom.Class("nav flex-column pin-left pin-right border-top shadow py-2"),
				},
				Children: items,
			},
		}),
	)
}

func (m *Mobile) submenu(s SubmenuTrigger) *vdom.VNode {
	return m.env.Disclosure.Menu(disclosure.Spec{
		ID:    disclosure.ID("hdr-mobile-main", s.Key),
		Tag:   "div",
		Attrs: []vdom.Attr{vdom.Key(s.Key), vdom.Class("nav-item")},
		Trigger: disclosure.Part{
			Tag:      "a",
			Attrs:    []vdom.Attr{vdom.Role("button"), vdom.TabIndex(0), vdom.Class("nav-link")},
			Children: []*vdom.VNode{vdom.Text(s.Label)},
		},
		Content: disclosure.Part{
			Attrs:    []vdom.Attr{vdom.Class("position-static pin-left pin-right py-2")},
			Children: []*vdom.VNode{s.Content},
		},
	})
}

func (m *Mobile) accountMenu() *vdom.VNode {
	s := m.props.Session

	var items []*vdom.VNode
	if s.LoggedIn {
		acct := ProjectAccountMenu(m.props.UserMenu, s.Avatar, s.Username)
		for _, l := range acct.Links {
			items = append(items, vdom.Li(
				vdom.Key(l.Key),
				vdom.Class("nav-item"),
				vdom.A(vdom.Class("nav-link"), vdom.Href(l.Href), vdom.Text(l.Label)),
			))
		}
	} else {
		for _, b := range ProjectAnonymousActions(m.props.LoggedOutItems) {
			variant := "btn-outline-primary"
			if b.Primary {
				variant = "btn-primary"
			}
			items = append(items, vdom.Li(
				vdom.Key(b.Key),
				vdom.Class("nav-item px-3 my-2"),
				vdom.A(vdom.Class("btn btn-block", variant), vdom.Href(b.Href), vdom.Text(b.Label)),
			))
		}
	}

	label := m.env.msg(i18n.MsgAccountMenu)
	return vdom.Div(
		vdom.Class("w-100 d-flex justify-content-end align-items-center"),
		m.env.Disclosure.Menu(disclosure.Spec{
			ID:    "hdr-mobile-account",
			Tag:   "nav",
			Attrs: []vdom.Attr{vdom.AriaLabel(m.env.msg(i18n.MsgSecondaryNav)), vdom.Class("position-static")},
			Trigger: disclosure.Part{
				Tag:      "button",
				Attrs:    []vdom.Attr{vdom.Class("icon-button"), vdom.AriaLabel(label), vdom.TitleAttr(label)},
				Children: []*vdom.VNode{avatar(s.Avatar, s.Username, "1.5rem", "")},
			},
			Content: disclosure.Part{
				Tag:      "ul",
				Attrs:    []vdom.Attr{vdom.Class("nav flex-column pin-left pin-right border-top shadow py-2")},
				Children: items,
			},
		}),
	)
}
