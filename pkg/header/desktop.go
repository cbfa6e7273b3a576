package header

import (
	"time"

	"github.com/vango-dev/siteheader/pkg/disclosure"
	"github.com/vango-dev/siteheader/pkg/i18n"
	"github.com/vango-dev/siteheader/pkg/vdom"
)

// accountTransition is the client-side transition of the desktop account
// dropdown.
var accountTransition = disclosure.Transition{Class: "menu-dropdown", Timeout: 250 * time.Millisecond}

// Desktop renders the wide-screen header: logo, inline main menu with hover
// submenus, and a secondary navigation with either the account dropdown or
// the logged-out actions.
type Desktop struct {
	props Props
	env   Env
}

// NewDesktop validates props and returns a desktop presenter.
func NewDesktop(props Props, env Env) (*Desktop, error) {
	if err := props.Validate(); err != nil {
		return nil, err
	}
	return &Desktop{props: props, env: env.withDefaults()}, nil
}

// Render builds the header tree.
func (d *Desktop) Render() *vdom.VNode {
	return vdom.Header(
		vdom.Class("site-header-desktop"),
		skipLink(d.env),
		vdom.Div(
			vdom.Class("container-fluid"),
			vdom.ClassIf(d.env.Settings.MinimalHeader, "mw-100"),
			vdom.Div(
				vdom.Class("nav-container position-relative d-flex align-items-center"),
				logo(d.props.Identity),
				vdom.Nav(
					vdom.AriaLabel(d.env.msg(i18n.MsgMainNav)),
					vdom.Class("nav"),
					d.mainMenu(),
				),
				vdom.Nav(
					vdom.AriaLabel(d.env.msg(i18n.MsgSecondaryNav)),
					vdom.Class("nav secondary-menu-container align-items-center ml-auto"),
					d.secondaryMenu(),
				),
			),
		),
	)
}

func (d *Desktop) mainMenu() []*vdom.VNode {
	proj := ProjectMainMenu(d.props.MainMenu, d.env.Location)
	if proj.Prerendered != nil {
		return []*vdom.VNode{proj.Prerendered}
	}
	nodes := make([]*vdom.VNode, 0, len(proj.Items))
	for _, item := range proj.Items {
		switch it := item.(type) {
		case NavLink:
			nodes = append(nodes, navLink(it))
		case SubmenuTrigger:
			nodes = append(nodes, d.submenu(it))
		}
	}
	return nodes
}

func (d *Desktop) submenu(s SubmenuTrigger) *vdom.VNode {
	return d.env.Disclosure.Menu(disclosure.Spec{
		ID:            disclosure.ID("hdr-desktop-main", s.Key),
		Tag:           "div",
		Attrs:         []vdom.Attr{vdom.Key(s.Key), vdom.Class("nav-item")},
		PointerEvents: true,
		Trigger: disclosure.Part{
			Tag:      "a",
			Attrs:    []vdom.Attr{vdom.Class("nav-link d-inline-flex align-items-center"), vdom.Href(s.Href)},
			Children: []*vdom.VNode{vdom.Text(s.Label + " "), caretIcon()},
		},
		Content: disclosure.Part{
			Attrs:    []vdom.Attr{vdom.Class("pin-left pin-right shadow py-2")},
			Children: []*vdom.VNode{s.Content},
		},
	})
}

func (d *Desktop) secondaryMenu() []*vdom.VNode {
	if d.props.Session.LoggedIn {
		return []*vdom.VNode{d.userMenu()}
	}
	buttons := ProjectAnonymousActions(d.props.LoggedOutItems)
	nodes := make([]*vdom.VNode, 0, len(buttons))
	for _, b := range buttons {
		variant := "btn-link"
		if b.Primary {
			variant = "btn-outline-primary"
		}
		nodes = append(nodes, vdom.A(
			vdom.Key(b.Key),
			vdom.Class("btn", "mr-2", variant),
			vdom.Href(b.Href),
			vdom.Text(b.Label),
		))
	}
	return nodes
}

func (d *Desktop) userMenu() *vdom.VNode {
	s := d.props.Session
	acct := ProjectAccountMenu(d.props.UserMenu, s.Avatar, s.Username)

	links := make([]*vdom.VNode, 0, len(acct.Links))
	for _, l := range acct.Links {
		links = append(links, vdom.A(
			vdom.Key(l.Key),
			vdom.Class("dropdown-"+string(l.Kind)),
			vdom.Href(l.Href),
			vdom.Text(l.Label),
		))
	}

	label := d.env.Messages.FormatMessage(i18n.MsgAccountMenuFor, map[string]string{"username": acct.Username})
	return d.env.Disclosure.Menu(disclosure.Spec{
		ID:         "hdr-desktop-account",
		Transition: accountTransition,
		Trigger: disclosure.Part{
			Tag: "button",
			Attrs: []vdom.Attr{
				vdom.AriaLabel(label),
				vdom.Class("btn btn-outline-primary d-inline-flex align-items-center pl-2 pr-3"),
			},
			Children: []*vdom.VNode{
				avatar(acct.Avatar, "", "1.5em", "mr-2"),
				vdom.Text(acct.Username + " "),
				caretIcon(),
			},
		},
		Content: disclosure.Part{
			Attrs:    []vdom.Attr{vdom.Class("mb-0 dropdown-menu show dropdown-menu-right pin-right shadow py-2")},
			Children: links,
		},
	})
}
