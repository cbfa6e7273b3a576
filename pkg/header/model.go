package header

import "github.com/vango-dev/siteheader/pkg/vdom"

// MenuEntry is one entry of the main menu: an Item or a Submenu.
type MenuEntry interface {
	menuEntry()
}

// Item is a plain main menu link.
type Item struct {
	Href  string
	Label string
}

// Submenu is a main menu link that discloses Content.
type Submenu struct {
	Href  string
	Label string
	// Content is rendered as-is inside the disclosure. See LinkList.
	Content *vdom.VNode
}

func (Item) menuEntry()    {}
func (Submenu) menuEntry() {}

// MainMenu is either an ordered list of Entries or a Prerendered node that
// replaces the whole menu. A nil MainMenu is an empty list.
type MainMenu interface {
	mainMenu()
}

// Entries is an ordered main menu. Order is display order; duplicates are
// kept.
type Entries []MenuEntry

// Prerendered hands the header a fully custom main menu.
type Prerendered struct {
	Node *vdom.VNode
}

func (Entries) mainMenu()     {}
func (Prerendered) mainMenu() {}

// Kind distinguishes account menu entries and logged-out actions. The kind
// becomes part of the entry's identity key and, on desktop, its class.
type Kind string

const (
	KindItem Kind = "item"
	KindMenu Kind = "menu"
)

// orItem returns k, treating the zero Kind as KindItem.
func (k Kind) orItem() Kind {
	if k == "" {
		return KindItem
	}
	return k
}

func (k Kind) valid() bool {
	switch k.orItem() {
	case KindItem, KindMenu:
		return true
	}
	return false
}

// AccountMenuEntry is one link in the signed-in user's account menu.
type AccountMenuEntry struct {
	Kind  Kind
	Href  string
	Label string
}

// AnonymousAction is a call to action shown to signed-out visitors. The last
// action in a list is the primary one.
type AnonymousAction struct {
	Kind  Kind
	Href  string
	Label string
}

// Identity is the site's branding. A nil LogoDestination renders the logo as
// a plain image.
type Identity struct {
	Logo            string
	LogoAltText     string
	LogoDestination *string
}

// Session is the part of the viewer's session the header shows. Avatar and
// Username only matter when LoggedIn.
type Session struct {
	LoggedIn bool
	Avatar   string
	Username string
}

// Link is one entry of a LinkList.
type Link struct {
	Href  string
	Label string
}

// LinkList builds simple submenu content: a list of dropdown links.
func LinkList(links ...Link) *vdom.VNode {
	return vdom.Ul(
		vdom.Class("list-unstyled mb-0"),
		vdom.Range(links, func(l Link, _ int) *vdom.VNode {
			return vdom.Li(vdom.A(vdom.Class("dropdown-item"), vdom.Href(l.Href), vdom.Text(l.Label)))
		}),
	)
}
