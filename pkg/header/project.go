package header

import (
	"github.com/vango-dev/siteheader/pkg/location"
	"github.com/vango-dev/siteheader/pkg/vdom"
)

// Affordance is one projected main menu control: a NavLink or a
// SubmenuTrigger.
type Affordance interface {
	affordance()
}

// NavLink is a main menu link. Active is set when Href equals the current
// location exactly.
type NavLink struct {
	Key    string
	Href   string
	Label  string
	Active bool
}

// SubmenuTrigger opens a disclosure holding Content. Submenu triggers are
// never active, whatever their content links to.
type SubmenuTrigger struct {
	Key     string
	Href    string
	Label   string
	Content *vdom.VNode
}

func (NavLink) affordance()        {}
func (SubmenuTrigger) affordance() {}

// MainProjection is the layout-neutral main menu. Exactly one of Prerendered
// and Items is set for a non-empty menu.
type MainProjection struct {
	Prerendered *vdom.VNode
	Items       []Affordance
}

// Empty reports whether there is nothing to show.
func (p MainProjection) Empty() bool {
	return p.Prerendered == nil && len(p.Items) == 0
}

// ProjectMainMenu turns menu into affordances for the location loc. A
// Prerendered menu is passed through untouched. A nil loc matches nothing.
func ProjectMainMenu(menu MainMenu, loc location.Source) MainProjection {
	if loc == nil {
		loc = location.None
	}
	switch m := menu.(type) {
	case Prerendered:
		return MainProjection{Prerendered: m.Node}
	case Entries:
		current := loc.Path()
		keys := newKeyer()
		items := make([]Affordance, 0, len(m))
		for _, entry := range m {
			switch e := entry.(type) {
			case Item:
				items = append(items, NavLink{
					Key:    keys.next("item", e.Href),
					Href:   e.Href,
					Label:  e.Label,
					Active: e.Href == current,
				})
			case Submenu:
				items = append(items, SubmenuTrigger{
					Key:     keys.next("submenu", e.Href),
					Href:    e.Href,
					Label:   e.Label,
					Content: e.Content,
				})
			}
		}
		return MainProjection{Items: items}
	}
	return MainProjection{}
}

// AccountLink is one link of the account menu.
type AccountLink struct {
	Key   string
	Kind  Kind
	Href  string
	Label string
}

// AccountProjection is the signed-in account disclosure: the trigger shows
// Avatar and Username, the content lists Links.
type AccountProjection struct {
	Avatar   string
	Username string
	Links    []AccountLink
}

// ProjectAccountMenu maps account entries to links. Account links carry no
// active state.
func ProjectAccountMenu(entries []AccountMenuEntry, avatar, username string) AccountProjection {
	keys := newKeyer()
	links := make([]AccountLink, 0, len(entries))
	for _, e := range entries {
		kind := e.Kind.orItem()
		links = append(links, AccountLink{
			Key:   keys.next(string(kind), e.Href),
			Kind:  kind,
			Href:  e.Href,
			Label: e.Label,
		})
	}
	return AccountProjection{Avatar: avatar, Username: username, Links: links}
}

// ActionButton is a logged-out call to action.
type ActionButton struct {
	Key     string
	Href    string
	Label   string
	Primary bool
}

// ProjectAnonymousActions maps actions to buttons. The last one is primary;
// an empty list yields nil.
func ProjectAnonymousActions(actions []AnonymousAction) []ActionButton {
	if len(actions) == 0 {
		return nil
	}
	keys := newKeyer()
	buttons := make([]ActionButton, len(actions))
	for i, a := range actions {
		buttons[i] = ActionButton{
			Key:     keys.next(string(a.Kind.orItem()), a.Href),
			Href:    a.Href,
			Label:   a.Label,
			Primary: i == len(actions)-1,
		}
	}
	return buttons
}
