package header

import "github.com/vango-dev/siteheader/pkg/vdom"

// Props is the complete input of both presenters. Treat a Props value as
// immutable once handed to a presenter.
type Props struct {
	Identity       Identity
	Session        Session
	MainMenu       MainMenu
	UserMenu       []AccountMenuEntry
	LoggedOutItems []AnonymousAction
	// StickyOnMobile pins the mobile header to the top of the viewport.
	StickyOnMobile bool
}

// DefaultProps returns empty menus, no logo destination, a signed-out
// session and a sticky mobile header.
func DefaultProps() Props {
	return Props{
		MainMenu:       Entries{},
		UserMenu:       []AccountMenuEntry{},
		LoggedOutItems: []AnonymousAction{},
		StickyOnMobile: true,
	}
}

// Option configures Props.
type Option func(*Props)

// NewProps applies opts on top of DefaultProps.
func NewProps(opts ...Option) Props {
	p := DefaultProps()
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

// WithLogo sets the logo image and its alt text.
func WithLogo(src, alt string) Option {
	return func(p *Props) {
		p.Identity.Logo = src
		p.Identity.LogoAltText = alt
	}
}

// WithLogoDestination links the logo to href.
func WithLogoDestination(href string) Option {
	return func(p *Props) {
		p.Identity.LogoDestination = &href
	}
}

// WithUser marks the viewer as signed in.
func WithUser(username, avatar string) Option {
	return func(p *Props) {
		p.Session = Session{LoggedIn: true, Username: username, Avatar: avatar}
	}
}

// WithMainMenu sets the main menu entries.
func WithMainMenu(entries ...MenuEntry) Option {
	return func(p *Props) {
		p.MainMenu = Entries(entries)
	}
}

// WithPrerenderedMainMenu replaces the main menu with node.
func WithPrerenderedMainMenu(node *vdom.VNode) Option {
	return func(p *Props) {
		p.MainMenu = Prerendered{Node: node}
	}
}

// WithUserMenu sets the account menu shown to signed-in viewers.
func WithUserMenu(entries ...AccountMenuEntry) Option {
	return func(p *Props) {
		p.UserMenu = entries
	}
}

// WithLoggedOutItems sets the actions shown to signed-out visitors.
func WithLoggedOutItems(actions ...AnonymousAction) Option {
	return func(p *Props) {
		p.LoggedOutItems = actions
	}
}

// WithStickyOnMobile toggles the sticky mobile header.
func WithStickyOnMobile(sticky bool) Option {
	return func(p *Props) {
		p.StickyOnMobile = sticky
	}
}
