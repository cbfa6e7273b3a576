package header

import (
	"github.com/vango-dev/siteheader/pkg/disclosure"
	"github.com/vango-dev/siteheader/pkg/i18n"
	"github.com/vango-dev/siteheader/pkg/location"
)

// Settings are site-wide flags, usually read from configuration.
type Settings struct {
	// MinimalHeader widens the desktop container and left-aligns the mobile
	// logo.
	MinimalHeader bool
}

// Env holds the collaborators a presenter renders with. Nil collaborators
// fall back to the base-locale catalog, the hooked disclosure and an empty
// location.
type Env struct {
	Messages   i18n.Localizer
	Settings   Settings
	Location   location.Source
	Disclosure disclosure.Primitive
}

func (e Env) withDefaults() Env {
	if e.Messages == nil {
		e.Messages = i18n.Default()
	}
	if e.Location == nil {
		e.Location = location.None
	}
	if e.Disclosure == nil {
		e.Disclosure = disclosure.Hooked{}
	}
	return e
}

func (e Env) msg(id i18n.MessageID) string {
	return e.Messages.FormatMessage(id, nil)
}
