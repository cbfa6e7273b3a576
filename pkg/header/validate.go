package header

import (
	"github.com/vango-dev/siteheader/internal/errors"
)

// ContractError is returned by NewDesktop, NewMobile and Props.Validate when
// the props break the input contract. Code identifies the violation and
// Field the offending input, e.g. "mainMenu[2].href".
type ContractError = errors.HeaderError

// Validate reports the first contract violation in p, or nil.
func (p Props) Validate() error {
	if err := validateMainMenu(p.MainMenu); err != nil {
		return err
	}
	for i, e := range p.UserMenu {
		if !e.Kind.valid() {
			return errors.New("E211").WithFieldf("userMenu[%d].kind", i).
				WithSuggestion(`Use header.KindItem or header.KindMenu`)
		}
		if e.Href == "" {
			return errors.New("E210").WithFieldf("userMenu[%d].href", i)
		}
		if e.Label == "" {
			return errors.New("E210").WithFieldf("userMenu[%d].label", i)
		}
	}
	for i, a := range p.LoggedOutItems {
		if !a.Kind.valid() {
			return errors.New("E221").WithFieldf("loggedOutItems[%d].kind", i).
				WithSuggestion(`Use header.KindItem or header.KindMenu`)
		}
		if a.Href == "" {
			return errors.New("E220").WithFieldf("loggedOutItems[%d].href", i)
		}
		if a.Label == "" {
			return errors.New("E220").WithFieldf("loggedOutItems[%d].label", i)
		}
	}
	return nil
}

func validateMainMenu(menu MainMenu) error {
	switch m := menu.(type) {
	case nil:
		return nil
	case Prerendered:
		if m.Node == nil {
			return errors.New("E203").WithField("mainMenu.node")
		}
		return nil
	case Entries:
		for i, entry := range m {
			if err := validateEntry(i, entry); err != nil {
				return err
			}
		}
		return nil
	default:
		return errors.New("E204").WithField("mainMenu")
	}
}

func validateEntry(i int, entry MenuEntry) error {
	switch e := entry.(type) {
	case Item:
		return requireLink(i, e.Href, e.Label)
	case Submenu:
		if err := requireLink(i, e.Href, e.Label); err != nil {
			return err
		}
		if e.Content == nil {
			return errors.New("E202").WithFieldf("mainMenu[%d].content", i).
				WithSuggestion("Build the content with header.LinkList or pass a vdom node")
		}
		return nil
	default:
		return errors.New("E204").WithFieldf("mainMenu[%d]", i).
			WithSuggestion("Use header.Item or header.Submenu")
	}
}

func requireLink(i int, href, label string) error {
	if href == "" {
		return errors.New("E200").WithFieldf("mainMenu[%d].href", i)
	}
	if label == "" {
		return errors.New("E201").WithFieldf("mainMenu[%d].label", i)
	}
	return nil
}
