// Package i18n resolves the header's accessible labels.
//
// The header only needs a handful of strings, all identified by a MessageID.
// Catalogs ship as YAML files under locales/<locale>/header.yaml, are
// embedded in the binary and compiled into an x/text message catalog. A
// locale that omits a message falls back to the base locale.
package i18n

// MessageID identifies one localizable header string.
type MessageID string

const (
	MsgSkipNav      MessageID = "header.label.skip.nav"
	MsgMainNav      MessageID = "header.label.main.nav"
	MsgSecondaryNav MessageID = "header.label.secondary.nav"
	// MsgAccountMenuFor takes a {username} substitution.
	MsgAccountMenuFor MessageID = "header.label.account.menu.for"
	MsgAccountMenu    MessageID = "header.label.account.menu"
	MsgMainMenu       MessageID = "header.label.main.menu"
	MsgMainHeader     MessageID = "header.label.main.header"
)

// MessageIDs returns every message the header uses.
func MessageIDs() []MessageID {
	return []MessageID{
		MsgSkipNav,
		MsgMainNav,
		MsgSecondaryNav,
		MsgAccountMenuFor,
		MsgAccountMenu,
		MsgMainMenu,
		MsgMainHeader,
	}
}

func knownMessage(id MessageID) bool {
	for _, known := range MessageIDs() {
		if id == known {
			return true
		}
	}
	return false
}

// Localizer formats header messages for one locale.
type Localizer interface {
	FormatMessage(id MessageID, subs map[string]string) string
}
