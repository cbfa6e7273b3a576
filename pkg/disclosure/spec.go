package disclosure

import (
	"fmt"
	"hash/fnv"
	"strings"
	"time"

	"github.com/vango-dev/siteheader/pkg/vdom"
)

// Primitive renders a disclosure described by a Spec.
type Primitive interface {
	Menu(spec Spec) *vdom.VNode
}

// Part describes one element of a disclosure: the trigger or the content.
type Part struct {
	// Tag defaults to "button" for triggers and "div" for content.
	Tag      string
	Attrs    []vdom.Attr
	Children []*vdom.VNode
}

// Transition is a presentation hint forwarded to the client.
type Transition struct {
	Class   string
	Timeout time.Duration
}

// Spec describes a disclosure. ID must be stable across renders; use ID to
// derive it from identity keys.
type Spec struct {
	ID    string
	Tag   string // container tag, defaults to "div"
	Attrs []vdom.Attr

	Trigger Part
	Content Part

	// PointerEvents opens the content on hover as well as on activation.
	PointerEvents bool
	Transition    Transition

	// Initial state. Disclosures render closed unless told otherwise.
	Initial State
}

// TriggerID returns the id given to the trigger element.
func (s Spec) TriggerID() string { return s.ID + "-trigger" }

// ContentID returns the id given to the content element.
func (s Spec) ContentID() string { return s.ID + "-content" }

// ID derives a stable, HTML-safe element id from a prefix and an identity
// key. The readable part keeps letters and digits; a hash of the full key
// keeps ids distinct when the readable parts collide.
func ID(prefix, key string) string {
	var b strings.Builder
	b.WriteString(prefix)
	dash := true
	for _, r := range key {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			if dash {
				b.WriteByte('-')
				dash = false
			}
			b.WriteRune(r)
		default:
			dash = true
		}
	}
	h := fnv.New32a()
	h.Write([]byte(key))
	return fmt.Sprintf("%s-%08x", b.String(), h.Sum32())
}
