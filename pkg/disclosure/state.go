package disclosure

// State is the open/closed state of one disclosure.
type State uint8

const (
	Closed State = iota
	Open
)

func (s State) String() string {
	if s == Open {
		return "open"
	}
	return "closed"
}

// Event is an interaction a disclosure reacts to.
type Event uint8

const (
	// Activate is a click or keyboard activation of the trigger.
	Activate Event = iota
	// OutsideInteraction is a pointer or focus event outside the disclosure.
	OutsideInteraction
	// Escape is the Escape key pressed while focus is inside.
	Escape
)

func (e Event) String() string {
	switch e {
	case Activate:
		return "activate"
	case OutsideInteraction:
		return "outside"
	case Escape:
		return "escape"
	default:
		return "unknown"
	}
}

// Next returns the state after e. A closed disclosure only opens on
// Activate; an open one closes on any event.
func (s State) Next(e Event) State {
	switch s {
	case Closed:
		if e == Activate {
			return Open
		}
		return Closed
	case Open:
		switch e {
		case Activate, OutsideInteraction, Escape:
			return Closed
		}
		return Open
	}
	return s
}
