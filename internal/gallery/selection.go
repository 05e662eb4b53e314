package gallery

// State is the detail view state.
type State int

const (
	// Closed means no item is shown in detail.
	Closed State = iota
	// Open means exactly one item is shown in detail.
	Open
)

func (s State) String() string {
	switch s {
	case Open:
		return "open"
	default:
		return "closed"
	}
}

// Transition describes a single change of the detail state. A nil From or To
// stands for Closed.
type Transition struct {
	From *Item
	To   *Item
}

// FromState reports the state before the transition.
func (t Transition) FromState() State { return stateOf(t.From) }

// ToState reports the state after the transition.
func (t Transition) ToState() State { return stateOf(t.To) }

func stateOf(item *Item) State {
	if item == nil {
		return Closed
	}
	return Open
}

// Selection holds at most one open catalog item.
type Selection struct {
	item *Item
}

// State reports whether an item is open.
func (s *Selection) State() State { return stateOf(s.item) }

// Item returns the open item, if any.
func (s *Selection) Item() (*Item, bool) {
	return s.item, s.item != nil
}

// open replaces the current item in one step, so a consumer never observes
// Closed between two open items.
func (s *Selection) open(item *Item) (Transition, bool) {
	if item == nil || item == s.item {
		return Transition{}, false
	}
	t := Transition{From: s.item, To: item}
	s.item = item
	return t, true
}

func (s *Selection) close() (Transition, bool) {
	if s.item == nil {
		return Transition{}, false
	}
	t := Transition{From: s.item}
	s.item = nil
	return t, true
}
