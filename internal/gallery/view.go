package gallery

import "strings"

// Destination identifies a route outside the portfolio view.
type Destination string

const (
	// DestinationEstimate is the estimate request page.
	DestinationEstimate Destination = "/estimator"
	// DestinationContact is the contact page.
	DestinationContact Destination = "/contact"
)

// Navigator performs page transitions on behalf of the view.
type Navigator interface {
	GoTo(dest Destination)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(Destination)

// GoTo calls f(dest).
func (f NavigatorFunc) GoTo(dest Destination) { f(dest) }

// Action is a follow-up offered from the detail view.
type Action string

const (
	// ActionSimilarDesign asks for an estimate for a similar design.
	ActionSimilarDesign Action = "similar-design"
	// ActionDiscussProject opens the contact page.
	ActionDiscussProject Action = "discuss-project"
)

// ParseAction recognises the action slugs used in URLs.
func ParseAction(s string) (Action, bool) {
	a := Action(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := a.Destination(); !ok {
		return "", false
	}
	return a, true
}

// Destination maps the action to the route it leaves for.
func (a Action) Destination() (Destination, bool) {
	switch a {
	case ActionSimilarDesign:
		return DestinationEstimate, true
	case ActionDiscussProject:
		return DestinationContact, true
	default:
		return "", false
	}
}

// Region is an area of the detail overlay that can receive an activation.
type Region int

const (
	// RegionDismiss is the backdrop around the detail content.
	RegionDismiss Region = iota + 1
	// RegionContent is the detail content itself.
	RegionContent
	// RegionClose is the explicit close control.
	RegionClose
)

// ParseRegion maps the data-region attribute values used in markup.
func ParseRegion(s string) (Region, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "dismiss":
		return RegionDismiss, true
	case "content":
		return RegionContent, true
	case "close":
		return RegionClose, true
	default:
		return 0, false
	}
}

func (r Region) String() string {
	switch r {
	case RegionDismiss:
		return "dismiss"
	case RegionContent:
		return "content"
	case RegionClose:
		return "close"
	default:
		return "unknown"
	}
}

// Snapshot is the serialisable part of a View.
type Snapshot struct {
	Filter     string
	SelectedID int
}

// View combines the filter engine and the detail selection for one hosting
// page. The zero value is not usable; call NewView.
type View struct {
	catalog   *Catalog
	options   Options
	filter    *Engine
	selection Selection
	nav       Navigator
	observers []func(Transition)
	released  bool
}

// NewView mounts a view over catalog. nav may be nil.
func NewView(c *Catalog, opts Options, nav Navigator) *View {
	return &View{
		catalog: c,
		options: opts,
		filter:  NewEngine(c),
		nav:     nav,
	}
}

// Catalog returns the catalog the view was mounted with.
func (v *View) Catalog() *Catalog { return v.catalog }

// Options returns the recognised filter values.
func (v *View) Options() Options { return v.options }

// ActiveFilter returns the current filter value.
func (v *View) ActiveFilter() string { return v.filter.Active() }

// Generation increments once per effective filter change.
func (v *View) Generation() uint64 { return v.filter.Generation() }

// SetFilter changes the active filter. Re-applying the current value reports
// false and changes nothing. The filter controls sit beneath the detail
// overlay, so an open detail view closes before the filter switches.
func (v *View) SetFilter(filter string) bool {
	if v.released || filter == v.filter.Active() {
		return false
	}
	v.Close()
	return v.filter.SetFilter(filter)
}

// Visible returns the items shown under the active filter.
func (v *View) Visible() []*Item {
	if v.released {
		return []*Item{}
	}
	return v.filter.Visible()
}

// State reports whether the detail view is open.
func (v *View) State() State { return v.selection.State() }

// Selected returns the open item, if any.
func (v *View) Selected() (*Item, bool) { return v.selection.Item() }

// Observe registers fn to receive every state transition.
func (v *View) Observe(fn func(Transition)) {
	if fn == nil || v.released {
		return
	}
	v.observers = append(v.observers, fn)
}

// Select opens the item with the given id. Ids that are unknown or not in the
// visible set are ignored.
func (v *View) Select(id int) bool {
	if v.released {
		return false
	}
	item, ok := v.catalog.Lookup(id)
	if !ok || !v.filter.isVisible(item) {
		return false
	}
	t, changed := v.selection.open(item)
	if changed {
		v.emit(t)
	}
	return changed
}

// Close returns to Closed. Closing when already closed is a no-op.
func (v *View) Close() bool {
	if v.released {
		return false
	}
	t, changed := v.selection.close()
	if changed {
		v.emit(t)
	}
	return changed
}

// Activate dispatches an activation along path, innermost region first.
// RegionContent stops propagation, so a dismiss region enclosing the content
// never sees activations that start inside it. RegionClose and RegionDismiss
// close the detail view.
func (v *View) Activate(path ...Region) bool {
	for _, region := range path {
		switch region {
		case RegionContent:
			return false
		case RegionClose, RegionDismiss:
			return v.Close()
		}
	}
	return false
}

// NavigateAway closes the detail view and hands the action's destination to
// the navigator in the same call.
func (v *View) NavigateAway(action Action) (Destination, bool) {
	if v.released {
		return "", false
	}
	dest, ok := action.Destination()
	if !ok {
		return "", false
	}
	v.Close()
	if v.nav != nil {
		v.nav.GoTo(dest)
	}
	return dest, true
}

// Snapshot captures the filter and the selected id.
func (v *View) Snapshot() Snapshot {
	s := Snapshot{Filter: v.filter.Active()}
	if item, ok := v.selection.Item(); ok {
		s.SelectedID = item.ID
	}
	return s
}

// Restore re-applies a snapshot without notifying observers. A selected id
// that no longer resolves to a visible catalog entry restores as Closed.
func (v *View) Restore(s Snapshot) {
	if v.released {
		return
	}
	filter := s.Filter
	if filter == "" {
		filter = AllFilter
	}
	v.filter.SetFilter(filter)
	v.selection = Selection{}
	if s.SelectedID == 0 {
		return
	}
	if item, ok := v.catalog.Lookup(s.SelectedID); ok && v.filter.isVisible(item) {
		v.selection.open(item)
	}
}

// Release unmounts the view. Selection and filter are dropped and every later
// call is a no-op.
func (v *View) Release() {
	v.selection = Selection{}
	v.filter = NewEngine(v.catalog)
	v.nav = nil
	v.observers = nil
	v.released = true
}

// Released reports whether Release has been called.
func (v *View) Released() bool { return v.released }

func (v *View) emit(t Transition) {
	for _, fn := range v.observers {
		fn(t)
	}
}
