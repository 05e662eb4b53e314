package gallery

import "strings"

// Apply returns the items visible under filter. AllFilter yields the whole
// catalog; any other value yields the items whose category equals it, in
// catalog order. A value that matches nothing yields an empty slice.
func Apply(c *Catalog, filter string) []*Item {
	if filter == AllFilter {
		return c.All()
	}
	out := make([]*Item, 0, c.Len())
	if c == nil {
		return out
	}
	for i := range c.items {
		if c.items[i].Category == filter {
			out = append(out, &c.items[i])
		}
	}
	return out
}

// Engine tracks the active filter and caches the visible sequence until the
// filter changes.
type Engine struct {
	catalog    *Catalog
	active     string
	visible    []*Item
	fresh      bool
	generation uint64
}

// NewEngine starts with AllFilter active.
func NewEngine(c *Catalog) *Engine {
	return &Engine{catalog: c, active: AllFilter}
}

// Active returns the current filter value.
func (e *Engine) Active() string { return e.active }

// Generation increments once per effective filter change.
func (e *Engine) Generation() uint64 { return e.generation }

// SetFilter switches the active filter. Setting the current value is a no-op
// and reports false.
func (e *Engine) SetFilter(filter string) bool {
	if filter == e.active {
		return false
	}
	e.active = filter
	e.fresh = false
	e.visible = nil
	e.generation++
	return true
}

// Visible returns the items matching the active filter. The returned slice is
// a copy; the items are catalog entries.
func (e *Engine) Visible() []*Item {
	if !e.fresh {
		e.visible = Apply(e.catalog, e.active)
		e.fresh = true
	}
	out := make([]*Item, len(e.visible))
	copy(out, e.visible)
	return out
}

func (e *Engine) isVisible(item *Item) bool {
	if item == nil || !e.catalog.Owns(item) {
		return false
	}
	return e.active == AllFilter || item.Category == e.active
}

// Options is the ordered set of recognised filter values. The first value is
// always AllFilter.
type Options struct {
	values []string
}

// DefaultOptions mirrors the categories offered on the portfolio page.
func DefaultOptions() Options {
	return NewOptions("residential", "commercial", "hospitality")
}

// NewOptions builds an option set led by AllFilter. Blank and repeated values
// are dropped; values are lower-cased.
func NewOptions(values ...string) Options {
	out := []string{AllFilter}
	seen := map[string]struct{}{AllFilter: {}}
	for _, v := range values {
		v = strings.ToLower(strings.TrimSpace(v))
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return Options{values: out}
}

// Values returns the option values in display order.
func (o Options) Values() []string {
	if len(o.values) == 0 {
		return []string{AllFilter}
	}
	out := make([]string, len(o.values))
	copy(out, o.values)
	return out
}

// Known reports whether filter is one of the recognised values.
func (o Options) Known(filter string) bool {
	if filter == AllFilter {
		return true
	}
	for _, v := range o.values {
		if v == filter {
			return true
		}
	}
	return false
}
