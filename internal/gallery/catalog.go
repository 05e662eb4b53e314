// Package gallery holds the portfolio core: the immutable project catalog, the
// category filter engine and the single-item detail selection state machine.
//
// Nothing in this package renders, animates or performs I/O. A View is owned by
// exactly one consumer (a request handler or the terminal preview) and is not
// safe for concurrent use.
package gallery

import (
	"errors"
	"fmt"
	"strings"
)

// AllFilter is the filter value that shows every catalog item.
const AllFilter = "all"

var (
	// ErrDuplicateID is returned when two seed records share an id.
	ErrDuplicateID = errors.New("gallery: duplicate item id")
	// ErrInvalidItem is returned when a seed record is missing a required field.
	ErrInvalidItem = errors.New("gallery: invalid item")
)

// Item is a single portfolio project. Items handed out by a Catalog point into
// the catalog's own storage and must be treated as read-only.
type Item struct {
	ID       int    `yaml:"id"`
	Title    string `yaml:"title"`
	Category string `yaml:"category"`
	Location string `yaml:"location"`
	Area     string `yaml:"area"`
	Year     string `yaml:"year"`
	ImageRef string `yaml:"image"`
}

// Catalog is the immutable ordered list of displayable items.
type Catalog struct {
	items []Item
	index map[int]int
}

// NewCatalog validates and copies the provided records. Order is preserved.
func NewCatalog(items []Item) (*Catalog, error) {
	c := &Catalog{
		items: make([]Item, 0, len(items)),
		index: make(map[int]int, len(items)),
	}
	for i, it := range items {
		it = normalizeItem(it)
		if err := validateItem(it); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		if _, dup := c.index[it.ID]; dup {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateID, it.ID)
		}
		c.index[it.ID] = len(c.items)
		c.items = append(c.items, it)
	}
	return c, nil
}

// Len reports the number of items.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.items)
}

// All returns every item in catalog order.
func (c *Catalog) All() []*Item {
	if c == nil {
		return []*Item{}
	}
	out := make([]*Item, len(c.items))
	for i := range c.items {
		out[i] = &c.items[i]
	}
	return out
}

// Lookup resolves an id to the catalog's own entry.
func (c *Catalog) Lookup(id int) (*Item, bool) {
	if c == nil {
		return nil, false
	}
	idx, ok := c.index[id]
	if !ok {
		return nil, false
	}
	return &c.items[idx], true
}

// Owns reports whether item is an entry of this catalog (identity, not equality).
func (c *Catalog) Owns(item *Item) bool {
	if item == nil {
		return false
	}
	got, ok := c.Lookup(item.ID)
	return ok && got == item
}

// Categories lists the distinct categories in first-seen order.
func (c *Catalog) Categories() []string {
	if c == nil {
		return nil
	}
	seen := make(map[string]struct{}, 4)
	out := make([]string, 0, 4)
	for _, it := range c.items {
		if _, ok := seen[it.Category]; ok {
			continue
		}
		seen[it.Category] = struct{}{}
		out = append(out, it.Category)
	}
	return out
}

func normalizeItem(it Item) Item {
	it.Title = strings.TrimSpace(it.Title)
	it.Category = strings.ToLower(strings.TrimSpace(it.Category))
	it.Location = strings.TrimSpace(it.Location)
	it.Area = strings.TrimSpace(it.Area)
	it.Year = strings.TrimSpace(it.Year)
	it.ImageRef = strings.TrimSpace(it.ImageRef)
	return it
}

func validateItem(it Item) error {
	if it.ID <= 0 {
		return fmt.Errorf("%w: id must be positive, got %d", ErrInvalidItem, it.ID)
	}
	required := []struct {
		name  string
		value string
	}{
		{"title", it.Title},
		{"category", it.Category},
		{"location", it.Location},
		{"area", it.Area},
		{"year", it.Year},
		{"image", it.ImageRef},
	}
	for _, f := range required {
		if f.value == "" {
			return fmt.Errorf("%w: id %d has empty %s", ErrInvalidItem, it.ID, f.name)
		}
	}
	if it.Category == AllFilter {
		return fmt.Errorf("%w: id %d uses reserved category %q", ErrInvalidItem, it.ID, AllFilter)
	}
	return nil
}
