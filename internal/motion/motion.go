// Package motion computes entry-animation delays for lists of rendered items.
//
// Delays depend only on an item's position in the rendered sequence, so
// re-rendering the same list yields the same timing.
package motion

import (
	"fmt"
	"strconv"
	"time"
)

// Stagger describes a linear delay ramp: Base + i*Step, clamped to Max when Max
// is positive.
type Stagger struct {
	Base time.Duration
	Step time.Duration
	Max  time.Duration
}

// Named presets used by the page templates.
var (
	Hero           = Stagger{Step: 200 * time.Millisecond}
	PortfolioCards = Stagger{Step: 100 * time.Millisecond, Max: time.Second}
	SolutionsGrid  = Stagger{Base: 50 * time.Millisecond, Step: 60 * time.Millisecond}
	Stats          = Stagger{Base: 100 * time.Millisecond, Step: 100 * time.Millisecond}
)

var presets = map[string]Stagger{
	"hero":      Hero,
	"portfolio": PortfolioCards,
	"solutions": SolutionsGrid,
	"stats":     Stats,
}

// Preset looks up a stagger by name.
func Preset(name string) (Stagger, bool) {
	s, ok := presets[name]
	return s, ok
}

// Delay returns the delay for the item at index i. Negative indices are
// treated as zero.
func (s Stagger) Delay(i int) time.Duration {
	if i < 0 {
		i = 0
	}
	d := s.Base + time.Duration(i)*s.Step
	if s.Max > 0 && d > s.Max {
		return s.Max
	}
	return d
}

// Seconds formats the delay for index i as a CSS time value, e.g. "0.35s".
func (s Stagger) Seconds(i int) string {
	return strconv.FormatFloat(s.Delay(i).Seconds(), 'f', -1, 64) + "s"
}

// Style returns an inline style declaration for index i.
func (s Stagger) Style(i int) string {
	return fmt.Sprintf("animation-delay: %s", s.Seconds(i))
}
