package preview

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"casamanduva.com/web/internal/format"
	"casamanduva.com/web/internal/gallery"
)

// card adapts a catalog item to bubbles/list.Item.
type card struct {
	item *gallery.Item
}

func (c card) Title() string       { return c.item.Title }
func (c card) Description() string { return c.item.Location + " • " + c.item.Area }
func (c card) FilterValue() string { return c.item.Title }

// cardDelegate renders one card per two lines: title, then category and meta.
type cardDelegate struct{}

func (d cardDelegate) Height() int                               { return 2 }
func (d cardDelegate) Spacing() int                              { return 1 }
func (d cardDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d cardDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	c, ok := item.(card)
	if !ok {
		return
	}
	prefix := "  "
	title := c.Title()
	if index == m.Index() {
		prefix = selectedStyle.Render("> ")
		title = selectedStyle.Render(title)
	}
	meta := categoryStyle.Render(strings.ToUpper(format.CategoryLabel(c.item.Category))) + "  " + mutedStyle.Render(c.Description())
	fmt.Fprintf(w, "%s%s\n  %s", prefix, title, meta)
}
