// Package preview is a terminal rendition of the portfolio gallery. It drives
// the same gallery.View as the web handlers from keyboard events.
package preview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"casamanduva.com/web/internal/format"
	"casamanduva.com/web/internal/gallery"
)

// Recorder is a Navigator that remembers destinations instead of leaving.
type Recorder struct {
	Visited []gallery.Destination
}

// GoTo records dest.
func (r *Recorder) GoTo(dest gallery.Destination) { r.Visited = append(r.Visited, dest) }

// Last returns the most recent destination.
func (r *Recorder) Last() (gallery.Destination, bool) {
	if len(r.Visited) == 0 {
		return "", false
	}
	return r.Visited[len(r.Visited)-1], true
}

type keyMap struct {
	NextFilter key.Binding
	PrevFilter key.Binding
	Open       key.Binding
	Close      key.Binding
	Similar    key.Binding
	Discuss    key.Binding
	Quit       key.Binding
}

var keys = keyMap{
	NextFilter: key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab", "next filter")),
	PrevFilter: key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("shift+tab", "prev filter")),
	Open:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
	Close:      key.NewBinding(key.WithKeys("esc", "x"), key.WithHelp("esc", "close")),
	Similar:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "similar design")),
	Discuss:    key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "discuss project")),
	Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// Model is the bubbletea model.
type Model struct {
	view    *gallery.View
	nav     *Recorder
	filters []string
	list    list.Model
	status  string
	width   int
	history *[]string
}

// New mounts a view over the catalog.
func New(c *gallery.Catalog, opts gallery.Options) Model {
	rec := &Recorder{}
	m := Model{
		view:    gallery.NewView(c, opts, rec),
		nav:     rec,
		filters: opts.Values(),
	}
	l := list.New(nil, cardDelegate{}, 0, 0)
	l.Title = "CASAMANDUVA Portfolio"
	l.Styles.Title = titleStyle
	l.Styles.HelpStyle = helpStyle
	l.SetShowTitle(false)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(false)
	l.SetStatusBarItemName("project", "projects")
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.NextFilter, keys.Open, keys.Quit}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.NextFilter, keys.PrevFilter, keys.Open, keys.Close, keys.Similar, keys.Discuss, keys.Quit}
	}
	m.list = l
	// bubbletea copies the model, so the history lives behind a pointer
	history := &[]string{}
	m.history = history
	m.view.Observe(func(t gallery.Transition) {
		entry := "closed"
		if t.To != nil {
			entry = "open " + t.To.Title
		}
		*history = append(*history, entry)
	})
	m.syncItems()
	return m
}

// Gallery exposes the underlying gallery view.
func (m Model) Gallery() *gallery.View { return m.view }

// History lists the detail transitions observed so far.
func (m Model) History() []string { return append([]string(nil), (*m.history)...) }

// Navigator exposes the recording navigator.
func (m Model) Navigator() *Recorder { return m.nav }

// Status returns the last status line.
func (m Model) Status() string { return m.status }

func (m *Model) syncItems() {
	visible := m.view.Visible()
	items := make([]list.Item, len(visible))
	for i, it := range visible {
		items[i] = card{item: it}
	}
	m.list.SetItems(items)
	m.list.ResetSelected()
}

func (m *Model) shiftFilter(delta int) {
	if len(m.filters) == 0 {
		return
	}
	idx := 0
	for i, f := range m.filters {
		if f == m.view.ActiveFilter() {
			idx = i
			break
		}
	}
	idx = (idx + delta + len(m.filters)) % len(m.filters)
	if m.view.SetFilter(m.filters[idx]) {
		m.syncItems()
		m.status = "showing " + format.FilterLabel(m.filters[idx])
	}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.list.SetSize(msg.Width, msg.Height-4)
		return m, nil
	case tea.KeyMsg:
		if key.Matches(msg, keys.Quit) {
			m.view.Release()
			return m, tea.Quit
		}
		if m.view.State() == gallery.Open {
			return m.updateDetail(msg)
		}
		switch {
		case key.Matches(msg, keys.NextFilter):
			m.shiftFilter(1)
			return m, nil
		case key.Matches(msg, keys.PrevFilter):
			m.shiftFilter(-1)
			return m, nil
		case key.Matches(msg, keys.Open):
			if c, ok := m.list.SelectedItem().(card); ok && m.view.Select(c.item.ID) {
				m.status = "opened " + c.item.Title
			}
			return m, nil
		case msg.String() == "esc":
			m.view.Release()
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// updateDetail handles keys while the detail panel is open. Keys that are not
// bound to the panel are contained by it and never reach the list.
func (m Model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Close):
		if m.view.Activate(gallery.RegionClose) {
			m.status = "closed"
		}
	case key.Matches(msg, keys.Similar):
		if dest, ok := m.view.NavigateAway(gallery.ActionSimilarDesign); ok {
			m.status = "→ " + string(dest)
		}
	case key.Matches(msg, keys.Discuss):
		if dest, ok := m.view.NavigateAway(gallery.ActionDiscussProject); ok {
			m.status = "→ " + string(dest)
		}
	default:
		m.view.Activate(gallery.RegionContent, gallery.RegionDismiss)
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("CASAMANDUVA · Featured Projects"))
	b.WriteString("\n")
	b.WriteString(m.tabs())
	b.WriteString("\n\n")
	if item, ok := m.view.Selected(); ok {
		b.WriteString(m.detail(item))
	} else if len(m.list.Items()) == 0 {
		b.WriteString(mutedStyle.Render("No projects match this filter yet."))
	} else {
		b.WriteString(m.list.View())
	}
	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(statusStyle.Render(m.status))
	}
	return b.String()
}

func (m Model) tabs() string {
	parts := make([]string, 0, len(m.filters))
	for _, f := range m.filters {
		style := tabStyle
		if f == m.view.ActiveFilter() {
			style = activeTabStyle
		}
		parts = append(parts, style.Render(format.FilterLabel(f)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m Model) detail(item *gallery.Item) string {
	lines := []string{
		categoryStyle.Render(strings.ToUpper(format.CategoryLabel(item.Category))),
		titleStyle.Render(item.Title),
		"",
		fmt.Sprintf("Location: %s   Area: %s   Year: %s", item.Location, item.Area, item.Year),
		"",
		helpStyle.Render("s get similar design · d discuss your project · esc close"),
	}
	style := detailStyle
	if m.width > 8 {
		style = style.Width(m.width - 4)
	}
	return style.Render(strings.Join(lines, "\n"))
}
