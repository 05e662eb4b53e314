package gallery

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func defaultCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, _, err := DefaultSeed().Build()
	require.NoError(t, err)
	return c
}

func ids(items []*Item) []int {
	out := make([]int, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}

type recordingNavigator struct {
	visited []Destination
}

func (n *recordingNavigator) GoTo(dest Destination) { n.visited = append(n.visited, dest) }

func TestNewCatalogRejectsDuplicateIDs(t *testing.T) {
	t.Parallel()

	_, err := NewCatalog([]Item{
		{ID: 1, Title: "A", Category: "residential", Location: "X", Area: "1", Year: "2024", ImageRef: "a.jpg"},
		{ID: 1, Title: "B", Category: "commercial", Location: "Y", Area: "2", Year: "2024", ImageRef: "b.jpg"},
	})
	require.ErrorIs(t, err, ErrDuplicateID)
}

func TestNewCatalogRejectsEmptyFields(t *testing.T) {
	t.Parallel()

	_, err := NewCatalog([]Item{{ID: 2, Title: "  ", Category: "residential", Location: "X", Area: "1", Year: "2024", ImageRef: "a.jpg"}})
	require.ErrorIs(t, err, ErrInvalidItem)

	_, err = NewCatalog([]Item{{ID: 3, Title: "T", Category: "all", Location: "X", Area: "1", Year: "2024", ImageRef: "a.jpg"}})
	require.ErrorIs(t, err, ErrInvalidItem, "the all filter value cannot be a category")
}

func TestCatalogIsNotAliasedToInput(t *testing.T) {
	t.Parallel()

	records := []Item{{ID: 1, Title: "A", Category: "residential", Location: "X", Area: "1", Year: "2024", ImageRef: "a.jpg"}}
	c, err := NewCatalog(records)
	require.NoError(t, err)
	records[0].Title = "mutated"

	item, ok := c.Lookup(1)
	require.True(t, ok)
	require.Equal(t, "A", item.Title)
}

func TestFilterAllReturnsCatalogInOrder(t *testing.T) {
	t.Parallel()

	c := defaultCatalog(t)
	got := Apply(c, AllFilter)
	require.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9}, ids(got))
	for _, it := range got {
		require.True(t, c.Owns(it), "filtered items must be catalog entries, not copies")
	}
}

func TestFilterCompletenessAndExclusivity(t *testing.T) {
	t.Parallel()

	c := defaultCatalog(t)
	for _, f := range []string{"residential", "commercial", "hospitality"} {
		got := Apply(c, f)
		for _, it := range got {
			require.Equal(t, f, it.Category)
		}
		members := map[int]bool{}
		for _, it := range got {
			members[it.ID] = true
		}
		for _, it := range c.All() {
			if it.Category == f {
				require.True(t, members[it.ID], "item %d of category %s missing", it.ID, f)
			}
		}
	}
}

func TestFilterPreservesOrderAndIsIdempotent(t *testing.T) {
	t.Parallel()

	c := defaultCatalog(t)
	first := Apply(c, "residential")
	second := Apply(c, "residential")
	require.Equal(t, []int{1, 2, 5, 7, 9}, ids(first))
	require.Equal(t, first, second)
}

func TestFilterUnknownValueIsEmpty(t *testing.T) {
	t.Parallel()

	c := defaultCatalog(t)
	got := Apply(c, "luxury")
	require.NotNil(t, got)
	require.Empty(t, got)
	require.Empty(t, Apply(c, ""), "an empty filter is not all")
}

func TestEngineSetFilterSameValueIsNoop(t *testing.T) {
	t.Parallel()

	e := NewEngine(defaultCatalog(t))
	require.Equal(t, AllFilter, e.Active())
	require.False(t, e.SetFilter(AllFilter))
	require.Zero(t, e.Generation())

	require.True(t, e.SetFilter("commercial"))
	require.Equal(t, uint64(1), e.Generation())
	before := e.Visible()

	require.False(t, e.SetFilter("commercial"))
	require.Equal(t, uint64(1), e.Generation())
	require.Equal(t, ids(before), ids(e.Visible()))
}

func TestEngineVisibleReturnsCopy(t *testing.T) {
	t.Parallel()

	e := NewEngine(defaultCatalog(t))
	got := e.Visible()
	got[0] = nil
	require.NotNil(t, e.Visible()[0])
}

func TestOptionsAlwaysLeadWithAll(t *testing.T) {
	t.Parallel()

	o := NewOptions("Commercial", "", "residential", "commercial", "all")
	require.Equal(t, []string{"all", "commercial", "residential"}, o.Values())
	require.True(t, o.Known("residential"))
	require.False(t, o.Known("luxury"))
	require.Equal(t, []string{"all"}, Options{}.Values())
}

func TestSelectReplacesAtomically(t *testing.T) {
	t.Parallel()

	v := NewView(defaultCatalog(t), DefaultOptions(), nil)
	var seen []Transition
	v.Observe(func(tr Transition) { seen = append(seen, tr) })

	require.True(t, v.Select(1))
	require.True(t, v.Select(3))

	require.Len(t, seen, 2)
	require.Equal(t, Closed, seen[0].FromState())
	require.Equal(t, Open, seen[0].ToState())
	require.Equal(t, Open, seen[1].FromState(), "replacement must not pass through closed")
	require.Equal(t, Open, seen[1].ToState())
	require.Equal(t, 1, seen[1].From.ID)
	require.Equal(t, 3, seen[1].To.ID)

	item, ok := v.Selected()
	require.True(t, ok)
	require.Equal(t, 3, item.ID)
	require.True(t, v.Catalog().Owns(item), "selection must reference the catalog entry")
}

func TestSelectIgnoresUnknownAndHiddenItems(t *testing.T) {
	t.Parallel()

	v := NewView(defaultCatalog(t), DefaultOptions(), nil)
	require.False(t, v.Select(42))
	require.Equal(t, Closed, v.State())

	v.SetFilter("commercial")
	require.False(t, v.Select(1), "residential item is not in the rendered view")
	require.Equal(t, Closed, v.State())

	require.True(t, v.Select(3))
	require.False(t, v.Select(3), "selecting the open item again changes nothing")
}

func TestCloseIsIdempotent(t *testing.T) {
	t.Parallel()

	v := NewView(defaultCatalog(t), DefaultOptions(), nil)
	calls := 0
	v.Observe(func(Transition) { calls++ })

	require.False(t, v.Close())
	require.Equal(t, Closed, v.State())
	require.Zero(t, calls)

	require.True(t, v.Select(2))
	require.True(t, v.Close())
	require.False(t, v.Close())
	require.Equal(t, Closed, v.State())
	require.Equal(t, 2, calls)
}

func TestFilterChangeClosesDetailFirst(t *testing.T) {
	t.Parallel()

	v := NewView(defaultCatalog(t), DefaultOptions(), nil)
	require.True(t, v.Select(1))
	var seen []Transition
	gen := v.Generation()
	v.Observe(func(tr Transition) {
		require.Equal(t, gen, v.Generation(), "detail closes before the filter switches")
		seen = append(seen, tr)
	})

	require.True(t, v.SetFilter("commercial"))
	require.Equal(t, Closed, v.State())
	require.Len(t, seen, 1)
	require.Equal(t, Open, seen[0].FromState())
	require.Equal(t, Closed, seen[0].ToState())
	require.Equal(t, 1, seen[0].From.ID)
	require.Equal(t, []int{3, 6}, ids(v.Visible()))

	require.True(t, v.Select(3))
	require.False(t, v.SetFilter("commercial"), "re-applying the active filter keeps the detail open")
	require.Equal(t, Open, v.State())
	require.Len(t, seen, 2)
}

func TestActivateContentDoesNotDismiss(t *testing.T) {
	t.Parallel()

	v := NewView(defaultCatalog(t), DefaultOptions(), nil)
	require.True(t, v.Select(4))

	require.False(t, v.Activate(RegionContent, RegionDismiss))
	require.Equal(t, Open, v.State())

	require.True(t, v.Activate(RegionClose, RegionContent, RegionDismiss))
	require.Equal(t, Closed, v.State())

	require.True(t, v.Select(4))
	require.True(t, v.Activate(RegionDismiss))
	require.Equal(t, Closed, v.State())

	require.False(t, v.Activate(), "an empty path does nothing")
}

func TestNavigateAwayClosesAndRecordsDestination(t *testing.T) {
	t.Parallel()

	cases := []struct {
		action Action
		want   Destination
	}{
		{ActionSimilarDesign, DestinationEstimate},
		{ActionDiscussProject, DestinationContact},
	}
	for _, tc := range cases {
		nav := &recordingNavigator{}
		v := NewView(defaultCatalog(t), DefaultOptions(), nav)
		require.True(t, v.Select(6))

		dest, ok := v.NavigateAway(tc.action)
		require.True(t, ok)
		require.Equal(t, tc.want, dest)
		require.Equal(t, Closed, v.State())
		require.Equal(t, []Destination{tc.want}, nav.visited)
	}
}

func TestNavigateAwayObservesCloseBeforeNavigation(t *testing.T) {
	t.Parallel()

	var order []string
	nav := NavigatorFunc(func(d Destination) { order = append(order, "goto "+string(d)) })
	v := NewView(defaultCatalog(t), DefaultOptions(), nav)
	v.Observe(func(tr Transition) { order = append(order, tr.ToState().String()) })

	v.Select(1)
	_, ok := v.NavigateAway(Action("bogus"))
	require.False(t, ok)
	require.Equal(t, Open, v.State())

	v.NavigateAway(ActionSimilarDesign)
	require.Equal(t, []string{"open", "closed", "goto /estimator"}, order)
}

func TestCommercialScenario(t *testing.T) {
	t.Parallel()

	c := defaultCatalog(t)
	var residential, commercial, hospitality int
	for _, it := range c.All() {
		switch it.Category {
		case "residential":
			residential++
		case "commercial":
			commercial++
		case "hospitality":
			hospitality++
		}
	}
	require.Equal(t, 9, c.Len())
	require.Equal(t, []int{5, 2, 2}, []int{residential, commercial, hospitality})

	v := NewView(c, DefaultOptions(), nil)
	require.True(t, v.SetFilter("commercial"))
	visible := v.Visible()
	require.Equal(t, []int{3, 6}, ids(visible))
	for _, it := range visible {
		require.Equal(t, "commercial", it.Category)
	}

	require.True(t, v.Select(visible[0].ID))
	item, ok := v.Selected()
	require.True(t, ok)
	require.Same(t, visible[0], item)

	require.True(t, v.Close())
	require.Equal(t, Closed, v.State())
}

func TestUnknownFilterScenario(t *testing.T) {
	t.Parallel()

	v := NewView(defaultCatalog(t), DefaultOptions(), nil)
	require.True(t, v.SetFilter("luxury"))
	require.False(t, v.Options().Known("luxury"))
	require.Empty(t, v.Visible())
}

func TestSnapshotRoundTrip(t *testing.T) {
	t.Parallel()

	c := defaultCatalog(t)
	v := NewView(c, DefaultOptions(), nil)
	v.SetFilter("hospitality")
	v.Select(8)

	restored := NewView(c, DefaultOptions(), nil)
	restored.Restore(v.Snapshot())
	require.Equal(t, "hospitality", restored.ActiveFilter())
	item, ok := restored.Selected()
	require.True(t, ok)
	require.Equal(t, 8, item.ID)

	stale := NewView(c, DefaultOptions(), nil)
	stale.Restore(Snapshot{Filter: "commercial", SelectedID: 8})
	require.Equal(t, Closed, stale.State(), "an id outside the visible set restores closed")

	gone := NewView(c, DefaultOptions(), nil)
	gone.Restore(Snapshot{SelectedID: 99})
	require.Equal(t, AllFilter, gone.ActiveFilter())
	require.Equal(t, Closed, gone.State())
}

func TestReleaseDropsStateAndIgnoresLaterEvents(t *testing.T) {
	t.Parallel()

	nav := &recordingNavigator{}
	v := NewView(defaultCatalog(t), DefaultOptions(), nav)
	v.SetFilter("residential")
	v.Select(1)

	v.Release()
	require.True(t, v.Released())
	require.Equal(t, Closed, v.State())
	require.Equal(t, AllFilter, v.ActiveFilter())
	require.False(t, v.Select(1))
	require.False(t, v.SetFilter("commercial"))
	require.Empty(t, v.Visible())
	_, ok := v.NavigateAway(ActionDiscussProject)
	require.False(t, ok)
	require.Empty(t, nav.visited)
}

func TestParseRegionAndAction(t *testing.T) {
	t.Parallel()

	r, ok := ParseRegion(" Content ")
	require.True(t, ok)
	require.Equal(t, RegionContent, r)
	_, ok = ParseRegion("card")
	require.False(t, ok)

	a, ok := ParseAction("discuss-project")
	require.True(t, ok)
	require.Equal(t, ActionDiscussProject, a)
	_, ok = ParseAction("buy-now")
	require.False(t, ok)
}

func TestParseSeed(t *testing.T) {
	t.Parallel()

	seed, err := ParseSeed([]byte(`
filters: [all, residential]
projects:
  - id: 10
    title: Lake House
    category: Residential
    location: Shamirpet
    area: 2200 sq.ft
    year: "2025"
    image: projects/lake-house.jpg
`))
	require.NoError(t, err)
	c, opts, err := seed.Build()
	require.NoError(t, err)
	require.Equal(t, []string{"all", "residential"}, opts.Values())
	item, ok := c.Lookup(10)
	require.True(t, ok)
	require.Equal(t, "residential", item.Category)

	_, err = ParseSeed([]byte("projects:\n  - id: 1\n    colour: red\n"))
	require.Error(t, err)
}

func TestSeedWithoutFiltersOffersCatalogCategories(t *testing.T) {
	t.Parallel()

	seed := DefaultSeed()
	seed.Filters = nil
	_, opts, err := seed.Build()
	require.NoError(t, err)
	require.Equal(t, []string{"all", "residential", "commercial", "hospitality"}, opts.Values())
}
