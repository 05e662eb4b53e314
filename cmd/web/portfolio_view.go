package main

import (
	"fmt"
	"html/template"
	"net/url"
	"strconv"

	"casamanduva.com/web/internal/format"
	"casamanduva.com/web/internal/gallery"
	"casamanduva.com/web/internal/media"
	"casamanduva.com/web/internal/motion"
	"casamanduva.com/web/internal/seo"
)

// PortfolioView is the render model for the portfolio page and its fragments.
type PortfolioView struct {
	Lang      string
	Active    string
	Tabs      []PortfolioTab
	Cards     []ProjectCard
	Empty     bool
	EmptyText string
	Modal     *ProjectDetail

	// CSRFToken is request-bound and set by the handler after building.
	CSRFToken string
}

// PortfolioTab is one filter control.
type PortfolioTab struct {
	Value  string
	Label  string
	Active bool
}

// ProjectCard is one grid entry.
type ProjectCard struct {
	ID            int
	Title         string
	Category      string
	CategoryLabel string
	Location      string
	Area          string
	Year          string
	ImageURL      string
	Href          string
	DetailURL     string
	Style         template.CSS
}

// ProjectDetail is the open detail overlay.
type ProjectDetail struct {
	ID            int
	Title         string
	CategoryLabel string
	Location      string
	Area          string
	Year          string
	ImageURL      string
	Description   string
	Actions       []ProjectAction
}

// ProjectAction is a follow-up button in the detail overlay.
type ProjectAction struct {
	Action  string
	Label   string
	URL     string
	Primary bool
}

// portfolioInput is everything the render model depends on.
type portfolioInput struct {
	Catalog  *gallery.Catalog
	Options  gallery.Options
	Images   *media.Resolver
	Filter   string
	Selected *gallery.Item
	Lang     string
	T        func(lang, key string) string
}

// buildPortfolioView derives the render model from the catalog, the active
// filter, the open item and the language. It performs no I/O, so equal inputs
// yield equal output.
func buildPortfolioView(in portfolioInput) PortfolioView {
	t := in.T
	if t == nil {
		t = func(_, key string) string { return key }
	}
	active := in.Filter
	if active == "" {
		active = gallery.AllFilter
	}
	v := PortfolioView{Lang: in.Lang, Active: active}

	for _, value := range in.Options.Values() {
		v.Tabs = append(v.Tabs, PortfolioTab{
			Value:  value,
			Label:  translatedOr(t, in.Lang, "filter."+value, format.FilterLabel(value)),
			Active: value == active,
		})
	}

	visible := gallery.Apply(in.Catalog, active)
	v.Cards = make([]ProjectCard, 0, len(visible))
	for i, it := range visible {
		v.Cards = append(v.Cards, ProjectCard{
			ID:            it.ID,
			Title:         it.Title,
			Category:      it.Category,
			CategoryLabel: translatedOr(t, in.Lang, "filter."+it.Category, format.CategoryLabel(it.Category)),
			Location:      it.Location,
			Area:          it.Area,
			Year:          it.Year,
			ImageURL:      imageURL(in.Images, it.ImageRef, media.Card),
			Href:          portfolioURL(active, it.ID),
			DetailURL:     projectURL(it.ID),
			Style:         template.CSS(motion.PortfolioCards.Style(i)),
		})
	}
	if len(v.Cards) == 0 {
		v.Empty = true
		v.EmptyText = t(in.Lang, "portfolio.empty")
	}

	if in.Selected != nil {
		v.Modal = buildProjectDetail(in, t)
	}
	return v
}

func buildProjectDetail(in portfolioInput, t func(lang, key string) string) *ProjectDetail {
	it := in.Selected
	label := translatedOr(t, in.Lang, "filter."+it.Category, format.CategoryLabel(it.Category))
	d := &ProjectDetail{
		ID:            it.ID,
		Title:         it.Title,
		CategoryLabel: label,
		Location:      it.Location,
		Area:          it.Area,
		Year:          it.Year,
		ImageURL:      imageURL(in.Images, it.ImageRef, media.Full),
		Description: fmt.Sprintf("This %s project showcases our commitment to design excellence. "+
			"Every detail has been carefully considered to create a space that is both beautiful and functional.", label),
	}
	for i, action := range []gallery.Action{gallery.ActionSimilarDesign, gallery.ActionDiscussProject} {
		d.Actions = append(d.Actions, ProjectAction{
			Action:  string(action),
			Label:   t(in.Lang, "portfolio.action."+string(action)),
			URL:     actionURL(it.ID, action),
			Primary: i == 0,
		})
	}
	return d
}

// portfolioJSONLD describes the whole catalog as a CollectionPage.
func portfolioJSONLD(c *gallery.Catalog, images *media.Resolver, name, description string) map[string]any {
	works := make([]seo.Work, 0, c.Len())
	for _, it := range c.All() {
		works = append(works, seo.Work{
			Name:        it.Title,
			Description: fmt.Sprintf("%s, %s", it.Location, it.Area),
			Image:       imageURL(images, it.ImageRef, media.Card),
		})
	}
	return seo.CollectionPage(name, description, works)
}

func translatedOr(t func(lang, key string) string, lang, key, fallback string) string {
	if s := t(lang, key); s != "" && s != key {
		return s
	}
	return fallback
}

func imageURL(r *media.Resolver, ref string, v media.Variant) string {
	if r == nil {
		return ref
	}
	return r.URL(ref, v)
}

// portfolioURL is the shareable address of a view state.
func portfolioURL(filter string, selected int) string {
	q := url.Values{}
	if filter != "" && filter != gallery.AllFilter {
		q.Set("filter", filter)
	}
	if selected > 0 {
		q.Set("project", strconv.Itoa(selected))
	}
	if len(q) == 0 {
		return portfolioPrefix
	}
	return portfolioPrefix + "?" + q.Encode()
}

func projectURL(id int) string {
	return portfolioPrefix + "/projects/" + strconv.Itoa(id)
}

func actionURL(id int, action gallery.Action) string {
	return projectURL(id) + "/actions/" + string(action)
}
