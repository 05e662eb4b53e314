package main

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"casamanduva.com/web/internal/gallery"
	mw "casamanduva.com/web/internal/middleware"
	"casamanduva.com/web/internal/nav"
	"casamanduva.com/web/internal/observability"
)

// httpNavigator turns a view's navigate-away into an HTTP redirect. The
// destination learns which project the visitor came from.
type httpNavigator struct {
	w       http.ResponseWriter
	r       *http.Request
	project int
}

func (n httpNavigator) GoTo(dest gallery.Destination) {
	q := url.Values{}
	q.Set("source", "portfolio")
	if n.project > 0 {
		q.Set("project", strconv.Itoa(n.project))
	}
	mw.Redirect(n.w, n.r, string(dest)+"?"+q.Encode())
}

// mountView builds a fresh view for a full page load and persists it.
func (a *app) mountView(r *http.Request) *gallery.View {
	s := mw.GetSession(r)
	v := gallery.NewView(a.catalog, a.options, nil)
	a.persistOnTransition(s, v)
	persistView(s, v)
	return v
}

// loadView restores the visitor's view from the session. It reports false when
// no view is mounted; the returned view is then released and ignores events.
func (a *app) loadView(r *http.Request, navigator gallery.Navigator) (*gallery.View, bool) {
	s := mw.GetSession(r)
	v := gallery.NewView(a.catalog, a.options, navigator)
	if s.Portfolio == nil {
		v.Release()
		return v, false
	}
	v.Restore(gallery.Snapshot{Filter: s.Portfolio.Filter, SelectedID: s.Portfolio.Selected})
	a.persistOnTransition(s, v)
	return v, true
}

// persistOnTransition keeps the session in step with every selection change,
// so the cookie is current before a navigator writes its redirect.
func (a *app) persistOnTransition(s *mw.SessionData, v *gallery.View) {
	v.Observe(func(gallery.Transition) { persistView(s, v) })
}

func persistView(s *mw.SessionData, v *gallery.View) {
	snap := v.Snapshot()
	s.SetPortfolio(mw.PortfolioState{Filter: snap.Filter, Selected: snap.SelectedID})
}

func (a *app) portfolioView(r *http.Request, v *gallery.View) PortfolioView {
	selected, _ := v.Selected()
	pv := buildPortfolioView(portfolioInput{
		Catalog:  a.catalog,
		Options:  a.options,
		Images:   a.images,
		Filter:   v.ActiveFilter(),
		Selected: selected,
		Lang:     mw.Lang(r),
		T:        a.i18nOrDefault,
	})
	pv.CSRFToken = mw.CSRFToken(r)
	return pv
}

func currentURL(v *gallery.View) string {
	id := 0
	if it, ok := v.Selected(); ok {
		id = it.ID
	}
	return portfolioURL(v.ActiveFilter(), id)
}

// PortfolioHandler renders the full portfolio page. A full page load always
// mounts a fresh view seeded from the filter and project query parameters.
func (a *app) PortfolioHandler(w http.ResponseWriter, r *http.Request) {
	logger := observability.FromContext(r.Context())
	v := a.mountView(r)
	q := r.URL.Query()
	if f := strings.TrimSpace(q.Get("filter")); f != "" {
		v.SetFilter(f)
		persistView(mw.GetSession(r), v)
	}
	if p := q.Get("project"); p != "" {
		if id, err := strconv.Atoi(p); err == nil && v.Select(id) {
			a.metrics.ProjectSelected()
			logger.Debug("portfolio project opened from link", zap.Int("project_id", id))
		}
	}

	pv := a.portfolioView(r, v)
	vm := a.basePage(r, "portfolio.title")
	vm.SEO.Description = a.i18nOrDefault(vm.Lang, "portfolio.subtitle")
	vm.SEO.Keywords = "interior design portfolio, residential interiors, commercial interiors, hospitality interiors, Hyderabad"
	if pv.Modal != nil {
		vm.Breadcrumbs = nav.Append(vm.Breadcrumbs, projectURL(pv.Modal.ID), pv.Modal.Title)
		vm.SEO.OG.Title = pv.Modal.Title
		vm.SEO.OG.Image = pv.Modal.ImageURL
	} else if len(pv.Cards) > 0 {
		vm.SEO.OG.Image = pv.Cards[0].ImageURL
	}
	vm.SEO.AddJSONLD(portfolioJSONLD(a.catalog, a.images, vm.Title, vm.SEO.Description))
	vm.Portfolio = pv
	a.finishSEO(&vm)
	a.renderPage(w, r, "portfolio", vm)
}

// PortfolioFilterHandler applies a filter selection and returns the browser
// fragment. Changing the filter also closes an open detail view.
func (a *app) PortfolioFilterHandler(w http.ResponseWriter, r *http.Request) {
	logger := observability.FromContext(r.Context())
	filter := strings.TrimSpace(r.PostFormValue("filter"))
	if filter == "" {
		filter = gallery.AllFilter
	}
	v, mounted := a.loadView(r, nil)
	if !mounted {
		mw.Redirect(w, r, portfolioPrefix)
		return
	}
	if v.SetFilter(filter) {
		persistView(mw.GetSession(r), v)
		known := a.options.Known(filter)
		a.metrics.FilterChanged(filter, known)
		logger.Debug("portfolio filter changed",
			zap.String("filter", filter),
			zap.Bool("known", known),
			zap.Int("visible", len(v.Visible())),
		)
	}

	if !mw.IsHTMX(r.Context()) {
		http.Redirect(w, r, currentURL(v), http.StatusSeeOther)
		return
	}
	mw.PushURL(w, currentURL(v))
	a.renderTemplate(w, r, "frag_portfolio_browser", a.portfolioView(r, v))
}

// PortfolioProjectHandler opens the detail view for a visible project.
func (a *app) PortfolioProjectHandler(w http.ResponseWriter, r *http.Request) {
	logger := observability.FromContext(r.Context())
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		a.NotFoundHandler(w, r)
		return
	}
	if _, ok := a.catalog.Lookup(id); !ok {
		a.NotFoundHandler(w, r)
		return
	}
	v, mounted := a.loadView(r, nil)
	if !mounted {
		mw.Redirect(w, r, portfolioURL("", id))
		return
	}
	if v.Select(id) {
		a.metrics.ProjectSelected()
		logger.Debug("portfolio project opened", zap.Int("project_id", id))
	}
	if it, ok := v.Selected(); !ok || it.ID != id {
		// not part of the visible set
		a.NotFoundHandler(w, r)
		return
	}

	if !mw.IsHTMX(r.Context()) {
		http.Redirect(w, r, currentURL(v), http.StatusSeeOther)
		return
	}
	mw.PushURL(w, currentURL(v))
	a.renderTemplate(w, r, "frag_portfolio_modal", a.portfolioView(r, v))
}

// PortfolioDismissHandler dispatches an activation inside the detail overlay.
// The form field "path" lists the regions from innermost outwards, e.g.
// "content,dismiss" for a click inside the content box.
func (a *app) PortfolioDismissHandler(w http.ResponseWriter, r *http.Request) {
	logger := observability.FromContext(r.Context())
	if err := r.ParseForm(); err != nil {
		mw.WriteError(w, r, http.StatusBadRequest, "invalid form")
		return
	}
	path, ok := parseRegionPath(r.PostForm["path"])
	if !ok {
		mw.WriteError(w, r, http.StatusBadRequest, "invalid activation path")
		return
	}
	v, mounted := a.loadView(r, nil)
	if !mounted {
		mw.Redirect(w, r, portfolioPrefix)
		return
	}
	closed := v.Activate(path...)
	a.metrics.Dismissed(closed)
	logger.Debug("portfolio overlay activation",
		zap.Stringers("path", path),
		zap.Bool("closed", closed),
	)

	if !mw.IsHTMX(r.Context()) {
		http.Redirect(w, r, currentURL(v), http.StatusSeeOther)
		return
	}
	if !closed {
		// contained: htmx does not swap on 204
		w.WriteHeader(http.StatusNoContent)
		return
	}
	mw.PushURL(w, currentURL(v))
	a.renderTemplate(w, r, "frag_portfolio_modal", a.portfolioView(r, v))
}

// PortfolioActionHandler leaves the detail view for the action's destination.
// Closing and navigating happen in one step; the redirect is written by the
// navigator.
func (a *app) PortfolioActionHandler(w http.ResponseWriter, r *http.Request) {
	logger := observability.FromContext(r.Context())
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		a.NotFoundHandler(w, r)
		return
	}
	action, ok := gallery.ParseAction(chi.URLParam(r, "action"))
	if !ok {
		a.NotFoundHandler(w, r)
		return
	}
	if _, ok := a.catalog.Lookup(id); !ok {
		a.NotFoundHandler(w, r)
		return
	}
	v, mounted := a.loadView(r, httpNavigator{w: w, r: r, project: id})
	if !mounted {
		mw.Redirect(w, r, portfolioPrefix)
		return
	}
	if it, open := v.Selected(); !open || it.ID != id {
		v.Select(id)
	}
	dest, _ := v.NavigateAway(action)
	a.metrics.NavigatedAway(string(dest))
	logger.Info("portfolio action",
		zap.Int("project_id", id),
		zap.String("action", string(action)),
		zap.String("destination", string(dest)),
	)
}

func parseRegionPath(values []string) ([]gallery.Region, bool) {
	var path []gallery.Region
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if strings.TrimSpace(part) == "" {
				continue
			}
			region, ok := gallery.ParseRegion(part)
			if !ok {
				return nil, false
			}
			path = append(path, region)
		}
	}
	return path, len(path) > 0
}
