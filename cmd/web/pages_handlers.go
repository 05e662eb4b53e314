package main

import (
	"errors"
	"net/http"
	"strconv"

	"casamanduva.com/web/internal/cms"
	"casamanduva.com/web/internal/handlers"
	"casamanduva.com/web/internal/media"
	"casamanduva.com/web/internal/seo"
)

// serviceAreas are the neighbourhoods named in the business JSON-LD.
var serviceAreas = []string{"Jubilee Hills", "Banjara Hills", "Gachibowli", "HITEC City", "Kondapur", "Madhapur"}

// HomeHandler renders the landing page.
func (a *app) HomeHandler(w http.ResponseWriter, r *http.Request) {
	vm := a.basePage(r, "home.title")
	vm.SEO.Description = a.i18nOrDefault(vm.Lang, "home.hero.subtitle")
	vm.SEO.Keywords = "interior designer Hyderabad, modular kitchen, wardrobe, home interiors"
	if items := a.catalog.All(); len(items) > 0 {
		vm.SEO.OG.Image = a.images.URL(items[0].ImageRef, media.Card)
	}
	base := a.absoluteURL("/")
	vm.SEO.AddJSONLD(seo.Organization(siteName, base, a.absoluteURL(assetPrefix+"/img/logo.svg")))
	vm.SEO.AddJSONLD(seo.LocalBusiness(siteName, base, "Hyderabad", "Telangana", serviceAreas))
	vm.SEO.AddJSONLD(seo.WebSite(siteName, base))
	home := handlers.BuildHomeData(a.solutions)
	vm.Home = &home
	a.finishSEO(&vm)
	a.renderPage(w, r, "home", vm)
}

// ContactView is the render model for the contact page.
type ContactView struct {
	Page    cms.Page
	Project string
}

// ContactHandler renders the contact page from local content.
func (a *app) ContactHandler(w http.ResponseWriter, r *http.Request) {
	vm := a.basePage(r, "contact.title")
	page, err := a.content.Page(r.Context(), "pages", "contact", vm.Lang)
	if err != nil {
		if errors.Is(err, cms.ErrNotFound) {
			a.NotFoundHandler(w, r)
			return
		}
		a.serverError(w, r, "content error", err)
		return
	}
	cv := ContactView{Page: page}
	if id, err := strconv.Atoi(r.URL.Query().Get("project")); err == nil {
		if it, ok := a.catalog.Lookup(id); ok {
			cv.Project = it.Title
		}
	}
	if page.Title != "" {
		vm.Title = page.Title
	}
	vm.SEO.Title = firstNonEmpty(page.SEO.Title, vm.Title+" | "+siteName)
	vm.SEO.Description = firstNonEmpty(page.SEO.Description, page.Summary)
	vm.SEO.OG.Image = page.SEO.OGImage
	vm.SEO.AddJSONLD(seo.LocalBusiness(siteName, a.absoluteURL("/"), "Hyderabad", "Telangana", serviceAreas))
	vm.Content = cv
	a.finishSEO(&vm)
	a.renderPage(w, r, "contact", vm)
}

// NotFoundHandler renders the 404 page.
func (a *app) NotFoundHandler(w http.ResponseWriter, r *http.Request) {
	vm := a.basePage(r, "notfound.title")
	vm.SEO.Robots = "noindex"
	a.finishSEO(&vm)
	a.renderPageStatus(w, r, http.StatusNotFound, "notfound", vm)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
