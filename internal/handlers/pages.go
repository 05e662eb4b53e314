// Package handlers holds the view models shared by every page rendered with
// the site layout.
package handlers

import (
	"html/template"

	"casamanduva.com/web/internal/nav"
	"casamanduva.com/web/internal/seo"
)

// PageData is the view model for the shared layout. Body holds the rendered
// page template.
type PageData struct {
	Title     string
	Lang      string
	SEO       seo.Meta
	Analytics Analytics

	Path        string
	Nav         []nav.RenderedItem
	Breadcrumbs []nav.Crumb
	CSRFToken   string
	Year        int

	Body template.HTML

	// Optional per-page view model payloads
	Home      *HomeData
	Portfolio any
	Estimator any
	Content   any
}
