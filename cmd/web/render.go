package main

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"casamanduva.com/web/internal/format"
	"casamanduva.com/web/internal/handlers"
	mw "casamanduva.com/web/internal/middleware"
	"casamanduva.com/web/internal/motion"
	"casamanduva.com/web/internal/nav"
	"casamanduva.com/web/internal/observability"
	"casamanduva.com/web/internal/seo"
)

func (a *app) funcMap() template.FuncMap {
	return template.FuncMap{
		"now": time.Now,
		"t":   a.i18nOrDefault,
		"stagger": func(preset string, i int) template.CSS {
			s, ok := motion.Preset(preset)
			if !ok {
				return ""
			}
			return template.CSS(s.Style(i))
		},
		"delay": func(d time.Duration) template.CSS {
			return template.CSS(fmt.Sprintf("animation-delay: %gs", d.Seconds()))
		},
		"jsonld":        func(s string) template.JS { return template.JS(s) },
		"filterLabel":   format.FilterLabel,
		"categoryLabel": format.CategoryLabel,
		"inr":           format.FmtINR,
		"add":           func(x, y int) int { return x + y },
		"csrfField":     func() string { return mw.CSRFFormField },
	}
}

// parseTemplates recursively discovers and parses all .tmpl files under dir.
// ParseGlob doesn't support **.
func parseTemplates(dir string, funcMap template.FuncMap) (*template.Template, error) {
	var files []string
	if err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.HasSuffix(d.Name(), ".tmpl") {
			files = append(files, path)
		}
		return nil
	}); err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no templates found under %s", dir)
	}
	return template.New("_root").Funcs(funcMap).ParseFiles(files...)
}

// templates returns the cached set, or a fresh parse in dev mode.
func (a *app) templates() (*template.Template, error) {
	if a.devMode {
		return parseTemplates(a.templatesDir, a.funcMap())
	}
	if a.tmpl == nil {
		return nil, fmt.Errorf("templates not initialized")
	}
	return a.tmpl, nil
}

// renderPage executes "page_<name>" into the layout body and then the "base"
// layout. Output is buffered so a failing template never leaves a partial page.
func (a *app) renderPage(w http.ResponseWriter, r *http.Request, name string, vm handlers.PageData) {
	a.renderPageStatus(w, r, http.StatusOK, name, vm)
}

func (a *app) renderPageStatus(w http.ResponseWriter, r *http.Request, code int, name string, vm handlers.PageData) {
	t, err := a.templates()
	if err != nil {
		a.serverError(w, r, "template parse error", err)
		return
	}
	var body bytes.Buffer
	if err := t.ExecuteTemplate(&body, "page_"+name, vm); err != nil {
		a.serverError(w, r, "template exec error", err, zap.String("template", "page_"+name))
		return
	}
	vm.Body = template.HTML(body.String())
	var out bytes.Buffer
	if err := t.ExecuteTemplate(&out, "base", vm); err != nil {
		a.serverError(w, r, "template exec error", err, zap.String("template", "base"))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	_, _ = out.WriteTo(w)
}

// renderTemplate executes a single named template, typically an htmx fragment.
func (a *app) renderTemplate(w http.ResponseWriter, r *http.Request, name string, data any) {
	a.renderTemplateStatus(w, r, http.StatusOK, name, data)
}

func (a *app) renderTemplateStatus(w http.ResponseWriter, r *http.Request, code int, name string, data any) {
	t, err := a.templates()
	if err != nil {
		a.serverError(w, r, "template parse error", err)
		return
	}
	var out bytes.Buffer
	if err := t.ExecuteTemplate(&out, name, data); err != nil {
		a.serverError(w, r, "template exec error", err, zap.String("template", name))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	_, _ = out.WriteTo(w)
}

func (a *app) serverError(w http.ResponseWriter, r *http.Request, msg string, err error, fields ...zap.Field) {
	fields = append(fields, zap.Error(err))
	observability.FromContext(r.Context()).Error(msg, fields...)
	http.Error(w, msg, http.StatusInternalServerError)
}

// i18nOrDefault translates key, falling back to the key itself.
func (a *app) i18nOrDefault(lang, key string) string {
	if a.bundle == nil {
		return key
	}
	return a.bundle.T(lang, key)
}

// basePage fills the layout fields every page shares.
func (a *app) basePage(r *http.Request, titleKey string) handlers.PageData {
	lang := mw.Lang(r)
	title := a.i18nOrDefault(lang, titleKey)
	path := r.URL.Path
	vm := handlers.PageData{
		Title:       title,
		Lang:        lang,
		Analytics:   a.analytics,
		Path:        path,
		Nav:         nav.Build(path),
		Breadcrumbs: nav.Breadcrumbs(path),
		CSRFToken:   mw.CSRFToken(r),
		Year:        a.now().Year(),
	}
	vm.SEO.Title = fmt.Sprintf("%s | %s", title, siteName)
	vm.SEO.Canonical = a.absoluteURL(path)
	vm.SEO.Alternates = a.buildAlternates(r)
	return vm
}

// finishSEO completes Open Graph defaults and the breadcrumb JSON-LD.
func (a *app) finishSEO(vm *handlers.PageData) {
	if len(vm.Breadcrumbs) > 1 {
		items := make([]seo.BreadcrumbItem, 0, len(vm.Breadcrumbs))
		for _, c := range vm.Breadcrumbs {
			name := c.Label
			if c.LabelKey != "" {
				name = a.i18nOrDefault(vm.Lang, c.LabelKey)
			}
			items = append(items, seo.BreadcrumbItem{Name: name, Item: a.absoluteURL(c.Href)})
		}
		vm.SEO.AddJSONLD(seo.BreadcrumbList(items))
	}
	vm.SEO = vm.SEO.Complete(siteName)
}

// buildAlternates emits one hreflang link per supported language.
func (a *app) buildAlternates(r *http.Request) []seo.Alternate {
	if a.bundle == nil {
		return nil
	}
	langs := a.bundle.Supported()
	out := make([]seo.Alternate, 0, len(langs))
	for _, l := range langs {
		q := r.URL.Query()
		q.Set("hl", l)
		out = append(out, seo.Alternate{Lang: l, Href: a.absoluteURL(r.URL.Path + "?" + q.Encode())})
	}
	return out
}
