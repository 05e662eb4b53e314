package main

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"casamanduva.com/web/internal/cms"
	"casamanduva.com/web/internal/config"
	"casamanduva.com/web/internal/gallery"
	"casamanduva.com/web/internal/handlers"
	"casamanduva.com/web/internal/i18n"
	"casamanduva.com/web/internal/media"
	mw "casamanduva.com/web/internal/middleware"
	"casamanduva.com/web/internal/observability"
	"casamanduva.com/web/internal/solutions"
	"casamanduva.com/web/internal/status"
)

const (
	siteName        = "CASAMANDUVA"
	assetPrefix     = "/assets"
	portfolioPrefix = "/portfolio"
)

// app carries the process-wide, read-only dependencies of the handlers.
type app struct {
	cfg    config.Config
	logger *zap.Logger

	templatesDir string
	devMode      bool
	tmpl         *template.Template

	bundle    *i18n.Bundle
	catalog   *gallery.Catalog
	options   gallery.Options
	images    *media.Resolver
	solutions []solutions.Solution
	content   *cms.Store
	metrics   *observability.Metrics
	health    *status.Checker
	analytics handlers.Analytics

	now func() time.Time
}

// newApp loads every dependency named by cfg. Templates are parsed once unless
// the environment is dev, in which case they are reparsed per request.
func newApp(cfg config.Config, logger *zap.Logger) (*app, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	a := &app{
		cfg:          cfg,
		logger:       logger,
		templatesDir: cfg.TemplatesDir,
		devMode:      cfg.IsDev(),
		analytics:    handlers.NewAnalytics(cfg.AnalyticsID, cfg.IsDev()),
		now:          time.Now,
	}

	bundle, err := i18n.Load(cfg.LocalesDir, cfg.DefaultLocale, cfg.SupportedLocales)
	if err != nil {
		return nil, fmt.Errorf("load locales: %w", err)
	}
	a.bundle = bundle

	seed := gallery.DefaultSeed()
	if cfg.CatalogFile != "" {
		if seed, err = gallery.LoadSeedFile(cfg.CatalogFile); err != nil {
			return nil, err
		}
	}
	if a.catalog, a.options, err = seed.Build(); err != nil {
		return nil, fmt.Errorf("build catalog: %w", err)
	}

	assetDir := filepath.Join(cfg.PublicDir, "assets")
	a.images = media.NewResolver(assetDir, assetPrefix)
	if cfg.PrepareImages {
		refs := make([]string, 0, a.catalog.Len())
		for _, it := range a.catalog.All() {
			refs = append(refs, it.ImageRef)
		}
		n, err := a.images.Prepare(refs)
		if err != nil {
			// originals are still served
			logger.Warn("prepare images", zap.Error(err))
		} else if n > 0 {
			logger.Info("prepared image derivatives", zap.Int("count", n))
		}
	}

	if a.solutions, err = solutions.Load(filepath.Join(assetDir, "icons", "solutions")); err != nil {
		return nil, fmt.Errorf("load solution icons: %w", err)
	}

	a.content = cms.NewStore(cfg.ContentDir, cms.WithCacheTTL(cfg.ContentCacheTTL))
	a.metrics = observability.NewMetrics()

	if !a.devMode {
		ts, err := parseTemplates(a.templatesDir, a.funcMap())
		if err != nil {
			return nil, fmt.Errorf("parse templates: %w", err)
		}
		a.tmpl = ts
	}

	a.health = status.NewChecker(2 * time.Second)
	a.health.SetCacheTTL(cfg.HealthCacheTTL)
	a.health.Register("catalog", func(context.Context) error {
		if a.catalog.Len() == 0 {
			return errors.New("catalog is empty")
		}
		return nil
	})
	a.health.Register("templates", func(context.Context) error {
		_, err := a.templates()
		return err
	})
	a.health.Register("content", func(context.Context) error {
		if _, err := os.Stat(cfg.ContentDir); err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
		return nil
	})
	return a, nil
}

// routes builds the router. Middleware order matters: the session must exist
// before locale, CSRF and view-scope handling read it.
func (a *app) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	// If deployed behind a trusted reverse proxy/load balancer, RealIP will use
	// X-Forwarded-For to determine the client IP.
	r.Use(chimw.RealIP)
	r.Use(mw.Logger(a.logger, a.metrics))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))

	r.Method(http.MethodGet, "/healthz", a.health.Handler())
	r.Method(http.MethodGet, "/metrics", a.metrics.Handler())
	r.Handle(assetPrefix+"/*", mw.AssetsWithCache(filepath.Join(a.cfg.PublicDir, "assets"), assetPrefix, assetMaxAge(a.devMode)))

	r.Group(func(r chi.Router) {
		r.Use(mw.HTMX)
		r.Use(mw.Session)
		r.Use(mw.Locale(a.bundle))
		r.Use(mw.CSRF)
		r.Use(mw.VaryLocale)
		r.Use(mw.ViewScope(portfolioPrefix))

		r.Get("/", a.HomeHandler)
		r.Route(portfolioPrefix, func(r chi.Router) {
			r.Get("/", a.PortfolioHandler)
			r.Post("/filter", a.PortfolioFilterHandler)
			r.Post("/dismiss", a.PortfolioDismissHandler)
			r.Get("/projects/{id}", a.PortfolioProjectHandler)
			r.Post("/projects/{id}/actions/{action}", a.PortfolioActionHandler)
		})
		r.Get("/estimator", a.EstimatorHandler)
		r.Post("/estimator", a.EstimatorSubmitHandler)
		r.Get("/contact", a.ContactHandler)
	})

	r.NotFound(a.NotFoundHandler)
	return r
}

func assetMaxAge(dev bool) int {
	if dev {
		return 0
	}
	return 3600
}

// absoluteURL joins the configured base URL with path.
func (a *app) absoluteURL(path string) string {
	base := strings.TrimRight(a.cfg.BaseURL, "/")
	if path == "" {
		path = "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return base + path
}
