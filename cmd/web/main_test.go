package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"casamanduva.com/web/internal/config"
	"casamanduva.com/web/internal/status"
	"casamanduva.com/web/internal/testutil"
)

// newTestApp builds the app the way run() does, pointed at the repo assets.
func newTestApp(t *testing.T, logger *zap.Logger) *app {
	t.Helper()
	cfg, err := config.Load(config.WithEnvMap(map[string]string{
		"CASA_WEB_ENV":            "test",
		"CASA_WEB_TEMPLATES_DIR":  "../../templates",
		"CASA_WEB_PUBLIC_DIR":     "../../public",
		"CASA_WEB_CONTENT_DIR":    "../../content",
		"CASA_WEB_LOCALES_DIR":    "../../locales",
		"CASA_WEB_PREPARE_IMAGES": "false",
		"CASA_WEB_BASE_URL":       "https://casamanduva.test",
	}))
	require.NoError(t, err)
	if logger == nil {
		logger = zaptest.NewLogger(t)
	}
	a, err := newApp(cfg, logger)
	require.NoError(t, err)
	return a
}

func TestHealthzOK(t *testing.T) {
	srv := newTestApp(t, nil).routes()
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Contains(t, rec.Body.String(), `"state":"ok"`)
}

func TestHealthSummaryIsCached(t *testing.T) {
	a := newTestApp(t, nil)
	first := a.health.Run(context.Background())
	second := a.health.Run(context.Background())
	require.Equal(t, status.StateOK, first.State)
	require.Equal(t, first.CheckedAt, second.CheckedAt, "summary within the TTL is reused")
}

func TestHomeRendersSolutionsAndStats(t *testing.T) {
	b := testutil.NewBrowser(t, newTestApp(t, nil).routes())
	rec := b.Get("/", false)
	require.Equal(t, http.StatusOK, rec.Code)
	doc := testutil.ParseHTML(t, rec.Body.Bytes())

	require.Equal(t, 15, doc.Find(".solutions-grid .solution").Length())
	require.Equal(t, 4, doc.Find(".stats .stat").Length())
	require.Equal(t, 1, doc.Find(".solution[data-key='modular-kitchen'] svg").Length())
	require.Equal(t, "CASAMANDUVA", strings.TrimSpace(doc.Find(".brand").Text()))
	require.GreaterOrEqual(t, doc.Find(`script[type="application/ld+json"]`).Length(), 3)
	require.Contains(t, rec.Body.String(), "HomeAndConstructionBusiness")
}

func TestHomeLocalizedNav(t *testing.T) {
	b := testutil.NewBrowser(t, newTestApp(t, nil).routes())
	rec := b.Get("/?hl=hi", false)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "hi", rec.Header().Get("Content-Language"))
	doc := testutil.ParseHTML(t, rec.Body.Bytes())
	lang, _ := doc.Find("html").Attr("lang")
	require.Equal(t, "hi", lang)
	require.Equal(t, 2, doc.Find(`link[rel="alternate"][hreflang]`).Length())
}

func TestSessionMiddlewareSetsCookie(t *testing.T) {
	b := testutil.NewBrowser(t, newTestApp(t, nil).routes())
	rec := b.Get("/", false)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, b.Cookies, "CASA_WEB_SESSION")
	require.Contains(t, b.Cookies, "csrf_token")
}

func TestHTMXPostRequiresCSRF(t *testing.T) {
	srv := newTestApp(t, nil).routes()
	req := httptest.NewRequest(http.MethodPost, "/portfolio/filter", strings.NewReader("filter=commercial"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestNotFoundRendersPage(t *testing.T) {
	b := testutil.NewBrowser(t, newTestApp(t, nil).routes())
	rec := b.Get("/no-such-page", false)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Contains(t, testutil.ParseHTML(t, rec.Body.Bytes()).Find("h1").Text(), "Page not found")
}

func TestContactRendersMarkdown(t *testing.T) {
	b := testutil.NewBrowser(t, newTestApp(t, nil).routes())
	rec := b.Get("/contact?project=3", false)
	require.Equal(t, http.StatusOK, rec.Code)
	doc := testutil.ParseHTML(t, rec.Body.Bytes())

	require.Equal(t, "Contact Us", strings.TrimSpace(doc.Find(".page-head h1").Text()))
	href, ok := doc.Find("article.prose a").Last().Attr("href")
	require.True(t, ok)
	require.Equal(t, "/estimator", href)
	require.Contains(t, doc.Find(".contact-project").Text(), "Tech Startup Office")
}

func TestEstimatorPrefillFromProject(t *testing.T) {
	b := testutil.NewBrowser(t, newTestApp(t, nil).routes())
	rec := b.Get("/estimator?source=portfolio&project=2", false)
	require.Equal(t, http.StatusOK, rec.Code)
	doc := testutil.ParseHTML(t, rec.Body.Bytes())

	require.Contains(t, doc.Find(".estimate-inspiration").Text(), "Luxury 3BHK Apartment")
	source, _ := doc.Find(`input[name="source"]`).Attr("value")
	require.Equal(t, "portfolio", source)
	location, _ := doc.Find(`input[name="location"]`).Attr("value")
	require.Equal(t, "Gachibowli", location)
}

func TestEstimatorSubmitAccepted(t *testing.T) {
	b := testutil.NewBrowser(t, newTestApp(t, nil).routes())
	b.Get("/estimator", false)

	form := url.Values{
		"name":          {"Asha"},
		"phone":         {"+91 98490 12345"},
		"email":         {"asha@example.com"},
		"location":      {"Kondapur"},
		"area":          {"1200"},
		"bhkType":       {"2bhk"},
		"packageType":   {"premium"},
		"selectedRooms": {"kitchen", "living"},
	}
	rec := b.Post("/estimator", form, true)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Equal(t, "estimate-submitted", rec.Header().Get("HX-Trigger"))
	doc := testutil.ParseHTML(t, rec.Body.Bytes())

	require.True(t, strings.HasPrefix(strings.TrimSpace(doc.Find(".estimate-reference").Text()), "EQ-"))
	require.Equal(t, "₹21,60,000", strings.TrimSpace(doc.Find(".estimate-budget").Text()))
	require.Zero(t, doc.Find("html").Length())
}

func TestEstimatorSubmitInvalid(t *testing.T) {
	b := testutil.NewBrowser(t, newTestApp(t, nil).routes())
	b.Get("/estimator", false)

	rec := b.Post("/estimator", url.Values{"phone": {"123"}, "area": {"900"}}, true)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	doc := testutil.ParseHTML(t, rec.Body.Bytes())
	require.Equal(t, 1, doc.Find(`.field-error[data-field="name"]`).Length())
	require.Equal(t, 1, doc.Find(`.field-error[data-field="phone"]`).Length())
	require.Zero(t, doc.Find(`.field-error[data-field="area"]`).Length())
	area, _ := doc.Find(`input[name="area"]`).Attr("value")
	require.Equal(t, "900", area)
}

func TestMetricsEndpoint(t *testing.T) {
	b := testutil.NewBrowser(t, newTestApp(t, nil).routes())
	b.Get("/portfolio", false)
	b.Post("/portfolio/filter", url.Values{"filter": {"commercial"}}, true)

	rec := b.Get("/metrics", false)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `casa_web_portfolio_filter_changes_total{filter="commercial"} 1`)
	require.Contains(t, rec.Body.String(), "casa_web_http_request_duration_seconds")
}
