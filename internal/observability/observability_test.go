package observability

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewLoggerFallsBackToInfo(t *testing.T) {
	t.Parallel()

	logger, err := NewLogger("verbose")
	require.NoError(t, err)
	require.True(t, logger.Core().Enabled(zap.InfoLevel))
	require.False(t, logger.Core().Enabled(zap.DebugLevel))

	debug, err := NewLogger("DEBUG")
	require.NoError(t, err)
	require.True(t, debug.Core().Enabled(zap.DebugLevel))
}

func TestLoggerContextRoundTrip(t *testing.T) {
	t.Parallel()

	require.NotNil(t, FromContext(context.Background()))
	logger := zap.NewExample()
	ctx := WithLogger(context.Background(), logger)
	require.Same(t, logger, FromContext(ctx))
}

func TestMetricsCollapseUnknownFilters(t *testing.T) {
	t.Parallel()

	m := NewMetrics()
	m.FilterChanged("commercial", true)
	m.FilterChanged("luxury", false)
	m.FilterChanged("../../etc", false)

	require.Equal(t, 1.0, testutil.ToFloat64(m.filterChanges.WithLabelValues("commercial")))
	require.Equal(t, 2.0, testutil.ToFloat64(m.filterChanges.WithLabelValues("unknown")))
}

func TestMetricsHandlerExposesCounters(t *testing.T) {
	t.Parallel()

	m := NewMetrics()
	m.ProjectSelected()
	m.NavigatedAway("/estimator")
	m.Enquiry("accepted")
	m.ObserveRequest(http.MethodGet, "/portfolio", http.StatusOK, 20*time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	require.True(t, strings.Contains(body, "casa_web_portfolio_selections_total 1"))
	require.Contains(t, body, `casa_web_portfolio_navigations_total{destination="/estimator"} 1`)
	require.Contains(t, body, "casa_web_http_request_duration_seconds_bucket")
}

func TestNilMetricsIsSafe(t *testing.T) {
	t.Parallel()

	var m *Metrics
	m.FilterChanged("all", true)
	m.ProjectSelected()
	m.Dismissed(true)
	m.ObserveRequest(http.MethodGet, "", 200, time.Second)
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
}
