package middleware

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func chain(h http.Handler, mws ...func(http.Handler) http.Handler) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

func cookieNamed(cookies []*http.Cookie, name string) *http.Cookie {
	for _, c := range cookies {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestSessionRoundTripsPortfolioState(t *testing.T) {
	h := chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s := GetSession(r)
		if r.URL.Query().Get("set") != "" {
			s.SetPortfolio(PortfolioState{Filter: "commercial", Selected: 3})
		}
		if s.Portfolio != nil {
			_, _ = w.Write([]byte(s.Portfolio.Filter))
		}
	}), Session)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/portfolio?set=1", nil))
	cookie := cookieNamed(rec.Result().Cookies(), sessionCookieName)
	require.NotNil(t, cookie)

	req := httptest.NewRequest(http.MethodGet, "/portfolio", nil)
	req.AddCookie(cookie)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, "commercial", rec.Body.String())
	require.Nil(t, cookieNamed(rec.Result().Cookies(), sessionCookieName), "unchanged session is not rewritten")
}

func TestSessionRejectsTamperedCookie(t *testing.T) {
	var seen *SessionData
	h := Session(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetSession(r)
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "eyJpZCI6ImV2aWwifQ.AAAA"})
	h.ServeHTTP(httptest.NewRecorder(), req)
	require.NotEqual(t, "evil", seen.ID)
	require.NotEmpty(t, seen.ID)
}

func TestCSRFRequiresMatchingToken(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNoContent) })
	h := chain(ok, HTMX, Session, CSRF)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	session := cookieNamed(rec.Result().Cookies(), sessionCookieName)
	csrf := cookieNamed(rec.Result().Cookies(), csrfCookieName)
	require.NotNil(t, session)
	require.NotNil(t, csrf)

	post := func(form url.Values, header string) int {
		req := httptest.NewRequest(http.MethodPost, "/portfolio/filter", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		if header != "" {
			req.Header.Set(csrfHeaderName, header)
		}
		req.AddCookie(session)
		req.AddCookie(csrf)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	require.Equal(t, http.StatusForbidden, post(url.Values{"filter": {"all"}}, ""))
	require.Equal(t, http.StatusForbidden, post(url.Values{}, "wrong"))
	require.Equal(t, http.StatusNoContent, post(url.Values{}, csrf.Value))
	require.Equal(t, http.StatusNoContent, post(url.Values{CSRFFormField: {csrf.Value}}, ""))
}

func TestViewScopeReleasesOutsidePortfolio(t *testing.T) {
	var state *PortfolioState
	h := chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s := GetSession(r)
		if r.URL.Path == "/portfolio" && s.Portfolio == nil {
			s.SetPortfolio(PortfolioState{Filter: "all", Selected: 1})
		}
		state = s.Portfolio
	}), HTMX, Session, ViewScope("/portfolio"))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/portfolio", nil))
	cookie := cookieNamed(rec.Result().Cookies(), sessionCookieName)
	require.NotNil(t, state)

	// fragment request elsewhere keeps the view
	req := httptest.NewRequest(http.MethodGet, "/contact", nil)
	req.Header.Set("HX-Request", "true")
	req.AddCookie(cookie)
	h.ServeHTTP(httptest.NewRecorder(), req)
	require.NotNil(t, state)

	// sub-routes are in scope
	req = httptest.NewRequest(http.MethodGet, "/portfolio/projects/1", nil)
	req.AddCookie(cookie)
	h.ServeHTTP(httptest.NewRecorder(), req)
	require.NotNil(t, state)

	req = httptest.NewRequest(http.MethodGet, "/contact", nil)
	req.AddCookie(cookie)
	h.ServeHTTP(httptest.NewRecorder(), req)
	require.Nil(t, state)
}

func TestRecorderRunsHookOnce(t *testing.T) {
	t.Parallel()

	calls := 0
	rw := NewResponseRecorder(httptest.NewRecorder())
	rw.SetBeforeWrite(func(w http.ResponseWriter) { calls++ })
	rw.SetBeforeWrite(func(w http.ResponseWriter) { calls += 10 })
	_, _ = rw.Write([]byte("a"))
	_, _ = rw.Write([]byte("bc"))
	rw.WriteHeader(http.StatusTeapot)
	require.Equal(t, 11, calls)
	require.Equal(t, http.StatusOK, rw.Status())
	require.Equal(t, int64(3), rw.BytesWritten())
	require.Same(t, rw, NewResponseRecorder(rw))
}

func TestRedirect(t *testing.T) {
	t.Parallel()

	h := HTMX(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		Redirect(w, r, "/estimator")
	}))

	req := httptest.NewRequest(http.MethodPost, "/x", nil)
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, "/estimator", rec.Header().Get("HX-Redirect"))

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/x", nil))
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/estimator", rec.Header().Get("Location"))
}

func TestWriteErrorEchoesRequestID(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodPost, "/portfolio/dismiss", nil)
	req = req.WithContext(WithRequestID(WithHTMX(req.Context(), true), "host/abc-000001"))
	rec := httptest.NewRecorder()
	WriteError(rec, req, http.StatusBadRequest, "invalid activation path")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.JSONEq(t, `{"error":"invalid activation path","requestId":"host/abc-000001"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	WriteError(rec, httptest.NewRequest(http.MethodPost, "/portfolio/dismiss", nil), http.StatusBadRequest, "invalid activation path")
	require.Equal(t, "invalid activation path\n", rec.Body.String())
}
