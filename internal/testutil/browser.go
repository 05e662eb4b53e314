// Package testutil holds helpers shared by HTTP handler tests.
package testutil

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

const (
	csrfCookie = "csrf_token"
	csrfHeader = "X-CSRF-Token"
)

// Browser drives a handler like a cookie-keeping client. Modifying requests
// echo the CSRF cookie in the header, as the site's htmx setup does.
type Browser struct {
	t       testing.TB
	h       http.Handler
	Cookies map[string]*http.Cookie
}

// NewBrowser returns a client for h with an empty cookie jar.
func NewBrowser(t testing.TB, h http.Handler) *Browser {
	return &Browser{t: t, h: h, Cookies: map[string]*http.Cookie{}}
}

// Do serves req, sending stored cookies and keeping the ones set in reply.
func (b *Browser) Do(req *http.Request) *httptest.ResponseRecorder {
	b.t.Helper()
	for _, c := range b.Cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	b.h.ServeHTTP(rec, req)
	for _, c := range rec.Result().Cookies() {
		b.Cookies[c.Name] = c
	}
	return rec
}

// Get issues a GET. htmx marks it as an htmx request.
func (b *Browser) Get(path string, htmx bool) *httptest.ResponseRecorder {
	b.t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if htmx {
		req.Header.Set("HX-Request", "true")
	}
	return b.Do(req)
}

// Post issues a form POST carrying the CSRF token when one is known.
func (b *Browser) Post(path string, form url.Values, htmx bool) *httptest.ResponseRecorder {
	b.t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if htmx {
		req.Header.Set("HX-Request", "true")
	}
	if c, ok := b.Cookies[csrfCookie]; ok {
		req.Header.Set(csrfHeader, c.Value)
	}
	return b.Do(req)
}
