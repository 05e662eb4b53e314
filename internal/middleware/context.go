package middleware

import "context"

type (
	requestIDKey      struct{}
	htmxKey           struct{}
	sessionKey        struct{}
	localeFallbackKey struct{}
)

// WithRequestID stores the chi request id so error bodies can echo it.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID returns the request id set by Logger.
func RequestID(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(requestIDKey{}).(string)
	return v, ok && v != ""
}

// WithHTMX marks the request as an htmx fragment request.
func WithHTMX(ctx context.Context, is bool) context.Context {
	return context.WithValue(ctx, htmxKey{}, is)
}

// IsHTMX reports whether the portfolio and estimator handlers should answer
// with a fragment instead of a full page.
func IsHTMX(ctx context.Context) bool {
	v, _ := ctx.Value(htmxKey{}).(bool)
	return v
}

func withSession(ctx context.Context, sd *SessionData) context.Context {
	return context.WithValue(ctx, sessionKey{}, sd)
}

func sessionFrom(ctx context.Context) (*SessionData, bool) {
	sd, ok := ctx.Value(sessionKey{}).(*SessionData)
	return sd, ok && sd != nil
}

func withLocaleFallback(ctx context.Context, lang string) context.Context {
	return context.WithValue(ctx, localeFallbackKey{}, lang)
}

func localeFallback(ctx context.Context) string {
	v, _ := ctx.Value(localeFallbackKey{}).(string)
	return v
}
