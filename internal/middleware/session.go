package middleware

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"
	"time"
)

const sessionCookieName = "CASA_WEB_SESSION"

type SessionData struct {
	ID        string          `json:"id"`
	Locale    string          `json:"locale,omitempty"`
	Portfolio *PortfolioState `json:"pf,omitempty"`
	CSRFToken string          `json:"csrf,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
	// internal dirty flag; not serialized
	dirty bool `json:"-"`
}

// PortfolioState is the persisted snapshot of a visitor's portfolio view.
// A nil state means the view is not mounted.
type PortfolioState struct {
	Filter   string `json:"f,omitempty"`
	Selected int    `json:"s,omitempty"`
}

var (
	sessionSignKey []byte
	sessionSecure  bool
)

func init() {
	sessionSignKey = ephemeralKey()
}

// ConfigureSession sets the cookie signing key and the Secure flag. An empty
// key keeps a process-ephemeral key, which invalidates sessions on restart.
// It reports whether the ephemeral key is in use.
func ConfigureSession(key string, secure bool) bool {
	sessionSecure = secure
	if strings.TrimSpace(key) == "" {
		return true
	}
	sessionSignKey = []byte(key)
	return false
}

func ephemeralKey() []byte {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return []byte("insecure-dev-key-please-set-CASA_WEB_SESSION_SIGNING_KEY")
	}
	return b
}

// Session loads or initializes a session and stores it in request context.
func Session(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sd, fromCookie := readSessionCookie(r)
		if sd.ID == "" {
			sd.ID = randID()
			sd.CreatedAt = time.Now().UTC()
			sd.UpdatedAt = sd.CreatedAt
			sd.CSRFToken = newCSRFToken()
			sd.dirty = true
		}
		ctx := withSession(r.Context(), sd)
		rw := NewResponseRecorder(w)
		// the cookie must go out with the header, so handlers update the
		// session before writing
		rw.SetBeforeWrite(func(w http.ResponseWriter) {
			if sd.dirty || !fromCookie {
				writeSessionCookie(w, sd)
			}
		})
		next.ServeHTTP(rw, r.WithContext(ctx))
		// nothing written (e.g. HEAD): persist now
		if !rw.Wrote() && (sd.dirty || !fromCookie) {
			writeSessionCookie(w, sd)
		}
	})
}

// GetSession returns session data from context
func GetSession(r *http.Request) *SessionData {
	if sd, ok := sessionFrom(r.Context()); ok {
		return sd
	}
	return &SessionData{}
}

// MarkDirty flags the session for writing at end of request
func (s *SessionData) MarkDirty() { s.dirty = true; s.UpdatedAt = time.Now().UTC() }

// SetPortfolio stores the portfolio snapshot, marking the session dirty only
// when it changed.
func (s *SessionData) SetPortfolio(state PortfolioState) {
	if s.Portfolio != nil && *s.Portfolio == state {
		return
	}
	s.Portfolio = &state
	s.MarkDirty()
}

// ReleasePortfolio drops the portfolio snapshot.
func (s *SessionData) ReleasePortfolio() {
	if s.Portfolio == nil {
		return
	}
	s.Portfolio = nil
	s.MarkDirty()
}

// readSessionCookie parses and verifies the session cookie
func readSessionCookie(r *http.Request) (*SessionData, bool) {
	c, err := r.Cookie(sessionCookieName)
	if err != nil || c.Value == "" {
		return &SessionData{}, false
	}
	parts := strings.Split(c.Value, ".")
	if len(parts) != 2 {
		return &SessionData{}, false
	}
	payloadB, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return &SessionData{}, false
	}
	sigB, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return &SessionData{}, false
	}
	mac := hmac.New(sha256.New, sessionSignKey)
	mac.Write(payloadB)
	if !hmac.Equal(sigB, mac.Sum(nil)) {
		return &SessionData{}, false
	}
	var sd SessionData
	if err := json.Unmarshal(payloadB, &sd); err != nil {
		return &SessionData{}, false
	}
	return &sd, true
}

func writeSessionCookie(w http.ResponseWriter, sd *SessionData) {
	b, _ := json.Marshal(sd)
	payload := base64.RawURLEncoding.EncodeToString(b)
	mac := hmac.New(sha256.New, sessionSignKey)
	mac.Write(b)
	sig := base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    payload + "." + sig,
		Path:     "/",
		HttpOnly: true,
		Secure:   sessionSecure,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(30 * 24 * time.Hour),
	})
}

func randID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return ""
	}
	return base64.RawURLEncoding.EncodeToString(b)
}
