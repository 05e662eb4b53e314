// Package status runs the registered health checks and reports them as a
// summary for the /healthz endpoint.
package status

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"
)

const (
	StateOK       = "ok"
	StateDegraded = "degraded"
)

// Summary captures the overall state and each component's result.
type Summary struct {
	State      string      `json:"state"`
	CheckedAt  time.Time   `json:"checkedAt"`
	Components []Component `json:"components"`
}

// Component represents the status of an individual subsystem.
type Component struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// CheckFunc reports a subsystem failure as a non-nil error.
type CheckFunc func(ctx context.Context) error

type check struct {
	name string
	fn   CheckFunc
}

// Checker holds named checks. Register them before serving; Run is safe for
// concurrent use.
type Checker struct {
	timeout time.Duration
	checks  []check

	mu       sync.Mutex
	cacheTTL time.Duration
	cached   Summary
	expires  time.Time
	now      func() time.Time
}

// NewChecker bounds each check by timeout. Zero means one second.
func NewChecker(timeout time.Duration) *Checker {
	if timeout <= 0 {
		timeout = time.Second
	}
	return &Checker{timeout: timeout, now: time.Now}
}

// SetCacheTTL reuses a summary for d. Zero disables caching.
func (c *Checker) SetCacheTTL(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if d < 0 {
		d = 0
	}
	c.cacheTTL = d
	c.expires = time.Time{}
}

// Register adds a named check. Checks run in registration order.
func (c *Checker) Register(name string, fn CheckFunc) {
	if fn == nil {
		return
	}
	c.checks = append(c.checks, check{name: name, fn: fn})
}

// Run executes every check and returns the summary. Any failing component
// degrades the overall state.
func (c *Checker) Run(ctx context.Context) Summary {
	c.mu.Lock()
	if c.cacheTTL > 0 && c.now().Before(c.expires) {
		s := cloneSummary(c.cached)
		c.mu.Unlock()
		return s
	}
	c.mu.Unlock()

	s := Summary{State: StateOK, CheckedAt: c.now().UTC(), Components: make([]Component, 0, len(c.checks))}
	for _, ch := range c.checks {
		comp := Component{Name: ch.name, Status: StateOK}
		if err := c.runOne(ctx, ch.fn); err != nil {
			comp.Status = StateDegraded
			comp.Error = err.Error()
			s.State = StateDegraded
		}
		s.Components = append(s.Components, comp)
	}

	c.mu.Lock()
	if c.cacheTTL > 0 {
		c.cached = cloneSummary(s)
		c.expires = c.now().Add(c.cacheTTL)
	}
	c.mu.Unlock()
	return s
}

func (c *Checker) runOne(ctx context.Context, fn CheckFunc) (err error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	done := make(chan error, 1)
	go func() {
		defer func() {
			if p := recover(); p != nil {
				done <- fmt.Errorf("panic: %v", p)
			}
		}()
		done <- fn(ctx)
	}()
	select {
	case err = <-done:
		return err
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return fmt.Errorf("timed out after %s", c.timeout)
		}
		return ctx.Err()
	}
}

// Handler serves the summary as JSON: 200 when ok, 503 when degraded.
func (c *Checker) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s := c.Run(r.Context())
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		code := http.StatusOK
		if s.State != StateOK {
			code = http.StatusServiceUnavailable
		}
		w.WriteHeader(code)
		_ = json.NewEncoder(w).Encode(s)
	})
}

func cloneSummary(src Summary) Summary {
	dst := src
	if src.Components != nil {
		dst.Components = append([]Component(nil), src.Components...)
	}
	return dst
}
