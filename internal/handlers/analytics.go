package handlers

import "strings"

// Analytics holds client instrumentation configuration surfaced to templates.
type Analytics struct {
	GA4MeasurementID string // e.g. G-XXXXXXXXXX
	Debug            bool
}

// NewAnalytics returns the template config. IDs that do not look like GA4
// measurement ids are ignored.
func NewAnalytics(measurementID string, debug bool) Analytics {
	id := strings.TrimSpace(measurementID)
	if !strings.HasPrefix(id, "G-") {
		id = ""
	}
	return Analytics{GA4MeasurementID: id, Debug: debug}
}

// Enabled reports whether the tag should be rendered.
func (a Analytics) Enabled() bool { return a.GA4MeasurementID != "" }
