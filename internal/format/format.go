// Package format holds small display helpers shared by templates and the
// terminal preview.
package format

import (
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// CategoryLabel title-cases a category value, e.g. "residential" => "Residential".
func CategoryLabel(category string) string {
	category = strings.TrimSpace(strings.NewReplacer("-", " ", "_", " ").Replace(category))
	if category == "" {
		return ""
	}
	return cases.Title(language.English).String(category)
}

// FilterLabel is CategoryLabel with the "all" value spelled out.
func FilterLabel(filter string) string {
	if filter == "all" {
		return "All Projects"
	}
	return CategoryLabel(filter)
}

// FmtINR formats whole rupees with Indian digit grouping.
// Example: FmtINR(3240000) => "₹32,40,000"
func FmtINR(rupees int64) string {
	if rupees < 0 {
		return "-₹" + groupIndian(-rupees)
	}
	return "₹" + groupIndian(rupees)
}

// groupIndian places the first separator after three digits and then every two.
func groupIndian(n int64) string {
	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}
	head, tail := s[:len(s)-3], s[len(s)-3:]
	var parts []string
	for len(head) > 2 {
		parts = append([]string{head[len(head)-2:]}, parts...)
		head = head[:len(head)-2]
	}
	if head != "" {
		parts = append([]string{head}, parts...)
	}
	return strings.Join(parts, ",") + "," + tail
}

// FmtArea renders a square-foot figure, e.g. FmtArea(15000) => "15,000 sq.ft".
func FmtArea(sqft int) string {
	return groupIndian(int64(sqft)) + " sq.ft"
}

// FmtDate formats time in a locale-friendly short form.
func FmtDate(t time.Time, lang string) string {
	if t.IsZero() {
		return ""
	}
	switch strings.ToLower(lang) {
	case "hi":
		return t.Format("02-01-2006")
	default:
		return t.Format("2 Jan 2006")
	}
}
