// Package estimate parses and validates estimate enquiries submitted from the
// estimator form. Enquiries are acknowledged and logged, never stored.
package estimate

import (
	"fmt"
	"net/mail"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// BHKType is the apartment configuration.
type BHKType string

const (
	OneBHK   BHKType = "1bhk"
	TwoBHK   BHKType = "2bhk"
	ThreeBHK BHKType = "3bhk"
)

// ParseBHK accepts "1bhk" style and "one_bhk" style values, case-insensitive.
func ParseBHK(s string) (BHKType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1bhk", "one_bhk":
		return OneBHK, nil
	case "2bhk", "two_bhk":
		return TwoBHK, nil
	case "3bhk", "three_bhk":
		return ThreeBHK, nil
	default:
		return "", fmt.Errorf("estimate: invalid bhk type %q", s)
	}
}

// PackageType is the finish level.
type PackageType string

const (
	Essential PackageType = "essential"
	Premium   PackageType = "premium"
	Luxury    PackageType = "luxury"
)

// ParsePackage matches a package name, case-insensitive.
func ParsePackage(s string) (PackageType, error) {
	switch p := PackageType(strings.ToLower(strings.TrimSpace(s))); p {
	case Essential, Premium, Luxury:
		return p, nil
	default:
		return "", fmt.Errorf("estimate: invalid package type %q", s)
	}
}

// Option is a select choice for the form.
type Option struct {
	Value string
	Label string
}

// BHKOptions lists the BHK choices in display order.
func BHKOptions() []Option {
	return []Option{
		{Value: string(OneBHK), Label: "1 BHK"},
		{Value: string(TwoBHK), Label: "2 BHK"},
		{Value: string(ThreeBHK), Label: "3 BHK"},
	}
}

// PackageOptions lists the package choices in display order.
func PackageOptions() []Option {
	return []Option{
		{Value: string(Essential), Label: "Essential"},
		{Value: string(Premium), Label: "Premium"},
		{Value: string(Luxury), Label: "Luxury"},
	}
}

// MaxArea is the largest carpet area, in square feet, an enquiry may carry.
// It keeps IndicativeBudget well inside int64.
const MaxArea = 1_000_000

// ratePerSqFt is the indicative cost in rupees per square foot.
var ratePerSqFt = map[PackageType]int64{
	Essential: 1200,
	Premium:   1800,
	Luxury:    2800,
}

// Enquiry is a validated estimate request.
type Enquiry struct {
	Reference     string
	Name          string
	Phone         string
	Email         string
	Location      string
	Area          int
	BHK           BHKType
	Package       PackageType
	SelectedRooms []string
	Source        string
	ReceivedAt    time.Time
}

// IndicativeBudget is Area times the package rate, in rupees.
func (e Enquiry) IndicativeBudget() int64 {
	return int64(e.Area) * ratePerSqFt[e.Package]
}

// MarshalLogObject logs the enquiry with contact details redacted.
func (e Enquiry) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("reference", e.Reference)
	enc.AddString("phone", RedactPhone(e.Phone))
	enc.AddString("email", RedactEmail(e.Email))
	enc.AddString("location", e.Location)
	enc.AddInt("area", e.Area)
	enc.AddString("bhk", string(e.BHK))
	enc.AddString("package", string(e.Package))
	enc.AddString("source", e.Source)
	return enc.AddArray("rooms", zapcore.ArrayMarshalerFunc(func(arr zapcore.ArrayEncoder) error {
		for _, r := range e.SelectedRooms {
			arr.AppendString(r)
		}
		return nil
	}))
}

// Field returns a zap field carrying the redacted enquiry.
func (e Enquiry) Field() zap.Field { return zap.Object("enquiry", e) }

// ValidationError carries per-field messages.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return "estimate: invalid fields: " + strings.Join(keys, ", ")
}

// Has reports whether field failed validation.
func (e *ValidationError) Has(field string) bool {
	_, ok := e.Fields[field]
	return ok
}

// Parse validates form values. On failure it returns a *ValidationError and
// the partially filled enquiry so the form can be re-rendered.
func Parse(form url.Values, now time.Time) (Enquiry, error) {
	get := func(k string) string { return strings.TrimSpace(form.Get(k)) }
	e := Enquiry{
		Name:       get("name"),
		Phone:      get("phone"),
		Email:      get("email"),
		Location:   get("location"),
		Source:     get("source"),
		ReceivedAt: now.UTC(),
	}
	errs := map[string]string{}

	if e.Name == "" {
		errs["name"] = "Please enter your name."
	}
	if !validPhone(e.Phone) {
		errs["phone"] = "Please enter a valid phone number."
	}
	if e.Email != "" {
		if addr, err := mail.ParseAddress(e.Email); err != nil || addr.Address != e.Email {
			errs["email"] = "Please enter a valid email address."
		}
	}
	if e.Location == "" {
		errs["location"] = "Please tell us where the property is."
	}
	if raw := get("area"); raw != "" {
		area, err := strconv.Atoi(raw)
		switch {
		case err != nil || area <= 0:
			errs["area"] = "Area must be a positive number of square feet."
		case area > MaxArea:
			errs["area"] = "Area looks too large; please enter the carpet area in square feet."
		default:
			e.Area = area
		}
	} else {
		errs["area"] = "Please enter the carpet area."
	}
	if bhk, err := ParseBHK(get("bhkType")); err != nil {
		errs["bhkType"] = "Please choose a BHK type."
	} else {
		e.BHK = bhk
	}
	if pkg, err := ParsePackage(get("packageType")); err != nil {
		errs["packageType"] = "Please choose a package."
	} else {
		e.Package = pkg
	}
	e.SelectedRooms = splitRooms(form["selectedRooms"])
	if e.Source == "" {
		e.Source = "website"
	}

	if len(errs) > 0 {
		return e, &ValidationError{Fields: errs}
	}
	e.Reference = NewReference(now)
	return e, nil
}

// NewReference returns a sortable enquiry reference.
func NewReference(now time.Time) string {
	return "EQ-" + ulid.MustNew(ulid.Timestamp(now), ulid.DefaultEntropy()).String()
}

func validPhone(s string) bool {
	digits := 0
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '+' || r == ' ' || r == '-' || r == '(' || r == ')':
		default:
			return false
		}
	}
	return digits >= 10 && digits <= 13
}

func splitRooms(values []string) []string {
	var out []string
	seen := map[string]bool{}
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part == "" || seen[strings.ToLower(part)] {
				continue
			}
			seen[strings.ToLower(part)] = true
			out = append(out, part)
		}
	}
	return out
}

// RedactPhone keeps the last two digits.
func RedactPhone(s string) string {
	var digits []rune
	for _, r := range s {
		if r >= '0' && r <= '9' {
			digits = append(digits, r)
		}
	}
	if len(digits) <= 2 {
		return strings.Repeat("*", len(digits))
	}
	return strings.Repeat("*", len(digits)-2) + string(digits[len(digits)-2:])
}

// RedactEmail keeps the first letter of the local part and the domain.
func RedactEmail(s string) string {
	at := strings.LastIndex(s, "@")
	if at <= 0 {
		if s == "" {
			return ""
		}
		return "***"
	}
	return s[:1] + "***" + s[at:]
}
