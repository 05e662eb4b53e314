package estimate

import (
	"errors"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var now = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

func validForm() url.Values {
	return url.Values{
		"name":          {"Ananya Rao"},
		"phone":         {"+91 98480 12345"},
		"email":         {"ananya@example.com"},
		"location":      {"Gachibowli"},
		"area":          {"1800"},
		"bhkType":       {"TWO_BHK"},
		"packageType":   {"Premium"},
		"selectedRooms": {"Kitchen, Living, kitchen", "Master Bedroom"},
		"source":        {"portfolio"},
	}
}

func TestParseValidEnquiry(t *testing.T) {
	t.Parallel()

	e, err := Parse(validForm(), now)
	require.NoError(t, err)
	require.Equal(t, TwoBHK, e.BHK)
	require.Equal(t, Premium, e.Package)
	require.Equal(t, 1800, e.Area)
	require.Equal(t, []string{"Kitchen", "Living", "Master Bedroom"}, e.SelectedRooms)
	require.Equal(t, "portfolio", e.Source)
	require.True(t, strings.HasPrefix(e.Reference, "EQ-"))
	require.Len(t, e.Reference, 3+26)
	require.Equal(t, int64(1800*1800), e.IndicativeBudget())
}

func TestParseCollectsFieldErrors(t *testing.T) {
	t.Parallel()

	form := url.Values{
		"phone":       {"12ab"},
		"email":       {"not-an-email"},
		"area":        {"-4"},
		"bhkType":     {"4bhk"},
		"packageType": {"gold"},
	}
	e, err := Parse(form, now)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	for _, field := range []string{"name", "phone", "email", "location", "area", "bhkType", "packageType"} {
		require.True(t, verr.Has(field), "expected error for %s", field)
	}
	require.Empty(t, e.Reference)
	require.Equal(t, "website", e.Source)
	require.Contains(t, err.Error(), "bhkType")
}

func TestParseRejectsOversizedArea(t *testing.T) {
	t.Parallel()

	for _, area := range []string{"9000000000000000", "1000001", "99999999999999999999"} {
		form := validForm()
		form.Set("area", area)
		form.Set("packageType", "luxury")
		e, err := Parse(form, now)
		var verr *ValidationError
		require.True(t, errors.As(err, &verr), "area %s", area)
		require.True(t, verr.Has("area"))
		require.Zero(t, e.IndicativeBudget())
	}

	form := validForm()
	form.Set("area", "1000000")
	form.Set("packageType", "luxury")
	e, err := Parse(form, now)
	require.NoError(t, err)
	require.Equal(t, int64(MaxArea)*2800, e.IndicativeBudget())
}

func TestParseBHKAliases(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]BHKType{"1bhk": OneBHK, "one_bhk": OneBHK, "2BHK": TwoBHK, "three_bhk": ThreeBHK} {
		got, err := ParseBHK(in)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
	_, err := ParseBHK("")
	require.Error(t, err)
}

func TestRedaction(t *testing.T) {
	t.Parallel()

	require.Equal(t, "**********45", RedactPhone("+91 98480 12345"))
	require.Equal(t, "a***@example.com", RedactEmail("ananya@example.com"))
	require.Equal(t, "", RedactEmail(""))
}

func TestLogFieldIsRedacted(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.InfoLevel)
	e, err := Parse(validForm(), now)
	require.NoError(t, err)
	zap.New(core).Info("estimate enquiry received", e.Field())

	entries := logs.All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()["enquiry"].(map[string]interface{})
	require.Equal(t, "a***@example.com", fields["email"])
	require.NotContains(t, fields["phone"], "98480")
	require.Equal(t, e.Reference, fields["reference"])
}

func TestReferencesAreOrdered(t *testing.T) {
	t.Parallel()

	a := NewReference(now)
	b := NewReference(now.Add(time.Second))
	require.Less(t, a, b)
}
