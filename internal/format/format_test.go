package format_test

import (
	"errors"
	"testing"
	"time"

	"github.com/csg33k/employee-directory/internal/format"
)

// ---------------------------------------------------------------------------
// Currency
// ---------------------------------------------------------------------------

func TestFormatCurrency_Defaults(t *testing.T) {
	if got := format.FormatCurrency(145000); got != "$145,000.00" {
		t.Errorf("FormatCurrency(145000) = %q, want %q", got, "$145,000.00")
	}
}

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		opts  []format.Option
		want  string
	}{
		{"small", 98000, nil, "$98,000.00"},
		{"cents", 1234.5, nil, "$1,234.50"},
		{"zero", 0, nil, "$0.00"},
		{"negative", -5, nil, "-$5.00"},
		{"no fraction digits", 138500, []format.Option{format.WithFractionDigits(0, 0)}, "$138,500"},
		{"max above min keeps needed digits", 12.5, []format.Option{format.WithFractionDigits(0, 2)}, "$12.5"},
		{"unknown currency falls back to USD", 10, []format.Option{format.WithCurrency("???")}, "$10.00"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := format.FormatCurrency(tc.value, tc.opts...); got != tc.want {
				t.Errorf("FormatCurrency(%v) = %q, want %q", tc.value, got, tc.want)
			}
		})
	}
}

func TestFormatCurrencyCompact(t *testing.T) {
	tests := []struct {
		value float64
		want  string
	}{
		{145000, "$145K"},
		{1234567, "$1.2M"},
		{950, "$950"},
		{2500000000, "$2.5B"},
		{999960, "$1M"},
		{999.96, "$1K"},
		{-999.96, "-$1K"},
		{999.94, "$999.9"},
	}
	for _, tc := range tests {
		if got := format.FormatCurrencyCompact(tc.value); got != tc.want {
			t.Errorf("FormatCurrencyCompact(%v) = %q, want %q", tc.value, got, tc.want)
		}
	}
}

func TestFormatNumber(t *testing.T) {
	if got := format.FormatNumber(1234567.891); got != "1,234,567.89" {
		t.Errorf("FormatNumber = %q", got)
	}
	if got := format.FormatNumber(42); got != "42" {
		t.Errorf("FormatNumber(42) = %q", got)
	}
}

// ---------------------------------------------------------------------------
// Dates
// ---------------------------------------------------------------------------

func TestParseDate(t *testing.T) {
	want := time.Date(2019, 4, 12, 0, 0, 0, 0, time.UTC)

	for _, in := range []any{"2019-04-12", "2019-04-12T00:00:00Z", want, want.UnixMilli()} {
		got, err := format.ParseDate(in)
		if err != nil {
			t.Fatalf("ParseDate(%v): %v", in, err)
		}
		if !got.Equal(want) {
			t.Errorf("ParseDate(%v) = %v, want %v", in, got, want)
		}
	}
}

func TestParseDate_Invalid(t *testing.T) {
	for _, in := range []any{"not a date", "", struct{}{}, nil} {
		if _, err := format.ParseDate(in); !errors.Is(err, format.ErrInvalidDate) {
			t.Errorf("ParseDate(%v) err = %v, want ErrInvalidDate", in, err)
		}
	}
}

func TestFormatDate_Locales(t *testing.T) {
	tests := []struct {
		locale string
		want   string
	}{
		{"en-US", "Apr 12, 2019"},
		{"en", "Apr 12, 2019"},
		{"en-GB", "12 Apr 2019"},
		{"sv", "12 apr. 2019"},
		{"sv-SE", "12 apr. 2019"},
		{"zz-invalid-locale", "Apr 12, 2019"},
	}
	for _, tc := range tests {
		t.Run(tc.locale, func(t *testing.T) {
			got, err := format.FormatDate("2019-04-12", format.WithLocale(tc.locale))
			if err != nil {
				t.Fatal(err)
			}
			if got != tc.want {
				t.Errorf("FormatDate = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestFormatDate_DefaultsToProcessLocale(t *testing.T) {
	t.Setenv("LC_ALL", "")
	t.Setenv("LANG", "sv_SE.UTF-8")
	got, err := format.FormatDate("2020-08-24")
	if err != nil {
		t.Fatal(err)
	}
	if got != "24 aug. 2020" {
		t.Errorf("FormatDate = %q", got)
	}
}

func TestFormatDate_Error(t *testing.T) {
	if _, err := format.FormatDate("yesterday-ish"); err == nil {
		t.Fatal("expected error for unparseable date")
	}
}

func TestFormatDateTime(t *testing.T) {
	ts := time.Date(2021, 2, 15, 9, 30, 0, 0, time.UTC)
	got, err := format.FormatDateTime(ts, format.WithLocale("en-US"))
	if err != nil {
		t.Fatal(err)
	}
	if got != "Feb 15, 2021, 09:30 AM" {
		t.Errorf("FormatDateTime = %q", got)
	}
}

func TestEnvLocale(t *testing.T) {
	t.Setenv("LC_ALL", "")
	t.Setenv("LANG", "C")
	if got := format.EnvLocale(); got != format.DefaultLocale {
		t.Errorf("EnvLocale with LANG=C = %q", got)
	}
	t.Setenv("LANG", "en_GB.UTF-8")
	if got := format.EnvLocale(); got != "en-GB" {
		t.Errorf("EnvLocale = %q", got)
	}
}

func TestDifferenceInDays(t *testing.T) {
	got, err := format.DifferenceInDays("2019-04-12", "2019-04-22")
	if err != nil {
		t.Fatal(err)
	}
	if got != 10 {
		t.Errorf("DifferenceInDays = %d, want 10", got)
	}
}

// ---------------------------------------------------------------------------
// Relative time
// ---------------------------------------------------------------------------

func TestFormatRelativeTime(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		offset time.Duration
		locale string
		want   string
	}{
		{"now", 10 * time.Second, "en", "this minute"},
		{"minutes ahead", 5 * time.Minute, "en", "in 5 minutes"},
		{"one minute ago", -time.Minute, "en", "1 minute ago"},
		{"hours ago", -2 * time.Hour, "en", "2 hours ago"},
		{"days ahead", 3 * 24 * time.Hour, "en", "in 3 days"},
		{"yesterday", -24 * time.Hour, "en", "yesterday"},
		{"weeks ago", -15 * 24 * time.Hour, "en", "2 weeks ago"},
		{"months ahead", 70 * 24 * time.Hour, "en", "in 2 months"},
		{"years ago", -3 * 365 * 24 * time.Hour, "en", "3 years ago"},
		{"swedish", 3 * 24 * time.Hour, "sv", "om 3 dagar"},
		{"swedish past", -2 * time.Hour, "sv", "för 2 timmar sedan"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := format.FormatRelativeTime(now.Add(tc.offset),
				format.WithNow(now), format.WithLocale(tc.locale))
			if err != nil {
				t.Fatal(err)
			}
			if got != tc.want {
				t.Errorf("FormatRelativeTime(%v) = %q, want %q", tc.offset, got, tc.want)
			}
		})
	}
}

func TestFormatRelativeTime_InvalidInput(t *testing.T) {
	if _, err := format.FormatRelativeTime("garbage"); err == nil {
		t.Fatal("expected error")
	}
}

// ---------------------------------------------------------------------------
// Text helpers
// ---------------------------------------------------------------------------

func TestInitials(t *testing.T) {
	tests := []struct {
		first, last, want string
	}{
		{"Ava", "Johnson", "AJ"},
		{"noah", "patel", "NP"},
		{"", "Garcia", "G"},
		{"Mia", "", "M"},
		{"", "", ""},
		{"Östen", "Åberg", "ÖÅ"},
	}
	for _, tc := range tests {
		if got := format.Initials(tc.first, tc.last); got != tc.want {
			t.Errorf("Initials(%q, %q) = %q, want %q", tc.first, tc.last, got, tc.want)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	for minutes, want := range map[int]string{0: "0m", 45: "45m", 60: "1h", 125: "2h 5m"} {
		if got := format.FormatDuration(minutes); got != want {
			t.Errorf("FormatDuration(%d) = %q, want %q", minutes, got, want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := format.Truncate("short", 10); got != "short" {
		t.Errorf("Truncate = %q", got)
	}
	if got := format.Truncate("Senior Frontend Engineer", 10); got != "Senior Fr…" {
		t.Errorf("Truncate = %q", got)
	}
}
