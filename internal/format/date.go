package format

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

// ErrInvalidDate is returned for values that cannot be read as a date.
var ErrInvalidDate = errors.New("invalid date value")

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"Jan 2, 2006",
	"January 2, 2006",
	time.RFC1123,
	time.RFC1123Z,
}

// ParseDate reads a time.Time, epoch milliseconds (any integer or float
// type) or a date string.
func ParseDate(value any) (time.Time, error) {
	switch v := value.(type) {
	case time.Time:
		return v, nil
	case *time.Time:
		if v != nil {
			return *v, nil
		}
	case int:
		return time.UnixMilli(int64(v)), nil
	case int64:
		return time.UnixMilli(v), nil
	case int32:
		return time.UnixMilli(int64(v)), nil
	case float64:
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			return time.UnixMilli(int64(v)), nil
		}
	case string:
		s := strings.TrimSpace(v)
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, nil
			}
		}
	}
	return time.Time{}, fmt.Errorf("%w: %v", ErrInvalidDate, value)
}

var svMonths = [12]string{
	"jan.", "feb.", "mars", "apr.", "maj", "juni",
	"juli", "aug.", "sep.", "okt.", "nov.", "dec.",
}

type datePattern struct {
	date func(t time.Time) string
	time string // clock layout appended by FormatDateTime
	sep  string
}

var datePatterns = map[string]datePattern{
	"en": {
		date: func(t time.Time) string { return t.Format("Jan 2, 2006") },
		time: "03:04 PM",
		sep:  ", ",
	},
	"en-GB": {
		date: func(t time.Time) string { return t.Format("2 Jan 2006") },
		time: "15:04",
		sep:  ", ",
	},
	"sv": {
		date: func(t time.Time) string {
			return fmt.Sprintf("%d %s %d", t.Day(), svMonths[t.Month()-1], t.Year())
		},
		time: "15:04",
		sep:  " ",
	},
}

func patternFor(locale string) datePattern {
	for _, key := range localeKeys(locale) {
		if p, ok := datePatterns[key]; ok {
			return p
		}
	}
	return datePatterns["en"]
}

// FormatDate renders a date as short month, numeric day and year in the
// locale ("Apr 12, 2019" for en-US). The locale defaults to EnvLocale.
func FormatDate(value any, opts ...Option) (string, error) {
	t, err := ParseDate(value)
	if err != nil {
		return "", err
	}
	o := newOptions(EnvLocale(), opts)
	return patternFor(o.locale).date(t), nil
}

// FormatDateTime is FormatDate followed by a two-digit hour and minute.
func FormatDateTime(value any, opts ...Option) (string, error) {
	t, err := ParseDate(value)
	if err != nil {
		return "", err
	}
	o := newOptions(EnvLocale(), opts)
	p := patternFor(o.locale)
	return p.date(t) + p.sep + t.Format(p.time), nil
}

// DifferenceInDays returns end minus start in whole days, rounded.
func DifferenceInDays(start, end any) (int, error) {
	s, err := ParseDate(start)
	if err != nil {
		return 0, err
	}
	e, err := ParseDate(end)
	if err != nil {
		return 0, err
	}
	return int(roundHalfUp(e.Sub(s).Hours() / 24)), nil
}

// roundHalfUp rounds halves toward positive infinity.
func roundHalfUp(x float64) float64 {
	return math.Floor(x + 0.5)
}
