package format

import (
	"math"
	"time"

	"golang.org/x/text/message"
)

type relativeUnit string

const (
	unitMinute relativeUnit = "minute"
	unitHour   relativeUnit = "hour"
	unitDay    relativeUnit = "day"
	unitWeek   relativeUnit = "week"
	unitMonth  relativeUnit = "month"
	unitYear   relativeUnit = "year"
)

// relativeLadder is scanned in order: a magnitude under amount is expressed
// in unit, otherwise it is divided by amount and the next rung is tried.
var relativeLadder = []struct {
	amount float64
	unit   relativeUnit
}{
	{60, unitMinute},
	{24, unitHour},
	{7, unitDay},
	{4.34524, unitWeek},
	{12, unitMonth},
	{math.Inf(1), unitYear},
}

// Catalog keys for the numeric phrases: past then future.
var relativeKeys = map[relativeUnit][2]string{
	unitMinute: {"%d minutes ago", "in %d minutes"},
	unitHour:   {"%d hours ago", "in %d hours"},
	unitDay:    {"%d days ago", "in %d days"},
	unitWeek:   {"%d weeks ago", "in %d weeks"},
	unitMonth:  {"%d months ago", "in %d months"},
	unitYear:   {"%d years ago", "in %d years"},
}

// Phrases used instead of a number for -1, 0 and 1.
var relativeAuto = map[relativeUnit]map[int]string{
	unitMinute: {0: "this minute"},
	unitHour:   {0: "this hour"},
	unitDay:    {-1: "yesterday", 0: "today", 1: "tomorrow"},
	unitWeek:   {-1: "last week", 0: "this week", 1: "next week"},
	unitMonth:  {-1: "last month", 0: "this month", 1: "next month"},
	unitYear:   {-1: "last year", 0: "this year", 1: "next year"},
}

// FormatRelativeTime renders value relative to now ("in 3 days",
// "2 hours ago") in the locale, which defaults to EnvLocale. WithNow pins
// the reference time.
func FormatRelativeTime(value any, opts ...Option) (string, error) {
	o := newOptions(EnvLocale(), opts)
	now := o.now
	if now.IsZero() {
		now = time.Now()
	}
	return RelativeTime(value, now, printer(o.locale))
}

// RelativeTime is FormatRelativeTime with an explicit reference time and
// message printer.
func RelativeTime(value any, now time.Time, p *message.Printer) (string, error) {
	t, err := ParseDate(value)
	if err != nil {
		return "", err
	}
	duration := roundHalfUp(t.Sub(now).Minutes())
	for _, rung := range relativeLadder {
		if math.Abs(duration) < rung.amount {
			return relativePhrase(p, int(duration), rung.unit), nil
		}
		duration = roundHalfUp(duration / rung.amount)
	}
	return relativePhrase(p, int(duration), unitYear), nil
}

func relativePhrase(p *message.Printer, n int, unit relativeUnit) string {
	if phrase, ok := relativeAuto[unit][n]; ok {
		return p.Sprintf(phrase)
	}
	keys := relativeKeys[unit]
	if n < 0 {
		return p.Sprintf(keys[0], -n)
	}
	return p.Sprintf(keys[1], n)
}
