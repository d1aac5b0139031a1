// Package format turns raw values (dates, money, names) into display strings.
//
// Number grouping and currency symbols come from golang.org/x/text so output
// follows the requested locale; "en-US" is the default for money and the
// process locale (LANG) is the default for dates.
package format

import (
	"os"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/csg33k/employee-directory/internal/i18n"
)

// DefaultCurrency and DefaultLocale are used when no option overrides them.
const (
	DefaultCurrency = "USD"
	DefaultLocale   = "en-US"
)

// Option customizes a formatting call.
type Option func(*options)

type options struct {
	locale   string
	currency string
	minFrac  int
	maxFrac  int
	fracSet  bool
	now      time.Time
}

// WithLocale overrides the locale, e.g. "sv" or "en-GB".
func WithLocale(locale string) Option {
	return func(o *options) { o.locale = locale }
}

// WithCurrency overrides the ISO 4217 currency code.
func WithCurrency(code string) Option {
	return func(o *options) { o.currency = strings.ToUpper(strings.TrimSpace(code)) }
}

// WithFractionDigits bounds the number of fraction digits.
// A max below min is raised to min.
func WithFractionDigits(min, max int) Option {
	return func(o *options) {
		if min < 0 {
			min = 0
		}
		if max < min {
			max = min
		}
		o.minFrac, o.maxFrac, o.fracSet = min, max, true
	}
}

// WithNow pins the reference time for relative formatting.
func WithNow(now time.Time) Option {
	return func(o *options) { o.now = now }
}

func newOptions(defaultLocale string, opts []Option) options {
	o := options{locale: defaultLocale, currency: DefaultCurrency}
	for _, opt := range opts {
		opt(&o)
	}
	if strings.TrimSpace(o.locale) == "" {
		o.locale = defaultLocale
	}
	return o
}

// EnvLocale reports the process locale from LC_ALL or LANG, normalized to a
// BCP 47 tag. It falls back to DefaultLocale for unset, "C" and "POSIX".
func EnvLocale() string {
	for _, key := range []string{"LC_ALL", "LANG"} {
		v := os.Getenv(key)
		if i := strings.IndexAny(v, ".@"); i >= 0 {
			v = v[:i]
		}
		v = strings.ReplaceAll(strings.TrimSpace(v), "_", "-")
		if v == "" || v == "C" || v == "POSIX" {
			continue
		}
		if _, err := language.Parse(v); err == nil {
			return v
		}
	}
	return DefaultLocale
}

func printer(locale string) *message.Printer {
	return i18n.Default().Printer(locale)
}

// localeKeys returns the lookup keys for a locale, most specific first:
// "en-GB" yields ["en-GB", "en"].
func localeKeys(locale string) []string {
	tag, err := language.Parse(strings.ReplaceAll(locale, "_", "-"))
	if err != nil {
		return []string{"en"}
	}
	base, _ := tag.Base()
	keys := make([]string, 0, 2)
	if region, conf := tag.Region(); conf == language.Exact {
		keys = append(keys, base.String()+"-"+region.String())
	}
	return append(keys, base.String())
}
