// Package i18n holds the translation catalog for the English and Swedish
// user interface and resolves which language a request should be served in.
//
// Message keys are the English source strings. Keys with a count argument
// are registered with plural selectors so "%d team members" renders as
// "1 team member" where the language requires it.
package i18n

import (
	"strings"
	"sync"

	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// DefaultLanguage is served when nothing else matches.
const DefaultLanguage = "en"

// Language is a supported UI language.
type Language struct {
	Code string
	Name string
	Tag  language.Tag
	// Locale drives number and date formatting for the language.
	Locale string
}

// Supported lists the UI languages in menu order.
var Supported = []Language{
	{Code: "en", Name: "English", Tag: language.English, Locale: "en-US"},
	{Code: "sv", Name: "Svenska", Tag: language.Swedish, Locale: "sv-SE"},
}

// Translator owns the immutable message catalog. It is safe for concurrent use.
type Translator struct {
	cat     *catalog.Builder
	matcher language.Matcher
}

var (
	defaultOnce       sync.Once
	defaultTranslator *Translator
)

// Default returns the process-wide translator built from the bundled catalog.
func Default() *Translator {
	defaultOnce.Do(func() {
		t, err := New()
		if err != nil {
			panic("i18n: bundled catalog is invalid: " + err.Error())
		}
		defaultTranslator = t
	})
	return defaultTranslator
}

// New builds a translator from the bundled catalog.
func New() (*Translator, error) {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for _, e := range entries {
		if err := b.SetString(language.English, e.key, e.key); err != nil {
			return nil, err
		}
		if err := b.SetString(language.Swedish, e.key, e.sv); err != nil {
			return nil, err
		}
	}
	for _, p := range plurals {
		if err := b.Set(language.English, p.key,
			plural.Selectf(1, "%d", "=1", p.enOne, "other", p.key)); err != nil {
			return nil, err
		}
		if err := b.Set(language.Swedish, p.key,
			plural.Selectf(1, "%d", "=1", p.svOne, "other", p.svOther)); err != nil {
			return nil, err
		}
	}

	tags := make([]language.Tag, 0, len(Supported))
	for _, l := range Supported {
		tags = append(tags, l.Tag)
	}
	return &Translator{cat: b, matcher: language.NewMatcher(tags)}, nil
}

// Printer returns a message printer for a language code such as "sv" or
// "en-US". Unknown codes get the default language.
func (t *Translator) Printer(code string) *message.Printer {
	return message.NewPrinter(t.tag(code), message.Catalog(t.cat))
}

// Match resolves the request language: a stored preference wins, then the
// Accept-Language header, then DefaultLanguage.
func (t *Translator) Match(stored, acceptLanguage string) string {
	if l, ok := Lookup(stored); ok {
		return l.Code
	}
	if strings.TrimSpace(acceptLanguage) == "" {
		return DefaultLanguage
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return DefaultLanguage
	}
	_, idx, conf := t.matcher.Match(tags...)
	if conf == language.No {
		return DefaultLanguage
	}
	return Supported[idx].Code
}

// Lookup finds a supported language by its code, ignoring any region suffix.
func Lookup(code string) (Language, bool) {
	code = strings.ToLower(strings.TrimSpace(code))
	if i := strings.IndexAny(code, "-_"); i > 0 {
		code = code[:i]
	}
	for _, l := range Supported {
		if l.Code == code {
			return l, true
		}
	}
	return Language{}, false
}

func (t *Translator) tag(code string) language.Tag {
	tag, err := language.Parse(strings.ReplaceAll(strings.TrimSpace(code), "_", "-"))
	if err != nil {
		return language.English
	}
	_, idx, conf := t.matcher.Match(tag)
	if conf == language.No {
		return language.English
	}
	// Keep the caller's region so number formatting follows it.
	base, _ := tag.Base()
	want, _ := Supported[idx].Tag.Base()
	if base == want {
		return tag
	}
	return Supported[idx].Tag
}
