package templates

import (
	"time"

	"golang.org/x/text/message"

	"github.com/csg33k/employee-directory/internal/format"
	"github.com/csg33k/employee-directory/internal/i18n"
	"github.com/csg33k/employee-directory/internal/validation"
)

const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// ViewContext carries the per-request state every view renders with. It is
// passed explicitly instead of being read from globals.
type ViewContext struct {
	AppName string
	Env     string
	Lang    string
	Theme   string
	// Path is the request path, used to mark the active nav item.
	Path    string
	Printer *message.Printer
	Now     time.Time
}

type NavItem struct {
	Path   string
	Label  string
	Active bool
}

var navRoutes = []struct{ path, label string }{
	{"/", "Dashboard"},
	{"/employees", "Employees"},
}

// T translates key in the request language.
func (v ViewContext) T(key string, args ...any) string {
	return v.printer().Sprintf(key, args...)
}

func (v ViewContext) printer() *message.Printer {
	if v.Printer != nil {
		return v.Printer
	}
	return i18n.Default().Printer(v.Lang)
}

func (v ViewContext) Locale() string {
	if l, ok := i18n.Lookup(v.Lang); ok {
		return l.Locale
	}
	return format.DefaultLocale
}

func (v ViewContext) Languages() []i18n.Language { return i18n.Supported }

func (v ViewContext) Nav() []NavItem {
	items := make([]NavItem, len(navRoutes))
	for i, r := range navRoutes {
		items[i] = NavItem{Path: r.path, Label: v.T(r.label), Active: v.Path == r.path}
	}
	return items
}

func (v ViewContext) Dev() bool { return v.Env == "" || v.Env == "development" }

func (v ViewContext) Dark() bool { return v.Theme == ThemeDark }

// NextTheme is the theme the toggle switches to.
func (v ViewContext) NextTheme() string {
	if v.Dark() {
		return ThemeLight
	}
	return ThemeDark
}

func (v ViewContext) Currency(amount float64) string {
	return format.FormatCurrency(amount, format.WithLocale(v.Locale()))
}

// Date formats an ISO date, showing the raw value when it does not parse.
func (v ViewContext) Date(value string) string {
	s, err := format.FormatDate(value, format.WithLocale(v.Locale()))
	if err != nil {
		return value
	}
	return s
}

// ValidEmail gates the mailto link; malformed addresses render as text.
func (v ViewContext) ValidEmail(s string) bool { return validation.IsEmail(s) }

func (v ViewContext) Initials(first, last string) string { return format.Initials(first, last) }

// Since renders t relative to the request time ("2 minutes ago").
func (v ViewContext) Since(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	now := v.Now
	if now.IsZero() {
		now = time.Now()
	}
	s, err := format.RelativeTime(t, now, v.printer())
	if err != nil {
		return ""
	}
	return s
}
