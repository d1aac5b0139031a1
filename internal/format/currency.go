package format

import (
	"math"

	"golang.org/x/text/currency"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// symbolAfter lists the languages that write the currency symbol after the
// amount, separated by a no-break space.
var symbolAfter = map[string]bool{
	"sv": true, "da": true, "nb": true, "fi": true,
	"de": true, "fr": true, "es": true, "it": true, "pl": true,
}

// compactSteps is scanned from the largest step down.
var compactSteps = []struct {
	size   float64
	suffix string
}{
	{1e12, "T"},
	{1e9, "B"},
	{1e6, "M"},
	{1e3, "K"},
}

// FormatCurrency renders value as money in the locale (default en-US) and
// currency (default USD) using the currency's standard fraction digits
// unless WithFractionDigits overrides them. FormatCurrency(145000) is
// "$145,000.00".
func FormatCurrency(value float64, opts ...Option) string {
	o := newOptions(DefaultLocale, opts)
	unit := currencyUnit(o.currency)
	minF, maxF := fractionDigits(unit, o)
	p := printer(o.locale)
	amount := p.Sprint(number.Decimal(math.Abs(value),
		number.MinFractionDigits(minF),
		number.MaxFractionDigits(maxF),
	))
	return placeSymbol(o.locale, symbol(p, unit), amount, value < 0)
}

// FormatCurrencyCompact renders value in compact notation with at most one
// fraction digit: "$145K", "$1.2M".
func FormatCurrencyCompact(value float64, opts ...Option) string {
	o := newOptions(DefaultLocale, opts)
	unit := currencyUnit(o.currency)
	p := printer(o.locale)

	abs := math.Abs(value)
	// 999.96 rounds to 1000; let the loop pick it up as 1K.
	if smallest := compactSteps[len(compactSteps)-1].size; abs < smallest && roundTo(abs, 1) >= smallest {
		abs = smallest
	}
	suffix := ""
	for i, step := range compactSteps {
		if abs < step.size {
			continue
		}
		scaled := roundTo(abs/step.size, 1)
		// 999,950 rounds to 1000K; promote to the next step.
		if scaled >= 1000 && i > 0 {
			step = compactSteps[i-1]
			scaled = roundTo(abs/step.size, 1)
		}
		abs, suffix = scaled, step.suffix
		break
	}
	amount := p.Sprint(number.Decimal(abs, number.MaxFractionDigits(1))) + suffix
	return placeSymbol(o.locale, symbol(p, unit), amount, value < 0)
}

// FormatNumber groups digits for the locale (default en-US) and keeps at most
// two fraction digits unless WithFractionDigits says otherwise.
func FormatNumber(value float64, opts ...Option) string {
	o := newOptions(DefaultLocale, opts)
	minF, maxF := 0, 2
	if o.fracSet {
		minF, maxF = o.minFrac, o.maxFrac
	}
	return printer(o.locale).Sprint(number.Decimal(value,
		number.MinFractionDigits(minF),
		number.MaxFractionDigits(maxF),
	))
}

func currencyUnit(code string) currency.Unit {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return currency.USD
	}
	return unit
}

func fractionDigits(unit currency.Unit, o options) (int, int) {
	if o.fracSet {
		return o.minFrac, o.maxFrac
	}
	scale, _ := currency.Standard.Rounding(unit)
	return scale, scale
}

func symbol(p *message.Printer, unit currency.Unit) string {
	return p.Sprint(currency.Symbol(unit))
}

func placeSymbol(locale, sym, amount string, negative bool) string {
	sign := ""
	if negative {
		sign = "-"
	}
	keys := localeKeys(locale)
	if symbolAfter[keys[len(keys)-1]] {
		return sign + amount + "\u00a0" + sym
	}
	return sign + sym + amount
}

func roundTo(x float64, digits int) float64 {
	pow := math.Pow(10, float64(digits))
	return roundHalfUp(x*pow) / pow
}
