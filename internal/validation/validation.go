// Package validation provides pure predicates over user-supplied values.
package validation

import (
	"math"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

var (
	emailRegex = regexp.MustCompile("(?i)^[\\w.!#$%&'*+/=?^_`{|}~-]+@[\\w-]+(\\.[\\w-]+)+$")
	phoneRegex = regexp.MustCompile(`^\+?[0-9\s()-]{7,}$`)
	urlRegex   = regexp.MustCompile(`(?i)^(https?://)?([\w-]+\.)+[\w-]{2,}(/\S*)?$`)

	upperRegex   = regexp.MustCompile(`[A-Z]`)
	lowerRegex   = regexp.MustCompile(`[a-z]`)
	digitRegex   = regexp.MustCompile(`[0-9]`)
	specialRegex = regexp.MustCompile(`[!@#$%^&*(),.?":{}|<>]`)
)

// MinPasswordLength is the shortest password ValidatePassword accepts.
const MinPasswordLength = 8

// Password rule messages, in evaluation order.
const (
	ErrPasswordLength    = "Password must be at least 8 characters long."
	ErrPasswordUppercase = "Password must include an uppercase letter."
	ErrPasswordLowercase = "Password must include a lowercase letter."
	ErrPasswordDigit     = "Password must include a number."
	ErrPasswordSpecial   = "Password must include a special character."
)

func IsEmail(value string) bool {
	return emailRegex.MatchString(strings.TrimSpace(value))
}

func IsPhoneNumber(value string) bool {
	return phoneRegex.MatchString(strings.TrimSpace(value))
}

// IsURL accepts host names with an optional http(s) scheme and path.
// Hosts without a dot (localhost) and explicit ports are rejected.
func IsURL(value string) bool {
	return urlRegex.MatchString(strings.TrimSpace(value))
}

// IsNumeric reports whether value is a finite number or a string that
// parses as one.
func IsNumeric(value any) bool {
	switch v := value.(type) {
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return false
		}
		f, err := strconv.ParseFloat(s, 64)
		return err == nil && !math.IsNaN(f) && !math.IsInf(f, 0)
	case float64:
		return !math.IsNaN(v) && !math.IsInf(v, 0)
	case float32:
		f := float64(v)
		return !math.IsNaN(f) && !math.IsInf(f, 0)
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return true
	}
	return false
}

// IsEmpty reports whether value is nil, a blank string, or an empty slice,
// array, map or channel. Nil pointers and interfaces are empty; other
// values, structs included, are not.
func IsEmpty(value any) bool {
	if value == nil {
		return true
	}
	if s, ok := value.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Slice, reflect.Map, reflect.Array, reflect.Chan:
		return v.Len() == 0
	case reflect.Pointer, reflect.Interface:
		if v.IsNil() {
			return true
		}
		return IsEmpty(v.Elem().Interface())
	case reflect.String:
		return strings.TrimSpace(v.String()) == ""
	}
	return false
}

// HasMinLength compares the trimmed rune count against min.
func HasMinLength(value string, min int) bool {
	return utf8.RuneCountInString(strings.TrimSpace(value)) >= min
}

// HasMaxLength compares the trimmed rune count against max.
func HasMaxLength(value string, max int) bool {
	return utf8.RuneCountInString(strings.TrimSpace(value)) <= max
}

// RequiredFields returns, in the order given, the keys whose values are
// empty or missing.
func RequiredFields(values map[string]any, keys []string) []string {
	missing := make([]string, 0)
	for _, k := range keys {
		if IsEmpty(values[k]) {
			missing = append(missing, k)
		}
	}
	return missing
}

// PasswordResult lists every unmet password rule.
type PasswordResult struct {
	Valid  bool     `json:"isValid"`
	Errors []string `json:"errors"`
}

// ValidatePassword evaluates all rules and reports every failure.
func ValidatePassword(password string) PasswordResult {
	errs := make([]string, 0)
	if utf8.RuneCountInString(password) < MinPasswordLength {
		errs = append(errs, ErrPasswordLength)
	}
	if !upperRegex.MatchString(password) {
		errs = append(errs, ErrPasswordUppercase)
	}
	if !lowerRegex.MatchString(password) {
		errs = append(errs, ErrPasswordLowercase)
	}
	if !digitRegex.MatchString(password) {
		errs = append(errs, ErrPasswordDigit)
	}
	if !specialRegex.MatchString(password) {
		errs = append(errs, ErrPasswordSpecial)
	}
	return PasswordResult{Valid: len(errs) == 0, Errors: errs}
}
