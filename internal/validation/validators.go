// Package validation builds per-field form checks that report the first
// failing message for each field.
package validation

import (
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"
)

// Validator returns the message for an invalid value and "" otherwise.
type Validator func(v string) string

// EmailPattern is the local@domain.tld shape accepted for email fields.
var EmailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// when builds a Validator failing with msg whenever ok rejects the value.
func when(ok func(string) bool, msg string) Validator {
	return func(v string) string {
		if ok(v) {
			return ""
		}
		return msg
	}
}

// Required rejects values that are blank after trimming.
func Required(msg string) Validator {
	return when(func(v string) bool { return strings.TrimSpace(v) != "" }, msg)
}

// MinLength rejects values shorter than n runes. Whitespace counts.
func MinLength(n int, msg string) Validator {
	return when(func(v string) bool { return utf8.RuneCountInString(v) >= n }, msg)
}

// Equals rejects anything but an exact match of want.
func Equals(want, msg string) Validator {
	return when(func(v string) bool { return v == want }, msg)
}

// Pattern rejects values re does not match.
func Pattern(re *regexp.Regexp, msg string) Validator {
	return when(re.MatchString, msg)
}

// Email rejects values not shaped like an email address.
func Email(msg string) Validator { return Pattern(EmailPattern, msg) }

// HasPrefix rejects values that start with none of prefixes.
func HasPrefix(msg string, prefixes ...string) Validator {
	return when(func(v string) bool {
		return slices.ContainsFunc(prefixes, func(p string) bool { return strings.HasPrefix(v, p) })
	}, msg)
}

// Optional skips the wrapped validators for the empty string.
func Optional(validators ...Validator) Validator {
	return func(v string) string {
		if v == "" {
			return ""
		}
		return first(v, validators)
	}
}

func first(v string, validators []Validator) string {
	for _, check := range validators {
		if msg := check(v); msg != "" {
			return msg
		}
	}
	return ""
}

// FieldValidator collects one message per failing field.
type FieldValidator struct {
	errors map[string]string
}

// New returns an empty FieldValidator.
func New() *FieldValidator {
	return &FieldValidator{errors: map[string]string{}}
}

// Validate records the first failing validator's message for field.
func (fv *FieldValidator) Validate(field, value string, validators ...Validator) *FieldValidator {
	if msg := first(value, validators); msg != "" {
		fv.errors[field] = msg
	}
	return fv
}

// Errors returns the collected messages keyed by field.
func (fv *FieldValidator) Errors() map[string]string {
	return fv.errors
}
