// Package validate collects field-keyed validation errors before input
// reaches the persistence layer.
package validate

import (
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// Validator accumulates messages per dot-path field name, preserving the
// order rules were applied.
type Validator struct {
	errors map[string][]string
}

// New returns an empty validator.
func New() *Validator {
	return &Validator{errors: make(map[string][]string)}
}

// Add appends a message for a field.
func (v *Validator) Add(field, message string) {
	v.errors[field] = append(v.errors[field], message)
}

// Require fails when a string is empty after trimming.
func (v *Validator) Require(field, value, message string) {
	if strings.TrimSpace(value) == "" {
		v.Add(field, message)
	}
}

// MinLen fails when a non-empty string is shorter than n runes.
func (v *Validator) MinLen(field, value string, n int, message string) {
	if value != "" && len([]rune(value)) < n {
		v.Add(field, message)
	}
}

// MaxLen fails when a string is longer than n runes.
func (v *Validator) MaxLen(field, value string, n int, message string) {
	if len([]rune(value)) > n {
		v.Add(field, message)
	}
}

// Positive fails when an integer is zero or negative.
func (v *Validator) Positive(field string, value int, message string) {
	if value <= 0 {
		v.Add(field, message)
	}
}

// PositiveID fails when a numeric id is zero.
func (v *Validator) PositiveID(field string, value uint, message string) {
	if value == 0 {
		v.Add(field, message)
	}
}

// NonNegativeDecimal fails when a decimal is negative.
func (v *Validator) NonNegativeDecimal(field string, value decimal.Decimal, message string) {
	if value.IsNegative() {
		v.Add(field, message)
	}
}

// PositiveDecimal fails when a decimal is zero or negative.
func (v *Validator) PositiveDecimal(field string, value decimal.Decimal, message string) {
	if !value.IsPositive() {
		v.Add(field, message)
	}
}

// Slug fails when a non-empty value is not a lowercase-hyphen slug.
func (v *Validator) Slug(field, value, message string) {
	if value != "" && !slugPattern.MatchString(value) {
		v.Add(field, message)
	}
}

// URL fails when a non-empty value is not an absolute http(s) URL.
func (v *Validator) URL(field, value, message string) {
	if value == "" {
		return
	}
	u, err := url.Parse(value)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		v.Add(field, message)
	}
}

// Email fails when a non-empty value has no user@host shape.
func (v *Validator) Email(field, value, message string) {
	if value == "" {
		return
	}
	at := strings.Index(value, "@")
	if at <= 0 || at == len(value)-1 || !strings.Contains(value[at+1:], ".") {
		v.Add(field, message)
	}
}

// Equal fails when two values differ (password confirmation and the like).
func (v *Validator) Equal(field, a, b, message string) {
	if a != b {
		v.Add(field, message)
	}
}

// TimeOrder fails when end is not strictly after start.
func (v *Validator) TimeOrder(field string, start, end time.Time, message string) {
	if !end.After(start) {
		v.Add(field, message)
	}
}

// Valid reports whether no rule has failed.
func (v *Validator) Valid() bool {
	return len(v.errors) == 0
}

// Errors returns the accumulated field errors, nil when valid.
func (v *Validator) Errors() map[string][]string {
	if len(v.errors) == 0 {
		return nil
	}
	return v.errors
}
