// Package validation holds the pure field validators the form
// controllers recompute per keystroke. Each returns the error text for
// the field, or "" when the value is acceptable.
package validation

import (
	"regexp"
	"strconv"
	"strings"
)

var rePhone10 = regexp.MustCompile(`^[0-9]{10}$`)
var rePincode = regexp.MustCompile(`^[0-9]{6}$`)

func Required(v, label string) string {
	if strings.TrimSpace(v) == "" {
		return label + " is required"
	}
	return ""
}

func Phone(v string) string {
	if strings.TrimSpace(v) == "" {
		return "phone is required"
	}
	if !rePhone10.MatchString(v) {
		return "phone must be 10 digits"
	}
	return ""
}

func Pincode(v string) string {
	if strings.TrimSpace(v) == "" {
		return "pincode is required"
	}
	if !rePincode.MatchString(v) {
		return "pincode must be 6 digits"
	}
	return ""
}

// Money accepts a positive amount with at most 2 decimal places.
func Money(v, label string) string {
	if strings.TrimSpace(v) == "" {
		return label + " is required"
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return label + " must be a number"
	}
	if f <= 0 {
		return label + " must be greater than zero"
	}
	if i := strings.IndexByte(v, '.'); i >= 0 && len(v)-i-1 > 2 {
		return label + " must have at most 2 decimal places"
	}
	return ""
}

// Quantity accepts a positive decimal quantity (e.g. "2", "1.5").
func Quantity(v string) string {
	if strings.TrimSpace(v) == "" {
		return "quantity is required"
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return "quantity must be a number"
	}
	if f <= 0 {
		return "quantity must be greater than zero"
	}
	return ""
}

// TimestampMS accepts a positive millisecond epoch timestamp.
func TimestampMS(ms int64, label string) string {
	if ms <= 0 {
		return label + " is required"
	}
	return ""
}

// Selected flags a missing related-entity reference ("no employee
// selected" is itself a validated field).
func Selected(id uint, label string) string {
	if id == 0 {
		return "no " + label + " selected"
	}
	return ""
}

// OneOf checks an enumerated field.
func OneOf(v, label string, allowed ...string) string {
	if strings.TrimSpace(v) == "" {
		return label + " is required"
	}
	for _, a := range allowed {
		if v == a {
			return ""
		}
	}
	return label + " must be one of " + strings.Join(allowed, ", ")
}
