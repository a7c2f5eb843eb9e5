// Package core provides the expense domain records and amount parsing.
package core

import (
	"math"
	"strconv"
	"strings"
)

// ParseAmount converts user input to an amount.
//
// A leading "$" and surrounding whitespace are ignored, and a decimal comma
// is accepted in place of a dot. Negative amounts are allowed.
//
// Examples:
//
//	ParseAmount("12.50")  -> 12.5, nil
//	ParseAmount("$12,50") -> 12.5, nil
//	ParseAmount("abc")    -> 0, ErrInvalidAmount
func ParseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimSpace(strings.TrimPrefix(s, "$"))
	if s == "" {
		return 0, ErrInvalidAmount
	}
	if strings.Count(s, ",") == 1 && !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	// ParseFloat accepts these spellings; an expense amount cannot be one.
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrInvalidAmount
	}
	return v, nil
}
