package faxnumber

import (
	"strings"

	"golang.org/x/text/width"
)

// DefaultCountryCode is prepended to numbers that arrive without a leading +
const DefaultCountryCode = "1"

// Format returns raw in canonical +<country><national> form
// numbers already starting with + pass through untouched, everything else keeps
// only its digits (fullwidth digits are folded to ASCII first) behind +1
// length and country code plausibility are left to the gateway
func Format(raw string) string {
	if strings.HasPrefix(raw, "+") {
		return raw
	}
	folded := width.Fold.String(raw)

	var b strings.Builder
	b.Grow(len(folded) + 2)
	b.WriteByte('+')
	b.WriteString(DefaultCountryCode)
	for i := 0; i < len(folded); i++ {
		if c := folded[i]; c >= '0' && c <= '9' {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// IsCanonical reports whether s is + followed by at least one ASCII digit and nothing else
func IsCanonical(s string) bool {
	if len(s) < 2 || s[0] != '+' {
		return false
	}
	for i := 1; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
