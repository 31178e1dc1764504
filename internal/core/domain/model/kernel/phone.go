package kernel

import (
	"strings"
	"unicode"
)

// Phone is a customer phone number as stored by the customer directory.
// Formatting characters are kept for display; Digits strips them.
type Phone struct {
	raw string
}

// NewPhone wraps a phone number in any formatting, e.g. "(11) 98765-4321".
func NewPhone(raw string) Phone {
	return Phone{raw: strings.TrimSpace(raw)}
}

// String returns the phone number as supplied.
func (p Phone) String() string {
	return p.raw
}

// Digits returns only the ASCII digits of the number.
func (p Phone) Digits() string {
	var b strings.Builder
	for _, r := range p.raw {
		if r <= unicode.MaxASCII && unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// LastDigits returns the final n digits and true, or "" and false when
// the number has fewer than n digits.
func (p Phone) LastDigits(n int) (string, bool) {
	digits := p.Digits()
	if n <= 0 || len(digits) < n {
		return "", false
	}
	return digits[len(digits)-n:], true
}
