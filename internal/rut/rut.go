// Package rut formats Chilean RUT identifiers while they are being typed.
//
// Formatting is purely cosmetic: the check digit is positioned and uppercased
// but never verified.
package rut

import (
	"strings"

	"golang.org/x/text/width"
)

// Token is a sanitized RUT split into its body and check digit.
type Token struct {
	Body       string // digits (and stray K's) before the check digit, may be empty
	CheckDigit string // one of 0-9 or K, empty when the input was too short to split
}

// Sanitize keeps only 0-9, k and K, in order. Fullwidth forms (as typed by some
// IMEs) are folded to ASCII first.
func Sanitize(raw string) string {
	raw = width.Fold.String(raw)
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == 'k' || r == 'K' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Parse sanitizes raw and splits off the last character as the check digit.
// Inputs that sanitize to one character or less are not split.
func Parse(raw string) (Token, bool) {
	s := Sanitize(raw)
	if len(s) <= 1 {
		return Token{Body: s}, false
	}
	return Token{
		Body:       s[:len(s)-1],
		CheckDigit: strings.ToUpper(s[len(s)-1:]),
	}, true
}

// Formatter groups the RUT body with a configurable separator.
type Formatter struct {
	Grouping Grouping
}

// Format turns raw field content into "12.345.678-K" shape. It is idempotent on
// its own output and never fails.
func (f Formatter) Format(raw string) string {
	tok, ok := Parse(raw)
	if !ok {
		return tok.Body
	}
	body := f.Grouping.orDefault().Group(digitsOnly(tok.Body))
	if body == "" {
		return tok.CheckDigit
	}
	return body + "-" + tok.CheckDigit
}

var std = Formatter{Grouping: Chilean}

// Format uses the Chilean grouping.
func Format(raw string) string { return std.Format(raw) }

// digitsOnly drops K's left inside the body and the leading zeros a numeric
// conversion would drop. An all-zero body collapses to "0".
func digitsOnly(body string) string {
	var b strings.Builder
	b.Grow(len(body))
	sawDigit := false
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c < '0' || c > '9' {
			continue
		}
		sawDigit = true
		if c == '0' && b.Len() == 0 {
			continue
		}
		b.WriteByte(c)
	}
	if sawDigit && b.Len() == 0 {
		return "0"
	}
	return b.String()
}
