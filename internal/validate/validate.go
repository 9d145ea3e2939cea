package validate

import (
	"encoding/json"
	"strconv"
	"strings"
)

// CoerceString turns a decoded JSON value into the string a form field would
// hold. null, numbers, bools, arrays and objects all become "" so the live
// helpers never see a non-string.
func CoerceString(raw json.RawMessage) string {
	var s string
	if len(raw) == 0 || json.Unmarshal(raw, &s) != nil {
		return ""
	}
	return s
}

// ParseFlag reads "1", "true", "yes" or "on" (any case) as true.
func ParseFlag(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "yes", "on":
		return true
	}
	b, err := strconv.ParseBool(s)
	return err == nil && b
}

// ClampLen cuts s to at most max bytes on a rune boundary. The live helpers are
// O(n), this only keeps a hostile request from making n huge.
func ClampLen(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !isRuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

func isRuneStart(b byte) bool { return b&0xC0 != 0x80 }
