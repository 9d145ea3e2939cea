package password

import (
	"encoding/json"
	"fmt"
)

// Tier is the user-facing severity bucket of an Assessment.
type Tier int

const (
	TierEmpty Tier = iota
	TierWeak
	TierMedium
	TierStrong
	TierVeryStrong
)

type tierInfo struct {
	name      string
	label     string
	barClass  string
	textClass string
}

var tiers = [...]tierInfo{
	TierEmpty:      {"EMPTY", "", "", "form-text mt-1"},
	TierWeak:       {"WEAK", "Fortaleza: Débil", "bg-danger", "form-text text-danger"},
	TierMedium:     {"MEDIUM", "Fortaleza: Media", "bg-warning", "form-text text-warning"},
	TierStrong:     {"STRONG", "Fortaleza: Fuerte", "bg-info", "form-text text-info"},
	TierVeryStrong: {"VERY_STRONG", "Fortaleza: Muy Fuerte", "bg-success", "form-text text-success"},
}

// BarClasses lists every class BarClass can return, so callers can clear them.
var BarClasses = []string{"bg-danger", "bg-warning", "bg-info", "bg-success"}

func (t Tier) info() tierInfo {
	if t < TierEmpty || t > TierVeryStrong {
		return tiers[TierEmpty]
	}
	return tiers[t]
}

func (t Tier) String() string { return t.info().name }

// Label is the help text shown under the field. Empty for TierEmpty: the caller
// shows its own default help text instead.
func (t Tier) Label() string { return t.info().label }

// BarClass is the progress bar background class.
func (t Tier) BarClass() string { return t.info().barClass }

// TextClass is the full class attribute of the help text element.
func (t Tier) TextClass() string { return t.info().textClass }

func (t Tier) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *Tier) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	for i, ti := range tiers {
		if ti.name == s {
			*t = Tier(i)
			return nil
		}
	}
	return fmt.Errorf("password: unknown tier %q", s)
}
