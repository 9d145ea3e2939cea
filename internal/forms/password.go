package forms

import (
	"strconv"

	"github.com/5w1tchy/vitallife-forms/internal/security/password"
)

// StrengthView is what the page shows for one assessment.
type StrengthView struct {
	WidthPercent int    `json:"width_percent"`
	BarClass     string `json:"bar_class"`
	Text         string `json:"text"`
	TextClass    string `json:"text_class"`
}

// ViewFor renders an assessment. An empty password shows defaultHelp, the
// host page's own help text, instead of a strength label.
func ViewFor(a password.Assessment, defaultHelp string) StrengthView {
	v := StrengthView{
		WidthPercent: a.WidthPercent,
		BarClass:     a.Tier.BarClass(),
		Text:         a.Tier.Label(),
		TextClass:    a.Tier.TextClass(),
	}
	if a.Tier == password.TierEmpty {
		v.Text = defaultHelp
	}
	return v
}

// PasswordStrength updates the bar and help text on every input event.
type PasswordStrength struct {
	Bar         ProgressBar
	Text        TextElement
	DefaultHelp string
}

func (p PasswordStrength) OnInput(value string) password.Assessment {
	a := password.Assess(value)
	v := ViewFor(a, p.DefaultHelp)

	p.Bar.SetWidthPercent(v.WidthPercent)
	p.Bar.SetAttribute("aria-valuenow", strconv.Itoa(v.WidthPercent))
	p.Bar.Remove(password.BarClasses...)
	if v.BarClass != "" {
		p.Bar.Add(v.BarClass)
	}

	p.Text.SetText(v.Text)
	p.Text.SetClassName(v.TextClass)
	return a
}

const (
	iconShown  = "bi-eye"
	iconHidden = "bi-eye-slash"
)

// VisibilityToggle flips a password input between masked and plain text.
type VisibilityToggle struct {
	Input InputElement
	Icon  ClassList
}

// Toggle returns true when the password is now visible.
func (t VisibilityToggle) Toggle() bool {
	if t.Input.Attribute("type") == "password" {
		t.Input.SetAttribute("type", "text")
		t.Icon.Remove(iconHidden)
		t.Icon.Add(iconShown)
		return true
	}
	t.Input.SetAttribute("type", "password")
	t.Icon.Remove(iconShown)
	t.Icon.Add(iconHidden)
	return false
}
