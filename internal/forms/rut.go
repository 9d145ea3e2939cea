package forms

import "github.com/5w1tchy/vitallife-forms/internal/rut"

// RutField reformats the RUT input in place after each keystroke.
// Cursor placement is left to the caller.
type RutField struct {
	Input     InputElement
	Formatter rut.Formatter
}

func (f RutField) OnInput() string {
	out := f.Formatter.Format(f.Input.Value())
	f.Input.SetValue(out)
	return out
}
