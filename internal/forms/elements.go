// Package forms binds the registration form's live helpers to page elements.
//
// Elements are injected as small interfaces instead of being looked up by id,
// so the same bindings drive a browser bridge, a server-side preview or a test fake.
package forms

// ClassList mirrors element.classList.
type ClassList interface {
	Add(classes ...string)
	Remove(classes ...string)
}

// TextElement is any element whose text and class attribute can be replaced.
type TextElement interface {
	SetText(text string)
	SetClassName(className string)
}

// ProgressBar is the strength bar.
type ProgressBar interface {
	ClassList
	SetWidthPercent(pct int)
	SetAttribute(name, value string)
}

// InputElement is a form control.
type InputElement interface {
	Value() string
	SetValue(v string)
	Attribute(name string) string
	SetAttribute(name, value string)
}

// ImageElement is the profile photo preview.
type ImageElement interface {
	SetSource(src string)
	SetVisible(visible bool)
}
