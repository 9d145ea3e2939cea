package forms_test

import "slices"

type fakeClasses struct{ set []string }

func (c *fakeClasses) Add(classes ...string) {
	for _, cl := range classes {
		if !slices.Contains(c.set, cl) {
			c.set = append(c.set, cl)
		}
	}
}

func (c *fakeClasses) Remove(classes ...string) {
	c.set = slices.DeleteFunc(c.set, func(s string) bool { return slices.Contains(classes, s) })
}

type fakeBar struct {
	fakeClasses
	width int
	attrs map[string]string
}

func (b *fakeBar) SetWidthPercent(pct int) { b.width = pct }

func (b *fakeBar) SetAttribute(name, value string) {
	if b.attrs == nil {
		b.attrs = map[string]string{}
	}
	b.attrs[name] = value
}

type fakeText struct {
	text      string
	className string
}

func (t *fakeText) SetText(text string)           { t.text = text }
func (t *fakeText) SetClassName(className string) { t.className = className }

type fakeInput struct {
	value string
	attrs map[string]string
}

func (i *fakeInput) Value() string                { return i.value }
func (i *fakeInput) SetValue(v string)            { i.value = v }
func (i *fakeInput) Attribute(name string) string { return i.attrs[name] }
func (i *fakeInput) SetAttribute(name, value string) {
	if i.attrs == nil {
		i.attrs = map[string]string{}
	}
	i.attrs[name] = value
}

type fakeImage struct {
	src     string
	visible bool
}

func (i *fakeImage) SetSource(src string)    { i.src = src }
func (i *fakeImage) SetVisible(visible bool) { i.visible = visible }
