package rut

import "strings"

// Grouping describes digit grouping: Size digits per group counted from the
// right, joined by Separator.
type Grouping struct {
	Separator string
	Size      int
}

// Chilean is es-CL grouping: "12.345.678".
var Chilean = Grouping{Separator: ".", Size: 3}

func (g Grouping) orDefault() Grouping {
	if g.Size < 1 {
		return Chilean
	}
	return g
}

// Group inserts the separator into a digit string. It works on any length,
// so bodies longer than an int64 are not truncated.
func (g Grouping) Group(digits string) string {
	g = g.orDefault()
	n := len(digits)
	if n <= g.Size {
		return digits
	}
	var b strings.Builder
	b.Grow(n + (n-1)/g.Size*len(g.Separator))
	head := n % g.Size
	if head == 0 {
		head = g.Size
	}
	b.WriteString(digits[:head])
	for i := head; i < n; i += g.Size {
		b.WriteString(g.Separator)
		b.WriteString(digits[i : i+g.Size])
	}
	return b.String()
}
