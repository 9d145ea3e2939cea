package forms

import (
	"strconv"
	"time"
)

// FooterYear writes the current year into el.
func FooterYear(el TextElement, now func() time.Time) {
	if now == nil {
		now = time.Now
	}
	el.SetText(strconv.Itoa(now().Year()))
}
