package router

import (
	"net/http"

	"github.com/5w1tchy/vitallife-forms/internal/api/middlewares"
)

// MountForms wires all /forms/* helpers, behind the CSRF check when enabled.
func MountForms(mux *http.ServeMux, d Deps) {
	gate := func(next http.Handler) http.Handler {
		if d.CSRF == nil {
			return next
		}
		return middlewares.CSRF(*d.CSRF)(next)
	}

	h := d.Assist

	// Password strength bar
	mux.Handle("POST /forms/password/strength", gate(http.HandlerFunc(h.PasswordStrength)))

	// RUT live formatting
	mux.Handle("GET /forms/rut/format", gate(http.HandlerFunc(h.FormatRut)))
	mux.Handle("POST /forms/rut/format", gate(http.HandlerFunc(h.FormatRut)))

	// Profile photo preview
	mux.Handle("POST /forms/photo/preview", gate(http.HandlerFunc(h.PhotoPreview)))
}
