// Package assist serves the registration form's live helpers over HTTP so the
// host page can ask for a strength reading, a formatted RUT or a photo preview.
package assist

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/5w1tchy/vitallife-forms/internal/api/httpx"
	"github.com/5w1tchy/vitallife-forms/internal/config"
	"github.com/5w1tchy/vitallife-forms/internal/rut"
	"github.com/5w1tchy/vitallife-forms/internal/validate"
)

// Recorder receives one call per helper invocation.
type Recorder interface {
	ObserveAssessment(tier string)
	ObserveRutFormat(split bool)
	ObservePhotoPreview(outcome string)
}

type nopRecorder struct{}

func (nopRecorder) ObserveAssessment(string)   {}
func (nopRecorder) ObserveRutFormat(bool)      {}
func (nopRecorder) ObservePhotoPreview(string) {}

type Handler struct {
	formatter    rut.Formatter
	passwordHelp string
	rec          Recorder
}

// New builds the handlers from the forms config. rec may be nil.
func New(cfg config.FormsConfig, rec Recorder) *Handler {
	if rec == nil {
		rec = nopRecorder{}
	}
	help := cfg.PasswordHelp
	if help == "" {
		help = config.DefaultPasswordHelp
	}
	return &Handler{
		formatter:    rut.Formatter{Grouping: cfg.Grouping()},
		passwordHelp: help,
		rec:          rec,
	}
}

func isForm(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded")
}

// fieldValues reads the named string fields from either a urlencoded form or a
// JSON object. JSON values that are not strings read as "".
func fieldValues(r *http.Request, names ...string) (map[string]string, error) {
	out := make(map[string]string, len(names))
	if isForm(r) {
		if err := r.ParseForm(); err != nil {
			return nil, err
		}
		for _, n := range names {
			out[n] = r.PostForm.Get(n)
		}
		return out, nil
	}

	var body map[string]json.RawMessage
	if err := httpx.DecodeJSON(r, &body); err != nil {
		return nil, err
	}
	for _, n := range names {
		out[n] = validate.CoerceString(body[n])
	}
	return out, nil
}
