// Package apperr writes RFC 7807 problem responses.
package apperr

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"
)

type FieldError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`    // e.g. "invalid"
	Message string `json:"message"` // human readable
}

type Problem struct {
	Type        string       `json:"type,omitempty"`   // RFC7807 type URI
	Title       string       `json:"title"`            // short summary
	Status      int          `json:"status"`           // HTTP status code
	Detail      string       `json:"detail,omitempty"` // human details
	Instance    string       `json:"instance,omitempty"`
	RequestID   string       `json:"request_id,omitempty"`
	FieldErrors []FieldError `json:"field_errors,omitempty"`
}

func (p Problem) Error() string {
	if p.Detail != "" {
		return p.Title + ": " + p.Detail
	}
	return p.Title
}

// Write fills in status, title, instance and request id when missing, and logs
// server-side problems on the request logger.
func Write(w http.ResponseWriter, r *http.Request, p Problem) {
	if p.Status == 0 {
		p.Status = http.StatusInternalServerError
	}
	if p.Title == "" {
		p.Title = http.StatusText(p.Status)
	}
	if r != nil {
		if p.Instance == "" {
			p.Instance = r.URL.Path
		}
		if p.RequestID == "" {
			// set by the RequestID middleware
			p.RequestID = r.Header.Get("X-Request-ID")
		}
		var ev *zerolog.Event
		if p.Status >= 500 {
			ev = zerolog.Ctx(r.Context()).Error()
		} else {
			ev = zerolog.Ctx(r.Context()).Debug()
		}
		ev.Int("status", p.Status).Str("detail", p.Detail).Msg(p.Title)
	}
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(p.Status)
	_ = json.NewEncoder(w).Encode(p)
}
