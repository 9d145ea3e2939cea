package assist

import (
	"net/http"

	"github.com/5w1tchy/vitallife-forms/internal/api/apperr"
	"github.com/5w1tchy/vitallife-forms/internal/api/httpx"
	"github.com/5w1tchy/vitallife-forms/internal/rut"
)

type rutResponse struct {
	Formatted string `json:"formatted"`
}

// GET /forms/rut/format?rut=...
// POST /forms/rut/format
func (h *Handler) FormatRut(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("rut")
	if r.Method == http.MethodPost {
		fields, err := fieldValues(r, "rut")
		if apperr.HandleDecodeError(w, r, err) {
			return
		}
		raw = fields["rut"]
	}

	_, split := rut.Parse(raw)
	h.rec.ObserveRutFormat(split)

	httpx.OK(w, rutResponse{Formatted: h.formatter.Format(raw)})
}
