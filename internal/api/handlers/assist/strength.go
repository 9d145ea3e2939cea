package assist

import (
	"net/http"

	"github.com/5w1tchy/vitallife-forms/internal/api/apperr"
	"github.com/5w1tchy/vitallife-forms/internal/api/httpx"
	"github.com/5w1tchy/vitallife-forms/internal/forms"
	"github.com/5w1tchy/vitallife-forms/internal/security/password"
	"github.com/5w1tchy/vitallife-forms/internal/validate"
)

// zxcvbn is superlinear in the input, the five-criteria score is not.

var hintFields = []string{"email", "nombre", "apellido"}

type strengthResponse struct {
	password.Assessment
	Label     string             `json:"label"`
	BarClass  string             `json:"bar_class"`
	TextClass string             `json:"text_class"`
	HelpText  string             `json:"help_text,omitempty"`
	Advisory  *password.Advisory `json:"advisory,omitempty"`
}

// POST /forms/password/strength
func (h *Handler) PasswordStrength(w http.ResponseWriter, r *http.Request) {
	fields, err := fieldValues(r, append([]string{"password"}, hintFields...)...)
	if apperr.HandleDecodeError(w, r, err) {
		return
	}

	pwd := fields["password"]
	a := password.Assess(pwd)
	view := forms.ViewFor(a, h.passwordHelp)
	h.rec.ObserveAssessment(a.Tier.String())

	resp := strengthResponse{
		Assessment: a,
		Label:      a.Tier.Label(),
		BarClass:   view.BarClass,
		TextClass:  view.TextClass,
	}
	if a.Tier == password.TierEmpty {
		resp.HelpText = view.Text
	}

	if validate.ParseFlag(r.URL.Query().Get("advisory")) && pwd != "" {
		hints := make([]string, 0, len(hintFields))
		for _, f := range hintFields {
			hints = append(hints, fields[f])
		}
		adv := password.Estimate(validate.ClampLen(pwd, password.EstimateMaxLen), hints...)
		resp.Advisory = &adv
	}

	httpx.OK(w, resp)
}
