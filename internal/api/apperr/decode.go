package apperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/5w1tchy/vitallife-forms/internal/api/httpx"
)

// FromDecode maps a request body decoding error to a Problem. Returns (Problem, true) if mapped.
func FromDecode(err error) (Problem, bool) {
	if err == nil {
		return Problem{}, false
	}

	var (
		syntaxErr   *json.SyntaxError
		typeErr     *json.UnmarshalTypeError
		maxBytesErr *http.MaxBytesError
	)

	p := Problem{Status: http.StatusBadRequest, Title: "Bad Request"}

	switch {
	case errors.As(err, &maxBytesErr):
		p.Status = http.StatusRequestEntityTooLarge
		p.Title = "Payload Too Large"
		p.Detail = fmt.Sprintf("request body must not exceed %d bytes", maxBytesErr.Limit)
	case errors.As(err, &syntaxErr):
		p.Detail = fmt.Sprintf("malformed JSON at offset %d", syntaxErr.Offset)
	case errors.Is(err, io.ErrUnexpectedEOF):
		p.Detail = "malformed JSON"
	case errors.Is(err, io.EOF):
		p.Detail = "request body is empty"
	case errors.As(err, &typeErr):
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		p.Detail = "request body must be a JSON object"
		p.FieldErrors = []FieldError{{Field: field, Code: "invalid", Message: "unexpected " + typeErr.Value}}
	case errors.Is(err, httpx.ErrTrailingData):
		p.Detail = err.Error()
	default:
		return Problem{}, false
	}
	return p, true
}

// HandleDecodeError maps err to a Problem and writes it. Returns true if handled.
func HandleDecodeError(w http.ResponseWriter, r *http.Request, err error) bool {
	if err == nil {
		return false
	}
	if p, ok := FromDecode(err); ok {
		Write(w, r, p)
		return true
	}
	Write(w, r, Problem{Status: http.StatusBadRequest, Title: "Bad Request", Detail: "invalid request body"})
	return true
}
