package middlewares

import (
	"net/http"

	"github.com/5w1tchy/vitallife-forms/internal/api/httpx"
)

// CSRFTokenHandler hands the token to the page's script and sets the cookie.
func CSRFTokenHandler(opts CSRFOptions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := CSRFTokenFromRequest(r, opts.CookieName)
		setCSRFCookie(w, opts, token)
		httpx.OK(w, map[string]string{"csrf_token": token})
	}
}
