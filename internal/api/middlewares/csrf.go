package middlewares

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"net/http"
)

type CSRFOptions struct {
	TokenHeader    string        // Default: "X-CSRF-Token"
	CookieName     string        // Default: "csrf_token"
	CookiePath     string        // Default: "/"
	CookieSecure   bool          // Set to true in production with HTTPS
	CookieSameSite http.SameSite // Default: SameSiteStrictMode
}

func DefaultCSRFOptions(secure bool) CSRFOptions {
	return CSRFOptions{
		TokenHeader:    "X-CSRF-Token",
		CookieName:     "csrf_token",
		CookiePath:     "/",
		CookieSecure:   secure,
		CookieSameSite: http.SameSiteStrictMode,
	}
}

// CSRF is a double-submit cookie check on state-changing methods.
func CSRF(opts CSRFOptions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Skip CSRF for safe methods
			if r.Method == http.MethodGet || r.Method == http.MethodHead || r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			cookie, err := r.Cookie(opts.CookieName)
			if err != nil || cookie.Value == "" {
				// no cookie yet: hand one out, but this request still fails
				setCSRFCookie(w, opts, generateCSRFToken())
				http.Error(w, "CSRF token validation failed", http.StatusForbidden)
				return
			}

			provided := r.Header.Get(opts.TokenHeader)
			if !isValidCSRFToken(cookie.Value, provided) {
				http.Error(w, "CSRF token validation failed", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func setCSRFCookie(w http.ResponseWriter, opts CSRFOptions, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     opts.CookieName,
		Value:    token,
		Path:     opts.CookiePath,
		Secure:   opts.CookieSecure,
		HttpOnly: true,
		SameSite: opts.CookieSameSite,
	})
}

func generateCSRFToken() string {
	var b [32]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}

func isValidCSRFToken(expected, provided string) bool {
	if expected == "" || provided == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(expected), []byte(provided)) == 1
}

// CSRFTokenFromRequest returns the cookie token, or a fresh one.
func CSRFTokenFromRequest(r *http.Request, cookieName string) string {
	if cookie, err := r.Cookie(cookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	return generateCSRFToken()
}
