package router_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/5w1tchy/vitallife-forms/internal/api/handlers/assist"
	"github.com/5w1tchy/vitallife-forms/internal/api/middlewares"
	"github.com/5w1tchy/vitallife-forms/internal/api/router"
	"github.com/5w1tchy/vitallife-forms/internal/config"
	"github.com/5w1tchy/vitallife-forms/internal/metrics"
)

func newRouter(csrf bool) http.Handler {
	m := metrics.New()
	d := router.Deps{
		Assist:  assist.New(config.FormsConfig{GroupSeparator: ".", GroupSize: 3}, m),
		Metrics: m.Handler(),
	}
	if csrf {
		opts := middlewares.DefaultCSRFOptions(false)
		d.CSRF = &opts
	}
	return router.Router(d)
}

func TestRouter_Routes(t *testing.T) {
	h := newRouter(false)

	tests := []struct {
		method, target, body string
		want                 int
	}{
		{"GET", "/healthz", "", http.StatusOK},
		{"GET", "/metrics", "", http.StatusOK},
		{"GET", "/forms/rut/format?rut=123", "", http.StatusOK},
		{"POST", "/forms/rut/format", `{"rut":"123"}`, http.StatusOK},
		{"POST", "/forms/password/strength", `{"password":"x"}`, http.StatusOK},
		{"POST", "/forms/photo/preview", "", http.StatusOK},
		{"GET", "/forms/password/strength", "", http.StatusMethodNotAllowed},
		{"GET", "/csrf-token", "", http.StatusNotFound},
		{"GET", "/books/", "", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.target, strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestRouter_CSRF(t *testing.T) {
	h := newRouter(true)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/csrf-token", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	cookies := rec.Result().Cookies()
	if assert.Len(t, cookies, 1) {
		req := httptest.NewRequest("POST", "/forms/rut/format", strings.NewReader(`{"rut":"123"}`))
		req.AddCookie(cookies[0])
		req.Header.Set("X-CSRF-Token", cookies[0].Value)
		rec = httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("POST", "/forms/rut/format", strings.NewReader(`{"rut":"123"}`)))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// safe methods skip the check
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/forms/rut/format?rut=123", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
