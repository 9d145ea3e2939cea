package httpx

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOK(t *testing.T) {
	rec := httptest.NewRecorder()
	OK(rec, map[string]string{"formatted": "12.345.678-5"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"status":"success","data":{"formatted":"12.345.678-5"}}`, rec.Body.String())
}

func TestErrorJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	ErrorJSON(rec, http.StatusTooManyRequests, "demasiadas solicitudes")

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	assert.JSONEq(t, `{"status":"error","error":"demasiadas solicitudes"}`, rec.Body.String())
}

func TestErrorCode(t *testing.T) {
	rec := httptest.NewRecorder()
	ErrorCode(rec, http.StatusUnsupportedMediaType, "unsupported_media_type", "solo imágenes")

	require.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
	var e codedError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &e))
	assert.Equal(t, "unsupported_media_type", e.Error.Code)
	assert.Equal(t, "solo imágenes", e.Error.Message)
}

func TestDecodeJSON(t *testing.T) {
	var v map[string]any

	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"rut":"1"}`))
	require.NoError(t, DecodeJSON(req, &v))
	assert.Equal(t, "1", v["rut"])

	req = httptest.NewRequest("POST", "/", strings.NewReader(`{"rut":"1"} {"rut":"2"}`))
	assert.ErrorIs(t, DecodeJSON(req, &v), ErrTrailingData)

	req = httptest.NewRequest("POST", "/", strings.NewReader(`{"rut":`))
	assert.Error(t, DecodeJSON(req, &v))
}

func TestWriteJSON_NoStore(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteJSON(rec, http.StatusCreated, struct{}{})
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
}
