package assist

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/5w1tchy/vitallife-forms/internal/api/apperr"
	"github.com/5w1tchy/vitallife-forms/internal/api/httpx"
	"github.com/5w1tchy/vitallife-forms/internal/forms"
)

const (
	photoField     = "foto_perfil"
	photoMaxMemory = 2 << 20
)

// photoPreview collects what forms.PhotoPreview writes to the page.
type photoPreview struct {
	FileName string `json:"file_name"`
	DataURL  string `json:"data_url,omitempty"`
	Visible  bool   `json:"visible"`
}

func (p *photoPreview) SetSource(src string) { p.DataURL = src }
func (p *photoPreview) SetVisible(v bool) { p.Visible = v }
func (p *photoPreview) SetText(text string) { p.FileName = text }
func (p *photoPreview) SetClassName(string) {}

// POST /forms/photo/preview
func (h *Handler) PhotoPreview(w http.ResponseWriter, r *http.Request) {
	out := &photoPreview{}
	binding := forms.PhotoPreview{Image: out, FileName: out}

	if err := r.ParseMultipartForm(photoMaxMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		h.rec.ObservePhotoPreview("invalid")
		apperr.HandleDecodeError(w, r, err)
		return
	}

	file, header, err := r.FormFile(photoField)
	if err != nil {
		// cleared input
		binding.OnChange(nil)
		h.rec.ObservePhotoPreview("empty")
		httpx.OK(w, out)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.rec.ObservePhotoPreview("invalid")
		apperr.HandleDecodeError(w, r, err)
		return
	}

	f := forms.File{Name: header.Filename, ContentType: header.Header.Get("Content-Type"), Data: data}
	if f.ContentType == "" || f.ContentType == "application/octet-stream" {
		f.ContentType = http.DetectContentType(data)
	}
	if !strings.HasPrefix(f.ContentType, "image/") {
		zerolog.Ctx(r.Context()).Debug().
			Str("content_type", f.ContentType).
			Msg("photo preview: not an image")
		h.rec.ObservePhotoPreview("rejected")
		httpx.ErrorCode(w, http.StatusUnsupportedMediaType, "unsupported_media_type", "la foto de perfil debe ser una imagen")
		return
	}

	binding.OnChange(&f)
	h.rec.ObservePhotoPreview("ok")
	httpx.OK(w, out)
}
