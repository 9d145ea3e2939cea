package forms

import (
	"encoding/base64"
	"net/http"
)

// NoFileSelected is shown when the file input is cleared.
const NoFileSelected = "Ningún archivo seleccionado"

// File is the first file picked in the profile photo input.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// DataURL encodes the file as a data: URL usable as an img src. Missing
// content types are sniffed from the bytes.
func DataURL(f File) string {
	ct := f.ContentType
	if ct == "" {
		ct = http.DetectContentType(f.Data)
	}
	return "data:" + ct + ";base64," + base64.StdEncoding.EncodeToString(f.Data)
}

// PhotoPreview shows the picked photo and echoes its filename.
type PhotoPreview struct {
	Image    ImageElement
	FileName TextElement
}

// OnChange receives nil when no file is selected.
func (p PhotoPreview) OnChange(f *File) {
	if f == nil {
		p.Image.SetVisible(false)
		p.FileName.SetText(NoFileSelected)
		return
	}
	p.Image.SetSource(DataURL(*f))
	p.Image.SetVisible(true)
	p.FileName.SetText(f.Name)
}
