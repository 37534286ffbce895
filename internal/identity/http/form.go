package http

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/jahangeer-44/Job-Nest/internal/identity/blob"
)

// maxUploadBytes caps in-memory multipart parsing (10 MiB, matching the
// size of a generous image).
const maxUploadBytes = 10 << 20

// parseRequestForm parses either a multipart or urlencoded body so the
// credential endpoints accept both.
func parseRequestForm(r *http.Request) error {
	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "multipart/form-data") {
		return r.ParseMultipartForm(maxUploadBytes)
	}
	return r.ParseForm()
}

// formField returns a pointer to the field's value when the field was
// included in the request, nil when it was omitted. An included-but-empty
// field yields a pointer to "", which the service treats as a deliberate
// overwrite.
func formField(r *http.Request, name string) *string {
	if r.MultipartForm != nil {
		if vs, ok := r.MultipartForm.Value[name]; ok && len(vs) > 0 {
			return &vs[0]
		}
		return nil
	}
	if vs, ok := r.PostForm[name]; ok && len(vs) > 0 {
		return &vs[0]
	}
	return nil
}

func formValue(r *http.Request, name string) string {
	if v := formField(r, name); v != nil {
		return *v
	}
	return ""
}

// formFile extracts the uploaded "file" part, if any.
func formFile(r *http.Request) (*blob.File, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}

	part, header, err := r.FormFile("file")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer part.Close()

	data, err := io.ReadAll(part)
	if err != nil {
		return nil, err
	}

	return &blob.File{
		Data:        data,
		ContentType: partContentType(header),
		Filename:    header.Filename,
	}, nil
}

func partContentType(header *multipart.FileHeader) string {
	// The client-declared part header; the service validates it against
	// the allowed image types.
	return header.Header.Get("Content-Type")
}
