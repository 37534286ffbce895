// Package blob defines the narrow contract the identity service uses
// against the external binary object store, plus its S3 implementation.
package blob

import "context"

// File is a raw uploaded file as handed over by the transport layer.
type File struct {
	Data        []byte
	ContentType string
	Filename    string // original client-side filename
}

// Category namespaces uploaded objects by purpose.
type Category string

const (
	CategoryAvatar Category = "avatars"
	CategoryResume Category = "resumes"
)

// Uploader accepts raw file bytes and returns a stable, retrievable URL.
type Uploader interface {
	// Upload stores f under the given category and returns its URL.
	Upload(ctx context.Context, f File, category Category) (string, error)

	// Delete removes a previously uploaded object by its URL. Used as a
	// compensating action when a registration fails after its photo was
	// already uploaded.
	Delete(ctx context.Context, url string) error
}

// allowedImageTypes are the mime types accepted for image attachments.
var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/jpg":  ".jpg",
	"image/png":  ".png",
}

// AllowedImageType reports whether contentType is an accepted image type.
func AllowedImageType(contentType string) bool {
	_, ok := allowedImageTypes[contentType]
	return ok
}
