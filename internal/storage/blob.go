// Package storage abstracts where uploaded event images live.  The catalog
// only ever persists an object name; turning that name into a fetchable URL
// is the store's job, so swapping local disk for S3 is a configuration
// change, not a code change.
package storage

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// BlobStore stores uploaded images under generated object names and
// resolves names to publicly fetchable URLs.  Delete is best-effort at
// every call site: a failed cleanup is logged, never fatal.
type BlobStore interface {
	Save(ctx context.Context, objectName string, r io.Reader) error
	Delete(ctx context.Context, objectName string) error
	URL(objectName string) string
}

// ErrInvalidImage rejects uploads that are too large or not an accepted
// image type.  The whole request fails with a client error.
var ErrInvalidImage = errors.New("invalid image upload")

// MaxImageSize caps uploads at 5MB.
const MaxImageSize = 5 << 20

// imageExts is the accepted extension allowlist.
var imageExts = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// ValidateImage checks size and type constraints for an upload.  Both the
// file extension and the declared content type must look like an image.
func ValidateImage(filename, contentType string, size int64) error {
	if size <= 0 || size > MaxImageSize {
		return ErrInvalidImage
	}
	if !imageExts[strings.ToLower(filepath.Ext(filename))] {
		return ErrInvalidImage
	}
	if !strings.HasPrefix(contentType, "image/") {
		return ErrInvalidImage
	}
	return nil
}

// ObjectName generates a collision-free stored name preserving the
// original extension.
func ObjectName(original string) string {
	return "event_" + uuid.NewString() + strings.ToLower(filepath.Ext(original))
}
