package handler

import (
	"context"
	"mime/multipart"

	"github.com/labstack/echo/v4"

	"github.com/yallaevents/ems-backend/internal/storage"
)

// imageFromForm looks for the optional multipart "image" field.  A missing
// field is not an error; an unreadable form is.
func imageFromForm(c echo.Context) (*multipart.FileHeader, bool) {
	fh, err := c.FormFile("image")
	if err != nil {
		return nil, false
	}
	return fh, true
}

// saveImage validates and stores an upload, returning the generated object
// name.  Validation failures surface as storage.ErrInvalidImage so callers
// can map them to a client error.
func saveImage(ctx context.Context, blobs storage.BlobStore, fh *multipart.FileHeader) (string, error) {
	if err := storage.ValidateImage(fh.Filename, fh.Header.Get("Content-Type"), fh.Size); err != nil {
		return "", err
	}
	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	name := storage.ObjectName(fh.Filename)
	if err := blobs.Save(ctx, name, src); err != nil {
		return "", err
	}
	return name, nil
}

// discardBlob removes an object best-effort.  Failure is logged by the
// caller via echo's logger and never fails the request.
func discardBlob(ctx context.Context, c echo.Context, blobs storage.BlobStore, name *string) {
	if name == nil || *name == "" {
		return
	}
	if err := blobs.Delete(ctx, *name); err != nil {
		c.Logger().Warnf("blob cleanup failed for %s: %v", *name, err)
	}
}
