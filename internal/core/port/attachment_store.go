package port

import (
	"context"
	"io"
)

// AttachmentStore holds uploaded files in an object store. Entity records
// only keep the public URL returned by Upload.
type AttachmentStore interface {
	Upload(ctx context.Context, fileName, contentType string, body io.Reader, size int64) (string, error)
	// Delete removes the object behind a previously returned URL. Callers
	// treat failures as best-effort: entity deletion must never be blocked
	// by storage cleanup.
	Delete(ctx context.Context, fileURL string) error
}
