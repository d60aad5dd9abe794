package storage

import (
	"context"
	"time"
)

// URLExpiry is the validity window for every signed upload and download
// grant.
const URLExpiry = 3600 * time.Second

// ObjectStore is the capability the build lifecycle needs from object
// storage: time-limited signed URLs and deletion by key. Signing does not
// verify the object exists; an upload grant is issued before any bytes are
// written.
type ObjectStore interface {
	// PresignUpload returns a signed PUT URL for the key, valid for
	// URLExpiry, with content type application/octet-stream.
	PresignUpload(ctx context.Context, key string) (string, error)

	// PresignDownload returns a signed GET URL for the key, valid for
	// URLExpiry.
	PresignDownload(ctx context.Context, key string) (string, error)

	// DeleteObject removes the object at key.
	DeleteObject(ctx context.Context, key string) error
}
