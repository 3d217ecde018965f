// Package blob abstracts the external object store that holds note
// attachments.
//
// Uploads are a two-step protocol: the client asks the API for a one-time
// presigned PUT URL, uploads the file bytes directly to the store, then passes
// the returned key when creating or updating a note. The API never proxies
// file bytes.
package blob

import (
	"context"
	"time"
)

// Upload is a presigned upload slot: the key to reference later and the URL
// to PUT the bytes to.
type Upload struct {
	Key string
	URL string
}

// Store is the object-store client the note handlers depend on.
type Store interface {
	// PresignedUpload returns a one-time upload slot with a fresh object key.
	PresignedUpload(ctx context.Context) (Upload, error)

	// PresignedGet resolves a stored key to a time-limited download URL.
	PresignedGet(ctx context.Context, key string) (string, error)

	// Delete removes the object for key. Deleting is not idempotent at this
	// layer: the attachment lifecycle deletes each blob exactly once.
	Delete(ctx context.Context, key string) error
}

// DefaultURLExpiry is how long presigned URLs stay valid when no expiry is
// configured.
const DefaultURLExpiry = 15 * time.Minute
