package storage

import (
	"context"
	"io"
)

// Package storage contains the blob-store capability consumed by the document
// lifecycle. Implementations must avoid local disk and rely on streaming I/O only.

// UploadOptions carries the declared attributes of an uploaded payload.
// Size should be the exact number of bytes if known; if unknown, set to -1 and
// the implementation will buffer/chunk as supported by the backend.
type UploadOptions struct {
	ContentType      string
	Size             int64
	OriginalFilename string
}

// UploadResult identifies an object after a successful upload.
type UploadResult struct {
	// StorageID is the store-issued identifier used for later deletion.
	StorageID string
	// URL is a stable retrieval URL for the object.
	URL  string
	Size int64
}

// BlobStore is the object-storage capability. It is stateless and reentrant;
// concurrent requests may share one instance without coordination.
type BlobStore interface {
	// Upload streams the reader's content into storage and returns the
	// store-issued identifier and retrieval URL.
	Upload(ctx context.Context, r io.Reader, opt UploadOptions) (UploadResult, error)
	// Delete removes an object by its storage id. It is idempotent and
	// tolerant of unknown ids.
	Delete(ctx context.Context, storageID string) error
}
