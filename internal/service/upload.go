package service

import (
	"context"
	"fmt"
	"io"

	"educme-api/internal/model"
	"educme-api/internal/storage"
)

// MaxFilesPerDocument caps how many files one document may reference.
const MaxFilesPerDocument = 3

// FilePayload is one raw uploaded file: a byte stream plus the attributes
// declared by the client.
type FilePayload struct {
	Reader      io.Reader
	Filename    string
	ContentType string
	Size        int64
}

// UploadCoordinator uploads an ordered batch of files to the blob store with
// an all-or-nothing postcondition: either every file is stored and a FileRef
// is returned for each, or no uploaded blob from the batch remains (modulo
// compensation failures, which are logged for manual reconciliation).
type UploadCoordinator struct {
	store storage.BlobStore
}

// NewUploadCoordinator constructs an UploadCoordinator over the given blob store.
func NewUploadCoordinator(store storage.BlobStore) *UploadCoordinator {
	return &UploadCoordinator{store: store}
}

// UploadAll uploads the files sequentially, in input order, and returns one
// FileRef per file in the same order.
//
// Files are processed one at a time rather than concurrently: the cap is
// small, this bounds in-flight uploads to one per request, and it makes the
// compensation set deterministic. On the first upload failure the sequence
// stops, every already-uploaded blob receives one compensating delete attempt,
// and the original failure is returned as an *UploadFailure.
func (u *UploadCoordinator) UploadAll(ctx context.Context, files []FilePayload) ([]model.FileRef, error) {
	if len(files) == 0 {
		return nil, &ValidationError{Message: "at least one file (image or PDF) is required"}
	}
	if len(files) > MaxFilesPerDocument {
		return nil, &ValidationError{Message: fmt.Sprintf("at most %d files are allowed", MaxFilesPerDocument)}
	}

	refs := make([]model.FileRef, 0, len(files))
	for i, f := range files {
		res, err := u.store.Upload(ctx, f.Reader, storage.UploadOptions{
			ContentType:      f.ContentType,
			Size:             f.Size,
			OriginalFilename: f.Filename,
		})
		if err != nil {
			u.Compensate(ctx, "upload", refs)
			return nil, &UploadFailure{Position: i + 1, Filename: f.Filename, Err: err}
		}
		refs = append(refs, model.FileRef{
			URL:       res.URL,
			StorageID: res.StorageID,
			Kind:      model.KindForContentType(f.ContentType),
		})
	}
	return refs, nil
}

// Compensate issues one best-effort delete per FileRef. Each delete is
// attempted independently: a failure is logged and does not stop the loop,
// and nothing is retried. The originating operation is recorded with every
// failure so leaked blobs can be reconciled by hand.
func (u *UploadCoordinator) Compensate(ctx context.Context, operation string, refs []model.FileRef) {
	for _, ref := range refs {
		if err := u.store.Delete(ctx, ref.StorageID); err != nil {
			logCompensationFailure(operation, ref.StorageID, err)
		}
	}
}
