package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"educme-api/internal/model"
	"educme-api/internal/storage"
	storeMocks "educme-api/internal/storage/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func payload(name, contentType, content string) FilePayload {
	return FilePayload{
		Reader:      strings.NewReader(content),
		Filename:    name,
		ContentType: contentType,
		Size:        int64(len(content)),
	}
}

func optsFor(name string) interface{} {
	return mock.MatchedBy(func(opt storage.UploadOptions) bool {
		return opt.OriginalFilename == name
	})
}

func TestUploadCoordinator_UploadAll(t *testing.T) {
	ctx := context.Background()

	t.Run("all files uploaded in input order", func(t *testing.T) {
		mStore := new(storeMocks.MockBlobStore)
		u := NewUploadCoordinator(mStore)

		mStore.On("Upload", ctx, mock.Anything, optsFor("a.png")).
			Return(storage.UploadResult{StorageID: "documents/a", URL: "http://s/a"}, nil)
		mStore.On("Upload", ctx, mock.Anything, optsFor("b.pdf")).
			Return(storage.UploadResult{StorageID: "documents/b", URL: "http://s/b"}, nil)
		mStore.On("Upload", ctx, mock.Anything, optsFor("c.jpg")).
			Return(storage.UploadResult{StorageID: "documents/c", URL: "http://s/c"}, nil)

		refs, err := u.UploadAll(ctx, []FilePayload{
			payload("a.png", "image/png", "aaa"),
			payload("b.pdf", "application/pdf", "bbb"),
			payload("c.jpg", "image/jpeg", "ccc"),
		})

		require.NoError(t, err)
		require.Len(t, refs, 3)
		assert.Equal(t, []model.FileRef{
			{URL: "http://s/a", StorageID: "documents/a", Kind: model.FileKindImage},
			{URL: "http://s/b", StorageID: "documents/b", Kind: model.FileKindPDF},
			{URL: "http://s/c", StorageID: "documents/c", Kind: model.FileKindImage},
		}, refs)
		mStore.AssertExpectations(t)
	})

	t.Run("empty batch fails fast with no store calls", func(t *testing.T) {
		mStore := new(storeMocks.MockBlobStore)
		u := NewUploadCoordinator(mStore)

		refs, err := u.UploadAll(ctx, nil)

		assert.Nil(t, refs)
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		mStore.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything)
		mStore.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("too many files fails fast with no store calls", func(t *testing.T) {
		mStore := new(storeMocks.MockBlobStore)
		u := NewUploadCoordinator(mStore)

		files := []FilePayload{
			payload("1.pdf", "application/pdf", "1"),
			payload("2.pdf", "application/pdf", "2"),
			payload("3.pdf", "application/pdf", "3"),
			payload("4.pdf", "application/pdf", "4"),
		}
		refs, err := u.UploadAll(ctx, files)

		assert.Nil(t, refs)
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		mStore.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("second upload fails, first is compensated exactly once", func(t *testing.T) {
		mStore := new(storeMocks.MockBlobStore)
		u := NewUploadCoordinator(mStore)

		mStore.On("Upload", ctx, mock.Anything, optsFor("ok.png")).
			Return(storage.UploadResult{StorageID: "documents/ok", URL: "http://s/ok"}, nil)
		mStore.On("Upload", ctx, mock.Anything, optsFor("boom.pdf")).
			Return(storage.UploadResult{}, errors.New("bucket unavailable"))
		mStore.On("Delete", ctx, "documents/ok").Return(nil)

		refs, err := u.UploadAll(ctx, []FilePayload{
			payload("ok.png", "image/png", "ok"),
			payload("boom.pdf", "application/pdf", "boom"),
		})

		assert.Nil(t, refs)
		var uErr *UploadFailure
		require.ErrorAs(t, err, &uErr)
		assert.Equal(t, 2, uErr.Position)
		assert.Equal(t, "boom.pdf", uErr.Filename)
		assert.EqualError(t, uErr.Err, "bucket unavailable")
		mStore.AssertNumberOfCalls(t, "Delete", 1)
		mStore.AssertExpectations(t)
	})

	t.Run("first upload fails, nothing to compensate and later files untouched", func(t *testing.T) {
		mStore := new(storeMocks.MockBlobStore)
		u := NewUploadCoordinator(mStore)

		mStore.On("Upload", ctx, mock.Anything, optsFor("boom.png")).
			Return(storage.UploadResult{}, errors.New("timeout"))

		refs, err := u.UploadAll(ctx, []FilePayload{
			payload("boom.png", "image/png", "x"),
			payload("never.pdf", "application/pdf", "y"),
		})

		assert.Nil(t, refs)
		var uErr *UploadFailure
		require.ErrorAs(t, err, &uErr)
		assert.Equal(t, 1, uErr.Position)
		mStore.AssertNumberOfCalls(t, "Upload", 1)
		mStore.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("compensation failures do not mask the upload failure", func(t *testing.T) {
		mStore := new(storeMocks.MockBlobStore)
		u := NewUploadCoordinator(mStore)

		mStore.On("Upload", ctx, mock.Anything, optsFor("a.png")).
			Return(storage.UploadResult{StorageID: "documents/a"}, nil)
		mStore.On("Upload", ctx, mock.Anything, optsFor("b.png")).
			Return(storage.UploadResult{StorageID: "documents/b"}, nil)
		mStore.On("Upload", ctx, mock.Anything, optsFor("boom.pdf")).
			Return(storage.UploadResult{}, errors.New("upload broke"))
		mStore.On("Delete", ctx, "documents/a").Return(errors.New("cleanup broke"))
		mStore.On("Delete", ctx, "documents/b").Return(nil)

		_, err := u.UploadAll(ctx, []FilePayload{
			payload("a.png", "image/png", "a"),
			payload("b.png", "image/png", "b"),
			payload("boom.pdf", "application/pdf", "c"),
		})

		var uErr *UploadFailure
		require.ErrorAs(t, err, &uErr)
		assert.EqualError(t, uErr.Err, "upload broke")
		// One compensating delete per uploaded file, even though the first failed.
		mStore.AssertNumberOfCalls(t, "Delete", 2)
		mStore.AssertExpectations(t)
	})

	t.Run("unknown content type falls back to pdf kind", func(t *testing.T) {
		mStore := new(storeMocks.MockBlobStore)
		u := NewUploadCoordinator(mStore)

		mStore.On("Upload", ctx, mock.Anything, mock.Anything).
			Return(storage.UploadResult{StorageID: "documents/x", URL: "http://s/x"}, nil)

		refs, err := u.UploadAll(ctx, []FilePayload{payload("x.bin", "application/octet-stream", "x")})

		require.NoError(t, err)
		assert.Equal(t, model.FileKindPDF, refs[0].Kind)
	})
}

func TestUploadCoordinator_Compensate(t *testing.T) {
	ctx := context.Background()
	mStore := new(storeMocks.MockBlobStore)
	u := NewUploadCoordinator(mStore)

	mStore.On("Delete", ctx, "documents/a").Return(errors.New("gone wrong"))
	mStore.On("Delete", ctx, "documents/b").Return(nil)

	u.Compensate(ctx, "create_document", []model.FileRef{
		{StorageID: "documents/a"},
		{StorageID: "documents/b"},
	})

	// Every ref gets exactly one attempt regardless of earlier failures.
	mStore.AssertNumberOfCalls(t, "Delete", 2)
	mStore.AssertExpectations(t)
}
