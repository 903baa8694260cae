package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"

	"educme-api/internal/model"
	"educme-api/internal/repository"
	"educme-api/internal/storage"
)

var academicYearPattern = regexp.MustCompile(`^\d{4}-\d{4}$`)

// CreateDocumentInput carries the metadata fields for a new document.
type CreateDocumentInput struct {
	Name         string
	Subject      string
	Level        string
	AcademicYear string
	Description  string
	ProgramID    string
}

// DocumentService defines the use cases for handling documents.
type DocumentService interface {
	// Create uploads the files, persists the document record, and returns the
	// stored document. On a partial upload failure the already-uploaded blobs
	// are compensated and no record is written; on a record-store failure the
	// just-uploaded blobs receive best-effort cleanup before the error is
	// surfaced.
	Create(ctx context.Context, in CreateDocumentInput, files []FilePayload) (*model.Document, error)

	// Get returns a single document by its ID.
	Get(ctx context.Context, id string) (*model.Document, error)

	// List returns documents newest first, optionally filtered by program.
	List(ctx context.Context, programID string) ([]model.Document, error)

	// Search matches query as a case-insensitive substring of name, subject
	// or description.
	Search(ctx context.Context, query string) ([]model.Document, error)

	// Delete removes a document's blobs (best effort) and then its record.
	Delete(ctx context.Context, id string) error
}

// documentService is a concrete implementation of DocumentService.
type documentService struct {
	uploader *UploadCoordinator
	store    storage.BlobStore
	repo     repository.DocumentRepository
}

// NewDocumentService constructs a new DocumentService.
func NewDocumentService(store storage.BlobStore, repo repository.DocumentRepository) DocumentService {
	return &documentService{
		uploader: NewUploadCoordinator(store),
		store:    store,
		repo:     repo,
	}
}

// Create validates the metadata, delegates the file batch to the upload
// coordinator, then writes the record. Files go first and the record second;
// if the record write fails, the uploaded blobs are orphans and each receives
// one best-effort cleanup delete before the failure is surfaced.
func (s *documentService) Create(ctx context.Context, in CreateDocumentInput, files []FilePayload) (*model.Document, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	refs, err := s.uploader.UploadAll(ctx, files)
	if err != nil {
		return nil, err
	}

	doc := &model.Document{
		Name:         in.Name,
		Subject:      in.Subject,
		Level:        in.Level,
		AcademicYear: in.AcademicYear,
		Description:  in.Description,
		ProgramID:    in.ProgramID,
		Files:        refs,
		PublishedAt:  time.Now().UTC(),
	}

	stored, err := s.repo.Create(ctx, doc)
	if err != nil {
		s.uploader.Compensate(ctx, "create_document", refs)
		return nil, &RecordStoreFailure{Op: "create", Err: err}
	}
	return stored, nil
}

// Get returns a document by ID.
func (s *documentService) Get(ctx context.Context, id string) (*model.Document, error) {
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, &RecordStoreFailure{Op: "get", Err: err}
	}
	return doc, nil
}

// List returns documents, optionally restricted to one program.
func (s *documentService) List(ctx context.Context, programID string) ([]model.Document, error) {
	if programID != "" {
		if _, err := uuid.Parse(programID); err != nil {
			return nil, &ValidationError{Message: "programId must be a valid UUID"}
		}
	}
	docs, err := s.repo.List(ctx, programID)
	if err != nil {
		return nil, &RecordStoreFailure{Op: "list", Err: err}
	}
	return docs, nil
}

// Search returns documents matching the query text.
func (s *documentService) Search(ctx context.Context, query string) ([]model.Document, error) {
	if query == "" {
		return nil, &ValidationError{Message: "query parameter q is required"}
	}
	docs, err := s.repo.Search(ctx, query)
	if err != nil {
		return nil, &RecordStoreFailure{Op: "search", Err: err}
	}
	return docs, nil
}

// Delete fetches the document, deletes each referenced blob best-effort, then
// deletes the record. Blob deletes go first and are independent: a failure is
// logged but does not abort the loop or the operation. The record delete is
// authoritative — its failure is surfaced, because a dangling record with dead
// links is still discoverable and can be cleaned up, while a blob with no
// owning record is invisible and permanently leaked.
func (s *documentService) Delete(ctx context.Context, id string) error {
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return &RecordStoreFailure{Op: "get", Err: err}
	}

	for _, ref := range doc.Files {
		if err := s.store.Delete(ctx, ref.StorageID); err != nil {
			logCompensationFailure("delete_document", ref.StorageID, err)
		}
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return &RecordStoreFailure{Op: "delete", Err: err}
	}
	return nil
}

func validateInput(in CreateDocumentInput) error {
	switch {
	case in.Name == "" || len(in.Name) > 255:
		return &ValidationError{Message: "name is required and must be at most 255 characters"}
	case in.Subject == "" || len(in.Subject) > 100:
		return &ValidationError{Message: "subject is required and must be at most 100 characters"}
	case !model.ValidLevel(in.Level):
		return &ValidationError{Message: fmt.Sprintf("level must be one of %v", model.Levels)}
	case !academicYearPattern.MatchString(in.AcademicYear):
		return &ValidationError{Message: "academicYear must match the format YYYY-YYYY"}
	case len(in.Description) > 1000:
		return &ValidationError{Message: "description must be at most 1000 characters"}
	}
	if _, err := uuid.Parse(in.ProgramID); err != nil {
		return &ValidationError{Message: "programId must be a valid UUID"}
	}
	return nil
}
