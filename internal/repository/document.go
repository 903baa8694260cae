package repository

import (
	"context"

	"educme-api/internal/model"
)

// DocumentRepository defines data access for documents using SQL queries only.
// No business logic here — strictly persistence operations.
type DocumentRepository interface {
	// Create inserts a new document record. The ID and PublishedAt may be
	// assigned by the database; the returned document carries the stored values.
	Create(ctx context.Context, doc *model.Document) (*model.Document, error)

	// FindByID returns a document by its ID. Returns sql.ErrNoRows when absent.
	FindByID(ctx context.Context, id string) (*model.Document, error)

	// List returns documents ordered by publication date, newest first.
	// When programID is non-empty, only documents of that program are returned.
	List(ctx context.Context, programID string) ([]model.Document, error)

	// Search returns documents whose name, subject or description contains the
	// query text (case-insensitive), ordered by publication date descending.
	Search(ctx context.Context, query string) ([]model.Document, error)

	// Delete removes a document by ID. It returns nil if the row was deleted or did not exist.
	Delete(ctx context.Context, id string) error
}
