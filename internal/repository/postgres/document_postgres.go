package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"educme-api/internal/model"
	"educme-api/internal/repository"
)

// DocumentPostgres is a PostgreSQL implementation of repository.DocumentRepository.
// It uses database/sql with parameterized queries and contains no business logic.
// The files sequence is persisted as a JSONB array, preserving upload order.
type DocumentPostgres struct {
	db *sql.DB
}

// NewDocumentPostgres creates a new DocumentPostgres repository.
func NewDocumentPostgres(db *sql.DB) *DocumentPostgres {
	return &DocumentPostgres{db: db}
}

var _ repository.DocumentRepository = (*DocumentPostgres)(nil)

const documentColumns = `id, name, subject, level, academic_year, description, program_id, files, published_at`

// Create inserts a new document row and returns the stored record.
func (r *DocumentPostgres) Create(ctx context.Context, doc *model.Document) (*model.Document, error) {
	const q = `
		INSERT INTO documents (name, subject, level, academic_year, description, program_id, files, published_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + documentColumns

	files, err := json.Marshal(doc.Files)
	if err != nil {
		return nil, fmt.Errorf("marshal files: %w", err)
	}

	row := r.db.QueryRowContext(ctx, q,
		doc.Name,
		doc.Subject,
		doc.Level,
		doc.AcademicYear,
		doc.Description,
		doc.ProgramID,
		files,
		doc.PublishedAt,
	)
	return scanDocument(row)
}

// FindByID fetches a single document by its ID.
func (r *DocumentPostgres) FindByID(ctx context.Context, id string) (*model.Document, error) {
	const q = `
		SELECT ` + documentColumns + `
		FROM documents
		WHERE id = $1
	`
	return scanDocument(r.db.QueryRowContext(ctx, q, id))
}

// List returns documents newest first, optionally filtered by program.
func (r *DocumentPostgres) List(ctx context.Context, programID string) ([]model.Document, error) {
	const qAll = `
		SELECT ` + documentColumns + `
		FROM documents
		ORDER BY published_at DESC, id DESC
	`
	const qByProgram = `
		SELECT ` + documentColumns + `
		FROM documents
		WHERE program_id = $1
		ORDER BY published_at DESC, id DESC
	`

	var rows *sql.Rows
	var err error
	if programID == "" {
		rows, err = r.db.QueryContext(ctx, qAll)
	} else {
		rows, err = r.db.QueryContext(ctx, qByProgram, programID)
	}
	if err != nil {
		return nil, err
	}
	return scanDocuments(rows)
}

// Search matches the query as a case-insensitive substring of name, subject
// or description, newest first.
func (r *DocumentPostgres) Search(ctx context.Context, query string) ([]model.Document, error) {
	const q = `
		SELECT ` + documentColumns + `
		FROM documents
		WHERE name ILIKE $1 OR subject ILIKE $1 OR description ILIKE $1
		ORDER BY published_at DESC, id DESC
	`
	rows, err := r.db.QueryContext(ctx, q, "%"+query+"%")
	if err != nil {
		return nil, err
	}
	return scanDocuments(rows)
}

// Delete removes a document by ID. It does not return an error if the row does not exist.
func (r *DocumentPostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM documents WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	_, _ = res.RowsAffected()
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(row rowScanner) (*model.Document, error) {
	var d model.Document
	var description sql.NullString
	var files []byte
	if err := row.Scan(
		&d.ID,
		&d.Name,
		&d.Subject,
		&d.Level,
		&d.AcademicYear,
		&description,
		&d.ProgramID,
		&files,
		&d.PublishedAt,
	); err != nil {
		return nil, err
	}
	d.Description = description.String
	if len(files) > 0 {
		if err := json.Unmarshal(files, &d.Files); err != nil {
			return nil, fmt.Errorf("unmarshal files: %w", err)
		}
	}
	return &d, nil
}

func scanDocuments(rows *sql.Rows) ([]model.Document, error) {
	defer rows.Close()

	items := make([]model.Document, 0)
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
