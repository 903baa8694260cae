package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"educme-api/internal/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var documentCols = []string{"id", "name", "subject", "level", "academic_year", "description", "program_id", "files", "published_at"}

func filesJSON(t *testing.T, refs []model.FileRef) []byte {
	t.Helper()
	b, err := json.Marshal(refs)
	require.NoError(t, err)
	return b
}

func TestDocumentPostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewDocumentPostgres(db)
	ctx := context.Background()

	now := time.Now().UTC()
	refs := []model.FileRef{
		{URL: "http://s/a.png", StorageID: "documents/a.png", Kind: model.FileKindImage},
		{URL: "http://s/b.pdf", StorageID: "documents/b.pdf", Kind: model.FileKindPDF},
	}
	doc := &model.Document{
		Name:         "Midterm",
		Subject:      "Algebra",
		Level:        "Licence 1",
		AcademicYear: "2023-2024",
		Description:  "first semester",
		ProgramID:    "prog-uuid",
		Files:        refs,
		PublishedAt:  now,
	}

	rows := sqlmock.NewRows(documentCols).
		AddRow("doc-uuid", doc.Name, doc.Subject, doc.Level, doc.AcademicYear, doc.Description, doc.ProgramID, filesJSON(t, refs), now)

	mock.ExpectQuery("INSERT INTO documents").
		WithArgs(doc.Name, doc.Subject, doc.Level, doc.AcademicYear, doc.Description, doc.ProgramID, filesJSON(t, refs), now).
		WillReturnRows(rows)

	result, err := repo.Create(ctx, doc)

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, "doc-uuid", result.ID)
	// FileRef order survives the JSONB round trip
	assert.Equal(t, refs, result.Files)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentPostgres_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewDocumentPostgres(db)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		refs := []model.FileRef{{URL: "http://s/a", StorageID: "documents/a", Kind: model.FileKindPDF}}
		rows := sqlmock.NewRows(documentCols).
			AddRow("doc-id", "Midterm", "Algebra", "Licence 1", "2023-2024", nil, "prog-id", filesJSON(t, refs), time.Now())

		mock.ExpectQuery("SELECT (.+) FROM documents WHERE id = ?").
			WithArgs("doc-id").
			WillReturnRows(rows)

		doc, err := repo.FindByID(ctx, "doc-id")

		require.NoError(t, err)
		assert.Equal(t, "doc-id", doc.ID)
		assert.Empty(t, doc.Description)
		assert.Equal(t, refs, doc.Files)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM documents WHERE id = ?").
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		doc, err := repo.FindByID(ctx, "missing")

		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, doc)
	})
}

func TestDocumentPostgres_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewDocumentPostgres(db)
	ctx := context.Background()

	t.Run("all documents", func(t *testing.T) {
		rows := sqlmock.NewRows(documentCols).
			AddRow("id-1", "Doc 1", "Algebra", "Licence 1", "2023-2024", "d", "prog-id", []byte(`[]`), time.Now()).
			AddRow("id-2", "Doc 2", "Analyse", "Licence 2", "2023-2024", "d", "prog-id", []byte(`[]`), time.Now())

		mock.ExpectQuery("SELECT (.+) FROM documents ORDER BY published_at DESC").
			WillReturnRows(rows)

		docs, err := repo.List(ctx, "")

		require.NoError(t, err)
		assert.Len(t, docs, 2)
	})

	t.Run("filtered by program", func(t *testing.T) {
		rows := sqlmock.NewRows(documentCols).
			AddRow("id-1", "Doc 1", "Algebra", "Licence 1", "2023-2024", "d", "prog-id", []byte(`[]`), time.Now())

		mock.ExpectQuery("SELECT (.+) FROM documents WHERE program_id = ").
			WithArgs("prog-id").
			WillReturnRows(rows)

		docs, err := repo.List(ctx, "prog-id")

		require.NoError(t, err)
		assert.Len(t, docs, 1)
	})
}

func TestDocumentPostgres_Search(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewDocumentPostgres(db)
	ctx := context.Background()

	rows := sqlmock.NewRows(documentCols).
		AddRow("id-1", "Algebra Midterm", "Algebra", "Licence 1", "2023-2024", "d", "prog-id", []byte(`[]`), time.Now())

	mock.ExpectQuery("SELECT (.+) FROM documents WHERE name ILIKE").
		WithArgs("%algebra%").
		WillReturnRows(rows)

	docs, err := repo.Search(ctx, "algebra")

	require.NoError(t, err)
	assert.Len(t, docs, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentPostgres_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewDocumentPostgres(db)
	ctx := context.Background()

	mock.ExpectExec("DELETE FROM documents WHERE id = ?").
		WithArgs("doc-id").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.Delete(ctx, "doc-id")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
