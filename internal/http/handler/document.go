package handler

import (
	"mime/multipart"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"educme-api/internal/config"
	"educme-api/internal/service"
)

// ListDocuments returns documents newest first, optionally filtered by program.
// Both programId and the legacy program query names are accepted.
func ListDocuments(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		programID := c.Query("programId")
		if programID == "" {
			programID = c.Query("program")
		}

		docs, err := svc.List(c.UserContext(), programID)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(docs)
	}
}

// GetDocument returns a single document by ID.
func GetDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		doc, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(doc)
	}
}

// SearchDocuments matches q as a case-insensitive substring of name, subject
// or description.
func SearchDocuments(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		q := c.Query("q")
		if q == "" {
			return writeError(c, fiber.StatusBadRequest, "QUERY_REQUIRED", "query parameter q is required")
		}
		docs, err := svc.Search(c.UserContext(), q)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(docs)
	}
}

// CreateDocument handles the multipart create request: up to cfg.MaxFiles files
// under the "files" field plus the document metadata fields. File count, size
// and media type are rejected here, before any store call is made.
func CreateDocument(svc service.DocumentService, cfg config.UploadConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		form, err := c.MultipartForm()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "MULTIPART_REQUIRED", "multipart form data is required")
		}

		headers := form.File["files"]
		if len(headers) == 0 {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "at least one file (image or PDF) is required")
		}
		if len(headers) > cfg.MaxFiles {
			return writeError(c, fiber.StatusBadRequest, "TOO_MANY_FILES", "too many files")
		}

		files := make([]service.FilePayload, 0, len(headers))
		readers := make([]multipart.File, 0, len(headers))
		defer func() {
			for _, r := range readers {
				r.Close()
			}
		}()

		for _, fh := range headers {
			if fh.Size > cfg.MaxFileSizeByte {
				return writeError(c, fiber.StatusBadRequest, "FILE_TOO_LARGE", "file too large")
			}
			ct := fh.Header.Get("Content-Type")
			if !strings.HasPrefix(ct, "image/") && ct != "application/pdf" {
				return writeError(c, fiber.StatusBadRequest, "UNSUPPORTED_FILE_TYPE", "only images and PDFs are allowed")
			}

			f, err := fh.Open()
			if err != nil {
				return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
			}
			readers = append(readers, f)
			files = append(files, service.FilePayload{
				Reader:      f,
				Filename:    fh.Filename,
				ContentType: ct,
				Size:        fh.Size,
			})
		}

		in := service.CreateDocumentInput{
			Name:         formValue(form, "name"),
			Subject:      formValue(form, "subject"),
			Level:        formValue(form, "level"),
			AcademicYear: formValue(form, "academicYear"),
			Description:  formValue(form, "description"),
			ProgramID:    formValue(form, "programId"),
		}

		doc, err := svc.Create(c.UserContext(), in, files)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(doc)
	}
}

// DeleteDocument removes a document and its stored files.
func DeleteDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		if err := svc.Delete(c.UserContext(), id); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

func formValue(form *multipart.Form, key string) string {
	if vs := form.Value[key]; len(vs) > 0 {
		return vs[0]
	}
	return ""
}
