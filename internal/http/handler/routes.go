package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"educme-api/internal/config"
	"educme-api/internal/service"
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Handlers stay thin; all lifecycle logic lives in the services.
func RegisterRoutes(app *fiber.App, db *sql.DB, docSvc service.DocumentService, programSvc service.ProgramService, upload config.UploadConfig) {
	// Health endpoints
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	// Document lifecycle. Search is registered before /:id so "search" is not
	// captured as a document id.
	app.Get("/documents/search", SearchDocuments(docSvc))
	app.Get("/documents", ListDocuments(docSvc))
	app.Get("/documents/:id", GetDocument(docSvc))
	app.Post("/documents", CreateDocument(docSvc, upload))
	app.Delete("/documents/:id", DeleteDocument(docSvc))

	// Program read-through
	app.Get("/programs", ListPrograms(programSvc))
	app.Get("/programs/:id", GetProgram(programSvc))
}
