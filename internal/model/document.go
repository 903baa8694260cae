package model

import (
	"strings"
	"time"
)

// FileKind classifies a stored file by its declared media type.
type FileKind string

const (
	FileKindImage FileKind = "image"
	FileKindPDF   FileKind = "pdf"
)

// KindForContentType maps a declared media type to a FileKind.
// Anything that is not an image is treated as a PDF; media types outside
// image/* and application/pdf are rejected upstream before this point.
func KindForContentType(contentType string) FileKind {
	if strings.HasPrefix(contentType, "image/") {
		return FileKindImage
	}
	return FileKindPDF
}

// FileRef is an embedded reference to one stored file within a Document.
// It is not independently addressable; the owning Document carries the
// ordered sequence.
type FileRef struct {
	// URL is the store-issued retrieval URL, immutable once uploaded.
	URL string `json:"url"`
	// StorageID is the store-issued object identifier, required for deletion.
	StorageID string   `json:"storage_id"`
	Kind      FileKind `json:"kind"`
}

// Document is the persisted course-document entity. Documents are immutable
// once created; the only lifecycle transition is deletion.
type Document struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Subject      string    `json:"subject"`
	Level        string    `json:"level"`
	AcademicYear string    `json:"academic_year"`
	Description  string    `json:"description,omitempty"`
	ProgramID    string    `json:"program_id"`
	Files        []FileRef `json:"files"`
	PublishedAt  time.Time `json:"published_at"`
}

// Levels is the closed set of accepted academic levels.
var Levels = []string{"Licence 1", "Licence 2", "Licence 3"}

// ValidLevel reports whether level is one of the accepted academic levels.
func ValidLevel(level string) bool {
	for _, l := range Levels {
		if l == level {
			return true
		}
	}
	return false
}
