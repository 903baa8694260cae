package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"
)

// ErrNotFound is returned when a referenced document or program does not exist.
var ErrNotFound = errors.New("not found")

// ValidationError reports malformed or missing input. It is recoverable by the
// caller and no store mutation has occurred when it is returned.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// UploadFailure reports a failed blob-store upload. By the time it is returned
// every blob uploaded earlier in the same request has received exactly one
// compensating delete attempt. The caller may resubmit the request.
type UploadFailure struct {
	// Position is the 1-based index of the failing file in the input sequence.
	Position int
	Filename string
	Err      error
}

func (e *UploadFailure) Error() string {
	return fmt.Sprintf("upload of file %d (%s) failed: %v", e.Position, e.Filename, e.Err)
}

func (e *UploadFailure) Unwrap() error {
	return e.Err
}

// RecordStoreFailure reports a failed metadata-store call.
type RecordStoreFailure struct {
	Op  string
	Err error
}

func (e *RecordStoreFailure) Error() string {
	return fmt.Sprintf("record store %s failed: %v", e.Op, e.Err)
}

func (e *RecordStoreFailure) Unwrap() error {
	return e.Err
}

// logCompensationFailure records a failed best-effort cleanup delete as a JSON
// log line. Compensation failures are never surfaced as the primary error;
// these entries carry enough context for manual reconciliation.
func logCompensationFailure(operation, storageID string, err error) {
	entry := map[string]any{
		"ts":         time.Now().UTC().Format(time.RFC3339Nano),
		"level":      "error",
		"event":      "compensation_failed",
		"store":      "blob",
		"operation":  operation,
		"storage_id": storageID,
		"error":      err.Error(),
	}
	if b, err := json.Marshal(entry); err == nil {
		log.SetFlags(0)
		log.Println(string(b))
	}
}
