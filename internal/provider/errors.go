package provider

import "errors"

// Fatal, request-scoped errors from spec.md §7. Individual conversation
// validation failures are NOT represented here: they are reported through
// Callbacks.OnSkip and never surface as a returned error.
var (
	// ErrNotFound indicates the export file does not exist.
	ErrNotFound = errors.New("file not found")

	// ErrPermissionDenied indicates the export file could not be opened
	// due to filesystem permissions.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrParse indicates the top-level container is not a JSON array
	// (spec.md §4.1); halts the stream immediately.
	ErrParse = errors.New("parse error")

	// ErrUnknownFormat indicates provider autodetection (spec.md §4.2.1)
	// could not classify the file before any conversation was yielded.
	ErrUnknownFormat = errors.New("unknown export format")

	// ErrUnsupportedSchemaVersion indicates the file declares a schema
	// major version this adapter does not support (spec.md §4.2.4).
	ErrUnsupportedSchemaVersion = errors.New("unsupported schema version")
)
