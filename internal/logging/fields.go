// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldInput      = "input"
	FieldOutput     = "output"
	FieldBaseDir    = "base_dir"
	FieldWorkingDir = "working_dir"
	FieldDryRun     = "dry_run"

	// Extraction fields.
	FieldLines        = "lines"
	FieldFences       = "fences"
	FieldHeadings     = "headings"
	FieldFiles        = "files"
	FieldEmptyBlocks  = "empty_blocks"
	FieldUnterminated = "unterminated"
	FieldWritten      = "written"
	FieldFailed       = "failed"

	// Bundling fields.
	FieldBundled = "bundled"
	FieldSkipped = "skipped"
	FieldIgnored = "ignored"
	FieldBytes   = "bytes"
	FieldMode    = "mode"

	// Apply fields.
	FieldChanges = "changes"
	FieldUpdated = "updated"
	FieldMissing = "missing"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
