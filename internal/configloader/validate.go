package configloader

import (
	"fmt"

	"github.com/yaklabco/unfence/pkg/config"
)

// ValidationError describes an invalid configuration value.
type ValidationError struct {
	Field   string
	Value   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Message)
}

// ValidationResult collects validation errors and warnings.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

// Valid returns true if no errors were found.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// Validate checks a configuration for invalid values.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}

	if cfg.BaseDir == "" {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "base_dir",
			Message: "must not be empty",
		})
	}

	if !cfg.Mode.IsValid() {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "mode",
			Value:   string(cfg.Mode),
			Message: "must be include or exclude",
		})
	}

	switch cfg.Backups.Mode {
	case "", "sidecar", "none":
	default:
		result.Errors = append(result.Errors, ValidationError{
			Field:   "backups.mode",
			Value:   cfg.Backups.Mode,
			Message: "must be sidecar or none",
		})
	}

	if cfg.Backups.Enabled && cfg.Backups.Mode == "none" {
		result.Warnings = append(result.Warnings, ValidationError{
			Field:   "backups",
			Message: "backups enabled but mode is none; no backups will be created",
		})
	}

	return result
}
