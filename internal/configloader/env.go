package configloader

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/yaklabco/unfence/pkg/config"
)

// envVarPrefix is the prefix for all unfence environment variables.
const envVarPrefix = "UNFENCE_"

// envFieldType represents the type of a configuration field.
type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
	envTypeSlice
)

// envMapping defines environment variable to config field mappings.
type envMapping struct {
	field string
	typ   envFieldType
}

// envMappings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"BASE_DIR":        {field: "base_dir", typ: envTypeString},
	"INPUT":           {field: "input", typ: envTypeString},
	"OUTPUT":          {field: "output", typ: envTypeString},
	"LOG_FILE":        {field: "log_file", typ: envTypeString},
	"PATTERNS":        {field: "patterns", typ: envTypeSlice},
	"MODE":            {field: "mode", typ: envTypeString},
	"DETECT_LANG":     {field: "detect_lang", typ: envTypeBool},
	"DRY_RUN":         {field: "dry_run", typ: envTypeBool},
	"BACKUPS_ENABLED": {field: "backups.enabled", typ: envTypeBool},
	"BACKUPS_MODE":    {field: "backups.mode", typ: envTypeString},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with UNFENCE_ (e.g., UNFENCE_BASE_DIR).
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for envSuffix, mapping := range envMappings {
		envVar := envVarPrefix + envSuffix
		value := os.Getenv(envVar)
		if value == "" {
			continue
		}

		if err := applyEnvValue(cfg, mapping, value, envVar); err != nil {
			return err
		}
	}

	return nil
}

// applyEnvValue applies a single environment variable value to the config.
func applyEnvValue(cfg *config.Config, mapping envMapping, value, envVar string) error {
	switch mapping.typ {
	case envTypeString:
		return setStringField(cfg, mapping.field, value)
	case envTypeBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", envVar, value)
		}
		return setBoolField(cfg, mapping.field, b)
	case envTypeSlice:
		return setSliceField(cfg, mapping.field, parseSliceValue(value))
	default:
		return fmt.Errorf("unknown field type for %s", envVar)
	}
}

// parseSliceValue parses a comma-separated string into a slice.
func parseSliceValue(value string) []string {
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// setStringField sets a string field on the config by field path.
func setStringField(cfg *config.Config, field, value string) error {
	switch field {
	case "base_dir":
		cfg.BaseDir = value
	case "input":
		cfg.Input = value
	case "output":
		cfg.Output = value
	case "log_file":
		cfg.LogFile = value
	case "mode":
		cfg.Mode = config.Mode(value)
	case "backups.mode":
		cfg.Backups.Mode = value
	default:
		return fmt.Errorf("unknown string field: %s", field)
	}
	return nil
}

// setBoolField sets a boolean field on the config by field path.
func setBoolField(cfg *config.Config, field string, value bool) error {
	switch field {
	case "detect_lang":
		cfg.DetectLang = value
	case "dry_run":
		cfg.DryRun = value
	case "backups.enabled":
		cfg.Backups.Enabled = value
	default:
		return fmt.Errorf("unknown boolean field: %s", field)
	}
	return nil
}

// setSliceField sets a slice field on the config by field path.
func setSliceField(cfg *config.Config, field string, value []string) error {
	switch field {
	case "patterns":
		cfg.Patterns = value
	default:
		return fmt.Errorf("unknown slice field: %s", field)
	}
	return nil
}

// ListEnvVars returns all supported environment variables with descriptions.
func ListEnvVars() map[string]string {
	return map[string]string{
		"UNFENCE_BASE_DIR":        "Directory extracted files are written under",
		"UNFENCE_INPUT":           "Default markdown document for extract and apply",
		"UNFENCE_OUTPUT":          "Default bundle output path",
		"UNFENCE_LOG_FILE":        "Mirror run logs to an append-only file",
		"UNFENCE_PATTERNS":        "Comma-separated substring filters for bundling",
		"UNFENCE_MODE":            "Pattern mode: include or exclude",
		"UNFENCE_DETECT_LANG":     "Annotate bundle fences with language tags: true or false",
		"UNFENCE_DRY_RUN":         "Dry-run mode: true or false",
		"UNFENCE_BACKUPS_ENABLED": "Back up files before overwriting: true or false",
		"UNFENCE_BACKUPS_MODE":    "Backup mode: sidecar or none",
	}
}
