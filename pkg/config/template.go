package config

// GenerateTemplate creates a commented starter configuration file.
func GenerateTemplate() []byte {
	return []byte(`# unfence configuration
# See: https://github.com/yaklabco/unfence

# Directory extracted files are written under (and bundles read from)
base_dir: .

# Default markdown document for extract and apply
input: input.md

# Default bundle output path
output: bundle.md

# Mirror run logs to an append-only file
# log_file: unfence.log

# Substring filters for bundling, interpreted per mode
# patterns:
#   - ".go"
#   - "docs/"

# Pattern mode: exclude (skip matching files) or include (only matching files)
mode: exclude

# Annotate bundle fences with detected language tags
detect_lang: false

# Sidecar backups before overwriting existing files
backups:
  enabled: false
  mode: sidecar
`)
}
