// Package config defines core configuration types for unfence.
// These types are pure data structures with no dependency on any
// particular config loader.
package config

// Mode selects how bundle patterns are interpreted.
type Mode string

const (
	ModeExclude Mode = "exclude"
	ModeInclude Mode = "include"
)

// IsValid returns true if the mode is a known value.
func (m Mode) IsValid() bool {
	switch m {
	case ModeExclude, ModeInclude:
		return true
	default:
		return false
	}
}

// BackupsConfig controls sidecar backups before files are overwritten.
type BackupsConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Mode    string `mapstructure:"mode" yaml:"mode"` // "sidecar" or "none"
}

// Config is the root configuration structure for unfence.
type Config struct {
	// BaseDir is the directory extracted files are written under and
	// bundles are read from.
	BaseDir string `mapstructure:"base_dir" yaml:"base_dir"`

	// Input is the default markdown document for extract and apply.
	Input string `mapstructure:"input" yaml:"input"`

	// Output is the default bundle output path.
	Output string `mapstructure:"output" yaml:"output"`

	// LogFile, when set, mirrors run logs to an append-only file.
	LogFile string `mapstructure:"log_file" yaml:"log_file"`

	// Patterns are substring filters for bundling, interpreted per Mode.
	Patterns []string `mapstructure:"patterns" yaml:"patterns"`

	// Mode selects include or exclude semantics for Patterns.
	Mode Mode `mapstructure:"mode" yaml:"mode"`

	// DetectLang annotates bundle fences with detected language tags.
	DetectLang bool `mapstructure:"detect_lang" yaml:"detect_lang"`

	// Backups configures sidecar backups before overwriting.
	Backups BackupsConfig `mapstructure:"backups" yaml:"backups"`

	// CLI-level options (not persisted to config files).

	// DryRun reports what would be written without touching the tree.
	DryRun bool `mapstructure:"-" yaml:"-"`

	// Verify cross-checks the scanner's fence accounting after extract.
	Verify bool `mapstructure:"-" yaml:"-"`

	// Force overwrites existing files during init.
	Force bool `mapstructure:"-" yaml:"-"`
}

// NewConfig returns a Config with sensible defaults. BaseDir defaults to
// the current directory so extraction lands next to the document.
func NewConfig() *Config {
	return &Config{
		BaseDir: ".",
		Input:   "input.md",
		Output:  "bundle.md",
		Mode:    ModeExclude,
		Backups: BackupsConfig{
			Enabled: false,
			Mode:    "sidecar",
		},
	}
}
