package configloader

import "github.com/yaklabco/unfence/pkg/config"

// merge combines two configurations, with override taking precedence.
//   - Scalars: override overwrites base if override is non-zero
//   - Slices: override replaces base entirely if override is non-nil
//   - Booleans: only a true override is visible, so a config file cannot
//     unset a value enabled at lower precedence
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base

	if override.BaseDir != "" {
		result.BaseDir = override.BaseDir
	}
	if override.Input != "" {
		result.Input = override.Input
	}
	if override.Output != "" {
		result.Output = override.Output
	}
	if override.LogFile != "" {
		result.LogFile = override.LogFile
	}
	if override.Mode != "" {
		result.Mode = override.Mode
	}
	if override.DetectLang {
		result.DetectLang = override.DetectLang
	}
	if override.DryRun {
		result.DryRun = override.DryRun
	}
	if override.Verify {
		result.Verify = override.Verify
	}
	if override.Force {
		result.Force = override.Force
	}

	if override.Backups.Mode != "" {
		result.Backups.Mode = override.Backups.Mode
	}
	if override.Backups.Enabled {
		result.Backups.Enabled = override.Backups.Enabled
	}

	if override.Patterns != nil {
		result.Patterns = override.Patterns
	}

	return &result
}

// MergeAll merges multiple configurations in order, with later configs
// taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}
