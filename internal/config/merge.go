package config

// MergeLocal merges a per-workspace config into a global config,
// returning a new Config without mutating the global.
// Returns global unchanged if local is nil.
func MergeLocal(global *Config, local *LocalConfig) *Config {
	if local == nil {
		return global
	}

	merged := *global

	if local.Format.Color != "" {
		merged.Format.Color = local.Format.Color
	}
	if local.Format.Syntax != "" {
		merged.Format.Syntax = local.Format.Syntax
	}
	setBool(&merged.Format.Rust, local.Format.Rust)
	setBool(&merged.Format.FullName, local.Format.FullName)

	if local.Build.TargetDir != "" {
		merged.Build.TargetDir = local.Build.TargetDir
	}
	if local.Build.Loader != "" {
		merged.Build.Loader = local.Build.Loader
	}
	setBool(&merged.Build.Frozen, local.Build.Frozen)
	setBool(&merged.Build.Locked, local.Build.Locked)
	setBool(&merged.Build.Offline, local.Build.Offline)

	return &merged
}

// ForWorkspace returns global merged with the .cargo-asm.toml found in
// workspaceDir, if any.
func ForWorkspace(global *Config, workspaceDir string) (*Config, error) {
	local, err := LoadLocal(workspaceDir)
	if err != nil {
		return nil, err
	}
	return MergeLocal(global, local), nil
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}
