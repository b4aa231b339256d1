package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// LocalConfigFileName is the per-workspace config file, placed next to the
// workspace Cargo.toml.
const LocalConfigFileName = ".cargo-asm.toml"

// LocalConfig holds per-workspace overrides.
// Pointer fields and empty strings mean "not set" (inherit from global).
type LocalConfig struct {
	Format LocalFormat `toml:"format"`
	Build  LocalBuild  `toml:"build"`
}

// LocalFormat holds local format overrides
type LocalFormat struct {
	Color    string `toml:"color"`
	Syntax   string `toml:"syntax"`
	Rust     *bool  `toml:"rust"`
	FullName *bool  `toml:"full_name"`
}

// LocalBuild holds local build overrides
type LocalBuild struct {
	TargetDir string `toml:"target_dir"`
	Loader    string `toml:"loader"`
	Frozen    *bool  `toml:"frozen"`
	Locked    *bool  `toml:"locked"`
	Offline   *bool  `toml:"offline"`
}

// LoadLocal reads .cargo-asm.toml from the workspace directory.
// Returns nil (no error) if the file doesn't exist.
func LoadLocal(workspaceDir string) (*LocalConfig, error) {
	configFile := filepath.Join(workspaceDir, LocalConfigFileName)

	data, err := os.ReadFile(configFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read local config %s: %w", configFile, err)
	}

	var local LocalConfig
	if err := toml.Unmarshal(data, &local); err != nil {
		return nil, fmt.Errorf("failed to parse local config %s: %w", configFile, err)
	}

	for _, check := range []struct {
		value, field string
		allowed      []string
	}{
		{local.Format.Color, "format.color", ValidColorModes},
		{local.Format.Syntax, "format.syntax", ValidSyntaxes},
		{local.Build.Loader, "build.loader", ValidLoaders},
	} {
		if err := validateEnum(check.value, check.field, check.allowed); err != nil {
			return nil, fmt.Errorf("%w in %s", err, configFile)
		}
	}

	if dir := local.Build.TargetDir; dir != "" && dir[0] != '~' && !filepath.IsAbs(dir) {
		local.Build.TargetDir = filepath.Join(workspaceDir, dir)
	}
	if local.Build.TargetDir, err = expandPath(local.Build.TargetDir); err != nil {
		return nil, fmt.Errorf("expand build.target_dir in %s: %w", configFile, err)
	}

	return &local, nil
}
