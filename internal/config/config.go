package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// EnvConfigPath overrides the config file location.
const EnvConfigPath = "CARGO_ASM_CONFIG"

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Assembly syntaxes.
const (
	SyntaxIntel = "intel"
	SyntaxATT   = "att"
)

// Workspace loaders.
const (
	LoaderMetadata = "metadata"
	LoaderManifest = "manifest"
)

// FormatConfig holds output format defaults
type FormatConfig struct {
	Color    string `toml:"color"`
	Syntax   string `toml:"syntax"`
	Rust     bool   `toml:"rust"`
	FullName bool   `toml:"full_name"`
}

// BuildConfig holds defaults forwarded to cargo
type BuildConfig struct {
	TargetDir string `toml:"target_dir"`
	Loader    string `toml:"loader"`
	Frozen    bool   `toml:"frozen"`
	Locked    bool   `toml:"locked"`
	Offline   bool   `toml:"offline"`
}

// Config holds the cargo-asm configuration
type Config struct {
	Format FormatConfig `toml:"format"`
	Build  BuildConfig  `toml:"build"`
}

// Default returns the default configuration
func Default() Config {
	return Config{
		Format: FormatConfig{
			Color:  ColorAuto,
			Syntax: SyntaxIntel,
		},
		Build: BuildConfig{
			Loader: LoaderMetadata,
		},
	}
}

type ctxKey struct{}

// WithConfig attaches the effective config to the context.
func WithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, ctxKey{}, cfg)
}

// FromContext returns the config stored in ctx, or the defaults.
func FromContext(ctx context.Context) *Config {
	if cfg, ok := ctx.Value(ctxKey{}).(*Config); ok {
		return cfg
	}
	cfg := Default()
	return &cfg
}

// ValidatePath checks that the path is absolute or starts with ~
// Returns error if path is relative (like "." or "..")
func ValidatePath(path, fieldName string) error {
	if path == "" {
		return nil
	}
	if path[0] == '~' {
		return nil
	}
	if !filepath.IsAbs(path) {
		return fmt.Errorf("%s must be absolute or start with ~, got: %q", fieldName, path)
	}
	return nil
}

// expandPath expands ~ to the user's home directory
func expandPath(path string) (string, error) {
	if path == "~" || (len(path) >= 2 && path[:2] == "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expand ~: %w", err)
		}
		return filepath.Join(home, path[1:]), nil
	}
	return path, nil
}

// Path returns the config file location.
func Path() (string, error) {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "cargo-asm", "config.toml"), nil
}

// Load reads the global config file.
// Returns Default() if the file doesn't exist (no error).
func Load() (Config, error) {
	path, err := Path()
	if err != nil {
		return Default(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads config from path, filling unset values with defaults.
// Returns an error only if the file exists but is invalid.
func LoadFrom(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Default(), fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return Default(), fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := ValidatePath(cfg.Build.TargetDir, "build.target_dir"); err != nil {
		return Default(), err
	}
	if cfg.Build.TargetDir, err = expandPath(cfg.Build.TargetDir); err != nil {
		return Default(), fmt.Errorf("expand build.target_dir: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// Validate checks enum settings.
func (c *Config) Validate() error {
	if err := validateEnum(c.Format.Color, "format.color", ValidColorModes); err != nil {
		return err
	}
	if err := validateEnum(c.Format.Syntax, "format.syntax", ValidSyntaxes); err != nil {
		return err
	}
	return validateEnum(c.Build.Loader, "build.loader", ValidLoaders)
}

// Encode writes the config as TOML.
func (c *Config) Encode() (string, error) {
	var buf strings.Builder
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return "", err
	}
	return buf.String(), nil
}

const defaultConfig = `# cargo-asm configuration
# Location: ~/.config/cargo-asm/config.toml (or $CARGO_ASM_CONFIG)
# Per-workspace overrides go into .cargo-asm.toml next to Cargo.toml.

[format]
# "auto" enables color when stdout is a terminal and NO_COLOR is unset
color = "auto"
# Assembly syntax: "intel" or "att"
syntax = "intel"
# Interleave Rust source with the assembly
rust = false
# Print full demangled names instead of just the prefix
full_name = false

[build]
# Custom target directory (absolute or ~/...)
# target_dir = "~/.cache/cargo-asm/target"
# How to read the workspace: "metadata" runs cargo metadata,
# "manifest" reads Cargo.toml files directly
loader = "metadata"
frozen = false
locked = false
offline = false
`

// DefaultConfig returns the default configuration template content.
func DefaultConfig() string {
	return defaultConfig
}

// Init creates a default config file at Path().
// If force is true, overwrites an existing file.
// Returns the path to the created file.
func Init(force bool) (string, error) {
	path, err := Path()
	if err != nil {
		return "", err
	}

	if !force {
		if _, err := os.Stat(path); err == nil {
			return "", errors.New("config file already exists: " + path)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(defaultConfig), 0644); err != nil {
		return "", err
	}
	return path, nil
}
