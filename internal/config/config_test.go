package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	t.Parallel()
	cfg := Default()
	if cfg.Format.Color != ColorAuto {
		t.Errorf("format.color = %q, want %q", cfg.Format.Color, ColorAuto)
	}
	if cfg.Format.Syntax != SyntaxIntel {
		t.Errorf("format.syntax = %q, want %q", cfg.Format.Syntax, SyntaxIntel)
	}
	if cfg.Build.Loader != LoaderMetadata {
		t.Errorf("build.loader = %q, want %q", cfg.Build.Loader, LoaderMetadata)
	}
}

func TestLoadFrom_Missing(t *testing.T) {
	t.Parallel()
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("LoadFrom(missing) = %v, want nil", err)
	}
	if cfg != Default() {
		t.Errorf("LoadFrom(missing) = %+v, want defaults", cfg)
	}
}

func TestLoadFrom_PartialKeepsDefaults(t *testing.T) {
	t.Parallel()
	path := writeConfig(t, `[format]
syntax = "att"
rust = true

[build]
offline = true
`)
	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() = %v", err)
	}
	if cfg.Format.Syntax != SyntaxATT || !cfg.Format.Rust || !cfg.Build.Offline {
		t.Errorf("LoadFrom() = %+v, want overrides applied", cfg)
	}
	if cfg.Format.Color != ColorAuto || cfg.Build.Loader != LoaderMetadata {
		t.Errorf("LoadFrom() = %+v, want unset values to keep defaults", cfg)
	}
}

func TestLoadFrom_TargetDir(t *testing.T) {
	t.Parallel()

	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	cfg, err := LoadFrom(writeConfig(t, "[build]\ntarget_dir = \"~/cache/asm\"\n"))
	if err != nil {
		t.Fatalf("LoadFrom() = %v", err)
	}
	if want := filepath.Join(home, "cache", "asm"); cfg.Build.TargetDir != want {
		t.Errorf("target_dir = %q, want %q", cfg.Build.TargetDir, want)
	}
}

func TestLoadFrom_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"bad toml", "[format", "failed to parse config file"},
		{"relative target dir", "[build]\ntarget_dir = \"target\"\n", `build.target_dir must be absolute or start with ~, got: "target"`},
		{"bad color", "[format]\ncolor = \"sometimes\"\n", `invalid format.color "sometimes": must be "auto", "always", or "never"`},
		{"bad syntax", "[format]\nsyntax = \"arm\"\n", `invalid format.syntax "arm": must be "intel" or "att"`},
		{"bad loader", "[build]\nloader = \"guess\"\n", `invalid build.loader "guess"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg, err := LoadFrom(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("LoadFrom() = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want to contain %q", err.Error(), tt.wantErr)
			}
			if cfg != Default() {
				t.Errorf("invalid config should fall back to defaults, got %+v", cfg)
			}
		})
	}
}

func TestPath_EnvOverride(t *testing.T) {
	want := filepath.Join(t.TempDir(), "custom.toml")
	t.Setenv(EnvConfigPath, want)
	got, err := Path()
	if err != nil {
		t.Fatalf("Path() = %v", err)
	}
	if got != want {
		t.Errorf("Path() = %q, want %q", got, want)
	}
}

func TestInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	t.Setenv(EnvConfigPath, path)

	got, err := Init(false)
	if err != nil {
		t.Fatalf("Init() = %v", err)
	}
	if got != path {
		t.Errorf("Init() path = %q, want %q", got, path)
	}

	if _, err := Init(false); err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Errorf("Init() twice = %v, want already exists error", err)
	}
	if _, err := Init(true); err != nil {
		t.Errorf("Init(force) = %v", err)
	}

	// The generated template must load cleanly.
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() after Init = %v", err)
	}
	if cfg != Default() {
		t.Errorf("template config = %+v, want defaults", cfg)
	}
}

func TestEncode(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Build.TargetDir = "/tmp/target"
	out, err := cfg.Encode()
	if err != nil {
		t.Fatalf("Encode() = %v", err)
	}

	var decoded Config
	if _, err := toml.Decode(out, &decoded); err != nil {
		t.Fatalf("decode encoded config: %v", err)
	}
	if decoded != cfg {
		t.Errorf("decoded = %+v, want %+v", decoded, cfg)
	}
}

func TestWithConfig_FromContext(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Format.Rust = true
	if got := FromContext(WithConfig(context.Background(), &cfg)); got != &cfg {
		t.Error("FromContext did not return the stored config")
	}
	if got := FromContext(context.Background()); *got != Default() {
		t.Errorf("FromContext(empty) = %+v, want defaults", got)
	}
}

func TestValidatePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path    string
		wantErr bool
	}{
		{"", false},
		{"~", false},
		{"~/target", false},
		{"/abs/target", false},
		{"target", true},
		{"../target", true},
	}
	for _, tt := range tests {
		err := ValidatePath(tt.path, "build.target_dir")
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidatePath(%q) = %v, wantErr %v", tt.path, err, tt.wantErr)
		}
	}
}
