package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
)

// writeFiles creates files below dir, creating parent directories.
func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("failed to create dir for %s: %v", name, err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}
}

// runCLI executes a fresh root command and returns what it printed.
func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := newRootCmd(&globalFlags{})
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

// virtualWorkspace creates a workspace with members "cli" (bins "cli" and
// "tool") and "core" (lib). Returns the root manifest path.
func virtualWorkspace(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"Cargo.toml":          "[workspace]\nmembers = [\"cli\", \"core\"]\n",
		"cli/Cargo.toml":      "[package]\nname = \"cli\"\nversion = \"0.1.0\"\n",
		"cli/src/main.rs":     "fn main() {}\n",
		"cli/src/bin/tool.rs": "fn main() {}\n",
		"core/Cargo.toml":     "[package]\nname = \"core\"\nversion = \"0.1.0\"\n",
		"core/src/lib.rs":     "pub fn parse() {}\n",
	})
	return filepath.Join(dir, "Cargo.toml")
}

// libPackage creates a concrete package "demo" with only a library.
func libPackage(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"Cargo.toml": "[package]\nname = \"demo\"\nversion = \"0.1.0\"\n",
		"src/lib.rs": "pub fn parse() {}\n",
	})
	return filepath.Join(dir, "Cargo.toml")
}
