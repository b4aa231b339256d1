// Package storage provides atomic JSON files in the cargo-asm cache directory.
package storage

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

// EnvCacheDir overrides the cache directory.
const EnvCacheDir = "CARGO_ASM_CACHE_DIR"

// Dir returns the cache directory, creating it if needed. Defaults to
// cargo-asm below the user cache directory.
func Dir() (string, error) {
	dir := os.Getenv(EnvCacheDir)
	if dir == "" {
		base, err := os.UserCacheDir()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(base, "cargo-asm")
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}

// SaveJSON writes data as indented JSON to path. The data goes to a temp
// file in the same directory first, which is then renamed over path.
func SaveJSON(path string, data any) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(jsonData); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return nil
}

// LoadJSON decodes the JSON file at path into dest. found is false, with a
// nil error, when the file does not exist.
func LoadJSON(path string, dest any) (found bool, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return true, json.Unmarshal(data, dest)
}
