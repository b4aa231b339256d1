package workspace

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Environment variables cargo reads the target directory from, in order.
var targetDirEnv = []string{"CARGO_TARGET_DIR", "CARGO_BUILD_TARGET_DIR"}

type cargoConfig struct {
	Build struct {
		TargetDir string `toml:"target-dir"`
	} `toml:"build"`
}

// manifestTargetDir returns where cargo puts build output for the package or
// workspace at manifestPath: the environment, then build.target-dir from the
// nearest .cargo/config.toml, then "target" below the workspace root.
func manifestTargetDir(manifestPath string, m *manifest) string {
	for _, key := range targetDirEnv {
		if v := os.Getenv(key); v != "" {
			if abs, err := filepath.Abs(v); err == nil {
				return abs
			}
			return v
		}
	}
	root := workspaceRoot(manifestPath, m)
	if dir := configTargetDir(root); dir != "" {
		return dir
	}
	return filepath.Join(root, "target")
}

// workspaceRoot finds the directory of the workspace manifestPath belongs to.
// A package outside any workspace is its own root.
func workspaceRoot(manifestPath string, m *manifest) string {
	dir := filepath.Dir(manifestPath)
	if m.Workspace != nil {
		return dir
	}
	if m.Package != nil && m.Package.Workspace != "" {
		return filepath.Join(dir, m.Package.Workspace)
	}

	for parent := filepath.Dir(dir); ; parent = filepath.Dir(parent) {
		candidate := filepath.Join(parent, ManifestFileName)
		if fileExists(candidate) {
			pm, err := readManifest(candidate)
			if err == nil && pm.Workspace != nil {
				if isMember(parent, pm.Workspace, dir) {
					return parent
				}
				return dir
			}
		}
		if filepath.Dir(parent) == parent {
			return dir
		}
	}
}

func isMember(root string, ws *manifestWorkspace, dir string) bool {
	members, err := expandMembers(root, ws.Members, ws.Exclude)
	if err != nil {
		return false
	}
	for _, m := range members {
		if samePath(m, dir) {
			return true
		}
	}
	return false
}

// configTargetDir looks for build.target-dir in .cargo/config.toml files from
// dir upwards. A relative value is taken relative to the directory holding
// .cargo.
func configTargetDir(dir string) string {
	for d := dir; ; d = filepath.Dir(d) {
		for _, name := range []string{"config.toml", "config"} {
			var cfg cargoConfig
			if _, err := toml.DecodeFile(filepath.Join(d, ".cargo", name), &cfg); err != nil {
				continue
			}
			if cfg.Build.TargetDir == "" {
				continue
			}
			if filepath.IsAbs(cfg.Build.TargetDir) {
				return filepath.Clean(cfg.Build.TargetDir)
			}
			return filepath.Join(d, cfg.Build.TargetDir)
		}
		if filepath.Dir(d) == d {
			return ""
		}
	}
}
