package doctor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/raphi011/cargo-asm/internal/cache"
	"github.com/raphi011/cargo-asm/internal/cmd"
	"github.com/raphi011/cargo-asm/internal/config"
	"github.com/raphi011/cargo-asm/internal/workspace"
)

// checkTool verifies that name is on PATH and answers --version.
func checkTool(ctx context.Context, name string) Check {
	c := Check{Category: CategoryToolchain, Name: name}
	if _, err := exec.LookPath(name); err != nil {
		c.Status = StatusFail
		c.Detail = "not found in PATH (install a Rust toolchain from https://rustup.rs)"
		return c
	}

	out, err := cmd.OutputContext(ctx, "", name, "--version")
	if err != nil {
		c.Status = StatusWarn
		c.Detail = fmt.Sprintf("--version failed: %v", err)
		return c
	}
	c.Detail = firstLine(string(out))
	return c
}

func checkGlobalConfig(path string) Check {
	c := Check{Category: CategoryConfig, Name: "global config"}
	if path == "" {
		c.Status = StatusWarn
		c.Detail = "location unknown, using defaults"
		return c
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		c.Detail = fmt.Sprintf("defaults (no file at %s)", path)
		return c
	}
	if _, err := config.LoadFrom(path); err != nil {
		c.Status = StatusFail
		c.Detail = fmt.Sprintf("%s: %v", path, err)
		return c
	}
	c.Detail = path
	return c
}

func checkLocalConfig(manifestPath string) Check {
	c := Check{Category: CategoryConfig, Name: "workspace config"}
	dir := filepath.Dir(manifestPath)
	local, err := config.LoadLocal(dir)
	switch {
	case err != nil:
		c.Status = StatusFail
		c.Detail = err.Error()
	case local == nil:
		c.Detail = "none"
	default:
		c.Detail = filepath.Join(dir, config.LocalConfigFileName)
	}
	return c
}

func checkWorkspace(manifestPath string) Check {
	c := Check{Category: CategoryWorkspace, Name: "manifest"}
	if _, err := os.Stat(manifestPath); err != nil {
		c.Status = StatusWarn
		c.Detail = fmt.Sprintf("no %s at %s", workspace.ManifestFileName, filepath.Dir(manifestPath))
		return c
	}

	ws, err := workspace.LoadManifest(manifestPath)
	if err != nil {
		c.Status = StatusFail
		c.Detail = err.Error()
		return c
	}

	var targets int
	for _, p := range ws.Members() {
		targets += len(p.Targets)
	}
	if ws.IsVirtual() {
		c.Detail = fmt.Sprintf("virtual workspace, %s, %s", plural(len(ws.Members()), "member"), plural(targets, "target"))
	} else {
		c.Detail = fmt.Sprintf("package %s, %s, %s", ws.Root().Name, plural(len(ws.Members()), "member"), plural(targets, "target"))
	}
	return c
}

func checkTargetDir(targetDir, manifestPath string) Check {
	c := Check{Category: CategoryWorkspace, Name: "target dir"}
	if targetDir == "" {
		c.Detail = fmt.Sprintf("cargo default (%s)", filepath.Join(filepath.Dir(manifestPath), "target"))
		return c
	}

	info, err := os.Stat(targetDir)
	switch {
	case errors.Is(err, os.ErrNotExist):
		c.Detail = targetDir + " (will be created)"
	case err != nil:
		c.Status = StatusFail
		c.Detail = err.Error()
	case !info.IsDir():
		c.Status = StatusFail
		c.Detail = targetDir + " is not a directory"
	default:
		c.Detail = targetDir
	}
	return c
}

func checkCache(dir string) Check {
	c := Check{Category: CategoryCache, Name: "workspace cache"}
	if dir == "" {
		c.Status = StatusWarn
		c.Detail = "no cache directory, cargo metadata runs every time"
		return c
	}

	wc, err := cache.Load(dir)
	if err != nil {
		c.Status = StatusFail
		c.Detail = err.Error()
		return c
	}

	var stale int
	for _, e := range wc.Workspaces {
		if e.IsStale() {
			stale++
		}
	}
	if stale > 0 {
		c.Status = StatusWarn
		c.Detail = fmt.Sprintf("%d of %s stale", stale, plural(len(wc.Workspaces), "entry"))
		c.Fixable = true
		return c
	}
	c.Detail = plural(len(wc.Workspaces), "entry")
	return c
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	if strings.HasSuffix(word, "y") {
		return fmt.Sprintf("%d %sies", n, strings.TrimSuffix(word, "y"))
	}
	return fmt.Sprintf("%d %ss", n, word)
}
