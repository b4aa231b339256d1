package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/raphi011/cargo-asm/internal/storage"
	"github.com/raphi011/cargo-asm/internal/workspace"
)

// MaxAge is how long an entry is trusted even when no stamp changed.
const MaxAge = 7 * 24 * time.Hour

// targetDirs are the package subdirectories cargo scans for targets.
var targetDirs = []string{"src", filepath.Join("src", "bin"), "tests", "benches", "examples"}

// Entry is one cached workspace graph.
type Entry struct {
	ManifestPath string               `json:"manifest_path"`
	Virtual      bool                 `json:"virtual"`
	TargetDir    string               `json:"target_dir,omitempty"`
	Packages     []*workspace.Package `json:"packages"` // root first unless virtual
	Stamps       map[string]int64     `json:"stamps"`   // path -> mod time in ns, 0 if missing
	CachedAt     time.Time            `json:"cached_at"`
}

// Cache maps manifest paths to cached workspace graphs.
type Cache struct {
	Workspaces map[string]*Entry `json:"workspaces,omitempty"`
}

// CachePath returns the path to the cache file in dir.
func CachePath(dir string) string {
	return filepath.Join(dir, "workspaces.json")
}

// LockPath returns the path to the lock file in dir.
func LockPath(dir string) string {
	return filepath.Join(dir, "workspaces.lock")
}

// Load reads the cache from dir. A missing or corrupted file yields an
// empty cache.
func Load(dir string) (*Cache, error) {
	var c Cache
	if _, err := storage.LoadJSON(CachePath(dir), &c); err != nil {
		var (
			syntaxErr *json.SyntaxError
			typeErr   *json.UnmarshalTypeError
		)
		if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
			return &Cache{Workspaces: make(map[string]*Entry)}, nil
		}
		return nil, err
	}
	if c.Workspaces == nil {
		c.Workspaces = make(map[string]*Entry)
	}
	return &c, nil
}

// Save writes the cache to dir atomically.
func Save(dir string, c *Cache) error {
	return storage.SaveJSON(CachePath(dir), c)
}

// LoadWithLock acquires the cache lock and loads the cache.
// Caller must call unlock() if err == nil.
func LoadWithLock(dir string) (*Cache, func(), error) {
	unlock, err := acquire(LockPath(dir))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to acquire lock: %w", err)
	}

	c, err := Load(dir)
	if err != nil {
		unlock()
		return nil, nil, fmt.Errorf("failed to load cache: %w", err)
	}
	return c, unlock, nil
}

// NewEntry snapshots ws together with the current stamps.
func NewEntry(ws *workspace.Workspace) *Entry {
	return &Entry{
		ManifestPath: ws.ManifestPath(),
		Virtual:      ws.IsVirtual(),
		TargetDir:    ws.TargetDir(),
		Packages:     ws.Members(),
		Stamps:       stamps(ws),
		CachedAt:     time.Now(),
	}
}

// IsStale reports whether the entry is too old or any stamp changed.
func (e *Entry) IsStale() bool {
	if e.CachedAt.IsZero() || time.Since(e.CachedAt) > MaxAge {
		return true
	}
	for path, stamp := range e.Stamps {
		if modTime(path) != stamp {
			return true
		}
	}
	return false
}

// Workspace rebuilds the workspace graph from the entry.
func (e *Entry) Workspace() (*workspace.Workspace, error) {
	if e.Virtual {
		ws, err := workspace.NewVirtual(e.ManifestPath, e.Packages...)
		if err != nil {
			return nil, err
		}
		return ws.WithTargetDir(e.TargetDir), nil
	}
	if len(e.Packages) == 0 {
		return nil, fmt.Errorf("cache entry for %s has no root package", e.ManifestPath)
	}
	return workspace.NewConcrete(e.ManifestPath, e.Packages[0], e.Packages[1:]...).WithTargetDir(e.TargetDir), nil
}

// Get returns the cached workspace for manifestPath if it is still fresh.
func (c *Cache) Get(manifestPath string) (*workspace.Workspace, bool) {
	e, ok := c.Workspaces[key(manifestPath)]
	if !ok || e.IsStale() {
		return nil, false
	}
	ws, err := e.Workspace()
	if err != nil {
		return nil, false
	}
	return ws, true
}

// Put stores ws, replacing any previous entry for its manifest.
func (c *Cache) Put(ws *workspace.Workspace) {
	c.Workspaces[key(ws.ManifestPath())] = NewEntry(ws)
}

// RemoveStale drops stale entries and returns their manifest paths, sorted.
func (c *Cache) RemoveStale() []string {
	var removed []string
	for k, e := range c.Workspaces {
		if e.IsStale() {
			delete(c.Workspaces, k)
			removed = append(removed, k)
		}
	}
	slices.Sort(removed)
	return removed
}

// Lookup reads the cache in dir and returns the fresh workspace for
// manifestPath, if any. It does not take the lock.
func Lookup(dir, manifestPath string) (*workspace.Workspace, bool) {
	c, err := Load(dir)
	if err != nil {
		return nil, false
	}
	return c.Get(manifestPath)
}

// Store records ws in the cache in dir.
func Store(dir string, ws *workspace.Workspace) error {
	c, unlock, err := LoadWithLock(dir)
	if err != nil {
		return err
	}
	defer unlock()

	c.Put(ws)
	return Save(dir, c)
}

// Prune removes stale entries from the cache in dir and returns their
// manifest paths.
func Prune(dir string) ([]string, error) {
	c, unlock, err := LoadWithLock(dir)
	if err != nil {
		return nil, err
	}
	defer unlock()

	removed := c.RemoveStale()
	if len(removed) == 0 {
		return nil, nil
	}
	return removed, Save(dir, c)
}

func key(manifestPath string) string {
	return filepath.Clean(manifestPath)
}

func stamps(ws *workspace.Workspace) map[string]int64 {
	s := make(map[string]int64)
	add := func(path string) { s[path] = modTime(path) }

	add(ws.ManifestPath())
	add(filepath.Dir(ws.ManifestPath()))
	for _, p := range ws.Members() {
		dir := filepath.Dir(p.ManifestPath)
		add(p.ManifestPath)
		add(dir)
		add(filepath.Dir(dir))
		for _, sub := range targetDirs {
			add(filepath.Join(dir, sub))
		}
	}
	return s
}

func modTime(path string) int64 {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return info.ModTime().UnixNano()
}
