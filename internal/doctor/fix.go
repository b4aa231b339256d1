package doctor

import (
	"errors"
	"fmt"
	"io"

	"github.com/raphi011/cargo-asm/internal/cache"
)

// Fix repairs the issues doctor can repair: stale workspace cache entries
// are pruned.
func Fix(w io.Writer, opts Options) error {
	if opts.CacheDir == "" {
		return errors.New("no cache directory to repair")
	}

	removed, err := cache.Prune(opts.CacheDir)
	if err != nil {
		return fmt.Errorf("prune cache: %w", err)
	}
	if len(removed) == 0 {
		fmt.Fprintln(w, "Nothing to fix")
		return nil
	}
	for _, path := range removed {
		fmt.Fprintf(w, "  ✓ Pruned cache entry for %s\n", path)
	}
	return nil
}
