package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/iho/txrecon/internal/domain"
)

const reportFileMode = 0o644

// writeFileAtomic writes path through a temporary file in the same directory and
// renames it into place, so readers see either the old or the new content.
func writeFileAtomic(path string, write func(io.Writer) error) (err error) {
	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: create temp file for %s: %w", domain.ErrIO, path, err)
	}
	tmpName := tmp.Name()

	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if err = write(tmp); err != nil {
		return fmt.Errorf("%w: write %s: %w", domain.ErrIO, path, err)
	}

	if err = tmp.Chmod(reportFileMode); err != nil {
		return fmt.Errorf("%w: chmod %s: %w", domain.ErrIO, path, err)
	}

	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("%w: sync %s: %w", domain.ErrIO, path, err)
	}

	if err = tmp.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %w", domain.ErrIO, path, err)
	}

	if err = os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("%w: rename into %s: %w", domain.ErrIO, path, err)
	}

	return nil
}
