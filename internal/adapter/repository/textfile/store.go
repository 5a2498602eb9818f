package textfile

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/iho/onlinebank/internal/adapter/repository/codec"
	"github.com/iho/onlinebank/internal/domain"
	"github.com/iho/onlinebank/internal/usecase"
)

// defaultFileMode applies to an account file created by the first save.
const defaultFileMode fs.FileMode = 0o644

// Store implements usecase.AccountStore on a flat text file.
type Store struct {
	path string
}

// NewStore creates a new Store for path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads all records. A missing file is an empty store.
func (s *Store) Load(ctx context.Context) (usecase.LoadResult, error) {
	if err := ctx.Err(); err != nil {
		return usecase.LoadResult{}, err
	}

	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return usecase.LoadResult{}, nil
		}
		return usecase.LoadResult{}, fmt.Errorf("failed to open %s: %w", s.path, err)
	}
	defer f.Close()

	return codec.Decode(f)
}

// Save rewrites the whole file. Records go to a temp file in the same
// directory which is renamed over the target only after a clean write.
func (s *Store) Save(ctx context.Context, accounts []*domain.Account) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if err := tmp.Chmod(s.fileMode()); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to set file mode: %w", err)
	}

	if err := codec.Encode(tmp, accounts); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write accounts: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace %s: %w", s.path, err)
	}

	return nil
}

// fileMode keeps the permissions of an existing account file across saves.
func (s *Store) fileMode() fs.FileMode {
	fi, err := os.Stat(s.path)
	if err != nil {
		return defaultFileMode
	}
	return fi.Mode().Perm()
}
