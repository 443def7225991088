package report

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/iho/txrecon/internal/domain"
)

// FileStore implements usecase.ReportStore over the CSV report file.
type FileStore struct {
	path string
}

// NewFileStore creates a new FileStore.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Stat returns the report's size and modification time.
func (s *FileStore) Stat(ctx context.Context) (*domain.ReportInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fi, err := os.Stat(s.path)
	if err != nil {
		return nil, s.mapError(err)
	}

	if fi.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", domain.ErrIO, s.path)
	}

	return &domain.ReportInfo{
		Path:       s.path,
		Size:       fi.Size(),
		ModifiedAt: fi.ModTime(),
	}, nil
}

// Read returns the report content.
func (s *FileStore) Read(ctx context.Context) (*domain.Report, error) {
	info, err := s.Stat(ctx)
	if err != nil {
		return nil, err
	}

	content, err := os.ReadFile(s.path)
	if err != nil {
		return nil, s.mapError(err)
	}

	info.Size = int64(len(content))

	return &domain.Report{ReportInfo: *info, Content: content}, nil
}

func (s *FileStore) mapError(err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", domain.ErrReportNotFound, s.path)
	}
	return fmt.Errorf("%w: %w", domain.ErrIO, err)
}
