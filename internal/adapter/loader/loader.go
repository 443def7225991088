// Package loader turns source files into the record sequences reconciliation consumes.
package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/iho/txrecon/internal/domain"
)

// openSource opens path for reading, mapping failures to domain.ErrIO.
func openSource(ctx context.Context, path string) (*os.File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrIO, err)
	}

	return f, nil
}

// sourceReader marks every read failure other than io.EOF as domain.ErrIO, so
// decoders can tell an unreadable source from malformed content.
type sourceReader struct {
	r io.Reader
}

func (s sourceReader) Read(p []byte) (int, error) {
	n, err := s.r.Read(p)
	if err != nil && err != io.EOF {
		return n, fmt.Errorf("%w: %w", domain.ErrIO, err)
	}
	return n, err
}

// decodeError wraps a decoder failure as domain.ErrFormat unless it came from reading.
func decodeError(err error) error {
	if errors.Is(err, domain.ErrIO) {
		return err
	}
	return fmt.Errorf("%w: %w", domain.ErrFormat, err)
}

// ctxReader stops reading once ctx is done.
type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
