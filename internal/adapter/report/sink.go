// Package report writes reconciliation failures to disk and reads the tabular report back.
package report

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/iho/txrecon/internal/domain"
	"github.com/iho/txrecon/internal/usecase"
)

// FileSink implements usecase.ReportSink.
// It writes a JSON audit dump and an always-quoted CSV report.
type FileSink struct {
	dumpPath string
	csvPath  string
	retrier  usecase.Retrier
}

// NewFileSink creates a new FileSink. retrier may be nil.
func NewFileSink(dumpPath, csvPath string, retrier usecase.Retrier) *FileSink {
	return &FileSink{
		dumpPath: dumpPath,
		csvPath:  csvPath,
		retrier:  retrier,
	}
}

// CSVPath returns where the tabular report is written.
func (s *FileSink) CSVPath() string {
	return s.csvPath
}

// Write writes both report files.
func (s *FileSink) Write(ctx context.Context, run *domain.ReconciliationRun) error {
	failures := run.Failures
	if failures == nil {
		failures = []domain.FailureRecord{}
	}

	if err := s.retry(ctx, func() error {
		return writeFileAtomic(s.dumpPath, func(w io.Writer) error {
			return encodeDump(w, failures)
		})
	}); err != nil {
		return fmt.Errorf("audit dump: %w", err)
	}

	if err := s.retry(ctx, func() error {
		return writeFileAtomic(s.csvPath, func(w io.Writer) error {
			return encodeCSV(w, failures)
		})
	}); err != nil {
		return fmt.Errorf("csv report: %w", err)
	}

	return nil
}

func (s *FileSink) retry(ctx context.Context, op func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.retrier == nil {
		return op()
	}
	return s.retrier.Retry(ctx, op)
}

func encodeDump(w io.Writer, failures []domain.FailureRecord) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	enc.SetEscapeHTML(false)
	return enc.Encode(failures)
}

func encodeCSV(w io.Writer, failures []domain.FailureRecord) error {
	rows := make([][]string, 0, len(failures)+1)
	rows = append(rows, domain.ReportColumns)
	for _, f := range failures {
		rows = append(rows, f.Row())
	}
	return writeQuotedCSV(w, rows)
}
