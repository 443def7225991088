package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/iho/txrecon/internal/domain"
)

// ErrCacheMiss is returned by ReportCache when a key is absent.
var ErrCacheMiss = errors.New("cache miss")

// PrimaryLoader loads the primary transaction log.
type PrimaryLoader interface {
	LoadTransactions(ctx context.Context) ([]domain.TransactionRecord, error)
}

// CompanionLoader loads the companion record set.
type CompanionLoader interface {
	LoadCompanions(ctx context.Context) ([]domain.CompanionRecord, error)
}

// ReportSink persists the failures of a run.
type ReportSink interface {
	Write(ctx context.Context, run *domain.ReconciliationRun) error
}

// ReportStore gives read access to the tabular report.
type ReportStore interface {
	Stat(ctx context.Context) (*domain.ReportInfo, error)
	Read(ctx context.Context) (*domain.Report, error)
}

// ReportCache caches report bytes.
type ReportCache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// RunRecorder observes finished reconciliation runs.
type RunRecorder interface {
	ObserveRun(run *domain.ReconciliationRun, err error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Retrier retries an operation that may fail transiently.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}
