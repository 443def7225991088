package usecase

import (
	"context"
	"time"

	"github.com/iho/txrecon/internal/domain"
)

// ReportUseCase serves the tabular report.
type ReportUseCase struct {
	store ReportStore
	cache ReportCache
	ttl   time.Duration
}

// NewReportUseCase creates a new ReportUseCase. cache may be nil.
func NewReportUseCase(store ReportStore, cache ReportCache, ttl time.Duration) *ReportUseCase {
	if ttl <= 0 {
		ttl = DefaultReportCacheTTL
	}

	return &ReportUseCase{
		store: store,
		cache: cache,
		ttl:   ttl,
	}
}

// GetReport returns the current report.
// It returns domain.ErrReportNotFound when no report has been written yet.
func (uc *ReportUseCase) GetReport(ctx context.Context) (*domain.Report, error) {
	if uc.cache == nil {
		return uc.store.Read(ctx)
	}

	info, err := uc.store.Stat(ctx)
	if err != nil {
		return nil, err
	}

	key := info.CacheKey()

	// Cache errors fall through to the store.
	if content, err := uc.cache.Get(ctx, key); err == nil {
		return &domain.Report{ReportInfo: *info, Content: content}, nil
	}

	report, err := uc.store.Read(ctx)
	if err != nil {
		return nil, err
	}

	// The key is derived from the stat taken before reading; a report replaced in
	// between is cached under the old key and expires with it.
	_ = uc.cache.Set(ctx, key, report.Content, uc.ttl)

	return report, nil
}
