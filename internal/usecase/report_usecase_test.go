package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/iho/txrecon/internal/domain"
	"github.com/iho/txrecon/internal/usecase"
	"github.com/iho/txrecon/internal/usecase/mocks"
)

func testReport() *domain.Report {
	return &domain.Report{
		ReportInfo: domain.ReportInfo{
			Path:       "failedTransactions.csv",
			Size:       9,
			ModifiedAt: time.Unix(1700000000, 0),
		},
		Content: []byte(`"a","b"` + "\n"),
	}
}

func TestReportUseCase_WithoutCacheReadsStore(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockReportStore(ctrl)
	store.EXPECT().Read(gomock.Any()).Return(testReport(), nil)

	uc := usecase.NewReportUseCase(store, nil, 0)

	report, err := uc.GetReport(context.Background())
	require.NoError(t, err)
	assert.Equal(t, testReport().Content, report.Content)
}

func TestReportUseCase_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockReportStore(ctrl)
	cache := mocks.NewMockReportCache(ctrl)
	store.EXPECT().Stat(gomock.Any()).Return(nil, domain.ErrReportNotFound)

	uc := usecase.NewReportUseCase(store, cache, time.Minute)

	_, err := uc.GetReport(context.Background())
	assert.True(t, errors.Is(err, domain.ErrReportNotFound))
}

func TestReportUseCase_CacheHit(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockReportStore(ctrl)
	cache := mocks.NewMockReportCache(ctrl)

	report := testReport()
	store.EXPECT().Stat(gomock.Any()).Return(&report.ReportInfo, nil)
	cache.EXPECT().Get(gomock.Any(), report.CacheKey()).Return([]byte("cached"), nil)

	uc := usecase.NewReportUseCase(store, cache, time.Minute)

	got, err := uc.GetReport(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []byte("cached"), got.Content)
	assert.Equal(t, report.Path, got.Path)
}

func TestReportUseCase_CacheMissPopulatesCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockReportStore(ctrl)
	cache := mocks.NewMockReportCache(ctrl)

	report := testReport()
	gomock.InOrder(
		store.EXPECT().Stat(gomock.Any()).Return(&report.ReportInfo, nil),
		cache.EXPECT().Get(gomock.Any(), report.CacheKey()).Return(nil, usecase.ErrCacheMiss),
		store.EXPECT().Read(gomock.Any()).Return(report, nil),
		cache.EXPECT().Set(gomock.Any(), report.CacheKey(), report.Content, 45*time.Second).Return(nil),
	)

	uc := usecase.NewReportUseCase(store, cache, 45*time.Second)

	got, err := uc.GetReport(context.Background())
	require.NoError(t, err)
	assert.Equal(t, report.Content, got.Content)
}

func TestReportUseCase_CacheFailureFallsBackToStore(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockReportStore(ctrl)
	cache := mocks.NewMockReportCache(ctrl)

	report := testReport()
	store.EXPECT().Stat(gomock.Any()).Return(&report.ReportInfo, nil)
	cache.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, errors.New("connection refused"))
	store.EXPECT().Read(gomock.Any()).Return(report, nil)
	cache.EXPECT().Set(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("connection refused"))

	uc := usecase.NewReportUseCase(store, cache, 0)

	got, err := uc.GetReport(context.Background())
	require.NoError(t, err)
	assert.Equal(t, report.Content, got.Content)
}
