package usecase

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/iho/txrecon/internal/domain"
)

// ReconciliationUseCase runs one reconciliation pass: load both sources,
// reconcile them and hand the failures to the report sink.
type ReconciliationUseCase struct {
	primary   PrimaryLoader
	companion CompanionLoader
	sink      ReportSink
	idGen     IDGenerator
	recorder  RunRecorder
	now       func() time.Time
}

// NewReconciliationUseCase creates a new reconciliation use case.
// recorder may be nil.
func NewReconciliationUseCase(
	primary PrimaryLoader,
	companion CompanionLoader,
	sink ReportSink,
	idGen IDGenerator,
	recorder RunRecorder,
) *ReconciliationUseCase {
	return &ReconciliationUseCase{
		primary:   primary,
		companion: companion,
		sink:      sink,
		idGen:     idGen,
		recorder:  recorder,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Run loads both sources concurrently, reconciles them and writes the report.
// Loader and sink errors abort the run.
func (uc *ReconciliationUseCase) Run(ctx context.Context) (*domain.ReconciliationRun, error) {
	run := &domain.ReconciliationRun{
		ID:        uc.idGen.Generate(),
		StartedAt: uc.now(),
	}

	err := uc.run(ctx, run)
	run.FinishedAt = uc.now()

	if uc.recorder != nil {
		uc.recorder.ObserveRun(run, err)
	}

	if err != nil {
		return nil, err
	}

	return run, nil
}

func (uc *ReconciliationUseCase) run(ctx context.Context, run *domain.ReconciliationRun) error {
	primary, companion, err := uc.load(ctx)
	if err != nil {
		return err
	}

	run.PrimaryCount = len(primary)
	run.CompanionCount = len(companion)
	run.Failures = Reconcile(primary, companion).Failures

	if err := uc.sink.Write(ctx, run); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	return nil
}

// load reads both sources; reconciliation needs the complete companion set,
// so it waits for both.
func (uc *ReconciliationUseCase) load(ctx context.Context) ([]domain.TransactionRecord, []domain.CompanionRecord, error) {
	var (
		primary   []domain.TransactionRecord
		companion []domain.CompanionRecord
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		records, err := uc.primary.LoadTransactions(gctx)
		if err != nil {
			return fmt.Errorf("failed to load primary transactions: %w", err)
		}
		primary = records
		return nil
	})

	g.Go(func() error {
		records, err := uc.companion.LoadCompanions(gctx)
		if err != nil {
			return fmt.Errorf("failed to load companion records: %w", err)
		}
		companion = records
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	return primary, companion, nil
}
