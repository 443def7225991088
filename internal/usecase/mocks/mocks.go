package mocks

import (
	"context"
	"fmt"
	"sync"

	"github.com/iho/txrecon/internal/domain"
)

// StaticPrimaryLoader returns a fixed set of transaction records.
type StaticPrimaryLoader struct {
	Records []domain.TransactionRecord
	Err     error

	LoadFunc func(ctx context.Context) ([]domain.TransactionRecord, error)
}

func (l *StaticPrimaryLoader) LoadTransactions(ctx context.Context) ([]domain.TransactionRecord, error) {
	if l.LoadFunc != nil {
		return l.LoadFunc(ctx)
	}
	if l.Err != nil {
		return nil, l.Err
	}
	return l.Records, nil
}

// StaticCompanionLoader returns a fixed set of companion records.
type StaticCompanionLoader struct {
	Records []domain.CompanionRecord
	Err     error

	LoadFunc func(ctx context.Context) ([]domain.CompanionRecord, error)
}

func (l *StaticCompanionLoader) LoadCompanions(ctx context.Context) ([]domain.CompanionRecord, error) {
	if l.LoadFunc != nil {
		return l.LoadFunc(ctx)
	}
	if l.Err != nil {
		return nil, l.Err
	}
	return l.Records, nil
}

// MemorySink keeps every written run in memory.
type MemorySink struct {
	mu   sync.Mutex
	runs []*domain.ReconciliationRun

	WriteFunc func(ctx context.Context, run *domain.ReconciliationRun) error
}

func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

func (s *MemorySink) Write(ctx context.Context, run *domain.ReconciliationRun) error {
	if s.WriteFunc != nil {
		return s.WriteFunc(ctx, run)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs = append(s.runs, run)
	return nil
}

// Runs returns the runs written so far.
func (s *MemorySink) Runs() []*domain.ReconciliationRun {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*domain.ReconciliationRun(nil), s.runs...)
}

// SequenceIDGenerator returns run-1, run-2, ...
type SequenceIDGenerator struct {
	mu      sync.Mutex
	counter int
}

func NewSequenceIDGenerator() *SequenceIDGenerator {
	return &SequenceIDGenerator{}
}

func (g *SequenceIDGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.counter++
	return fmt.Sprintf("run-%d", g.counter)
}
