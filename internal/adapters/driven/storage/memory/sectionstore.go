// Package memory provides an in-memory SectionStore used by tests and by
// ephemeral runs that never touch disk.
package memory

import (
	"context"
	"sync"

	"github.com/kbase-labs/kbase-cli/internal/core/domain"
	"github.com/kbase-labs/kbase-cli/internal/core/ports/driven"
)

// Ensure SectionStore implements the interface.
var _ driven.SectionStore = (*SectionStore)(nil)

// SectionStore holds the section corpus in memory.
type SectionStore struct {
	mu       sync.RWMutex
	sections []domain.Section
	stats    domain.RepoStats
}

// NewSectionStore creates an empty in-memory section store.
func NewSectionStore() *SectionStore {
	return &SectionStore{}
}

// Load returns a copy of the stored state.
func (s *SectionStore) Load(ctx context.Context) ([]domain.Section, domain.RepoStats, error) {
	if err := ctx.Err(); err != nil {
		return nil, domain.RepoStats{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Section, len(s.sections))
	copy(out, s.sections)
	return out, s.stats, nil
}

// Save replaces the stored state with a copy of the given one.
func (s *SectionStore) Save(ctx context.Context, sections []domain.Section, stats domain.RepoStats) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.sections = make([]domain.Section, len(sections))
	copy(s.sections, sections)
	s.stats = stats
	return nil
}
