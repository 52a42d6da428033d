package driven

import (
	"context"

	"github.com/kbase-labs/kbase-cli/internal/core/domain"
)

// SectionStore persists the full section corpus and its aggregate metadata.
// Both are rewritten wholesale on every mutating operation; partial writes
// must never be observable.
type SectionStore interface {
	// Load reads the persisted state. Corrupt or missing files degrade
	// to an empty corpus rather than failing startup; only I/O errors
	// unrelated to content validity are returned.
	Load(ctx context.Context) ([]domain.Section, domain.RepoStats, error)

	// Save replaces the persisted state atomically. Write failures are
	// surfaced to the caller; the in-memory state stays authoritative
	// until the next successful save.
	Save(ctx context.Context, sections []domain.Section, stats domain.RepoStats) error
}
