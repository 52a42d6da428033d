package driving

import (
	"context"

	"github.com/kbase-labs/kbase-cli/internal/core/domain"
)

// Repository owns the section corpus and its aggregate metadata.
//
// Rebuild replaces the corpus wholesale; Select and ClearSelection are the
// only incremental mutations. Section ids are regenerated on every rebuild,
// so selection does not survive a rescan even for unchanged documents —
// callers must treat a rebuild as clearing the selection.
type Repository interface {
	// Rebuild re-ingests every configured source root and replaces the
	// entire corpus. Files that fail to decode or process are skipped
	// and logged, never fatal. The creation timestamp is preserved from
	// the previous state when one existed.
	Rebuild(ctx context.Context) (*RebuildReport, error)

	// Select marks exactly the given ids as selected and everything
	// else as unselected, then persists. Unknown ids are ignored.
	Select(ctx context.Context, ids []string) error

	// ClearSelection unselects every section and persists.
	ClearSelection(ctx context.Context) error

	// Query returns sections matching the filter, in stored order.
	Query(ctx context.Context, filter domain.SectionFilter) ([]domain.Section, error)

	// Selected returns all selected sections, in stored order.
	Selected(ctx context.Context) ([]domain.Section, error)

	// Get returns a single section by id.
	Get(ctx context.Context, id string) (*domain.Section, error)

	// Stats returns the current aggregate metadata.
	Stats(ctx context.Context) (domain.RepoStats, error)

	// Clear wipes the corpus and resets the metadata, including the
	// creation timestamp.
	Clear(ctx context.Context) error

	// Export returns the full repository state as one payload.
	Export(ctx context.Context) (domain.ExportPayload, error)

	// Import replaces the full repository state from a JSON payload.
	// Payloads lacking the sections or metadata keys are rejected with
	// domain.ErrInvalidImport and the existing state is untouched.
	Import(ctx context.Context, payload []byte) error
}

// RebuildReport summarises one full rescan.
type RebuildReport struct {
	// Documents is the number of source files found under all roots.
	Documents int

	// Sections is the number of sections produced.
	Sections int

	// Skipped is the number of files that failed to process.
	Skipped int

	// ByCategory breaks the counts down per document category.
	ByCategory map[domain.Category]domain.CategoryStats
}
