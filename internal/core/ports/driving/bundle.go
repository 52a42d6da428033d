package driving

import (
	"context"

	"github.com/kbase-labs/kbase-cli/internal/core/domain"
)

// BundleBuilder serializes a selection of sections plus a prompt template
// into a multi-document export bundle on disk.
type BundleBuilder interface {
	// Build writes a timestamped session directory containing the
	// combined document, the assembled prompt, the session report and
	// the JSON exports. An empty section list is rejected with
	// domain.ErrEmptySelection and nothing is written.
	Build(ctx context.Context, sections []domain.Section, template domain.PromptTemplate) (*BundleResult, error)
}

// BundleResult describes a bundle written to disk.
type BundleResult struct {
	// SessionID is the timestamp-derived name of the bundle directory.
	SessionID string

	// Dir is the absolute path of the bundle directory.
	Dir string

	// Files lists the files written, relative to Dir.
	Files []string

	// TotalWords is the word count across all bundled sections.
	TotalWords int
}
