package driven

import "github.com/kbase-labs/kbase-cli/internal/core/domain"

// TemplateStore persists the prompt template collection.
type TemplateStore interface {
	// Load reads the template set. A missing, empty or malformed file
	// yields the built-in default set; an existing file that failed to
	// parse is never overwritten.
	Load() (domain.TemplateSet, error)

	// Save persists the template set, stamping its last-updated time.
	Save(set domain.TemplateSet) error

	// Path returns the location of the backing file.
	Path() string
}
