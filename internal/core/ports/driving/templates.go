package driving

import "github.com/kbase-labs/kbase-cli/internal/core/domain"

// TemplateManager manages the prompt templates placed ahead of exported
// materials.
type TemplateManager interface {
	// List returns all templates.
	List() []domain.PromptTemplate

	// Get returns the template with the given id.
	Get(id string) (*domain.PromptTemplate, error)

	// Default returns the configured default template, falling back to
	// the first template, then to an empty one.
	Default() domain.PromptTemplate

	// Create adds a new template with a generated id and persists.
	Create(name, description, prompt string) (*domain.PromptTemplate, error)

	// Update replaces an existing template by id and persists.
	Update(t domain.PromptTemplate) error

	// SetDefault marks an existing template as the default and persists.
	SetDefault(id string) error

	// Reload re-reads the template collection from the backing store.
	Reload() error
}
