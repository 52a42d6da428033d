package services

import (
	"encoding/hex"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/kbase-labs/kbase-cli/internal/core/domain"
	"github.com/kbase-labs/kbase-cli/internal/core/ports/driven"
	"github.com/kbase-labs/kbase-cli/internal/core/ports/driving"
)

// Ensure TemplateService implements the driving port.
var _ driving.TemplateManager = (*TemplateService)(nil)

// TemplateService manages prompt templates over a template store.
type TemplateService struct {
	store driven.TemplateStore

	mu  sync.RWMutex
	set domain.TemplateSet
}

// NewTemplateService creates a template manager and loads the collection.
func NewTemplateService(store driven.TemplateStore) (*TemplateService, error) {
	set, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}
	return &TemplateService{store: store, set: set}, nil
}

// List returns all templates.
func (s *TemplateService) List() []domain.PromptTemplate {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.PromptTemplate, len(s.set.Templates))
	copy(out, s.set.Templates)
	return out
}

// Get returns the template with the given id.
func (s *TemplateService) Get(id string) (*domain.PromptTemplate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if t := s.set.Find(id); t != nil {
		found := *t
		return &found, nil
	}
	return nil, fmt.Errorf("template %s: %w", id, domain.ErrNotFound)
}

// Default returns the configured default template. When no default is set
// or it names a missing template, the first template wins; an empty
// collection yields an empty template.
func (s *TemplateService) Default() domain.PromptTemplate {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if t := s.set.Find(s.set.DefaultTemplate); t != nil {
		return *t
	}
	if len(s.set.Templates) > 0 {
		return s.set.Templates[0]
	}
	return domain.PromptTemplate{}
}

// Create adds a new template with a generated id and persists.
func (s *TemplateService) Create(name, description, prompt string) (*domain.PromptTemplate, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: template name is required", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(prompt) == "" {
		return nil, fmt.Errorf("%w: template prompt is required", domain.ErrInvalidInput)
	}

	t := domain.PromptTemplate{
		ID:          templateID(),
		Name:        name,
		Description: description,
		Prompt:      prompt,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.set.Templates = append(s.set.Templates, t)
	if err := s.persistLocked(); err != nil {
		return nil, err
	}
	return &t, nil
}

// templateID builds a new template id in the same short style as section
// ids: a fixed prefix plus the first eight hex digits of a random uuid.
func templateID() string {
	u := uuid.New()
	return "template_" + hex.EncodeToString(u[:])[:8]
}

// Update replaces an existing template by id and persists.
func (s *TemplateService) Update(t domain.PromptTemplate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing := s.set.Find(t.ID)
	if existing == nil {
		return fmt.Errorf("template %s: %w", t.ID, domain.ErrNotFound)
	}
	*existing = t
	return s.persistLocked()
}

// SetDefault marks an existing template as the default and persists.
func (s *TemplateService) SetDefault(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.set.Find(id) == nil {
		return fmt.Errorf("template %s: %w", id, domain.ErrNotFound)
	}
	s.set.DefaultTemplate = id
	return s.persistLocked()
}

// Reload re-reads the template collection from the backing store.
func (s *TemplateService) Reload() error {
	set, err := s.store.Load()
	if err != nil {
		return fmt.Errorf("load templates: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.set = set
	return nil
}

// persistLocked saves the template set. Caller must hold the write lock.
func (s *TemplateService) persistLocked() error {
	if err := s.store.Save(s.set); err != nil {
		return fmt.Errorf("save templates: %w", err)
	}
	return nil
}
