package mcp

import (
	"context"

	"github.com/kbase-labs/kbase-cli/internal/core/domain"
	"github.com/kbase-labs/kbase-cli/internal/core/ports/driving"
)

// mockRepository implements driving.Repository for tool handler tests.
type mockRepository struct {
	sections []domain.Section
	stats    domain.RepoStats
}

var _ driving.Repository = (*mockRepository)(nil)

func (m *mockRepository) Rebuild(context.Context) (*driving.RebuildReport, error) {
	return &driving.RebuildReport{}, nil
}

func (m *mockRepository) Select(_ context.Context, ids []string) error {
	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	for i := range m.sections {
		m.sections[i].Selected = wanted[m.sections[i].ID]
	}
	return nil
}

func (m *mockRepository) ClearSelection(context.Context) error {
	for i := range m.sections {
		m.sections[i].Selected = false
	}
	return nil
}

func (m *mockRepository) Query(_ context.Context, filter domain.SectionFilter) ([]domain.Section, error) {
	var out []domain.Section
	for _, s := range m.sections {
		if filter.Matches(s) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *mockRepository) Selected(context.Context) ([]domain.Section, error) {
	var out []domain.Section
	for _, s := range m.sections {
		if s.Selected {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *mockRepository) Get(_ context.Context, id string) (*domain.Section, error) {
	for i := range m.sections {
		if m.sections[i].ID == id {
			s := m.sections[i]
			return &s, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockRepository) Stats(context.Context) (domain.RepoStats, error) {
	return m.stats, nil
}

func (m *mockRepository) Clear(context.Context) error {
	m.sections = nil
	return nil
}

func (m *mockRepository) Export(context.Context) (domain.ExportPayload, error) {
	return domain.ExportPayload{Sections: m.sections, Metadata: m.stats}, nil
}

func (m *mockRepository) Import(context.Context, []byte) error {
	return nil
}

// mockTemplates implements driving.TemplateManager.
type mockTemplates struct {
	templates []domain.PromptTemplate
	defaultID string
}

var _ driving.TemplateManager = (*mockTemplates)(nil)

func (m *mockTemplates) List() []domain.PromptTemplate { return m.templates }

func (m *mockTemplates) Get(id string) (*domain.PromptTemplate, error) {
	for i := range m.templates {
		if m.templates[i].ID == id {
			t := m.templates[i]
			return &t, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockTemplates) Default() domain.PromptTemplate {
	for _, t := range m.templates {
		if t.ID == m.defaultID {
			return t
		}
	}
	if len(m.templates) > 0 {
		return m.templates[0]
	}
	return domain.PromptTemplate{}
}

func (m *mockTemplates) Create(name, description, prompt string) (*domain.PromptTemplate, error) {
	t := domain.PromptTemplate{ID: name, Name: name, Description: description, Prompt: prompt}
	m.templates = append(m.templates, t)
	return &t, nil
}

func (m *mockTemplates) Update(t domain.PromptTemplate) error {
	for i := range m.templates {
		if m.templates[i].ID == t.ID {
			m.templates[i] = t
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *mockTemplates) SetDefault(id string) error {
	m.defaultID = id
	return nil
}

func (m *mockTemplates) Reload() error { return nil }
