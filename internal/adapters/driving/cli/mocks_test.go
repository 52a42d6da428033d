package cli

import (
	"context"

	"github.com/kbase-labs/kbase-cli/internal/core/domain"
	"github.com/kbase-labs/kbase-cli/internal/core/ports/driving"
)

// mockRepository implements driving.Repository for command tests.
type mockRepository struct {
	sections      []domain.Section
	stats         domain.RepoStats
	rebuildReport *driving.RebuildReport
	rebuildErr    error
	selectedIDs   []string
	cleared       bool
}

var _ driving.Repository = (*mockRepository)(nil)

func (m *mockRepository) Rebuild(context.Context) (*driving.RebuildReport, error) {
	if m.rebuildErr != nil {
		return nil, m.rebuildErr
	}
	if m.rebuildReport != nil {
		return m.rebuildReport, nil
	}
	return &driving.RebuildReport{}, nil
}

func (m *mockRepository) Select(_ context.Context, ids []string) error {
	m.selectedIDs = ids
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
	m.cleared = true
	m.sections = nil
	m.stats = domain.RepoStats{}
	return nil
}

func (m *mockRepository) Export(context.Context) (domain.ExportPayload, error) {
	return domain.ExportPayload{Sections: m.sections, Metadata: m.stats}, nil
}

func (m *mockRepository) Import(context.Context, []byte) error {
	return nil
}

// withMockServices wires mocks into the package vars and returns a restore
// function for the test's cleanup.
func withMockServices(repo *mockRepository) func() {
	prevRepo := repositoryService
	repositoryService = repo
	return func() {
		repositoryService = prevRepo
	}
}
