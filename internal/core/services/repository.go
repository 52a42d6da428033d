package services

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kbase-labs/kbase-cli/internal/connectors/filesystem"
	"github.com/kbase-labs/kbase-cli/internal/core/domain"
	"github.com/kbase-labs/kbase-cli/internal/core/ports/driven"
	"github.com/kbase-labs/kbase-cli/internal/core/ports/driving"
	"github.com/kbase-labs/kbase-cli/internal/ingest/encoding"
	"github.com/kbase-labs/kbase-cli/internal/ingest/frontmatter"
	"github.com/kbase-labs/kbase-cli/internal/ingest/segment"
	"github.com/kbase-labs/kbase-cli/internal/ingest/textnorm"
	"github.com/kbase-labs/kbase-cli/internal/logger"
)

// Ensure RepositoryService implements the driving port.
var _ driving.Repository = (*RepositoryService)(nil)

// RepositoryService owns the section corpus. It keeps the full corpus in
// memory and writes it through the section store on every mutation.
type RepositoryService struct {
	store  driven.SectionStore
	config driven.ConfigStore

	mu       sync.RWMutex
	sections []domain.Section
	stats    domain.RepoStats
}

// NewRepositoryService creates a repository backed by the given stores and
// loads the persisted state.
func NewRepositoryService(ctx context.Context, store driven.SectionStore, config driven.ConfigStore) (*RepositoryService, error) {
	sections, stats, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load repository: %w", err)
	}

	return &RepositoryService{
		store:    store,
		config:   config,
		sections: sections,
		stats:    stats,
	}, nil
}

// SourceRoots returns the configured source roots in canonical category
// order. Categories without a configured directory are omitted.
func (s *RepositoryService) SourceRoots() []domain.SourceRoot {
	var roots []domain.SourceRoot
	for _, category := range domain.Categories() {
		path := s.config.GetString("sources." + string(category))
		if path == "" {
			continue
		}
		roots = append(roots, domain.SourceRoot{Category: category, Path: path})
	}
	return roots
}

// Rebuild re-ingests every configured source root and replaces the corpus.
// An empty root set is not an error: the rebuild degrades to an empty
// database, the same way missing source folders do.
func (s *RepositoryService) Rebuild(ctx context.Context) (*driving.RebuildReport, error) {
	roots := s.SourceRoots()
	if len(roots) == 0 {
		logger.Warn("no source directories configured, rebuilding an empty database")
	}

	report := &driving.RebuildReport{
		ByCategory: make(map[domain.Category]domain.CategoryStats),
	}
	var sections []domain.Section

	for _, root := range roots {
		docs, err := filesystem.ListDocuments(ctx, root)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", root.Path, err)
		}

		for _, doc := range docs {
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			docSections, err := ingestDocument(doc)
			if err != nil {
				logger.Warn("skipping %s: %v", doc.Path, err)
				report.Skipped++
				continue
			}

			sections = append(sections, docSections...)
			report.Documents++
			stats := report.ByCategory[root.Category]
			stats.Documents++
			stats.Sections += len(docSections)
			report.ByCategory[root.Category] = stats
		}
	}
	report.Sections = len(sections)

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	createdAt := s.stats.CreatedAt
	if createdAt.IsZero() {
		createdAt = now
	}
	stats := domain.RepoStats{
		CreatedAt:      createdAt,
		LastUpdated:    now,
		TotalSections:  report.Sections,
		TotalDocuments: report.Documents,
		ByCategory:     report.ByCategory,
	}

	if err := s.store.Save(ctx, sections, stats); err != nil {
		return nil, fmt.Errorf("save repository: %w", err)
	}

	s.sections = sections
	s.stats = stats

	logger.Info("rebuilt repository: %d documents, %d sections, %d skipped",
		report.Documents, report.Sections, report.Skipped)
	return report, nil
}

// ingestDocument runs one raw file through the full pipeline: decode,
// normalize, split off front-matter, segment and strip annotations.
func ingestDocument(doc domain.RawDocument) ([]domain.Section, error) {
	text, err := encoding.Resolve(doc.Content)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	cleaned := textnorm.CleanStructure(text)
	meta, body := frontmatter.Extract(cleaned)

	stem := strings.TrimSuffix(doc.Name, filepath.Ext(doc.Name))
	title := stem
	if t, ok := meta["title"].(string); ok && strings.TrimSpace(t) != "" {
		title = strings.TrimSpace(t)
	}

	drafts := segment.Split(doc.Category, body, title)

	sections := make([]domain.Section, 0, len(drafts))
	for i, draft := range drafts {
		content := textnorm.StripAnnotations(draft.Content)
		sections = append(sections, domain.Section{
			ID:            sectionID(stem, i),
			Category:      doc.Category,
			Document:      doc.Name,
			DocumentTitle: title,
			DocumentPath:  doc.Path,
			Title:         draft.Title,
			Content:       content,
			Kind:          draft.Kind,
			WordCount:     len(strings.Fields(content)),
			FrontMatter:   meta,
		})
	}
	return sections, nil
}

// sectionID builds a corpus-unique id from the file stem, the section
// index within the document and a random suffix.
func sectionID(stem string, index int) string {
	u := uuid.New()
	return fmt.Sprintf("%s_%d_%s", stem, index, hex.EncodeToString(u[:])[:8])
}

// Select marks exactly the given ids as selected. Unknown ids are ignored.
func (s *RepositoryService) Select(ctx context.Context, ids []string) error {
	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.sections {
		s.sections[i].Selected = wanted[s.sections[i].ID]
	}
	return s.persistLocked(ctx)
}

// ClearSelection unselects every section.
func (s *RepositoryService) ClearSelection(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.sections {
		s.sections[i].Selected = false
	}
	return s.persistLocked(ctx)
}

// Query returns sections matching the filter, in stored order.
func (s *RepositoryService) Query(ctx context.Context, filter domain.SectionFilter) ([]domain.Section, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Section
	for _, section := range s.sections {
		if filter.Matches(section) {
			out = append(out, section)
		}
	}
	return out, nil
}

// Selected returns all selected sections, in stored order.
func (s *RepositoryService) Selected(ctx context.Context) ([]domain.Section, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Section
	for _, section := range s.sections {
		if section.Selected {
			out = append(out, section)
		}
	}
	return out, nil
}

// Get returns a single section by id.
func (s *RepositoryService) Get(ctx context.Context, id string) (*domain.Section, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.sections {
		if s.sections[i].ID == id {
			section := s.sections[i]
			return &section, nil
		}
	}
	return nil, fmt.Errorf("section %s: %w", id, domain.ErrNotFound)
}

// Stats returns the current aggregate metadata.
func (s *RepositoryService) Stats(ctx context.Context) (domain.RepoStats, error) {
	if err := ctx.Err(); err != nil {
		return domain.RepoStats{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stats, nil
}

// Clear wipes the corpus and resets the metadata.
func (s *RepositoryService) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sections = nil
	s.stats = domain.RepoStats{}
	return s.persistLocked(ctx)
}

// Export returns the full repository state as one payload.
func (s *RepositoryService) Export(ctx context.Context) (domain.ExportPayload, error) {
	if err := ctx.Err(); err != nil {
		return domain.ExportPayload{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	sections := make([]domain.Section, len(s.sections))
	copy(sections, s.sections)
	if sections == nil {
		sections = []domain.Section{}
	}
	return domain.ExportPayload{Sections: sections, Metadata: s.stats}, nil
}

// Import replaces the full repository state from a JSON payload. The
// payload must carry both the sections and metadata keys; anything else is
// rejected without touching the current state.
func (s *RepositoryService) Import(ctx context.Context, payload []byte) error {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(payload, &probe); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidImport, err)
	}
	if _, ok := probe["sections"]; !ok {
		return fmt.Errorf("%w: missing sections", domain.ErrInvalidImport)
	}
	if _, ok := probe["metadata"]; !ok {
		return fmt.Errorf("%w: missing metadata", domain.ErrInvalidImport)
	}

	var imported domain.ExportPayload
	if err := json.Unmarshal(payload, &imported); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidImport, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.sections = imported.Sections
	s.stats = imported.Metadata
	if err := s.persistLocked(ctx); err != nil {
		return err
	}

	logger.Info("imported %d sections", len(imported.Sections))
	return nil
}

// persistLocked saves the in-memory state. Caller must hold the write lock.
func (s *RepositoryService) persistLocked(ctx context.Context) error {
	if err := s.store.Save(ctx, s.sections, s.stats); err != nil {
		return fmt.Errorf("save repository: %w", err)
	}
	return nil
}
