// Package file provides JSON file-backed persistence for the section
// corpus, repository metadata and prompt templates. State is rewritten
// wholesale on every save; writes go through a temp file and rename so a
// crash never leaves a half-written database behind.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kbase-labs/kbase-cli/internal/core/domain"
	"github.com/kbase-labs/kbase-cli/internal/core/ports/driven"
	"github.com/kbase-labs/kbase-cli/internal/logger"
)

const (
	sectionsFile = "sections.json"
	metadataFile = "metadata.json"
)

// Ensure SectionStore implements the interface.
var _ driven.SectionStore = (*SectionStore)(nil)

// SectionStore persists sections and metadata as two JSON files inside a
// database directory.
type SectionStore struct {
	dir string
}

// NewSectionStore creates a section store rooted at dir, creating the
// directory if needed.
func NewSectionStore(dir string) (*SectionStore, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create database dir: %w", err)
	}
	return &SectionStore{dir: dir}, nil
}

// Dir returns the database directory.
func (s *SectionStore) Dir() string {
	return s.dir
}

// Load reads the persisted corpus. A missing or corrupt file degrades to
// an empty state so a damaged database never blocks startup.
func (s *SectionStore) Load(ctx context.Context) ([]domain.Section, domain.RepoStats, error) {
	if err := ctx.Err(); err != nil {
		return nil, domain.RepoStats{}, err
	}

	var sections []domain.Section
	if err := s.readJSON(sectionsFile, &sections); err != nil {
		logger.Warn("sections file unusable, starting empty: %v", err)
		sections = nil
	}

	var stats domain.RepoStats
	if err := s.readJSON(metadataFile, &stats); err != nil {
		logger.Warn("metadata file unusable, starting empty: %v", err)
		stats = domain.RepoStats{}
	}

	logger.Debug("loaded %d sections from %s", len(sections), s.dir)
	return sections, stats, nil
}

// Save replaces both files atomically. Sections are written first; a
// failure leaves the previous pair intact.
func (s *SectionStore) Save(ctx context.Context, sections []domain.Section, stats domain.RepoStats) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if sections == nil {
		sections = []domain.Section{}
	}
	if err := s.writeJSON(sectionsFile, sections); err != nil {
		return fmt.Errorf("write sections: %w", err)
	}
	if err := s.writeJSON(metadataFile, stats); err != nil {
		return fmt.Errorf("write metadata: %w", err)
	}

	logger.Debug("saved %d sections to %s", len(sections), s.dir)
	return nil
}

func (s *SectionStore) readJSON(name string, v any) error {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, v)
}

func (s *SectionStore) writeJSON(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	target := filepath.Join(s.dir, name)
	tmp, err := os.CreateTemp(s.dir, name+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
