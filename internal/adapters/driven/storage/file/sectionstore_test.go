package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kbase-labs/kbase-cli/internal/core/domain"
)

func TestSectionStore_LoadEmptyDirectory(t *testing.T) {
	store, err := NewSectionStore(t.TempDir())
	require.NoError(t, err)

	sections, stats, err := store.Load(context.Background())

	require.NoError(t, err)
	assert.Empty(t, sections)
	assert.Zero(t, stats.TotalSections)
}

func TestSectionStore_SaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	store, err := NewSectionStore(dir)
	require.NoError(t, err)
	ctx := context.Background()

	sections := []domain.Section{
		{
			ID:            "doc_0_12345678",
			Category:      domain.CategoryNormative,
			Document:      "doc.txt",
			DocumentTitle: "Документ",
			Title:         "ГЛАВА 1. Общие положения",
			Content:       "текст",
			Kind:          domain.KindChapter,
			WordCount:     1,
			Selected:      true,
		},
	}
	stats := domain.RepoStats{
		CreatedAt:      time.Now().Truncate(time.Second),
		LastUpdated:    time.Now().Truncate(time.Second),
		TotalSections:  1,
		TotalDocuments: 1,
		ByCategory: map[domain.Category]domain.CategoryStats{
			domain.CategoryNormative: {Documents: 1, Sections: 1},
		},
	}

	require.NoError(t, store.Save(ctx, sections, stats))

	// A fresh store over the same directory sees the state.
	store2, err := NewSectionStore(dir)
	require.NoError(t, err)
	loaded, loadedStats, err := store2.Load(ctx)

	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, sections[0], loaded[0])
	assert.Equal(t, stats.TotalSections, loadedStats.TotalSections)
	assert.Equal(t, 1, loadedStats.ByCategory[domain.CategoryNormative].Documents)
}

func TestSectionStore_CorruptFilesDegradeToEmpty(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sections.json"), []byte("{broken"), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "metadata.json"), []byte("also broken"), 0600))

	store, err := NewSectionStore(dir)
	require.NoError(t, err)

	sections, stats, err := store.Load(context.Background())

	require.NoError(t, err)
	assert.Empty(t, sections)
	assert.Zero(t, stats.TotalSections)
}

func TestSectionStore_SaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	store, err := NewSectionStore(dir)
	require.NoError(t, err)

	require.NoError(t, store.Save(context.Background(), nil, domain.RepoStats{}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	assert.ElementsMatch(t, []string{"sections.json", "metadata.json"}, names)
}

func TestSectionStore_NilSectionsPersistAsEmptyList(t *testing.T) {
	dir := t.TempDir()
	store, err := NewSectionStore(dir)
	require.NoError(t, err)

	require.NoError(t, store.Save(context.Background(), nil, domain.RepoStats{}))

	data, err := os.ReadFile(filepath.Join(dir, "sections.json"))
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(data))
}
