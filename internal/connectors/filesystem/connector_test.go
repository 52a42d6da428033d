package filesystem

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kbase-labs/kbase-cli/internal/core/domain"
)

func TestSupported(t *testing.T) {
	assert.True(t, Supported("doc.md"))
	assert.True(t, Supported("doc.txt"))
	assert.True(t, Supported("DOC.TXT"))
	assert.False(t, Supported("doc.pdf"))
	assert.False(t, Supported("doc"))
}

func TestListDocuments_WalksRecursively(t *testing.T) {
	root := t.TempDir()
	sub := filepath.Join(root, "nested")
	require.NoError(t, os.MkdirAll(sub, 0700))

	require.NoError(t, os.WriteFile(filepath.Join(root, "a.txt"), []byte("один"), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(sub, "b.md"), []byte("два"), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(root, "skip.pdf"), []byte("x"), 0600))

	docs, err := ListDocuments(context.Background(), domain.SourceRoot{
		Category: domain.CategoryNormative,
		Path:     root,
	})

	require.NoError(t, err)
	require.Len(t, docs, 2)

	names := []string{docs[0].Name, docs[1].Name}
	assert.ElementsMatch(t, []string{"a.txt", "b.md"}, names)
	for _, doc := range docs {
		assert.Equal(t, domain.CategoryNormative, doc.Category)
		assert.True(t, filepath.IsAbs(doc.Path))
		assert.NotEmpty(t, doc.Content)
	}
}

func TestListDocuments_EmptyRoot(t *testing.T) {
	docs, err := ListDocuments(context.Background(), domain.SourceRoot{
		Category: domain.CategoryExpertise,
		Path:     t.TempDir(),
	})

	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestListDocuments_CancelledContext(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.txt"), []byte("x"), 0600))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ListDocuments(ctx, domain.SourceRoot{Category: domain.CategoryNormative, Path: root})

	assert.ErrorIs(t, err, context.Canceled)
}
