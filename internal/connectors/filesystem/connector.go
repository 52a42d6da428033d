// Package filesystem walks configured source roots and collects the raw
// documents considered by a rescan.
package filesystem

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/kbase-labs/kbase-cli/internal/core/domain"
	"github.com/kbase-labs/kbase-cli/internal/logger"
)

// supportedExtensions is the set of file extensions considered by a scan.
var supportedExtensions = map[string]bool{
	".md":  true,
	".txt": true,
}

// Supported reports whether the path carries a supported extension.
func Supported(path string) bool {
	return supportedExtensions[strings.ToLower(filepath.Ext(path))]
}

// ListDocuments recursively collects every supported file under the root,
// reading each file's raw bytes. Unreadable files and directories are
// logged and skipped so a single bad entry never aborts the walk. The
// context is checked between files; cancellation aborts with ctx.Err().
func ListDocuments(ctx context.Context, root domain.SourceRoot) ([]domain.RawDocument, error) {
	var docs []domain.RawDocument

	err := filepath.WalkDir(root.Path, func(path string, entry fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			logger.Warn("cannot access %s: %v", path, err)
			if entry != nil && entry.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if entry.IsDir() || !Supported(path) {
			return nil
		}

		content, readErr := os.ReadFile(path)
		if readErr != nil {
			logger.Warn("cannot read %s: %v", path, readErr)
			return nil
		}

		absPath, absErr := filepath.Abs(path)
		if absErr != nil {
			absPath = path
		}

		docs = append(docs, domain.RawDocument{
			Category: root.Category,
			Path:     absPath,
			Name:     entry.Name(),
			Content:  content,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Debug("found %d documents under %s (%s)", len(docs), root.Path, root.Category)
	return docs, nil
}
