// Package frontmatter isolates the optional YAML metadata block from the
// head of a document. Parsing never fails past this package: malformed or
// non-mapping metadata degrades to an empty map.
package frontmatter

import (
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kbase-labs/kbase-cli/internal/logger"
)

// delimiter opens and closes a front-matter block.
const delimiter = "---"

// Extract splits document text into its metadata block and body.
//
// A block exists only when the trimmed text starts with the delimiter and
// a second delimiter follows; otherwise the whole text is body and the
// returned map is empty. The body is returned with the block removed and
// surrounding whitespace trimmed.
func Extract(text string) (map[string]any, string) {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, delimiter) {
		return map[string]any{}, text
	}

	parts := strings.SplitN(trimmed, delimiter, 3)
	if len(parts) < 3 {
		// No closing delimiter: not front-matter, keep everything.
		return map[string]any{}, text
	}

	meta := parseBlock(parts[1])
	body := strings.TrimSpace(parts[2])
	return meta, body
}

// parseBlock parses the text between the delimiters as a YAML mapping.
func parseBlock(block string) map[string]any {
	block = strings.TrimSpace(block)
	if block == "" {
		return map[string]any{}
	}

	var meta map[string]any
	if err := yaml.Unmarshal([]byte(block), &meta); err != nil {
		logger.Warn("front-matter is not valid YAML, ignoring: %v", err)
		return map[string]any{}
	}
	if meta == nil {
		return map[string]any{}
	}
	return meta
}
