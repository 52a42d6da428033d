package segment

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/kbase-labs/kbase-cli/internal/core/domain"
)

// Bracketed header lines open sections in structured documents: the whole
// line is one opening bracket, the label, one closing bracket. The label
// must be longer than minBracketLen runes, at most maxBracketLen, and
// contain at least one Latin or Cyrillic letter — a line like "[12]" stays
// body text. Detection is line-level with no escaping mechanism; a body
// line that happens to satisfy the heuristic is treated as a header.
const (
	minBracketLen = 3
	maxBracketLen = 200
)

var (
	bracketLine = regexp.MustCompile(`^\[([^\[\]]+)\]$`)
	alphabetic  = regexp.MustCompile(`[А-Яа-яЁёA-Za-z]`)
)

func matchBracket(line string) (headerMatch, bool) {
	m := bracketLine.FindStringSubmatch(line)
	if m == nil {
		return headerMatch{}, false
	}

	label := strings.TrimSpace(m[1])
	n := utf8.RuneCountInString(label)
	if n <= minBracketLen || n > maxBracketLen || !alphabetic.MatchString(label) {
		return headerMatch{}, false
	}

	// The title is the label without brackets; they are re-added only at
	// display and export time.
	return headerMatch{title: label, kind: domain.KindBracketed}, true
}
