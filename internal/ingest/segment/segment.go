// Package segment partitions normalized document text into an ordered list
// of labeled section drafts. The strategy is chosen by document category:
// chapter headers for normative acts, markdown headings for methodology,
// bracketed header lines for structured documents, and whole-document
// passthrough for expertise and unknown categories.
//
// Segmentation is total: any input produces at least one draft, and the
// drafts' content concatenated in order reproduces the input minus header
// lines and whitespace normalization.
package segment

import (
	"strings"

	"github.com/kbase-labs/kbase-cli/internal/core/domain"
)

// headerMatch is the result of testing one line against a strategy's
// pattern set. Detection is first-match-wins per line: a line never opens
// two header kinds within the same strategy.
type headerMatch struct {
	title string
	kind  domain.SectionKind
}

// matcher tests a trimmed line against a strategy's header patterns.
type matcher func(line string) (headerMatch, bool)

// Split partitions body text into section drafts for the given category.
// The body must already be normalized with front-matter removed.
// The fallback title names whole-document sections and content that
// precedes the first header.
func Split(category domain.Category, body, fallbackTitle string) []domain.SectionDraft {
	switch category {
	case domain.CategoryNormative:
		return splitByHeaders(body, fallbackTitle, matchChapter)
	case domain.CategoryMethodology:
		return splitByHeaders(body, fallbackTitle, matchHeading)
	case domain.CategoryStructured:
		return splitByHeaders(body, fallbackTitle, matchBracket)
	case domain.CategoryExpertise:
		return wholeDocument(body, fallbackTitle, domain.KindWholeDocument)
	default:
		return wholeDocument(body, fallbackTitle, domain.KindFullDocument)
	}
}

// wholeDocument emits the entire body as a single draft.
func wholeDocument(body, title string, kind domain.SectionKind) []domain.SectionDraft {
	body = strings.TrimSpace(body)
	if body == "" {
		return []domain.SectionDraft{{Title: title, Kind: domain.KindEmptyDocument}}
	}
	return []domain.SectionDraft{{Title: title, Content: body, Kind: kind}}
}

// splitByHeaders runs the shared line-buffering algorithm over the body.
//
// Rules, binding for every header strategy:
//   - an empty body yields one empty-document draft, never zero drafts;
//   - content before the first header is attributed to a draft titled with
//     the fallback title;
//   - a header closes the current draft, including an empty one when two
//     headers are adjacent (drafts are never merged or dropped);
//   - trailing buffered content is always flushed into one final draft;
//   - a body with no headers at all becomes one whole-document draft.
func splitByHeaders(body, fallbackTitle string, match matcher) []domain.SectionDraft {
	trimmed := strings.TrimSpace(body)
	if trimmed == "" {
		return []domain.SectionDraft{{Title: fallbackTitle, Kind: domain.KindEmptyDocument}}
	}

	var (
		drafts     []domain.SectionDraft
		buffer     []string
		title      = fallbackTitle
		kind       = domain.KindDocument
		headerSeen = false
	)

	flush := func() {
		drafts = append(drafts, domain.SectionDraft{
			Title:   title,
			Content: strings.TrimSpace(strings.Join(buffer, "\n")),
			Kind:    kind,
		})
	}

	for _, line := range strings.Split(trimmed, "\n") {
		if m, ok := match(strings.TrimSpace(line)); ok {
			// Close the running draft. Pre-header drafts are emitted
			// only when they carry content; post-header drafts are
			// emitted even when empty.
			if headerSeen || hasContent(buffer) {
				flush()
			}
			title, kind, buffer = m.title, m.kind, nil
			headerSeen = true
			continue
		}
		buffer = append(buffer, line)
	}

	if !headerSeen {
		return wholeDocument(trimmed, fallbackTitle, domain.KindWholeDocument)
	}

	flush()
	return drafts
}

func hasContent(lines []string) bool {
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			return true
		}
	}
	return false
}
