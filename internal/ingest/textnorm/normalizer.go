// Package textnorm cleans document text in two independent passes:
// a structural cleanup applied to whole documents before segmentation,
// and an annotation-stripping pass applied to each section afterwards.
// Both passes are idempotent.
package textnorm

import (
	"regexp"
	"strings"
)

var (
	spaceRuns    = regexp.MustCompile(`[ \t]+`)
	controlChars = regexp.MustCompile("[\x00-\x08\x0B\x0C\x0E-\x1F\x7F]")
	newlineRuns  = regexp.MustCompile(`\n{3,}`)
)

// annotationPatterns remove editorial and legal annotation noise from
// section content. Each pattern targets a disjoint annotation shape, so
// application order does not matter; the disjointness invariant is pinned
// by tests. All patterns are case-insensitive and dot matches newline.
var annotationPatterns = []*regexp.Regexp{
	// Amendment references: (в ред. ...)
	regexp.MustCompile(`(?is)\(в ред\. [^)]*\)`),
	// Introduction notes: (введена ...)
	regexp.MustCompile(`(?is)\(введена [^)]*\)`),
	// Clause amendment references: (п. N в ред. ...)
	regexp.MustCompile(`(?is)\(п\. \d+ в ред\. [^)]*\)`),
	// Bracketed citation-system notes.
	regexp.MustCompile(`(?is)\[[^\]]*Консультант[^\]]*\]`),
	// Citation-system note blocks, running over consecutive non-empty
	// lines until a blank line or the end of the text.
	regexp.MustCompile(`(?is)КонсультантПлюс: примечание\.[^\n]*(?:\n[^\n]+)*`),
	// Federal law references.
	regexp.MustCompile(`(?is)Федеральн(?:ого|ым) законом от \d{2}\.\d{2}\.\d{4} [№N]\d+-\S+`),
	// "See also" cross-references.
	regexp.MustCompile(`(?is)см\. [^.]*\.`),
	// Bare revision dates.
	regexp.MustCompile(`(?is)ред\. \d{2}\.\d{2}\.\d{4}`),
	// Copyright tails.
	regexp.MustCompile(`(?is)©.*`),
	// Sub-clause introduction references.
	regexp.MustCompile(`(?is)\(п\. \d+\.\d введен Федеральным законом от \d{2}\.\d{2}\.\d{4} N \d+-\S+\)`),
	// Full federal-law amendment parentheticals.
	regexp.MustCompile(`(?is)\(в ред\. Федерального закона от \d{2}\.\d{2}\.\d{4} N \d+-\S+\)`),
}

// CleanStructure canonicalises whole-document text before segmentation:
// space and tab runs collapse to one space, soft hyphens are removed,
// non-breaking spaces become ordinary spaces, control characters are
// stripped, every line is trimmed, blank lines are dropped and the lines
// are rejoined with single newlines. Safe to re-run.
func CleanStructure(text string) string {
	if text == "" {
		return text
	}

	cleaned := spaceRuns.ReplaceAllString(text, " ")
	cleaned = strings.ReplaceAll(cleaned, "\u00ad", "") // soft hyphen
	cleaned = strings.ReplaceAll(cleaned, "\u00a0", " ") // non-breaking space
	cleaned = controlChars.ReplaceAllString(cleaned, "")
	cleaned = newlineRuns.ReplaceAllString(cleaned, "\n\n")
	// Replaced non-breaking spaces can produce new space runs.
	cleaned = spaceRuns.ReplaceAllString(cleaned, " ")
	cleaned = strings.TrimSpace(cleaned)

	lines := strings.Split(cleaned, "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}

// StripAnnotations removes editorial annotation noise from section content.
// Patterns are applied independently; running the pass on already-clean
// text is a no-op.
func StripAnnotations(text string) string {
	if text == "" {
		return text
	}
	for _, pattern := range annotationPatterns {
		text = pattern.ReplaceAllString(text, "")
	}
	return text
}

// CleanForOutput prepares section content for the export bundle: lines are
// trimmed, blank lines dropped, and the remaining lines joined with exactly
// one blank line between paragraphs. Persisted content is never touched by
// this pass.
func CleanForOutput(text string) string {
	if text == "" {
		return text
	}

	cleaned := newlineRuns.ReplaceAllString(text, "\n\n")
	cleaned = strings.TrimSpace(cleaned)

	lines := strings.Split(cleaned, "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		kept = append(kept, spaceRuns.ReplaceAllString(line, " "))
	}
	return strings.Join(kept, "\n\n")
}
