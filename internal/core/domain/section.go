package domain

import (
	"strings"
	"time"
)

// Section is the atomic persisted unit of text produced by segmentation.
// Sections are addressable by ID and independently selectable for export.
//
// JSON field names match the on-disk database format, which is also the
// import/export interchange format.
type Section struct {
	// ID is unique within the repository. It is derived from the source
	// file stem, the section index within the document and a random
	// suffix, and is regenerated on every rescan.
	ID string `json:"id"`

	// Category is the document kind that produced this section.
	Category Category `json:"category"`

	// Document is the base filename of the owning source file.
	Document string `json:"document"`

	// DocumentTitle is the resolved title of the owning document,
	// taken from front-matter or the filename stem.
	DocumentTitle string `json:"document_title"`

	// DocumentPath is the absolute path of the originating file.
	DocumentPath string `json:"document_path"`

	// Title is the header text that opened this section, or the
	// document title when the section covers the whole document.
	// Bracketed headers are stored without their brackets.
	Title string `json:"title"`

	// Content is the fully cleaned section body.
	Content string `json:"content"`

	// Kind records how the section was produced.
	Kind SectionKind `json:"section_type"`

	// WordCount is the whitespace-token count of Content.
	WordCount int `json:"word_count"`

	// FrontMatter holds the owning document's metadata block, if any.
	FrontMatter map[string]any `json:"metadata"`

	// Selected marks the section for inclusion in the next export bundle.
	// It is the only field mutated outside of a rescan.
	Selected bool `json:"selected"`
}

// DisplayTitle returns the section title as presented to users.
// Structured-category titles are re-wrapped in square brackets; the
// stored title never carries them.
func (s Section) DisplayTitle() string {
	if s.Category == CategoryStructured && !strings.HasPrefix(s.Title, "[") {
		return "[" + s.Title + "]"
	}
	return s.Title
}

// SectionDraft is the transient output of the segmentation engine,
// before identity assignment and per-section annotation stripping.
type SectionDraft struct {
	Title   string
	Content string
	Kind    SectionKind
}

// RawDocument is a source file read from a configured root, before decoding.
type RawDocument struct {
	Category Category
	Path     string
	Name     string
	Content  []byte
}

// SourceRoot binds a directory tree to a document category.
type SourceRoot struct {
	Category Category
	Path     string
}

// CategoryStats aggregates per-category counts for repository metadata.
type CategoryStats struct {
	Documents int `json:"documents"`
	Sections  int `json:"sections"`
}

// RepoStats is the aggregate repository metadata persisted next to the
// section corpus. It is recomputed wholesale on every rescan; CreatedAt
// is retained from the first successful build.
type RepoStats struct {
	CreatedAt      time.Time                  `json:"created_at"`
	LastUpdated    time.Time                  `json:"last_updated"`
	TotalSections  int                        `json:"total_sections"`
	TotalDocuments int                        `json:"total_documents"`
	ByCategory     map[Category]CategoryStats `json:"by_folder"`
}

// ExportPayload is the single-document form of the full repository state.
type ExportPayload struct {
	Sections []Section `json:"sections"`
	Metadata RepoStats `json:"metadata"`
}

// SectionFilter selects sections by a conjunction of constraints.
// Empty slices and the empty search string impose no constraint.
type SectionFilter struct {
	Categories []Category
	Kinds      []SectionKind
	Search     string
}

// Matches reports whether the section satisfies every set constraint.
// The search term matches case-insensitively against the document title
// and the section title.
func (f SectionFilter) Matches(s Section) bool {
	if len(f.Categories) > 0 && !containsCategory(f.Categories, s.Category) {
		return false
	}
	if len(f.Kinds) > 0 && !containsKind(f.Kinds, s.Kind) {
		return false
	}
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(s.DocumentTitle), needle) &&
			!strings.Contains(strings.ToLower(s.Title), needle) {
			return false
		}
	}
	return true
}

func containsCategory(cats []Category, c Category) bool {
	for _, cat := range cats {
		if cat == c {
			return true
		}
	}
	return false
}

func containsKind(kinds []SectionKind, k SectionKind) bool {
	for _, kind := range kinds {
		if kind == k {
			return true
		}
	}
	return false
}
