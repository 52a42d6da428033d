package domain

// Category identifies the kind of document a source root contains.
// The category decides which segmentation strategy applies during a scan.
type Category string

const (
	// CategoryNormative holds legal acts segmented by chapter headers.
	CategoryNormative Category = "normative"

	// CategoryMethodology holds guidance documents segmented by
	// level 1 and level 2 markdown headings.
	CategoryMethodology Category = "methodology"

	// CategoryStructured holds documents segmented by bracketed header lines.
	CategoryStructured Category = "structured"

	// CategoryExpertise holds expert opinions kept whole, never segmented.
	CategoryExpertise Category = "expertise"

	// CategoryUnknown is the fallback for unrecognised category names.
	// Documents in an unknown category pass through unsegmented.
	CategoryUnknown Category = "unknown"
)

// Categories returns the closed set of known categories in canonical order.
func Categories() []Category {
	return []Category{
		CategoryNormative,
		CategoryMethodology,
		CategoryStructured,
		CategoryExpertise,
	}
}

// ParseCategory maps a string to a known category, or CategoryUnknown.
func ParseCategory(s string) Category {
	switch Category(s) {
	case CategoryNormative, CategoryMethodology, CategoryStructured, CategoryExpertise:
		return Category(s)
	default:
		return CategoryUnknown
	}
}

// Known reports whether the category is one of the four configured kinds.
func (c Category) Known() bool {
	switch c {
	case CategoryNormative, CategoryMethodology, CategoryStructured, CategoryExpertise:
		return true
	default:
		return false
	}
}

// SectionKind describes how a section was produced by the segmentation engine.
type SectionKind string

const (
	// KindChapter marks a section opened by a chapter header line.
	KindChapter SectionKind = "chapter"

	// KindHeading1 and KindHeading2 mark sections opened by markdown headings.
	KindHeading1 SectionKind = "heading-level-1"
	KindHeading2 SectionKind = "heading-level-2"

	// KindBracketed marks a section opened by a bracketed header line.
	KindBracketed SectionKind = "bracketed-header"

	// KindDocument marks content that precedes the first header of a document.
	KindDocument SectionKind = "document"

	// KindWholeDocument marks an unsegmented document body.
	KindWholeDocument SectionKind = "whole-document"

	// KindEmptyDocument marks a document whose body was empty after cleanup.
	KindEmptyDocument SectionKind = "empty-document"

	// KindFullDocument marks passthrough content from an unknown category.
	KindFullDocument SectionKind = "full_document"
)
