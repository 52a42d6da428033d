package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSectionFilter_EmptyMatchesEverything(t *testing.T) {
	section := Section{Category: CategoryNormative, Kind: KindChapter, Title: "Глава 1"}

	assert.True(t, SectionFilter{}.Matches(section))
}

func TestSectionFilter_Category(t *testing.T) {
	section := Section{Category: CategoryNormative}

	assert.True(t, SectionFilter{Categories: []Category{CategoryNormative}}.Matches(section))
	assert.False(t, SectionFilter{Categories: []Category{CategoryExpertise}}.Matches(section))
}

func TestSectionFilter_Kind(t *testing.T) {
	section := Section{Kind: KindHeading1}

	assert.True(t, SectionFilter{Kinds: []SectionKind{KindHeading1, KindHeading2}}.Matches(section))
	assert.False(t, SectionFilter{Kinds: []SectionKind{KindChapter}}.Matches(section))
}

func TestSectionFilter_SearchIsCaseInsensitive(t *testing.T) {
	section := Section{DocumentTitle: "Земельный кодекс", Title: "Глава 1"}

	assert.True(t, SectionFilter{Search: "земельный"}.Matches(section))
	assert.True(t, SectionFilter{Search: "ГЛАВА"}.Matches(section))
	assert.False(t, SectionFilter{Search: "водный"}.Matches(section))
}

func TestSectionFilter_ConstraintsAreConjunctive(t *testing.T) {
	section := Section{Category: CategoryNormative, Kind: KindChapter, Title: "Глава 1"}

	filter := SectionFilter{
		Categories: []Category{CategoryNormative},
		Search:     "нет такого",
	}
	assert.False(t, filter.Matches(section))
}

func TestDisplayTitle_WrapsStructuredTitles(t *testing.T) {
	section := Section{Category: CategoryStructured, Title: "Порядок выдачи"}
	assert.Equal(t, "[Порядок выдачи]", section.DisplayTitle())

	// Other categories are untouched.
	section = Section{Category: CategoryNormative, Title: "Глава 1"}
	assert.Equal(t, "Глава 1", section.DisplayTitle())

	// Already bracketed titles are not wrapped twice.
	section = Section{Category: CategoryStructured, Title: "[Сроки выдачи]"}
	assert.Equal(t, "[Сроки выдачи]", section.DisplayTitle())
}

func TestParseCategory(t *testing.T) {
	assert.Equal(t, CategoryNormative, ParseCategory("normative"))
	assert.Equal(t, CategoryMethodology, ParseCategory("methodology"))
	assert.Equal(t, CategoryUnknown, ParseCategory("nonsense"))
	assert.Equal(t, CategoryUnknown, ParseCategory(""))
}

func TestCategoryKnown(t *testing.T) {
	for _, category := range Categories() {
		assert.True(t, category.Known())
	}
	assert.False(t, CategoryUnknown.Known())
}
