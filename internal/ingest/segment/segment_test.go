package segment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kbase-labs/kbase-cli/internal/core/domain"
)

func TestSplit_Normative_ChapterHeaders(t *testing.T) {
	body := "Преамбула документа\n" +
		"ГЛАВА 1. Общие положения\n" +
		"Статья 1. Основные понятия\n" +
		"Глава 2. Полномочия\n" +
		"Статья 5. Компетенция"

	drafts := Split(domain.CategoryNormative, body, "Закон")

	require.Len(t, drafts, 3)

	assert.Equal(t, "Закон", drafts[0].Title)
	assert.Equal(t, domain.KindDocument, drafts[0].Kind)
	assert.Equal(t, "Преамбула документа", drafts[0].Content)

	assert.Equal(t, "ГЛАВА 1. Общие положения", drafts[1].Title)
	assert.Equal(t, domain.KindChapter, drafts[1].Kind)
	assert.Equal(t, "Статья 1. Основные понятия", drafts[1].Content)

	assert.Equal(t, "Глава 2. Полномочия", drafts[2].Title)
	assert.Equal(t, "Статья 5. Компетенция", drafts[2].Content)
}

func TestSplit_Normative_LatinChapterHeaders(t *testing.T) {
	body := "CHAPTER I. General Provisions\nSome content\nChapter 2: Scope\nMore content"

	drafts := Split(domain.CategoryNormative, body, "doc")

	require.Len(t, drafts, 2)
	assert.Equal(t, "CHAPTER I. General Provisions", drafts[0].Title)
	assert.Equal(t, domain.KindChapter, drafts[0].Kind)
	assert.Equal(t, "Chapter 2: Scope", drafts[1].Title)
}

func TestSplit_Normative_ChapterWordAloneIsBody(t *testing.T) {
	// A chapter header needs a numeral and separator after the keyword.
	body := "ГЛАВА без номера\nтекст"

	drafts := Split(domain.CategoryNormative, body, "doc")

	require.Len(t, drafts, 1)
	assert.Equal(t, domain.KindWholeDocument, drafts[0].Kind)
}

func TestSplit_ConsecutiveHeadersEmitEmptySection(t *testing.T) {
	body := "ГЛАВА 1. Первая\nГЛАВА 2. Вторая\nсодержимое"

	drafts := Split(domain.CategoryNormative, body, "doc")

	require.Len(t, drafts, 2)
	assert.Equal(t, "ГЛАВА 1. Первая", drafts[0].Title)
	assert.Empty(t, drafts[0].Content)
	assert.Equal(t, "ГЛАВА 2. Вторая", drafts[1].Title)
	assert.Equal(t, "содержимое", drafts[1].Content)
}

func TestSplit_NoHeadersFallsBackToWholeDocument(t *testing.T) {
	body := "просто текст\nбез заголовков"

	drafts := Split(domain.CategoryNormative, body, "Документ")

	require.Len(t, drafts, 1)
	assert.Equal(t, "Документ", drafts[0].Title)
	assert.Equal(t, domain.KindWholeDocument, drafts[0].Kind)
	assert.Equal(t, body, drafts[0].Content)
}

func TestSplit_EmptyBodyYieldsEmptyDocumentDraft(t *testing.T) {
	for _, category := range domain.Categories() {
		drafts := Split(category, "   \n  ", "пусто")

		require.Len(t, drafts, 1, "category %s", category)
		assert.Equal(t, "пусто", drafts[0].Title)
		assert.Equal(t, domain.KindEmptyDocument, drafts[0].Kind)
		assert.Empty(t, drafts[0].Content)
	}
}

func TestSplit_Methodology_HeadingLevels(t *testing.T) {
	body := "# Введение\nтекст введения\n## Детали\nподробности\n### Глубже\nещё текст"

	drafts := Split(domain.CategoryMethodology, body, "doc")

	require.Len(t, drafts, 2)
	assert.Equal(t, "Введение", drafts[0].Title)
	assert.Equal(t, domain.KindHeading1, drafts[0].Kind)
	assert.Equal(t, "текст введения", drafts[0].Content)

	assert.Equal(t, "Детали", drafts[1].Title)
	assert.Equal(t, domain.KindHeading2, drafts[1].Kind)
	// Level 3 headings stay in the body.
	assert.Equal(t, "подробности\n### Глубже\nещё текст", drafts[1].Content)
}

func TestSplit_Structured_BracketedHeaders(t *testing.T) {
	body := "[Порядок выдачи разрешений]\nсодержимое раздела\n[Сроки]\nсроки рассмотрения заявлений"

	drafts := Split(domain.CategoryStructured, body, "doc")

	require.Len(t, drafts, 2)
	assert.Equal(t, "Порядок выдачи разрешений", drafts[0].Title)
	assert.Equal(t, domain.KindBracketed, drafts[0].Kind)
	assert.Equal(t, "содержимое раздела", drafts[0].Content)

	assert.Equal(t, "Сроки", drafts[1].Title)
	assert.Equal(t, "сроки рассмотрения заявлений", drafts[1].Content)
}

func TestMatchBracket_LengthAndAlphabetRules(t *testing.T) {
	cases := []struct {
		line  string
		match bool
		title string
	}{
		{"[Общие положения]", true, "Общие положения"},
		{"[Пять]", true, "Пять"},
		{"[АБВ]", false, ""},  // exactly 3 runes: too short
		{"[АБВГ]", true, "АБВГ"},
		{"[12345]", false, ""}, // no letters
		{"[прим. 1]", true, "прим. 1"},
		{"не заголовок", false, ""},
		{"[вложенный [скобки]]", false, ""},
	}

	for _, tc := range cases {
		m, ok := matchBracket(tc.line)
		assert.Equal(t, tc.match, ok, "line %q", tc.line)
		if tc.match {
			assert.Equal(t, tc.title, m.title)
			assert.Equal(t, domain.KindBracketed, m.kind)
		}
	}
}

func TestMatchBracket_OverlongLabelIsBody(t *testing.T) {
	label := make([]rune, 201)
	for i := range label {
		label[i] = 'а'
	}

	_, ok := matchBracket("[" + string(label) + "]")
	assert.False(t, ok)
}

func TestSplit_Expertise_NeverSegmented(t *testing.T) {
	body := "# Похоже на заголовок\n[И на скобки тоже]\nно документ остаётся целым"

	drafts := Split(domain.CategoryExpertise, body, "Заключение")

	require.Len(t, drafts, 1)
	assert.Equal(t, "Заключение", drafts[0].Title)
	assert.Equal(t, domain.KindWholeDocument, drafts[0].Kind)
	assert.Equal(t, body, drafts[0].Content)
}

func TestSplit_UnknownCategoryPassesThrough(t *testing.T) {
	drafts := Split(domain.CategoryUnknown, "контент", "doc")

	require.Len(t, drafts, 1)
	assert.Equal(t, domain.KindFullDocument, drafts[0].Kind)
	assert.Equal(t, "контент", drafts[0].Content)
}

func TestSplit_TrailingContentAlwaysFlushed(t *testing.T) {
	body := "ГЛАВА 1. Единственная\n"

	drafts := Split(domain.CategoryNormative, body, "doc")

	require.Len(t, drafts, 1)
	assert.Equal(t, "ГЛАВА 1. Единственная", drafts[0].Title)
	assert.Empty(t, drafts[0].Content)
}
