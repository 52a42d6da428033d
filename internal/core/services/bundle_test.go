package services

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kbase-labs/kbase-cli/internal/core/domain"
)

func bundleTestSections() []domain.Section {
	return []domain.Section{
		{
			ID:            "kodeks_0_abcd1234",
			Category:      domain.CategoryNormative,
			Document:      "kodeks.txt",
			DocumentTitle: "Земельный кодекс",
			Title:         "ГЛАВА 1. Общие положения",
			Content:       "Статья 1. Основные понятия",
			Kind:          domain.KindChapter,
			WordCount:     4,
			Selected:      true,
		},
		{
			ID:            "spravka_0_ef567890",
			Category:      domain.CategoryStructured,
			Document:      "spravka.txt",
			DocumentTitle: "Справочник",
			Title:         "Порядок выдачи",
			Content:       "Разрешение выдаётся в течение срока",
			Kind:          domain.KindBracketed,
			WordCount:     6,
			FrontMatter:   map[string]any{"author": "Сидоров"},
			Selected:      true,
		},
	}
}

func bundleTestTemplate() domain.PromptTemplate {
	return domain.PromptTemplate{
		ID:          "standard",
		Name:        "Стандартный ответ",
		Description: "описание",
		Prompt:      "Ты — эксперт. Ответь на вопрос.",
	}
}

func TestBundle_EmptySelectionRejected(t *testing.T) {
	svc := NewBundleService(t.TempDir())

	_, err := svc.Build(context.Background(), nil, bundleTestTemplate())

	assert.ErrorIs(t, err, domain.ErrEmptySelection)
}

func TestBundle_WritesAllFiles(t *testing.T) {
	dir := t.TempDir()
	svc := NewBundleService(dir)

	result, err := svc.Build(context.Background(), bundleTestSections(), bundleTestTemplate())

	require.NoError(t, err)
	assert.NotEmpty(t, result.SessionID)
	assert.Equal(t, filepath.Join(dir, result.SessionID), result.Dir)
	assert.Equal(t, 10, result.TotalWords)
	assert.Equal(t, []string{
		"all_sections.md",
		"deepseek_prompt.txt",
		"report.txt",
		"sections_data.json",
		"template_info.json",
	}, result.Files)

	for _, name := range result.Files {
		_, statErr := os.Stat(filepath.Join(result.Dir, name))
		assert.NoError(t, statErr, "missing %s", name)
	}
}

func TestBundle_SectionsDocumentContent(t *testing.T) {
	svc := NewBundleService(t.TempDir())

	result, err := svc.Build(context.Background(), bundleTestSections(), bundleTestTemplate())
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(result.Dir, "all_sections.md"))
	require.NoError(t, err)
	text := string(data)

	assert.Contains(t, text, "# ВЫБРАННЫЕ РАЗДЕЛЫ ДЛЯ ОТВЕТА")
	assert.Contains(t, text, "Стандартный ответ")
	assert.Contains(t, text, "НОРМАТИВНЫЕ АКТЫ")
	assert.Contains(t, text, "СТРУКТУРИРОВАННЫЕ ДОКУМЕНТЫ")
	// Structured titles come out bracketed.
	assert.Contains(t, text, "### [Порядок выдачи]")
	assert.Contains(t, text, "*Автор:* Сидоров")
	assert.Contains(t, text, "Статья 1. Основные понятия")
}

func TestBundle_PromptPutsTemplateBeforeMaterials(t *testing.T) {
	svc := NewBundleService(t.TempDir())

	result, err := svc.Build(context.Background(), bundleTestSections(), bundleTestTemplate())
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(result.Dir, "deepseek_prompt.txt"))
	require.NoError(t, err)
	text := string(data)

	assert.True(t, strings.HasPrefix(text, "Ты — эксперт. Ответь на вопрос."))
	assert.Contains(t, text, "МАТЕРИАЛЫ ДЛЯ ОТВЕТА:")
	assert.Contains(t, text, "МАТЕРИАЛ 1: ГЛАВА 1. Общие положения")
	assert.Contains(t, text, "МАТЕРИАЛ 2: [Порядок выдачи]")
	assert.Contains(t, text, "Тип: Нормативный акт")
}

func TestBundle_ReportStatistics(t *testing.T) {
	svc := NewBundleService(t.TempDir())

	result, err := svc.Build(context.Background(), bundleTestSections(), bundleTestTemplate())
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(result.Dir, "report.txt"))
	require.NoError(t, err)
	text := string(data)

	assert.Contains(t, text, "ID сессии: "+result.SessionID)
	assert.Contains(t, text, "Всего выбрано разделов: 2")
	assert.Contains(t, text, "Общий объем: 10 слов")
	assert.Contains(t, text, "Нормативные акты: 1 разделов (4 слов)")
}

func TestBundle_SectionsDataJSON(t *testing.T) {
	svc := NewBundleService(t.TempDir())

	result, err := svc.Build(context.Background(), bundleTestSections(), bundleTestTemplate())
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(result.Dir, "sections_data.json"))
	require.NoError(t, err)

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded, 2)

	assert.Equal(t, "kodeks_0_abcd1234", decoded[0]["id"])
	assert.Equal(t, "[Порядок выдачи]", decoded[1]["title"])
}

func TestBundle_TemplateInfoJSON(t *testing.T) {
	svc := NewBundleService(t.TempDir())

	result, err := svc.Build(context.Background(), bundleTestSections(), bundleTestTemplate())
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(result.Dir, "template_info.json"))
	require.NoError(t, err)

	var info map[string]string
	require.NoError(t, json.Unmarshal(data, &info))

	assert.Equal(t, "standard", info["template_id"])
	assert.Equal(t, "Стандартный ответ", info["template_name"])
	assert.NotEmpty(t, info["created_at"])
}
