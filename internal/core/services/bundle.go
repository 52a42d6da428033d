package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kbase-labs/kbase-cli/internal/core/domain"
	"github.com/kbase-labs/kbase-cli/internal/core/ports/driving"
	"github.com/kbase-labs/kbase-cli/internal/ingest/textnorm"
	"github.com/kbase-labs/kbase-cli/internal/logger"
)

// Ensure BundleService implements the driving port.
var _ driving.BundleBuilder = (*BundleService)(nil)

// Bundle file names, in the order they are written.
const (
	bundleSectionsFile = "all_sections.md"
	bundlePromptFile   = "deepseek_prompt.txt"
	bundleReportFile   = "report.txt"
	bundleDataFile     = "sections_data.json"
	bundleTemplateFile = "template_info.json"
)

// categoryHeadings labels category groups in the combined document.
var categoryHeadings = map[domain.Category]string{
	domain.CategoryNormative:   "📖 НОРМАТИВНЫЕ АКТЫ",
	domain.CategoryMethodology: "📚 МЕТОДИЧЕСКИЕ МАТЕРИАЛЫ",
	domain.CategoryStructured:  "🗂️ СТРУКТУРИРОВАННЫЕ ДОКУМЕНТЫ",
	domain.CategoryExpertise:   "👨‍⚖️ ЭКСПЕРТНЫЕ ЗАКЛЮЧЕНИЯ",
}

// categoryLabels names single materials inside the assembled prompt.
var categoryLabels = map[domain.Category]string{
	domain.CategoryNormative:   "Нормативный акт",
	domain.CategoryMethodology: "Методический материал",
	domain.CategoryStructured:  "Структурированный документ",
	domain.CategoryExpertise:   "Экспертное заключение",
}

// categoryReportNames label categories in the session report.
var categoryReportNames = map[domain.Category]string{
	domain.CategoryNormative:   "Нормативные акты",
	domain.CategoryMethodology: "Методические материалы",
	domain.CategoryStructured:  "Структурированные документы",
	domain.CategoryExpertise:   "Экспертные заключения",
}

// categoryIcons mark section entries in the report listing.
var categoryIcons = map[domain.Category]string{
	domain.CategoryNormative:   "📖",
	domain.CategoryMethodology: "📚",
	domain.CategoryStructured:  "🗂️",
	domain.CategoryExpertise:   "👨‍⚖️",
}

// BundleService writes export bundles into timestamped session directories.
type BundleService struct {
	sessionsDir string
}

// NewBundleService creates a bundle builder rooted at the sessions directory.
func NewBundleService(sessionsDir string) *BundleService {
	return &BundleService{sessionsDir: sessionsDir}
}

// Build writes the five bundle files into a new session directory.
func (s *BundleService) Build(ctx context.Context, sections []domain.Section, template domain.PromptTemplate) (*driving.BundleResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(sections) == 0 {
		return nil, domain.ErrEmptySelection
	}

	sessionID := time.Now().Format("20060102_150405")
	dir := filepath.Join(s.sessionsDir, sessionID)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create session dir: %w", err)
	}

	totalWords := 0
	for _, section := range sections {
		totalWords += section.WordCount
	}

	files := []struct {
		name    string
		content []byte
	}{
		{bundleSectionsFile, []byte(renderSectionsDocument(sections, template))},
		{bundlePromptFile, []byte(renderPrompt(sections, template))},
		{bundleReportFile, []byte(renderReport(sections, template, sessionID, totalWords))},
	}

	data, err := marshalSectionsData(sections)
	if err != nil {
		return nil, fmt.Errorf("marshal sections data: %w", err)
	}
	files = append(files, struct {
		name    string
		content []byte
	}{bundleDataFile, data})

	info, err := marshalTemplateInfo(template)
	if err != nil {
		return nil, fmt.Errorf("marshal template info: %w", err)
	}
	files = append(files, struct {
		name    string
		content []byte
	}{bundleTemplateFile, info})

	result := &driving.BundleResult{
		SessionID:  sessionID,
		Dir:        dir,
		TotalWords: totalWords,
	}
	for _, f := range files {
		if err := os.WriteFile(filepath.Join(dir, f.name), f.content, 0600); err != nil {
			return nil, fmt.Errorf("write %s: %w", f.name, err)
		}
		result.Files = append(result.Files, f.name)
	}

	logger.Info("bundle %s written: %d sections, %d words", sessionID, len(sections), totalWords)
	return result, nil
}

// groupByCategory splits sections into per-category groups, preserving
// both the section order inside a group and the order categories first
// appear in.
func groupByCategory(sections []domain.Section) ([]domain.Category, map[domain.Category][]domain.Section) {
	var order []domain.Category
	groups := make(map[domain.Category][]domain.Section)
	for _, section := range sections {
		if _, seen := groups[section.Category]; !seen {
			order = append(order, section.Category)
		}
		groups[section.Category] = append(groups[section.Category], section)
	}
	return order, groups
}

func categoryName(m map[domain.Category]string, c domain.Category) string {
	if name, ok := m[c]; ok {
		return name
	}
	return string(c)
}

// renderSectionsDocument produces all_sections.md: every selected section
// grouped under its category heading with its source metadata.
func renderSectionsDocument(sections []domain.Section, template domain.PromptTemplate) string {
	var b strings.Builder
	b.WriteString("# ВЫБРАННЫЕ РАЗДЕЛЫ ДЛЯ ОТВЕТА\n\n")
	fmt.Fprintf(&b, "**Используемый шаблон:** %s\n\n", template.Name)

	order, groups := groupByCategory(sections)
	for _, category := range order {
		fmt.Fprintf(&b, "\n## %s\n\n", categoryName(categoryHeadings, category))

		for _, section := range groups[category] {
			fmt.Fprintf(&b, "### %s\n", section.DisplayTitle())
			fmt.Fprintf(&b, "*Название документа:* %s\n", section.DocumentTitle)
			fmt.Fprintf(&b, "*Файл:* %s\n", section.Document)
			fmt.Fprintf(&b, "*Тип раздела:* %s\n", section.Kind)
			fmt.Fprintf(&b, "*Количество слов:* %d\n", section.WordCount)
			writeFrontMatterLines(&b, section.FrontMatter)
			fmt.Fprintf(&b, "\n%s\n\n", textnorm.CleanForOutput(section.Content))
			b.WriteString("---\n\n")
		}
	}
	return b.String()
}

func writeFrontMatterLines(b *strings.Builder, meta map[string]any) {
	if title, ok := meta["title"].(string); ok && title != "" {
		fmt.Fprintf(b, "*Название:* %s\n", title)
	}
	if author, ok := meta["author"].(string); ok && author != "" {
		fmt.Fprintf(b, "*Автор:* %s\n", author)
	}
	if date, ok := meta["date"].(string); ok && date != "" {
		fmt.Fprintf(b, "*Дата:* %s\n", date)
	}
}

// renderPrompt produces deepseek_prompt.txt: the template prompt first,
// then every material with a numbered framing block.
func renderPrompt(sections []domain.Section, template domain.PromptTemplate) string {
	rule := strings.Repeat("=", 60)

	var b strings.Builder
	b.WriteString(template.Prompt)
	b.WriteString("\n\n")
	b.WriteString("МАТЕРИАЛЫ ДЛЯ ОТВЕТА:\n")
	b.WriteString(rule + "\n\n")

	for i, section := range sections {
		fmt.Fprintf(&b, "\n%s\n", rule)
		fmt.Fprintf(&b, "МАТЕРИАЛ %d: %s\n", i+1, section.DisplayTitle())
		fmt.Fprintf(&b, "Тип: %s | Документ: %s\n", categoryName(categoryLabels, section.Category), section.DocumentTitle)
		fmt.Fprintf(&b, "Файл: %s | Тип раздела: %s\n", section.Document, section.Kind)
		writePromptMetaLine(&b, section.FrontMatter)
		b.WriteString(strings.Repeat("-", 40) + "\n\n")
		fmt.Fprintf(&b, "%s\n", textnorm.CleanForOutput(section.Content))
	}

	fmt.Fprintf(&b, "\n%s\n\n", rule)
	return b.String()
}

func writePromptMetaLine(b *strings.Builder, meta map[string]any) {
	author, _ := meta["author"].(string)
	date, _ := meta["date"].(string)
	if author == "" && date == "" {
		return
	}
	if author != "" {
		fmt.Fprintf(b, "Автор: %s | ", author)
	}
	if date != "" {
		fmt.Fprintf(b, "Дата: %s", date)
	}
	b.WriteString("\n")
}

// renderReport produces report.txt: the session summary with per-category
// statistics and the full section listing.
func renderReport(sections []domain.Section, template domain.PromptTemplate, sessionID string, totalWords int) string {
	var b strings.Builder
	b.WriteString("ОТЧЕТ ПО СЕССИИ ЭКСПЕРТА\n")
	b.WriteString("========================\n\n")
	fmt.Fprintf(&b, "ID сессии: %s\n", sessionID)
	fmt.Fprintf(&b, "Дата создания: %s\n\n", time.Now().Format("2006-01-02 15:04:05"))

	b.WriteString("ВЫБРАННЫЙ ШАБЛОН:\n")
	fmt.Fprintf(&b, "• Название: %s\n", template.Name)
	fmt.Fprintf(&b, "• Описание: %s\n", template.Description)
	fmt.Fprintf(&b, "• ID: %s\n\n", template.ID)

	b.WriteString("СТАТИСТИКА:\n")
	fmt.Fprintf(&b, "• Всего выбрано разделов: %d\n", len(sections))
	fmt.Fprintf(&b, "• Общий объем: %d слов\n\n", totalWords)

	order, groups := groupByCategory(sections)
	if len(order) > 0 {
		b.WriteString("РАСПРЕДЕЛЕНИЕ ПО ТИПАМ МАТЕРИАЛОВ:\n")
		for _, category := range order {
			words := 0
			for _, section := range groups[category] {
				words += section.WordCount
			}
			fmt.Fprintf(&b, "• %s: %d разделов (%d слов)\n",
				categoryName(categoryReportNames, category), len(groups[category]), words)
		}
	}

	b.WriteString("\nСПИСОК ВЫБРАННЫХ РАЗДЕЛОВ:\n")
	for i, section := range sections {
		icon, ok := categoryIcons[section.Category]
		if !ok {
			icon = "📄"
		}
		fmt.Fprintf(&b, "%d. %s %s (%d слов)\n", i+1, icon, section.DisplayTitle(), section.WordCount)
		fmt.Fprintf(&b, "   Документ: %s\n", section.DocumentTitle)
	}

	b.WriteString("\nФАЙЛЫ СЕССИИ:\n")
	b.WriteString("1. all_sections.md - все выбранные разделы\n")
	b.WriteString("2. deepseek_prompt.txt - промт для DeepSeek\n")
	b.WriteString("3. report.txt - этот отчет\n")
	b.WriteString("4. sections_data.json - данные в JSON\n")
	b.WriteString("5. template_info.json - информация о шаблоне\n")

	return b.String()
}

// bundleSection is the simplified section form written to sections_data.json.
type bundleSection struct {
	ID            string          `json:"id"`
	Category      domain.Category `json:"category"`
	Document      string          `json:"document"`
	DocumentTitle string          `json:"document_title"`
	Title         string          `json:"title"`
	Content       string          `json:"content"`
	Kind          string          `json:"section_type"`
	WordCount     int             `json:"word_count"`
	FrontMatter   map[string]any  `json:"metadata"`
}

func marshalSectionsData(sections []domain.Section) ([]byte, error) {
	out := make([]bundleSection, 0, len(sections))
	for _, section := range sections {
		meta := section.FrontMatter
		if meta == nil {
			meta = map[string]any{}
		}
		out = append(out, bundleSection{
			ID:            section.ID,
			Category:      section.Category,
			Document:      section.Document,
			DocumentTitle: section.DocumentTitle,
			Title:         section.DisplayTitle(),
			Content:       section.Content,
			Kind:          string(section.Kind),
			WordCount:     section.WordCount,
			FrontMatter:   meta,
		})
	}
	return json.MarshalIndent(out, "", "  ")
}

func marshalTemplateInfo(template domain.PromptTemplate) ([]byte, error) {
	info := map[string]string{
		"template_id":          template.ID,
		"template_name":        template.Name,
		"template_description": template.Description,
		"created_at":           time.Now().Format(time.RFC3339),
	}
	return json.MarshalIndent(info, "", "  ")
}
