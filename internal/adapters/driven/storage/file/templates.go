package file

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kbase-labs/kbase-cli/internal/core/domain"
	"github.com/kbase-labs/kbase-cli/internal/core/ports/driven"
	"github.com/kbase-labs/kbase-cli/internal/logger"
)

// Ensure TemplateStore implements the interface.
var _ driven.TemplateStore = (*TemplateStore)(nil)

// TemplateStore persists the prompt template collection as a single JSON
// file. A missing file is seeded with the built-in defaults; a file that
// exists but fails to parse is left untouched so hand-edited templates are
// never silently replaced.
type TemplateStore struct {
	path string
}

// NewTemplateStore creates a template store backed by the given file path.
func NewTemplateStore(path string) *TemplateStore {
	return &TemplateStore{path: path}
}

// Path returns the backing file path.
func (s *TemplateStore) Path() string {
	return s.path
}

// Load reads the template set, falling back to the defaults when the file
// is missing, empty or malformed. Defaults are written to disk only when
// no file exists yet.
func (s *TemplateStore) Load() (domain.TemplateSet, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			return domain.TemplateSet{}, fmt.Errorf("read templates: %w", err)
		}
		defaults := DefaultTemplates()
		if saveErr := s.Save(defaults); saveErr != nil {
			logger.Warn("cannot seed default templates: %v", saveErr)
		}
		return defaults, nil
	}

	var set domain.TemplateSet
	if unmarshalErr := json.Unmarshal(data, &set); unmarshalErr != nil || len(set.Templates) == 0 {
		if unmarshalErr != nil {
			logger.Warn("templates file unusable, using defaults: %v", unmarshalErr)
		}
		// The broken file stays on disk for the user to inspect.
		return DefaultTemplates(), nil
	}

	logger.Debug("loaded %d templates from %s", len(set.Templates), s.path)
	return set, nil
}

// Save persists the template set, stamping its last-updated time.
func (s *TemplateStore) Save(set domain.TemplateSet) error {
	set.LastUpdated = time.Now()

	data, err := json.MarshalIndent(set, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal templates: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("create templates dir: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("write templates: %w", err)
	}
	return nil
}

// DefaultTemplates returns the built-in template set used when no
// templates file exists yet.
func DefaultTemplates() domain.TemplateSet {
	return domain.TemplateSet{
		Templates: []domain.PromptTemplate{
			{
				ID:          "analytical_report",
				Name:        "📊 Аналитический отчет",
				Description: "Аналитический отчет с детальным анализом нормативной базы и практическими рекомендациями",
				Prompt: "Ты — старший эксперт-аналитик в области землепользования, кадастра и градостроительного регулирования.\n\n" +
					"ОСНОВНОЕ ПРАВИЛО: Используй информацию ТОЛЬКО из предоставленных материалов.\n\n" +
					"СТРУКТУРА ОТВЕТА:\n" +
					"1. КРАТКИЙ ОТВЕТ: Основной вывод в 2-3 предложениях\n" +
					"2. НОРМАТИВНАЯ БАЗА: Ключевые документы из материалов\n" +
					"3. АНАЛИЗ: Связь норм с вопросом на основе материалов\n" +
					"4. ВЫВОДЫ: Пронумерованные выводы из материалов\n" +
					"5. РЕКОМЕНДАЦИИ: Конкретные действия, обоснованные материалами\n\n" +
					"ВАЖНО:\n" +
					"- Каждое утверждение должно подтверждаться предоставленными материалами\n" +
					"- Если информации недостаточно — прямо указывай на это\n" +
					"- Не используй внешние знания\n\n" +
					"ОТВЕТ ЭКСПЕРТА-АНАЛИТИКА:",
			},
			{
				ID:          "brief_qa",
				Name:        "⚡ Краткий ответ с рекомендациями",
				Description: "Краткий формат: вопрос своими словами, прямой ответ и конкретные рекомендации",
				Prompt: "Ты — эксперт в области землепользования и кадастра.\n\n" +
					"Используй информацию ТОЛЬКО из предоставленных материалов.\n\n" +
					"Подготовь краткий ответ по структуре:\n" +
					"1. ВОПРОС (СВОИМИ СЛОВАМИ): Переформулировка на основе материалов\n" +
					"2. ПРЯМОЙ ОТВЕТ: Краткий ответ с обоснованием из материалов\n" +
					"3. РЕКОМЕНДАЦИИ: конкретные рекомендации, обоснованных материалами\n\n" +
					"ОТВЕТ ЭКСПЕРТА:",
			},
			{
				ID:          "standard",
				Name:        "📝 Стандартный ответ",
				Description: "Развернутый профессиональный ответ с анализом",
				Prompt: "Ты — эксперт в области землепользования и кадастра.\n\n" +
					"На основе предоставленных материалов подготовь развернутый профессиональный ответ.\n\n" +
					"ИНСТРУКЦИЯ:\n" +
					"1. Проанализируй все предоставленные материалы\n" +
					"2. Сформулируй структурированный, полный и точный ответ\n" +
					"3. Используй информацию ТОЛЬКО из предоставленных материалов\n" +
					"4. Если информации недостаточно — укажи это\n\n" +
					"СТРУКТУРА ОТВЕТА:\n" +
					"1. ПОВТОРЕНИЕ ВОПРОСА: Сформулируй исходный вопрос своими словами, показывая правильное понимание и задавая рамки анализа\n" +
					"2. Краткий ответ: 2-3 предложения с дословным ответом\n" +
					"3. Детальный ответ с анализом\n" +
					"4. Практические рекомендации\n" +
					"5. Выводы\n\n" +
					"ОТВЕТ ЭКСПЕРТА:",
			},
		},
		DefaultTemplate: "brief_qa",
	}
}
