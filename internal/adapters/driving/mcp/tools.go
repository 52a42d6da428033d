package mcp

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/kbase-labs/kbase-cli/internal/core/domain"
)

// ListSectionsInput is the input schema for the list_sections tool.
type ListSectionsInput struct {
	Category string `json:"category,omitempty" jsonschema:"filter by category: normative, methodology, structured or expertise"`
	Search   string `json:"search,omitempty" jsonschema:"match against document and section titles"`
	Selected bool   `json:"selected,omitempty" jsonschema:"return only selected sections"`
}

// SectionOutput is the wire form of one section without its content.
type SectionOutput struct {
	ID            string `json:"id"`
	Category      string `json:"category"`
	DocumentTitle string `json:"document_title"`
	Title         string `json:"title"`
	Kind          string `json:"section_type"`
	WordCount     int    `json:"word_count"`
	Selected      bool   `json:"selected"`
}

// ListSectionsOutput is the output schema for the list_sections tool.
type ListSectionsOutput struct {
	Sections []SectionOutput `json:"sections"`
	Count    int             `json:"count"`
}

// GetSectionInput is the input schema for the get_section tool.
type GetSectionInput struct {
	ID string `json:"id" jsonschema:"the section id"`
}

// GetSectionOutput is the output schema for the get_section tool.
type GetSectionOutput struct {
	SectionOutput
	Content string `json:"content"`
}

// SelectSectionsInput is the input schema for the select_sections tool.
type SelectSectionsInput struct {
	IDs []string `json:"ids" jsonschema:"section ids to select; everything else is unselected"`
}

// SelectSectionsOutput is the output schema for the select_sections tool.
type SelectSectionsOutput struct {
	Selected int `json:"selected"`
}

// StatsOutput is the output schema for the database_stats tool.
type StatsOutput struct {
	TotalDocuments int            `json:"total_documents"`
	TotalSections  int            `json:"total_sections"`
	ByCategory     map[string]int `json:"sections_by_category"`
}

// ExportBundleInput is the input schema for the export_bundle tool.
type ExportBundleInput struct {
	TemplateID string `json:"template_id,omitempty" jsonschema:"prompt template id (default: the configured default template)"`
}

// ExportBundleOutput is the output schema for the export_bundle tool.
type ExportBundleOutput struct {
	SessionID  string   `json:"session_id"`
	Dir        string   `json:"dir"`
	Files      []string `json:"files"`
	TotalWords int      `json:"total_words"`
}

// TemplateOutput is the wire form of one prompt template.
type TemplateOutput struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Default     bool   `json:"default"`
}

// ListTemplatesOutput is the output schema for the list_templates tool.
type ListTemplatesOutput struct {
	Templates []TemplateOutput `json:"templates"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_sections",
		Description: "List sections in the knowledge base, optionally filtered",
	}, s.handleListSections)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_section",
		Description: "Get a single section including its full content",
	}, s.handleGetSection)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "select_sections",
		Description: "Replace the current selection with the given section ids",
	}, s.handleSelectSections)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "database_stats",
		Description: "Show aggregate statistics of the section database",
	}, s.handleStats)

	if s.ports.Templates != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "list_templates",
			Description: "List the available prompt templates",
		}, s.handleListTemplates)
	}

	if s.ports.Templates != nil && s.ports.Bundles != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "export_bundle",
			Description: "Export the selected sections as a prompt bundle on disk",
		}, s.handleExportBundle)
	}
}

func sectionOutput(section domain.Section) SectionOutput {
	return SectionOutput{
		ID:            section.ID,
		Category:      string(section.Category),
		DocumentTitle: section.DocumentTitle,
		Title:         section.DisplayTitle(),
		Kind:          string(section.Kind),
		WordCount:     section.WordCount,
		Selected:      section.Selected,
	}
}

func (s *Server) handleListSections(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListSectionsInput,
) (*mcp.CallToolResult, ListSectionsOutput, error) {
	var filter domain.SectionFilter
	if input.Category != "" {
		filter.Categories = []domain.Category{domain.ParseCategory(input.Category)}
	}
	filter.Search = input.Search

	sections, err := s.ports.Repository.Query(ctx, filter)
	if err != nil {
		return nil, ListSectionsOutput{}, err
	}

	output := ListSectionsOutput{Sections: []SectionOutput{}}
	for i := range sections {
		if input.Selected && !sections[i].Selected {
			continue
		}
		output.Sections = append(output.Sections, sectionOutput(sections[i]))
	}
	output.Count = len(output.Sections)

	return nil, output, nil
}

func (s *Server) handleGetSection(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GetSectionInput,
) (*mcp.CallToolResult, GetSectionOutput, error) {
	section, err := s.ports.Repository.Get(ctx, input.ID)
	if err != nil {
		return nil, GetSectionOutput{}, err
	}

	return nil, GetSectionOutput{
		SectionOutput: sectionOutput(*section),
		Content:       section.Content,
	}, nil
}

func (s *Server) handleSelectSections(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SelectSectionsInput,
) (*mcp.CallToolResult, SelectSectionsOutput, error) {
	if err := s.ports.Repository.Select(ctx, input.IDs); err != nil {
		return nil, SelectSectionsOutput{}, err
	}

	selected, err := s.ports.Repository.Selected(ctx)
	if err != nil {
		return nil, SelectSectionsOutput{}, err
	}

	return nil, SelectSectionsOutput{Selected: len(selected)}, nil
}

func (s *Server) handleStats(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ struct{},
) (*mcp.CallToolResult, StatsOutput, error) {
	stats, err := s.ports.Repository.Stats(ctx)
	if err != nil {
		return nil, StatsOutput{}, err
	}

	output := StatsOutput{
		TotalDocuments: stats.TotalDocuments,
		TotalSections:  stats.TotalSections,
		ByCategory:     make(map[string]int, len(stats.ByCategory)),
	}
	for category, cs := range stats.ByCategory {
		output.ByCategory[string(category)] = cs.Sections
	}

	return nil, output, nil
}

func (s *Server) handleListTemplates(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ struct{},
) (*mcp.CallToolResult, ListTemplatesOutput, error) {
	defaultID := s.ports.Templates.Default().ID

	output := ListTemplatesOutput{Templates: []TemplateOutput{}}
	for _, t := range s.ports.Templates.List() {
		output.Templates = append(output.Templates, TemplateOutput{
			ID:          t.ID,
			Name:        t.Name,
			Description: t.Description,
			Default:     t.ID == defaultID,
		})
	}

	return nil, output, nil
}

func (s *Server) handleExportBundle(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ExportBundleInput,
) (*mcp.CallToolResult, ExportBundleOutput, error) {
	sections, err := s.ports.Repository.Selected(ctx)
	if err != nil {
		return nil, ExportBundleOutput{}, err
	}

	template := s.ports.Templates.Default()
	if input.TemplateID != "" {
		t, err := s.ports.Templates.Get(input.TemplateID)
		if err != nil {
			return nil, ExportBundleOutput{}, err
		}
		template = *t
	}

	result, err := s.ports.Bundles.Build(ctx, sections, template)
	if err != nil {
		if errors.Is(err, domain.ErrEmptySelection) {
			return nil, ExportBundleOutput{}, errors.New("no sections selected")
		}
		return nil, ExportBundleOutput{}, err
	}

	return nil, ExportBundleOutput{
		SessionID:  result.SessionID,
		Dir:        result.Dir,
		Files:      result.Files,
		TotalWords: result.TotalWords,
	}, nil
}
