package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kbase-labs/kbase-cli/internal/core/domain"
)

var sectionCmd = &cobra.Command{
	Use:   "section",
	Short: "Browse and select sections",
	Long:  `List, inspect and select the sections produced by the last scan.`,
}

var sectionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List sections",
	RunE:  runSectionList,
}

var sectionShowCmd = &cobra.Command{
	Use:   "show [section-id]",
	Short: "Print a section's full content",
	Args:  cobra.ExactArgs(1),
	RunE:  runSectionShow,
}

var sectionSelectCmd = &cobra.Command{
	Use:   "select [section-id...]",
	Short: "Select sections for export",
	Long: `Marks exactly the given sections as selected; every other section
is unselected. Unknown ids are ignored.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSectionSelect,
}

var sectionClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear the selection",
	RunE:  runSectionClear,
}

var (
	flagListCategory string
	flagListKind     string
	flagListSearch   string
	flagListSelected bool
)

func init() {
	sectionListCmd.Flags().StringVarP(&flagListCategory, "category", "c", "", "Filter by category (normative, methodology, structured, expertise)")
	sectionListCmd.Flags().StringVarP(&flagListKind, "kind", "k", "", "Filter by section kind")
	sectionListCmd.Flags().StringVarP(&flagListSearch, "search", "s", "", "Filter by document or section title")
	sectionListCmd.Flags().BoolVar(&flagListSelected, "selected", false, "Show only selected sections")

	sectionCmd.AddCommand(sectionListCmd)
	sectionCmd.AddCommand(sectionShowCmd)
	sectionCmd.AddCommand(sectionSelectCmd)
	sectionCmd.AddCommand(sectionClearCmd)
	rootCmd.AddCommand(sectionCmd)
}

func runSectionList(cmd *cobra.Command, _ []string) error {
	if repositoryService == nil {
		return errors.New("repository service not configured")
	}

	var filter domain.SectionFilter
	if flagListCategory != "" {
		category := domain.ParseCategory(flagListCategory)
		if !category.Known() {
			return fmt.Errorf("unknown category: %s", flagListCategory)
		}
		filter.Categories = []domain.Category{category}
	}
	if flagListKind != "" {
		filter.Kinds = []domain.SectionKind{domain.SectionKind(flagListKind)}
	}
	filter.Search = flagListSearch

	sections, err := repositoryService.Query(cmd.Context(), filter)
	if err != nil {
		return fmt.Errorf("failed to list sections: %w", err)
	}

	shown := 0
	for i := range sections {
		if flagListSelected && !sections[i].Selected {
			continue
		}
		marker := " "
		if sections[i].Selected {
			marker = "*"
		}
		cmd.Printf("%s %s\n", marker, sections[i].ID)
		cmd.Printf("    %s — %s (%s, %d words)\n",
			sections[i].DocumentTitle, sections[i].DisplayTitle(), sections[i].Kind, sections[i].WordCount)
		shown++
	}

	if shown == 0 {
		cmd.Println("No sections found. Run 'kbase scan' to build the database.")
		return nil
	}
	cmd.Printf("\nTotal: %d sections\n", shown)
	return nil
}

func runSectionShow(cmd *cobra.Command, args []string) error {
	if repositoryService == nil {
		return errors.New("repository service not configured")
	}

	section, err := repositoryService.Get(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get section: %w", err)
	}

	cmd.Printf("Section: %s\n\n", section.ID)
	cmd.Printf("  Title:     %s\n", section.DisplayTitle())
	cmd.Printf("  Document:  %s (%s)\n", section.DocumentTitle, section.Document)
	cmd.Printf("  Category:  %s\n", section.Category)
	cmd.Printf("  Kind:      %s\n", section.Kind)
	cmd.Printf("  Words:     %d\n", section.WordCount)
	cmd.Printf("  Selected:  %v\n", section.Selected)

	if len(section.FrontMatter) > 0 {
		cmd.Println("\n  Metadata:")
		for k, v := range section.FrontMatter {
			cmd.Printf("    %s: %v\n", k, v)
		}
	}

	cmd.Printf("\n%s\n", section.Content)
	return nil
}

func runSectionSelect(cmd *cobra.Command, args []string) error {
	if repositoryService == nil {
		return errors.New("repository service not configured")
	}

	if err := repositoryService.Select(cmd.Context(), args); err != nil {
		return fmt.Errorf("failed to select sections: %w", err)
	}

	selected, err := repositoryService.Selected(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to read selection: %w", err)
	}

	cmd.Printf("Selected %d of %d requested sections.\n", len(selected), len(args))
	return nil
}

func runSectionClear(cmd *cobra.Command, _ []string) error {
	if repositoryService == nil {
		return errors.New("repository service not configured")
	}

	if err := repositoryService.ClearSelection(cmd.Context()); err != nil {
		return fmt.Errorf("failed to clear selection: %w", err)
	}

	cmd.Println("Selection cleared.")
	return nil
}
