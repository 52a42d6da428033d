package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kbase-labs/kbase-cli/internal/core/domain"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export selected sections",
}

var exportBundleCmd = &cobra.Command{
	Use:   "bundle",
	Short: "Write the selected sections as a prompt bundle",
	Long: `Writes a timestamped session directory containing the combined
sections document, the assembled prompt, a session report and the JSON
exports. Requires at least one selected section.`,
	RunE: runExportBundle,
}

var flagBundleTemplate string

func init() {
	exportBundleCmd.Flags().StringVarP(&flagBundleTemplate, "template", "t", "", "Template id (default: the configured default template)")
	exportCmd.AddCommand(exportBundleCmd)
	rootCmd.AddCommand(exportCmd)
}

func runExportBundle(cmd *cobra.Command, _ []string) error {
	if repositoryService == nil || templateService == nil || bundleBuilder == nil {
		return errors.New("export services not configured")
	}

	ctx := cmd.Context()

	sections, err := repositoryService.Selected(ctx)
	if err != nil {
		return fmt.Errorf("failed to read selection: %w", err)
	}

	template := templateService.Default()
	if flagBundleTemplate != "" {
		t, err := templateService.Get(flagBundleTemplate)
		if err != nil {
			return fmt.Errorf("failed to get template: %w", err)
		}
		template = *t
	}

	result, err := bundleBuilder.Build(ctx, sections, template)
	if err != nil {
		if errors.Is(err, domain.ErrEmptySelection) {
			return errors.New("no sections selected; use 'kbase section select' first")
		}
		return fmt.Errorf("failed to build bundle: %w", err)
	}

	cmd.Printf("Bundle %s written to %s\n", result.SessionID, result.Dir)
	cmd.Printf("  Sections: %d, total words: %d\n", len(sections), result.TotalWords)
	cmd.Println("  Files:")
	for _, name := range result.Files {
		cmd.Printf("    %s\n", name)
	}
	return nil
}
