package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kbase-labs/kbase-cli/internal/core/domain"
)

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Manage the section database",
}

var dbStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show database statistics",
	RunE:  runDBStats,
}

var dbExportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export the full database as JSON",
	Long: `Writes the complete database, sections and metadata, as a single
JSON document. Without a file argument the JSON goes to stdout.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDBExport,
}

var dbImportCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Replace the database from a JSON export",
	Args:  cobra.ExactArgs(1),
	RunE:  runDBImport,
}

var dbClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every section and reset the metadata",
	RunE:  runDBClear,
}

var flagDBClearYes bool

func init() {
	dbClearCmd.Flags().BoolVarP(&flagDBClearYes, "yes", "y", false, "Skip the confirmation prompt")

	dbCmd.AddCommand(dbStatsCmd)
	dbCmd.AddCommand(dbExportCmd)
	dbCmd.AddCommand(dbImportCmd)
	dbCmd.AddCommand(dbClearCmd)
	rootCmd.AddCommand(dbCmd)
}

func runDBStats(cmd *cobra.Command, _ []string) error {
	if repositoryService == nil {
		return errors.New("repository service not configured")
	}

	stats, err := repositoryService.Stats(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to get stats: %w", err)
	}

	if stats.TotalSections == 0 {
		cmd.Println("Database is empty. Run 'kbase scan' to build it.")
		return nil
	}

	cmd.Println("Database statistics")
	cmd.Println("===================")
	cmd.Printf("  Documents: %d\n", stats.TotalDocuments)
	cmd.Printf("  Sections:  %d\n", stats.TotalSections)
	if !stats.CreatedAt.IsZero() {
		cmd.Printf("  Created:   %s\n", stats.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	if !stats.LastUpdated.IsZero() {
		cmd.Printf("  Updated:   %s\n", stats.LastUpdated.Format("2006-01-02 15:04:05"))
	}

	if len(stats.ByCategory) > 0 {
		cmd.Println("\n  By category:")
		for _, category := range domain.Categories() {
			cs, ok := stats.ByCategory[category]
			if !ok {
				continue
			}
			cmd.Printf("    %-12s %d documents, %d sections\n", category, cs.Documents, cs.Sections)
		}
	}
	return nil
}

func runDBExport(cmd *cobra.Command, args []string) error {
	if repositoryService == nil {
		return errors.New("repository service not configured")
	}

	payload, err := repositoryService.Export(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to export database: %w", err)
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode export: %w", err)
	}

	if len(args) == 0 {
		cmd.Println(string(data))
		return nil
	}

	if err := os.WriteFile(args[0], data, 0600); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	cmd.Printf("Exported %d sections to %s\n", len(payload.Sections), args[0])
	return nil
}

func runDBImport(cmd *cobra.Command, args []string) error {
	if repositoryService == nil {
		return errors.New("repository service not configured")
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read import file: %w", err)
	}

	if err := repositoryService.Import(cmd.Context(), data); err != nil {
		if errors.Is(err, domain.ErrInvalidImport) {
			return fmt.Errorf("invalid import file: %w", err)
		}
		return fmt.Errorf("failed to import database: %w", err)
	}

	stats, err := repositoryService.Stats(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to get stats: %w", err)
	}
	cmd.Printf("Imported %d sections from %s\n", stats.TotalSections, args[0])
	return nil
}

func runDBClear(cmd *cobra.Command, _ []string) error {
	if repositoryService == nil {
		return errors.New("repository service not configured")
	}

	if !flagDBClearYes {
		cmd.Print("Delete the entire section database? [y/N] ")
		var answer string
		fmt.Fscanln(cmd.InOrStdin(), &answer)
		if answer != "y" && answer != "Y" {
			cmd.Println("Aborted.")
			return nil
		}
	}

	if err := repositoryService.Clear(cmd.Context()); err != nil {
		return fmt.Errorf("failed to clear database: %w", err)
	}

	cmd.Println("Database cleared.")
	return nil
}
