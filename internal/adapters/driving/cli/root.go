// Package cli implements the kbase command line interface on top of the
// driving ports. Commands never touch stores directly; everything goes
// through the repository, template and bundle services wired in Execute.
package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	configfile "github.com/kbase-labs/kbase-cli/internal/adapters/driven/config/file"
	storagefile "github.com/kbase-labs/kbase-cli/internal/adapters/driven/storage/file"
	"github.com/kbase-labs/kbase-cli/internal/core/ports/driven"
	"github.com/kbase-labs/kbase-cli/internal/core/ports/driving"
	"github.com/kbase-labs/kbase-cli/internal/core/services"
	"github.com/kbase-labs/kbase-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Services wired by Execute and consumed by the commands.
var (
	configStore       driven.ConfigStore
	repositoryService driving.Repository
	templateService   driving.TemplateManager
	bundleBuilder     driving.BundleBuilder
)

var (
	flagVerbose   bool
	flagConfigDir string
)

var rootCmd = &cobra.Command{
	Use:   "kbase",
	Short: "Expert knowledge base for document ingestion and prompt export",
	Long: `kbase ingests expert documents from configured source directories,
segments them into addressable sections and exports selected sections
as ready-to-use prompt bundles.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		logger.SetVerbose(flagVerbose)
		return initServices()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "Configuration directory (default ~/.kbase)")
}

// Execute wires the services and runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// initServices builds the store and service graph. It is idempotent so
// tests can pre-wire fakes before a command runs.
func initServices() error {
	if repositoryService != nil {
		return nil
	}

	store, err := configfile.NewConfigStore(flagConfigDir)
	if err != nil {
		return fmt.Errorf("init config: %w", err)
	}
	configStore = store

	baseDir := filepath.Dir(store.Path())

	databaseDir := store.GetString("database.dir")
	if databaseDir == "" {
		databaseDir = filepath.Join(baseDir, "database")
	}
	sectionStore, err := storagefile.NewSectionStore(databaseDir)
	if err != nil {
		return fmt.Errorf("init database: %w", err)
	}

	repo, err := services.NewRepositoryService(context.Background(), sectionStore, store)
	if err != nil {
		return fmt.Errorf("init repository: %w", err)
	}
	repositoryService = repo

	templatesPath := store.GetString("templates.path")
	if templatesPath == "" {
		templatesPath = filepath.Join(baseDir, "templates.json")
	}
	templates, err := services.NewTemplateService(storagefile.NewTemplateStore(templatesPath))
	if err != nil {
		return fmt.Errorf("init templates: %w", err)
	}
	templateService = templates

	sessionsDir := store.GetString("sessions.dir")
	if sessionsDir == "" {
		sessionsDir = filepath.Join(baseDir, "sessions")
	}
	bundleBuilder = services.NewBundleService(sessionsDir)

	return nil
}
