package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/kbase-labs/kbase-cli/internal/connectors/filesystem"
	"github.com/kbase-labs/kbase-cli/internal/core/domain"
	"github.com/kbase-labs/kbase-cli/internal/logger"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Rebuild the section database from the source directories",
	Long: `Walks every configured source directory, processes each document
through the ingestion pipeline and replaces the section database.

Section ids change on every scan, so any previous selection is lost.

With --watch the scan repeats automatically whenever a file under a
source directory changes.`,
	RunE: runScan,
}

// scanDebounce coalesces bursts of filesystem events into one rescan.
const scanDebounce = 2 * time.Second

var flagWatch bool

func init() {
	scanCmd.Flags().BoolVarP(&flagWatch, "watch", "w", false, "Rescan on source changes until interrupted")
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, _ []string) error {
	if repositoryService == nil {
		return errors.New("repository service not configured")
	}

	ctx := cmd.Context()

	if err := scanOnce(ctx, cmd); err != nil {
		return err
	}
	if !flagWatch {
		return nil
	}

	return watchSources(ctx, cmd)
}

func scanOnce(ctx context.Context, cmd *cobra.Command) error {
	cmd.Println("Scanning source directories...")

	report, err := repositoryService.Rebuild(ctx)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	if report.Documents == 0 && len(sourceRoots()) == 0 {
		cmd.Println("No source directories configured. Add one with 'kbase config set sources.<category> <path>'.")
	}

	cmd.Printf("Processed %d documents into %d sections", report.Documents, report.Sections)
	if report.Skipped > 0 {
		cmd.Printf(" (%d files skipped)", report.Skipped)
	}
	cmd.Println()

	for _, category := range domain.Categories() {
		stats, ok := report.ByCategory[category]
		if !ok {
			continue
		}
		cmd.Printf("  %-12s %d documents, %d sections\n", category, stats.Documents, stats.Sections)
	}
	return nil
}

// watchSources blocks, rescanning after every debounced change under any
// configured source directory, until the context is cancelled or an
// interrupt arrives.
func watchSources(ctx context.Context, cmd *cobra.Command) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}
	defer watcher.Close()

	roots := sourceRoots()
	if len(roots) == 0 {
		return errors.New("no source directories configured")
	}
	for _, root := range roots {
		if err := watchRecursive(watcher, root.Path); err != nil {
			return fmt.Errorf("watch %s: %w", root.Path, err)
		}
	}

	cmd.Println("Watching for changes. Press Ctrl+C to stop.")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	// A nil channel blocks forever, so the timer case stays idle until a
	// change arms it.
	var (
		timer   *time.Timer
		timerCh <-chan time.Time
	)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-sigCh:
			cmd.Println("\nStopped watching.")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !relevantEvent(event) {
				continue
			}
			// New directories must be watched as they appear.
			if event.Op.Has(fsnotify.Create) {
				if info, statErr := os.Stat(event.Name); statErr == nil && info.IsDir() {
					if watchErr := watchRecursive(watcher, event.Name); watchErr != nil {
						logger.Warn("cannot watch %s: %v", event.Name, watchErr)
					}
				}
			}
			logger.Debug("change detected: %s %s", event.Op, event.Name)
			if timer == nil {
				timer = time.NewTimer(scanDebounce)
				timerCh = timer.C
			} else {
				timer.Reset(scanDebounce)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error: %v", err)

		case <-timerCh:
			if err := scanOnce(ctx, cmd); err != nil {
				logger.Warn("rescan failed: %v", err)
			}
			timer = nil
			timerCh = nil
		}
	}
}

// relevantEvent reports whether the event concerns a supported file or a
// directory change that could affect the corpus.
func relevantEvent(event fsnotify.Event) bool {
	if event.Op.Has(fsnotify.Chmod) {
		return false
	}
	if filesystem.Supported(event.Name) {
		return true
	}
	// Directory creations and removals have no extension to test.
	return filepath.Ext(event.Name) == ""
}

// watchRecursive adds the directory and every subdirectory to the watcher.
func watchRecursive(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			logger.Warn("cannot access %s: %v", path, err)
			return nil
		}
		if !entry.IsDir() {
			return nil
		}
		return watcher.Add(path)
	})
}

// sourceRoots returns the configured source roots in category order.
func sourceRoots() []domain.SourceRoot {
	if configStore == nil {
		return nil
	}
	var roots []domain.SourceRoot
	for _, category := range domain.Categories() {
		path := configStore.GetString("sources." + string(category))
		if path == "" {
			continue
		}
		roots = append(roots, domain.SourceRoot{Category: category, Path: path})
	}
	return roots
}
