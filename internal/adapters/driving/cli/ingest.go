package cli

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/fluffyai/helpdesk-cli/internal/core/domain"
	"github.com/fluffyai/helpdesk-cli/internal/logger"
)

var (
	ingestWatch bool
	ingestClear bool
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [directory]",
	Short: "Load a knowledge base into the vector index",
	Long: `Recursively ingests markdown, PDF and text files under the given
directory, plus any URLs listed in its urls.txt, into the vector index.
Defaults to the configured knowledge directory.

With --watch, stays running and re-ingests files as they change.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().BoolVar(&ingestWatch, "watch", false, "re-ingest files as they change")
	ingestCmd.Flags().BoolVar(&ingestClear, "clear", false, "clear the index before ingesting")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	if ingestor == nil || vectorIndex == nil {
		return errors.New("ingest service not configured")
	}

	root := cfg.Ingest.KnowledgeDir
	if len(args) > 0 {
		root = args[0]
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if ingestClear {
		cmd.Println("Clearing vector index...")
		if err := vectorIndex.Clear(ctx); err != nil {
			return err
		}
	}

	report, err := ingestor.IngestDirectory(ctx, root)
	if err != nil {
		return err
	}
	printReport(cmd, report)

	if !ingestWatch {
		return nil
	}
	return watchAndIngest(ctx, cmd, root)
}

func printReport(cmd *cobra.Command, report *domain.IngestReport) {
	cmd.Printf("Ingested %d documents (%d chunks).\n", report.Documents, report.Chunks)
	if len(report.Failed) > 0 {
		cmd.Printf("%d documents failed:\n", len(report.Failed))
		for _, f := range report.Failed {
			cmd.Printf("  %s: %v\n", f.Source, f.Err)
		}
	}
	cmd.Printf("Index now holds %d chunks.\n", vectorIndex.Count())
}

// watchAndIngest re-ingests individual files on change until interrupted.
// Editors fire bursts of events per save, so writes are debounced per
// path before re-ingesting.
func watchAndIngest(ctx context.Context, cmd *cobra.Command, root string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// Watch the root and every subdirectory. fsnotify does not recurse.
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd.Printf("Watching %s for changes. Press Ctrl-C to stop.\n", root)

	const debounce = 500 * time.Millisecond
	pending := make(map[string]*time.Timer)

	for {
		select {
		case <-ctx.Done():
			cmd.Println("\nStopped watching.")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
				if event.Has(fsnotify.Create) {
					watcher.Add(event.Name) //nolint:errcheck // best effort for new dirs
				}
				continue
			}

			path := event.Name
			if timer, ok := pending[path]; ok {
				timer.Stop()
			}
			pending[path] = time.AfterFunc(debounce, func() {
				reingestFile(ctx, cmd, path)
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error: %v", err)
		}
	}
}

func reingestFile(ctx context.Context, cmd *cobra.Command, path string) {
	report, err := ingestor.IngestFile(ctx, path)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidConfig) {
			logger.Debug("Ignoring unsupported file %s", path)
			return
		}
		cmd.PrintErrf("Re-ingest of %s failed: %v\n", path, err)
		return
	}
	if len(report.Failed) > 0 {
		cmd.PrintErrf("Re-ingest of %s failed: %v\n", path, report.Failed[0].Err)
		return
	}
	cmd.Printf("Re-ingested %s (%d chunks).\n", path, report.Chunks)
}
