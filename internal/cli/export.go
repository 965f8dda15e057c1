package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/wp-hooks/parser/internal/cache"
	"github.com/wp-hooks/parser/internal/config"
	"github.com/wp-hooks/parser/internal/discovery"
	"github.com/wp-hooks/parser/internal/exporter"
	"github.com/wp-hooks/parser/internal/watcher"
)

var (
	outputFlag  string
	quietFlag   bool
	watchFlag   bool
	noCacheFlag bool
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export [directory]",
	Short: "Parse a PHP source tree and export its hooks and entities as JSON",
	Long: `Export walks a PHP project, parses every matching source file, and
writes one JSON record per file covering docblocks, includes, constants,
hooks, functions, and classes.

Examples:
  # Export the current directory to stdout
  wp-parser export

  # Export a WordPress checkout to a file
  wp-parser export /path/to/wordpress -o wordpress.json

  # Re-export automatically as files change
  wp-parser export --watch -o output.json

  # Force a full re-parse, ignoring the cache
  wp-parser export --no-cache
`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Write JSON to this file instead of stdout")
	exportCmd.Flags().BoolVarP(&quietFlag, "quiet", "q", false, "Disable progress bars and non-error output")
	exportCmd.Flags().BoolVarP(&watchFlag, "watch", "w", false, "Watch for file changes and re-export")
	exportCmd.Flags().BoolVar(&noCacheFlag, "no-cache", false, "Bypass the parse cache")
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals gracefully
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		<-sigChan
		fmt.Fprintln(os.Stderr, "\nInterrupted, stopping...")
		cancel()
	}()

	rootDir := "."
	if len(args) == 1 {
		rootDir = args[0]
	}
	rootDir, err := filepath.Abs(rootDir)
	if err != nil {
		return fmt.Errorf("failed to resolve root directory: %w", err)
	}

	cfg, err := config.LoadFromDir(rootDir)
	if err != nil {
		return err
	}

	var store *cache.Store
	if cfg.Cache.Enabled && !noCacheFlag {
		store, err = cache.Open(cfg.CachePath(rootDir))
		if err != nil {
			return err
		}
		defer store.Close()
	}

	if err := exportOnce(ctx, rootDir, cfg, store); err != nil {
		return err
	}

	if !watchFlag {
		return nil
	}
	return watchAndExport(ctx, rootDir, cfg, store)
}

// exportOnce runs the full discover-parse-export cycle and writes the
// result to the configured output.
func exportOnce(ctx context.Context, rootDir string, cfg *config.Config, store *cache.Store) error {
	fd, err := discovery.New(rootDir, cfg.Paths.Source, cfg.Paths.Ignore)
	if err != nil {
		return err
	}
	files, err := fd.Discover()
	if err != nil {
		return err
	}

	if verbose && !quietFlag {
		log.Printf("Discovered %d PHP files under %s", len(files), rootDir)
	}

	progress := newProgressReporter(quietFlag || outputFlag == "")
	progress.start(len(files))

	pipeline := exporter.NewPipeline(store)
	pipeline.OnFile = func(string) { progress.fileDone() }

	exports, err := pipeline.Run(ctx, rootDir, files)
	if err != nil {
		return err
	}
	progress.finish()

	return writeOutput(exports)
}

func writeOutput(exports []exporter.FileExport) error {
	data, err := json.MarshalIndent(exports, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	data = append(data, '\n')

	if outputFlag == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(outputFlag, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", outputFlag, err)
	}
	return nil
}

// watchAndExport re-runs the export on every debounced batch of changes
// until the context is cancelled.
func watchAndExport(ctx context.Context, rootDir string, cfg *config.Config, store *cache.Store) error {
	fw, err := watcher.New(rootDir)
	if err != nil {
		return err
	}
	defer fw.Stop()

	changes := make(chan []string, 1)
	if err := fw.Start(ctx, func(files []string) {
		select {
		case changes <- files:
		default:
		}
	}); err != nil {
		return err
	}

	if !quietFlag {
		log.Printf("Watching %s for changes...", rootDir)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case files := <-changes:
			if !quietFlag {
				log.Printf("%d files changed, re-exporting", len(files))
			}
			// Re-discover rather than trusting the hint: files may have
			// been added, removed, or renamed.
			if err := exportOnce(ctx, rootDir, cfg, store); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				log.Printf("Export failed: %v", err)
			}
		}
	}
}
