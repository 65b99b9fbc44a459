package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/ponche/go-lycans-metrics/internal/loader"
)

var watchCmd = &cobra.Command{
	Use:   "watch <export.json>",
	Short: "Watch an export file and re-import it on change",
	Long: `Watches the given export file and re-imports it whenever the producer
rewrites it. Unchanged content is skipped via the import hash, so a touch
without new games is a no-op. Stop with Ctrl-C.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	path := args[0]
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	importFile := func() {
		corpus, err := loader.LoadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "  [error] load: %v\n", err)
			return
		}
		if err := storeCorpus(db, corpus, false); err != nil {
			fmt.Fprintf(os.Stderr, "  [error] store: %v\n", err)
		}
	}

	fmt.Fprintf(os.Stdout, "Watching %s (Ctrl-C to stop)\n", path)
	importFile()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory: editors and exporters often replace the file,
	// which drops a watch set on the file itself.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(path), err)
	}

	// Debounce bursts of write events from a single rewrite.
	var timer *time.Timer
	for {
		select {
		case <-cmd.Context().Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(path) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(500*time.Millisecond, func() {
				fmt.Fprintf(os.Stdout, "Change detected, re-importing...\n")
				importFile()
			})
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "  [warn] watcher: %v\n", err)
		}
	}
}
