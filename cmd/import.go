package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ponche/go-lycans-metrics/internal/loader"
	"github.com/ponche/go-lycans-metrics/internal/storage"
)

var importForce bool

var importCmd = &cobra.Command{
	Use:   "import <export.json>",
	Short: "Import a game-log export file",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

func init() {
	importCmd.Flags().BoolVar(&importForce, "force", false, "re-import even if this export was already stored")
}

func runImport(cmd *cobra.Command, args []string) error {
	path := args[0]

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	fmt.Fprintf(os.Stdout, "Importing %s...\n", path)
	corpus, err := loader.LoadFile(path)
	if err != nil {
		return fmt.Errorf("load export: %w", err)
	}

	return storeCorpus(db, corpus, importForce)
}

// storeCorpus writes a loaded corpus, skipping exports already imported
// unless force is set.
func storeCorpus(db *storage.DB, corpus *loader.Corpus, force bool) error {
	exists, err := db.ImportExists(corpus.Hash)
	if err != nil {
		return fmt.Errorf("check import: %w", err)
	}
	if exists && !force {
		fmt.Fprintf(os.Stdout, "Export %s already imported, nothing to do.\n", corpus.Hash[:12])
		return nil
	}

	if err := db.InsertGames(corpus.Games); err != nil {
		return fmt.Errorf("insert games: %w", err)
	}
	if err := db.RecordImport(corpus.Hash, len(corpus.Games)); err != nil {
		return fmt.Errorf("record import: %w", err)
	}

	total, err := db.GameCount()
	if err != nil {
		return fmt.Errorf("count games: %w", err)
	}
	fmt.Fprintf(os.Stdout, "Imported %d games (%d stored in total).\n", len(corpus.Games), total)
	return nil
}
