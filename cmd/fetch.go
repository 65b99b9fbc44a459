package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ponche/go-lycans-metrics/internal/loader"
	"github.com/ponche/go-lycans-metrics/internal/upstream"
)

var (
	fetchURL   string
	fetchForce bool
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download the hosted export and import it",
	Long: `Downloads the game-log export from the configured URL and imports it,
skipping the import when the export content has not changed.

Set the URL once in the config file:

  [upstream]
  export_url = "https://example.org/lycans/games.json"

or pass it with --url.`,
	Args: cobra.NoArgs,
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().StringVar(&fetchURL, "url", "", "export URL (overrides the config file)")
	fetchCmd.Flags().BoolVar(&fetchForce, "force", false, "re-import even if this export was already stored")
}

func runFetch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	url := fetchURL
	if url == "" {
		url = cfg.Upstream.ExportURL
	}
	if url == "" {
		return fmt.Errorf("no export URL: set upstream.export_url in %s or pass --url", cfgPath)
	}

	timeout, err := time.ParseDuration(cfg.Upstream.Timeout)
	if err != nil {
		timeout = 30 * time.Second
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	fmt.Fprintf(os.Stdout, "Fetching %s...\n", url)
	client := upstream.NewClient(url, timeout)
	data, err := client.FetchExport(cmd.Context())
	if err != nil {
		return err
	}

	corpus, err := loader.Load(data)
	if err != nil {
		return fmt.Errorf("load export: %w", err)
	}
	return storeCorpus(db, corpus, fetchForce)
}
