package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ponche/go-lycans-metrics/internal/aggregator"
	"github.com/ponche/go-lycans-metrics/internal/model"
	"github.com/ponche/go-lycans-metrics/internal/report"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored games",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	addFilterFlags(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	games, err := loadGames(db, cfg)
	if err != nil {
		return err
	}
	if len(games) == 0 {
		fmt.Fprintln(os.Stdout, "No games matched. Run 'lycmetrics import <export.json>' to add some.")
		return nil
	}

	summaries := make([]model.GameSummary, 0, len(games))
	for i := range games {
		summaries = append(summaries, aggregator.BuildGameSummary(&games[i]))
	}
	report.PrintGameList(os.Stdout, summaries)
	return nil
}
