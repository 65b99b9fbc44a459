package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ponche/go-lycans-metrics/internal/aggregator"
	"github.com/ponche/go-lycans-metrics/internal/report"
)

var showFocusPlayer string

var showCmd = &cobra.Command{
	Use:   "show <game-id>",
	Short: "Show one game in detail, by display id or id prefix",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	showCmd.Flags().StringVar(&showFocusPlayer, "player", "", "highlight this player's row")
}

func runShow(cmd *cobra.Command, args []string) error {
	ref := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	game, err := db.GetGameByDisplayID(ref)
	if err != nil {
		return fmt.Errorf("query game: %w", err)
	}
	if game == nil {
		fmt.Fprintf(os.Stderr, "No game found for %q\n", ref)
		return nil
	}

	details := aggregator.BuildGameDetails(game, campOptions(cfg))
	report.PrintGameHeader(os.Stdout, *details)
	report.PrintGameDetails(os.Stdout, *details, showFocusPlayer)

	fmt.Fprintln(os.Stdout, "\nMeetings:")
	report.PrintGameVotes(os.Stdout, *aggregator.AnalyzeGameVotes(game))
	return nil
}
