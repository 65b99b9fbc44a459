package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ponche/go-lycans-metrics/internal/aggregator"
	"github.com/ponche/go-lycans-metrics/internal/report"
)

var votesGameRef string

var votesCmd = &cobra.Command{
	Use:   "votes",
	Short: "Cross-game voting behavior and vote pressure",
	Long: `Aggregates ballots across the selected games: per voter (votes cast,
abstentions, favorite targets, camp at the time of voting) and per target
(who gets voted against, by whom, and how hard per game).

With --for-game, shows the meeting-by-meeting breakdown of one game
instead.`,
	Args: cobra.NoArgs,
	RunE: runVotes,
}

func init() {
	addFilterFlags(votesCmd)
	votesCmd.Flags().StringVar(&votesGameRef, "for-game", "", "show one game's per-meeting breakdown")
}

func runVotes(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	if votesGameRef != "" {
		game, err := db.GetGameByDisplayID(votesGameRef)
		if err != nil {
			return fmt.Errorf("query game: %w", err)
		}
		if game == nil {
			fmt.Fprintf(os.Stderr, "No game found for %q\n", votesGameRef)
			return nil
		}
		report.PrintGameVotes(os.Stdout, *aggregator.AnalyzeGameVotes(game))
		return nil
	}

	games, err := loadGames(db, cfg)
	if err != nil {
		return err
	}
	if len(games) == 0 {
		fmt.Fprintln(os.Stdout, "No games matched.")
		return nil
	}

	behavior := aggregator.ComputeVotingBehavior(games, campOptions(cfg))

	fmt.Fprintln(os.Stdout, "\nVoters:")
	report.PrintVoters(os.Stdout, behavior.Players)
	fmt.Fprintln(os.Stdout, "\nTargets:")
	report.PrintTargets(os.Stdout, behavior.Targets)
	return nil
}
