package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ponche/go-lycans-metrics/internal/aggregator"
	"github.com/ponche/go-lycans-metrics/internal/report"
)

var meetingsCmd = &cobra.Command{
	Use:   "meetings",
	Short: "Meeting survival rates per player and per camp",
	Long: `For every meeting of every selected game, counts who attended and who
was voted out at it. A player dead before a meeting does not attend it;
a player voted out at meeting N attends it and counts as eliminated there.`,
	Args: cobra.NoArgs,
	RunE: runMeetings,
}

func init() {
	addFilterFlags(meetingsCmd)
}

func runMeetings(cmd *cobra.Command, args []string) error {
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
		fmt.Fprintln(os.Stdout, "No games matched.")
		return nil
	}

	survival := aggregator.ComputeMeetingSurvival(games, campOptions(cfg))
	report.PrintMeetingSurvival(os.Stdout, survival)
	return nil
}
