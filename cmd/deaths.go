package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ponche/go-lycans-metrics/internal/aggregator"
	"github.com/ponche/go-lycans-metrics/internal/report"
)

var (
	deathsKillerCamp string
	deathsTop        int
)

var deathsCmd = &cobra.Command{
	Use:   "deaths",
	Short: "Death causes, killer and victim rankings",
	Long: `Aggregates deaths across the selected games: cause breakdown, kills
credited per killer (vote, starvation, fall and avatar deaths are never
credited), and deaths per victim including players who never died.

Kills by a player whose role changed mid-game to a wolf or zombie role are
credited to the final role's camp.`,
	Args: cobra.NoArgs,
	RunE: runDeaths,
}

func init() {
	addFilterFlags(deathsCmd)
	deathsCmd.Flags().StringVar(&deathsKillerCamp, "killer-camp", "", "restrict rankings to this resolved camp")
	deathsCmd.Flags().IntVar(&deathsTop, "top", 15, "ranking rows to show, 0 for all")
}

func runDeaths(cmd *cobra.Command, args []string) error {
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

	stats := aggregator.ComputeDeathStats(games, deathsKillerCamp, campOptions(cfg))

	report.PrintDeathTypes(os.Stdout, stats)
	fmt.Fprintln(os.Stdout, "\nKillers:")
	report.PrintKillers(os.Stdout, stats.Killers, deathsTop)
	fmt.Fprintln(os.Stdout, "\nVictims:")
	report.PrintVictims(os.Stdout, stats.Victims, deathsTop)
	return nil
}
