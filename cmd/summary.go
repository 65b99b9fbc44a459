package cmd

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/ponche/go-lycans-metrics/internal/model"
	"github.com/ponche/go-lycans-metrics/internal/report"
	"github.com/ponche/go-lycans-metrics/internal/roles"
)

// summaryCmd displays a high-level overview of the selected games.
var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show a high-level overview of the stored games",
	Long: `Display aggregate statistics over the selected games: totals, date
range, map breakdown and camp win rates. The shared filter flags narrow
the game set first.`,
	Args: cobra.NoArgs,
	RunE: runSummary,
}

func init() {
	addFilterFlags(summaryCmd)
}

func runSummary(cmd *cobra.Command, args []string) error {
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
		fmt.Fprintln(os.Stdout, "No games stored yet. Run 'lycmetrics import <export.json>' to add some.")
		return nil
	}

	players := make(map[string]bool)
	maps := make(map[string]int)
	first, last := games[0].StartedAt, games[0].StartedAt
	for i := range games {
		g := &games[i]
		if g.StartedAt.Before(first) {
			first = g.StartedAt
		}
		if g.StartedAt.After(last) {
			last = g.StartedAt
		}
		maps[g.MapName]++
		for j := range g.Players {
			players[g.Players[j].Username] = true
		}
	}

	fmt.Fprintf(os.Stdout, "\n=== Corpus Summary ===\n\n")
	fmt.Fprintf(os.Stdout, "  Games stored  : %d\n", len(games))
	fmt.Fprintf(os.Stdout, "  Date range    : %s to %s\n",
		first.Format("02/01/2006"), last.Format("02/01/2006"))
	fmt.Fprintf(os.Stdout, "  Players seen  : %d\n", len(players))
	fmt.Fprintf(os.Stdout, "  Maps played   : %d\n", len(maps))

	mapNames := make([]string, 0, len(maps))
	for m := range maps {
		mapNames = append(mapNames, m)
	}
	sort.Slice(mapNames, func(i, j int) bool { return maps[mapNames[i]] > maps[mapNames[j]] })
	fmt.Fprintln(os.Stdout, "\nMaps:")
	for _, m := range mapNames {
		fmt.Fprintf(os.Stdout, "  %-20s %d\n", m, maps[m])
	}

	wins := make(map[model.Camp]int)
	for i := range games {
		wins[roles.WinningCamp(&games[i])]++
	}
	camps := make([]model.Camp, 0, len(wins))
	for c := range wins {
		camps = append(camps, c)
	}
	sort.Slice(camps, func(i, j int) bool { return wins[camps[i]] > wins[camps[j]] })

	rows := make([]report.CampWinRow, 0, len(camps))
	for _, c := range camps {
		rows = append(rows, report.CampWinRow{
			Camp:    c,
			Wins:    wins[c],
			Percent: float64(wins[c]) / float64(len(games)) * 100,
		})
	}
	report.PrintCampWins(os.Stdout, len(games), rows)
	return nil
}
