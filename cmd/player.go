package cmd

import (
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"

	"github.com/ponche/go-lycans-metrics/internal/aggregator"
	"github.com/ponche/go-lycans-metrics/internal/model"
	"github.com/ponche/go-lycans-metrics/internal/report"
	"github.com/ponche/go-lycans-metrics/internal/roles"
)

// playerCmd is the cross-game profile of one player.
var playerCmd = &cobra.Command{
	Use:   "player <username>",
	Short: "Cross-game profile for one player",
	Long: `Shows a player's record across the selected games: assignments and win
rate per camp, death and kill summary, and voting behavior. The shared
filter flags narrow the game set first.`,
	Args: cobra.ExactArgs(1),
	RunE: runPlayer,
}

func init() {
	addFilterFlags(playerCmd)
}

func runPlayer(cmd *cobra.Command, args []string) error {
	name := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	// Bind the player into the shared filter set so camp filters resolve
	// against them.
	if flagPlayer == "" {
		flagPlayer = name
	}
	games, err := loadGames(db, cfg)
	if err != nil {
		return err
	}
	if len(games) == 0 {
		fmt.Fprintf(os.Stdout, "No games found for %s.\n", name)
		return nil
	}

	opts := campOptions(cfg)

	type campRecord struct {
		games int
		wins  int
	}
	byCamp := make(map[model.Camp]*campRecord)
	totalGames, totalWins := 0, 0
	for i := range games {
		p := games[i].Player(name)
		if p == nil {
			continue
		}
		camp := roles.PlayerCamp(p, opts)
		rec := byCamp[camp]
		if rec == nil {
			rec = &campRecord{}
			byCamp[camp] = rec
		}
		rec.games++
		totalGames++
		if p.Victorious {
			rec.wins++
			totalWins++
		}
	}
	if totalGames == 0 {
		fmt.Fprintf(os.Stdout, "No games found for %s.\n", name)
		return nil
	}

	fmt.Fprintf(os.Stdout, "\nPlayer: %s  |  Games: %d  |  Wins: %d (%.1f%%)\n\n",
		name, totalGames, totalWins, float64(totalWins)/float64(totalGames)*100)

	camps := make([]model.Camp, 0, len(byCamp))
	for c := range byCamp {
		camps = append(camps, c)
	}
	sort.Slice(camps, func(i, j int) bool { return byCamp[camps[i]].games > byCamp[camps[j]].games })

	campTable := tablewriter.NewTable(os.Stdout, tablewriter.WithConfig(tablewriter.Config{
		Row:    tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignRight}},
		Header: tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignCenter}},
	}))
	campTable.Header("CAMP", "GAMES", "WINS", "WIN%")
	for _, c := range camps {
		rec := byCamp[c]
		campTable.Append(
			string(c),
			strconv.Itoa(rec.games),
			strconv.Itoa(rec.wins),
			fmt.Sprintf("%.1f%%", float64(rec.wins)/float64(rec.games)*100),
		)
	}
	campTable.Render()

	deaths := aggregator.ComputeDeathStats(games, "", opts)
	for _, k := range deaths.Killers {
		if k.Name == name {
			fmt.Fprintln(os.Stdout, "\nAs killer:")
			report.PrintKillers(os.Stdout, []model.KillerStats{k}, 0)
			break
		}
	}
	for _, v := range deaths.Victims {
		if v.Name == name {
			fmt.Fprintln(os.Stdout, "\nAs victim:")
			report.PrintVictims(os.Stdout, []model.VictimStats{v}, 0)
			break
		}
	}

	behavior := aggregator.ComputeVotingBehavior(games, opts)
	for _, p := range behavior.Players {
		if p.Name == name {
			fmt.Fprintln(os.Stdout, "\nVoting:")
			report.PrintVoters(os.Stdout, []model.PlayerVotingStats{p})
			break
		}
	}
	for _, t := range behavior.Targets {
		if t.Name == name {
			fmt.Fprintln(os.Stdout, "\nTargeted:")
			report.PrintTargets(os.Stdout, []model.TargetStats{t})
			break
		}
	}
	return nil
}
