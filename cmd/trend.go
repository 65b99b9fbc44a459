package cmd

import (
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"

	"github.com/ponche/go-lycans-metrics/internal/model"
	"github.com/ponche/go-lycans-metrics/internal/roles"
)

var trendCmd = &cobra.Command{
	Use:   "trend <username>",
	Short: "Month-by-month win rate for a player",
	Args:  cobra.ExactArgs(1),
	RunE:  runTrend,
}

func init() {
	addFilterFlags(trendCmd)
}

func runTrend(cmd *cobra.Command, args []string) error {
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

	if flagPlayer == "" {
		flagPlayer = name
	}
	games, err := loadGames(db, cfg)
	if err != nil {
		return err
	}

	opts := campOptions(cfg)

	type monthRecord struct {
		games  int
		wins   int
		asLoup int
	}
	byMonth := make(map[string]*monthRecord)
	for i := range games {
		p := games[i].Player(name)
		if p == nil {
			continue
		}
		key := games[i].StartedAt.Format("2006-01")
		rec := byMonth[key]
		if rec == nil {
			rec = &monthRecord{}
			byMonth[key] = rec
		}
		rec.games++
		if p.Victorious {
			rec.wins++
		}
		if roles.PlayerCamp(p, opts) == model.CampLoup {
			rec.asLoup++
		}
	}
	if len(byMonth) == 0 {
		fmt.Fprintf(os.Stdout, "No games found for %s.\n", name)
		return nil
	}

	months := make([]string, 0, len(byMonth))
	for m := range byMonth {
		months = append(months, m)
	}
	sort.Strings(months)

	table := tablewriter.NewTable(os.Stdout, tablewriter.WithConfig(tablewriter.Config{
		Row:    tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignRight}},
		Header: tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignCenter}},
	}))
	table.Header("MONTH", "GAMES", "WINS", "WIN%", "AS_LOUP")
	for _, m := range months {
		rec := byMonth[m]
		table.Append(
			m,
			strconv.Itoa(rec.games),
			strconv.Itoa(rec.wins),
			fmt.Sprintf("%.1f%%", float64(rec.wins)/float64(rec.games)*100),
			strconv.Itoa(rec.asLoup),
		)
	}
	table.Render()
	return nil
}
