package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"

	"github.com/ponche/go-lycans-metrics/internal/filter"
	"github.com/ponche/go-lycans-metrics/internal/model"
	"github.com/ponche/go-lycans-metrics/internal/roles"
)

var compareMode string

var compareCmd = &cobra.Command{
	Use:   "compare <username> <username> [<username>...]",
	Short: "Compare players over their shared games",
	Long: `Narrows the corpus to games the named players all took part in and
compares their win records there. The mode picks the shared-game
semantics:

  all-common-games  every game with all players present
  opposing-camps    only games where at least two ended up on different sides
  same-camp         only games where all ended up on the same side`,
	Args: cobra.MinimumNArgs(2),
	RunE: runCompare,
}

func init() {
	addFilterFlags(compareCmd)
	compareCmd.Flags().StringVar(&compareMode, "mode", "all-common-games", "all-common-games, opposing-camps or same-camp")
}

func runCompare(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	mode := filter.MultiMode(compareMode)
	switch mode {
	case filter.MultiCommonGames, filter.MultiOpposingCamps, filter.MultiSameCamp:
	default:
		return fmt.Errorf("unknown --mode %q", compareMode)
	}

	// The positional players become the multi-player dimension; other shared
	// filters still apply on top.
	flagWith = args
	flagWithMode = compareMode

	games, err := loadGames(db, cfg)
	if err != nil {
		return err
	}
	if len(games) == 0 {
		fmt.Fprintln(os.Stdout, "No shared games matched.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "\nShared games: %d (mode: %s)\n\n", len(games), mode)

	opts := campOptions(cfg)
	table := tablewriter.NewTable(os.Stdout, tablewriter.WithConfig(tablewriter.Config{
		Row:    tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignRight}},
		Header: tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignCenter}},
	}))
	table.Header("PLAYER", "GAMES", "WINS", "WIN%", "AS_VILL", "AS_LOUP", "AS_OTHER")

	for _, name := range args {
		gamesIn, wins := 0, 0
		asVill, asLoup, asOther := 0, 0, 0
		for i := range games {
			p := games[i].Player(name)
			if p == nil {
				continue
			}
			gamesIn++
			if p.Victorious {
				wins++
			}
			switch roles.PlayerCamp(p, opts) {
			case model.CampVillageois:
				asVill++
			case model.CampLoup:
				asLoup++
			default:
				asOther++
			}
		}
		winPct := 0.0
		if gamesIn > 0 {
			winPct = float64(wins) / float64(gamesIn) * 100
		}
		table.Append(
			name,
			strconv.Itoa(gamesIn),
			strconv.Itoa(wins),
			fmt.Sprintf("%.1f%%", winPct),
			strconv.Itoa(asVill),
			strconv.Itoa(asLoup),
			strconv.Itoa(asOther),
		)
	}
	table.Render()
	return nil
}
