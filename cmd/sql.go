package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ponche/go-lycans-metrics/internal/report"
)

var sqlCmd = &cobra.Command{
	Use:   "sql <query>",
	Short: "Run a raw SQL query against the game database",
	Long: `Run an arbitrary SQL query against the game database and print results
as a table.

Schema overview:
  imports(hash, imported_at, game_count)
  games(id, display_id, started_at, ended_at, map_name, modded, version,
    harvest_goal, harvest_done, end_timing, victory_type)
  game_players(game_id, username, role, secondary_role, power, victorious,
    death_timing, death_type, killer_name)
  role_changes(game_id, username, seq, role)
  votes(game_id, username, meeting, target)
  actions(game_id, username, seq, kind, target, timing)

Abstentions are stored with target = 'abstain'.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSQL,
}

func runSQL(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	cols, rows, err := db.QueryRaw(query)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		fmt.Println("(no rows)")
		return nil
	}

	report.PrintRawRows(os.Stdout, cols, rows)
	return nil
}
