package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ponche/go-lycans-metrics/internal/config"
	"github.com/ponche/go-lycans-metrics/internal/filter"
)

// Shared filter flags. Every statistics command narrows the corpus through
// the same dimensions, so the flag set is registered once per command.
var (
	flagPlayer      string
	flagWinsOnly    bool
	flagGameID      string
	flagGameIDs     []string
	flagCamp        string
	flagNoWolfSub   bool
	flagNoVillagers bool
	flagDate        string
	flagHarvest     string
	flagDays        string
	flagMap         string
	flagVictoryType string
	flagPair        []string
	flagPairRole    string
	flagWith        []string
	flagWithMode    string
	flagWinner      string
)

func addFilterFlags(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&flagPlayer, "player", "", "keep games this player took part in")
	fs.BoolVar(&flagWinsOnly, "wins-only", false, "keep only games the bound player (or camp) won")
	fs.StringVar(&flagGameID, "game", "", "keep a single game by display id")
	fs.StringSliceVar(&flagGameIDs, "games", nil, "keep games from this display id list")
	fs.StringVar(&flagCamp, "camp", "", "keep games by camp ('Autres' pools the small camps)")
	fs.BoolVar(&flagNoWolfSub, "no-wolf-subroles", false, "compare camps at wolf sub-role granularity")
	fs.BoolVar(&flagNoVillagers, "no-villagers", false, "compare camps at villager sub-role granularity")
	fs.StringVar(&flagDate, "date", "", "keep games on a day (DD/MM/YYYY) or in a month (MM/YYYY)")
	fs.StringVar(&flagHarvest, "harvest", "", "keep games in a harvest band (0-25, 26-50, 51-75, 76-99, 100)")
	fs.StringVar(&flagDays, "days", "", "keep games lasting exactly this many days")
	fs.StringVar(&flagMap, "map", "", "keep games on this map ('Autres' matches non-primary maps)")
	fs.StringVar(&flagVictoryType, "victory", "", "keep games with this victory type")
	fs.StringSliceVar(&flagPair, "pair", nil, "two players that must share the pair camp")
	fs.StringVar(&flagPairRole, "pair-role", "wolves", "pair relation: wolves or lovers")
	fs.StringSliceVar(&flagWith, "with", nil, "players that must all appear in the game")
	fs.StringVar(&flagWithMode, "with-mode", "all-common-games", "multi-player mode: all-common-games, opposing-camps or same-camp")
	fs.StringVar(&flagWinner, "winner", "", "player whose side must have won (with --with)")
}

// buildFilters assembles the filter specification from the shared flags.
func buildFilters(cfg *config.Config) (filter.Filters, error) {
	f := filter.Filters{
		Player:      flagPlayer,
		GameID:      flagGameID,
		GameIDs:     flagGameIDs,
		Date:        flagDate,
		Harvest:     flagHarvest,
		Days:        flagDays,
		MapName:     flagMap,
		VictoryType: flagVictoryType,
	}
	if flagWinsOnly {
		f.WinMode = filter.WinModeWins
	} else {
		f.WinMode = filter.WinModeAll
	}

	if flagCamp != "" {
		f.Camp = &filter.CampFilter{
			Camp:                flagCamp,
			Mode:                f.WinMode,
			ExcludeWolfSubRoles: flagNoWolfSub,
			ExcludeVillagers:    flagNoVillagers,
			SmallCamps:          cfg.Camps.SmallCamps,
		}
	}

	if len(flagPair) > 0 {
		if len(flagPair) != 2 {
			return f, fmt.Errorf("--pair needs exactly two players, got %d", len(flagPair))
		}
		role := filter.PairRole(flagPairRole)
		if role != filter.PairWolves && role != filter.PairLovers {
			return f, fmt.Errorf("unknown --pair-role %q (want wolves or lovers)", flagPairRole)
		}
		f.Pair = &filter.PairFilter{PlayerA: flagPair[0], PlayerB: flagPair[1], Role: role}
	}

	if len(flagWith) > 0 {
		mode := filter.MultiMode(flagWithMode)
		switch mode {
		case filter.MultiCommonGames, filter.MultiOpposingCamps, filter.MultiSameCamp:
		default:
			return f, fmt.Errorf("unknown --with-mode %q", flagWithMode)
		}
		if flagWinner != "" && !contains(flagWith, flagWinner) {
			return f, fmt.Errorf("--winner %q must be one of the --with players", flagWinner)
		}
		f.Multi = &filter.MultiFilter{Players: flagWith, Mode: mode, Winner: flagWinner}
	}

	return f, nil
}

func contains(xs []string, want string) bool {
	for _, x := range xs {
		if strings.EqualFold(x, want) {
			return true
		}
	}
	return false
}
