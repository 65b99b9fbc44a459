package report

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/ponche/go-lycans-metrics/internal/model"
)

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))
}

// PrintGameHeader prints a one-line summary header for a game.
func PrintGameHeader(w io.Writer, d model.GameDetails) {
	harvest := "—"
	if d.HarvestPercent >= 0 {
		harvest = fmt.Sprintf("%d/%d (%.0f%%)", d.HarvestDone, d.HarvestGoal, d.HarvestPercent)
	}
	modded := ""
	if d.Modded {
		modded = "  |  Modded"
	}
	fmt.Fprintf(w, "\nGame: %s  |  Date: %s  |  Map: %s  |  Days: %d  |  Harvest: %s  |  Winner: %s%s\n\n",
		d.DisplayID, d.StartedAt.Format("02/01/2006 15:04"), d.MapName, d.Days, harvest, d.WinningCamp, modded)
}

// PrintGameList prints the stored game list.
func PrintGameList(w io.Writer, games []model.GameSummary) {
	table := newTable(w)
	table.Header("GAME", "DATE", "MAP", "DAYS", "PLAYERS", "WINNER", "VERSION")

	for _, g := range games {
		version := g.Version
		if g.Modded {
			version += " (mod)"
		}
		table.Append(
			g.DisplayID,
			g.StartedAt.Format("02/01/2006"),
			g.MapName,
			strconv.Itoa(g.Days),
			strconv.Itoa(g.PlayerCount),
			string(g.WinningCamp),
			version,
		)
	}
	table.Render()
}

// PrintGameDetails prints the per-player table of a game detail view.
// If focus is non-empty, that player's row is marked with ">".
func PrintGameDetails(w io.Writer, d model.GameDetails, focus string) {
	table := newTable(w)
	table.Header(" ", "PLAYER", "ROLE", "FINAL_ROLE", "CAMP", "WON", "DEATH", "CAUSE", "KILLER", "VOTES", "ABST")

	for _, p := range d.Players {
		marker := " "
		if focus != "" && p.Username == focus {
			marker = ">"
		}
		finalRole := "—"
		if p.FinalRole != p.Role {
			finalRole = string(p.FinalRole)
		}
		death, cause, killer := "alive", "—", "—"
		if p.DeathTiming != "" {
			death = p.DeathTiming
		}
		if p.DeathType != "" {
			cause = string(p.DeathType)
		}
		if p.KillerName != "" {
			killer = p.KillerName
		}
		won := " "
		if p.Victorious {
			won = "x"
		}
		table.Append(
			marker,
			p.Username,
			string(p.Role),
			finalRole,
			string(p.Camp),
			won,
			death,
			cause,
			killer,
			strconv.Itoa(p.VoteCount),
			strconv.Itoa(p.Abstentions),
		)
	}
	table.Render()
}

// PrintGameVotes prints the per-meeting vote breakdown of one game.
func PrintGameVotes(w io.Writer, a model.GameVoteAnalysis) {
	if len(a.Meetings) == 0 {
		fmt.Fprintf(w, "No meetings recorded for game %s.\n", a.DisplayID)
		return
	}

	table := newTable(w)
	table.Header("MEETING", "PRESENT", "VOTED", "ABSTAINED", "PART%", "TOP_TARGET", "CONSENSUS%")

	for _, m := range a.Meetings {
		topTarget := "—"
		if m.TopTarget != "" {
			topTarget = fmt.Sprintf("%s (%d)", m.TopTarget, m.TopTargetVotes)
		}
		table.Append(
			strconv.Itoa(m.Meeting),
			strconv.Itoa(m.Participants),
			strconv.Itoa(m.Voters),
			strconv.Itoa(m.Abstainers),
			fmt.Sprintf("%.0f%%", m.ParticipationRate),
			topTarget,
			fmt.Sprintf("%.0f%%", m.ConsensusLevel),
		)
	}
	table.Render()
}

// PrintDeathTypes prints the death-cause breakdown.
func PrintDeathTypes(w io.Writer, stats *model.DeathStats) {
	fmt.Fprintf(w, "\nTotal deaths: %d\n\n", stats.TotalDeaths)

	table := newTable(w)
	table.Header("CAUSE", "COUNT", "SHARE")
	for _, tc := range stats.ByType {
		table.Append(string(tc.Type), strconv.Itoa(tc.Count), fmt.Sprintf("%.1f%%", tc.Percent))
	}
	table.Render()

	if len(stats.KillsByCamp) > 0 {
		camps := make([]model.Camp, 0, len(stats.KillsByCamp))
		for c := range stats.KillsByCamp {
			camps = append(camps, c)
		}
		sort.Slice(camps, func(i, j int) bool { return camps[i] < camps[j] })

		fmt.Fprintln(w, "\nAttributed kills by camp:")
		campTable := newTable(w)
		campTable.Header("CAMP", "KILLS")
		for _, c := range camps {
			campTable.Append(string(c), strconv.Itoa(stats.KillsByCamp[c]))
		}
		campTable.Render()
	}
}

// PrintKillers prints the killer ranking. Limit caps the row count, 0 means all.
func PrintKillers(w io.Writer, killers []model.KillerStats, limit int) {
	table := newTable(w)
	table.Header("KILLER", "KILLS", "VICTIMS", "GAMES", "KILLS/GAME", "TOP_CAUSE")

	for i, k := range killers {
		if limit > 0 && i >= limit {
			break
		}
		table.Append(
			k.Name,
			strconv.Itoa(k.Kills),
			strconv.Itoa(k.UniqueVictims),
			strconv.Itoa(k.GamesPlayed),
			fmt.Sprintf("%.2f", k.AvgKillsPerGame),
			topDeathType(k.ByType),
		)
	}
	table.Render()
}

// PrintVictims prints the victim ranking, zero-death players included.
func PrintVictims(w io.Writer, victims []model.VictimStats, limit int) {
	table := newTable(w)
	table.Header("VICTIM", "DEATHS", "GAMES", "TOP_CAUSE", "TOP_KILLER")

	for i, v := range victims {
		if limit > 0 && i >= limit {
			break
		}
		table.Append(
			v.Name,
			strconv.Itoa(v.Deaths),
			strconv.Itoa(v.GamesPlayed),
			topDeathType(v.ByType),
			topName(v.KilledBy),
		)
	}
	table.Render()
}

// PrintMeetingSurvival prints per-player and per-camp meeting survival rates.
func PrintMeetingSurvival(w io.Writer, s *model.MeetingSurvival) {
	table := newTable(w)
	table.Header("PLAYER", "MEETINGS", "VOTED_OUT", "SURVIVAL%")
	for _, p := range s.Players {
		table.Append(
			p.Name,
			strconv.Itoa(p.Participated),
			strconv.Itoa(p.Died),
			fmt.Sprintf("%.1f%%", p.SurvivalRate),
		)
	}
	table.Render()

	if len(s.Camps) == 0 {
		return
	}
	fmt.Fprintln(w, "\nBy camp:")
	campTable := newTable(w)
	campTable.Header("CAMP", "MEETINGS", "VOTED_OUT", "SURVIVAL%")
	for _, b := range []model.CampBucket{model.BucketVillageois, model.BucketLoup, model.BucketSolo} {
		c, ok := s.Camps[b]
		if !ok {
			continue
		}
		campTable.Append(
			string(b),
			strconv.Itoa(c.Participated),
			strconv.Itoa(c.Died),
			fmt.Sprintf("%.1f%%", c.SurvivalRate),
		)
	}
	campTable.Render()
}

// PrintVoters prints cross-game voter behavior.
func PrintVoters(w io.Writer, players []model.PlayerVotingStats) {
	table := newTable(w)
	table.Header("PLAYER", "VOTES", "ABST", "PART%", "TARGETS", "TOP_TARGET", "AS_VILL", "AS_LOUP", "AS_OTHER")

	for _, p := range players {
		topTarget := "—"
		if p.TopTarget != "" {
			topTarget = fmt.Sprintf("%s (%d)", p.TopTarget, p.TargetCounts[p.TopTarget])
		}
		table.Append(
			p.Name,
			strconv.Itoa(p.Votes),
			strconv.Itoa(p.Abstentions),
			fmt.Sprintf("%.0f%%", p.ParticipationRate),
			strconv.Itoa(p.DistinctTargets),
			topTarget,
			strconv.Itoa(p.AsVillageois),
			strconv.Itoa(p.AsLoup),
			strconv.Itoa(p.AsOther),
		)
	}
	table.Render()
}

// PrintTargets prints cross-game vote-pressure on each player.
func PrintTargets(w io.Writer, targets []model.TargetStats) {
	table := newTable(w)
	table.Header("PLAYER", "TARGETED", "GAMES", "PRESSURE", "TOP_ATTACKER", "BY_VILL", "BY_LOUP", "BY_OTHER")

	for _, t := range targets {
		topAttacker := "—"
		if t.TopAttacker != "" {
			topAttacker = fmt.Sprintf("%s (%d)", t.TopAttacker, t.ByAttacker[t.TopAttacker])
		}
		table.Append(
			t.Name,
			strconv.Itoa(t.TimesTargeted),
			strconv.Itoa(t.GamesTargeted),
			fmt.Sprintf("%.2f", t.Pressure),
			topAttacker,
			strconv.Itoa(t.ByBucket[model.BucketVillageois]),
			strconv.Itoa(t.ByBucket[model.BucketLoup]),
			strconv.Itoa(t.ByBucket[model.BucketSolo]),
		)
	}
	table.Render()
}

// CampWinRow is one line of the corpus overview.
type CampWinRow struct {
	Camp    model.Camp
	Wins    int
	Percent float64
}

// PrintCampWins prints camp win counts over a set of games.
func PrintCampWins(w io.Writer, total int, rows []CampWinRow) {
	fmt.Fprintf(w, "\nGames: %d\n\n", total)

	table := newTable(w)
	table.Header("CAMP", "WINS", "WIN%")
	for _, r := range rows {
		table.Append(string(r.Camp), strconv.Itoa(r.Wins), fmt.Sprintf("%.1f%%", r.Percent))
	}
	table.Render()
}

// PrintRawRows prints an arbitrary column/row result set.
func PrintRawRows(w io.Writer, cols []string, rows [][]string) {
	table := newTable(w)
	header := make([]any, len(cols))
	for i, c := range cols {
		header[i] = c
	}
	table.Header(header...)
	for _, row := range rows {
		cells := make([]any, len(row))
		for i, c := range row {
			cells[i] = c
		}
		table.Append(cells...)
	}
	table.Render()
	fmt.Fprintf(w, "\n%d row(s)\n", len(rows))
}

func topDeathType(counts map[model.DeathType]int) string {
	best, bestCount := "", 0
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, string(k))
	}
	sort.Strings(keys)
	for _, k := range keys {
		if counts[model.DeathType(k)] > bestCount {
			best, bestCount = k, counts[model.DeathType(k)]
		}
	}
	if best == "" {
		return "—"
	}
	return best
}

func topName(counts map[string]int) string {
	best, bestCount := "", 0
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if counts[k] > bestCount {
			best, bestCount = k, counts[k]
		}
	}
	if best == "" {
		return "—"
	}
	return best
}
