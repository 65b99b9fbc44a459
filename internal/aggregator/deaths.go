// Package aggregator folds a (filtered) game corpus into independent
// statistical summaries: deaths and kills, meeting survival, and voting
// behavior. Every function is a pure transformation of its inputs and
// allocates its result from scratch.
package aggregator

import (
	"sort"

	"github.com/ponche/go-lycans-metrics/internal/model"
	"github.com/ponche/go-lycans-metrics/internal/roles"
)

// killAttributionCamp decides which camp a kill is credited to. The killer's
// camp at game start applies, unless the killer changed role mid-game into a
// wolf or a zombie-typed role: an infected villager's kills belong to the
// wolves.
func killAttributionCamp(k *model.PlayerStat, opts roles.Options) model.Camp {
	final := roles.PlayerFinalRole(k)
	if final != k.Role && (final == model.RoleLoup || roles.IsZombie(final)) {
		return roles.CampOf(final, opts)
	}
	return roles.CampOf(k.Role, opts)
}

// ComputeDeathStats builds killer/victim/death-type statistics from games.
// A non-empty camp restricts death records to players of that resolved camp,
// kill records to killers of that camp, and the games-played denominators to
// the same scope.
func ComputeDeathStats(games []model.GameLogEntry, camp string, opts roles.Options) *model.DeathStats {
	inScope := func(p *model.PlayerStat) bool {
		return camp == "" || roles.PlayerCamp(p, opts) == model.Camp(camp)
	}

	typeCounts := make(map[model.DeathType]int)
	killsByCamp := make(map[model.Camp]int)
	killers := make(map[string]*model.KillerStats)
	killerVictims := make(map[string]map[string]bool)
	victims := make(map[string]*model.VictimStats)
	gamesPlayed := make(map[string]int)
	totalDeaths := 0

	getKiller := func(name string) *model.KillerStats {
		k := killers[name]
		if k == nil {
			k = &model.KillerStats{
				Name:   name,
				ByType: make(map[model.DeathType]int),
				ByCamp: make(map[model.Camp]int),
			}
			killers[name] = k
			killerVictims[name] = make(map[string]bool)
		}
		return k
	}
	getVictim := func(name string) *model.VictimStats {
		v := victims[name]
		if v == nil {
			v = &model.VictimStats{
				Name:     name,
				ByType:   make(map[model.DeathType]int),
				KilledBy: make(map[string]int),
			}
			victims[name] = v
		}
		return v
	}

	for gi := range games {
		g := &games[gi]
		for pi := range g.Players {
			p := &g.Players[pi]
			if inScope(p) {
				gamesPlayed[p.Username]++
			}

			// One death record per player with a recorded cause.
			if p.DeathType != "" && inScope(p) {
				totalDeaths++
				typeCounts[p.DeathType]++
				v := getVictim(p.Username)
				v.Deaths++
				v.ByType[p.DeathType]++
				if p.KillerName != "" {
					v.KilledBy[p.KillerName]++
				}
			}

			// One kill record per attributable death with a named killer.
			if p.KillerName != "" && p.DeathType.Attributable() {
				killer := g.Player(p.KillerName)
				if camp != "" && (killer == nil || !inScope(killer)) {
					continue
				}
				k := getKiller(p.KillerName)
				k.Kills++
				k.ByType[p.DeathType]++
				killerVictims[p.KillerName][p.Username] = true
				if killer != nil {
					attr := killAttributionCamp(killer, opts)
					k.ByCamp[attr]++
					killsByCamp[attr]++
				}
			}
		}
	}

	// Zero-death players who played in-scope games still get a victim row.
	for name := range gamesPlayed {
		getVictim(name)
	}

	out := &model.DeathStats{
		TotalDeaths: totalDeaths,
		KillsByCamp: killsByCamp,
	}

	for dt, n := range typeCounts {
		pct := 0.0
		if totalDeaths > 0 {
			pct = float64(n) / float64(totalDeaths) * 100
		}
		out.ByType = append(out.ByType, model.DeathTypeCount{Type: dt, Count: n, Percent: pct})
	}
	sort.Slice(out.ByType, func(i, j int) bool {
		if out.ByType[i].Count != out.ByType[j].Count {
			return out.ByType[i].Count > out.ByType[j].Count
		}
		return out.ByType[i].Type < out.ByType[j].Type
	})

	for name, k := range killers {
		k.UniqueVictims = len(killerVictims[name])
		k.GamesPlayed = gamesPlayed[name]
		if k.GamesPlayed > 0 {
			k.AvgKillsPerGame = float64(k.Kills) / float64(k.GamesPlayed)
		}
		out.Killers = append(out.Killers, *k)
	}
	sort.Slice(out.Killers, func(i, j int) bool {
		if out.Killers[i].Kills != out.Killers[j].Kills {
			return out.Killers[i].Kills > out.Killers[j].Kills
		}
		return out.Killers[i].Name < out.Killers[j].Name
	})

	for name, v := range victims {
		v.GamesPlayed = gamesPlayed[name]
		out.Victims = append(out.Victims, *v)
	}
	sort.Slice(out.Victims, func(i, j int) bool {
		if out.Victims[i].Deaths != out.Victims[j].Deaths {
			return out.Victims[i].Deaths > out.Victims[j].Deaths
		}
		return out.Victims[i].Name < out.Victims[j].Name
	})

	return out
}
