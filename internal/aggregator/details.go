package aggregator

import (
	"github.com/ponche/go-lycans-metrics/internal/model"
	"github.com/ponche/go-lycans-metrics/internal/roles"
)

// BuildGameDetails enriches one game record into the canonical detail view:
// decoded duration, harvest percentage, winning camp and per-player resolved
// roles and camps.
func BuildGameDetails(g *model.GameLogEntry, opts roles.Options) *model.GameDetails {
	out := &model.GameDetails{
		DisplayID:      g.DisplayID,
		StartedAt:      g.StartedAt,
		EndedAt:        g.EndedAt,
		MapName:        g.MapName,
		Modded:         g.Modded,
		Version:        g.Version,
		HarvestGoal:    g.HarvestGoal,
		HarvestDone:    g.HarvestDone,
		HarvestPercent: g.HarvestPercent(),
		Days:           g.DayCount(),
		EndTiming:      g.EndTiming,
		WinningCamp:    roles.WinningCamp(g),
	}
	for i := range g.Players {
		p := &g.Players[i]
		votes, abst := 0, 0
		for _, v := range p.Votes {
			if v.Abstained() {
				abst++
			} else {
				votes++
			}
		}
		out.Players = append(out.Players, model.PlayerDetails{
			Username:    p.Username,
			Role:        p.Role,
			FinalRole:   roles.PlayerFinalRole(p),
			Camp:        roles.PlayerCamp(p, opts),
			Victorious:  p.Victorious,
			DeathTiming: p.DeathTiming,
			DeathType:   p.DeathType,
			KillerName:  p.KillerName,
			VoteCount:   votes,
			Abstentions: abst,
		})
	}
	return out
}

// BuildGameSummary is the lightweight one-line analogue of BuildGameDetails.
func BuildGameSummary(g *model.GameLogEntry) model.GameSummary {
	return model.GameSummary{
		DisplayID:   g.DisplayID,
		StartedAt:   g.StartedAt,
		MapName:     g.MapName,
		Days:        g.DayCount(),
		WinningCamp: roles.WinningCamp(g),
		PlayerCount: len(g.Players),
		Modded:      g.Modded,
		Version:     g.Version,
	}
}
