package aggregator

import (
	"sort"

	"github.com/ponche/go-lycans-metrics/internal/model"
	"github.com/ponche/go-lycans-metrics/internal/roles"
)

// campBucket pools resolved camps into the three-way meeting split.
func campBucket(c model.Camp) model.CampBucket {
	switch c {
	case model.CampVillageois:
		return model.BucketVillageois
	case model.CampLoup:
		return model.BucketLoup
	default:
		return model.BucketSolo
	}
}

// aliveAtMeeting reports whether a player was still alive when meeting m
// convened. A player with no death timing survived the game; one voted out
// at meeting k attended meetings up to and including k; one who died during
// day or night d attended only meetings strictly before d. Malformed codes
// exclude the player from the metric.
func aliveAtMeeting(p *model.PlayerStat, m int) bool {
	if p.DeathTiming == "" {
		return true
	}
	t, ok := model.ParseTiming(p.DeathTiming)
	if !ok {
		return false
	}
	switch t.Phase {
	case model.PhaseMeeting:
		return m <= t.Number
	case model.PhaseDay, model.PhaseNight:
		return m < t.Number
	default:
		return false
	}
}

// votedOutAt reports whether the player was voted out at exactly meeting m.
func votedOutAt(p *model.PlayerStat, m int) bool {
	if p.DeathType != model.DeathVote {
		return false
	}
	t, ok := model.ParseTiming(p.DeathTiming)
	return ok && t.Phase == model.PhaseMeeting && t.Number == m
}

// ComputeMeetingSurvival measures how often players walk out of voting
// meetings alive, per player and per camp bucket. Players who never attended
// a meeting are excluded; their rate is undefined, not zero.
func ComputeMeetingSurvival(games []model.GameLogEntry, opts roles.Options) *model.MeetingSurvival {
	type accum struct {
		participated int
		died         int
	}
	byPlayer := make(map[string]*accum)
	byBucket := make(map[model.CampBucket]*accum)

	for gi := range games {
		g := &games[gi]
		maxMeeting := g.MaxMeeting()
		for m := 1; m <= maxMeeting; m++ {
			for pi := range g.Players {
				p := &g.Players[pi]
				if !aliveAtMeeting(p, m) {
					continue
				}
				pa := byPlayer[p.Username]
				if pa == nil {
					pa = &accum{}
					byPlayer[p.Username] = pa
				}
				bucket := campBucket(roles.PlayerCamp(p, opts))
				ba := byBucket[bucket]
				if ba == nil {
					ba = &accum{}
					byBucket[bucket] = ba
				}
				pa.participated++
				ba.participated++
				if votedOutAt(p, m) {
					pa.died++
					ba.died++
				}
			}
		}
	}

	out := &model.MeetingSurvival{Camps: make(map[model.CampBucket]model.CampMeetingStats)}
	for name, a := range byPlayer {
		if a.participated == 0 {
			continue
		}
		out.Players = append(out.Players, model.PlayerMeetingStats{
			Name:         name,
			Participated: a.participated,
			Died:         a.died,
			SurvivalRate: float64(a.participated-a.died) / float64(a.participated) * 100,
		})
	}
	sort.Slice(out.Players, func(i, j int) bool {
		if out.Players[i].SurvivalRate != out.Players[j].SurvivalRate {
			return out.Players[i].SurvivalRate > out.Players[j].SurvivalRate
		}
		return out.Players[i].Name < out.Players[j].Name
	})

	for bucket, a := range byBucket {
		if a.participated == 0 {
			continue
		}
		out.Camps[bucket] = model.CampMeetingStats{
			Participated: a.participated,
			Died:         a.died,
			SurvivalRate: float64(a.participated-a.died) / float64(a.participated) * 100,
		}
	}
	return out
}
