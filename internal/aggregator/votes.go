package aggregator

import (
	"sort"

	"github.com/ponche/go-lycans-metrics/internal/model"
	"github.com/ponche/go-lycans-metrics/internal/roles"
)

// AnalyzeGameVotes breaks one game down meeting by meeting: participation,
// abstentions, the most-targeted player and the consensus level.
func AnalyzeGameVotes(g *model.GameLogEntry) *model.GameVoteAnalysis {
	out := &model.GameVoteAnalysis{DisplayID: g.DisplayID}
	maxMeeting := g.MaxMeeting()

	for m := 1; m <= maxMeeting; m++ {
		ms := model.MeetingVoteStats{Meeting: m}
		targetVotes := make(map[string]int)

		for pi := range g.Players {
			for _, v := range g.Players[pi].Votes {
				if v.Meeting != m {
					continue
				}
				ms.Participants++
				if v.Abstained() {
					ms.Abstainers++
				} else {
					ms.Voters++
					targetVotes[v.Target]++
				}
			}
		}
		if ms.Participants == 0 {
			continue
		}
		ms.ParticipationRate = float64(ms.Voters) / float64(ms.Participants) * 100
		ms.TopTarget, ms.TopTargetVotes = topEntry(targetVotes)
		for _, n := range targetVotes {
			ms.TotalVotes += n
		}
		if ms.TotalVotes > 0 {
			ms.ConsensusLevel = float64(ms.TopTargetVotes) / float64(ms.TotalVotes) * 100
		}
		out.Meetings = append(out.Meetings, ms)
	}
	return out
}

// ComputeVotingBehavior aggregates individual vote and abstention events
// across games into per-player behavior and per-target pressure statistics.
func ComputeVotingBehavior(games []model.GameLogEntry, opts roles.Options) *model.VotingBehavior {
	type voterAccum struct {
		votes, abstentions               int
		targets                          map[string]int
		asVillageois, asLoup, asOther    int
	}
	type targetAccum struct {
		times     int
		byVoter   map[string]int
		byBucket  map[model.CampBucket]int
		gamesSeen map[string]bool
	}
	voters := make(map[string]*voterAccum)
	targets := make(map[string]*targetAccum)

	for gi := range games {
		g := &games[gi]
		for pi := range g.Players {
			p := &g.Players[pi]
			if len(p.Votes) == 0 {
				continue
			}
			va := voters[p.Username]
			if va == nil {
				va = &voterAccum{targets: make(map[string]int)}
				voters[p.Username] = va
			}
			bucket := campBucket(roles.PlayerCamp(p, opts))

			for _, v := range p.Votes {
				if v.Abstained() {
					va.abstentions++
					continue
				}
				va.votes++
				va.targets[v.Target]++
				switch bucket {
				case model.BucketVillageois:
					va.asVillageois++
				case model.BucketLoup:
					va.asLoup++
				default:
					va.asOther++
				}

				ta := targets[v.Target]
				if ta == nil {
					ta = &targetAccum{
						byVoter:   make(map[string]int),
						byBucket:  make(map[model.CampBucket]int),
						gamesSeen: make(map[string]bool),
					}
					targets[v.Target] = ta
				}
				ta.times++
				ta.byVoter[p.Username]++
				ta.byBucket[bucket]++
				ta.gamesSeen[g.ID] = true
			}
		}
	}

	out := &model.VotingBehavior{}
	for name, va := range voters {
		total := va.votes + va.abstentions
		rate := 0.0
		if total > 0 {
			rate = float64(va.votes) / float64(total) * 100
		}
		top, _ := topEntry(va.targets)
		out.Players = append(out.Players, model.PlayerVotingStats{
			Name:              name,
			Votes:             va.votes,
			Abstentions:       va.abstentions,
			ParticipationRate: rate,
			TargetCounts:      va.targets,
			TopTarget:         top,
			DistinctTargets:   len(va.targets),
			AsVillageois:      va.asVillageois,
			AsLoup:            va.asLoup,
			AsOther:           va.asOther,
		})
	}
	sort.Slice(out.Players, func(i, j int) bool {
		if out.Players[i].Votes != out.Players[j].Votes {
			return out.Players[i].Votes > out.Players[j].Votes
		}
		return out.Players[i].Name < out.Players[j].Name
	})

	for name, ta := range targets {
		pressure := 0.0
		if len(ta.gamesSeen) > 0 {
			pressure = float64(ta.times) / float64(len(ta.gamesSeen))
		}
		top, _ := topEntry(ta.byVoter)
		out.Targets = append(out.Targets, model.TargetStats{
			Name:          name,
			TimesTargeted: ta.times,
			ByAttacker:    ta.byVoter,
			ByBucket:      ta.byBucket,
			GamesTargeted: len(ta.gamesSeen),
			Pressure:      pressure,
			TopAttacker:   top,
		})
	}
	sort.Slice(out.Targets, func(i, j int) bool {
		if out.Targets[i].TimesTargeted != out.Targets[j].TimesTargeted {
			return out.Targets[i].TimesTargeted > out.Targets[j].TimesTargeted
		}
		return out.Targets[i].Name < out.Targets[j].Name
	})

	return out
}

// topEntry returns the key with the highest count, breaking ties on the
// smallest key so the result never depends on map iteration order.
func topEntry(counts map[string]int) (string, int) {
	best, bestN := "", -1
	for k, n := range counts {
		if n > bestN || (n == bestN && k < best) {
			best, bestN = k, n
		}
	}
	if bestN < 0 {
		return "", 0
	}
	return best, bestN
}
