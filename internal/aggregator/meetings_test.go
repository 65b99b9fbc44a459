package aggregator

import (
	"testing"

	"github.com/ponche/go-lycans-metrics/internal/model"
	"github.com/ponche/go-lycans-metrics/internal/roles"
)

// votes builds a vote list targeting name at meetings 1..n.
func votes(n int, target string) []model.Vote {
	out := make([]model.Vote, n)
	for i := range out {
		out[i] = model.Vote{Meeting: i + 1, Target: target}
	}
	return out
}

func findMeetingPlayer(s *model.MeetingSurvival, name string) *model.PlayerMeetingStats {
	for i := range s.Players {
		if s.Players[i].Name == name {
			return &s.Players[i]
		}
	}
	return nil
}

// A game with two meetings: a player voted out at M1 participated once,
// died once, 0% survival, and is not counted at M2.
func TestMeetingSurvival_VotedOutAtFirstMeeting(t *testing.T) {
	g := makeGame("G1",
		model.PlayerStat{Username: alice, Role: model.RoleVillageois,
			DeathType: model.DeathVote, DeathTiming: "M1",
			Votes: votes(1, bob)},
		model.PlayerStat{Username: bob, Role: model.RoleLoup,
			Votes: votes(2, alice)},
	)
	s := ComputeMeetingSurvival([]model.GameLogEntry{g}, roles.DefaultOptions())

	a := findMeetingPlayer(s, alice)
	if a == nil {
		t.Fatal("Alice missing from meeting stats")
	}
	if a.Participated != 1 || a.Died != 1 {
		t.Errorf("Alice: want participated=1 died=1, got %d/%d", a.Participated, a.Died)
	}
	if a.SurvivalRate != 0 {
		t.Errorf("Alice survival rate: want 0, got %.1f", a.SurvivalRate)
	}

	b := findMeetingPlayer(s, bob)
	if b == nil {
		t.Fatal("Bob missing from meeting stats")
	}
	if b.Participated != 2 || b.Died != 0 {
		t.Errorf("Bob: want participated=2 died=0, got %d/%d", b.Participated, b.Died)
	}
	if b.SurvivalRate != 100 {
		t.Errorf("Bob survival rate: want 100, got %.1f", b.SurvivalRate)
	}
}

// TestMeetingSurvival_NightDeathBeforeMeeting: a player killed in night d
// attends only meetings strictly before d.
func TestMeetingSurvival_NightDeathBeforeMeeting(t *testing.T) {
	// Two meetings exist; Chloé dies night 2, so she attends meeting 1 only.
	g := makeGame("G1",
		model.PlayerStat{Username: alice, Role: model.RoleVillageois, Votes: votes(2, chloe)},
		model.PlayerStat{Username: chloe, Role: model.RoleVillageois,
			DeathType: model.DeathWolf, DeathTiming: "N2",
			Votes: votes(1, alice)},
	)
	s := ComputeMeetingSurvival([]model.GameLogEntry{g}, roles.DefaultOptions())

	c := findMeetingPlayer(s, chloe)
	if c == nil {
		t.Fatal("Chloé missing from meeting stats")
	}
	if c.Participated != 1 {
		t.Errorf("Chloé: want participated=1, got %d", c.Participated)
	}
	if c.Died != 0 {
		t.Errorf("Chloé died at night, not at a meeting: got died=%d", c.Died)
	}
	if c.SurvivalRate != 100 {
		t.Errorf("Chloé survival rate: want 100, got %.1f", c.SurvivalRate)
	}
}

// TestMeetingSurvival_ZeroParticipationExcluded: a player dead before any
// meeting has no row at all, rather than a 0% one.
func TestMeetingSurvival_ZeroParticipationExcluded(t *testing.T) {
	g := makeGame("G1",
		model.PlayerStat{Username: alice, Role: model.RoleVillageois, Votes: votes(1, bob)},
		model.PlayerStat{Username: denis, Role: model.RoleVillageois,
			DeathType: model.DeathWolf, DeathTiming: "N1"},
	)
	s := ComputeMeetingSurvival([]model.GameLogEntry{g}, roles.DefaultOptions())

	if findMeetingPlayer(s, denis) != nil {
		t.Error("Denis never attended a meeting and must be excluded")
	}
}

// TestMeetingSurvival_CampBuckets: participation splits into Villageois,
// Loup and Solo buckets by resolved camp.
func TestMeetingSurvival_CampBuckets(t *testing.T) {
	g := makeGame("G1",
		model.PlayerStat{Username: alice, Role: model.RoleVillageois, Votes: votes(1, bob)},
		model.PlayerStat{Username: bob, Role: model.RoleLoup, Votes: votes(1, alice)},
		model.PlayerStat{Username: chloe, Role: model.RoleAgent, Votes: votes(1, alice)},
	)
	s := ComputeMeetingSurvival([]model.GameLogEntry{g}, roles.DefaultOptions())

	if s.Camps[model.BucketVillageois].Participated != 1 {
		t.Errorf("Villageois bucket: want 1, got %d", s.Camps[model.BucketVillageois].Participated)
	}
	if s.Camps[model.BucketLoup].Participated != 1 {
		t.Errorf("Loup bucket: want 1, got %d", s.Camps[model.BucketLoup].Participated)
	}
	if s.Camps[model.BucketSolo].Participated != 1 {
		t.Errorf("Solo bucket: want 1, got %d", s.Camps[model.BucketSolo].Participated)
	}
}

// TestMeetingSurvival_RateBounds: rates always land in [0, 100].
func TestMeetingSurvival_RateBounds(t *testing.T) {
	g1 := makeGame("G1",
		model.PlayerStat{Username: alice, Role: model.RoleVillageois, Votes: votes(3, bob)},
		model.PlayerStat{Username: bob, Role: model.RoleLoup,
			DeathType: model.DeathVote, DeathTiming: "M3",
			Votes: votes(3, alice)},
	)
	s := ComputeMeetingSurvival([]model.GameLogEntry{g1}, roles.DefaultOptions())
	for _, p := range s.Players {
		if p.SurvivalRate < 0 || p.SurvivalRate > 100 {
			t.Errorf("%s: survival rate %.1f out of bounds", p.Name, p.SurvivalRate)
		}
	}
}
