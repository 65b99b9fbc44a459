package aggregator

import (
	"testing"

	"github.com/ponche/go-lycans-metrics/internal/model"
	"github.com/ponche/go-lycans-metrics/internal/roles"
)

// Test player names.
const (
	alice = "Alice"
	bob   = "Bob"
	chloe = "Chloé"
	denis = "Denis"
)

// makeGame builds a game with sequential ids and the given players.
func makeGame(id string, players ...model.PlayerStat) model.GameLogEntry {
	return model.GameLogEntry{ID: "int-" + id, DisplayID: id, MapName: "Village", Players: players}
}

func findKiller(s *model.DeathStats, name string) *model.KillerStats {
	for i := range s.Killers {
		if s.Killers[i].Name == name {
			return &s.Killers[i]
		}
	}
	return nil
}

func findVictim(s *model.DeathStats, name string) *model.VictimStats {
	for i := range s.Victims {
		if s.Victims[i].Name == name {
			return &s.Victims[i]
		}
	}
	return nil
}

// TestDeathStats_BasicKill: a wolf kill produces one death and one
// attributed kill under camp Loup.
func TestDeathStats_BasicKill(t *testing.T) {
	g := makeGame("G1",
		model.PlayerStat{Username: alice, Role: model.RoleLoup},
		model.PlayerStat{Username: bob, Role: model.RoleVillageois,
			DeathType: model.DeathWolf, DeathTiming: "N1", KillerName: alice},
	)
	s := ComputeDeathStats([]model.GameLogEntry{g}, "", roles.DefaultOptions())

	if s.TotalDeaths != 1 {
		t.Fatalf("TotalDeaths: want 1, got %d", s.TotalDeaths)
	}
	k := findKiller(s, alice)
	if k == nil {
		t.Fatal("Alice not found among killers")
	}
	if k.Kills != 1 || k.UniqueVictims != 1 {
		t.Errorf("Alice: want 1 kill / 1 unique victim, got %d/%d", k.Kills, k.UniqueVictims)
	}
	if k.ByCamp[model.CampLoup] != 1 {
		t.Errorf("kill should be attributed to Loup, got %v", k.ByCamp)
	}
	if s.KillsByCamp[model.CampLoup] != 1 {
		t.Errorf("KillsByCamp[Loup]: want 1, got %d", s.KillsByCamp[model.CampLoup])
	}
	if k.GamesPlayed != 1 || k.AvgKillsPerGame != 1.0 {
		t.Errorf("Alice: want 1 game / 1.0 avg, got %d/%.2f", k.GamesPlayed, k.AvgKillsPerGame)
	}
}

// TestDeathStats_InfectedKillerAttribution: a killer who started as a
// villager and finished as a wolf has the kill counted under Loup.
func TestDeathStats_InfectedKillerAttribution(t *testing.T) {
	g := makeGame("G1",
		model.PlayerStat{Username: alice, Role: model.RoleVillageois,
			RoleChanges: []model.RoleChangeEvent{{Role: model.RoleLoup, Order: 1}}},
		model.PlayerStat{Username: bob, Role: model.RoleVillageois,
			DeathType: model.DeathWolf, DeathTiming: "N2", KillerName: alice},
	)
	s := ComputeDeathStats([]model.GameLogEntry{g}, "", roles.DefaultOptions())

	k := findKiller(s, alice)
	if k == nil {
		t.Fatal("Alice not found among killers")
	}
	if k.ByCamp[model.CampLoup] != 1 {
		t.Errorf("infected killer: kill must count under Loup, got %v", k.ByCamp)
	}
	if k.ByCamp[model.CampVillageois] != 0 {
		t.Errorf("infected killer: no Villageois attribution expected, got %v", k.ByCamp)
	}
}

// TestDeathStats_HunterStaysVillageois: a role change inside the villager
// camp keeps start-of-game attribution.
func TestDeathStats_HunterStaysVillageois(t *testing.T) {
	g := makeGame("G1",
		model.PlayerStat{Username: alice, Role: model.RoleVillageois,
			RoleChanges: []model.RoleChangeEvent{{Role: model.RoleChasseur, Order: 1}}},
		model.PlayerStat{Username: bob, Role: model.RoleLoup,
			DeathType: model.DeathHunter, DeathTiming: "J2", KillerName: alice},
	)
	s := ComputeDeathStats([]model.GameLogEntry{g}, "", roles.DefaultOptions())

	k := findKiller(s, alice)
	if k == nil {
		t.Fatal("Alice not found among killers")
	}
	if k.ByCamp[model.CampVillageois] != 1 {
		t.Errorf("hunter kill must stay Villageois, got %v", k.ByCamp)
	}
}

// TestDeathStats_NonAttributableCauses: vote, starvation and fall deaths
// are counted as deaths but never credited to a killer.
func TestDeathStats_NonAttributableCauses(t *testing.T) {
	g := makeGame("G1",
		model.PlayerStat{Username: alice, Role: model.RoleLoup},
		model.PlayerStat{Username: bob, Role: model.RoleVillageois,
			DeathType: model.DeathVote, DeathTiming: "M1", KillerName: alice},
		model.PlayerStat{Username: chloe, Role: model.RoleVillageois,
			DeathType: model.DeathFall, DeathTiming: "J2", KillerName: alice},
	)
	s := ComputeDeathStats([]model.GameLogEntry{g}, "", roles.DefaultOptions())

	if s.TotalDeaths != 2 {
		t.Errorf("TotalDeaths: want 2, got %d", s.TotalDeaths)
	}
	if k := findKiller(s, alice); k != nil {
		t.Errorf("no kill should be credited, got %+v", k)
	}
}

// TestDeathStats_ZeroDeathPlayersListed: survivors who played games still
// appear among victims with zero deaths.
func TestDeathStats_ZeroDeathPlayersListed(t *testing.T) {
	g := makeGame("G1",
		model.PlayerStat{Username: alice, Role: model.RoleVillageois},
		model.PlayerStat{Username: bob, Role: model.RoleVillageois,
			DeathType: model.DeathWolf, DeathTiming: "N1", KillerName: chloe},
		model.PlayerStat{Username: chloe, Role: model.RoleLoup},
	)
	s := ComputeDeathStats([]model.GameLogEntry{g}, "", roles.DefaultOptions())

	v := findVictim(s, alice)
	if v == nil {
		t.Fatal("Alice (zero deaths) missing from victims")
	}
	if v.Deaths != 0 || v.GamesPlayed != 1 {
		t.Errorf("Alice: want 0 deaths / 1 game, got %d/%d", v.Deaths, v.GamesPlayed)
	}
}

// TestDeathStats_CampScope: a camp restriction scopes deaths, kills and the
// games-played denominators alike.
func TestDeathStats_CampScope(t *testing.T) {
	g1 := makeGame("G1",
		model.PlayerStat{Username: alice, Role: model.RoleLoup},
		model.PlayerStat{Username: bob, Role: model.RoleVillageois,
			DeathType: model.DeathWolf, DeathTiming: "N1", KillerName: alice},
	)
	// Alice plays villager in G2; that game must not count toward her
	// wolf-scoped games-played.
	g2 := makeGame("G2",
		model.PlayerStat{Username: alice, Role: model.RoleVillageois},
		model.PlayerStat{Username: bob, Role: model.RoleLoup},
	)
	s := ComputeDeathStats([]model.GameLogEntry{g1, g2}, "Loup", roles.DefaultOptions())

	if s.TotalDeaths != 0 {
		t.Errorf("no wolf died: want 0 deaths, got %d", s.TotalDeaths)
	}
	k := findKiller(s, alice)
	if k == nil {
		t.Fatal("Alice missing from wolf-scoped killers")
	}
	if k.GamesPlayed != 1 {
		t.Errorf("Alice wolf games: want 1, got %d", k.GamesPlayed)
	}
	if k.AvgKillsPerGame != 1.0 {
		t.Errorf("Alice avg kills/game: want 1.0, got %.2f", k.AvgKillsPerGame)
	}
}

// TestDeathStats_TypePercentages: percentages are relative to total deaths.
func TestDeathStats_TypePercentages(t *testing.T) {
	g := makeGame("G1",
		model.PlayerStat{Username: alice, Role: model.RoleLoup},
		model.PlayerStat{Username: bob, Role: model.RoleVillageois,
			DeathType: model.DeathWolf, DeathTiming: "N1", KillerName: alice},
		model.PlayerStat{Username: chloe, Role: model.RoleVillageois,
			DeathType: model.DeathWolf, DeathTiming: "N2", KillerName: alice},
		model.PlayerStat{Username: denis, Role: model.RoleVillageois,
			DeathType: model.DeathVote, DeathTiming: "M1"},
	)
	s := ComputeDeathStats([]model.GameLogEntry{g}, "", roles.DefaultOptions())

	if len(s.ByType) != 2 {
		t.Fatalf("want 2 death types, got %d", len(s.ByType))
	}
	// Sorted by count desc: wolf kills first.
	if s.ByType[0].Type != model.DeathWolf || s.ByType[0].Count != 2 {
		t.Errorf("top type: want LOUP x2, got %s x%d", s.ByType[0].Type, s.ByType[0].Count)
	}
	wantPct := 2.0 / 3.0 * 100
	if diff := s.ByType[0].Percent - wantPct; diff > 0.001 || diff < -0.001 {
		t.Errorf("top type percent: want %.2f, got %.2f", wantPct, s.ByType[0].Percent)
	}
}
