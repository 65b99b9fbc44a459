package roles

import (
	"testing"

	"github.com/ponche/go-lycans-metrics/internal/model"
)

// TestFinalRole_NoChanges: with no role change the initial role stands,
// including an empty or unknown one.
func TestFinalRole_NoChanges(t *testing.T) {
	if got := FinalRole(model.RoleChasseur, nil); got != model.RoleChasseur {
		t.Errorf("FinalRole: want Chasseur, got %q", got)
	}
	if got := FinalRole(model.Role(""), nil); got != "" {
		t.Errorf("FinalRole: empty role should pass through, got %q", got)
	}
	if got := FinalRole(model.Role("???"), nil); got != "???" {
		t.Errorf("FinalRole: garbage role should pass through, got %q", got)
	}
}

// TestFinalRole_LastChangeWins: the resolved role is the last event's role.
func TestFinalRole_LastChangeWins(t *testing.T) {
	changes := []model.RoleChangeEvent{
		{Role: model.RoleLoup, Order: 1},
		{Role: model.RoleZombie, Order: 2},
	}
	if got := FinalRole(model.RoleVillageois, changes); got != model.RoleZombie {
		t.Errorf("FinalRole: want Zombie, got %q", got)
	}
}

// TestCampOf_Regrouped: sub-roles collapse into their camp with default options.
func TestCampOf_Regrouped(t *testing.T) {
	opts := DefaultOptions()
	cases := []struct {
		role model.Role
		want model.Camp
	}{
		{model.RoleVillageois, model.CampVillageois},
		{model.RoleChasseur, model.CampVillageois},
		{model.RoleAlchimisteElite, model.CampVillageois},
		{model.RoleLoup, model.CampLoup},
		{model.RoleTraitre, model.CampLoup},
		{model.RoleLouveteau, model.CampLoup},
		{model.RoleAmoureux, model.CampAmoureux},
		{model.RoleAmoureuxLoup, model.CampAmoureux},
		{model.RoleAgent, model.Camp("Agent")},
		{model.RoleZombie, model.Camp("Zombie")},
	}
	for _, c := range cases {
		if got := CampOf(c.role, opts); got != c.want {
			t.Errorf("CampOf(%q): want %q, got %q", c.role, c.want, got)
		}
	}
}

// TestCampOf_SubRoleGranularity: disabling a regroup flag keeps the sub-role
// name verbatim, and only for that family.
func TestCampOf_SubRoleGranularity(t *testing.T) {
	opts := DefaultOptions()
	opts.RegroupWolfSubRoles = false
	if got := CampOf(model.RoleTraitre, opts); got != model.Camp("Traître") {
		t.Errorf("Traître without wolf regroup: got %q", got)
	}
	if got := CampOf(model.RoleLoup, opts); got != model.CampLoup {
		t.Errorf("plain Loup must stay Loup, got %q", got)
	}
	if got := CampOf(model.RoleChasseur, opts); got != model.CampVillageois {
		t.Errorf("villager regroup untouched: got %q", got)
	}

	opts = DefaultOptions()
	opts.RegroupVillagers = false
	if got := CampOf(model.RoleChasseur, opts); got != model.Camp("Chasseur") {
		t.Errorf("Chasseur without villager regroup: got %q", got)
	}

	opts = DefaultOptions()
	opts.RegroupLovers = false
	if got := CampOf(model.RoleAmoureuxLoup, opts); got != model.Camp("Amoureux loup") {
		t.Errorf("lover variant without regroup: got %q", got)
	}
}

// TestCampOf_UnknownRoleDefaultsToVillageois: open vocabulary fallback.
func TestCampOf_UnknownRoleDefaultsToVillageois(t *testing.T) {
	if got := CampOf(model.Role("Boulanger"), DefaultOptions()); got != model.CampVillageois {
		t.Errorf("unknown role: want Villageois, got %q", got)
	}
}

// TestWinningCamp_Unanimous: when every victor shares a camp, that camp wins.
func TestWinningCamp_Unanimous(t *testing.T) {
	g := &model.GameLogEntry{Players: []model.PlayerStat{
		{Username: "a", Role: model.RoleLoup, Victorious: true},
		{Username: "b", Role: model.RoleTraitre, Victorious: true},
		{Username: "c", Role: model.RoleVillageois},
	}}
	if got := WinningCamp(g); got != model.CampLoup {
		t.Errorf("WinningCamp: want Loup, got %q", got)
	}
}

// TestWinningCamp_Modal: majority camp among victors wins.
func TestWinningCamp_Modal(t *testing.T) {
	g := &model.GameLogEntry{Players: []model.PlayerStat{
		{Username: "a", Role: model.RoleVillageois, Victorious: true},
		{Username: "b", Role: model.RoleChasseur, Victorious: true},
		{Username: "c", Role: model.RoleAgent, Victorious: true},
	}}
	if got := WinningCamp(g); got != model.CampVillageois {
		t.Errorf("WinningCamp: want Villageois, got %q", got)
	}
}

// TestWinningCamp_TieBreak: equal counts break on the smallest camp name,
// independent of player order.
func TestWinningCamp_TieBreak(t *testing.T) {
	g := &model.GameLogEntry{Players: []model.PlayerStat{
		{Username: "a", Role: model.RoleVillageois, Victorious: true},
		{Username: "b", Role: model.RoleLoup, Victorious: true},
	}}
	// "Loup" < "Villageois".
	if got := WinningCamp(g); got != model.CampLoup {
		t.Errorf("WinningCamp tie: want Loup, got %q", got)
	}
	// Reversed order gives the same answer.
	g.Players[0], g.Players[1] = g.Players[1], g.Players[0]
	if got := WinningCamp(g); got != model.CampLoup {
		t.Errorf("WinningCamp tie (reversed): want Loup, got %q", got)
	}
}

// TestWinningCamp_NoVictors: defaults to Villageois.
func TestWinningCamp_NoVictors(t *testing.T) {
	g := &model.GameLogEntry{Players: []model.PlayerStat{
		{Username: "a", Role: model.RoleLoup},
	}}
	if got := WinningCamp(g); got != model.CampVillageois {
		t.Errorf("WinningCamp: want Villageois default, got %q", got)
	}
}

// TestWinningCamp_InfectedVictor: a villager turned wolf wins as Loup.
func TestWinningCamp_InfectedVictor(t *testing.T) {
	g := &model.GameLogEntry{Players: []model.PlayerStat{
		{
			Username:    "a",
			Role:        model.RoleVillageois,
			RoleChanges: []model.RoleChangeEvent{{Role: model.RoleLoup, Order: 1}},
			Victorious:  true,
		},
	}}
	if got := WinningCamp(g); got != model.CampLoup {
		t.Errorf("WinningCamp: want Loup for infected victor, got %q", got)
	}
}
