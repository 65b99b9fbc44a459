// Package roles resolves a player's authoritative role and camp at any point
// of a game: final role from the ordered role-change list, camp from a closed
// role table under configurable regrouping, and a game's winning camp from
// the victors' resolved camps.
package roles

import (
	"github.com/ponche/go-lycans-metrics/internal/model"
)

// Options controls how granular roles collapse into camps.
type Options struct {
	RegroupLovers       bool
	RegroupVillagers    bool
	RegroupWolfSubRoles bool
}

// DefaultOptions regroups everything, which is what every headline statistic
// uses.
func DefaultOptions() Options {
	return Options{RegroupLovers: true, RegroupVillagers: true, RegroupWolfSubRoles: true}
}

// FinalRole resolves the role a player held at game end. With no recorded
// change the initial role stands, garbage included; the function is total.
func FinalRole(initial model.Role, changes []model.RoleChangeEvent) model.Role {
	if len(changes) == 0 {
		return initial
	}
	return changes[len(changes)-1].Role
}

// PlayerFinalRole is FinalRole applied to a stat line.
func PlayerFinalRole(p *model.PlayerStat) model.Role {
	return FinalRole(p.Role, p.RoleChanges)
}

// campByRole is the single exhaustive role→camp table. Solo roles are
// intentionally absent: their camp is their role name.
var campByRole = map[model.Role]model.Camp{
	model.RoleVillageois:      model.CampVillageois,
	model.RoleChasseur:        model.CampVillageois,
	model.RoleAlchimiste:      model.CampVillageois,
	model.RoleChasseurElite:   model.CampVillageois,
	model.RoleAlchimisteElite: model.CampVillageois,

	model.RoleLoup:      model.CampLoup,
	model.RoleTraitre:   model.CampLoup,
	model.RoleLouveteau: model.CampLoup,

	model.RoleAmoureux:     model.CampAmoureux,
	model.RoleAmoureuxLoup: model.CampAmoureux,
}

// wolfSubRoles keep their own name when wolf regrouping is off.
var wolfSubRoles = map[model.Role]bool{
	model.RoleTraitre:   true,
	model.RoleLouveteau: true,
}

// villagerSubRoles keep their own name when villager regrouping is off.
var villagerSubRoles = map[model.Role]bool{
	model.RoleChasseur:        true,
	model.RoleAlchimiste:      true,
	model.RoleChasseurElite:   true,
	model.RoleAlchimisteElite: true,
}

// loverVariants keep their own name when lover regrouping is off.
var loverVariants = map[model.Role]bool{
	model.RoleAmoureux:     true,
	model.RoleAmoureuxLoup: true,
}

// soloRoles are their own one-player camps.
var soloRoles = map[model.Role]bool{
	model.RoleAgent:           true,
	model.RoleEspion:          true,
	model.RoleScientifique:    true,
	model.RoleLaBete:          true,
	model.RoleChasseurDePrime: true,
	model.RoleVaudou:          true,
	model.RoleZombie:          true,
}

// zombieRoles get kill-attribution priority when acquired mid-game.
var zombieRoles = map[model.Role]bool{
	model.RoleZombie: true,
}

// IsSolo reports whether the role plays for itself rather than a camp.
func IsSolo(r model.Role) bool { return soloRoles[r] }

// IsZombie reports whether the role is zombie-typed.
func IsZombie(r model.Role) bool { return zombieRoles[r] }

// CampOf maps a role to its camp under the given regrouping options.
// Unknown roles classify as Villageois; the vocabulary evolves with the game
// and an unrecognized role is an approximation, not an error.
func CampOf(role model.Role, opts Options) model.Camp {
	if !opts.RegroupWolfSubRoles && wolfSubRoles[role] {
		return model.Camp(role)
	}
	if !opts.RegroupVillagers && villagerSubRoles[role] {
		return model.Camp(role)
	}
	if !opts.RegroupLovers && loverVariants[role] {
		return model.Camp(role)
	}
	if soloRoles[role] {
		return model.Camp(role)
	}
	if c, ok := campByRole[role]; ok {
		return c
	}
	return model.CampVillageois
}

// PlayerCamp resolves a player's camp at game end.
func PlayerCamp(p *model.PlayerStat, opts Options) model.Camp {
	return CampOf(PlayerFinalRole(p), opts)
}

// WinningCamp derives a game's winning camp: the modal resolved camp among
// victorious players, with full regrouping. Ties break on the
// lexicographically smallest camp name so the result is order-independent.
// A game with no victor defaults to Villageois.
func WinningCamp(g *model.GameLogEntry) model.Camp {
	counts := make(map[model.Camp]int)
	for i := range g.Players {
		if !g.Players[i].Victorious {
			continue
		}
		counts[PlayerCamp(&g.Players[i], DefaultOptions())]++
	}
	if len(counts) == 0 {
		return model.CampVillageois
	}
	var best model.Camp
	bestCount := -1
	for c, n := range counts {
		if n > bestCount || (n == bestCount && c < best) {
			best, bestCount = c, n
		}
	}
	return best
}
