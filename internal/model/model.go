package model

import "time"

// Camp is the coarse faction a role belongs to. Solo roles use their role
// name as their camp, so the set of camps is open beyond these three.
type Camp string

const (
	CampVillageois Camp = "Villageois"
	CampLoup       Camp = "Loup"
	CampAmoureux   Camp = "Amoureux"
)

// Role is a specific in-game assignment, potentially more granular than a camp.
type Role string

const (
	// Villager camp.
	RoleVillageois      Role = "Villageois"
	RoleChasseur        Role = "Chasseur"
	RoleAlchimiste      Role = "Alchimiste"
	RoleChasseurElite   Role = "Chasseur élite"
	RoleAlchimisteElite Role = "Alchimiste élite"

	// Wolf camp.
	RoleLoup      Role = "Loup"
	RoleTraitre   Role = "Traître"
	RoleLouveteau Role = "Louveteau"

	// Lover variants.
	RoleAmoureux     Role = "Amoureux"
	RoleAmoureuxLoup Role = "Amoureux loup"

	// Solo roles, each its own camp.
	RoleAgent           Role = "Agent"
	RoleEspion          Role = "Espion"
	RoleScientifique    Role = "Scientifique"
	RoleLaBete          Role = "La Bête"
	RoleChasseurDePrime Role = "Chasseur de primes"
	RoleVaudou          Role = "Vaudou"
	RoleZombie          Role = "Zombie"
)

// DeathType is the closed taxonomy of kill/death causes.
type DeathType string

const (
	DeathVote       DeathType = "VOTE"
	DeathWolf       DeathType = "LOUP"
	DeathHunter     DeathType = "CHASSEUR"
	DeathBeast      DeathType = "BETE"
	DeathPotion     DeathType = "POTION"
	DeathAssassin   DeathType = "ASSASSINAT"
	DeathStarvation DeathType = "FAMINE"
	DeathFall       DeathType = "CHUTE"
	DeathAvatar     DeathType = "AVATAR"
	DeathCrushed    DeathType = "ECRASE"
	DeathUnknown    DeathType = "INCONNU"
)

// nonAttributable lists causes that are never credited to a killer, even
// when a killer name is present on the record.
var nonAttributable = map[DeathType]bool{
	DeathVote:       true,
	DeathStarvation: true,
	DeathFall:       true,
	DeathAvatar:     true,
}

// Attributable reports whether a death of this type is credited to a killer.
func (d DeathType) Attributable() bool {
	return d != "" && !nonAttributable[d]
}

// VoteAbstain is the sentinel target recorded when a player abstained.
const VoteAbstain = "abstain"

// Vote is one ballot cast (or abstained) at a given meeting. Meetings are
// 1-based.
type Vote struct {
	Meeting int
	Target  string
}

// Abstained reports whether this vote was an abstention.
func (v Vote) Abstained() bool { return v.Target == VoteAbstain }

// RoleChangeEvent records a mid-game role transition. The producer emits
// events in chronological order; Order is the 1-based occurrence rank.
type RoleChangeEvent struct {
	Role  Role
	Order int
}

// Action is a discrete in-game action (transform, shoot, ...) kept for
// per-game detail views.
type Action struct {
	Kind   string
	Target string
	Timing string
}

// PlayerStat is one player's participation in one game.
type PlayerStat struct {
	Username      string
	Role          Role // role assigned at game start
	RoleChanges   []RoleChangeEvent
	SecondaryRole Role
	Power         string
	Victorious    bool
	DeathTiming   string // phase+number code, empty when the player survived
	DeathType     DeathType
	KillerName    string
	Votes         []Vote
	Actions       []Action
}

// GameLogEntry is the full structured record of one played match. Entries
// are produced by the export pipeline and read-only from this engine's
// perspective.
type GameLogEntry struct {
	ID          string
	DisplayID   string
	StartedAt   time.Time
	EndedAt     time.Time
	MapName     string
	Modded      bool
	Version     string
	HarvestGoal int
	HarvestDone int
	EndTiming   string // phase+number code of the game's last phase
	VictoryType string // legacy classification, kept verbatim
	Players     []PlayerStat
}

// HarvestPercent returns the harvest completion percentage, or -1 when the
// goal is unset and the percentage is undefined.
func (g *GameLogEntry) HarvestPercent() float64 {
	if g.HarvestGoal <= 0 {
		return -1
	}
	return float64(g.HarvestDone) / float64(g.HarvestGoal) * 100
}

// Player returns the stat line for the given username, or nil.
func (g *GameLogEntry) Player(username string) *PlayerStat {
	for i := range g.Players {
		if g.Players[i].Username == username {
			return &g.Players[i]
		}
	}
	return nil
}

// MaxMeeting returns the highest meeting index any player voted in, which
// bounds the game's meeting count.
func (g *GameLogEntry) MaxMeeting() int {
	max := 0
	for i := range g.Players {
		for _, v := range g.Players[i].Votes {
			if v.Meeting > max {
				max = v.Meeting
			}
		}
	}
	return max
}
