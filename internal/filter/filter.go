// Package filter narrows a game corpus through a multi-dimensional filter
// specification. Each dimension compiles to an independent predicate; a game
// is kept when every predicate accepts it, and the input order is preserved.
// Malformed or unrecognized filter values match nothing rather than failing.
package filter

import (
	"strconv"
	"time"

	"github.com/ponche/go-lycans-metrics/internal/model"
	"github.com/ponche/go-lycans-metrics/internal/roles"
)

// WinMode selects between every assignment of a player/camp and winning ones.
type WinMode string

const (
	WinModeAll  WinMode = "all-assignments"
	WinModeWins WinMode = "wins-only"
)

// CampOther is the bucket name matching any of the configured small camps.
const CampOther = "Autres"

// CampFilter selects games by camp. With a player bound elsewhere in the
// filter set it compares that player's resolved camp; otherwise it compares
// the winning camp (wins-only) or any player's camp (all-assignments).
type CampFilter struct {
	Camp string
	Mode WinMode
	// ExcludeWolfSubRoles compares at sub-role granularity, so Traître no
	// longer counts as Loup. ExcludeVillagers does the same for villager
	// sub-roles.
	ExcludeWolfSubRoles bool
	ExcludeVillagers    bool
	// SmallCamps is the caller-supplied list backing the CampOther bucket.
	SmallCamps []string
}

// PairRole names the two supported player-pair relations.
type PairRole string

const (
	PairWolves PairRole = "wolves"
	PairLovers PairRole = "lovers"
)

// PairFilter keeps games where both players share the pair's camp.
type PairFilter struct {
	PlayerA string
	PlayerB string
	Role    PairRole
}

// MultiMode selects the multi-player comparison semantics.
type MultiMode string

const (
	MultiCommonGames   MultiMode = "all-common-games"
	MultiOpposingCamps MultiMode = "opposing-camps"
	MultiSameCamp      MultiMode = "same-camp"
)

// MultiFilter keeps games where every named player took part, further
// narrowed by the mode. Winner optionally names a player whose side must
// have won (mode-dependent, see the predicate).
type MultiFilter struct {
	Players []string
	Mode    MultiMode
	Winner  string
}

// Filters is the full filter specification. Zero-valued dimensions are
// no-ops.
type Filters struct {
	Player      string
	WinMode     WinMode
	GameID      string
	GameIDs     []string
	Camp        *CampFilter
	Date        string // DD/MM/YYYY for a day, MM/YYYY for a month
	Harvest     string // one of the harvest bands
	Days        string // exact day count
	MapName     string
	VictoryType string
	Pair        *PairFilter
	Multi       *MultiFilter
}

// Engine evaluates filter specifications against a corpus.
type Engine struct {
	opts        roles.Options
	primaryMaps []string
}

// NewEngine builds an engine. primaryMaps lists the named maps that the
// map-name filter's "other" bucket excludes.
func NewEngine(opts roles.Options, primaryMaps []string) *Engine {
	return &Engine{opts: opts, primaryMaps: primaryMaps}
}

type predicate func(g *model.GameLogEntry) bool

// none rejects everything; it is the compiled form of a malformed dimension.
func none(*model.GameLogEntry) bool { return false }

// Apply returns the order-preserving subset of games accepted by every
// dimension of f. The input slice is never mutated.
func (e *Engine) Apply(games []model.GameLogEntry, f Filters) []model.GameLogEntry {
	preds := e.compile(f)
	out := make([]model.GameLogEntry, 0, len(games))
	for i := range games {
		keep := true
		for _, p := range preds {
			if !p(&games[i]) {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, games[i])
		}
	}
	return out
}

// compile turns each present dimension into one predicate.
func (e *Engine) compile(f Filters) []predicate {
	var preds []predicate

	if f.Player != "" {
		preds = append(preds, e.playerPredicate(f.Player, f.WinMode))
	}
	if f.GameID != "" {
		id := f.GameID
		preds = append(preds, func(g *model.GameLogEntry) bool { return g.DisplayID == id })
	}
	if len(f.GameIDs) > 0 {
		set := make(map[string]bool, len(f.GameIDs))
		for _, id := range f.GameIDs {
			set[id] = true
		}
		preds = append(preds, func(g *model.GameLogEntry) bool { return set[g.DisplayID] })
	}
	if f.Camp != nil {
		preds = append(preds, e.campPredicate(f.Player, f.Camp))
	}
	if f.Date != "" {
		preds = append(preds, datePredicate(f.Date))
	}
	if f.Harvest != "" {
		bucket := f.Harvest
		preds = append(preds, func(g *model.GameLogEntry) bool {
			return model.HarvestBucket(g.HarvestPercent()) == bucket
		})
	}
	if f.Days != "" {
		preds = append(preds, daysPredicate(f.Days))
	}
	if f.MapName != "" {
		preds = append(preds, e.mapPredicate(f.MapName))
	}
	if f.VictoryType != "" {
		vt := f.VictoryType
		preds = append(preds, func(g *model.GameLogEntry) bool { return g.VictoryType == vt })
	}
	if f.Pair != nil {
		preds = append(preds, e.pairPredicate(f.Pair))
	}
	if f.Multi != nil && len(f.Multi.Players) > 0 {
		preds = append(preds, e.multiPredicate(f.Multi, f.Camp))
	}
	return preds
}

func (e *Engine) playerPredicate(name string, mode WinMode) predicate {
	return func(g *model.GameLogEntry) bool {
		p := g.Player(name)
		if p == nil {
			return false
		}
		if mode == WinModeWins {
			return p.Victorious
		}
		return true
	}
}

// campMatches compares a resolved camp against the filter target, routing
// the CampOther bucket through the small-camp list.
func campMatches(camp model.Camp, cf *CampFilter) bool {
	if cf.Camp == CampOther {
		for _, small := range cf.SmallCamps {
			if camp == model.Camp(small) {
				return true
			}
		}
		return false
	}
	return camp == model.Camp(cf.Camp)
}

// campOptions derives the regrouping granularity the camp filter compares at.
func (e *Engine) campOptions(cf *CampFilter) roles.Options {
	opts := e.opts
	if cf.ExcludeWolfSubRoles {
		opts.RegroupWolfSubRoles = false
	}
	if cf.ExcludeVillagers {
		opts.RegroupVillagers = false
	}
	return opts
}

func (e *Engine) campPredicate(boundPlayer string, cf *CampFilter) predicate {
	opts := e.campOptions(cf)

	if boundPlayer != "" {
		return func(g *model.GameLogEntry) bool {
			p := g.Player(boundPlayer)
			if p == nil {
				return false
			}
			return campMatches(roles.PlayerCamp(p, opts), cf)
		}
	}

	if cf.Mode == WinModeWins {
		return func(g *model.GameLogEntry) bool {
			return campMatches(roles.WinningCamp(g), cf)
		}
	}
	return func(g *model.GameLogEntry) bool {
		for i := range g.Players {
			if campMatches(roles.PlayerCamp(&g.Players[i], opts), cf) {
				return true
			}
		}
		return false
	}
}

// datePredicate matches an exact day (DD/MM/YYYY) or a month (MM/YYYY)
// depending on the string's shape, against the game's start timestamp.
func datePredicate(s string) predicate {
	if day, err := time.Parse("02/01/2006", s); err == nil {
		y, m, d := day.Date()
		return func(g *model.GameLogEntry) bool {
			gy, gm, gd := g.StartedAt.Date()
			return gy == y && gm == m && gd == d
		}
	}
	if month, err := time.Parse("01/2006", s); err == nil {
		y, m, _ := month.Date()
		return func(g *model.GameLogEntry) bool {
			gy, gm, _ := g.StartedAt.Date()
			return gy == y && gm == m
		}
	}
	return none
}

func daysPredicate(s string) predicate {
	days, err := strconv.Atoi(s)
	if err != nil || days < 1 {
		return none
	}
	return func(g *model.GameLogEntry) bool { return g.DayCount() == days }
}

// mapPredicate matches the map name exactly, or anything outside the
// configured primary maps for the "other" bucket.
func (e *Engine) mapPredicate(name string) predicate {
	if name == CampOther {
		primaries := e.primaryMaps
		return func(g *model.GameLogEntry) bool {
			for _, m := range primaries {
				if g.MapName == m {
					return false
				}
			}
			return true
		}
	}
	return func(g *model.GameLogEntry) bool { return g.MapName == name }
}

func (e *Engine) pairPredicate(pf *PairFilter) predicate {
	var want model.Camp
	switch pf.Role {
	case PairWolves:
		want = model.CampLoup
	case PairLovers:
		want = model.CampAmoureux
	default:
		return none
	}
	return func(g *model.GameLogEntry) bool {
		a, b := g.Player(pf.PlayerA), g.Player(pf.PlayerB)
		if a == nil || b == nil {
			return false
		}
		return roles.PlayerCamp(a, roles.DefaultOptions()) == want &&
			roles.PlayerCamp(b, roles.DefaultOptions()) == want
	}
}

func (e *Engine) multiPredicate(mf *MultiFilter, cf *CampFilter) predicate {
	players := mf.Players
	winner := mf.Winner

	switch mf.Mode {
	case MultiCommonGames, "":
		return func(g *model.GameLogEntry) bool {
			if !allPresent(g, players) {
				return false
			}
			if winner != "" {
				w := g.Player(winner)
				return w != nil && w.Victorious
			}
			return true
		}

	case MultiOpposingCamps:
		return func(g *model.GameLogEntry) bool {
			if !allPresent(g, players) {
				return false
			}
			camps := resolvedCamps(g, players)
			if !distinct(camps) {
				return false
			}
			if winner != "" {
				w := g.Player(winner)
				if w == nil {
					return false
				}
				return roles.PlayerCamp(w, roles.DefaultOptions()) == roles.WinningCamp(g)
			}
			return true
		}

	case MultiSameCamp:
		return func(g *model.GameLogEntry) bool {
			if !allPresent(g, players) {
				return false
			}
			camps := resolvedCamps(g, players)
			shared := camps[0]
			for _, c := range camps[1:] {
				if c != shared {
					return false
				}
			}
			if cf != nil && !campMatches(shared, cf) {
				return false
			}
			if winner != "" && roles.WinningCamp(g) != shared {
				return false
			}
			return true
		}
	}
	return none
}

func allPresent(g *model.GameLogEntry, players []string) bool {
	for _, name := range players {
		if g.Player(name) == nil {
			return false
		}
	}
	return true
}

// resolvedCamps resolves each named player's camp with sub-role
// normalization, so a wolf and a traitor compare as the same side.
func resolvedCamps(g *model.GameLogEntry, players []string) []model.Camp {
	camps := make([]model.Camp, len(players))
	for i, name := range players {
		camps[i] = roles.PlayerCamp(g.Player(name), roles.DefaultOptions())
	}
	return camps
}

// distinct reports whether at least two camps differ.
func distinct(camps []model.Camp) bool {
	for _, c := range camps[1:] {
		if c != camps[0] {
			return true
		}
	}
	return false
}
