// Package loader decodes the upstream game-log export into the canonical
// in-memory corpus. All legacy-format translation (old final-role column,
// map-shaped vote lists) happens here so the rest of the engine sees a
// single representation.
package loader

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/ponche/go-lycans-metrics/internal/model"
)

// Corpus is a decoded export: the games plus a content hash used as the
// idempotency key for imports.
type Corpus struct {
	Hash  string
	Games []model.GameLogEntry
}

// exportGame mirrors the export pipeline's JSON schema.
type exportGame struct {
	ID          string         `json:"id"`
	DisplayedID string         `json:"displayedId"`
	StartDate   string         `json:"startDate"`
	EndDate     string         `json:"endDate"`
	MapName     string         `json:"mapName"`
	Modded      bool           `json:"modded"`
	Version     string         `json:"version"`
	HarvestGoal int            `json:"harvestGoal"`
	Harvest     int            `json:"harvest"`
	EndTiming   string         `json:"endTiming"`
	VictoryType string         `json:"victoryType"`
	PlayerStats []exportPlayer `json:"playerStats"`
}

type exportPlayer struct {
	Username      string             `json:"username"`
	MainRole      string             `json:"mainRoleInitial"`
	RoleChanges   []exportRoleChange `json:"mainRoleChanges"`
	MainRoleFinal string             `json:"mainRoleFinal"` // legacy column
	SecondaryRole string             `json:"secondaryRole"`
	Power         string             `json:"power"`
	Victorious    bool               `json:"victorious"`
	DeathTiming   string             `json:"deathTiming"`
	DeathType     string             `json:"deathType"`
	KillerName    string             `json:"killerName"`
	Votes         json.RawMessage    `json:"votes"`
	Actions       []exportAction     `json:"actions"`
}

type exportRoleChange struct {
	Role  string `json:"role"`
	Order int    `json:"order"`
}

type exportVote struct {
	Meeting int    `json:"meeting"`
	Target  string `json:"target"`
}

type exportAction struct {
	Type   string `json:"type"`
	Target string `json:"target"`
	Timing string `json:"timing"`
}

// LoadFile reads and decodes an export file.
func LoadFile(path string) (*Corpus, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read export: %w", err)
	}
	return Load(data)
}

// Load decodes export bytes. The top level is the array of games.
func Load(data []byte) (*Corpus, error) {
	var exported []exportGame
	if err := json.Unmarshal(data, &exported); err != nil {
		return nil, fmt.Errorf("decode export: %w", err)
	}

	c := &Corpus{Hash: fmt.Sprintf("%x", sha256.Sum256(data))}
	for i := range exported {
		c.Games = append(c.Games, convertGame(&exported[i]))
	}
	return c, nil
}

// dateLayouts are tried in order; the export switched formats over time.
var dateLayouts = []string{
	time.RFC3339,
	"02/01/2006 15:04:05",
	"02/01/2006",
}

// parseDate returns the zero time for missing or unparseable dates, which
// date filters then simply never match.
func parseDate(s string) time.Time {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func convertGame(e *exportGame) model.GameLogEntry {
	g := model.GameLogEntry{
		ID:          e.ID,
		DisplayID:   e.DisplayedID,
		StartedAt:   parseDate(e.StartDate),
		EndedAt:     parseDate(e.EndDate),
		MapName:     e.MapName,
		Modded:      e.Modded,
		Version:     e.Version,
		HarvestGoal: e.HarvestGoal,
		HarvestDone: e.Harvest,
		EndTiming:   e.EndTiming,
		VictoryType: e.VictoryType,
	}
	for i := range e.PlayerStats {
		g.Players = append(g.Players, convertPlayer(&e.PlayerStats[i]))
	}
	return g
}

func convertPlayer(e *exportPlayer) model.PlayerStat {
	p := model.PlayerStat{
		Username:      e.Username,
		Role:          model.Role(e.MainRole),
		SecondaryRole: model.Role(e.SecondaryRole),
		Power:         e.Power,
		Victorious:    e.Victorious,
		DeathTiming:   e.DeathTiming,
		DeathType:     model.DeathType(e.DeathType),
		KillerName:    e.KillerName,
		Votes:         parseVotes(e.Votes),
	}
	for _, rc := range e.RoleChanges {
		p.RoleChanges = append(p.RoleChanges, model.RoleChangeEvent{
			Role:  model.Role(rc.Role),
			Order: rc.Order,
		})
	}
	// Legacy exports carried only a final-role column. Translate it into a
	// single change event so the resolver sees one shape.
	if len(p.RoleChanges) == 0 && e.MainRoleFinal != "" && e.MainRoleFinal != e.MainRole {
		p.RoleChanges = []model.RoleChangeEvent{{Role: model.Role(e.MainRoleFinal), Order: 1}}
	}
	for _, a := range e.Actions {
		p.Actions = append(p.Actions, model.Action{Kind: a.Type, Target: a.Target, Timing: a.Timing})
	}
	return p
}

// parseVotes accepts the current array shape and the legacy map shape
// ({"1": "target", "2": "abstain"}). Unparseable vote lists are dropped.
func parseVotes(raw json.RawMessage) []model.Vote {
	if len(raw) == 0 {
		return nil
	}

	var list []exportVote
	if err := json.Unmarshal(raw, &list); err == nil {
		out := make([]model.Vote, 0, len(list))
		for _, v := range list {
			if v.Meeting >= 1 {
				out = append(out, model.Vote{Meeting: v.Meeting, Target: v.Target})
			}
		}
		if len(out) == 0 {
			return nil
		}
		return out
	}

	var legacy map[string]string
	if err := json.Unmarshal(raw, &legacy); err == nil {
		var out []model.Vote
		for k, target := range legacy {
			m, err := strconv.Atoi(k)
			if err != nil || m < 1 {
				continue
			}
			out = append(out, model.Vote{Meeting: m, Target: target})
		}
		sort.Slice(out, func(i, j int) bool { return out[i].Meeting < out[j].Meeting })
		if len(out) == 0 {
			return nil
		}
		return out
	}
	return nil
}
