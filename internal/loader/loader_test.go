package loader

import (
	"testing"

	"github.com/ponche/go-lycans-metrics/internal/model"
)

const sampleExport = `[
  {
    "id": "a1b2",
    "displayedId": "G42",
    "startDate": "15/02/2025 21:03:00",
    "endDate": "15/02/2025 21:41:00",
    "mapName": "Village",
    "modded": true,
    "version": "0.143",
    "harvestGoal": 200,
    "harvest": 150,
    "endTiming": "J3",
    "playerStats": [
      {
        "username": "Alice",
        "mainRoleInitial": "Villageois",
        "mainRoleChanges": [{"role": "Loup", "order": 1}],
        "victorious": true,
        "votes": [
          {"meeting": 1, "target": "Bob"},
          {"meeting": 2, "target": "abstain"}
        ]
      },
      {
        "username": "Bob",
        "mainRoleInitial": "Villageois",
        "mainRoleFinal": "Chasseur",
        "deathTiming": "N2",
        "deathType": "LOUP",
        "killerName": "Alice",
        "votes": {"1": "Alice"}
      }
    ]
  }
]`

func TestLoad_Export(t *testing.T) {
	c, err := Load([]byte(sampleExport))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Hash == "" {
		t.Error("expected a non-empty corpus hash")
	}
	if len(c.Games) != 1 {
		t.Fatalf("want 1 game, got %d", len(c.Games))
	}

	g := c.Games[0]
	if g.DisplayID != "G42" || g.MapName != "Village" || !g.Modded {
		t.Errorf("game header mismatch: %+v", g)
	}
	if g.HarvestGoal != 200 || g.HarvestDone != 150 {
		t.Errorf("harvest: want 200/150, got %d/%d", g.HarvestGoal, g.HarvestDone)
	}
	if y, m, d := g.StartedAt.Date(); y != 2025 || int(m) != 2 || d != 15 {
		t.Errorf("start date not decoded: %v", g.StartedAt)
	}
	if g.DayCount() != 3 {
		t.Errorf("day count: want 3, got %d", g.DayCount())
	}
}

func TestLoad_RoleChangeList(t *testing.T) {
	c, err := Load([]byte(sampleExport))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	alice := c.Games[0].Player("Alice")
	if alice == nil {
		t.Fatal("Alice not found")
	}
	if len(alice.RoleChanges) != 1 || alice.RoleChanges[0].Role != model.RoleLoup {
		t.Errorf("role changes: want [Loup], got %+v", alice.RoleChanges)
	}
	if len(alice.Votes) != 2 || !alice.Votes[1].Abstained() {
		t.Errorf("votes: want 2 with abstention second, got %+v", alice.Votes)
	}
}

// TestLoad_LegacyShapes: the old final-role column becomes a synthetic
// change event, and map-shaped vote lists decode in meeting order.
func TestLoad_LegacyShapes(t *testing.T) {
	c, err := Load([]byte(sampleExport))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	bob := c.Games[0].Player("Bob")
	if bob == nil {
		t.Fatal("Bob not found")
	}
	if len(bob.RoleChanges) != 1 || bob.RoleChanges[0].Role != model.RoleChasseur {
		t.Errorf("legacy final role: want synthetic [Chasseur], got %+v", bob.RoleChanges)
	}
	if len(bob.Votes) != 1 || bob.Votes[0].Meeting != 1 || bob.Votes[0].Target != "Alice" {
		t.Errorf("legacy votes: want [{1 Alice}], got %+v", bob.Votes)
	}
}

func TestLoad_BadJSON(t *testing.T) {
	if _, err := Load([]byte("{not json")); err == nil {
		t.Error("expected an error for malformed export")
	}
}

// TestLoad_HashStable: same bytes, same hash; different bytes, different hash.
func TestLoad_HashStable(t *testing.T) {
	a, err := Load([]byte(sampleExport))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	b, err := Load([]byte(sampleExport))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if a.Hash != b.Hash {
		t.Error("hash not stable across identical loads")
	}
	c, err := Load([]byte(`[]`))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Hash == a.Hash {
		t.Error("different bytes must hash differently")
	}
}
