package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/ponche/go-lycans-metrics/internal/model"
)

// ImportExists returns true if an export with the given hash was already imported.
func (db *DB) ImportExists(hash string) (bool, error) {
	var count int
	err := db.conn.QueryRow("SELECT COUNT(1) FROM imports WHERE hash = ?", hash).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// RecordImport records an import. Uses INSERT OR REPLACE for idempotency.
func (db *DB) RecordImport(hash string, gameCount int) error {
	_, err := db.conn.Exec(`
		INSERT OR REPLACE INTO imports(hash, imported_at, game_count)
		VALUES (?, ?, ?)`,
		hash, time.Now().UTC().Format(time.RFC3339), gameCount,
	)
	return err
}

// InsertGames bulk-inserts game entries and their player rows in a transaction.
func (db *DB) InsertGames(games []model.GameLogEntry) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	gameStmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO games(
			id, display_id, started_at, ended_at, map_name,
			modded, version, harvest_goal, harvest_done, end_timing, victory_type
		) VALUES (?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer gameStmt.Close()

	playerStmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO game_players(
			game_id, username, role, secondary_role, power,
			victorious, death_timing, death_type, killer_name
		) VALUES (?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer playerStmt.Close()

	changeStmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO role_changes(game_id, username, seq, role)
		VALUES (?,?,?,?)`)
	if err != nil {
		return err
	}
	defer changeStmt.Close()

	voteStmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO votes(game_id, username, meeting, target)
		VALUES (?,?,?,?)`)
	if err != nil {
		return err
	}
	defer voteStmt.Close()

	actionStmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO actions(game_id, username, seq, kind, target, timing)
		VALUES (?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer actionStmt.Close()

	for i := range games {
		g := &games[i]
		_, err = gameStmt.Exec(
			g.ID, g.DisplayID,
			g.StartedAt.Format(time.RFC3339), g.EndedAt.Format(time.RFC3339),
			g.MapName, boolInt(g.Modded), g.Version,
			g.HarvestGoal, g.HarvestDone, g.EndTiming, g.VictoryType,
		)
		if err != nil {
			return fmt.Errorf("insert game %s: %w", g.ID, err)
		}
		for j := range g.Players {
			p := &g.Players[j]
			_, err = playerStmt.Exec(
				g.ID, p.Username, string(p.Role), string(p.SecondaryRole), p.Power,
				boolInt(p.Victorious), p.DeathTiming, string(p.DeathType), p.KillerName,
			)
			if err != nil {
				return fmt.Errorf("insert player %s/%s: %w", g.ID, p.Username, err)
			}
			for k, rc := range p.RoleChanges {
				if _, err = changeStmt.Exec(g.ID, p.Username, k+1, string(rc.Role)); err != nil {
					return fmt.Errorf("insert role change %s/%s: %w", g.ID, p.Username, err)
				}
			}
			for _, v := range p.Votes {
				if _, err = voteStmt.Exec(g.ID, p.Username, v.Meeting, v.Target); err != nil {
					return fmt.Errorf("insert vote %s/%s: %w", g.ID, p.Username, err)
				}
			}
			for k, a := range p.Actions {
				if _, err = actionStmt.Exec(g.ID, p.Username, k+1, a.Kind, a.Target, a.Timing); err != nil {
					return fmt.Errorf("insert action %s/%s: %w", g.ID, p.Username, err)
				}
			}
		}
	}
	return tx.Commit()
}

// LoadGames returns every stored game with its players, role changes, votes
// and actions reassembled, ordered by start date ascending.
func (db *DB) LoadGames() ([]model.GameLogEntry, error) {
	rows, err := db.conn.Query(`
		SELECT id, display_id, started_at, ended_at, map_name,
		       modded, version, harvest_goal, harvest_done, end_timing, victory_type
		FROM games ORDER BY started_at ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var games []model.GameLogEntry
	index := make(map[string]int)
	for rows.Next() {
		var g model.GameLogEntry
		var startedAt, endedAt string
		var moddedInt int
		if err := rows.Scan(&g.ID, &g.DisplayID, &startedAt, &endedAt, &g.MapName,
			&moddedInt, &g.Version, &g.HarvestGoal, &g.HarvestDone, &g.EndTiming, &g.VictoryType); err != nil {
			return nil, err
		}
		g.Modded = moddedInt != 0
		g.StartedAt, _ = time.Parse(time.RFC3339, startedAt)
		g.EndedAt, _ = time.Parse(time.RFC3339, endedAt)
		index[g.ID] = len(games)
		games = append(games, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := db.attachPlayers(games, index); err != nil {
		return nil, err
	}
	return games, nil
}

func (db *DB) attachPlayers(games []model.GameLogEntry, index map[string]int) error {
	playerRows, err := db.conn.Query(`
		SELECT game_id, username, role, secondary_role, power,
		       victorious, death_timing, death_type, killer_name
		FROM game_players ORDER BY game_id, username`)
	if err != nil {
		return err
	}
	defer playerRows.Close()

	type playerKey struct {
		gameID   string
		username string
	}
	players := make(map[playerKey]int)
	for playerRows.Next() {
		var gameID string
		var p model.PlayerStat
		var role, secondary, deathType string
		var victoriousInt int
		if err := playerRows.Scan(&gameID, &p.Username, &role, &secondary, &p.Power,
			&victoriousInt, &p.DeathTiming, &deathType, &p.KillerName); err != nil {
			return err
		}
		p.Role = model.Role(role)
		p.SecondaryRole = model.Role(secondary)
		p.DeathType = model.DeathType(deathType)
		p.Victorious = victoriousInt != 0
		i, ok := index[gameID]
		if !ok {
			continue
		}
		players[playerKey{gameID, p.Username}] = len(games[i].Players)
		games[i].Players = append(games[i].Players, p)
	}
	if err := playerRows.Err(); err != nil {
		return err
	}

	player := func(gameID, username string) *model.PlayerStat {
		i, ok := index[gameID]
		if !ok {
			return nil
		}
		j, ok := players[playerKey{gameID, username}]
		if !ok {
			return nil
		}
		return &games[i].Players[j]
	}

	changeRows, err := db.conn.Query(`
		SELECT game_id, username, seq, role FROM role_changes
		ORDER BY game_id, username, seq`)
	if err != nil {
		return err
	}
	defer changeRows.Close()
	for changeRows.Next() {
		var gameID, username, role string
		var seq int
		if err := changeRows.Scan(&gameID, &username, &seq, &role); err != nil {
			return err
		}
		if p := player(gameID, username); p != nil {
			p.RoleChanges = append(p.RoleChanges, model.RoleChangeEvent{Role: model.Role(role), Order: seq})
		}
	}
	if err := changeRows.Err(); err != nil {
		return err
	}

	voteRows, err := db.conn.Query(`
		SELECT game_id, username, meeting, target FROM votes
		ORDER BY game_id, username, meeting`)
	if err != nil {
		return err
	}
	defer voteRows.Close()
	for voteRows.Next() {
		var gameID, username, target string
		var meeting int
		if err := voteRows.Scan(&gameID, &username, &meeting, &target); err != nil {
			return err
		}
		if p := player(gameID, username); p != nil {
			p.Votes = append(p.Votes, model.Vote{Meeting: meeting, Target: target})
		}
	}
	if err := voteRows.Err(); err != nil {
		return err
	}

	actionRows, err := db.conn.Query(`
		SELECT game_id, username, kind, target, timing FROM actions
		ORDER BY game_id, username, seq`)
	if err != nil {
		return err
	}
	defer actionRows.Close()
	for actionRows.Next() {
		var gameID, username string
		var a model.Action
		if err := actionRows.Scan(&gameID, &username, &a.Kind, &a.Target, &a.Timing); err != nil {
			return err
		}
		if p := player(gameID, username); p != nil {
			p.Actions = append(p.Actions, a)
		}
	}
	return actionRows.Err()
}

// GameCount returns the number of stored games.
func (db *DB) GameCount() (int, error) {
	var count int
	err := db.conn.QueryRow("SELECT COUNT(1) FROM games").Scan(&count)
	return count, err
}

// GetGameByDisplayID finds a game by its display id, or by an id prefix when
// no display id matches. Returns nil when nothing matches.
func (db *DB) GetGameByDisplayID(ref string) (*model.GameLogEntry, error) {
	var id string
	err := db.conn.QueryRow("SELECT id FROM games WHERE display_id = ? LIMIT 1", ref).Scan(&id)
	if err == sql.ErrNoRows {
		err = db.conn.QueryRow("SELECT id FROM games WHERE id LIKE ? LIMIT 1", ref+"%").Scan(&id)
	}
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	games, err := db.LoadGames()
	if err != nil {
		return nil, err
	}
	for i := range games {
		if games[i].ID == id {
			return &games[i], nil
		}
	}
	return nil, nil
}

// DropAll deletes every stored game and import record.
func (db *DB) DropAll() error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()
	for _, table := range []string{"actions", "votes", "role_changes", "game_players", "games", "imports"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("drop %s: %w", table, err)
		}
	}
	return tx.Commit()
}

// QueryRaw runs an arbitrary read-only query and returns column names and
// stringified rows. Used by the sql command.
func (db *DB) QueryRaw(query string) ([]string, [][]string, error) {
	rows, err := db.conn.Query(query)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, nil, err
	}

	var out [][]string
	for rows.Next() {
		raw := make([]sql.NullString, len(cols))
		ptrs := make([]any, len(cols))
		for i := range raw {
			ptrs[i] = &raw[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, nil, err
		}
		row := make([]string, len(cols))
		for i, v := range raw {
			if v.Valid {
				row[i] = v.String
			} else {
				row[i] = "NULL"
			}
		}
		out = append(out, row)
	}
	return cols, out, rows.Err()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
