// FILE: internal/server/storage/game.go
package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrWriteDropped is returned when an async write is discarded because
// storage is degraded or the write queue is full. The import itself
// still succeeds; only persistence is lost.
var ErrWriteDropped = errors.New("write dropped")

// RecordImportedGame asynchronously records a validated game and its
// full move list in one transaction. A drop is reported to the caller
// instead of blocking the import path.
func (s *Store) RecordImportedGame(record GameRecord, moves []MoveRecord) error {
	if !s.healthStatus.Load() {
		return ErrWriteDropped
	}

	tagsJSON, err := encodeTags(record.Tags)
	if err != nil {
		return fmt.Errorf("failed to encode tags: %w", err)
	}

	select {
	case s.writeChan <- func(tx *sql.Tx) error {
		query := `INSERT INTO imported_games (
			game_id, event, site, game_date, round,
			white, black, result, tags, final_fen, ply_count, imported_at_utc
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

		if _, err := tx.Exec(query,
			record.GameID, record.Event, record.Site, record.Date, record.Round,
			record.White, record.Black, record.Result, tagsJSON,
			record.FinalFEN, record.PlyCount, record.ImportedAtUTC,
		); err != nil {
			return err
		}

		stmt, err := tx.Prepare(`INSERT INTO game_moves (game_id, ply, san, fen_after_move) VALUES (?, ?, ?, ?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, m := range moves {
			if _, err := stmt.Exec(record.GameID, m.Ply, m.SAN, m.FENAfterMove); err != nil {
				return err
			}
		}
		return nil
	}:
		return nil
	default:
		// Channel full
		return ErrWriteDropped
	}
}

// GetGame retrieves a stored game and its moves in ply order.
func (s *Store) GetGame(gameID string) (GameRecord, []MoveRecord, error) {
	var g GameRecord
	var tagsJSON string
	row := s.db.QueryRow(`SELECT
		game_id, event, site, game_date, round,
		white, black, result, tags, final_fen, ply_count, imported_at_utc
	FROM imported_games WHERE game_id = ?`, gameID)

	err := row.Scan(
		&g.GameID, &g.Event, &g.Site, &g.Date, &g.Round,
		&g.White, &g.Black, &g.Result, &tagsJSON,
		&g.FinalFEN, &g.PlyCount, &g.ImportedAtUTC,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return g, nil, ErrNotFound
	}
	if err != nil {
		return g, nil, fmt.Errorf("query failed: %w", err)
	}

	g.Tags, err = decodeTags(tagsJSON)
	if err != nil {
		return g, nil, fmt.Errorf("failed to decode tags: %w", err)
	}

	rows, err := s.db.Query(`SELECT move_id, ply, san, fen_after_move
		FROM game_moves WHERE game_id = ? ORDER BY ply`, gameID)
	if err != nil {
		return g, nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var moves []MoveRecord
	for rows.Next() {
		m := MoveRecord{GameID: gameID}
		if err := rows.Scan(&m.MoveID, &m.Ply, &m.SAN, &m.FENAfterMove); err != nil {
			return g, nil, fmt.Errorf("scan failed: %w", err)
		}
		moves = append(moves, m)
	}
	if err := rows.Err(); err != nil {
		return g, nil, fmt.Errorf("rows iteration failed: %w", err)
	}

	return g, moves, nil
}

// ListGames retrieves games newest-first with keyset pagination over
// (imported_at_utc, game_id). A non-empty player filters on either
// color. Returns up to limit records plus a cursor for the next page
// when more rows exist.
func (s *Store) ListGames(cursor string, limit int, player string) ([]GameRecord, string, error) {
	query := `SELECT
		game_id, white, black, result, ply_count, imported_at_utc
	FROM imported_games WHERE 1=1`

	var args []any

	if player != "" {
		query += " AND (white = ? OR black = ?)"
		args = append(args, player, player)
	}

	if cursor != "" {
		lastImportedAt, lastID, err := decodeCursor(cursor)
		if err != nil {
			return nil, "", err
		}
		// Descending keyset: strictly older, or same instant with smaller id
		query += " AND (imported_at_utc < ? OR (imported_at_utc = ? AND game_id < ?))"
		args = append(args, lastImportedAt, lastImportedAt, lastID)
	}

	query += " ORDER BY imported_at_utc DESC, game_id DESC LIMIT ?"
	// Fetch limit+1 to detect a next page
	args = append(args, limit+1)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, "", fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var games []GameRecord
	for rows.Next() {
		var g GameRecord
		if err := rows.Scan(
			&g.GameID, &g.White, &g.Black, &g.Result, &g.PlyCount, &g.ImportedAtUTC,
		); err != nil {
			return nil, "", fmt.Errorf("scan failed: %w", err)
		}
		games = append(games, g)
	}
	if err := rows.Err(); err != nil {
		return nil, "", fmt.Errorf("rows iteration failed: %w", err)
	}

	var nextCursor string
	if len(games) > limit {
		games = games[:limit]
		last := games[len(games)-1]
		nextCursor = encodeCursor(last.ImportedAtUTC, last.GameID)
	}

	return games, nextCursor, nil
}

func encodeTags(tags map[string]string) (string, error) {
	if len(tags) == 0 {
		return "{}", nil
	}
	raw, err := json.Marshal(tags)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func decodeTags(tagsJSON string) (map[string]string, error) {
	if tagsJSON == "" || tagsJSON == "{}" {
		return nil, nil
	}
	var tags map[string]string
	if err := json.Unmarshal([]byte(tagsJSON), &tags); err != nil {
		return nil, err
	}
	return tags, nil
}
