// FILE: internal/server/storage/schema.go
package storage

// GameRecord represents a row in the imported_games table
type GameRecord struct {
	GameID        string            `db:"game_id"`
	Event         string            `db:"event"`
	Site          string            `db:"site"`
	Date          string            `db:"game_date"`
	Round         string            `db:"round"`
	White         string            `db:"white"`
	Black         string            `db:"black"`
	Result        string            `db:"result"`
	Tags          map[string]string `db:"tags"` // open-ended header tags, JSON-encoded at rest
	FinalFEN      string            `db:"final_fen"`
	PlyCount      int               `db:"ply_count"`
	ImportedAtUTC int64             `db:"imported_at_utc"` // Unix microseconds, keyset sort key
}

// MoveRecord represents a row in the game_moves table
type MoveRecord struct {
	MoveID       int64  `db:"move_id"`
	GameID       string `db:"game_id"`
	Ply          int    `db:"ply"` // 1-indexed half-move
	SAN          string `db:"san"`
	FENAfterMove string `db:"fen_after_move"`
}

// Schema defines the SQLite database structure
const Schema = `
CREATE TABLE IF NOT EXISTS imported_games (
	game_id TEXT PRIMARY KEY,
	event TEXT NOT NULL DEFAULT '',
	site TEXT NOT NULL DEFAULT '',
	game_date TEXT NOT NULL DEFAULT '',
	round TEXT NOT NULL DEFAULT '',
	white TEXT NOT NULL,
	black TEXT NOT NULL,
	result TEXT NOT NULL CHECK(result IN ('1-0', '0-1', '1/2-1/2', '*')),
	tags TEXT NOT NULL DEFAULT '{}',
	final_fen TEXT NOT NULL,
	ply_count INTEGER NOT NULL,
	imported_at_utc INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS game_moves (
	move_id INTEGER PRIMARY KEY AUTOINCREMENT,
	game_id TEXT NOT NULL,
	ply INTEGER NOT NULL,
	san TEXT NOT NULL,
	fen_after_move TEXT NOT NULL,
	FOREIGN KEY (game_id) REFERENCES imported_games(game_id) ON DELETE CASCADE,
	UNIQUE(game_id, ply)
);

CREATE INDEX IF NOT EXISTS idx_game_moves_game_id ON game_moves(game_id);
CREATE INDEX IF NOT EXISTS idx_imported_games_white ON imported_games(white);
CREATE INDEX IF NOT EXISTS idx_imported_games_black ON imported_games(black);
CREATE INDEX IF NOT EXISTS idx_imported_games_keyset ON imported_games(imported_at_utc DESC, game_id DESC);
`
