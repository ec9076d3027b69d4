// FILE: internal/server/service/service.go

// Package service coordinates the PGN import pipeline with persistence.
// Each import is an independent, synchronous computation; the service
// holds no per-game state, so imports may run concurrently.
package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"chessimport/internal/pgn"
	"chessimport/internal/server/storage"
)

// MaxBatchWorkers caps concurrent validations in a batch import.
const MaxBatchWorkers = 4

// ImportedGame pairs a validated game with its assigned ID.
type ImportedGame struct {
	GameID string
	Game   *pgn.ValidatedGame
}

// BatchResult is one entry of a batch import, in input order.
type BatchResult struct {
	Index int
	Game  *ImportedGame
	Err   error
}

// Service runs imports and records the results
type Service struct {
	store *storage.Store
	log   *zap.SugaredLogger
}

// New creates a service instance. A nil store disables persistence.
func New(store *storage.Store, log *zap.SugaredLogger) *Service {
	return &Service{store: store, log: log}
}

// GetStorageHealth returns the storage component status
func (s *Service) GetStorageHealth() string {
	if s.store == nil {
		return "disabled"
	}
	if s.store.IsHealthy() {
		return "ok"
	}
	return "degraded"
}

// Import runs the full pipeline on one PGN record: parse headers,
// tokenize, replay for legality. On success the game gets a fresh ID
// and is queued for persistence; the validated value is returned to the
// caller either way. Any failure is a typed pgn error.
func (s *Service) Import(text string) (*ImportedGame, error) {
	parsed, err := pgn.Parse(text)
	if err != nil {
		return nil, err
	}

	validated, err := pgn.Validate(parsed)
	if err != nil {
		return nil, err
	}

	imported := &ImportedGame{
		GameID: uuid.NewString(),
		Game:   validated,
	}

	if s.store != nil {
		record := storage.GameRecord{
			GameID:        imported.GameID,
			Event:         validated.Headers.Event,
			Site:          validated.Headers.Site,
			Date:          validated.Headers.Date,
			Round:         validated.Headers.Round,
			White:         validated.Headers.White,
			Black:         validated.Headers.Black,
			Result:        validated.Headers.Result.String(),
			Tags:          validated.Headers.Other,
			FinalFEN:      validated.FinalFEN,
			PlyCount:      validated.PlyCount,
			ImportedAtUTC: time.Now().UTC().UnixMicro(),
		}
		moves := make([]storage.MoveRecord, len(validated.Moves))
		for i, san := range validated.Moves {
			moves[i] = storage.MoveRecord{
				GameID:       imported.GameID,
				Ply:          i + 1,
				SAN:          san,
				FENAfterMove: validated.MoveFENs[i],
			}
		}
		if err := s.store.RecordImportedGame(record, moves); err != nil {
			s.log.Warnf("failed to queue game %s for storage: %v", imported.GameID, err)
		}
	}

	s.log.Infow("game imported",
		"gameId", imported.GameID,
		"white", validated.Headers.White,
		"black", validated.Headers.Black,
		"plies", validated.PlyCount,
	)

	return imported, nil
}

// ImportBatch validates several PGN records concurrently. Games are
// independent, so validations fan out across a bounded worker pool;
// results keep input order and one bad record never aborts the rest.
func (s *Service) ImportBatch(ctx context.Context, texts []string) []BatchResult {
	results := make([]BatchResult, len(texts))

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(MaxBatchWorkers)

	for i, text := range texts {
		g.Go(func() error {
			imported, err := s.Import(text)
			results[i] = BatchResult{Index: i, Game: imported, Err: err}
			return nil
		})
	}

	// Workers never return errors; Wait is only a join point.
	_ = g.Wait()

	return results
}

// GetGame fetches a stored game. Returns storage.ErrNotFound when the
// game does not exist or persistence is disabled.
func (s *Service) GetGame(gameID string) (storage.GameRecord, []storage.MoveRecord, error) {
	if s.store == nil {
		return storage.GameRecord{}, nil, storage.ErrNotFound
	}
	return s.store.GetGame(gameID)
}

// ListGames pages through stored games newest-first.
func (s *Service) ListGames(cursor string, limit int, player string) ([]storage.GameRecord, string, error) {
	if s.store == nil {
		return nil, "", nil
	}
	return s.store.ListGames(cursor, limit, player)
}
