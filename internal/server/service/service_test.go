// FILE: internal/server/service/service_test.go
package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"chessimport/internal/pgn"
	"chessimport/internal/server/storage"
)

const validPGN = `[White "Player1"]
[Black "Player2"]
[Result "1-0"]

1. e4 e5 2. Nf3 Nc6 3. Bb5 1-0`

func newTestService() *Service {
	return New(nil, zap.NewNop().Sugar())
}

func TestImportValidGame(t *testing.T) {
	svc := newTestService()

	imported, err := svc.Import(validPGN)
	require.NoError(t, err)
	assert.NotEmpty(t, imported.GameID)
	assert.Equal(t, 5, imported.Game.PlyCount)
	assert.Equal(t, pgn.WhiteWins, imported.Game.Headers.Result)
}

func TestImportPropagatesTypedErrors(t *testing.T) {
	svc := newTestService()

	_, err := svc.Import("")
	assert.ErrorIs(t, err, pgn.ErrEmptyPgn)

	_, err = svc.Import(`[Black "B"] 1. e4 *`)
	var missing *pgn.MissingHeaderError
	assert.ErrorAs(t, err, &missing)

	_, err = svc.Import(`[White "A"] [Black "B"] 1. e4 e5 2. Ke3 *`)
	var illegal *pgn.IllegalMoveError
	require.ErrorAs(t, err, &illegal)
	assert.Equal(t, "Ke3", illegal.MoveText)
}

func TestImportBatchKeepsOrderAndIsolatesFailures(t *testing.T) {
	svc := newTestService()

	texts := []string{
		validPGN,
		`[White "A"] [Black "B"] 1. e4 e5 2. Ke3 *`,
		`[White "C"] [Black "D"] 1. d4 d5 *`,
	}

	results := svc.ImportBatch(context.Background(), texts)
	require.Len(t, results, 3)

	assert.NoError(t, results[0].Err)
	assert.Equal(t, 0, results[0].Index)
	assert.Equal(t, "Player1", results[0].Game.Game.Headers.White)

	var illegal *pgn.IllegalMoveError
	require.ErrorAs(t, results[1].Err, &illegal)
	assert.Nil(t, results[1].Game)

	assert.NoError(t, results[2].Err)
	assert.Equal(t, "C", results[2].Game.Game.Headers.White)
}

func TestImportPersistsTagsAndMovePositions(t *testing.T) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	store, err := storage.NewStore(dsn, false, zap.NewNop().Sugar())
	require.NoError(t, err)
	require.NoError(t, store.InitDB())
	t.Cleanup(func() { store.Close() })

	svc := New(store, zap.NewNop().Sugar())

	imported, err := svc.Import(`[White "Player1"]
[Black "Player2"]
[Result "1-0"]
[ECO "C65"]

1. e4 e5 2. Nf3 Nc6 3. Bb5 1-0`)
	require.NoError(t, err)

	// Persistence is queued; poll for the committed row.
	require.Eventually(t, func() bool {
		_, _, err := svc.GetGame(imported.GameID)
		return err == nil
	}, 2*time.Second, 10*time.Millisecond)

	record, moves, err := svc.GetGame(imported.GameID)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"ECO": "C65"}, record.Tags)
	require.Len(t, moves, imported.Game.PlyCount)
	for i, m := range moves {
		assert.Equal(t, i+1, m.Ply)
		assert.Equal(t, imported.Game.Moves[i], m.SAN)
		assert.Equal(t, imported.Game.MoveFENs[i], m.FENAfterMove)
	}
	assert.Equal(t, record.FinalFEN, moves[len(moves)-1].FENAfterMove)
}

func TestGetGameWithoutStore(t *testing.T) {
	svc := newTestService()

	_, _, err := svc.GetGame("any")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestStorageHealthDisabled(t *testing.T) {
	assert.Equal(t, "disabled", newTestService().GetStorageHealth())
}
