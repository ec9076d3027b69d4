// FILE: internal/pgn/validate_test.go
package pgn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ruyLopezFEN = "r1bqkbnr/pppp1ppp/2n5/1B2p3/4P3/5N2/PPPP1PPP/RNBQK2R b KQkq - 3 3"

func TestValidateLegalGame(t *testing.T) {
	parsed, err := Parse(`[White "Player1"]
[Black "Player2"]
[Result "1-0"]

1. e4 e5 2. Nf3 Nc6 3. Bb5 1-0`)
	require.NoError(t, err)

	game, err := Validate(parsed)
	require.NoError(t, err)
	assert.True(t, game.IsValid)
	assert.Equal(t, 5, game.PlyCount)
	assert.Equal(t, len(game.Moves), game.PlyCount)
	assert.Equal(t, ruyLopezFEN, game.FinalFEN)
	assert.Equal(t, parsed.Headers, game.Headers)
}

func TestValidateRejectsIllegalMove(t *testing.T) {
	// Ke3 is unreachable from e1 in one move after 1. e4 e5.
	parsed, err := Parse(`[White "Player1"]
[Black "Player2"]
[Result "*"]

1. e4 e5 2. Ke3 *`)
	require.NoError(t, err)

	_, err = Validate(parsed)
	var illegal *IllegalMoveError
	require.ErrorAs(t, err, &illegal)
	assert.Equal(t, 2, illegal.MoveNumber)
	assert.Equal(t, "Ke3", illegal.MoveText)
	assert.Equal(t, ReasonNotLegal, illegal.Reason)
}

func TestValidateRejectsMalformedNotation(t *testing.T) {
	parsed := &ParsedGame{
		Headers: Headers{White: "A", Black: "B"},
		Moves:   []string{"e4", "e5", "Zz9"},
	}

	_, err := Validate(parsed)
	var illegal *IllegalMoveError
	require.ErrorAs(t, err, &illegal)
	assert.Equal(t, 2, illegal.MoveNumber)
	assert.Equal(t, "Zz9", illegal.MoveText)
	assert.Equal(t, ReasonBadNotation, illegal.Reason)
}

func TestValidateBlackIllegalMoveNumber(t *testing.T) {
	// The failing token is black's second ply (index 3, 0-based),
	// which still reports move number 2.
	parsed := &ParsedGame{
		Headers: Headers{White: "A", Black: "B"},
		Moves:   []string{"e4", "e5", "Nf3", "Ke4"},
	}

	_, err := Validate(parsed)
	var illegal *IllegalMoveError
	require.ErrorAs(t, err, &illegal)
	assert.Equal(t, 2, illegal.MoveNumber)
	assert.Equal(t, "Ke4", illegal.MoveText)
}

func TestValidateCheckmateGame(t *testing.T) {
	parsed, err := Parse(`[White "A"]
[Black "B"]
[Result "1-0"]

1. e4 e5 2. Bc4 Nc6 3. Qh5 Nf6 4. Qxf7# 1-0`)
	require.NoError(t, err)

	game, err := Validate(parsed)
	require.NoError(t, err)
	assert.Equal(t, 7, game.PlyCount)
}

func TestValidateCastling(t *testing.T) {
	parsed, err := Parse(`[White "A"]
[Black "B"]

1. e4 e5 2. Nf3 Nc6 3. Bb5 Nf6 4. O-O Nxe4 *`)
	require.NoError(t, err)

	game, err := Validate(parsed)
	require.NoError(t, err)
	assert.Equal(t, 8, game.PlyCount)
}

func TestValidateEmptyMoveList(t *testing.T) {
	parsed, err := Parse(`[White "A"] [Black "B"]`)
	require.NoError(t, err)

	game, err := Validate(parsed)
	require.NoError(t, err)
	assert.Equal(t, 0, game.PlyCount)
	assert.Equal(t, "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", game.FinalFEN)
}

func TestValidateRecordsPerMovePositions(t *testing.T) {
	parsed, err := Parse(`[White "A"] [Black "B"] 1. e4 e5 2. Nf3 Nc6 3. Bb5 *`)
	require.NoError(t, err)

	game, err := Validate(parsed)
	require.NoError(t, err)
	require.Len(t, game.MoveFENs, game.PlyCount)
	assert.Equal(t, game.FinalFEN, game.MoveFENs[len(game.MoveFENs)-1])
	// Positions advance ply by ply, so successive FENs must differ.
	for i := 1; i < len(game.MoveFENs); i++ {
		assert.NotEqual(t, game.MoveFENs[i-1], game.MoveFENs[i])
	}
}

func TestValidateIdempotent(t *testing.T) {
	parsed, err := Parse(`[White "A"] [Black "B"] 1. d4 d5 2. c4 e6 3. Nc3 Nf6 *`)
	require.NoError(t, err)

	first, err := Validate(parsed)
	require.NoError(t, err)
	second, err := Validate(parsed)
	require.NoError(t, err)
	assert.Equal(t, first.FinalFEN, second.FinalFEN)
	assert.Equal(t, first.PlyCount, second.PlyCount)
}

func TestValidateAnnotationsDoNotChangeOutcome(t *testing.T) {
	plain, err := Parse(`[White "A"] [Black "B"] 1. e4 e5 2. Nf3 Nc6 3. Bb5 *`)
	require.NoError(t, err)
	annotated, err := Parse(`[White "A"] [Black "B"] 1. e4 {king pawn} e5 $1 2. Nf3 {attacks e5} Nc6 3. Bb5 *`)
	require.NoError(t, err)

	plainGame, err := Validate(plain)
	require.NoError(t, err)
	annotatedGame, err := Validate(annotated)
	require.NoError(t, err)

	assert.Equal(t, plainGame.PlyCount, annotatedGame.PlyCount)
	assert.Equal(t, plainGame.FinalFEN, annotatedGame.FinalFEN)
}

func TestValidateStopsAtFirstFailure(t *testing.T) {
	parsed := &ParsedGame{
		Headers: Headers{White: "A", Black: "B"},
		Moves:   []string{"e4", "e4", "Nf3"},
	}

	_, err := Validate(parsed)
	var illegal *IllegalMoveError
	require.ErrorAs(t, err, &illegal)
	assert.Equal(t, 1, illegal.MoveNumber)
	assert.Equal(t, "e4", illegal.MoveText)
}
