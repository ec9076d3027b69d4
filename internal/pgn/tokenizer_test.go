// FILE: internal/pgn/tokenizer_test.go
package pgn

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMoveTokensStripsBraceComments(t *testing.T) {
	moves := moveTokens(`1. e4 {Opening move} e5 2. Nf3 {develops
the knight} Nc6 1/2-1/2`)
	assert.Equal(t, []string{"e4", "e5", "Nf3", "Nc6"}, moves)
}

func TestMoveTokensCommentReplacementPreventsConcatenation(t *testing.T) {
	// A removed comment must act as a separator, not splice its
	// neighbors into one token.
	moves := moveTokens(`1. e4{inline}e5`)
	assert.Equal(t, []string{"e4", "e5"}, moves)
}

func TestMoveTokensStripsSemicolonComments(t *testing.T) {
	moves := moveTokens("1. e4 e5 ; best by test\n2. Nf3 Nc6 *")
	assert.Equal(t, []string{"e4", "e5", "Nf3", "Nc6"}, moves)
}

func TestMoveTokensStripsNags(t *testing.T) {
	moves := moveTokens(`1. e4 $1 e5 $14 2. Nf3 $2 Nc6 *`)
	assert.Equal(t, []string{"e4", "e5", "Nf3", "Nc6"}, moves)
}

func TestMoveTokensStripsSingleLevelVariations(t *testing.T) {
	moves := moveTokens(`1. e4 e5 (1... c5 2. Nf3 d6) 2. Nf3 Nc6 *`)
	assert.Equal(t, []string{"e4", "e5", "Nf3", "Nc6"}, moves)
}

func TestMoveTokensNestedVariationLeavesResidue(t *testing.T) {
	// Only one nesting level is stripped. The outer parentheses
	// survive as residue tokens, which replay later rejects with a
	// precise move index instead of silently dropping moves.
	moves := moveTokens(`1. e4 e5 (1... c5 (1... e6 2. d4) 2. Nf3) 2. Nf3 *`)
	assert.Contains(t, moves, "(1...")
}

func TestMoveTokensFiltersMoveNumbersAndResults(t *testing.T) {
	moves := moveTokens("1. e4 c5 2... Nf6 3. d4 1-0")
	assert.Equal(t, []string{"e4", "c5", "Nf6", "d4"}, moves)
}

func TestMoveTokensEmptyInput(t *testing.T) {
	assert.Empty(t, moveTokens(""))
	assert.Empty(t, moveTokens("  \n\t "))
	assert.Empty(t, moveTokens("1-0"))
}
