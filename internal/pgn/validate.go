// FILE: internal/pgn/validate.go
package pgn

import (
	"regexp"

	"github.com/corentings/chess/v2"
)

// ValidatedGame is a fully replayed game: every move confirmed legal in
// sequence from the standard starting position. Constructed only by
// Validate; an invalid game is represented by an error instead.
// MoveFENs holds the position after each ply, so callers can persist
// move-by-move history; MoveFENs[PlyCount-1] equals FinalFEN.
type ValidatedGame struct {
	Headers  Headers  `json:"headers"`
	Moves    []string `json:"moves"`
	MoveFENs []string `json:"-"`
	FinalFEN string   `json:"finalFen"`
	PlyCount int      `json:"plyCount"`
	IsValid  bool     `json:"isValid"`
}

// Syntactic shape of a SAN token: castling, piece move with optional
// disambiguation and capture, or pawn move with optional capture and
// promotion, plus check/mate and annotation suffixes.
var sanPattern = regexp.MustCompile(
	`^(?:O-O(?:-O)?|0-0(?:-0)?|[KQRBN][a-h]?[1-8]?x?[a-h][1-8]|[a-h](?:x[a-h])?[1-8](?:=[QRBN])?)[+#]?[!?]{0,2}$`)

// Validate replays the parsed move tokens from the standard starting
// position. Tokens are processed strictly in order; the reported move
// number counts two plies per move, matching standard notation. The
// first failing token aborts the whole validation.
func Validate(parsed *ParsedGame) (*ValidatedGame, error) {
	pos := chess.StartingPosition()
	notation := chess.AlgebraicNotation{}
	moveFENs := make([]string, 0, len(parsed.Moves))

	for idx, san := range parsed.Moves {
		moveNumber := idx/2 + 1

		if !sanPattern.MatchString(san) {
			return nil, &IllegalMoveError{
				MoveNumber: moveNumber,
				MoveText:   san,
				Reason:     ReasonBadNotation,
			}
		}

		move, err := notation.Decode(pos, san)
		if err != nil {
			return nil, &IllegalMoveError{
				MoveNumber: moveNumber,
				MoveText:   san,
				Reason:     ReasonNotLegal,
			}
		}

		next := pos.Update(move)
		if next == nil {
			return nil, &IllegalMoveError{
				MoveNumber: moveNumber,
				MoveText:   san,
				Reason:     ReasonLeavesInCheck,
			}
		}
		pos = next
		moveFENs = append(moveFENs, pos.String())
	}

	return &ValidatedGame{
		Headers:  parsed.Headers,
		Moves:    append([]string(nil), parsed.Moves...),
		MoveFENs: moveFENs,
		FinalFEN: pos.String(),
		PlyCount: len(parsed.Moves),
		IsValid:  true,
	}, nil
}
