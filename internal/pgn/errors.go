// FILE: internal/pgn/errors.go
package pgn

import (
	"errors"
	"fmt"
)

// ErrEmptyPgn is returned when the input is empty or whitespace only.
var ErrEmptyPgn = errors.New("empty PGN string")

// MissingHeaderError indicates a mandatory tag (White or Black) is absent or empty.
type MissingHeaderError struct {
	Header string
}

func (e *MissingHeaderError) Error() string {
	return fmt.Sprintf("missing required header: %s", e.Header)
}

// InvalidHeaderError indicates a malformed tag pair.
type InvalidHeaderError struct {
	Text string
}

func (e *InvalidHeaderError) Error() string {
	return fmt.Sprintf("invalid header format: %s", e.Text)
}

// InvalidResultError indicates a Result tag value outside the four
// canonical literals.
type InvalidResultError struct {
	Text string
}

func (e *InvalidResultError) Error() string {
	return fmt.Sprintf("invalid result format: %s", e.Text)
}

// IllegalMoveError reports the first token that failed SAN parsing,
// legality resolution, or application during replay. MoveNumber follows
// standard notation: two plies per number.
type IllegalMoveError struct {
	MoveNumber int
	MoveText   string
	Reason     string
}

func (e *IllegalMoveError) Error() string {
	return fmt.Sprintf("illegal move at move %d: '%s' - %s", e.MoveNumber, e.MoveText, e.Reason)
}

// Replay failure reasons, one per validation step.
const (
	ReasonBadNotation   = "Invalid move notation"
	ReasonNotLegal      = "Move is not legal in this position"
	ReasonLeavesInCheck = "Move leaves king in check"
)
