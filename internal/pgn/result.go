// FILE: internal/pgn/result.go
package pgn

// Outcome is the typed result of a game. The zero value is Ongoing,
// matching an absent Result tag.
type Outcome int

const (
	Ongoing Outcome = iota
	WhiteWins
	BlackWins
	Draw
)

// ParseOutcome maps a PGN result literal to an Outcome. Surrounding
// whitespace is trimmed by the caller; anything outside the four
// canonical literals is rejected.
func ParseOutcome(s string) (Outcome, error) {
	switch s {
	case "1-0":
		return WhiteWins, nil
	case "0-1":
		return BlackWins, nil
	case "1/2-1/2":
		return Draw, nil
	case "*":
		return Ongoing, nil
	default:
		return Ongoing, &InvalidResultError{Text: s}
	}
}

// String returns the canonical PGN literal.
func (o Outcome) String() string {
	switch o {
	case WhiteWins:
		return "1-0"
	case BlackWins:
		return "0-1"
	case Draw:
		return "1/2-1/2"
	default:
		return "*"
	}
}

func (o Outcome) MarshalJSON() ([]byte, error) {
	return []byte(`"` + o.String() + `"`), nil
}
