// FILE: internal/pgn/pgn.go

// Package pgn imports third-party chess game records in Portable Game
// Notation and reduces them to a verified internal representation.
//
// The pipeline runs in three stages: header extraction, move-text
// tokenization, and sequential legality validation against the rules of
// chess. A single illegal or malformed move invalidates the whole
// import; no partial game is ever returned. Imports are pure and
// independent, so separate games may be validated concurrently.
package pgn

import "strings"

// ParsedGame is the output of header parsing and tokenization: headers
// plus raw SAN tokens, not yet verified. Immutable once created.
type ParsedGame struct {
	Headers Headers
	Moves   []string
}

// Parse extracts headers and move tokens from a complete PGN record.
// Empty or whitespace-only input fails before any tag scanning.
func Parse(text string) (*ParsedGame, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, ErrEmptyPgn
	}

	headers, moveText, err := parseHeaders(trimmed)
	if err != nil {
		return nil, err
	}

	return &ParsedGame{
		Headers: headers,
		Moves:   moveTokens(moveText),
	}, nil
}
