// FILE: internal/pgn/tokenizer.go
package pgn

import (
	"regexp"
	"strings"
)

// Stripping patterns, compiled once. Comments are replaced with a space
// rather than deleted so moves on either side of a removed comment never
// concatenate.
var (
	braceCommentPattern = regexp.MustCompile(`\{[^}]*\}`)
	lineCommentPattern  = regexp.MustCompile(`;[^\n]*`)
	nagPattern          = regexp.MustCompile(`\$\d+`)
	variationPattern    = regexp.MustCompile(`\([^()]*\)`)
	moveNumberPattern   = regexp.MustCompile(`^\d+\.+$`)
	resultPattern       = regexp.MustCompile(`^(1-0|0-1|1/2-1/2|\*)$`)
)

// moveTokens reduces raw move text to an ordered sequence of SAN move
// tokens. Pass order matters: later passes assume earlier noise is gone.
// Parenthesized variations are stripped one nesting level deep only;
// nested variations are a documented limitation. This stage never fails,
// malformed tokens are left for the replay validator to attribute to a
// precise move number.
func moveTokens(moveText string) []string {
	cleaned := braceCommentPattern.ReplaceAllString(moveText, " ")
	cleaned = lineCommentPattern.ReplaceAllString(cleaned, " ")
	cleaned = nagPattern.ReplaceAllString(cleaned, " ")
	cleaned = variationPattern.ReplaceAllString(cleaned, " ")

	var moves []string
	for _, token := range strings.Fields(cleaned) {
		if moveNumberPattern.MatchString(token) || resultPattern.MatchString(token) {
			continue
		}
		moves = append(moves, token)
	}
	return moves
}
