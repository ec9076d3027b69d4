// FILE: internal/pgn/headers.go
package pgn

import (
	"regexp"
	"strings"
)

// Headers holds the tag pairs extracted from a PGN record. Recognized
// tags map to dedicated fields; everything else lands in Other verbatim,
// last write wins on duplicates.
type Headers struct {
	Event  string            `json:"event,omitempty"`
	Site   string            `json:"site,omitempty"`
	Date   string            `json:"date,omitempty"`
	Round  string            `json:"round,omitempty"`
	White  string            `json:"white"`
	Black  string            `json:"black"`
	Result Outcome           `json:"result"`
	Other  map[string]string `json:"other,omitempty"`
}

// Tag pairs look like [Key "Value"]. Compiled once, reused across imports.
var tagPairPattern = regexp.MustCompile(`\[(\w+)\s+"([^"]+)"\]`)

// parseHeaders scans every tag pair in document order and returns the
// structured headers plus the unconsumed move text. The boundary is the
// end offset of the last tag match; everything after it is handed to the
// tokenizer untouched.
func parseHeaders(text string) (Headers, string, error) {
	var headers Headers
	lastTagEnd := 0

	for _, match := range tagPairPattern.FindAllStringSubmatchIndex(text, -1) {
		lastTagEnd = match[1]

		key := text[match[2]:match[3]]
		value := text[match[4]:match[5]]

		switch strings.ToLower(key) {
		case "event":
			headers.Event = value
		case "site":
			headers.Site = value
		case "date":
			headers.Date = value
		case "round":
			headers.Round = value
		case "white":
			headers.White = value
		case "black":
			headers.Black = value
		case "result":
			outcome, err := ParseOutcome(strings.TrimSpace(value))
			if err != nil {
				return headers, "", err
			}
			headers.Result = outcome
		default:
			if headers.Other == nil {
				headers.Other = make(map[string]string)
			}
			headers.Other[key] = value
		}
	}

	if headers.White == "" {
		return headers, "", &MissingHeaderError{Header: "White"}
	}
	if headers.Black == "" {
		return headers, "", &MissingHeaderError{Header: "Black"}
	}

	return headers, text[lastTagEnd:], nil
}
