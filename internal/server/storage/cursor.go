// FILE: internal/server/storage/cursor.go
package storage

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// ErrInvalidCursor is returned when a pagination cursor cannot be decoded.
var ErrInvalidCursor = errors.New("invalid cursor")

// Cursors encode "timestamp_micros,uuid" in URL-safe base64 without
// padding, so a page token survives query strings unescaped.
func encodeCursor(importedAtMicros int64, gameID string) string {
	raw := fmt.Sprintf("%d,%s", importedAtMicros, gameID)
	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

func decodeCursor(cursor string) (int64, string, error) {
	decoded, err := base64.RawURLEncoding.DecodeString(cursor)
	if err != nil {
		return 0, "", ErrInvalidCursor
	}

	parts := strings.SplitN(string(decoded), ",", 2)
	if len(parts) != 2 {
		return 0, "", ErrInvalidCursor
	}

	micros, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return 0, "", ErrInvalidCursor
	}

	id, err := uuid.Parse(parts[1])
	if err != nil {
		return 0, "", ErrInvalidCursor
	}

	return micros, id.String(), nil
}
