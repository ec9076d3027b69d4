// FILE: internal/server/storage/cursor_test.go
package storage

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursorRoundTrip(t *testing.T) {
	id := uuid.NewString()
	cursor := encodeCursor(1724668800123456, id)

	micros, gotID, err := decodeCursor(cursor)
	require.NoError(t, err)
	assert.Equal(t, int64(1724668800123456), micros)
	assert.Equal(t, id, gotID)
}

func TestDecodeCursorRejectsGarbage(t *testing.T) {
	cases := []string{
		"not base64 at all!!",
		"aGVsbG8",          // decodes but has no comma
		"MTIzNA",           // "1234", no uuid part
		"eCxub3QtYS11dWlk", // "x,not-a-uuid"
	}
	for _, c := range cases {
		_, _, err := decodeCursor(c)
		assert.ErrorIs(t, err, ErrInvalidCursor, c)
	}
}
