package core

// Error codes
const (
	ErrGameNotFound      = "GAME_NOT_FOUND"
	ErrInvalidPGN        = "INVALID_PGN"
	ErrIllegalMove       = "ILLEGAL_MOVE"
	ErrRateLimitExceeded = "RATE_LIMIT_EXCEEDED"
	ErrInvalidContent    = "INVALID_CONTENT_TYPE"
	ErrInvalidRequest    = "INVALID_REQUEST"
	ErrInvalidCursor     = "INVALID_CURSOR"
	ErrInternalError     = "INTERNAL_ERROR"
)
