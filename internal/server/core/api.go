// FILE: internal/server/core/api.go
package core

// Request types

type ImportGameRequest struct {
	PGN string `json:"pgn" validate:"required,min=1,max=65536"`
}

type ImportBatchRequest struct {
	PGNs []string `json:"pgns" validate:"required,min=1,max=50"`
}

// Response types

type GameResponse struct {
	GameID   string            `json:"gameId"`
	Event    string            `json:"event,omitempty"`
	Site     string            `json:"site,omitempty"`
	Date     string            `json:"date,omitempty"`
	Round    string            `json:"round,omitempty"`
	White    string            `json:"white"`
	Black    string            `json:"black"`
	Result   string            `json:"result"`
	Tags     map[string]string `json:"tags,omitempty"`
	Moves    []string          `json:"moves"`
	FinalFEN string            `json:"finalFen"`
	PlyCount int               `json:"plyCount"`
}

// BatchItemResponse reports one entry of a batch import, in input order.
type BatchItemResponse struct {
	Index int            `json:"index"`
	Game  *GameResponse  `json:"game,omitempty"`
	Error *ErrorResponse `json:"error,omitempty"`
}

type BatchImportResponse struct {
	Imported int                 `json:"imported"`
	Failed   int                 `json:"failed"`
	Results  []BatchItemResponse `json:"results"`
}

type GameListResponse struct {
	Games      []GameSummary `json:"games"`
	NextCursor string        `json:"nextCursor,omitempty"`
}

type GameSummary struct {
	GameID     string `json:"gameId"`
	White      string `json:"white"`
	Black      string `json:"black"`
	Result     string `json:"result"`
	PlyCount   int    `json:"plyCount"`
	ImportedAt int64  `json:"importedAt"` // Unix seconds UTC
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Details string `json:"details,omitempty"`
}
