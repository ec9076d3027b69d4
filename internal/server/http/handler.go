// FILE: internal/server/http/handler.go
package http

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"chessimport/internal/pgn"
	"chessimport/internal/server/core"
	"chessimport/internal/server/service"
	"chessimport/internal/server/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

const rateLimitRate = 10 // req/sec

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// HTTPHandler handles HTTP requests and routes them to the import service
type HTTPHandler struct {
	svc *service.Service
}

func NewHTTPHandler(svc *service.Service) *HTTPHandler {
	return &HTTPHandler{svc: svc}
}

func NewFiberApp(svc *service.Service, devMode bool) *fiber.App {
	// Create handler
	h := NewHTTPHandler(svc)

	// Initialize Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 35 * time.Second,
		IdleTimeout:  60 * time.Second,
	})

	// Global middleware (order matters)
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "${time} ${status} ${method} ${path} ${latency}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))

	// Health check (no rate limit)
	app.Get("/health", h.Health)

	// API v1 routes
	api := app.Group("/api/v1")

	// Rate limiting, per-client behind proxies
	maxReq := rateLimitRate
	if devMode {
		maxReq = rateLimitRate * 2
	}
	api.Use(limiter.New(limiter.Config{
		Max:        maxReq,
		Expiration: 1 * time.Second,
		KeyGenerator: func(c *fiber.Ctx) string {
			if xff := c.Get("X-Forwarded-For"); xff != "" {
				if idx := strings.Index(xff, ","); idx != -1 {
					return strings.TrimSpace(xff[:idx])
				}
				return xff
			}
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(core.ErrorResponse{
				Error:   "rate limit exceeded",
				Code:    core.ErrRateLimitExceeded,
				Details: fmt.Sprintf("%d requests per second allowed", maxReq),
			})
		},
	}))

	// Content-Type validation for POST requests
	api.Use(contentTypeValidator)

	// Middleware validation for sanitization
	api.Use(validationMiddleware)

	// Register import routes
	api.Post("/games/import", h.ImportGame)
	api.Post("/games/import/batch", h.ImportBatch)
	api.Get("/games/:gameId", h.GetGame)
	api.Get("/games", h.ListGames)

	return app
}

// contentTypeValidator ensures POST requests have application/json
func contentTypeValidator(c *fiber.Ctx) error {
	if c.Method() == fiber.MethodPost {
		contentType := c.Get("Content-Type")
		if contentType != "application/json" && contentType != "" {
			return c.Status(fiber.StatusUnsupportedMediaType).JSON(core.ErrorResponse{
				Error:   "unsupported media type",
				Code:    core.ErrInvalidContent,
				Details: "Content-Type must be application/json",
			})
		}
	}
	return c.Next()
}

// customErrorHandler provides consistent error responses
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	response := core.ErrorResponse{
		Error: "internal server error",
		Code:  core.ErrInternalError,
	}

	// Check if it's a Fiber error
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		response.Error = e.Message

		// Map HTTP status to error codes
		switch code {
		case fiber.StatusNotFound:
			response.Code = core.ErrGameNotFound
		case fiber.StatusBadRequest:
			response.Code = core.ErrInvalidRequest
		case fiber.StatusTooManyRequests:
			response.Code = core.ErrRateLimitExceeded
		}
	}

	return c.Status(code).JSON(response)
}

// pgnErrorResponse maps the closed pgn error taxonomy onto transport
// responses: format and header failures are client errors (400), a game
// that fails replay is semantically invalid (422).
func pgnErrorResponse(err error) (int, core.ErrorResponse) {
	var (
		missing       *pgn.MissingHeaderError
		invalidHeader *pgn.InvalidHeaderError
		invalidResult *pgn.InvalidResultError
		illegal       *pgn.IllegalMoveError
	)

	switch {
	case errors.As(err, &illegal):
		return fiber.StatusUnprocessableEntity, core.ErrorResponse{
			Error:   illegal.Error(),
			Code:    core.ErrIllegalMove,
			Details: illegal.Reason,
		}
	case errors.Is(err, pgn.ErrEmptyPgn),
		errors.As(err, &missing),
		errors.As(err, &invalidHeader),
		errors.As(err, &invalidResult):
		return fiber.StatusBadRequest, core.ErrorResponse{
			Error: err.Error(),
			Code:  core.ErrInvalidPGN,
		}
	default:
		return fiber.StatusInternalServerError, core.ErrorResponse{
			Error: "internal server error",
			Code:  core.ErrInternalError,
		}
	}
}

func gameResponse(imported *service.ImportedGame) core.GameResponse {
	game := imported.Game
	return core.GameResponse{
		GameID:   imported.GameID,
		Event:    game.Headers.Event,
		Site:     game.Headers.Site,
		Date:     game.Headers.Date,
		Round:    game.Headers.Round,
		White:    game.Headers.White,
		Black:    game.Headers.Black,
		Result:   game.Headers.Result.String(),
		Tags:     game.Headers.Other,
		Moves:    game.Moves,
		FinalFEN: game.FinalFEN,
		PlyCount: game.PlyCount,
	}
}

// Health check endpoint with storage status
func (h *HTTPHandler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "healthy",
		"time":    time.Now().Unix(),
		"storage": h.svc.GetStorageHealth(),
	})
}

// ImportGame validates a single PGN record and stores it
func (h *HTTPHandler) ImportGame(c *fiber.Ctx) error {
	// Ensure middleware validation ran
	validated, ok := c.Locals("validated").(bool)
	if !ok || !validated {
		return c.Status(fiber.StatusInternalServerError).JSON(core.ErrorResponse{
			Error: "validation bypass detected",
			Code:  core.ErrInternalError,
		})
	}

	// Retrieve validated parsed body
	validatedBody := c.Locals("validatedBody")
	if validatedBody == nil {
		return c.Status(fiber.StatusInternalServerError).JSON(core.ErrorResponse{
			Error: "validation data missing",
			Code:  core.ErrInternalError,
		})
	}
	req := *(validatedBody.(*core.ImportGameRequest))

	imported, err := h.svc.Import(req.PGN)
	if err != nil {
		status, resp := pgnErrorResponse(err)
		return c.Status(status).JSON(resp)
	}

	return c.Status(fiber.StatusCreated).JSON(gameResponse(imported))
}

// ImportBatch validates several PGN records concurrently
func (h *HTTPHandler) ImportBatch(c *fiber.Ctx) error {
	validated, ok := c.Locals("validated").(bool)
	if !ok || !validated {
		return c.Status(fiber.StatusInternalServerError).JSON(core.ErrorResponse{
			Error: "validation bypass detected",
			Code:  core.ErrInternalError,
		})
	}

	validatedBody := c.Locals("validatedBody")
	if validatedBody == nil {
		return c.Status(fiber.StatusInternalServerError).JSON(core.ErrorResponse{
			Error: "validation data missing",
			Code:  core.ErrInternalError,
		})
	}
	req := *(validatedBody.(*core.ImportBatchRequest))

	results := h.svc.ImportBatch(c.UserContext(), req.PGNs)

	resp := core.BatchImportResponse{
		Results: make([]core.BatchItemResponse, 0, len(results)),
	}
	for _, r := range results {
		item := core.BatchItemResponse{Index: r.Index}
		if r.Err != nil {
			_, errResp := pgnErrorResponse(r.Err)
			item.Error = &errResp
			resp.Failed++
		} else {
			game := gameResponse(r.Game)
			item.Game = &game
			resp.Imported++
		}
		resp.Results = append(resp.Results, item)
	}

	return c.JSON(resp)
}

// GetGame retrieves a stored game with its move history
func (h *HTTPHandler) GetGame(c *fiber.Ctx) error {
	gameID := c.Params("gameId")

	// Validate UUID format
	if !isValidUUID(gameID) {
		return c.Status(fiber.StatusBadRequest).JSON(core.ErrorResponse{
			Error:   "invalid game ID format",
			Code:    core.ErrInvalidRequest,
			Details: "game ID must be a valid UUID",
		})
	}

	record, moves, err := h.svc.GetGame(gameID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(core.ErrorResponse{
				Error: "game not found",
				Code:  core.ErrGameNotFound,
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(core.ErrorResponse{
			Error: "internal server error",
			Code:  core.ErrInternalError,
		})
	}

	sans := make([]string, len(moves))
	for i, m := range moves {
		sans[i] = m.SAN
	}

	return c.JSON(core.GameResponse{
		GameID:   record.GameID,
		Event:    record.Event,
		Site:     record.Site,
		Date:     record.Date,
		Round:    record.Round,
		White:    record.White,
		Black:    record.Black,
		Result:   record.Result,
		Tags:     record.Tags,
		Moves:    sans,
		FinalFEN: record.FinalFEN,
		PlyCount: record.PlyCount,
	})
}

// ListGames pages through stored games, newest first
func (h *HTTPHandler) ListGames(c *fiber.Ctx) error {
	cursor := c.Query("cursor")
	player := c.Query("player")

	limit, err := strconv.Atoi(c.Query("limit", strconv.Itoa(defaultPageSize)))
	if err != nil || limit < 1 || limit > maxPageSize {
		return c.Status(fiber.StatusBadRequest).JSON(core.ErrorResponse{
			Error:   "invalid limit",
			Code:    core.ErrInvalidRequest,
			Details: fmt.Sprintf("limit must be between 1 and %d", maxPageSize),
		})
	}

	records, nextCursor, err := h.svc.ListGames(cursor, limit, player)
	if err != nil {
		if errors.Is(err, storage.ErrInvalidCursor) {
			return c.Status(fiber.StatusBadRequest).JSON(core.ErrorResponse{
				Error: "invalid cursor",
				Code:  core.ErrInvalidCursor,
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(core.ErrorResponse{
			Error: "internal server error",
			Code:  core.ErrInternalError,
		})
	}

	resp := core.GameListResponse{
		Games:      make([]core.GameSummary, 0, len(records)),
		NextCursor: nextCursor,
	}
	for _, r := range records {
		resp.Games = append(resp.Games, core.GameSummary{
			GameID:     r.GameID,
			White:      r.White,
			Black:      r.Black,
			Result:     r.Result,
			PlyCount:   r.PlyCount,
			ImportedAt: r.ImportedAtUTC / 1_000_000,
		})
	}

	return c.JSON(resp)
}
