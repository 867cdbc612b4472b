package server

import (
	"errors"
	"strconv"
	"strings"

	"driftline/internal/middleware"
	"driftline/internal/models"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten signals that the helper already wrote an error response
// to the client; callers should return nil to avoid a second write.
var errResponseWritten = errors.New("error response already written")

// requireParam extracts a non-empty path parameter, writing a 400 response
// when it is missing.
func requireParam(c *fiber.Ctx, name string) (string, error) {
	value := c.Params(name)
	if value == "" {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid "+humanizeParam(name)))
		return "", errResponseWritten
	}
	return value, nil
}

// humanizeParam converts a route param name like "requestId" into a
// human-friendly label like "request ID" for error messages.
func humanizeParam(name string) string {
	if name == "id" {
		return "ID"
	}
	if strings.HasSuffix(name, "Id") {
		return strings.ToLower(strings.TrimSuffix(name, "Id")) + " ID"
	}
	return name
}

// pageParams carries the pagination inputs shared by all listing endpoints.
type pageParams struct {
	Cursor string
	Limit  int
}

// parsePagination reads cursor and limit query parameters. The cursor is
// opaque and passed through untouched; a malformed or non-positive limit is
// a client error. When limit is absent, def applies.
func (s *Server) parsePagination(c *fiber.Ctx, def int) (pageParams, error) {
	params := pageParams{
		Cursor: c.Query("cursor"),
		Limit:  def,
	}

	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			_ = models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Invalid limit"))
			return params, errResponseWritten
		}
		params.Limit = limit
	}

	return params, nil
}

// currentUserID returns the authenticated caller's ID. AuthRequired
// guarantees the local is set on protected routes.
func currentUserID(c *fiber.Ctx) string {
	userID, _ := c.Locals("userID").(string)
	return userID
}

// persist flushes the store after a mutation. A failed flush is logged but
// not surfaced: the mutation already happened in memory and the response
// should reflect it.
func (s *Server) persist(c *fiber.Ctx) {
	if err := s.store.Save(); err != nil {
		middleware.Logger.ErrorContext(c.UserContext(), "failed to persist store",
			"error", err, "path", s.store.Path())
	}
}
