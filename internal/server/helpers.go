// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"context"

	"inkwell/internal/middleware"
	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
)

// respondError maps an application error to its HTTP status and writes the
// standardized JSON error body.
func respondError(c *fiber.Ctx, err error) error {
	return models.RespondWithError(c, models.StatusForError(err), err)
}

// setUserUID records the acting user's uid in locals and in the request
// context so the structured logger and rate limiter can key on it.
func setUserUID(c *fiber.Ctx, uid string) {
	if uid == "" {
		return
	}
	c.Locals("userUID", uid)
	ctx := context.WithValue(c.UserContext(), middleware.UserUIDKey, uid)
	c.SetUserContext(ctx)
}

// Pagination holds parsed page/limit query parameters.
type Pagination struct {
	Page  int
	Limit int
}

const maxPaginationLimit = 50

// parsePagination extracts page and limit query parameters with the given default limit.
func parsePagination(c *fiber.Ctx, defaultLimit int) Pagination {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	limit := c.QueryInt("limit", defaultLimit)
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxPaginationLimit {
		limit = maxPaginationLimit
	}
	return Pagination{Page: page, Limit: limit}
}
