package server

import (
	"inkwell/internal/models"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ApplyInteraction mutates the caller's liked or saved set for a post.
func (s *Server) ApplyInteraction(c *fiber.Ctx) error {
	var req struct {
		UID      string `json:"uid"`
		Action   string `json:"action"`
		TargetID string `json:"targetId"`
	}
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, models.NewValidationError("Invalid request body"))
	}
	setUserUID(c, req.UID)

	data, err := s.interactionService.Apply(c.UserContext(), service.ApplyInteractionInput{
		UID:      req.UID,
		Action:   req.Action,
		TargetID: req.TargetID,
	})
	if err != nil {
		return respondError(c, err)
	}
	if data == nil {
		data = []string{}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Interaction " + req.Action + " applied",
		"data":    data,
	})
}

// GetInteractions expands a user's liked and/or saved sets into post
// summaries.
func (s *Server) GetInteractions(c *fiber.Ctx) error {
	uid := c.Query("uid")
	if uid == "" {
		return respondError(c, models.NewValidationError("uid is required"))
	}

	ctx := c.UserContext()
	switch c.Query("type", "both") {
	case "liked":
		liked, err := s.interactionService.ListPosts(ctx, uid, models.InteractionLiked)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"success": true, "data": liked})
	case "saved":
		saved, err := s.interactionService.ListPosts(ctx, uid, models.InteractionSaved)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"success": true, "data": saved})
	case "both":
		liked, err := s.interactionService.ListPosts(ctx, uid, models.InteractionLiked)
		if err != nil {
			return respondError(c, err)
		}
		saved, err := s.interactionService.ListPosts(ctx, uid, models.InteractionSaved)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{
			"success": true,
			"data": fiber.Map{
				"liked": liked,
				"saved": saved,
			},
		})
	default:
		return respondError(c, models.NewValidationError("type must be liked, saved or both"))
	}
}
