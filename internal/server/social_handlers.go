package server

import (
	"inkwell/internal/models"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

// SetFollowState follows or unfollows a target user on behalf of the caller.
func (s *Server) SetFollowState(c *fiber.Ctx) error {
	var req struct {
		CurrentUserUID string `json:"currentUserUid"`
		TargetUserUID  string `json:"targetUserUid"`
		Action         string `json:"action"`
	}
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, models.NewValidationError("Invalid request body"))
	}
	setUserUID(c, req.CurrentUserUID)

	var follow bool
	switch req.Action {
	case "follow":
		follow = true
	case "unfollow":
		follow = false
	default:
		return respondError(c, models.NewValidationError("action must be follow or unfollow"))
	}

	isFollowing, err := s.socialService.SetFollowState(c.UserContext(), service.SetFollowStateInput{
		CurrentUserUID: req.CurrentUserUID,
		TargetUserUID:  req.TargetUserUID,
		Follow:         follow,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success":     true,
		"isFollowing": isFollowing,
	})
}

// GetFollowers expands a user's followers set into profile projections.
func (s *Server) GetFollowers(c *fiber.Ctx) error {
	uid := c.Query("uid")
	if uid == "" {
		return respondError(c, models.NewValidationError("uid is required"))
	}
	followers, err := s.socialService.ListFollowers(c.UserContext(), uid)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success":   true,
		"followers": followers,
	})
}

// GetFollowing expands a user's following set into profile projections.
func (s *Server) GetFollowing(c *fiber.Ctx) error {
	uid := c.Query("uid")
	if uid == "" {
		return respondError(c, models.NewValidationError("uid is required"))
	}
	following, err := s.socialService.ListFollowing(c.UserContext(), uid)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success":   true,
		"following": following,
	})
}
