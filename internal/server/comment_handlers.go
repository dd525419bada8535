package server

import (
	"inkwell/internal/models"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetComments returns the threaded comments of a post.
func (s *Server) GetComments(c *fiber.Ctx) error {
	postID := c.Query("postId")
	threads, total, err := s.commentService.ListThread(c.UserContext(), postID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success":  true,
		"comments": threads,
		"total":    total,
	})
}

// CreateComment creates a comment or a single-level reply on a post.
func (s *Server) CreateComment(c *fiber.Ctx) error {
	var req struct {
		PostID    string  `json:"postId"`
		Content   string  `json:"content"`
		ParentID  *string `json:"parentId"`
		AuthorUID string  `json:"authorUid"`
	}
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, models.NewValidationError("Invalid request body"))
	}
	setUserUID(c, req.AuthorUID)

	comment, err := s.commentService.Create(c.UserContext(), service.CreateCommentInput{
		PostID:    req.PostID,
		AuthorUID: req.AuthorUID,
		Content:   req.Content,
		ParentID:  req.ParentID,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"comment": comment,
		"message": "Comment created",
	})
}

// UpdateComment applies an owner edit to a comment.
func (s *Server) UpdateComment(c *fiber.Ctx) error {
	var req struct {
		CommentID string `json:"commentId"`
		Content   string `json:"content"`
		AuthorUID string `json:"authorUid"`
	}
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, models.NewValidationError("Invalid request body"))
	}
	setUserUID(c, req.AuthorUID)

	comment, err := s.commentService.Update(c.UserContext(), service.UpdateCommentInput{
		CommentID: req.CommentID,
		AuthorUID: req.AuthorUID,
		Content:   req.Content,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"comment": comment,
	})
}

// DeleteComment soft-deletes a comment, owner-only.
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	commentID := c.Query("commentId")
	authorUID := c.Query("authorUid")
	setUserUID(c, authorUID)

	if err := s.commentService.Delete(c.UserContext(), commentID, authorUID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

// ToggleCommentLike sets the caller's like membership on a comment.
func (s *Server) ToggleCommentLike(c *fiber.Ctx) error {
	var req struct {
		CommentID string `json:"commentId"`
		UID       string `json:"uid"`
		Action    string `json:"action"`
	}
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, models.NewValidationError("Invalid request body"))
	}
	setUserUID(c, req.UID)

	var liked bool
	switch req.Action {
	case "like":
		liked = true
	case "unlike":
		liked = false
	default:
		return respondError(c, models.NewValidationError("action must be like or unlike"))
	}

	likes, err := s.commentService.ToggleLike(c.UserContext(), req.CommentID, req.UID, liked)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"likes":   likes,
	})
}
