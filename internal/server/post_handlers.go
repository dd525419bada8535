package server

import (
	"inkwell/internal/models"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreatePost publishes a post through the duplicate guard. A submission
// identical to any post created within the trailing 30 seconds, by any
// author, is answered with 200 and the original post id instead of
// creating a twin.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req struct {
		Title           string                 `json:"title"`
		Category        string                 `json:"category"`
		Summary         string                 `json:"summary"`
		Sections        []service.SectionInput `json:"sections"`
		TableOfContents []string               `json:"tableOfContents"`
		Tags            []string               `json:"tags"`
		ReadTime        string                 `json:"readTime"`
		AuthorUID       string                 `json:"authorUid"`
	}
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, models.NewValidationError("Invalid request body"))
	}
	setUserUID(c, req.AuthorUID)

	result, err := s.publishService.CreatePost(c.UserContext(), service.CreatePostInput{
		Title:           req.Title,
		Category:        req.Category,
		Summary:         req.Summary,
		Sections:        req.Sections,
		TableOfContents: req.TableOfContents,
		Tags:            req.Tags,
		ReadTime:        req.ReadTime,
		AuthorUID:       req.AuthorUID,
	})
	if err != nil {
		return respondError(c, err)
	}

	if result.Duplicate {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"success":   true,
			"duplicate": true,
			"postId":    result.Post.ID,
		})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"postId":  result.Post.ID,
		"post":    result.Post,
	})
}

// GetPosts returns published posts, newest first.
func (s *Server) GetPosts(c *fiber.Ctx) error {
	p := parsePagination(c, 10)
	posts, total, err := s.publishService.ListPosts(c.UserContext(), c.Query("category"), p.Page, p.Limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"posts":   posts,
		"total":   total,
		"page":    p.Page,
		"limit":   p.Limit,
	})
}

// GetPost returns one post by id.
func (s *Server) GetPost(c *fiber.Ctx) error {
	post, err := s.publishService.GetPost(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"post":    post,
	})
}

// UpdatePost applies an owner edit to a post.
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	var req struct {
		AuthorUID string                 `json:"authorUid"`
		Title     string                 `json:"title"`
		Category  string                 `json:"category"`
		Summary   string                 `json:"summary"`
		Sections  []service.SectionInput `json:"sections"`
		Tags      []string               `json:"tags"`
		ReadTime  string                 `json:"readTime"`
	}
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, models.NewValidationError("Invalid request body"))
	}
	setUserUID(c, req.AuthorUID)

	post, err := s.publishService.UpdatePost(c.UserContext(), service.UpdatePostInput{
		PostID:    c.Params("id"),
		AuthorUID: req.AuthorUID,
		Title:     req.Title,
		Category:  req.Category,
		Summary:   req.Summary,
		Sections:  req.Sections,
		Tags:      req.Tags,
		ReadTime:  req.ReadTime,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"post":    post,
	})
}

// DeletePost hard-deletes a post, owner-only.
func (s *Server) DeletePost(c *fiber.Ctx) error {
	authorUID := c.Query("authorUid")
	setUserUID(c, authorUID)

	if err := s.publishService.DeletePost(c.UserContext(), c.Params("id"), authorUID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}
