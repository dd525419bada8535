package server

import (
	"inkwell/internal/models"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateUser registers a new user account.
func (s *Server) CreateUser(c *fiber.Ctx) error {
	var req struct {
		UID      string `json:"uid"`
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Bio      string `json:"bio"`
		Location string `json:"location"`
		Avatar   string `json:"avatar"`
		Website  string `json:"website"`
	}
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, models.NewValidationError("Invalid request body"))
	}
	setUserUID(c, req.UID)

	user, err := s.userService.Create(c.UserContext(), service.CreateUserInput{
		UID:      req.UID,
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Bio:      req.Bio,
		Location: req.Location,
		Avatar:   req.Avatar,
		Website:  req.Website,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"user":    user,
	})
}

// GetUsers returns a single profile when ?uid= is given, otherwise a page
// of users.
func (s *Server) GetUsers(c *fiber.Ctx) error {
	if uid := c.Query("uid"); uid != "" {
		user, err := s.userService.Get(c.UserContext(), uid)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{
			"success": true,
			"user":    user,
		})
	}

	p := parsePagination(c, 20)
	users, err := s.userService.List(c.UserContext(), p.Limit, (p.Page-1)*p.Limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"users":   users,
	})
}

// UpdateUser applies a self-service profile edit.
func (s *Server) UpdateUser(c *fiber.Ctx) error {
	var req struct {
		UID      string `json:"uid"`
		Name     string `json:"name"`
		Bio      string `json:"bio"`
		Location string `json:"location"`
		Avatar   string `json:"avatar"`
		Website  string `json:"website"`
	}
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, models.NewValidationError("Invalid request body"))
	}
	setUserUID(c, req.UID)

	user, err := s.userService.Update(c.UserContext(), service.UpdateUserInput{
		UID:      req.UID,
		Name:     req.Name,
		Bio:      req.Bio,
		Location: req.Location,
		Avatar:   req.Avatar,
		Website:  req.Website,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"user":    user,
	})
}

// DeleteUser removes an account.
func (s *Server) DeleteUser(c *fiber.Ctx) error {
	uid := c.Query("uid")
	setUserUID(c, uid)
	if err := s.userService.Delete(c.UserContext(), uid); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

// SyncVerification records a verification callback from the identity provider.
func (s *Server) SyncVerification(c *fiber.Ctx) error {
	var req struct {
		UID      string `json:"uid"`
		Verified *bool  `json:"verified"`
	}
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, models.NewValidationError("Invalid request body"))
	}
	setUserUID(c, req.UID)

	verified := true
	if req.Verified != nil {
		verified = *req.Verified
	}
	user, err := s.userService.SyncVerification(c.UserContext(), req.UID, verified)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"user":    user,
	})
}
