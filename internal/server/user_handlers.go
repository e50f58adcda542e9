package server

import (
	"forumverse/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetUserProfile handles GET /api/users/:username/profile
// @Summary Get user profile
// @Description Get a public user profile with follower and following IDs
// @Tags users
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} object{user=models.User}
// @Failure 404 {object} models.ErrorResponse
// @Router /users/{username}/profile [get]
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	username := c.Params("username")

	user, err := s.accountService.GetProfile(c.Context(), username)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"user": user})
}

// GetUserThreads handles GET /api/users/:username/threads
// @Summary List a user's threads
// @Description List threads authored by the given user, newest first
// @Tags users
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} object{threads=[]models.Thread}
// @Failure 404 {object} models.ErrorResponse
// @Router /users/{username}/threads [get]
func (s *Server) GetUserThreads(c *fiber.Ctx) error {
	username := c.Params("username")

	threads, err := s.contentService.ListThreadsByAuthor(c.Context(), username)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"threads": threads})
}

// GetMyProfile handles GET /api/users/me
// @Summary Get own profile
// @Tags users
// @Produce json
// @Success 200 {object} object{user=models.User}
// @Security BearerAuth
// @Router /users/me [get]
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	user, err := s.userRepo.GetByID(c.Context(), currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}

	profile, err := s.accountService.GetProfile(c.Context(), user.Username)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"user": profile})
}

// UpdateMyProfile handles PUT /api/users/me
// @Summary Update own profile
// @Description Update display name and avatar; an empty avatar restores the default
// @Tags users
// @Accept json
// @Produce json
// @Param request body object{displayName=string,avatarUrl=string} true "Profile fields"
// @Success 200 {object} object{user=models.User}
// @Failure 400 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /users/me [put]
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	var req struct {
		DisplayName string `json:"displayName"`
		AvatarURL   string `json:"avatarUrl"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.accountService.UpdateProfile(c.Context(), currentUserID(c), req.DisplayName, req.AvatarURL)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"user": user})
}

// ChangePassword handles PUT /api/users/me/password
// @Summary Change password
// @Tags users
// @Accept json
// @Produce json
// @Param request body object{currentPassword=string,newPassword=string} true "Password change"
// @Success 200 {object} object{message=string}
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /users/me/password [put]
func (s *Server) ChangePassword(c *fiber.Ctx) error {
	var req struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if err := s.accountService.ChangePassword(c.Context(), currentUserID(c),
		req.CurrentPassword, req.NewPassword); err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Password updated"})
}

// ChangeEmail handles PUT /api/users/me/email
// @Summary Change email
// @Tags users
// @Accept json
// @Produce json
// @Param request body object{newEmail=string,password=string} true "Email change"
// @Success 200 {object} object{message=string}
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /users/me/email [put]
func (s *Server) ChangeEmail(c *fiber.Ctx) error {
	var req struct {
		NewEmail string `json:"newEmail"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if err := s.accountService.ChangeEmail(c.Context(), currentUserID(c),
		req.NewEmail, req.Password); err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Email updated"})
}

// DeleteMyAccount handles DELETE /api/users/me
// @Summary Delete own account
// @Description Delete the account after password confirmation. Threads and comments survive with a detached author.
// @Tags users
// @Accept json
// @Produce json
// @Param request body object{password=string} true "Password confirmation"
// @Success 200 {object} object{message=string}
// @Failure 401 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /users/me [delete]
func (s *Server) DeleteMyAccount(c *fiber.Ctx) error {
	var req struct {
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if err := s.accountService.DeleteOwnAccount(c.Context(), currentUserID(c), req.Password); err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Account deleted"})
}
