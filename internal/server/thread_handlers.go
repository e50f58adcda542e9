package server

import (
	"forumverse/internal/models"

	"github.com/gofiber/fiber/v2"
)

// ListThreads handles GET /api/threads
// @Summary List threads
// @Description List threads newest first with author info and rendered content
// @Tags threads
// @Produce json
// @Param limit query int false "Max results (default 20, max 100)"
// @Param offset query int false "Offset for pagination"
// @Success 200 {object} object{threads=[]models.Thread}
// @Router /threads [get]
func (s *Server) ListThreads(c *fiber.Ctx) error {
	p := parsePagination(c, 20)

	threads, err := s.contentService.ListThreads(c.Context(), p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"threads": threads})
}

// GetThread handles GET /api/threads/:id
// @Summary Get thread
// @Description Get a single thread with its full comment tree
// @Tags threads
// @Produce json
// @Param id path int true "Thread ID"
// @Success 200 {object} object{thread=models.Thread}
// @Failure 404 {object} models.ErrorResponse
// @Router /threads/{id} [get]
func (s *Server) GetThread(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	thread, err := s.contentService.GetThread(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"thread": thread})
}

// CreateThread handles POST /api/threads
// @Summary Create thread
// @Description Create a new thread; followers of the author are notified
// @Tags threads
// @Accept json
// @Produce json
// @Param request body object{title=string,content=string} true "Thread content"
// @Success 201 {object} object{thread=models.Thread}
// @Failure 400 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /threads [post]
func (s *Server) CreateThread(c *fiber.Ctx) error {
	var req struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	thread, err := s.contentService.CreateThread(c.Context(), currentUserID(c), req.Title, req.Content)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"thread": thread})
}

// AddComment handles POST /api/threads/:id/comments
// @Summary Add comment
// @Description Add a comment or reply to a thread
// @Tags threads
// @Accept json
// @Produce json
// @Param id path int true "Thread ID"
// @Param request body object{content=string,parentId=int} true "Comment content; parentId makes it a reply"
// @Success 201 {object} object{comment=models.Comment}
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /threads/{id}/comments [post]
func (s *Server) AddComment(c *fiber.Ctx) error {
	threadID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Content  string `json:"content"`
		ParentID *uint  `json:"parentId"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	comment, err := s.contentService.AddComment(c.Context(), threadID, currentUserID(c), req.Content, req.ParentID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"comment": comment})
}

// VoteThread handles POST /api/threads/:id/vote
// @Summary Vote on thread
// @Description Register an up or down vote on a thread
// @Tags threads
// @Accept json
// @Produce json
// @Param id path int true "Thread ID"
// @Param request body object{direction=string} true "Vote direction: up or down"
// @Success 200 {object} object{message=string}
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /threads/{id}/vote [post]
func (s *Server) VoteThread(c *fiber.Ctx) error {
	threadID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Direction string `json:"direction"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if err := s.contentService.VoteThread(c.Context(), threadID, currentUserID(c),
		models.VoteDirection(req.Direction)); err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Vote recorded"})
}

// VoteComment handles POST /api/comments/:id/vote
// @Summary Vote on comment
// @Description Register an up or down vote on a comment
// @Tags comments
// @Accept json
// @Produce json
// @Param id path int true "Comment ID"
// @Param request body object{direction=string} true "Vote direction: up or down"
// @Success 200 {object} object{message=string}
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /comments/{id}/vote [post]
func (s *Server) VoteComment(c *fiber.Ctx) error {
	commentID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Direction string `json:"direction"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if err := s.contentService.VoteComment(c.Context(), commentID, currentUserID(c),
		models.VoteDirection(req.Direction)); err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Vote recorded"})
}
