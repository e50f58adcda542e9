package server

import (
	"errors"

	"forumverse/internal/models"
	"forumverse/internal/textassist"

	"github.com/gofiber/fiber/v2"
)

// SummarizeThread handles POST /api/threads/:id/summarize
// @Summary Summarize thread
// @Description Produce a short summary of a thread via the text assist service
// @Tags textassist
// @Produce json
// @Param id path int true "Thread ID"
// @Success 200 {object} object{summary=string}
// @Failure 404 {object} models.ErrorResponse
// @Failure 503 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /threads/{id}/summarize [post]
func (s *Server) SummarizeThread(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	thread, err := s.contentService.GetThread(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}

	summary, err := s.textAssist.Summarize(c.Context(), thread.Title+"\n\n"+thread.Content)
	if err != nil {
		if errors.Is(err, textassist.ErrDisabled) {
			return models.RespondWithError(c, fiber.StatusServiceUnavailable,
				models.NewValidationError("Text assist is not available"))
		}
		return models.RespondWithError(c, fiber.StatusBadGateway,
			models.NewInternalError(err))
	}

	return c.JSON(fiber.Map{"summary": summary})
}

// Translate handles POST /api/translate
// @Summary Translate text
// @Description Translate arbitrary text into a target language via the text assist service
// @Tags textassist
// @Accept json
// @Produce json
// @Param request body object{text=string,language=string} true "Text and target language"
// @Success 200 {object} object{result=string}
// @Failure 400 {object} models.ErrorResponse
// @Failure 503 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /translate [post]
func (s *Server) Translate(c *fiber.Ctx) error {
	var req struct {
		Text     string `json:"text"`
		Language string `json:"language"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.Text == "" || req.Language == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Text and language are required"))
	}

	result, err := s.textAssist.Translate(c.Context(), req.Text, req.Language)
	if err != nil {
		if errors.Is(err, textassist.ErrDisabled) {
			return models.RespondWithError(c, fiber.StatusServiceUnavailable,
				models.NewValidationError("Text assist is not available"))
		}
		return models.RespondWithError(c, fiber.StatusBadGateway,
			models.NewInternalError(err))
	}

	return c.JSON(fiber.Map{"result": result})
}
