package handler

import (
	"strings"

	"quizcraft/internal/domain"
	"quizcraft/internal/dto"
	"quizcraft/internal/logger"
	"quizcraft/internal/service"
	"quizcraft/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// APIHandler exposes quizzes as JSON under /api.
type APIHandler struct {
	service   service.QuizService
	limiter   RateLimiter
	validator *validation.Validator
}

// NewAPIHandler creates a new APIHandler instance
func NewAPIHandler(service service.QuizService, limiter RateLimiter, validator *validation.Validator) *APIHandler {
	return &APIHandler{
		service:   service,
		limiter:   limiter,
		validator: validator,
	}
}

// ListQuizzes godoc
// @Summary List generated quizzes
// @Description Returns every stored quiz, newest first
// @Tags quizzes
// @Produce json
// @Success 200 {object} dto.QuizListResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /quizzes [get]
func (h *APIHandler) ListQuizzes(c *fiber.Ctx) error {
	quizzes, err := h.service.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.ToQuizListResponse(quizzes))
}

// CreateQuiz godoc
// @Summary Generate a quiz
// @Description Sends the source text to the language model and stores the resulting quiz
// @Tags quizzes
// @Accept json
// @Produce json
// @Param request body dto.GenerateQuizRequest true "Generation request"
// @Success 201 {object} dto.QuizResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 429 {object} middleware.ErrorResponse
// @Failure 502 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /quizzes [post]
func (h *APIHandler) CreateQuiz(c *fiber.Ctx) error {
	var req dto.GenerateQuizRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Get().Warn("Invalid generation request body", zap.Error(err))
		return domain.NewValidationError("Invalid request body")
	}

	text := strings.TrimSpace(req.Text)
	if err := h.validator.ValidateText(text); err != nil {
		return err
	}
	if h.limiter.IsLimited(c.UserContext(), ClientIP(c)) {
		return domain.NewRateLimitedError()
	}

	quiz, err := h.service.Generate(c.UserContext(), domain.GenerationRequest{
		Text:         text,
		NumQuestions: validation.NormalizeQuestionCountInt(req.NumQuestions),
		Difficulty:   validation.NormalizeDifficulty(req.Difficulty),
		Language:     validation.NormalizeLanguage(req.Language),
		Title:        validation.NormalizeTitle(req.Title),
	})
	if err != nil {
		return err
	}

	view, err := h.service.Detail(c.UserContext(), quiz.ID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToQuizResponse(view))
}

// GetQuiz godoc
// @Summary Get a quiz
// @Description Returns a stored quiz with its parsed questions
// @Tags quizzes
// @Produce json
// @Param id path string true "Quiz ID"
// @Success 200 {object} dto.QuizResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /quizzes/{id} [get]
func (h *APIHandler) GetQuiz(c *fiber.Ctx) error {
	view, err := h.service.Detail(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.ToQuizResponse(view))
}

// DeleteQuiz godoc
// @Summary Delete a quiz
// @Tags quizzes
// @Param id path string true "Quiz ID"
// @Success 204
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /quizzes/{id} [delete]
func (h *APIHandler) DeleteQuiz(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
