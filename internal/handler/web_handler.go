package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"quizcraft/internal/domain"
	"quizcraft/internal/dto"
	"quizcraft/internal/service"
	"quizcraft/internal/validation"

	"github.com/gofiber/fiber/v2"
)

const layout = "layouts/base"

// RateLimiter gates quiz generation per client.
type RateLimiter interface {
	IsLimited(ctx context.Context, clientID string) bool
}

// WebHandler serves the HTML pages.
type WebHandler struct {
	service   service.QuizService
	limiter   RateLimiter
	validator *validation.Validator
}

func NewWebHandler(service service.QuizService, limiter RateLimiter, validator *validation.Validator) *WebHandler {
	return &WebHandler{
		service:   service,
		limiter:   limiter,
		validator: validator,
	}
}

// Index renders the empty generation form.
func (h *WebHandler) Index(c *fiber.Ctx) error {
	return h.renderForm(c, dto.DefaultGenerateForm(), "", fiber.StatusOK)
}

// Generate handles the form submission. Every failure re-renders the form
// with the submitted values; success redirects to the saved quiz.
func (h *WebHandler) Generate(c *fiber.Ctx) error {
	ctx := c.UserContext()

	form := dto.GenerateForm{
		Title:        validation.NormalizeTitle(c.FormValue("title")),
		Text:         strings.TrimSpace(c.FormValue("text")),
		NumQuestions: c.FormValue("num_questions", "10"),
		Difficulty:   c.FormValue("difficulty", domain.DefaultDifficulty),
		Language:     c.FormValue("language", domain.DefaultLanguage),
	}

	// The upload is only consulted when no text was typed.
	if form.Text == "" {
		if upload, err := c.FormFile("upload"); err == nil && upload != nil {
			if err := h.validator.ValidateUpload(upload.Filename, upload.Size); err != nil {
				return h.renderForm(c, form, messageOf(err), fiber.StatusOK)
			}
			text, err := h.readUpload(upload)
			if err != nil {
				return domain.NewInternalError("Failed to read upload", err)
			}
			form.Text = text
		}
	}

	if err := h.validator.ValidateText(form.Text); err != nil {
		return h.renderForm(c, form, messageOf(err), fiber.StatusOK)
	}

	difficulty := validation.NormalizeDifficulty(form.Difficulty)
	language := validation.NormalizeLanguage(form.Language)

	if h.limiter.IsLimited(ctx, ClientIP(c)) {
		return h.renderForm(c, form, domain.NewRateLimitedError().Message, fiber.StatusTooManyRequests)
	}

	quiz, err := h.service.Generate(ctx, domain.GenerationRequest{
		Text:         form.Text,
		NumQuestions: validation.NormalizeQuestionCount(form.NumQuestions),
		Difficulty:   difficulty,
		Language:     language,
		Title:        form.Title,
	})
	if err != nil {
		switch domain.CodeOf(err) {
		case domain.CodeGeneration, domain.CodeConfiguration:
			return h.renderForm(c, form, generationFailureMessage(err), fiber.StatusOK)
		}
		return err
	}

	return c.Redirect("/quiz/"+quiz.ID+"/?saved=1", fiber.StatusSeeOther)
}

// History lists every stored quiz, newest first.
func (h *WebHandler) History(c *fiber.Ctx) error {
	quizzes, err := h.service.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.Render("history", fiber.Map{
		"PageTitle": "History",
		"Quizzes":   quizzes,
	}, layout)
}

// Detail shows one quiz.
func (h *WebHandler) Detail(c *fiber.Ctx) error {
	view, err := h.service.Detail(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.handleLookupError(c, err)
	}
	return c.Render("quiz_detail", fiber.Map{
		"PageTitle": view.Quiz.DisplayTitle(),
		"View":      view,
		"Saved":     c.Query("saved") == "1",
	}, layout)
}

func (h *WebHandler) DownloadJSON(c *fiber.Ctx) error {
	dl, err := h.service.ExportJSON(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.handleLookupError(c, err)
	}
	return sendDownload(c, dl)
}

func (h *WebHandler) DownloadMarkdown(c *fiber.Ctx) error {
	dl, err := h.service.ExportMarkdown(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.handleLookupError(c, err)
	}
	return sendDownload(c, dl)
}

// Delete removes a quiz. Only registered for POST.
func (h *WebHandler) Delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), c.Params("id")); err != nil {
		return h.handleLookupError(c, err)
	}
	return c.Redirect("/history/", fiber.StatusSeeOther)
}

func (h *WebHandler) renderForm(c *fiber.Ctx, form dto.GenerateForm, errMsg string, status int) error {
	return c.Status(status).Render("index", fiber.Map{
		"Form":           form,
		"Error":          errMsg,
		"Difficulties":   domain.Difficulties,
		"Languages":      domain.Languages,
		"QuestionCounts": domain.QuestionCounts,
	}, layout)
}

func (h *WebHandler) handleLookupError(c *fiber.Ctx, err error) error {
	if domain.IsNotFound(err) {
		return c.Status(fiber.StatusNotFound).Render("error/not_found", fiber.Map{
			"PageTitle": "Not found",
			"Message":   messageOf(err),
		}, layout)
	}
	return err
}

func (h *WebHandler) readUpload(upload *multipart.FileHeader) (string, error) {
	f, err := upload.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	var r io.Reader = f
	if limit := h.validator.MaxUploadBytes(); limit > 0 {
		r = io.LimitReader(f, limit)
	}
	content, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return validation.DecodeUpload(content), nil
}

func sendDownload(c *fiber.Ctx, dl *service.Download) error {
	c.Set(fiber.HeaderContentType, dl.ContentType+"; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, dl.Filename))
	return c.SendString(dl.Content)
}

func messageOf(err error) string {
	var domainErr *domain.DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Message
	}
	return err.Error()
}

func generationFailureMessage(err error) string {
	var domainErr *domain.DomainError
	if errors.As(err, &domainErr) && domainErr.Code == domain.CodeGeneration && domainErr.Cause != nil {
		return "Quiz generation failed: " + domainErr.Cause.Error()
	}
	return "Quiz generation failed: " + messageOf(err)
}
