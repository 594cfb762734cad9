package handler

import (
	"fmt"

	"quizmaster/internal/domain"
	"quizmaster/internal/dto"
	"quizmaster/internal/logger"
	"quizmaster/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// QuizHandler handles quiz-related HTTP requests
type QuizHandler struct {
	service service.QuizService
}

// NewQuizHandler creates a new QuizHandler instance
func NewQuizHandler(service service.QuizService) *QuizHandler {
	return &QuizHandler{
		service: service,
	}
}

// RegisterRoutes mounts the quiz endpoints under the given router.
func (h *QuizHandler) RegisterRoutes(api fiber.Router) {
	quizzes := api.Group("/quizzes")
	quizzes.Post("/", h.StartQuiz)
	quizzes.Get("/:id/question", h.CurrentQuestion)
	quizzes.Post("/:id/answer", h.SubmitAnswer)
	quizzes.Get("/:id/progress", h.Progress)
	quizzes.Get("/:id/summary", h.ScoreSummary)
	quizzes.Delete("/:id", h.ResetQuiz)
	quizzes.Get("/:id/export/csv", h.ExportCSV)
	quizzes.Get("/:id/export/docx", h.ExportDOCX)
}

// StartQuiz handles POST /api/quizzes
func (h *QuizHandler) StartQuiz(c *fiber.Ctx) error {
	var req dto.StartQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("Invalid request body")
	}

	logger.Get().Info("Starting quiz",
		zap.String("topic", req.Topic),
		zap.Int("num_questions", req.NumQuestions))

	resp, err := h.service.StartQuiz(c.UserContext(), req.Topic, req.NumQuestions)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

// CurrentQuestion handles GET /api/quizzes/:id/question
func (h *QuizHandler) CurrentQuestion(c *fiber.Ctx) error {
	resp, err := h.service.CurrentQuestion(c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// SubmitAnswer handles POST /api/quizzes/:id/answer
func (h *QuizHandler) SubmitAnswer(c *fiber.Ctx) error {
	var req dto.SubmitAnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("Invalid request body")
	}

	resp, err := h.service.SubmitAnswer(c.Params("id"), req.Answer)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// Progress handles GET /api/quizzes/:id/progress
func (h *QuizHandler) Progress(c *fiber.Ctx) error {
	resp, err := h.service.Progress(c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// ScoreSummary handles GET /api/quizzes/:id/summary
func (h *QuizHandler) ScoreSummary(c *fiber.Ctx) error {
	resp, err := h.service.ScoreSummary(c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// ResetQuiz handles DELETE /api/quizzes/:id
func (h *QuizHandler) ResetQuiz(c *fiber.Ctx) error {
	if err := h.service.ResetQuiz(c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ExportCSV handles GET /api/quizzes/:id/export/csv
func (h *QuizHandler) ExportCSV(c *fiber.Ctx) error {
	artifact, err := h.service.ExportCSV(c.Params("id"))
	if err != nil {
		return err
	}
	return sendAttachment(c, artifact, "text/csv")
}

// ExportDOCX handles GET /api/quizzes/:id/export/docx
func (h *QuizHandler) ExportDOCX(c *fiber.Ctx) error {
	artifact, err := h.service.ExportDOCX(c.Params("id"))
	if err != nil {
		return err
	}
	return sendAttachment(c, artifact, "application/vnd.openxmlformats-officedocument.wordprocessingml.document")
}

func sendAttachment(c *fiber.Ctx, artifact *service.Export, contentType string) error {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", artifact.Filename))
	return c.Send(artifact.Data)
}
