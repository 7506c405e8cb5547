package web

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/aliskhannn/studyquiz/internal/domain/entities"
	"github.com/aliskhannn/studyquiz/internal/service"
)

type startQuizRequest struct {
	Mode     entities.QuizMode `json:"mode" validate:"required,oneof=chapter practice exclude_mastered incorrect_only"`
	Category string            `json:"category" validate:"required_if=Mode chapter,max=100"`
	Count    lenientInt        `json:"count"`
}

type answerItem struct {
	QuestionID int64      `json:"question_id" validate:"required,gt=0"`
	Choice     lenientInt `json:"choice"`
}

type submitRequest struct {
	Answers []answerItem `json:"answers" validate:"dive"`
}

// answerMap converts the submission into question ID to choice. Missing or
// malformed choices count as unanswered; a repeated question keeps its last choice.
func (r submitRequest) answerMap() map[int64]int {
	out := make(map[int64]int, len(r.Answers))
	for _, a := range r.Answers {
		out[a.QuestionID] = a.Choice.Or(entities.Unanswered)
	}
	return out
}

type checkRequest struct {
	QuestionID int64      `json:"question_id" validate:"required,gt=0"`
	Choice     lenientInt `json:"choice"`
}

func (h *Handler) categories(c *fiber.Ctx) error {
	categories, err := h.quizService.Categories(c.UserContext())
	if err != nil {
		return err
	}

	out := make([]categoryView, 0, len(categories))
	for _, cat := range categories {
		out = append(out, categoryView{Name: cat.Name, QuestionCount: cat.QuestionCount})
	}

	return c.JSON(out)
}

func (h *Handler) startQuiz(c *fiber.Ctx) error {
	var req startQuizRequest
	if err := h.bind(c, &req); err != nil {
		return err
	}

	user := currentUser(c)
	resp := quizResponse{
		Mode:      req.Mode,
		Category:  req.Category,
		Questions: []questionView{},
	}

	questions, err := h.quizService.StartQuiz(c.UserContext(), user.ID, entities.QuizRequest{
		Mode:     req.Mode,
		Category: req.Category,
		Count:    req.Count.Or(0),
	})
	if err != nil {
		if errors.Is(err, service.ErrNoQuestionsAvailable) {
			resp.Message = msgNoQuestions
			return c.JSON(resp)
		}
		return err
	}

	for _, q := range questions {
		resp.Questions = append(resp.Questions, newQuestionView(q))
	}

	return c.JSON(resp)
}

func (h *Handler) submitQuiz(c *fiber.Ctx) error {
	var req submitRequest
	if err := h.bind(c, &req); err != nil {
		return err
	}

	user := currentUser(c)
	report, err := h.scoringService.Submit(c.UserContext(), user.ID, req.answerMap())
	if err != nil {
		return err
	}

	h.logger.Debug("quiz graded",
		zap.Int64("user_id", user.ID),
		zap.Int("score", report.Score),
		zap.Int("total", report.Total),
	)

	return c.JSON(newReportResponse(report))
}

func (h *Handler) checkAnswer(c *fiber.Ctx) error {
	var req checkRequest
	if err := h.bind(c, &req); err != nil {
		return err
	}

	check, err := h.scoringService.CheckAnswer(c.UserContext(), req.QuestionID, req.Choice.Or(entities.Unanswered))
	if err != nil {
		return err
	}

	return c.JSON(checkResponse{
		Correct:       check.IsCorrect,
		CorrectAnswer: check.CorrectChoice,
		CorrectText:   check.CorrectText,
	})
}

func (h *Handler) history(c *fiber.Ctx) error {
	stats, err := h.scoringService.History(c.UserContext(), currentUser(c).ID)
	if err != nil {
		return err
	}

	return c.JSON(historyResponse{
		Answered:          stats.Answered,
		Correct:           stats.Correct,
		QuestionsAnswered: stats.QuestionsAnswered,
		Mastered:          stats.Mastered,
		Accuracy:          stats.Accuracy(),
	})
}

func (h *Handler) resetHistory(c *fiber.Ctx) error {
	if err := h.resetService.ResetUser(c.UserContext(), currentUser(c).ID); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
