package web

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/aliskhannn/studyquiz/internal/service"
)

type createUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Nickname string `json:"nickname"`
	IsAdmin  bool   `json:"is_admin"`
}

type questionRequest struct {
	Question string    `json:"question"`
	Choices  [4]string `json:"choices"`
	Correct  int       `json:"correct"`
	Category string    `json:"category"`
	Hint     string    `json:"hint"`
	URL      string    `json:"url"`
}

func (r questionRequest) input() service.QuestionInput {
	return service.QuestionInput{
		Text:     r.Question,
		Choices:  r.Choices,
		Correct:  r.Correct,
		Category: r.Category,
		Hint:     r.Hint,
		URL:      r.URL,
	}
}

func (h *Handler) listUsers(c *fiber.Ctx) error {
	users, err := h.userService.List(c.UserContext())
	if err != nil {
		return err
	}

	out := make([]userView, 0, len(users))
	for _, u := range users {
		out = append(out, newUserView(u))
	}

	return c.JSON(out)
}

func (h *Handler) createUser(c *fiber.Ctx) error {
	var req createUserRequest
	if err := h.bind(c, &req); err != nil {
		return err
	}

	user, err := h.userService.Create(c.UserContext(), service.UserInput{
		Email:    req.Email,
		Password: req.Password,
		Nickname: req.Nickname,
		IsAdmin:  req.IsAdmin,
	})
	if err != nil {
		return err
	}

	h.logger.Info("user created",
		zap.Int64("admin_id", currentUser(c).ID),
		zap.Int64("user_id", user.ID),
	)

	return c.Status(fiber.StatusCreated).JSON(newUserView(user))
}

func (h *Handler) deleteUser(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	admin := currentUser(c)
	if id == admin.ID {
		return fiber.NewError(fiber.StatusBadRequest, msgCannotDeleteSelf)
	}

	if err := h.userService.Delete(c.UserContext(), id); err != nil {
		return err
	}

	h.logger.Info("user deleted",
		zap.Int64("admin_id", admin.ID),
		zap.Int64("user_id", id),
	)

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) listQuestions(c *fiber.Ctx) error {
	questions, err := h.questionService.List(c.UserContext(), c.Query("category"))
	if err != nil {
		return err
	}

	out := make([]adminQuestionView, 0, len(questions))
	for _, q := range questions {
		out = append(out, newAdminQuestionView(q))
	}

	return c.JSON(out)
}

func (h *Handler) getQuestion(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	q, err := h.questionService.Get(c.UserContext(), id)
	if err != nil {
		return err
	}

	return c.JSON(newAdminQuestionView(q))
}

func (h *Handler) createQuestion(c *fiber.Ctx) error {
	var req questionRequest
	if err := h.bind(c, &req); err != nil {
		return err
	}

	q, err := h.questionService.Create(c.UserContext(), req.input())
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(newAdminQuestionView(q))
}

func (h *Handler) updateQuestion(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var req questionRequest
	if err := h.bind(c, &req); err != nil {
		return err
	}

	q, err := h.questionService.Update(c.UserContext(), id, req.input())
	if err != nil {
		return err
	}

	h.logger.Info("question updated",
		zap.Int64("admin_id", currentUser(c).ID),
		zap.Int64("question_id", q.ID),
	)

	return c.JSON(newAdminQuestionView(q))
}
