package web

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/aliskhannn/studyquiz/internal/service"
)

type loginRequest struct {
	Email    string `json:"email" validate:"required,max=254"`
	Password string `json:"password" validate:"required,max=72"`
}

func (h *Handler) login(c *fiber.Ctx) error {
	var req loginRequest
	if err := h.bind(c, &req); err != nil {
		return err
	}

	user, err := h.userService.Authenticate(c.UserContext(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			h.logger.Info("login failed", zap.String("ip", c.IP()))
		}
		return err
	}

	sess, err := h.sessions.Get(c)
	if err != nil {
		return err
	}
	// Fresh session ID on every login.
	if err := sess.Regenerate(); err != nil {
		return err
	}
	sess.Set(sessionUserID, user.ID)
	sess.Set(sessionNickname, user.Nickname)
	if err := sess.Save(); err != nil {
		return err
	}

	h.logger.Info("user logged in", zap.Int64("user_id", user.ID))

	return c.JSON(newUserView(user))
}

func (h *Handler) logout(c *fiber.Ctx) error {
	sess, err := h.sessions.Get(c)
	if err != nil {
		return err
	}
	if err := sess.Destroy(); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"message": msgLoggedOut})
}

func (h *Handler) me(c *fiber.Ctx) error {
	return c.JSON(newUserView(currentUser(c)))
}
