package web

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aliskhannn/studyquiz/internal/domain/entities"
	"github.com/aliskhannn/studyquiz/internal/service"
)

const (
	headerRequestID = "X-Request-ID"
	localsRequestID = "request_id"
	localsUser      = "user"
)

// requestContext tags the request with an ID, bounds it with a deadline and
// logs the outcome.
func (h *Handler) requestContext(timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(headerRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(headerRequestID, id)
		c.Locals(localsRequestID, id)

		if timeout > 0 {
			ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
			defer cancel()
			c.SetUserContext(ctx)
		}

		start := time.Now()
		err := c.Next()
		if err != nil {
			// Render now so the logged status is the final one.
			if herr := h.errorHandler(c, err); herr != nil {
				return herr
			}
		}

		h.logger.Debug("request handled",
			zap.String("request_id", id),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("duration", time.Since(start)),
		)
		return nil
	}
}

// requireAuth loads the session user and rejects anonymous requests.
// Sessions of deleted users are destroyed.
func (h *Handler) requireAuth(c *fiber.Ctx) error {
	sess, err := h.sessions.Get(c)
	if err != nil {
		return err
	}

	userID, ok := sess.Get(sessionUserID).(int64)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, msgUnauthorized)
	}

	user, err := h.userService.Get(c.UserContext(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			if derr := sess.Destroy(); derr != nil {
				h.logger.Warn("failed to destroy stale session", zap.Error(derr))
			}
			return fiber.NewError(fiber.StatusUnauthorized, msgUnauthorized)
		}
		return err
	}

	c.Locals(localsUser, user)
	return c.Next()
}

func (h *Handler) requireAdmin(c *fiber.Ctx) error {
	if user := currentUser(c); user == nil || !user.IsAdmin {
		return fiber.NewError(fiber.StatusForbidden, msgForbidden)
	}
	return c.Next()
}

func currentUser(c *fiber.Ctx) *entities.User {
	user, _ := c.Locals(localsUser).(*entities.User)
	return user
}

// errorHandler maps domain errors to HTTP responses. Unknown errors are logged
// and answered with a generic message.
func (h *Handler) errorHandler(c *fiber.Ctx, err error) error {
	status, msg := fiber.StatusInternalServerError, msgInternalError

	var ferr *fiber.Error
	switch {
	case errors.As(err, &ferr):
		status, msg = ferr.Code, ferr.Message
	case errors.Is(err, service.ErrCategoryNotFound):
		status, msg = fiber.StatusNotFound, err.Error()
	case errors.Is(err, service.ErrQuestionNotFound):
		status, msg = fiber.StatusNotFound, msgQuestionNotFound
	case errors.Is(err, service.ErrUserNotFound):
		status, msg = fiber.StatusNotFound, msgUserNotFound
	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, service.ErrCategoryRequired),
		errors.Is(err, service.ErrUnknownMode):
		status, msg = fiber.StatusBadRequest, err.Error()
	case errors.Is(err, service.ErrInvalidCredentials):
		status, msg = fiber.StatusUnauthorized, msgInvalidCredentials
	case errors.Is(err, service.ErrEmailTaken):
		status, msg = fiber.StatusConflict, msgEmailTaken
	}

	if status >= fiber.StatusInternalServerError {
		reqID, _ := c.Locals(localsRequestID).(string)
		h.logger.Error("request failed",
			zap.String("request_id", reqID),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
	}

	return c.Status(status).JSON(errorResponse{Error: msg})
}
