package web

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/session"
	"go.uber.org/zap"
)

type Handler struct {
	logger          *zap.Logger
	sessions        *session.Store
	validate        *validator.Validate
	userService     UserService
	quizService     QuizService
	scoringService  ScoringService
	questionService QuestionService
	resetService    ResetService
	pinger          Pinger
}

func NewHandler(
	logger *zap.Logger,
	sessions *session.Store,
	userService UserService,
	quizService QuizService,
	scoringService ScoringService,
	questionService QuestionService,
	resetService ResetService,
	pinger Pinger,
) *Handler {
	return &Handler{
		logger:          logger,
		sessions:        sessions,
		validate:        validator.New(validator.WithRequiredStructEnabled()),
		userService:     userService,
		quizService:     quizService,
		scoringService:  scoringService,
		questionService: questionService,
		resetService:    resetService,
		pinger:          pinger,
	}
}

// AppConfig tunes the HTTP application built by NewApp.
type AppConfig struct {
	RequestTimeout time.Duration
	LoginRateLimit int          // login attempts per minute per client IP, 0 disables the limit
	LimiterStorage fiber.Storage // shared limiter state; nil keeps it in memory
}

// NewApp builds the fiber application with middleware and routes.
func NewApp(h *Handler, cfg AppConfig) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "studyquiz",
		DisableStartupMessage: true,
		ErrorHandler:          h.errorHandler,
	})

	app.Use(recover.New())
	app.Use(h.requestContext(cfg.RequestTimeout))

	app.Get("/healthz", h.health)

	api := app.Group("/api")

	login := []fiber.Handler{}
	if cfg.LoginRateLimit > 0 {
		login = append(login, limiter.New(limiter.Config{
			Max:        cfg.LoginRateLimit,
			Expiration: time.Minute,
			Storage:    cfg.LimiterStorage,
			KeyGenerator: func(c *fiber.Ctx) string {
				return "login:" + c.IP()
			},
			LimitReached: func(c *fiber.Ctx) error {
				return fiber.NewError(fiber.StatusTooManyRequests, msgTooManyAttempts)
			},
		}))
	}
	api.Post("/login", append(login, h.login)...)
	api.Post("/logout", h.logout)

	authed := api.Group("", h.requireAuth)
	authed.Get("/me", h.me)
	authed.Get("/categories", h.categories)
	authed.Post("/quiz", h.startQuiz)
	authed.Post("/quiz/submit", h.submitQuiz)
	authed.Post("/quiz/check", h.checkAnswer)
	authed.Get("/history", h.history)
	authed.Delete("/history", h.resetHistory)

	admin := authed.Group("/admin", h.requireAdmin)
	admin.Get("/users", h.listUsers)
	admin.Post("/users", h.createUser)
	admin.Delete("/users/:id", h.deleteUser)
	admin.Get("/questions", h.listQuestions)
	admin.Post("/questions", h.createQuestion)
	admin.Get("/questions/:id", h.getQuestion)
	admin.Put("/questions/:id", h.updateQuestion)

	return app
}

func (h *Handler) health(c *fiber.Ctx) error {
	if h.pinger != nil {
		if err := h.pinger.Ping(c.UserContext()); err != nil {
			h.logger.Error("health check failed", zap.Error(err))
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unavailable"})
		}
	}
	return c.JSON(fiber.Map{"status": "ok"})
}
