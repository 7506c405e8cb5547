package web

import (
	"context"

	"github.com/aliskhannn/studyquiz/internal/domain/entities"
	"github.com/aliskhannn/studyquiz/internal/service"
)

type UserService interface {
	Authenticate(ctx context.Context, email, password string) (*entities.User, error)
	Create(ctx context.Context, in service.UserInput) (*entities.User, error)
	Get(ctx context.Context, userID int64) (*entities.User, error)
	List(ctx context.Context) ([]*entities.User, error)
	Delete(ctx context.Context, userID int64) error
}

type QuizService interface {
	StartQuiz(ctx context.Context, userID int64, req entities.QuizRequest) ([]*entities.Question, error)
	Categories(ctx context.Context) ([]entities.Category, error)
}

type ScoringService interface {
	Submit(ctx context.Context, userID int64, answers map[int64]int) (*entities.QuizReport, error)
	CheckAnswer(ctx context.Context, questionID int64, choice int) (*entities.AnswerCheck, error)
	History(ctx context.Context, userID int64) (*entities.HistoryStats, error)
}

type ResetService interface {
	ResetUser(ctx context.Context, userID int64) error
}

type QuestionService interface {
	List(ctx context.Context, category string) ([]*entities.Question, error)
	Get(ctx context.Context, id int64) (*entities.Question, error)
	Create(ctx context.Context, in service.QuestionInput) (*entities.Question, error)
	Update(ctx context.Context, id int64, in service.QuestionInput) (*entities.Question, error)
}

// Pinger reports store availability for the health check.
type Pinger interface {
	Ping(ctx context.Context) error
}
