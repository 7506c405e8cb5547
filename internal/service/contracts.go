package service

import (
	"context"

	"github.com/aliskhannn/studyquiz/internal/domain/entities"
)

type QuestionRepository interface {
	ListByCategory(ctx context.Context, category string) ([]*entities.Question, error)
	ListAll(ctx context.Context) ([]*entities.Question, error)
	GetByID(ctx context.Context, id int64) (*entities.Question, error)
	GetByIDs(ctx context.Context, ids []int64) (map[int64]*entities.Question, error)
	Create(ctx context.Context, q *entities.Question) error
	Update(ctx context.Context, q *entities.Question) error
	Categories(ctx context.Context) ([]entities.Category, error)
}

type QuizResultRepository interface {
	Append(ctx context.Context, results []*entities.QuizResult) error
	RecentHistory(ctx context.Context, userID int64, depth int) (map[int64]*entities.AnswerHistory, error)
	Stats(ctx context.Context, userID int64) (*entities.HistoryStats, error)
	DeleteByUser(ctx context.Context, userID int64) error
}

type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	GetByID(ctx context.Context, userID int64) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
	List(ctx context.Context) ([]*entities.User, error)
	Delete(ctx context.Context, userID int64) error
}

// Transactor runs fn atomically; repositories called with the ctx passed to
// fn take part in the transaction.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
