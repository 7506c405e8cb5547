package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/aliskhannn/studyquiz/internal/domain/entities"
)

var (
	ErrUnknownMode          = errors.New("unknown quiz mode")
	ErrCategoryRequired     = errors.New("category is required for a chapter test")
	ErrCategoryNotFound     = errors.New("no questions for category")
	ErrNoQuestionsAvailable = errors.New("no questions available")
)

// QuizService builds question sets for chapter tests and practice sessions.
type QuizService struct {
	questionRepo QuestionRepository
	resultRepo   QuizResultRepository
	selector     *QuestionSelector
	defaultCount int
	logger       *zap.Logger
}

func NewQuizService(
	questionRepo QuestionRepository,
	resultRepo QuizResultRepository,
	selector *QuestionSelector,
	defaultCount int,
	logger *zap.Logger,
) *QuizService {
	return &QuizService{
		questionRepo: questionRepo,
		resultRepo:   resultRepo,
		selector:     selector,
		defaultCount: NormalizeCount(defaultCount, entities.DefaultQuestionCount),
		logger:       logger,
	}
}

// StartQuiz selects the questions of a new quiz for userID.
//
// A chapter test with no questions in its category returns ErrCategoryNotFound;
// any other empty pool returns ErrNoQuestionsAvailable.
func (s *QuizService) StartQuiz(
	ctx context.Context, userID int64, req entities.QuizRequest,
) ([]*entities.Question, error) {
	count := NormalizeCount(req.Count, s.defaultCount)

	var (
		pool []*entities.Question
		err  error
	)

	switch req.Mode {
	case entities.ModeChapter:
		pool, err = s.chapterPool(ctx, req.Category)
	case entities.ModePractice:
		pool, err = s.questionRepo.ListAll(ctx)
	case entities.ModeExcludeMastered:
		pool, err = s.historyPool(ctx, userID, s.selector.ExcludeMastered)
	case entities.ModeIncorrectOnly:
		pool, err = s.historyPool(ctx, userID, s.selector.OnlyNeedingPractice)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, req.Mode)
	}
	if err != nil {
		return nil, err
	}

	if len(pool) == 0 {
		return nil, ErrNoQuestionsAvailable
	}

	questions := s.selector.Sample(pool, count)

	s.logger.Debug("quiz started",
		zap.Int64("user_id", userID),
		zap.String("mode", string(req.Mode)),
		zap.String("category", req.Category),
		zap.Int("pool", len(pool)),
		zap.Int("selected", len(questions)),
	)

	return questions, nil
}

// Categories lists the study categories with their question counts.
func (s *QuizService) Categories(ctx context.Context) ([]entities.Category, error) {
	categories, err := s.questionRepo.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

func (s *QuizService) chapterPool(ctx context.Context, category string) ([]*entities.Question, error) {
	if category == "" {
		return nil, ErrCategoryRequired
	}

	pool, err := s.questionRepo.ListByCategory(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("list chapter questions: %w", err)
	}
	if len(pool) == 0 {
		return nil, fmt.Errorf("%w %q", ErrCategoryNotFound, category)
	}

	return pool, nil
}

type historyFilter func([]*entities.Question, map[int64]*entities.AnswerHistory) []*entities.Question

func (s *QuizService) historyPool(ctx context.Context, userID int64, filter historyFilter) ([]*entities.Question, error) {
	all, err := s.questionRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}

	history, err := s.resultRepo.RecentHistory(ctx, userID, entities.RecentDepth)
	if err != nil {
		return nil, fmt.Errorf("get recent history: %w", err)
	}

	return filter(all, history), nil
}
