package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aliskhannn/studyquiz/internal/domain/entities"
	"github.com/aliskhannn/studyquiz/internal/infra/postgres/repository"
)

var ErrQuestionNotFound = errors.New("question not found")

// ScoringService grades submissions and records the answer history that
// drives later practice selection.
type ScoringService struct {
	questionRepo QuestionRepository
	resultRepo   QuizResultRepository
	tr           Transactor
	logger       *zap.Logger

	now       func() time.Time
	attemptID func() uuid.UUID
}

func NewScoringService(
	questionRepo QuestionRepository,
	resultRepo QuizResultRepository,
	tr Transactor,
	logger *zap.Logger,
) *ScoringService {
	return &ScoringService{
		questionRepo: questionRepo,
		resultRepo:   resultRepo,
		tr:           tr,
		logger:       logger,
		now:          time.Now,
		attemptID:    uuid.New,
	}
}

// Submit grades answers (question ID to choice number or entities.Unanswered)
// and appends one history row per graded question. Unknown question IDs are
// skipped and listed in the report. Either every row is stored or none is.
func (s *ScoringService) Submit(ctx context.Context, userID int64, answers map[int64]int) (*entities.QuizReport, error) {
	ids := make([]int64, 0, len(answers))
	for id := range answers {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	questions, err := s.questionRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("get submitted questions: %w", err)
	}

	report := s.Grade(questions, answers)
	report.AttemptID = s.attemptID()

	if len(report.Missing) > 0 {
		s.logger.Warn("submission references unknown questions",
			zap.Int64("user_id", userID),
			zap.Int64s("question_ids", report.Missing),
		)
	}

	if len(report.Answers) == 0 {
		return report, nil
	}

	now := s.now()
	results := make([]*entities.QuizResult, 0, len(report.Answers))
	for _, a := range report.Answers {
		results = append(results, entities.NewQuizResult(userID, a.Question.ID, report.AttemptID, a.IsCorrect, now))
	}

	err = s.tr.WithinTx(ctx, func(ctx context.Context) error {
		return s.resultRepo.Append(ctx, results)
	})
	if err != nil {
		return nil, fmt.Errorf("record quiz results: %w", err)
	}

	s.logger.Info("quiz submitted",
		zap.Int64("user_id", userID),
		zap.String("attempt_id", report.AttemptID.String()),
		zap.Int("score", report.Score),
		zap.Int("total", report.Total),
	)

	return report, nil
}

// Grade scores answers against questions without side effects. Answers are
// reported in ascending question ID order.
func (s *ScoringService) Grade(questions map[int64]*entities.Question, answers map[int64]int) *entities.QuizReport {
	ids := make([]int64, 0, len(answers))
	for id := range answers {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	report := &entities.QuizReport{
		Answers: make([]entities.GradedAnswer, 0, len(ids)),
	}

	for _, id := range ids {
		q, ok := questions[id]
		if !ok {
			report.Missing = append(report.Missing, id)
			continue
		}

		choice := answers[id]
		choiceText, ok := q.Choice(choice)
		if !ok {
			choiceText = entities.UnansweredLabel
		}

		graded := entities.GradedAnswer{
			Question:      q,
			Choice:        choice,
			ChoiceText:    choiceText,
			CorrectChoice: q.Correct,
			CorrectText:   q.CorrectText(),
			IsCorrect:     q.IsCorrect(choice),
		}
		if graded.IsCorrect {
			report.Score++
		}
		report.Total++
		report.Answers = append(report.Answers, graded)
	}

	return report
}

// CheckAnswer grades a single answer without recording it.
func (s *ScoringService) CheckAnswer(ctx context.Context, questionID int64, choice int) (*entities.AnswerCheck, error) {
	q, err := s.questionRepo.GetByID(ctx, questionID)
	if err != nil {
		if errors.Is(err, repository.ErrQuestionNotFound) {
			return nil, ErrQuestionNotFound
		}
		return nil, fmt.Errorf("get question: %w", err)
	}

	return &entities.AnswerCheck{
		QuestionID:    q.ID,
		IsCorrect:     q.IsCorrect(choice),
		CorrectChoice: q.Correct,
		CorrectText:   q.CorrectText(),
	}, nil
}

// History summarizes the answer history of userID.
func (s *ScoringService) History(ctx context.Context, userID int64) (*entities.HistoryStats, error) {
	stats, err := s.resultRepo.Stats(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get history stats: %w", err)
	}
	return stats, nil
}
