package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// ResetService wipes a user's answer history so mastery tracking starts over.
type ResetService struct {
	resultRepo QuizResultRepository
	logger     *zap.Logger
}

func NewResetService(resultRepo QuizResultRepository, logger *zap.Logger) *ResetService {
	return &ResetService{
		resultRepo: resultRepo,
		logger:     logger,
	}
}

func (s *ResetService) ResetUser(ctx context.Context, userID int64) error {
	if err := s.resultRepo.DeleteByUser(ctx, userID); err != nil {
		return fmt.Errorf("reset history of user %d: %w", userID, err)
	}

	s.logger.Info("history reset", zap.Int64("user_id", userID))
	return nil
}
