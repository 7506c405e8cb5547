package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aliskhannn/studyquiz/internal/domain/entities"
	"github.com/aliskhannn/studyquiz/internal/infra/postgres/repository"
)

// QuestionService backs the administrator's question editor.
type QuestionService struct {
	repository QuestionRepository
}

func NewQuestionService(repository QuestionRepository) *QuestionService {
	return &QuestionService{repository: repository}
}

// List returns the questions of category, or the whole bank when category is empty.
func (s *QuestionService) List(ctx context.Context, category string) ([]*entities.Question, error) {
	if category == "" {
		return s.repository.ListAll(ctx)
	}
	return s.repository.ListByCategory(ctx, category)
}

func (s *QuestionService) Get(ctx context.Context, id int64) (*entities.Question, error) {
	q, err := s.repository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrQuestionNotFound) {
			return nil, ErrQuestionNotFound
		}
		return nil, err
	}
	return q, nil
}

func (s *QuestionService) Create(ctx context.Context, in QuestionInput) (*entities.Question, error) {
	q, err := questionFromInput(in)
	if err != nil {
		return nil, err
	}

	if err := s.repository.Create(ctx, q); err != nil {
		return nil, fmt.Errorf("create question: %w", err)
	}

	return q, nil
}

// Update replaces the editable fields of question id.
func (s *QuestionService) Update(ctx context.Context, id int64, in QuestionInput) (*entities.Question, error) {
	q, err := questionFromInput(in)
	if err != nil {
		return nil, err
	}
	q.ID = id

	if err := s.repository.Update(ctx, q); err != nil {
		if errors.Is(err, repository.ErrQuestionNotFound) {
			return nil, ErrQuestionNotFound
		}
		return nil, fmt.Errorf("update question: %w", err)
	}

	return q, nil
}

func questionFromInput(in QuestionInput) (*entities.Question, error) {
	in.Text = strings.TrimSpace(in.Text)
	in.Category = strings.TrimSpace(in.Category)
	for i := range in.Choices {
		in.Choices[i] = strings.TrimSpace(in.Choices[i])
	}

	if err := validateStruct(in); err != nil {
		return nil, err
	}

	return &entities.Question{
		Text:     in.Text,
		Choices:  in.Choices,
		Correct:  in.Correct,
		Category: in.Category,
		Hint:     strings.TrimSpace(in.Hint),
		URL:      strings.TrimSpace(in.URL),
	}, nil
}
