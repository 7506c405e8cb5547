package service

import (
	"math/rand"

	"github.com/aliskhannn/studyquiz/internal/domain/entities"
)

// QuestionSelector filters question pools by answer history and samples them.
type QuestionSelector struct {
	shuffle func(n int, swap func(i, j int))
}

// NewQuestionSelector creates a selector backed by the global random source,
// which is safe for concurrent use.
func NewQuestionSelector() *QuestionSelector {
	return &QuestionSelector{shuffle: rand.Shuffle}
}

// Sample returns min(n, len(pool)) distinct questions drawn uniformly without
// replacement. The pool itself is left untouched.
func (s *QuestionSelector) Sample(pool []*entities.Question, n int) []*entities.Question {
	if n <= 0 || len(pool) == 0 {
		return nil
	}

	out := append([]*entities.Question(nil), pool...)
	s.shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })

	if n < len(out) {
		out = out[:n]
	}
	return out
}

// ExcludeMastered drops questions whose two latest attempts were both correct.
func (s *QuestionSelector) ExcludeMastered(
	pool []*entities.Question,
	history map[int64]*entities.AnswerHistory,
) []*entities.Question {
	out := make([]*entities.Question, 0, len(pool))
	for _, q := range pool {
		if history[q.ID].Mastered() {
			continue
		}
		out = append(out, q)
	}
	return out
}

// OnlyNeedingPractice keeps questions recently answered incorrectly.
func (s *QuestionSelector) OnlyNeedingPractice(
	pool []*entities.Question,
	history map[int64]*entities.AnswerHistory,
) []*entities.Question {
	out := make([]*entities.Question, 0, len(history))
	for _, q := range pool {
		if history[q.ID].NeedsPractice() {
			out = append(out, q)
		}
	}
	return out
}

// NormalizeCount returns count when it is positive and def otherwise.
func NormalizeCount(count, def int) int {
	if count > 0 {
		return count
	}
	if def > 0 {
		return def
	}
	return entities.DefaultQuestionCount
}
