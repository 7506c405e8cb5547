package entities

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DefaultQuestionCount is used when a quiz request carries no usable count.
const DefaultQuestionCount = 10

// QuizMode selects how the question pool for a quiz is built.
type QuizMode string

const (
	ModeChapter         QuizMode = "chapter"          // single category
	ModePractice        QuizMode = "practice"         // whole question bank
	ModeExcludeMastered QuizMode = "exclude_mastered" // bank minus mastered questions
	ModeIncorrectOnly   QuizMode = "incorrect_only"   // recently missed questions only
)

// Valid reports whether m is a known quiz mode.
func (m QuizMode) Valid() bool {
	switch m {
	case ModeChapter, ModePractice, ModeExcludeMastered, ModeIncorrectOnly:
		return true
	default:
		return false
	}
}

// QuizRequest describes the quiz a user asks for.
type QuizRequest struct {
	Mode     QuizMode
	Category string // required for ModeChapter
	Count    int    // requested number of questions; non-positive means default
}

// QuizResult is one append-only history row: a single graded answer.
type QuizResult struct {
	ID         int64
	UserID     int64
	QuestionID int64
	AttemptID  uuid.UUID // shared by all rows of one submission
	IsCorrect  bool
	CreatedAt  time.Time
}

// NewQuizResult creates a history row for an answer graded at now.
func NewQuizResult(userID, questionID int64, attemptID uuid.UUID, isCorrect bool, now time.Time) *QuizResult {
	return &QuizResult{
		UserID:     userID,
		QuestionID: questionID,
		AttemptID:  attemptID,
		IsCorrect:  isCorrect,
		CreatedAt:  now,
	}
}

// GradedAnswer is the outcome of grading one submitted answer.
type GradedAnswer struct {
	Question      *Question
	Choice        int    // submitted choice, or Unanswered
	ChoiceText    string // text of the submitted choice, or UnansweredLabel
	CorrectChoice int
	CorrectText   string
	IsCorrect     bool
}

// UnansweredLabel is shown in place of the choice text for unanswered questions.
const UnansweredLabel = "unanswered"

// QuizReport aggregates a graded submission.
type QuizReport struct {
	AttemptID uuid.UUID
	Answers   []GradedAnswer
	Missing   []int64 // submitted question ids that do not exist
	Score     int
	Total     int
}

// Percentage returns 100*Score/Total formatted with one decimal place.
func (r *QuizReport) Percentage() string {
	if r.Total == 0 {
		return "0.0"
	}
	return fmt.Sprintf("%.1f", float64(r.Score)*100/float64(r.Total))
}

// AnswerCheck is the result of an instant single-question check.
type AnswerCheck struct {
	QuestionID    int64
	IsCorrect     bool
	CorrectChoice int
	CorrectText   string
}
