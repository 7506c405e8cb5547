package entities

const (
	MinChoice = 1
	MaxChoice = 4

	// Unanswered marks a question that was submitted without a selected choice.
	Unanswered = -1

	// CategoryPractice is the pool reserved for cumulative practice material.
	CategoryPractice = "practice"
)

// Question is a single multiple-choice item of the question bank.
type Question struct {
	ID       int64     // unique question ID
	Text     string    // question text
	Choices  [4]string // choice texts, addressed by number through Choice
	Correct  int       // correct choice number, 1-4
	Category string    // chapter name or the practice pool
	Hint     string    // optional hint
	URL      string    // optional reference link
}

// ValidChoice reports whether n addresses one of the four choices.
func ValidChoice(n int) bool {
	return n >= MinChoice && n <= MaxChoice
}

// Choice returns the text of choice n (1-4).
func (q *Question) Choice(n int) (string, bool) {
	if !ValidChoice(n) {
		return "", false
	}
	return q.Choices[n-MinChoice], true
}

// IsCorrect reports whether answer selects the correct choice.
// Out-of-range values, including Unanswered, are never correct.
func (q *Question) IsCorrect(answer int) bool {
	return ValidChoice(answer) && answer == q.Correct
}

// CorrectText returns the text of the correct choice.
func (q *Question) CorrectText() string {
	text, _ := q.Choice(q.Correct)
	return text
}

// Category groups questions for study material browsing.
type Category struct {
	Name          string
	QuestionCount int
}
