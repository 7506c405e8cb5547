package entities

// RecentDepth is how many of the latest attempts decide mastery.
const RecentDepth = 2

// AnswerHistory holds a user's answer history for one question.
type AnswerHistory struct {
	QuestionID int64
	Attempts   int    // total number of recorded attempts
	Recent     []bool // correctness of the latest attempts, newest first, at most RecentDepth
}

// Record prepends a newer outcome, keeping at most RecentDepth entries.
func (h *AnswerHistory) Record(isCorrect bool) {
	h.Attempts++
	h.Recent = append([]bool{isCorrect}, h.Recent...)
	if len(h.Recent) > RecentDepth {
		h.Recent = h.Recent[:RecentDepth]
	}
}

// Mastered reports whether the two most recent attempts were both correct.
// Questions with fewer than two attempts are never mastered.
func (h *AnswerHistory) Mastered() bool {
	if h == nil || h.Attempts < RecentDepth || len(h.Recent) < RecentDepth {
		return false
	}
	for _, ok := range h.Recent[:RecentDepth] {
		if !ok {
			return false
		}
	}
	return true
}

// NeedsPractice reports whether the question belongs in incorrect-only practice:
// with a single attempt it must have been missed, with two or more at least one
// of the latest two must have been missed. Unseen questions never qualify.
func (h *AnswerHistory) NeedsPractice() bool {
	if h == nil || h.Attempts == 0 || len(h.Recent) == 0 {
		return false
	}
	if h.Attempts < RecentDepth || len(h.Recent) < RecentDepth {
		return !h.Recent[0]
	}
	return !h.Recent[0] || !h.Recent[1]
}

// HistoryStats summarizes a user's answer history.
type HistoryStats struct {
	Answered          int // total graded answers
	Correct           int // correct graded answers
	QuestionsAnswered int // distinct questions ever answered
	Mastered          int // distinct questions currently mastered
}

// Accuracy returns the share of correct answers in percent.
func (s HistoryStats) Accuracy() float64 {
	if s.Answered == 0 {
		return 0
	}
	return float64(s.Correct) * 100 / float64(s.Answered)
}
