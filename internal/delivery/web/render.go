package web

import (
	"time"

	"github.com/aliskhannn/studyquiz/internal/domain/entities"
)

type errorResponse struct {
	Error string `json:"error"`
}

type choiceView struct {
	Number int    `json:"number"`
	Text   string `json:"text"`
}

// questionView is a question as shown to a student: the correct choice is withheld.
type questionView struct {
	ID       int64        `json:"id"`
	Question string       `json:"question"`
	Choices  []choiceView `json:"choices"`
	Category string       `json:"category"`
	Hint     string       `json:"hint,omitempty"`
	URL      string       `json:"url,omitempty"`
}

func newQuestionView(q *entities.Question) questionView {
	choices := make([]choiceView, 0, entities.MaxChoice)
	for n := entities.MinChoice; n <= entities.MaxChoice; n++ {
		text, _ := q.Choice(n)
		choices = append(choices, choiceView{Number: n, Text: text})
	}

	return questionView{
		ID:       q.ID,
		Question: q.Text,
		Choices:  choices,
		Category: q.Category,
		Hint:     q.Hint,
		URL:      q.URL,
	}
}

// adminQuestionView is the editable form of a question.
type adminQuestionView struct {
	questionView
	Correct int `json:"correct"`
}

func newAdminQuestionView(q *entities.Question) adminQuestionView {
	return adminQuestionView{questionView: newQuestionView(q), Correct: q.Correct}
}

type quizResponse struct {
	Mode      entities.QuizMode `json:"mode"`
	Category  string            `json:"category,omitempty"`
	Questions []questionView    `json:"questions"`
	Message   string            `json:"message,omitempty"`
}

type resultView struct {
	QuestionID    int64  `json:"question_id"`
	Question      string `json:"question"`
	Category      string `json:"category"`
	Choice        int    `json:"choice"`
	ChoiceText    string `json:"choice_text"`
	CorrectChoice int    `json:"correct_choice"`
	CorrectText   string `json:"correct_text"`
	IsCorrect     bool   `json:"is_correct"`
	Hint          string `json:"hint,omitempty"`
	URL           string `json:"url,omitempty"`
}

type reportResponse struct {
	AttemptID  string       `json:"attempt_id"`
	Results    []resultView `json:"results"`
	Score      int          `json:"score"`
	Total      int          `json:"total"`
	Percentage string       `json:"percentage"`
	Missing    []int64      `json:"missing,omitempty"`
	Message    string       `json:"message,omitempty"`
}

func newReportResponse(r *entities.QuizReport) reportResponse {
	results := make([]resultView, 0, len(r.Answers))
	for _, a := range r.Answers {
		results = append(results, resultView{
			QuestionID:    a.Question.ID,
			Question:      a.Question.Text,
			Category:      a.Question.Category,
			Choice:        a.Choice,
			ChoiceText:    a.ChoiceText,
			CorrectChoice: a.CorrectChoice,
			CorrectText:   a.CorrectText,
			IsCorrect:     a.IsCorrect,
			Hint:          a.Question.Hint,
			URL:           a.Question.URL,
		})
	}

	resp := reportResponse{
		AttemptID:  r.AttemptID.String(),
		Results:    results,
		Score:      r.Score,
		Total:      r.Total,
		Percentage: r.Percentage(),
		Missing:    r.Missing,
	}
	if len(r.Missing) > 0 {
		resp.Message = msgMissingQuestions
	}
	return resp
}

type checkResponse struct {
	Correct       bool   `json:"correct"`
	CorrectAnswer int    `json:"correct_answer"`
	CorrectText   string `json:"correct_choice_text"`
}

type historyResponse struct {
	Answered          int     `json:"answered"`
	Correct           int     `json:"correct"`
	QuestionsAnswered int     `json:"questions_answered"`
	Mastered          int     `json:"mastered"`
	Accuracy          float64 `json:"accuracy"`
}

type categoryView struct {
	Name          string `json:"name"`
	QuestionCount int    `json:"question_count"`
}

type userView struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Nickname  string    `json:"nickname"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}

func newUserView(u *entities.User) userView {
	return userView{
		ID:        u.ID,
		Email:     u.Email,
		Nickname:  u.Nickname,
		IsAdmin:   u.IsAdmin,
		CreatedAt: u.CreatedAt,
	}
}
