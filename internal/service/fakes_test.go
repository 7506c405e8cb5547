package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/aliskhannn/studyquiz/internal/domain/entities"
	"github.com/aliskhannn/studyquiz/internal/infra/postgres/repository"
)

var errStoreDown = errors.New("store unavailable")

type fakeQuestionRepo struct {
	questions map[int64]*entities.Question
	nextID    int64
}

func newFakeQuestionRepo(qs ...*entities.Question) *fakeQuestionRepo {
	r := &fakeQuestionRepo{questions: make(map[int64]*entities.Question)}
	for _, q := range qs {
		r.questions[q.ID] = q
		if q.ID > r.nextID {
			r.nextID = q.ID
		}
	}
	return r
}

// seedQuestions builds n questions of category with IDs starting at firstID.
// The correct answer cycles through 1..4.
func seedQuestions(firstID int64, n int, category string) []*entities.Question {
	out := make([]*entities.Question, 0, n)
	for i := 0; i < n; i++ {
		id := firstID + int64(i)
		out = append(out, &entities.Question{
			ID:       id,
			Text:     fmt.Sprintf("question %d", id),
			Choices:  [4]string{"a", "b", "c", "d"},
			Correct:  i%4 + 1,
			Category: category,
		})
	}
	return out
}

func (r *fakeQuestionRepo) sorted() []*entities.Question {
	out := make([]*entities.Question, 0, len(r.questions))
	for _, q := range r.questions {
		out = append(out, q)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *fakeQuestionRepo) ListByCategory(_ context.Context, category string) ([]*entities.Question, error) {
	var out []*entities.Question
	for _, q := range r.sorted() {
		if q.Category == category {
			out = append(out, q)
		}
	}
	return out, nil
}

func (r *fakeQuestionRepo) ListAll(_ context.Context) ([]*entities.Question, error) {
	return r.sorted(), nil
}

func (r *fakeQuestionRepo) GetByID(_ context.Context, id int64) (*entities.Question, error) {
	q, ok := r.questions[id]
	if !ok {
		return nil, repository.ErrQuestionNotFound
	}
	return q, nil
}

func (r *fakeQuestionRepo) GetByIDs(_ context.Context, ids []int64) (map[int64]*entities.Question, error) {
	out := make(map[int64]*entities.Question)
	for _, id := range ids {
		if q, ok := r.questions[id]; ok {
			out[id] = q
		}
	}
	return out, nil
}

func (r *fakeQuestionRepo) Create(_ context.Context, q *entities.Question) error {
	r.nextID++
	q.ID = r.nextID
	r.questions[q.ID] = q
	return nil
}

func (r *fakeQuestionRepo) Update(_ context.Context, q *entities.Question) error {
	if _, ok := r.questions[q.ID]; !ok {
		return repository.ErrQuestionNotFound
	}
	r.questions[q.ID] = q
	return nil
}

func (r *fakeQuestionRepo) Categories(_ context.Context) ([]entities.Category, error) {
	counts := make(map[string]int)
	for _, q := range r.questions {
		counts[q.Category]++
	}
	out := make([]entities.Category, 0, len(counts))
	for name, n := range counts {
		out = append(out, entities.Category{Name: name, QuestionCount: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// fakeResultRepo keeps history rows in insertion order. Writes made inside a
// fakeTransactor transaction are staged and only become visible on commit.
type fakeResultRepo struct {
	mu      sync.Mutex
	rows    []*entities.QuizResult
	failOn  int // fail the Append call whose 1-based row index reaches failOn
	appends int
}

func (r *fakeResultRepo) Append(ctx context.Context, results []*entities.QuizResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	staged := stagedRows(ctx)
	for _, res := range results {
		r.appends++
		if r.failOn > 0 && r.appends >= r.failOn {
			return errStoreDown
		}
		res.ID = int64(len(r.rows) + len(*staged) + 1)
		*staged = append(*staged, res)
	}
	return nil
}

// record stores an outcome directly, outside any transaction.
func (r *fakeResultRepo) record(userID, questionID int64, outcomes ...bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, ok := range outcomes {
		r.rows = append(r.rows, &entities.QuizResult{
			ID:         int64(len(r.rows) + 1),
			UserID:     userID,
			QuestionID: questionID,
			IsCorrect:  ok,
		})
	}
}

func (r *fakeResultRepo) RecentHistory(_ context.Context, userID int64, depth int) (map[int64]*entities.AnswerHistory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make(map[int64]*entities.AnswerHistory)
	for _, row := range r.rows {
		if row.UserID != userID {
			continue
		}
		h, ok := out[row.QuestionID]
		if !ok {
			h = &entities.AnswerHistory{QuestionID: row.QuestionID}
			out[row.QuestionID] = h
		}
		h.Record(row.IsCorrect)
	}
	for _, h := range out {
		if len(h.Recent) > depth {
			h.Recent = h.Recent[:depth]
		}
	}
	return out, nil
}

func (r *fakeResultRepo) Stats(ctx context.Context, userID int64) (*entities.HistoryStats, error) {
	history, _ := r.RecentHistory(ctx, userID, entities.RecentDepth)

	r.mu.Lock()
	defer r.mu.Unlock()

	stats := &entities.HistoryStats{QuestionsAnswered: len(history)}
	for _, row := range r.rows {
		if row.UserID != userID {
			continue
		}
		stats.Answered++
		if row.IsCorrect {
			stats.Correct++
		}
	}
	for _, h := range history {
		if h.Mastered() {
			stats.Mastered++
		}
	}
	return stats, nil
}

func (r *fakeResultRepo) DeleteByUser(_ context.Context, userID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.rows[:0]
	for _, row := range r.rows {
		if row.UserID != userID {
			kept = append(kept, row)
		}
	}
	r.rows = kept
	return nil
}

func (r *fakeResultRepo) forUser(userID int64) []*entities.QuizResult {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*entities.QuizResult
	for _, row := range r.rows {
		if row.UserID == userID {
			out = append(out, row)
		}
	}
	return out
}

type stagedKey struct{}

func stagedRows(ctx context.Context) *[]*entities.QuizResult {
	if s, ok := ctx.Value(stagedKey{}).(*[]*entities.QuizResult); ok {
		return s
	}
	// Outside a transaction writes land in a throwaway slice.
	return &[]*entities.QuizResult{}
}

type fakeTransactor struct {
	results *fakeResultRepo
	calls   int
}

func (t *fakeTransactor) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	t.calls++

	var staged []*entities.QuizResult
	if err := fn(context.WithValue(ctx, stagedKey{}, &staged)); err != nil {
		return err
	}

	if t.results != nil {
		t.results.mu.Lock()
		t.results.rows = append(t.results.rows, staged...)
		t.results.mu.Unlock()
	}
	return nil
}

type fakeUserRepo struct {
	users  map[int64]*entities.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*entities.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *entities.User) error {
	for _, u := range r.users {
		if u.Email == user.Email {
			return repository.ErrEmailTaken
		}
	}
	r.nextID++
	user.ID = r.nextID
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	for _, u := range r.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, userID int64) (*entities.User, error) {
	u, ok := r.users[userID]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entities.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepo) List(_ context.Context) ([]*entities.User, error) {
	out := make([]*entities.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeUserRepo) Delete(_ context.Context, userID int64) error {
	if _, ok := r.users[userID]; !ok {
		return repository.ErrUserNotFound
	}
	delete(r.users, userID)
	return nil
}
