package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/aliskhannn/studyquiz/internal/domain/entities"
	"github.com/aliskhannn/studyquiz/internal/infra/postgres"
)

var ErrQuestionNotFound = errors.New("question not found")

const questionColumns = `id, question, choice1, choice2, choice3, choice4, correct, category, hint, url`

// QuestionRepository provides access to the question bank.
type QuestionRepository struct {
	db postgres.DBTX
}

// NewQuestionRepository creates a new QuestionRepository with the provided database pool.
func NewQuestionRepository(db postgres.DBTX) *QuestionRepository {
	return &QuestionRepository{db: db}
}

// ListByCategory returns all questions of an exact category.
func (r *QuestionRepository) ListByCategory(ctx context.Context, category string) ([]*entities.Question, error) {
	query := `SELECT ` + questionColumns + ` FROM questions WHERE category = $1 ORDER BY id`

	rows, err := postgres.Conn(ctx, r.db).Query(ctx, query, category)
	if err != nil {
		return nil, fmt.Errorf("list questions by category: %w", err)
	}

	return collectQuestions(rows)
}

// ListAll returns the whole question bank.
func (r *QuestionRepository) ListAll(ctx context.Context) ([]*entities.Question, error) {
	query := `SELECT ` + questionColumns + ` FROM questions ORDER BY id`

	rows, err := postgres.Conn(ctx, r.db).Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}

	return collectQuestions(rows)
}

// GetByID retrieves a question by ID.
func (r *QuestionRepository) GetByID(ctx context.Context, id int64) (*entities.Question, error) {
	query := `SELECT ` + questionColumns + ` FROM questions WHERE id = $1`

	q, err := scanQuestion(postgres.Conn(ctx, r.db).QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrQuestionNotFound
		}
		return nil, fmt.Errorf("get question: %w", err)
	}

	return q, nil
}

// GetByIDs retrieves the existing questions among ids, keyed by ID.
func (r *QuestionRepository) GetByIDs(ctx context.Context, ids []int64) (map[int64]*entities.Question, error) {
	out := make(map[int64]*entities.Question, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	query := `SELECT ` + questionColumns + ` FROM questions WHERE id = ANY($1::bigint[])`

	rows, err := postgres.Conn(ctx, r.db).Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("get questions by ids: %w", err)
	}

	questions, err := collectQuestions(rows)
	if err != nil {
		return nil, err
	}
	for _, q := range questions {
		out[q.ID] = q
	}

	return out, nil
}

// Create inserts a question and sets its ID.
func (r *QuestionRepository) Create(ctx context.Context, q *entities.Question) error {
	query := `
		INSERT INTO questions (question, choice1, choice2, choice3, choice4, correct, category, hint, url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`

	err := postgres.Conn(ctx, r.db).QueryRow(
		ctx,
		query,
		q.Text,
		q.Choices[0],
		q.Choices[1],
		q.Choices[2],
		q.Choices[3],
		q.Correct,
		q.Category,
		q.Hint,
		q.URL,
	).Scan(&q.ID)
	if err != nil {
		return fmt.Errorf("create question: %w", err)
	}

	return nil
}

// Update overwrites an existing question.
func (r *QuestionRepository) Update(ctx context.Context, q *entities.Question) error {
	query := `
		UPDATE questions
		SET question = $1,
		    choice1 = $2,
		    choice2 = $3,
		    choice3 = $4,
		    choice4 = $5,
		    correct = $6,
		    category = $7,
		    hint = $8,
		    url = $9
		WHERE id = $10
	`

	tag, err := postgres.Conn(ctx, r.db).Exec(
		ctx,
		query,
		q.Text,
		q.Choices[0],
		q.Choices[1],
		q.Choices[2],
		q.Choices[3],
		q.Correct,
		q.Category,
		q.Hint,
		q.URL,
		q.ID,
	)
	if err != nil {
		return fmt.Errorf("update question: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrQuestionNotFound
	}

	return nil
}

// Categories lists the categories with their question counts.
func (r *QuestionRepository) Categories(ctx context.Context) ([]entities.Category, error) {
	query := `
		SELECT category, COUNT(*)
		FROM questions
		GROUP BY category
		ORDER BY category
	`

	rows, err := postgres.Conn(ctx, r.db).Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var out []entities.Category
	for rows.Next() {
		var c entities.Category
		if err := rows.Scan(&c.Name, &c.QuestionCount); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categories: %w", err)
	}

	return out, nil
}

func scanQuestion(row pgx.Row) (*entities.Question, error) {
	var q entities.Question
	err := row.Scan(
		&q.ID,
		&q.Text,
		&q.Choices[0],
		&q.Choices[1],
		&q.Choices[2],
		&q.Choices[3],
		&q.Correct,
		&q.Category,
		&q.Hint,
		&q.URL,
	)
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func collectQuestions(rows pgx.Rows) ([]*entities.Question, error) {
	defer rows.Close()

	var out []*entities.Question
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		out = append(out, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate questions: %w", err)
	}

	return out, nil
}
