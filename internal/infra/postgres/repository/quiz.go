package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/aliskhannn/studyquiz/internal/domain/entities"
	"github.com/aliskhannn/studyquiz/internal/infra/postgres"
)

// QuizResultRepository provides access to the append-only answer history.
type QuizResultRepository struct {
	db postgres.DBTX
}

// NewQuizResultRepository creates a new QuizResultRepository with the provided database pool.
func NewQuizResultRepository(db postgres.DBTX) *QuizResultRepository {
	return &QuizResultRepository{db: db}
}

// Append inserts history rows in one batch. Run it inside a transaction to
// make the whole submission atomic.
func (r *QuizResultRepository) Append(ctx context.Context, results []*entities.QuizResult) error {
	if len(results) == 0 {
		return nil
	}

	query := `
		INSERT INTO quiz_results (user_id, question_id, attempt_id, is_correct, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	batch := &pgx.Batch{}
	for _, res := range results {
		batch.Queue(query, res.UserID, res.QuestionID, res.AttemptID, res.IsCorrect, res.CreatedAt)
	}

	br := postgres.Conn(ctx, r.db).SendBatch(ctx, batch)
	defer func() { _ = br.Close() }()

	for _, res := range results {
		if err := br.QueryRow().Scan(&res.ID); err != nil {
			return fmt.Errorf("append quiz result for question %d: %w", res.QuestionID, err)
		}
	}

	return nil
}

// RecentHistory returns, per answered question, the total number of attempts
// and the outcomes of the latest depth attempts, newest first.
// Ties on created_at are broken by insertion order.
func (r *QuizResultRepository) RecentHistory(ctx context.Context, userID int64, depth int) (map[int64]*entities.AnswerHistory, error) {
	query := `
		SELECT question_id, is_correct, attempts
		FROM (
			SELECT question_id,
			       is_correct,
			       ROW_NUMBER() OVER (PARTITION BY question_id ORDER BY created_at DESC, id DESC) AS rn,
			       COUNT(*) OVER (PARTITION BY question_id) AS attempts
			FROM quiz_results
			WHERE user_id = $1
		) recent
		WHERE rn <= $2
		ORDER BY question_id, rn
	`

	rows, err := postgres.Conn(ctx, r.db).Query(ctx, query, userID, depth)
	if err != nil {
		return nil, fmt.Errorf("query recent history: %w", err)
	}
	defer rows.Close()

	out := make(map[int64]*entities.AnswerHistory)
	for rows.Next() {
		var (
			questionID int64
			isCorrect  bool
			attempts   int
		)
		if err := rows.Scan(&questionID, &isCorrect, &attempts); err != nil {
			return nil, fmt.Errorf("scan recent history: %w", err)
		}

		h, ok := out[questionID]
		if !ok {
			h = &entities.AnswerHistory{QuestionID: questionID, Attempts: attempts}
			out[questionID] = h
		}
		// Rows arrive newest first.
		h.Recent = append(h.Recent, isCorrect)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate recent history: %w", err)
	}

	return out, nil
}

// Stats summarizes a user's history.
func (r *QuizResultRepository) Stats(ctx context.Context, userID int64) (*entities.HistoryStats, error) {
	query := `
		WITH ranked AS (
			SELECT question_id,
			       is_correct,
			       ROW_NUMBER() OVER (PARTITION BY question_id ORDER BY created_at DESC, id DESC) AS rn
			FROM quiz_results
			WHERE user_id = $1
		),
		mastered AS (
			SELECT question_id
			FROM ranked
			WHERE rn <= 2
			GROUP BY question_id
			HAVING COUNT(*) = 2 AND BOOL_AND(is_correct)
		)
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE is_correct),
			COUNT(DISTINCT question_id),
			(SELECT COUNT(*) FROM mastered)
		FROM ranked
	`

	var stats entities.HistoryStats
	err := postgres.Conn(ctx, r.db).QueryRow(ctx, query, userID).Scan(
		&stats.Answered,
		&stats.Correct,
		&stats.QuestionsAnswered,
		&stats.Mastered,
	)
	if err != nil {
		return nil, fmt.Errorf("get history stats: %w", err)
	}

	return &stats, nil
}

// DeleteByUser removes a user's whole history.
func (r *QuizResultRepository) DeleteByUser(ctx context.Context, userID int64) error {
	if _, err := postgres.Conn(ctx, r.db).Exec(ctx, `DELETE FROM quiz_results WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("delete quiz results: %w", err)
	}
	return nil
}
