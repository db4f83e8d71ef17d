package qna

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// SQLiteRepository is the SQLite Store. Timestamps are stored as unix milliseconds.
type SQLiteRepository struct {
	db  *sql.DB
	now func() time.Time
}

func NewSQLiteRepository(db *sql.DB) Store {
	return &SQLiteRepository{db: db, now: time.Now}
}

func toMillis(t time.Time) int64 {
	return t.UTC().UnixMilli()
}

func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

func (r *SQLiteRepository) CreateQuestion(ctx context.Context, question *Question) error {
	query := `
		INSERT INTO questions (title, created_at)
		VALUES (?, ?)
		RETURNING id
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	createdAt := fromMillis(toMillis(r.now()))
	if err := r.db.QueryRowContext(ctx, query, question.Title, toMillis(createdAt)).Scan(&question.ID); err != nil {
		return fmt.Errorf("error creating question: %w", err)
	}
	question.CreatedAt = createdAt

	return nil
}

func (r *SQLiteRepository) ListQuestions(ctx context.Context) ([]QuestionWithAnswers, error) {
	query := `
		SELECT
			q.id,
			q.title,
			q.created_at,
			a.id,
			a.text,
			a.votes,
			a.created_at
		FROM questions q
		LEFT JOIN answers a ON a.question_id = q.id
		ORDER BY q.created_at DESC, q.id DESC, a.created_at ASC, a.id ASC
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error fetching questions: %w", err)
	}
	defer rows.Close()

	var acc questionAccumulator
	for rows.Next() {
		var (
			q        QuestionWithAnswers
			qCreated int64
			aID      sql.NullInt64
			text     sql.NullString
			votes    sql.NullInt64
			aCreated sql.NullInt64
		)
		if err := rows.Scan(&q.ID, &q.Title, &qCreated, &aID, &text, &votes, &aCreated); err != nil {
			return nil, fmt.Errorf("error scanning question row: %w", err)
		}
		q.CreatedAt = fromMillis(qCreated)

		var answer *Answer
		if aID.Valid {
			answer = &Answer{
				ID:         aID.Int64,
				QuestionID: q.ID,
				Text:       text.String,
				Votes:      int(votes.Int64),
				CreatedAt:  fromMillis(aCreated.Int64),
			}
		}
		acc.add(q, answer)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating questions: %w", err)
	}

	return acc.result(), nil
}

func (r *SQLiteRepository) DeleteQuestion(ctx context.Context, questionID int64) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	result, err := r.db.ExecContext(ctx, `DELETE FROM questions WHERE id = ?`, questionID)
	if err != nil {
		return fmt.Errorf("error deleting question: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error deleting question: %w", err)
	}
	if rowsAffected == 0 {
		return ErrQuestionNotFound
	}

	return nil
}

func (r *SQLiteRepository) CreateAnswer(ctx context.Context, answer *Answer) error {
	query := `
		INSERT INTO answers (question_id, text, votes, created_at)
		SELECT ?, ?, 0, ?
		WHERE EXISTS (SELECT 1 FROM questions WHERE id = ?)
		RETURNING id, votes
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	createdAt := fromMillis(toMillis(r.now()))
	err := r.db.QueryRowContext(ctx, query,
		answer.QuestionID,
		answer.Text,
		toMillis(createdAt),
		answer.QuestionID,
	).Scan(&answer.ID, &answer.Votes)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrQuestionNotFound
		}
		return fmt.Errorf("error creating answer: %w", err)
	}
	answer.CreatedAt = createdAt

	return nil
}

func (r *SQLiteRepository) GetAnswer(ctx context.Context, answerID int64) (*Answer, error) {
	query := `
		SELECT id, question_id, text, votes, created_at
		FROM answers
		WHERE id = ?
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var (
		a         Answer
		createdAt int64
	)
	err := r.db.QueryRowContext(ctx, query, answerID).Scan(&a.ID, &a.QuestionID, &a.Text, &a.Votes, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAnswerNotFound
		}
		return nil, fmt.Errorf("error fetching answer: %w", err)
	}
	a.CreatedAt = fromMillis(createdAt)

	return &a, nil
}

func (r *SQLiteRepository) Vote(ctx context.Context, answerID int64, delta int) (*VoteResult, error) {
	query := `
		UPDATE answers
		SET votes = votes + ?
		WHERE id = ?
		RETURNING id, votes
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var res VoteResult
	if err := r.db.QueryRowContext(ctx, query, delta, answerID).Scan(&res.ID, &res.Votes); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAnswerNotFound
		}
		return nil, fmt.Errorf("error voting on answer: %w", err)
	}

	return &res, nil
}
