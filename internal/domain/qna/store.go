package qna

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// foreign_key_violation
const pgForeignKeyViolation = "23503"

type Store interface {
	CreateQuestion(ctx context.Context, question *Question) error
	ListQuestions(ctx context.Context) ([]QuestionWithAnswers, error)
	DeleteQuestion(ctx context.Context, questionID int64) error
	CreateAnswer(ctx context.Context, answer *Answer) error
	GetAnswer(ctx context.Context, answerID int64) (*Answer, error)
	Vote(ctx context.Context, answerID int64, delta int) (*VoteResult, error)
}

// Repository is the PostgreSQL Store.
type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Store {
	return &Repository{db: db}
}

// CreateQuestion inserts a question and fills in its ID and CreatedAt.
func (r *Repository) CreateQuestion(ctx context.Context, question *Question) error {
	query := `
		INSERT INTO questions (title)
		VALUES ($1)
		RETURNING id, created_at
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	err := r.db.QueryRow(ctx, query, question.Title).Scan(&question.ID, &question.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating question: %w", err)
	}

	return nil
}

// ListQuestions returns every question newest first, each with its answers oldest first.
func (r *Repository) ListQuestions(ctx context.Context) ([]QuestionWithAnswers, error) {
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

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error fetching questions: %w", err)
	}
	defer rows.Close()

	var acc questionAccumulator
	for rows.Next() {
		var (
			q        QuestionWithAnswers
			aID      *int64
			text     *string
			votes    *int
			aCreated *time.Time
		)
		if err := rows.Scan(&q.ID, &q.Title, &q.CreatedAt, &aID, &text, &votes, &aCreated); err != nil {
			return nil, fmt.Errorf("error scanning question row: %w", err)
		}

		var answer *Answer
		if aID != nil {
			answer = &Answer{ID: *aID, QuestionID: q.ID, Text: *text, Votes: *votes, CreatedAt: *aCreated}
		}
		acc.add(q, answer)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating questions: %w", err)
	}

	return acc.result(), nil
}

// DeleteQuestion removes a question; its answers are removed by the cascade.
func (r *Repository) DeleteQuestion(ctx context.Context, questionID int64) error {
	query := `DELETE FROM questions WHERE id = $1`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	tag, err := r.db.Exec(ctx, query, questionID)
	if err != nil {
		return fmt.Errorf("error deleting question: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrQuestionNotFound
	}

	return nil
}

// CreateAnswer inserts an answer under answer.QuestionID with zero votes.
// It returns ErrQuestionNotFound when that question does not exist.
func (r *Repository) CreateAnswer(ctx context.Context, answer *Answer) error {
	query := `
		INSERT INTO answers (question_id, text)
		SELECT $1, $2
		WHERE EXISTS (SELECT 1 FROM questions WHERE id = $1)
		RETURNING id, votes, created_at
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	err := r.db.QueryRow(ctx, query, answer.QuestionID, answer.Text).Scan(
		&answer.ID,
		&answer.Votes,
		&answer.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return ErrQuestionNotFound
		case errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation:
			// the question was deleted between the check and the insert
			return ErrQuestionNotFound
		default:
			return fmt.Errorf("error creating answer: %w", err)
		}
	}

	return nil
}

func (r *Repository) GetAnswer(ctx context.Context, answerID int64) (*Answer, error) {
	query := `
		SELECT id, question_id, text, votes, created_at
		FROM answers
		WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var a Answer
	err := r.db.QueryRow(ctx, query, answerID).Scan(&a.ID, &a.QuestionID, &a.Text, &a.Votes, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAnswerNotFound
		}
		return nil, fmt.Errorf("error fetching answer: %w", err)
	}

	return &a, nil
}

// Vote adds delta to the answer's votes in a single statement.
func (r *Repository) Vote(ctx context.Context, answerID int64, delta int) (*VoteResult, error) {
	query := `
		UPDATE answers
		SET votes = votes + $1
		WHERE id = $2
		RETURNING id, votes
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var res VoteResult
	if err := r.db.QueryRow(ctx, query, delta, answerID).Scan(&res.ID, &res.Votes); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAnswerNotFound
		}
		return nil, fmt.Errorf("error voting on answer: %w", err)
	}

	return &res, nil
}
