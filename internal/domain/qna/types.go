package qna

import (
	"errors"
	"fmt"
	"time"
)

const (
	MaxTitleLength = 500
	MaxTextLength  = 1000
)

var (
	ErrNotFound         = errors.New("resource not found")
	ErrQuestionNotFound = fmt.Errorf("question %w", ErrNotFound)
	ErrAnswerNotFound   = fmt.Errorf("answer %w", ErrNotFound)

	QueryTimeoutDuration = time.Second * 5
)

type Question struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

type Answer struct {
	ID         int64     `json:"id"`
	QuestionID int64     `json:"-"`
	Text       string    `json:"text"`
	Votes      int       `json:"votes"`
	CreatedAt  time.Time `json:"created_at"`
}

// QuestionWithAnswers is a question as listed, answers oldest first.
type QuestionWithAnswers struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	Answers   []Answer  `json:"answers"`
}

// VoteResult is what a vote returns: the answer id and its new total.
type VoteResult struct {
	ID    int64 `json:"id"`
	Votes int   `json:"votes"`
}

type VoteType string

const (
	VoteUp   VoteType = "up"
	VoteDown VoteType = "down"
)

// Delta returns the change a vote applies to an answer, or 0 for an unknown direction.
func (v VoteType) Delta() int {
	switch v {
	case VoteUp:
		return 1
	case VoteDown:
		return -1
	default:
		return 0
	}
}

func (v VoteType) Valid() bool {
	return v.Delta() != 0
}
