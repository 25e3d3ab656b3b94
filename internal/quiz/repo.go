package quiz

import (
	"context"
	"errors"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidQuestion = errors.New("invalid question")
	ErrBatchTooLarge   = errors.New("batch too large")
)

// DefaultMaxBatch bounds InsertQuestions when a store is built without an explicit limit.
const DefaultMaxBatch = 500

type ListOpts struct {
	OwnerID string // empty lists everything (admin)
	Limit   int
	Offset  int
}

type Store interface {
	CreateQuiz(ctx context.Context, q Quiz) (Quiz, error)
	GetQuiz(ctx context.Context, id string) (Quiz, error)
	ListQuizzes(ctx context.Context, opts ListOpts) ([]Quiz, error)
	DeleteQuiz(ctx context.Context, id string) error

	// InsertQuestions appends qs to the quiz in one all-or-nothing call, keeping their order.
	InsertQuestions(ctx context.Context, quizID string, qs []Question) ([]Question, error)
	AddQuestion(ctx context.Context, quizID string, q Question) (Question, error)
	ListQuestions(ctx context.Context, quizID string) ([]Question, error)
	GetQuestion(ctx context.Context, quizID, questionID string) (Question, error)
	DeleteQuestion(ctx context.Context, quizID, questionID string) error
}

func checkBatch(qs []Question, max int) error {
	if max > 0 && len(qs) > max {
		return ErrBatchTooLarge
	}
	for _, q := range qs {
		if err := q.Validate(); err != nil {
			return err
		}
	}
	return nil
}
