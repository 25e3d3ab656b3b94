package grading

import (
	"context"
	"errors"
)

var ErrUnsupportedType = errors.New("unsupported question type")

// Q is the minimal view of a quiz question needed to check an answer.
type Q struct {
	Type    string // mc|open
	Answer  string
	Choices []string
}

// Result is the outcome of checking a single answer.
type Result struct {
	Correct  bool     `json:"correct"`
	Score    float64  `json:"score"` // 0, 0.5 or 1
	Expected string   `json:"expected,omitempty"`
	Feedback []string `json:"feedback,omitempty"`
}

// Strategy checks one answer for one question type.
type Strategy interface {
	Check(ctx context.Context, q Q, answer string) (Result, error)
}

// Checker routes by question type to the correct Strategy.
type Checker interface {
	Check(ctx context.Context, q Q, answer string) (Result, error)
}

type defaultChecker struct {
	strategies map[string]Strategy
	reveal     bool
}

func (c *defaultChecker) Check(ctx context.Context, q Q, answer string) (Result, error) {
	s, ok := c.strategies[q.Type]
	if !ok {
		return Result{}, ErrUnsupportedType
	}
	res, err := s.Check(ctx, q, answer)
	if err != nil {
		return res, err
	}
	if c.reveal && !res.Correct {
		res.Expected = q.Answer
	}
	return res, nil
}

type Option func(*config)

type config struct {
	MaxEditDistance int  // open answers within this distance get half credit
	RevealAnswer    bool // include the expected answer on a wrong check
}

func WithMaxEditDistance(n int) Option { return func(c *config) { c.MaxEditDistance = n } }
func WithRevealAnswer(b bool) Option   { return func(c *config) { c.RevealAnswer = b } }

// NewChecker installs the mc and open strategies.
func NewChecker(opts ...Option) Checker {
	cfg := &config{
		MaxEditDistance: 1,
		RevealAnswer:    true,
	}
	for _, o := range opts {
		o(cfg)
	}
	return &defaultChecker{
		reveal: cfg.RevealAnswer,
		strategies: map[string]Strategy{
			"mc":   mcStrategy{},
			"open": openStrategy{maxEdit: cfg.MaxEditDistance},
		},
	}
}

// --- Strategies ---

type mcStrategy struct{}

func (mcStrategy) Check(_ context.Context, q Q, answer string) (Result, error) {
	picked := foldChoice(answer)
	if picked == "" || picked != foldChoice(q.Answer) {
		return Result{}, nil
	}
	if len(q.Choices) > 0 && !isChoice(q.Choices, picked) {
		return Result{Feedback: []string{"geen van de keuzes"}}, nil
	}
	return Result{Correct: true, Score: 1}, nil
}

func isChoice(choices []string, folded string) bool {
	for _, c := range choices {
		if foldChoice(c) == folded {
			return true
		}
	}
	return false
}

type openStrategy struct{ maxEdit int }

func (s openStrategy) Check(_ context.Context, q Q, answer string) (Result, error) {
	want, got := normalize(q.Answer), normalize(answer)
	if got == "" {
		return Result{}, nil
	}
	if isNumeric(q.Answer) && isNumeric(answer) {
		if numericEqual(q.Answer, answer) {
			return Result{Correct: true, Score: 1}, nil
		}
		return Result{}, nil
	}
	if want == got {
		return Result{Correct: true, Score: 1}, nil
	}
	if s.maxEdit > 0 && levenshtein(want, got) <= s.maxEdit {
		return Result{Score: 0.5, Feedback: []string{"bijna goed, let op de spelling"}}, nil
	}
	return Result{}, nil
}
