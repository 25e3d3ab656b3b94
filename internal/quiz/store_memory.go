package quiz

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

type memoryStore struct {
	mu        sync.RWMutex
	maxBatch  int
	quizzes   map[string]Quiz
	questions map[string][]Question // quizID -> ordered questions
}

func NewInMemoryStore(maxBatch int) Store {
	return &memoryStore{
		maxBatch:  maxBatch,
		quizzes:   map[string]Quiz{},
		questions: map[string][]Question{},
	}
}

func (m *memoryStore) CreateQuiz(_ context.Context, q Quiz) (Quiz, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	if q.CreatedAt == 0 {
		q.CreatedAt = time.Now().Unix()
	}
	m.quizzes[q.ID] = q
	return q, nil
}

func (m *memoryStore) GetQuiz(_ context.Context, id string) (Quiz, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	q, ok := m.quizzes[id]
	if !ok {
		return Quiz{}, ErrNotFound
	}
	return q, nil
}

func (m *memoryStore) ListQuizzes(_ context.Context, opts ListOpts) ([]Quiz, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []Quiz{}
	for _, q := range m.quizzes {
		if opts.OwnerID != "" && q.OwnerID != opts.OwnerID {
			continue
		}
		out = append(out, q)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt != out[j].CreatedAt {
			return out[i].CreatedAt > out[j].CreatedAt
		}
		return out[i].ID < out[j].ID
	})
	if opts.Offset > 0 {
		if opts.Offset >= len(out) {
			return []Quiz{}, nil
		}
		out = out[opts.Offset:]
	}
	if opts.Limit > 0 && len(out) > opts.Limit {
		out = out[:opts.Limit]
	}
	return out, nil
}

func (m *memoryStore) DeleteQuiz(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.quizzes[id]; !ok {
		return ErrNotFound
	}
	delete(m.quizzes, id)
	delete(m.questions, id)
	return nil
}

func (m *memoryStore) InsertQuestions(_ context.Context, quizID string, qs []Question) ([]Question, error) {
	if err := checkBatch(qs, m.maxBatch); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.quizzes[quizID]; !ok {
		return nil, ErrNotFound
	}
	return m.appendLocked(quizID, qs), nil
}

func (m *memoryStore) AddQuestion(_ context.Context, quizID string, q Question) (Question, error) {
	if err := q.Validate(); err != nil {
		return Question{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.quizzes[quizID]; !ok {
		return Question{}, ErrNotFound
	}
	return m.appendLocked(quizID, []Question{q})[0], nil
}

func (m *memoryStore) appendLocked(quizID string, qs []Question) []Question {
	existing := m.questions[quizID]
	next := 0
	if n := len(existing); n > 0 {
		next = existing[n-1].Position + 1
	}
	out := make([]Question, 0, len(qs))
	for i, q := range qs {
		q.ID = uuid.NewString()
		q.QuizID = quizID
		q.Position = next + i
		q.Choices = append([]string(nil), q.Choices...)
		out = append(out, q)
	}
	m.questions[quizID] = append(existing, out...)
	return out
}

func (m *memoryStore) ListQuestions(_ context.Context, quizID string) ([]Question, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if _, ok := m.quizzes[quizID]; !ok {
		return nil, ErrNotFound
	}
	return append([]Question{}, m.questions[quizID]...), nil
}

func (m *memoryStore) GetQuestion(_ context.Context, quizID, questionID string) (Question, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, q := range m.questions[quizID] {
		if q.ID == questionID {
			return q, nil
		}
	}
	return Question{}, ErrNotFound
}

func (m *memoryStore) DeleteQuestion(_ context.Context, quizID, questionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	qs := m.questions[quizID]
	for i, q := range qs {
		if q.ID == questionID {
			m.questions[quizID] = append(qs[:i:i], qs[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
