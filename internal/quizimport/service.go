package quizimport

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/studiemaatje/huiswerkcoach/internal/chatimport"
	"github.com/studiemaatje/huiswerkcoach/internal/importlock"
	"github.com/studiemaatje/huiswerkcoach/internal/quiz"
	"github.com/studiemaatje/huiswerkcoach/internal/storage"
)

var ErrNoChatImporter = errors.New("chat block import not configured")

type Request struct {
	QuizID  string
	Text    string
	Title   string // chat blocks only; falls back to the quiz title
	Subject string // chat blocks only; falls back to the quiz subject
	UserID  string
	Options Options
}

type Outcome struct {
	Kind     Kind                 `json:"kind"`
	Inserted []quiz.Question      `json:"inserted,omitempty"`
	Skipped  []string             `json:"skipped,omitempty"`
	Chat     *chatimport.Response `json:"chat_import,omitempty"`
	BlobKey  string               `json:"-"`
}

type Service struct {
	store   quiz.Store
	chat    chatimport.Importer
	locker  importlock.Locker
	blobs   storage.BlobStore
	log     ImportLog
	lockTTL time.Duration
}

type ServiceOption func(*Service)

func WithChatImporter(c chatimport.Importer) ServiceOption { return func(s *Service) { s.chat = c } }
func WithLocker(l importlock.Locker) ServiceOption         { return func(s *Service) { s.locker = l } }
func WithBlobStore(b storage.BlobStore) ServiceOption      { return func(s *Service) { s.blobs = b } }
func WithImportLog(l ImportLog) ServiceOption              { return func(s *Service) { s.log = l } }
func WithLockTTL(d time.Duration) ServiceOption            { return func(s *Service) { s.lockTTL = d } }

func NewService(store quiz.Store, opts ...ServiceOption) *Service {
	s := &Service{
		store:   store,
		locker:  importlock.NewMemoryLocker(),
		lockTTL: 30 * time.Second,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Import runs one bulk import for a quiz. At most one import per quiz is in
// flight; a second call while the first has not settled gets importlock.ErrBusy.
// An input without any recognizable line returns ErrNoValidLines and stores nothing.
func (s *Service) Import(ctx context.Context, req Request) (Outcome, error) {
	qz, err := s.store.GetQuiz(ctx, req.QuizID)
	if err != nil {
		return Outcome{}, err
	}
	release, err := s.locker.Acquire(ctx, req.QuizID, s.lockTTL)
	if err != nil {
		return Outcome{}, err
	}
	defer release()

	out := Outcome{BlobKey: s.archive(req)}
	plan := Plan(req.Text, req.Options)
	out.Kind = plan.Kind
	out.Skipped = plan.Skipped

	switch plan.Kind {
	case KindChatBlock:
		if s.chat == nil {
			return out, ErrNoChatImporter
		}
		creq := chatimport.Request{
			Text:    plan.Raw,
			Title:   firstNonEmpty(req.Title, qz.Title),
			Subject: firstNonEmpty(req.Subject, qz.Subject),
			OwnerID: req.UserID,
		}
		res, err := s.chat.Import(ctx, creq)
		if err != nil {
			return out, fmt.Errorf("chat import: %w", err)
		}
		out.Chat = &res
		s.record(ctx, req, out, res.Inserted)
		return out, nil

	case KindEmpty:
		s.record(ctx, req, out, 0)
		return out, ErrNoValidLines
	}

	qs := make([]quiz.Question, 0, len(plan.Items))
	for _, it := range plan.Items {
		qs = append(qs, ToQuestion(it))
	}
	stored, err := s.store.InsertQuestions(ctx, req.QuizID, qs)
	if err != nil {
		return out, err
	}
	out.Inserted = stored
	s.record(ctx, req, out, len(stored))
	return out, nil
}

// ToQuestion maps a normalized item onto the stored question shape.
func ToQuestion(it QuestionItem) quiz.Question {
	q := quiz.Question{
		Type:        string(it.Type),
		Prompt:      it.Prompt,
		Answer:      it.Answer,
		Explanation: it.Explanation,
	}
	if it.Type == TypeMC {
		q.Choices = append([]string(nil), it.Choices...)
	}
	return q
}

func (s *Service) archive(req Request) string {
	if s.blobs == nil {
		return ""
	}
	key := fmt.Sprintf("imports/%s/%s.txt", req.QuizID, uuid.NewString())
	k, err := s.blobs.Put(key, strings.NewReader(req.Text))
	if err != nil {
		log.Printf("quizimport: archive raw text for quiz %s: %v", req.QuizID, err)
		return ""
	}
	return k
}

func (s *Service) record(ctx context.Context, req Request, out Outcome, inserted int) {
	if s.log == nil {
		return
	}
	e := LogEntry{
		QuizID:    req.QuizID,
		UserID:    req.UserID,
		Kind:      out.Kind,
		Inserted:  inserted,
		Skipped:   len(out.Skipped),
		BlobKey:   out.BlobKey,
		CreatedAt: time.Now().Unix(),
	}
	if err := s.log.Record(ctx, e); err != nil {
		log.Printf("quizimport: record import for quiz %s: %v", req.QuizID, err)
	}
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}
