package chatimport

import (
	"context"
	"log"
	"strings"

	"github.com/studiemaatje/huiswerkcoach/internal/quiz"
)

const defaultTitle = "Geïmporteerde quiz"

// LocalImporter parses chat blocks in-process and stores them as a new quiz.
type LocalImporter struct {
	store quiz.Store
}

func NewLocalImporter(store quiz.Store) *LocalImporter {
	return &LocalImporter{store: store}
}

func (l *LocalImporter) Import(ctx context.Context, req Request) (Response, error) {
	qs := ParseBlocks(req.Text)
	if len(qs) == 0 {
		return Response{}, ErrNoBlocks
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = defaultTitle
	}
	qz, err := l.store.CreateQuiz(ctx, quiz.Quiz{Title: title, Subject: strings.TrimSpace(req.Subject), OwnerID: req.OwnerID})
	if err != nil {
		return Response{}, err
	}
	stored, err := l.store.InsertQuestions(ctx, qz.ID, qs)
	if err != nil {
		if derr := l.store.DeleteQuiz(ctx, qz.ID); derr != nil {
			log.Printf("chatimport: cleanup quiz %s: %v", qz.ID, derr)
		}
		return Response{}, err
	}
	return Response{QuizID: qz.ID, Inserted: len(stored), Questions: stored}, nil
}
