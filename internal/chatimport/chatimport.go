package chatimport

import (
	"context"
	"errors"

	"github.com/studiemaatje/huiswerkcoach/internal/quiz"
)

var ErrNoBlocks = errors.New("no question blocks found")

// Request is a whole pasted chat block plus the quiz context it belongs to.
type Request struct {
	Text    string `json:"text"`
	Title   string `json:"title"`
	Subject string `json:"subject"`
	OwnerID string `json:"owner_id,omitempty"`
}

type Response struct {
	QuizID    string          `json:"quiz_id"`
	Inserted  int             `json:"inserted"`
	Questions []quiz.Question `json:"questions,omitempty"`
}

// Importer turns a chat block into a stored quiz.
type Importer interface {
	Import(ctx context.Context, req Request) (Response, error)
}
