package quiz

const (
	TypeMC   = "mc"
	TypeOpen = "open"
)

type Quiz struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Subject   string `json:"subject,omitempty"`
	OwnerID   string `json:"owner_id,omitempty"`
	CreatedAt int64  `json:"created_at,omitempty"`
}

type Question struct {
	ID          string   `json:"id"`
	QuizID      string   `json:"quiz_id"`
	Position    int      `json:"position"`
	Type        string   `json:"qtype"` // mc|open
	Prompt      string   `json:"prompt"`
	Answer      string   `json:"answer,omitempty"`
	Choices     []string `json:"choices,omitempty"` // only for mc, authored order
	Explanation string   `json:"explanation,omitempty"`
}

// StudentView hides the answer and explanation.
func (q Question) StudentView() Question {
	q.Answer = ""
	q.Explanation = ""
	return q
}

// Validate checks the shape of a question before it is stored.
func (q Question) Validate() error {
	if q.Prompt == "" || q.Answer == "" {
		return ErrInvalidQuestion
	}
	switch q.Type {
	case TypeOpen:
		if len(q.Choices) > 0 {
			return ErrInvalidQuestion
		}
	case TypeMC:
		if len(q.Choices) == 0 {
			return ErrInvalidQuestion
		}
	default:
		return ErrInvalidQuestion
	}
	return nil
}
