package quizimport

import "errors"

// ErrNoValidLines is reported when no line of the input matched a recognizer.
var ErrNoValidLines = errors.New("geen geldige regels gevonden")

type Kind string

const (
	KindQuestions Kind = "questions"
	KindChatBlock Kind = "chat_block"
	KindEmpty     Kind = "empty"
)

// Result is the outcome of planning one import action.
type Result struct {
	Kind    Kind           `json:"kind"`
	Items   []QuestionItem `json:"items,omitempty"`
	Skipped []string       `json:"skipped,omitempty"`
	// Raw is the untouched input; set only for KindChatBlock, where it is
	// forwarded as a whole.
	Raw string `json:"-"`
}

// Err returns ErrNoValidLines for an empty result and nil otherwise.
func (r Result) Err() error {
	if r.Kind == KindEmpty {
		return ErrNoValidLines
	}
	return nil
}

// Plan turns pasted text into question items. It does no I/O and holds no state,
// so the same input always yields the same Result.
func Plan(raw string, opts Options) Result {
	if IsChatBlock(raw) {
		return Result{Kind: KindChatBlock, Raw: raw}
	}
	rows, skipped := ParseRows(raw)
	if len(rows) == 0 {
		return Result{Kind: KindEmpty, Skipped: skipped}
	}
	return Result{
		Kind:    KindQuestions,
		Items:   Normalize(rows, opts),
		Skipped: skipped,
	}
}
