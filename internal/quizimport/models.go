package quizimport

type QType string

const (
	TypeUnset QType = ""
	TypeMC    QType = "mc"
	TypeOpen  QType = "open"
)

// ParseType maps user input ("mc", "MC", "open") to a QType. Anything else is unset.
func ParseType(s string) QType {
	switch QType(lower(s)) {
	case TypeMC:
		return TypeMC
	case TypeOpen:
		return TypeOpen
	default:
		return TypeUnset
	}
}

// ParsedRow is one recognized input line before batch resolution.
type ParsedRow struct {
	Prompt  string
	Answer  string
	Type    QType    // unset when the line did not encode a type
	Choices []string // authored order, never shuffled
}

// QuestionItem is the normalized unit handed to persistence.
type QuestionItem struct {
	Type        QType    `json:"qtype"`
	Prompt      string   `json:"prompt"`
	Answer      string   `json:"answer"`
	Choices     []string `json:"choices,omitempty"`
	Explanation string   `json:"explanation,omitempty"`
}

// Options carries the caller's batch settings.
type Options struct {
	DefaultType           QType // applied to rows without an explicit type; unset means open
	SynthesizeDistractors bool  // borrow other rows' answers for choice-less mc rows
}
