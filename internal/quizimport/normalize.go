package quizimport

import (
	"fmt"
	"strings"
)

const (
	targetChoices = 4
	maxBorrowed   = targetChoices - 1
)

// Normalize resolves every row into a QuestionItem, keeping row order.
func Normalize(rows []ParsedRow, opts Options) []QuestionItem {
	def := opts.DefaultType
	if def == TypeUnset {
		def = TypeOpen
	}
	var pool []string
	if opts.SynthesizeDistractors {
		pool = answerPool(rows)
	}

	out := make([]QuestionItem, 0, len(rows))
	for _, r := range rows {
		qt := r.Type
		if qt == TypeUnset {
			qt = def
		}
		it := QuestionItem{Type: qt, Prompt: r.Prompt, Answer: r.Answer}
		if qt == TypeMC {
			switch {
			case len(r.Choices) > 0:
				it.Choices = ensureAnswer(append([]string(nil), r.Choices...), r.Answer)
			case opts.SynthesizeDistractors:
				it.Choices = withDistractors(r.Answer, pool)
			default:
				it.Choices = []string{r.Answer}
			}
		}
		out = append(out, it)
	}
	return out
}

// answerPool lists the batch's answers in order, deduplicated case-insensitively.
func answerPool(rows []ParsedRow) []string {
	seen := make(map[string]struct{}, len(rows))
	pool := make([]string, 0, len(rows))
	for _, r := range rows {
		k := strings.ToLower(r.Answer)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		pool = append(pool, r.Answer)
	}
	return pool
}

// withDistractors builds [answer, borrowed..., "Optie N"...] up to four entries.
func withDistractors(answer string, pool []string) []string {
	choices := []string{answer}
	for _, a := range pool {
		if len(choices) > maxBorrowed {
			break
		}
		if containsFold(choices, a) {
			continue
		}
		choices = append(choices, a)
	}
	for n := len(choices) + 1; len(choices) < targetChoices; n++ {
		ph := fmt.Sprintf("Optie %d", n)
		if containsFold(choices, ph) {
			continue
		}
		choices = append(choices, ph)
	}
	return choices
}
