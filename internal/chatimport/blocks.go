package chatimport

import (
	"regexp"
	"strings"

	"github.com/studiemaatje/huiswerkcoach/internal/quiz"
)

var (
	optionRe  = regexp.MustCompile(`^([A-Da-d])\s*[\)\.:]\s*(.+)$`)
	answerRe  = regexp.MustCompile(`(?i)^antwo(?:ord)?\s*:\s*(.*)$`)
	explainRe = regexp.MustCompile(`(?i)^(?:uitleg|toelichting)\s*:\s*(.*)$`)
	numberRe  = regexp.MustCompile(`(?i)^(?:vraag\s*)?\d+\s*[\.\):]\s*`)
	letterRe  = regexp.MustCompile(`^([A-Da-d])(?:[\)\.:]|\s|$)`)
)

type option struct {
	letter string
	text   string
}

type block struct {
	prompt      []string
	options     []option
	answer      string
	hasAnswer   bool
	explanation string
}

func (b *block) empty() bool { return len(b.prompt) == 0 }

// ParseBlocks reads lettered multiple-choice blocks closed by an "Antwoord:" line.
// Blocks without a prompt or an answer are dropped.
func ParseBlocks(text string) []quiz.Question {
	var (
		out []quiz.Question
		cur block
	)
	flush := func() {
		if q, ok := cur.question(); ok {
			out = append(out, q)
		}
		cur = block{}
	}
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if m := answerRe.FindStringSubmatch(line); m != nil {
			if !cur.empty() {
				cur.answer = strings.TrimSpace(m[1])
				cur.hasAnswer = true
			}
			continue
		}
		if m := explainRe.FindStringSubmatch(line); m != nil && cur.hasAnswer {
			cur.explanation = strings.TrimSpace(m[1])
			continue
		}
		if m := optionRe.FindStringSubmatch(line); m != nil && !cur.empty() && !cur.hasAnswer {
			cur.options = append(cur.options, option{letter: strings.ToUpper(m[1]), text: strings.TrimSpace(m[2])})
			continue
		}
		// plain text: continues the prompt or starts the next question
		if cur.hasAnswer || len(cur.options) > 0 {
			flush()
		}
		cur.prompt = append(cur.prompt, strings.TrimSpace(numberRe.ReplaceAllString(line, "")))
	}
	flush()
	return out
}

func (b block) question() (quiz.Question, bool) {
	prompt := strings.TrimSpace(strings.Join(b.prompt, " "))
	if prompt == "" || !b.hasAnswer || b.answer == "" {
		return quiz.Question{}, false
	}
	answer := b.answer
	if m := letterRe.FindStringSubmatch(answer); m != nil {
		for _, o := range b.options {
			if o.letter == strings.ToUpper(m[1]) {
				answer = o.text
				break
			}
		}
	}
	q := quiz.Question{Prompt: prompt, Answer: answer, Explanation: b.explanation, Type: quiz.TypeOpen}
	if len(b.options) > 0 {
		q.Type = quiz.TypeMC
		found := false
		for _, o := range b.options {
			q.Choices = append(q.Choices, o.text)
			if strings.EqualFold(o.text, answer) {
				found = true
			}
		}
		if !found {
			q.Choices = append([]string{answer}, q.Choices...)
		}
	}
	return q, true
}
