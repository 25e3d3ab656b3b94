package quizimport

import (
	"regexp"
	"strings"
)

var (
	chatBlockRe  = regexp.MustCompile(`(?im)^\s*antwo(ord)?\s*:`)
	answerLineRe = regexp.MustCompile(`(?i)^antwo(ord)?\s*:`)
	inlineQARe   = regexp.MustCompile(`^(.+?\?)\s+(.+)$`)
)

// IsChatBlock reports whether raw contains an "Antwoord:" line anywhere.
// It must be called on the untouched input, before SplitLines.
func IsChatBlock(raw string) bool {
	return chatBlockRe.MatchString(raw)
}

// SplitLines splits on newlines, trims each line and drops the empty ones.
func SplitLines(raw string) []string {
	parts := strings.Split(raw, "\n")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Recognizer inspects one trimmed line. handled=true stops the chain; a handled line
// with a nil row is deliberately skipped.
type Recognizer struct {
	Name  string
	Match func(line string) (row *ParsedRow, handled bool)
}

// Recognizers is the precedence order used by ClassifyLine.
var Recognizers = []Recognizer{
	{Name: "answer-line", Match: matchAnswerLine},
	{Name: "pipe", Match: matchPipe},
	{Name: "tab", Match: matchTab},
	{Name: "comma", Match: matchComma},
	{Name: "inline", Match: matchInline},
}

// ClassifyLine runs the recognizers in order and returns the first row produced.
// ok is false when the line should be dropped.
func ClassifyLine(line string) (ParsedRow, bool) {
	for _, r := range Recognizers {
		row, handled := r.Match(line)
		if !handled {
			continue
		}
		if row == nil {
			return ParsedRow{}, false
		}
		return *row, true
	}
	return ParsedRow{}, false
}

// ParseRows classifies every line of raw, keeping input order. Dropped lines are
// returned separately so callers can show them.
func ParseRows(raw string) (rows []ParsedRow, skipped []string) {
	lines := SplitLines(raw)
	rows = make([]ParsedRow, 0, len(lines))
	for _, l := range lines {
		if row, ok := ClassifyLine(l); ok {
			rows = append(rows, row)
			continue
		}
		skipped = append(skipped, l)
	}
	return rows, skipped
}

// --- recognizers ---

func matchAnswerLine(line string) (*ParsedRow, bool) {
	if answerLineRe.MatchString(line) {
		return nil, true
	}
	return nil, false
}

func matchPipe(line string) (*ParsedRow, bool) {
	segs := splitFields(line, "|")
	if len(segs) < 2 {
		return nil, false
	}
	switch {
	case len(segs) >= 6:
		return fourChoiceRow(segs), true
	case len(segs) >= 3 && strings.EqualFold(segs[2], string(TypeMC)):
		prompt, answer := segs[0], segs[1]
		choices := []string{}
		if len(segs) > 3 {
			choices = splitFields(strings.Join(segs[3:], "|"), ";")
		}
		return &ParsedRow{
			Prompt:  prompt,
			Answer:  answer,
			Type:    TypeMC,
			Choices: ensureAnswer(choices, answer),
		}, true
	default:
		return &ParsedRow{Prompt: segs[0], Answer: segs[1]}, true
	}
}

func matchTab(line string) (*ParsedRow, bool) {
	fields := splitFields(line, "\t")
	switch {
	case len(fields) >= 6:
		return fourChoiceRow(fields), true
	case len(fields) >= 2:
		return &ParsedRow{Prompt: fields[0], Answer: fields[1]}, true
	}
	return nil, false
}

func matchComma(line string) (*ParsedRow, bool) {
	parts := strings.Split(line, ",")
	if len(parts) != 2 {
		return nil, false
	}
	prompt := strings.TrimSpace(parts[0])
	answer := strings.TrimSpace(parts[1])
	if prompt == "" || answer == "" {
		return nil, false
	}
	if !strings.HasSuffix(prompt, "?") && !strings.HasSuffix(prompt, "¿") {
		return nil, false
	}
	return &ParsedRow{Prompt: prompt, Answer: answer}, true
}

func matchInline(line string) (*ParsedRow, bool) {
	m := inlineQARe.FindStringSubmatch(line)
	if m == nil {
		return nil, false
	}
	prompt := strings.TrimSpace(m[1])
	answer := strings.TrimSpace(m[2])
	if prompt == "" || answer == "" {
		return nil, false
	}
	return &ParsedRow{Prompt: prompt, Answer: answer}, true
}

// fourChoiceRow reads prompt|A|B|C|D|ref. ref is a letter A-D or the literal answer.
func fourChoiceRow(f []string) *ParsedRow {
	choices := []string{f[1], f[2], f[3], f[4]}
	ref := f[5]
	answer := ref
	if idx := letterIndex(ref); idx >= 0 {
		answer = choices[idx]
	}
	return &ParsedRow{
		Prompt:  f[0],
		Answer:  answer,
		Type:    TypeMC,
		Choices: ensureAnswer(choices, answer),
	}
}

func letterIndex(ref string) int {
	switch strings.ToUpper(ref) {
	case "A":
		return 0
	case "B":
		return 1
	case "C":
		return 2
	case "D":
		return 3
	}
	return -1
}

// splitFields splits, trims and drops empty entries.
func splitFields(s, sep string) []string {
	parts := strings.Split(s, sep)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}

// ensureAnswer prepends answer when choices does not already hold it.
func ensureAnswer(choices []string, answer string) []string {
	if containsFold(choices, answer) {
		return choices
	}
	out := make([]string, 0, len(choices)+1)
	out = append(out, answer)
	return append(out, choices...)
}

func lower(s string) string { return strings.ToLower(strings.TrimSpace(s)) }
