package chatimport

import (
	"reflect"
	"testing"

	"github.com/studiemaatje/huiswerkcoach/internal/quiz"
)

func TestParseBlocksLettered(t *testing.T) {
	text := `1. Wat is de hoofdstad van Frankrijk?
A) Lyon
B) Parijs
C) Nice
D) Marseille
Antwoord: B
Uitleg: Parijs is sinds de middeleeuwen de hoofdstad.

2. Hoeveel poten heeft een spin?
a. 6
b. 8
Antwoord: b
`
	got := ParseBlocks(text)
	want := []quiz.Question{
		{
			Type:        quiz.TypeMC,
			Prompt:      "Wat is de hoofdstad van Frankrijk?",
			Answer:      "Parijs",
			Choices:     []string{"Lyon", "Parijs", "Nice", "Marseille"},
			Explanation: "Parijs is sinds de middeleeuwen de hoofdstad.",
		},
		{
			Type:    quiz.TypeMC,
			Prompt:  "Hoeveel poten heeft een spin?",
			Answer:  "8",
			Choices: []string{"6", "8"},
		},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ParseBlocks =\n%#v\nwant\n%#v", got, want)
	}
}

func TestParseBlocksLiteralAnswerIsPrepended(t *testing.T) {
	got := ParseBlocks("Welke kleur heeft gras?\nA: rood\nB: blauw\nAntwoord: groen")
	if len(got) != 1 {
		t.Fatalf("got %d questions", len(got))
	}
	if got[0].Answer != "groen" {
		t.Fatalf("answer = %q", got[0].Answer)
	}
	if want := []string{"groen", "rood", "blauw"}; !reflect.DeepEqual(got[0].Choices, want) {
		t.Fatalf("choices = %v, want %v", got[0].Choices, want)
	}
}

func TestParseBlocksOpenAndIncomplete(t *testing.T) {
	text := `Vraag 1: Noem een zoogdier dat kan vliegen.
Antwo: vleermuis
Deze vraag heeft geen antwoord
A) ja
B) nee`
	got := ParseBlocks(text)
	if len(got) != 1 {
		t.Fatalf("got %d questions: %#v", len(got), got)
	}
	if got[0].Type != quiz.TypeOpen || got[0].Prompt != "Noem een zoogdier dat kan vliegen." || got[0].Answer != "vleermuis" {
		t.Fatalf("unexpected question: %#v", got[0])
	}
}
