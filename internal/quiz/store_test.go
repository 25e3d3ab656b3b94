package quiz_test

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/google/uuid"

	"github.com/studiemaatje/huiswerkcoach/internal/db"
	"github.com/studiemaatje/huiswerkcoach/internal/quiz"
)

type storeFactory func(t *testing.T, maxBatch int) quiz.Store

func stores() map[string]storeFactory {
	return map[string]storeFactory{
		"memory": func(t *testing.T, maxBatch int) quiz.Store {
			return quiz.NewInMemoryStore(maxBatch)
		},
		"sqlite": func(t *testing.T, maxBatch int) quiz.Store {
			t.Helper()
			dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
			conn, err := db.Open(context.Background(), db.DriverSQLite, dsn)
			if err != nil {
				t.Fatalf("open sqlite: %v", err)
			}
			t.Cleanup(func() { conn.Close() })
			return quiz.NewSQLStore(conn, string(db.DriverSQLite), maxBatch)
		},
	}
}

func forEachStore(t *testing.T, maxBatch int, fn func(t *testing.T, s quiz.Store)) {
	for name, mk := range stores() {
		t.Run(name, func(t *testing.T) { fn(t, mk(t, maxBatch)) })
	}
}

func TestStoreQuizLifecycle(t *testing.T) {
	forEachStore(t, quiz.DefaultMaxBatch, func(t *testing.T, s quiz.Store) {
		ctx := context.Background()
		a, err := s.CreateQuiz(ctx, quiz.Quiz{Title: "Woordjes Engels", Subject: "Engels", OwnerID: "u1", CreatedAt: 100})
		if err != nil {
			t.Fatal(err)
		}
		if a.ID == "" {
			t.Fatal("no id assigned")
		}
		if _, err := s.CreateQuiz(ctx, quiz.Quiz{Title: "Sommen", OwnerID: "u2", CreatedAt: 200}); err != nil {
			t.Fatal(err)
		}

		got, err := s.GetQuiz(ctx, a.ID)
		if err != nil || got.Title != "Woordjes Engels" || got.Subject != "Engels" {
			t.Fatalf("GetQuiz = %+v, %v", got, err)
		}

		all, _ := s.ListQuizzes(ctx, quiz.ListOpts{})
		if len(all) != 2 || all[0].Title != "Sommen" {
			t.Fatalf("ListQuizzes newest first = %+v", all)
		}
		mine, _ := s.ListQuizzes(ctx, quiz.ListOpts{OwnerID: "u1"})
		if len(mine) != 1 || mine[0].ID != a.ID {
			t.Fatalf("ListQuizzes by owner = %+v", mine)
		}

		if err := s.DeleteQuiz(ctx, a.ID); err != nil {
			t.Fatal(err)
		}
		if _, err := s.GetQuiz(ctx, a.ID); !errors.Is(err, quiz.ErrNotFound) {
			t.Fatalf("after delete err = %v", err)
		}
		if err := s.DeleteQuiz(ctx, a.ID); !errors.Is(err, quiz.ErrNotFound) {
			t.Fatalf("second delete err = %v", err)
		}
	})
}

func TestStoreInsertQuestionsKeepsOrder(t *testing.T) {
	forEachStore(t, quiz.DefaultMaxBatch, func(t *testing.T, s quiz.Store) {
		ctx := context.Background()
		qz, _ := s.CreateQuiz(ctx, quiz.Quiz{Title: "Topo"})
		batch := []quiz.Question{
			{Type: quiz.TypeMC, Prompt: "Hoofdstad van Frankrijk?", Answer: "Parijs", Choices: []string{"Parijs", "Lyon", "Nice", "Metz"}},
			{Type: quiz.TypeOpen, Prompt: "Hoofdstad van Italië?", Answer: "Rome"},
		}
		out, err := s.InsertQuestions(ctx, qz.ID, batch)
		if err != nil {
			t.Fatal(err)
		}
		if len(out) != 2 || out[0].ID == "" || out[0].Position != 0 || out[1].Position != 1 {
			t.Fatalf("inserted = %+v", out)
		}
		extra, err := s.AddQuestion(ctx, qz.ID, quiz.Question{Type: quiz.TypeOpen, Prompt: "Hoofdstad van Spanje?", Answer: "Madrid", Explanation: "Sinds 1561."})
		if err != nil {
			t.Fatal(err)
		}
		if extra.Position != 2 {
			t.Fatalf("manual question position = %d", extra.Position)
		}

		list, err := s.ListQuestions(ctx, qz.ID)
		if err != nil {
			t.Fatal(err)
		}
		prompts := []string{}
		for _, q := range list {
			prompts = append(prompts, q.Prompt)
		}
		want := []string{"Hoofdstad van Frankrijk?", "Hoofdstad van Italië?", "Hoofdstad van Spanje?"}
		if !reflect.DeepEqual(prompts, want) {
			t.Fatalf("prompts = %v", prompts)
		}
		if !reflect.DeepEqual(list[0].Choices, batch[0].Choices) || list[1].Choices != nil {
			t.Fatalf("choices = %v / %v", list[0].Choices, list[1].Choices)
		}

		got, err := s.GetQuestion(ctx, qz.ID, extra.ID)
		if err != nil || got.Explanation != "Sinds 1561." {
			t.Fatalf("GetQuestion = %+v, %v", got, err)
		}
		if err := s.DeleteQuestion(ctx, qz.ID, extra.ID); err != nil {
			t.Fatal(err)
		}
		if _, err := s.GetQuestion(ctx, qz.ID, extra.ID); !errors.Is(err, quiz.ErrNotFound) {
			t.Fatalf("after delete err = %v", err)
		}
	})
}

func TestStoreInsertQuestionsAllOrNothing(t *testing.T) {
	forEachStore(t, 2, func(t *testing.T, s quiz.Store) {
		ctx := context.Background()
		qz, _ := s.CreateQuiz(ctx, quiz.Quiz{Title: "x"})
		ok := quiz.Question{Type: quiz.TypeOpen, Prompt: "p", Answer: "a"}

		_, err := s.InsertQuestions(ctx, qz.ID, []quiz.Question{ok, ok, ok})
		if !errors.Is(err, quiz.ErrBatchTooLarge) {
			t.Fatalf("oversized batch err = %v", err)
		}
		_, err = s.InsertQuestions(ctx, qz.ID, []quiz.Question{ok, {Type: quiz.TypeMC, Prompt: "p", Answer: "a"}})
		if !errors.Is(err, quiz.ErrInvalidQuestion) {
			t.Fatalf("invalid batch err = %v", err)
		}
		if list, _ := s.ListQuestions(ctx, qz.ID); len(list) != 0 {
			t.Fatalf("partial batch stored: %+v", list)
		}
		if _, err := s.InsertQuestions(ctx, "missing", []quiz.Question{ok}); !errors.Is(err, quiz.ErrNotFound) {
			t.Fatalf("unknown quiz err = %v", err)
		}
	})
}

func TestQuestionValidate(t *testing.T) {
	cases := []struct {
		q    quiz.Question
		want error
	}{
		{quiz.Question{Type: quiz.TypeOpen, Prompt: "p", Answer: "a"}, nil},
		{quiz.Question{Type: quiz.TypeMC, Prompt: "p", Answer: "a", Choices: []string{"a"}}, nil},
		{quiz.Question{Type: quiz.TypeOpen, Prompt: "p", Answer: "a", Choices: []string{"a"}}, quiz.ErrInvalidQuestion},
		{quiz.Question{Type: quiz.TypeMC, Prompt: "p", Answer: "a"}, quiz.ErrInvalidQuestion},
		{quiz.Question{Type: "essay", Prompt: "p", Answer: "a"}, quiz.ErrInvalidQuestion},
		{quiz.Question{Type: quiz.TypeOpen, Answer: "a"}, quiz.ErrInvalidQuestion},
	}
	for i, c := range cases {
		if err := c.q.Validate(); !errors.Is(err, c.want) {
			t.Errorf("case %d: Validate = %v, want %v", i, err, c.want)
		}
	}
}

func TestStudentViewHidesAnswer(t *testing.T) {
	q := quiz.Question{Prompt: "p", Answer: "a", Explanation: "e", Choices: []string{"a", "b"}}
	v := q.StudentView()
	if v.Answer != "" || v.Explanation != "" || len(v.Choices) != 2 {
		t.Fatalf("StudentView = %+v", v)
	}
	if q.Answer != "a" {
		t.Fatal("original mutated")
	}
}
