package chatimport

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/studiemaatje/huiswerkcoach/internal/quiz"
)

func TestLocalImporterCreatesQuiz(t *testing.T) {
	store := quiz.NewInMemoryStore(quiz.DefaultMaxBatch)
	imp := NewLocalImporter(store)
	ctx := context.Background()

	res, err := imp.Import(ctx, Request{
		Text:    "Wat is 3 x 3?\nA) 6\nB) 9\nAntwoord: B",
		Title:   "Tafels",
		Subject: "Rekenen",
		OwnerID: "u1",
	})
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if res.Inserted != 1 || res.QuizID == "" {
		t.Fatalf("unexpected response: %+v", res)
	}
	qz, err := store.GetQuiz(ctx, res.QuizID)
	if err != nil {
		t.Fatalf("GetQuiz: %v", err)
	}
	if qz.Title != "Tafels" || qz.Subject != "Rekenen" || qz.OwnerID != "u1" {
		t.Fatalf("quiz = %+v", qz)
	}
	qs, _ := store.ListQuestions(ctx, res.QuizID)
	if len(qs) != 1 || qs[0].Answer != "9" {
		t.Fatalf("questions = %+v", qs)
	}
}

func TestLocalImporterNoBlocks(t *testing.T) {
	imp := NewLocalImporter(quiz.NewInMemoryStore(0))
	if _, err := imp.Import(context.Background(), Request{Text: "Antwoord: A"}); !errors.Is(err, ErrNoBlocks) {
		t.Fatalf("err = %v, want ErrNoBlocks", err)
	}
}

func TestClientForwardsRequest(t *testing.T) {
	var got Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok" {
			http.Error(w, "missing bearer", http.StatusUnauthorized)
			return
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		_ = json.NewEncoder(w).Encode(Response{QuizID: "remote-1", Inserted: 2})
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL, "tok", srv.Client())
	if err != nil {
		t.Fatal(err)
	}
	res, err := c.Import(context.Background(), Request{Text: "raw\nAntwoord: A", Title: "T", Subject: "S"})
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if res.QuizID != "remote-1" || res.Inserted != 2 {
		t.Fatalf("response = %+v", res)
	}
	if got.Text != "raw\nAntwoord: A" || got.Title != "T" || got.Subject != "S" {
		t.Fatalf("forwarded request = %+v", got)
	}
}

func TestClientSurfacesRemoteErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()
	c, _ := NewClient(srv.URL, "", nil)
	_, err := c.Import(context.Background(), Request{Text: "x"})
	if err == nil || errors.Is(err, ErrNoBlocks) {
		t.Fatalf("err = %v for 502", err)
	}
}

func TestClientMapsUnprocessableToNoBlocks(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "geen vragen gevonden", http.StatusUnprocessableEntity)
	}))
	defer srv.Close()
	c, _ := NewClient(srv.URL, "", nil)
	if _, err := c.Import(context.Background(), Request{Text: "Antwoord: A"}); !errors.Is(err, ErrNoBlocks) {
		t.Fatalf("err = %v, want ErrNoBlocks", err)
	}
}
