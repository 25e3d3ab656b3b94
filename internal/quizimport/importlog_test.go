package quizimport

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"

	"github.com/studiemaatje/huiswerkcoach/internal/db"
)

func TestSQLImportLogNewestFirst(t *testing.T) {
	ctx := context.Background()
	conn, err := db.Open(ctx, db.DriverSQLite, fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer conn.Close()

	l := NewSQLImportLog(conn)
	for i, k := range []Kind{KindQuestions, KindEmpty, KindChatBlock} {
		if err := l.Record(ctx, LogEntry{QuizID: "q1", UserID: "u1", Kind: k, Inserted: i, CreatedAt: int64(i)}); err != nil {
			t.Fatal(err)
		}
	}
	if err := l.Record(ctx, LogEntry{QuizID: "q2", UserID: "u1", Kind: KindQuestions}); err != nil {
		t.Fatal(err)
	}

	got, err := l.List(ctx, "q1", 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].Kind != KindChatBlock || got[1].Kind != KindEmpty {
		t.Fatalf("List = %+v", got)
	}
}
