package quizimport

import (
	"context"
	"database/sql"
)

type LogEntry struct {
	QuizID    string `json:"quiz_id"`
	UserID    string `json:"user_id"`
	Kind      Kind   `json:"kind"`
	Inserted  int    `json:"inserted"`
	Skipped   int    `json:"skipped"`
	BlobKey   string `json:"blob_key,omitempty"`
	CreatedAt int64  `json:"created_at"`
}

// ImportLog keeps an audit trail of bulk imports.
type ImportLog interface {
	Record(ctx context.Context, e LogEntry) error
	List(ctx context.Context, quizID string, limit int) ([]LogEntry, error)
}

type SQLImportLog struct{ db *sql.DB }

func NewSQLImportLog(db *sql.DB) *SQLImportLog { return &SQLImportLog{db: db} }

func (l *SQLImportLog) Record(ctx context.Context, e LogEntry) error {
	_, err := l.db.ExecContext(ctx, `INSERT INTO import_log (quiz_id,user_id,kind,inserted,skipped,blob_key,created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		e.QuizID, e.UserID, string(e.Kind), e.Inserted, e.Skipped, e.BlobKey, e.CreatedAt)
	return err
}

func (l *SQLImportLog) List(ctx context.Context, quizID string, limit int) ([]LogEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := l.db.QueryContext(ctx, `SELECT quiz_id,user_id,kind,inserted,skipped,blob_key,created_at
		FROM import_log WHERE quiz_id=$1 ORDER BY id DESC LIMIT $2`, quizID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []LogEntry{}
	for rows.Next() {
		var (
			e    LogEntry
			kind string
		)
		if err := rows.Scan(&e.QuizID, &e.UserID, &kind, &e.Inserted, &e.Skipped, &e.BlobKey, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.Kind = Kind(kind)
		out = append(out, e)
	}
	return out, rows.Err()
}
