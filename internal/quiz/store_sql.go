package quiz

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type SQLStore struct {
	db       *sql.DB
	driver   string // "sqlite" or "postgres"
	maxBatch int
}

func NewSQLStore(db *sql.DB, driver string, maxBatch int) *SQLStore {
	return &SQLStore{db: db, driver: driver, maxBatch: maxBatch}
}

func (s *SQLStore) CreateQuiz(ctx context.Context, q Quiz) (Quiz, error) {
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	if q.CreatedAt == 0 {
		q.CreatedAt = time.Now().Unix()
	}
	_, err := s.db.ExecContext(ctx, `INSERT INTO quizzes (id,title,subject,owner_id,created_at)
		VALUES ($1,$2,$3,$4,$5)
		ON CONFLICT (id) DO UPDATE SET title=EXCLUDED.title, subject=EXCLUDED.subject`,
		q.ID, q.Title, q.Subject, q.OwnerID, q.CreatedAt)
	if err != nil {
		return Quiz{}, err
	}
	return q, nil
}

func (s *SQLStore) GetQuiz(ctx context.Context, id string) (Quiz, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id,title,subject,owner_id,created_at FROM quizzes WHERE id=$1`, id)
	var q Quiz
	if err := row.Scan(&q.ID, &q.Title, &q.Subject, &q.OwnerID, &q.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Quiz{}, ErrNotFound
		}
		return Quiz{}, err
	}
	return q, nil
}

func (s *SQLStore) ListQuizzes(ctx context.Context, opts ListOpts) ([]Quiz, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 100
	}
	var (
		rows *sql.Rows
		err  error
	)
	if opts.OwnerID == "" {
		rows, err = s.db.QueryContext(ctx, `SELECT id,title,subject,owner_id,created_at FROM quizzes
			ORDER BY created_at DESC, id LIMIT $1 OFFSET $2`, limit, opts.Offset)
	} else {
		rows, err = s.db.QueryContext(ctx, `SELECT id,title,subject,owner_id,created_at FROM quizzes
			WHERE owner_id=$1 ORDER BY created_at DESC, id LIMIT $2 OFFSET $3`, opts.OwnerID, limit, opts.Offset)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Quiz{}
	for rows.Next() {
		var q Quiz
		if err := rows.Scan(&q.ID, &q.Title, &q.Subject, &q.OwnerID, &q.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

func (s *SQLStore) DeleteQuiz(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()
	if _, err := tx.ExecContext(ctx, `DELETE FROM quiz_questions WHERE quiz_id=$1`, id); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM quizzes WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return tx.Commit()
}

func (s *SQLStore) InsertQuestions(ctx context.Context, quizID string, qs []Question) (out []Question, err error) {
	if err := checkBatch(qs, s.maxBatch); err != nil {
		return nil, err
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	var exists int
	if err = tx.QueryRowContext(ctx, `SELECT 1 FROM quizzes WHERE id=$1`, quizID).Scan(&exists); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrNotFound
		}
		return nil, err
	}
	var next int
	if err = tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(position), -1) + 1 FROM quiz_questions WHERE quiz_id=$1`, quizID).Scan(&next); err != nil {
		return nil, err
	}

	out = make([]Question, 0, len(qs))
	for i, q := range qs {
		q.ID = uuid.NewString()
		q.QuizID = quizID
		q.Position = next + i
		var cj []byte
		if cj, err = json.Marshal(q.Choices); err != nil {
			return nil, err
		}
		if _, err = tx.ExecContext(ctx, `INSERT INTO quiz_questions
			(id,quiz_id,position,qtype,prompt,answer,choices_json,explanation)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
			q.ID, q.QuizID, q.Position, q.Type, q.Prompt, q.Answer, string(cj), q.Explanation); err != nil {
			return nil, fmt.Errorf("insert question %d: %w", i, err)
		}
		out = append(out, q)
	}
	return out, nil
}

func (s *SQLStore) AddQuestion(ctx context.Context, quizID string, q Question) (Question, error) {
	out, err := s.InsertQuestions(ctx, quizID, []Question{q})
	if err != nil {
		return Question{}, err
	}
	return out[0], nil
}

func (s *SQLStore) ListQuestions(ctx context.Context, quizID string) ([]Question, error) {
	if _, err := s.GetQuiz(ctx, quizID); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, `SELECT id,quiz_id,position,qtype,prompt,answer,choices_json,explanation
		FROM quiz_questions WHERE quiz_id=$1 ORDER BY position`, quizID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Question{}
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

func (s *SQLStore) GetQuestion(ctx context.Context, quizID, questionID string) (Question, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id,quiz_id,position,qtype,prompt,answer,choices_json,explanation
		FROM quiz_questions WHERE quiz_id=$1 AND id=$2`, quizID, questionID)
	q, err := scanQuestion(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Question{}, ErrNotFound
	}
	return q, err
}

func (s *SQLStore) DeleteQuestion(ctx context.Context, quizID, questionID string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM quiz_questions WHERE quiz_id=$1 AND id=$2`, quizID, questionID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanQuestion(sc scanner) (Question, error) {
	var (
		q  Question
		cj string
	)
	if err := sc.Scan(&q.ID, &q.QuizID, &q.Position, &q.Type, &q.Prompt, &q.Answer, &cj, &q.Explanation); err != nil {
		return Question{}, err
	}
	if cj != "" && cj != "null" {
		if err := json.Unmarshal([]byte(cj), &q.Choices); err != nil {
			return Question{}, err
		}
	}
	return q, nil
}
