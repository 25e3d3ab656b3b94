package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/studiemaatje/huiswerkcoach/internal/quiz"
	"github.com/studiemaatje/huiswerkcoach/internal/rbac"
)

type createQuizReq struct {
	Title   string `json:"title"`
	Subject string `json:"subject"`
}

// POST /quizzes
func CreateQuizHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createQuizReq
		if !decodeJSON(w, r, &req) {
			return
		}
		req.Title = strings.TrimSpace(req.Title)
		if req.Title == "" {
			http.Error(w, "title required", http.StatusBadRequest)
			return
		}
		qz, err := store.CreateQuiz(r.Context(), quiz.Quiz{
			Title:   req.Title,
			Subject: strings.TrimSpace(req.Subject),
			OwnerID: rbac.SubjectFromContext(r.Context()),
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusCreated, qz)
	}
}

// GET /quizzes?owner=&limit=&offset=
// Callers without quiz:manage_any only see their own quizzes.
func ListQuizzesHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		opts := quiz.ListOpts{OwnerID: rbac.SubjectFromContext(r.Context())}
		if rbac.Can(r, "quiz:manage_any") {
			opts.OwnerID = q.Get("owner")
		}
		opts.Limit, _ = strconv.Atoi(q.Get("limit"))
		opts.Offset, _ = strconv.Atoi(q.Get("offset"))
		out, err := store.ListQuizzes(r.Context(), opts)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// GET /quizzes/{quizID}
func GetQuizHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		qz, ok := loadQuiz(w, r, store)
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, qz)
	}
}

// DELETE /quizzes/{quizID}
func DeleteQuizHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		qz, ok := loadQuiz(w, r, store)
		if !ok {
			return
		}
		if !canManage(r, qz) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		if err := store.DeleteQuiz(r.Context(), qz.ID); err != nil {
			storeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func loadQuiz(w http.ResponseWriter, r *http.Request, store quiz.Store) (quiz.Quiz, bool) {
	id := strings.TrimSpace(chi.URLParam(r, "quizID"))
	if id == "" {
		http.Error(w, "quizID required", http.StatusBadRequest)
		return quiz.Quiz{}, false
	}
	qz, err := store.GetQuiz(r.Context(), id)
	if err != nil {
		storeError(w, err)
		return quiz.Quiz{}, false
	}
	return qz, true
}

func storeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, quiz.ErrNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	case errors.Is(err, quiz.ErrInvalidQuestion):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, quiz.ErrBatchTooLarge):
		http.Error(w, err.Error(), http.StatusRequestEntityTooLarge)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
