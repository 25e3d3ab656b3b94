package http

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/studiemaatje/huiswerkcoach/internal/grading"
	"github.com/studiemaatje/huiswerkcoach/internal/quiz"
)

type addQuestionReq struct {
	Type        string   `json:"qtype"`
	Prompt      string   `json:"prompt"`
	Answer      string   `json:"answer"`
	Choices     []string `json:"choices"`
	Explanation string   `json:"explanation"`
}

// POST /quizzes/{quizID}/questions
func AddQuestionHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		qz, ok := loadQuiz(w, r, store)
		if !ok {
			return
		}
		if !canManage(r, qz) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		var req addQuestionReq
		if !decodeJSON(w, r, &req) {
			return
		}
		q := quiz.Question{
			Type:        strings.ToLower(strings.TrimSpace(req.Type)),
			Prompt:      strings.TrimSpace(req.Prompt),
			Answer:      strings.TrimSpace(req.Answer),
			Explanation: strings.TrimSpace(req.Explanation),
		}
		if q.Type == "" {
			q.Type = quiz.TypeOpen
			if len(req.Choices) > 0 {
				q.Type = quiz.TypeMC
			}
		}
		for _, c := range req.Choices {
			if c = strings.TrimSpace(c); c != "" {
				q.Choices = append(q.Choices, c)
			}
		}
		saved, err := store.AddQuestion(r.Context(), qz.ID, q)
		if err != nil {
			storeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, saved)
	}
}

// GET /quizzes/{quizID}/questions
// Answers and explanations are only returned to callers that may manage the quiz.
func ListQuestionsHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		qz, ok := loadQuiz(w, r, store)
		if !ok {
			return
		}
		qs, err := store.ListQuestions(r.Context(), qz.ID)
		if err != nil {
			storeError(w, err)
			return
		}
		if !canManage(r, qz) || r.URL.Query().Get("view") == "student" {
			for i := range qs {
				qs[i] = qs[i].StudentView()
			}
		}
		writeJSON(w, http.StatusOK, qs)
	}
}

// DELETE /quizzes/{quizID}/questions/{questionID}
func DeleteQuestionHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		qz, ok := loadQuiz(w, r, store)
		if !ok {
			return
		}
		if !canManage(r, qz) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		if err := store.DeleteQuestion(r.Context(), qz.ID, chi.URLParam(r, "questionID")); err != nil {
			storeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

type checkReq struct {
	Answer string `json:"answer"`
}

type checkResp struct {
	grading.Result
	Explanation string `json:"explanation,omitempty"`
}

// POST /quizzes/{quizID}/questions/{questionID}/check
func CheckAnswerHandler(store quiz.Store, checker grading.Checker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		quizID := strings.TrimSpace(chi.URLParam(r, "quizID"))
		q, err := store.GetQuestion(r.Context(), quizID, chi.URLParam(r, "questionID"))
		if err != nil {
			storeError(w, err)
			return
		}
		var req checkReq
		if !decodeJSON(w, r, &req) {
			return
		}
		res, err := checker.Check(r.Context(), grading.Q{Type: q.Type, Answer: q.Answer, Choices: q.Choices}, req.Answer)
		if err != nil {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		writeJSON(w, http.StatusOK, checkResp{Result: res, Explanation: q.Explanation})
	}
}
