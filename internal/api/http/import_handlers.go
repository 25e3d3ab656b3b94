package http

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/studiemaatje/huiswerkcoach/internal/chatimport"
	"github.com/studiemaatje/huiswerkcoach/internal/importlock"
	"github.com/studiemaatje/huiswerkcoach/internal/quiz"
	"github.com/studiemaatje/huiswerkcoach/internal/quizimport"
	"github.com/studiemaatje/huiswerkcoach/internal/rbac"
)

// ImportDefaults apply when a request leaves the batch settings out.
type ImportDefaults struct {
	DefaultType     quizimport.QType
	AutoDistractors bool
}

type importReq struct {
	Text            string `json:"text"`
	DefaultType     string `json:"default_type"`
	AutoDistractors *bool  `json:"auto_distractors"`
	Title           string `json:"title"`
	Subject         string `json:"subject"`
}

func (d ImportDefaults) options(req importReq) quizimport.Options {
	opts := quizimport.Options{DefaultType: d.DefaultType, SynthesizeDistractors: d.AutoDistractors}
	if t := quizimport.ParseType(req.DefaultType); t != quizimport.TypeUnset {
		opts.DefaultType = t
	}
	if req.AutoDistractors != nil {
		opts.SynthesizeDistractors = *req.AutoDistractors
	}
	return opts
}

type importResp struct {
	Inserted int             `json:"inserted"`
	Items    []quiz.Question `json:"items"`
	Skipped  []string        `json:"skipped,omitempty"`
}

// POST /quizzes/{quizID}/import
//
//	201 {inserted, items}     questions stored
//	202 {chat_import}         text was a chat block and went to the chat importer
//	409                       an import for this quiz is still running
//	422 {error, skipped}      no line was recognized
func ImportHandler(store quiz.Store, svc *quizimport.Service, defaults ImportDefaults) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		qz, ok := loadQuiz(w, r, store)
		if !ok {
			return
		}
		if !canManage(r, qz) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		var req importReq
		if !decodeJSON(w, r, &req) {
			return
		}

		out, err := svc.Import(r.Context(), quizimport.Request{
			QuizID:  qz.ID,
			Text:    req.Text,
			Title:   req.Title,
			Subject: req.Subject,
			UserID:  rbac.SubjectFromContext(r.Context()),
			Options: defaults.options(req),
		})
		switch {
		case err == nil:
		case errors.Is(err, quizimport.ErrNoValidLines):
			writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
				"error":   err.Error(),
				"skipped": out.Skipped,
			})
			return
		case errors.Is(err, chatimport.ErrNoBlocks):
			writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"error": err.Error()})
			return
		case errors.Is(err, importlock.ErrBusy):
			http.Error(w, "import already in progress", http.StatusConflict)
			return
		case errors.Is(err, quizimport.ErrNoChatImporter):
			http.Error(w, err.Error(), http.StatusNotImplemented)
			return
		case out.Kind == quizimport.KindChatBlock:
			log.Printf("import quiz %s: %v", qz.ID, err)
			http.Error(w, "chat import failed", http.StatusBadGateway)
			return
		default:
			storeError(w, err)
			return
		}

		if out.Kind == quizimport.KindChatBlock {
			writeJSON(w, http.StatusAccepted, map[string]any{"chat_import": out.Chat})
			return
		}
		writeJSON(w, http.StatusCreated, importResp{
			Inserted: len(out.Inserted),
			Items:    out.Inserted,
			Skipped:  out.Skipped,
		})
	}
}

// POST /quizzes/import/preview
// Dry run: shows what an import would store without touching any quiz.
func PreviewImportHandler(defaults ImportDefaults) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req importReq
		if !decodeJSON(w, r, &req) {
			return
		}
		res := quizimport.Plan(req.Text, defaults.options(req))
		if err := res.Err(); err != nil {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
				"error":   err.Error(),
				"skipped": res.Skipped,
			})
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}

// GET /quizzes/{quizID}/imports?limit=
func ImportHistoryHandler(store quiz.Store, history quizimport.ImportLog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		qz, ok := loadQuiz(w, r, store)
		if !ok {
			return
		}
		if !canManage(r, qz) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		entries, err := history.List(r.Context(), qz.ID, limit)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, entries)
	}
}
