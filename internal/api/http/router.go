package http

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	auth "github.com/studiemaatje/huiswerkcoach/internal/auth/middleware"
	"github.com/studiemaatje/huiswerkcoach/internal/grading"
	"github.com/studiemaatje/huiswerkcoach/internal/quiz"
	"github.com/studiemaatje/huiswerkcoach/internal/quizimport"
	"github.com/studiemaatje/huiswerkcoach/internal/rbac"
	"github.com/studiemaatje/huiswerkcoach/internal/storage"
)

type Deps struct {
	DB       *sql.DB
	Auth     *auth.AuthService
	Store    quiz.Store
	Importer *quizimport.Service
	History  quizimport.ImportLog
	Blobs    storage.BlobStore
	Checker  grading.Checker
	Defaults ImportDefaults

	CORSOrigins []string
	LocalAuth   bool // mount /auth/login with dev fallback
	// StrictRoles makes the stored user role authoritative and rejects
	// tokens for unknown users.
	StrictRoles bool
}

func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   d.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Post("/auth/login", auth.LoginHandler(d.Auth, d.DB, d.LocalAuth))

	r.Group(func(pr chi.Router) {
		pr.Use(auth.JWTMiddleware(d.Auth))
		pr.Use(auth.RefreshRole(auth.SQLRoles{DB: d.DB}, !d.StrictRoles))

		pr.With(rbac.Require("quiz:import")).
			Post("/quizzes/import/preview", PreviewImportHandler(d.Defaults))

		pr.With(rbac.Require("quiz:create")).Post("/quizzes", CreateQuizHandler(d.Store))
		pr.With(rbac.Require("quiz:view")).Get("/quizzes", ListQuizzesHandler(d.Store))

		pr.Route("/quizzes/{quizID}", func(qr chi.Router) {
			qr.With(rbac.Require("quiz:view")).Get("/", GetQuizHandler(d.Store))
			qr.With(rbac.RequireAny("quiz:delete_own", "quiz:manage_any")).
				Delete("/", DeleteQuizHandler(d.Store))

			qr.With(rbac.Require("quiz:import")).
				Post("/import", ImportHandler(d.Store, d.Importer, d.Defaults))
			qr.With(rbac.Require("quiz:import")).
				Get("/imports", ImportHistoryHandler(d.Store, d.History))

			qr.With(rbac.Require("quiz:create")).
				Post("/questions", AddQuestionHandler(d.Store))
			qr.With(rbac.Require("quiz:view")).
				Get("/questions", ListQuestionsHandler(d.Store))
			qr.With(rbac.Require("quiz:create")).
				Delete("/questions/{questionID}", DeleteQuestionHandler(d.Store))
			qr.With(rbac.Require("quiz:check")).
				Post("/questions/{questionID}/check", CheckAnswerHandler(d.Store, d.Checker))
		})

		pr.With(rbac.Require("users:bulk_upsert")).
			Post("/users/bulk", BulkUpsertUsersHandler(d.DB))
		pr.With(rbac.Require("users:list")).
			Get("/users", ListUsersHandler(d.DB))
		pr.With(rbac.Require("user:change_password")).
			Post("/users/change-password", ChangePasswordHandler(d.DB))

		if d.Blobs != nil {
			pr.With(rbac.Require("quiz:manage_any")).Route("/archive", func(ar chi.Router) {
				MountImportArchive(ar, d.Blobs)
			})
		}
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if err := d.DB.PingContext(r.Context()); err != nil {
			http.Error(w, "db unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(200)
	})
	return r
}
