package http

import (
	"encoding/json"
	"net/http"

	"github.com/studiemaatje/huiswerkcoach/internal/quiz"
	"github.com/studiemaatje/huiswerkcoach/internal/rbac"
)

// maxBodyBytes bounds pasted import text and JSON bodies.
const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return false
	}
	return true
}

// canManage reports whether the caller may change qz: its owner, or a role
// that manages every quiz.
func canManage(r *http.Request, qz quiz.Quiz) bool {
	sub := rbac.SubjectFromContext(r.Context())
	return (sub != "" && qz.OwnerID == sub) || rbac.Can(r, "quiz:manage_any")
}
