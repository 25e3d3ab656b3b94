package http

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/studiemaatje/huiswerkcoach/internal/storage"
)

// MountImportArchive serves the raw text archived for each bulk import.
func MountImportArchive(r chi.Router, bs storage.BlobStore) {
	// GET /archive/imports/{quizID}/{file}.txt
	r.Get("/*", func(w http.ResponseWriter, r *http.Request) {
		key := strings.TrimPrefix(chi.URLParam(r, "*"), "/")
		if !strings.HasPrefix(key, "imports/") {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		rc, err := bs.Get(key)
		if errors.Is(err, storage.ErrBadKey) {
			http.Error(w, "bad key", http.StatusBadRequest)
			return
		}
		if err != nil {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		defer rc.Close()
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = io.Copy(w, rc)
	})
}
