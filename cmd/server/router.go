package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/melroyanthony/provet/internal/api"
)

// newRouter assembles the HTTP routes and middleware stack.
func newRouter(noteHandler *api.NoteHandler) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/notes", noteHandler.GenerateNote)
		r.Post("/notes/preview", noteHandler.PreviewPrompt)
	})

	return r
}
