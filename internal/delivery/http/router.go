package http

import (
	"net/http"

	"github.com/oziev02/threadtree/internal/usecase"
)

// NewRouter создает HTTP роутер
func NewRouter(commentUseCase *usecase.CommentUseCase) *http.ServeMux {
	handler := NewCommentHandler(commentUseCase)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("GET /comments", handler.List)
	mux.HandleFunc("POST /comments", handler.Create)
	mux.HandleFunc("GET /comments/{id}", handler.Get)
	mux.HandleFunc("PUT /comments/{id}", handler.Update)
	mux.HandleFunc("DELETE /comments/{id}", handler.Delete)
	mux.HandleFunc("POST /comments/{id}/vote", handler.Vote)

	return mux
}
