package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/oziev02/threadtree/internal/domain"
	"github.com/oziev02/threadtree/internal/usecase"
)

// IdentityHeader содержит имя пользователя, от лица которого выполняется запрос
const IdentityHeader = "X-Username"

// CommentHandler обрабатывает HTTP запросы для комментариев
type CommentHandler struct {
	useCase *usecase.CommentUseCase
}

// NewCommentHandler создает новый экземпляр CommentHandler
func NewCommentHandler(useCase *usecase.CommentUseCase) *CommentHandler {
	return &CommentHandler{useCase: useCase}
}

// CreateCommentRequest DTO для создания комментария
type CreateCommentRequest struct {
	ParentID *int64 `json:"parent_id"`
	Content  string `json:"content"`
}

// UpdateCommentRequest DTO для редактирования комментария
type UpdateCommentRequest struct {
	Content string `json:"content"`
}

// VoteRequest DTO для голосования
type VoteRequest struct {
	Kind string `json:"kind"`
}

// CommentsListResponse DTO для списка комментариев
type CommentsListResponse struct {
	Comments []domain.Comment `json:"comments"`
	Total    int              `json:"total"`
}

// DeleteResponse DTO для ответа на удаление
type DeleteResponse struct {
	Deleted int `json:"deleted"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// List обрабатывает GET /comments
func (h *CommentHandler) List(w http.ResponseWriter, r *http.Request) {
	if search := r.URL.Query().Get("search"); search != "" {
		found := h.useCase.Search(search)
		writeJSON(w, http.StatusOK, CommentsListResponse{Comments: found, Total: len(found)})
		return
	}

	forest := h.useCase.Forest()
	writeJSON(w, http.StatusOK, CommentsListResponse{Comments: forest, Total: forest.Count()})
}

// Get обрабатывает GET /comments/{id}
func (h *CommentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	comment, err := h.useCase.Get(id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, comment)
}

// Create обрабатывает POST /comments
func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	comment, err := h.useCase.Add(r.Context(), identity(r), req.ParentID, req.Content)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, comment)
}

// Update обрабатывает PUT /comments/{id}
func (h *CommentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req UpdateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	comment, err := h.useCase.Edit(r.Context(), identity(r), id, req.Content)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, comment)
}

// Delete обрабатывает DELETE /comments/{id}
func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	deleted, err := h.useCase.Remove(r.Context(), identity(r), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, DeleteResponse{Deleted: deleted})
}

// Vote обрабатывает POST /comments/{id}/vote
func (h *CommentHandler) Vote(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req VoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	kind, err := domain.ParseVoteKind(req.Kind)
	if err != nil {
		writeError(w, err)
		return
	}

	comment, err := h.useCase.Vote(r.Context(), id, kind)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, comment)
}

// identity возвращает имя пользователя из заголовка; пустая строка
// означает анонимного пользователя
func identity(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get(IdentityHeader))
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid comment id"})
		return 0, false
	}
	return id, true
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrEmptyContent), errors.Is(err, domain.ErrInvalidVote):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrCommentNotFound), errors.Is(err, domain.ErrInvalidParent):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		writeJSON(w, http.StatusForbidden, errorResponse{Error: err.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
