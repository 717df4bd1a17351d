package handler

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/jaekwang-park/todo-backend/internal/model"
	"github.com/jaekwang-park/todo-backend/internal/service"
)

// TodosPath is the collection path the todo handler is mounted on.
const TodosPath = "/todos"

const (
	collectionMethods = "GET, POST, DELETE, OPTIONS"
	itemMethods       = "GET, PATCH, DELETE, OPTIONS"
)

type TodoHandler struct {
	svc *service.TodoService
}

func NewTodoHandler(svc *service.TodoService) *TodoHandler {
	return &TodoHandler{svc: svc}
}

// ServeHTTP routes /todos and /todos/{id}
func (h *TodoHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, TodosPath)
	rest = strings.Trim(rest, "/")

	// /todos
	if rest == "" {
		switch r.Method {
		case http.MethodGet:
			h.handleList(w, r)
		case http.MethodPost:
			h.handleCreate(w, r)
		case http.MethodDelete:
			h.handleDeleteAll(w, r)
		case http.MethodOptions:
			writeAllow(w, collectionMethods)
		default:
			WriteError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed")
		}
		return
	}

	// /todos/hello
	if rest == "hello" {
		h.handleHello(w, r)
		return
	}

	if strings.Contains(rest, "/") {
		WriteError(w, http.StatusNotFound, "NOT_FOUND", "resource not found")
		return
	}

	id, err := strconv.ParseInt(rest, 10, 64)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "INVALID_ID", "todo id must be an integer")
		return
	}

	// /todos/{id}
	switch r.Method {
	case http.MethodGet:
		h.handleGetOne(w, r, id)
	case http.MethodPatch:
		h.handleUpdate(w, r, id)
	case http.MethodDelete:
		h.handleDeleteOne(w, r, id)
	case http.MethodOptions:
		writeAllow(w, itemMethods)
	default:
		WriteError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed")
	}
}

func (h *TodoHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	fields, err := decodeTodoFields(r.Body)
	if err != nil {
		writeDecodeError(w, err)
		return
	}

	title, ok := fields.Title.Get()
	if !ok {
		WriteError(w, http.StatusBadRequest, "INVALID_INPUT", "title is required")
		return
	}

	todo, err := h.svc.Create(r.Context(), service.CreateTodoInput{
		Title:     title,
		Completed: fields.Completed,
		Order:     fields.Order,
	})
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, todo)
}

// handleList returns every todo, or only those with an exact title match when
// the title query parameter is present.
func (h *TodoHandler) handleList(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var (
		todos []model.TodoResponse
		err   error
	)
	if query.Has("title") {
		todos, err = h.svc.FindByTitle(r.Context(), query.Get("title"))
	} else {
		todos, err = h.svc.List(r.Context())
	}
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, todos)
}

func (h *TodoHandler) handleDeleteAll(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteAll(r.Context()); err != nil {
		handleServiceError(w, r, err)
		return
	}

	WriteEmpty(w, http.StatusOK)
}

func (h *TodoHandler) handleGetOne(w http.ResponseWriter, r *http.Request, id int64) {
	todo, err := h.svc.GetOne(r.Context(), id)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, todo)
}

func (h *TodoHandler) handleUpdate(w http.ResponseWriter, r *http.Request, id int64) {
	fields, err := decodeTodoFields(r.Body)
	if err != nil {
		writeDecodeError(w, err)
		return
	}

	todo, err := h.svc.Update(r.Context(), id, fields.patch())
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, todo)
}

func (h *TodoHandler) handleDeleteOne(w http.ResponseWriter, r *http.Request, id int64) {
	if err := h.svc.DeleteOne(r.Context(), id); err != nil {
		handleServiceError(w, r, err)
		return
	}

	WriteEmpty(w, http.StatusOK)
}

func (h *TodoHandler) handleHello(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		io.WriteString(w, "Hello, World!")
	case http.MethodOptions:
		writeAllow(w, "GET, OPTIONS")
	default:
		WriteError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed")
	}
}

// writeAllow answers a plain OPTIONS request. CORS preflights never get here.
func writeAllow(w http.ResponseWriter, methods string) {
	w.Header().Set("Allow", methods)
	WriteEmpty(w, http.StatusOK)
}

func writeDecodeError(w http.ResponseWriter, err error) {
	if errors.Is(err, errInvalidJSON) {
		WriteError(w, http.StatusBadRequest, "INVALID_JSON", "invalid request body")
		return
	}
	WriteError(w, http.StatusBadRequest, "INVALID_INPUT", err.Error())
}

func handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		WriteError(w, http.StatusNotFound, "NOT_FOUND", "todo not found")
	default:
		slog.ErrorContext(r.Context(), "todo operation failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		WriteError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}
