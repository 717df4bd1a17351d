package http

import (
	"net/http"

	"github.com/jaekwang-park/todo-backend/internal/http/handler"
	"github.com/jaekwang-park/todo-backend/internal/service"
)

func NewRouter(todoSvc *service.TodoService, ping handler.StoragePinger) http.Handler {
	mux := http.NewServeMux()

	health := handler.NewHealthHandler(ping)
	mux.Handle("/health", health)

	// Todo resource
	todoHandler := handler.NewTodoHandler(todoSvc)
	mux.Handle(handler.TodosPath, todoHandler)
	mux.Handle(handler.TodosPath+"/", todoHandler)

	return mux
}
