// Package todo exposes the todo use cases over HTTP, one handler type per
// operation.
package todo

import (
	"net/http"

	todoUC "todo-api/internal/usecase/todo"
)

// Register mounts the todo endpoints on mux.
func Register(mux *http.ServeMux, svc todoUC.Service) {
	mux.Handle("GET    /todos", ListHandler{svc})
	mux.Handle("POST   /todos", CreateHandler{svc})
	mux.Handle("DELETE /todos", DeleteAllHandler{svc})

	mux.Handle("GET    /todos/{id}", GetHandler{svc})
	mux.Handle("PUT    /todos/{id}", UpdateHandler{svc})
	mux.Handle("DELETE /todos/{id}", DeleteHandler{svc})
}
