package todo

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"todo-api/internal/handler/http/pathutil"
	"todo-api/internal/handler/http/respond"
	todoUC "todo-api/internal/usecase/todo"
)

// writeError maps use case and parsing errors to status codes.
// A missing todo and an unpersisted create answer with a bare status and no
// body; the remaining errors carry the {"error": ...} body.
func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, todoUC.ErrTodoNotFound):
		w.WriteHeader(http.StatusNotFound)
	case errors.Is(err, todoUC.ErrTodoNotPersisted):
		w.WriteHeader(http.StatusBadRequest)
	case errors.Is(err, pathutil.ErrInvalidID):
		respond.SafeError(ctx, w, http.StatusBadRequest, err)
	default:
		respond.SafeError(ctx, w, http.StatusInternalServerError, err)
	}
}

// decodeTodo reads a todo body. Oversized bodies yield 413, anything else
// that is not a JSON object yields 400.
func decodeTodo(r *http.Request) (DTO, error) {
	var in DTO
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return DTO{}, respond.NewAppError(http.StatusRequestEntityTooLarge, "request body too large", err)
		}
		return DTO{}, respond.NewAppError(http.StatusBadRequest, "malformed JSON body", err)
	}
	return in, nil
}
