package todo

import (
	"net/http"
	"strconv"

	"todo-api/internal/handler/http/respond"
	todoUC "todo-api/internal/usecase/todo"
)

type CreateHandler struct{ Svc todoUC.Service }

// ServeHTTP Todo作成
// @Summary      Todo作成
// @Description  Todo を新規作成します。リクエストの id は無視され、ストアが採番します
// @Tags         todos
// @Accept       json
// @Produce      json
// @Param        todo body DTO true "作成する Todo"
// @Success      201 {object} DTO
// @Header       201 {string} Location "/todos/{id}"
// @Failure      400 {object} map[string]string "Bad request - malformed body or nothing persisted"
// @Failure      413 {object} map[string]string "Request body too large"
// @Failure      500 {object} map[string]string "Internal server error"
// @Router       /todos [post]
func (h CreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	in, err := decodeTodo(r)
	if err != nil {
		respond.SafeError(r.Context(), w, http.StatusBadRequest, err)
		return
	}

	created, err := h.Svc.Create(r.Context(), in.toEntity())
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	w.Header().Set("Location", "/todos/"+strconv.FormatInt(created.ID, 10))
	respond.JSON(w, http.StatusCreated, toDTO(created))
}
