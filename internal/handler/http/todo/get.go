package todo

import (
	"net/http"

	"todo-api/internal/handler/http/pathutil"
	"todo-api/internal/handler/http/respond"
	todoUC "todo-api/internal/usecase/todo"
)

type GetHandler struct{ Svc todoUC.Service }

// ServeHTTP Todo取得
// @Summary      Todo取得
// @Description  ID を指定して Todo を 1 件返します
// @Tags         todos
// @Produce      json
// @Param        id path int true "Todo ID"
// @Success      200 {object} DTO
// @Failure      400 {object} map[string]string "Bad request - invalid id"
// @Failure      404 "Not found - empty body"
// @Failure      500 {object} map[string]string "Internal server error"
// @Router       /todos/{id} [get]
func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.IDFromRequest(r)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	t, err := h.Svc.Get(r.Context(), id)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	respond.JSON(w, http.StatusOK, toDTO(t))
}
