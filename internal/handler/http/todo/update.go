package todo

import (
	"net/http"

	"todo-api/internal/handler/http/pathutil"
	"todo-api/internal/handler/http/respond"
	todoUC "todo-api/internal/usecase/todo"
)

type UpdateHandler struct{ Svc todoUC.Service }

// ServeHTTP Todo更新
// @Summary      Todo更新
// @Description  既存 Todo の title と content を上書きします。存在しない ID の場合は作成せず 404 を返します
// @Tags         todos
// @Accept       json
// @Produce      json
// @Param        id path int true "Todo ID"
// @Param        todo body DTO true "更新内容"
// @Success      200 {object} DTO
// @Failure      400 {object} map[string]string "Bad request - invalid id or malformed body"
// @Failure      404 "Not found - empty body"
// @Failure      413 {object} map[string]string "Request body too large"
// @Failure      500 {object} map[string]string "Internal server error"
// @Router       /todos/{id} [put]
func (h UpdateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.IDFromRequest(r)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	in, err := decodeTodo(r)
	if err != nil {
		respond.SafeError(r.Context(), w, http.StatusBadRequest, err)
		return
	}

	updated, err := h.Svc.Update(r.Context(), id, in.toEntity())
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	respond.JSON(w, http.StatusOK, toDTO(updated))
}
