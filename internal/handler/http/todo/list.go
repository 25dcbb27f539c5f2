package todo

import (
	"net/http"

	"todo-api/internal/handler/http/respond"
	todoUC "todo-api/internal/usecase/todo"
)

type ListHandler struct{ Svc todoUC.Service }

// ServeHTTP Todo一覧取得
// @Summary      Todo一覧取得
// @Description  全ての Todo を ID 昇順で返します。0 件の場合は 204 を返します
// @Tags         todos
// @Produce      json
// @Success      200 {array} DTO
// @Success      204 "No Content - no todos stored"
// @Failure      500 {object} map[string]string "Internal server error"
// @Router       /todos [get]
func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	list, err := h.Svc.List(r.Context())
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	if len(list) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	respond.JSON(w, http.StatusOK, toDTOs(list))
}
