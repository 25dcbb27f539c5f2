package todo

import (
	"net/http"

	"todo-api/internal/handler/http/pathutil"
	"todo-api/internal/handler/http/respond"
	todoUC "todo-api/internal/usecase/todo"
)

type DeleteHandler struct{ Svc todoUC.Service }

// ServeHTTP Todo削除
// @Summary      Todo削除
// @Description  Todo を 1 件削除し、削除前の内容を返します
// @Tags         todos
// @Produce      json
// @Param        id path int true "Todo ID"
// @Success      200 {object} DTO
// @Failure      400 {object} map[string]string "Bad request - invalid id"
// @Failure      404 "Not found - empty body"
// @Failure      500 {object} map[string]string "Internal server error"
// @Router       /todos/{id} [delete]
func (h DeleteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.IDFromRequest(r)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	deleted, err := h.Svc.Delete(r.Context(), id)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	respond.JSON(w, http.StatusOK, toDTO(deleted))
}

type DeleteAllHandler struct{ Svc todoUC.Service }

// ServeHTTP Todo全削除
// @Summary      Todo全削除
// @Description  全ての Todo を削除します。空でも 200 を返します
// @Tags         todos
// @Success      200 "OK - empty body"
// @Failure      500 {object} map[string]string "Internal server error"
// @Router       /todos [delete]
func (h DeleteAllHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if err := h.Svc.DeleteAll(r.Context()); err != nil {
		writeError(r.Context(), w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}
