package todo_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"

	"todo-api/internal/domain/entity"
	htodo "todo-api/internal/handler/http/todo"
	todoUC "todo-api/internal/usecase/todo"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/* ───────── スタブ実装 ───────── */

type stubRepo struct {
	data   map[int64]*entity.Todo
	nextID int64
	err    error

	createReturnsNil bool
}

func newStub(seed ...*entity.Todo) *stubRepo {
	s := &stubRepo{data: map[int64]*entity.Todo{}, nextID: 1}
	for _, t := range seed {
		cp := *t
		cp.ID = s.nextID
		s.nextID++
		s.data[cp.ID] = &cp
	}
	return s
}

func (s *stubRepo) List(_ context.Context) ([]*entity.Todo, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := make([]*entity.Todo, 0, len(s.data))
	for _, v := range s.data {
		cp := *v
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *stubRepo) Get(_ context.Context, id int64) (*entity.Todo, error) {
	if s.err != nil {
		return nil, s.err
	}
	if v, ok := s.data[id]; ok {
		cp := *v
		return &cp, nil
	}
	return nil, nil
}

func (s *stubRepo) Create(_ context.Context, t *entity.Todo) (*entity.Todo, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.createReturnsNil {
		return nil, nil
	}
	cp := *t
	cp.ID = s.nextID
	s.nextID++
	s.data[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (s *stubRepo) Update(_ context.Context, t *entity.Todo) (*entity.Todo, error) {
	if s.err != nil {
		return nil, s.err
	}
	if _, ok := s.data[t.ID]; !ok {
		return nil, entity.ErrNotFound
	}
	cp := *t
	s.data[t.ID] = &cp
	out := cp
	return &out, nil
}

func (s *stubRepo) Delete(_ context.Context, id int64) error {
	if s.err != nil {
		return s.err
	}
	if _, ok := s.data[id]; !ok {
		return entity.ErrNotFound
	}
	delete(s.data, id)
	return nil
}

func (s *stubRepo) DeleteAll(_ context.Context) error {
	if s.err != nil {
		return s.err
	}
	s.data = map[int64]*entity.Todo{}
	return nil
}

func (s *stubRepo) Count(_ context.Context) (int64, error) {
	return int64(len(s.data)), s.err
}

/* ───────── ヘルパー ───────── */

func newServer(repo *stubRepo) http.Handler {
	mux := http.NewServeMux()
	htodo.Register(mux, todoUC.Service{Repo: repo})
	return mux
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decodeTodo(t *testing.T, rr *httptest.ResponseRecorder) htodo.DTO {
	t.Helper()
	var out htodo.DTO
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&out))
	return out
}

func ptr(v int64) *int64 { return &v }

/* ───────── 一覧 ───────── */

func TestListHandler(t *testing.T) {
	t.Run("returns all todos", func(t *testing.T) {
		srv := newServer(newStub(entity.NewTodo("a", "1"), entity.NewTodo("b", "2")))

		rr := do(t, srv, http.MethodGet, "/todos", "")

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
		var out []htodo.DTO
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&out))
		assert.Equal(t, []htodo.DTO{
			{ID: ptr(1), Title: "a", Content: "1"},
			{ID: ptr(2), Title: "b", Content: "2"},
		}, out)
	})

	t.Run("no content when empty", func(t *testing.T) {
		rr := do(t, newServer(newStub()), http.MethodGet, "/todos", "")

		assert.Equal(t, http.StatusNoContent, rr.Code)
		assert.Empty(t, rr.Body.String())
	})

	t.Run("store failure", func(t *testing.T) {
		repo := newStub()
		repo.err = errors.New("connection refused")

		rr := do(t, newServer(repo), http.MethodGet, "/todos", "")

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.JSONEq(t, `{"error":"internal server error"}`, rr.Body.String())
	})
}

/* ───────── 取得 ───────── */

func TestGetHandler(t *testing.T) {
	srv := newServer(newStub(entity.NewTodo("title", "content")))

	t.Run("found", func(t *testing.T) {
		rr := do(t, srv, http.MethodGet, "/todos/1", "")

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, htodo.DTO{ID: ptr(1), Title: "title", Content: "content"}, decodeTodo(t, rr))
	})

	t.Run("not found", func(t *testing.T) {
		rr := do(t, srv, http.MethodGet, "/todos/2", "")

		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Empty(t, rr.Body.String())
	})

	t.Run("invalid id", func(t *testing.T) {
		for _, target := range []string{"/todos/abc", "/todos/0", "/todos/-3"} {
			rr := do(t, srv, http.MethodGet, target, "")
			assert.Equal(t, http.StatusBadRequest, rr.Code, target)
			assert.JSONEq(t, `{"error":"invalid id"}`, rr.Body.String(), target)
		}
	})
}

/* ───────── 作成 ───────── */

func TestCreateHandler(t *testing.T) {
	t.Run("created with store assigned id", func(t *testing.T) {
		repo := newStub(entity.NewTodo("existing", ""))
		srv := newServer(repo)

		rr := do(t, srv, http.MethodPost, "/todos", `{"id":1,"title":"new","content":"body"}`)

		require.Equal(t, http.StatusCreated, rr.Code)
		assert.Equal(t, "/todos/2", rr.Header().Get("Location"))
		assert.Equal(t, htodo.DTO{ID: ptr(2), Title: "new", Content: "body"}, decodeTodo(t, rr))
		assert.Equal(t, "existing", repo.data[1].Title)
	})

	t.Run("null id accepted", func(t *testing.T) {
		rr := do(t, newServer(newStub()), http.MethodPost, "/todos", `{"id":null,"title":"t","content":"c"}`)

		require.Equal(t, http.StatusCreated, rr.Code)
		assert.Equal(t, ptr(1), decodeTodo(t, rr).ID)
	})

	t.Run("bad request when store returns nothing", func(t *testing.T) {
		repo := newStub()
		repo.createReturnsNil = true

		rr := do(t, newServer(repo), http.MethodPost, "/todos", `{"title":"t","content":"c"}`)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Empty(t, rr.Body.String())
	})

	t.Run("malformed body", func(t *testing.T) {
		for _, body := range []string{`{"title":`, `[]`, `"text"`} {
			rr := do(t, newServer(newStub()), http.MethodPost, "/todos", body)
			assert.Equal(t, http.StatusBadRequest, rr.Code, body)
			assert.JSONEq(t, `{"error":"malformed JSON body"}`, rr.Body.String())
		}
	})

	t.Run("store failure", func(t *testing.T) {
		repo := newStub()
		repo.err = errors.New("disk full")

		rr := do(t, newServer(repo), http.MethodPost, "/todos", `{"title":"t","content":"c"}`)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}

/* ───────── 更新 ───────── */

func TestUpdateHandler(t *testing.T) {
	t.Run("overwrites title and content", func(t *testing.T) {
		repo := newStub(entity.NewTodo("old", "old"))

		rr := do(t, newServer(repo), http.MethodPut, "/todos/1", `{"id":99,"title":"new","content":"fresh"}`)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, htodo.DTO{ID: ptr(1), Title: "new", Content: "fresh"}, decodeTodo(t, rr))
		assert.Len(t, repo.data, 1)
	})

	t.Run("not found never creates", func(t *testing.T) {
		repo := newStub()

		rr := do(t, newServer(repo), http.MethodPut, "/todos/4", `{"title":"x","content":"y"}`)

		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Empty(t, rr.Body.String())
		assert.Empty(t, repo.data)
	})

	t.Run("invalid id", func(t *testing.T) {
		rr := do(t, newServer(newStub()), http.MethodPut, "/todos/x", `{"title":"x"}`)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		rr := do(t, newServer(newStub(entity.NewTodo("a", "b"))), http.MethodPut, "/todos/1", `nope`)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

/* ───────── 削除 ───────── */

func TestDeleteHandler(t *testing.T) {
	t.Run("returns deleted record", func(t *testing.T) {
		repo := newStub(entity.NewTodo("bye", "now"))

		rr := do(t, newServer(repo), http.MethodDelete, "/todos/1", "")

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, htodo.DTO{ID: ptr(1), Title: "bye", Content: "now"}, decodeTodo(t, rr))
		assert.Empty(t, repo.data)
	})

	t.Run("not found", func(t *testing.T) {
		rr := do(t, newServer(newStub()), http.MethodDelete, "/todos/1", "")
		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Empty(t, rr.Body.String())
	})
}

func TestDeleteAllHandler(t *testing.T) {
	t.Run("clears the store", func(t *testing.T) {
		repo := newStub(entity.NewTodo("a", ""), entity.NewTodo("b", ""))

		rr := do(t, newServer(repo), http.MethodDelete, "/todos", "")

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Empty(t, rr.Body.String())
		assert.Empty(t, repo.data)
	})

	t.Run("empty store still ok", func(t *testing.T) {
		rr := do(t, newServer(newStub()), http.MethodDelete, "/todos", "")

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Empty(t, rr.Body.String())
	})

	t.Run("store failure", func(t *testing.T) {
		repo := newStub()
		repo.err = errors.New("locked")

		rr := do(t, newServer(repo), http.MethodDelete, "/todos", "")
		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}

func TestRegister_MethodNotAllowed(t *testing.T) {
	rr := do(t, newServer(newStub()), http.MethodPatch, "/todos/1", `{}`)
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}
