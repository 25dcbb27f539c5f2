package todo_test

import (
	"context"
	"errors"
	"os"
	"sort"
	"testing"

	"todo-api/internal/domain/entity"
	"todo-api/internal/observability/metrics"
	todoUC "todo-api/internal/usecase/todo"

	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

var spans = tracetest.NewSpanRecorder()

func TestMain(m *testing.M) {
	// tracing.GetTracer はグローバルプロバイダに委譲する
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(spans)))
	os.Exit(m.Run())
}

/*────────────────────  インメモリスタブ  ────────────────────*/

type stubRepo struct {
	data   map[int64]*entity.Todo
	nextID int64
	err    error // 強制エラー注入用

	createReturnsNil bool  // save が何も返さないケース
	writeErr         error // Update / Delete のみに返すエラー
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
	v, ok := s.data[id]
	if !ok {
		return nil, nil
	}
	cp := *v
	return &cp, nil
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
	if s.writeErr != nil {
		return nil, s.writeErr
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
	if s.writeErr != nil {
		return s.writeErr
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

/*────────────────────  テストケース  ────────────────────*/

func TestService_List(t *testing.T) {
	t.Run("returns todos ordered by id", func(t *testing.T) {
		repo := newStub(entity.NewTodo("a", "1"), entity.NewTodo("b", "2"))
		svc := todoUC.Service{Repo: repo}

		got, err := svc.List(context.Background())
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, int64(1), got[0].ID)
		assert.Equal(t, "b", got[1].Title)
	})

	t.Run("empty store", func(t *testing.T) {
		svc := todoUC.Service{Repo: newStub()}

		got, err := svc.List(context.Background())
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("repository error is wrapped", func(t *testing.T) {
		boom := errors.New("db down")
		repo := newStub()
		repo.err = boom
		svc := todoUC.Service{Repo: repo}

		_, err := svc.List(context.Background())
		require.Error(t, err)
		assert.ErrorIs(t, err, boom)
	})
}

func TestService_Get(t *testing.T) {
	repo := newStub(entity.NewTodo("title", "content"))
	svc := todoUC.Service{Repo: repo}

	got, err := svc.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, &entity.Todo{ID: 1, Title: "title", Content: "content"}, got)

	_, err = svc.Get(context.Background(), 99)
	assert.ErrorIs(t, err, todoUC.ErrTodoNotFound)
}

func TestService_Create(t *testing.T) {
	t.Run("store assigns id and client id is ignored", func(t *testing.T) {
		repo := newStub(entity.NewTodo("existing", ""))
		svc := todoUC.Service{Repo: repo}

		got, err := svc.Create(context.Background(), &entity.Todo{ID: 1, Title: "new", Content: "body"})
		require.NoError(t, err)
		assert.Equal(t, int64(2), got.ID)
		assert.Equal(t, "new", got.Title)
		assert.Equal(t, "existing", repo.data[1].Title, "client id must not overwrite an existing record")
	})

	t.Run("store returns nothing", func(t *testing.T) {
		repo := newStub()
		repo.createReturnsNil = true
		svc := todoUC.Service{Repo: repo}

		got, err := svc.Create(context.Background(), entity.NewTodo("t", "c"))
		assert.Nil(t, got)
		assert.ErrorIs(t, err, todoUC.ErrTodoNotPersisted)
	})

	t.Run("repository error", func(t *testing.T) {
		repo := newStub()
		repo.err = errors.New("insert failed")
		svc := todoUC.Service{Repo: repo}

		_, err := svc.Create(context.Background(), entity.NewTodo("t", "c"))
		require.Error(t, err)
		assert.NotErrorIs(t, err, todoUC.ErrTodoNotPersisted)
	})
}

func TestService_Update(t *testing.T) {
	t.Run("overwrites title and content only", func(t *testing.T) {
		repo := newStub(entity.NewTodo("old", "old content"))
		svc := todoUC.Service{Repo: repo}

		got, err := svc.Update(context.Background(), 1, &entity.Todo{ID: 42, Title: "new", Content: "new content"})
		require.NoError(t, err)
		assert.Equal(t, &entity.Todo{ID: 1, Title: "new", Content: "new content"}, got)
		assert.Equal(t, "new", repo.data[1].Title)
		_, created := repo.data[42]
		assert.False(t, created)
	})

	t.Run("missing id never creates", func(t *testing.T) {
		repo := newStub()
		svc := todoUC.Service{Repo: repo}

		_, err := svc.Update(context.Background(), 5, entity.NewTodo("x", "y"))
		assert.ErrorIs(t, err, todoUC.ErrTodoNotFound)
		assert.Empty(t, repo.data)
	})

	t.Run("row vanished between read and write", func(t *testing.T) {
		repo := newStub(entity.NewTodo("a", "b"))
		repo.writeErr = entity.ErrNotFound
		svc := todoUC.Service{Repo: repo}

		_, err := svc.Update(context.Background(), 1, entity.NewTodo("x", "y"))
		assert.ErrorIs(t, err, todoUC.ErrTodoNotFound)
	})
}

func TestService_Delete(t *testing.T) {
	t.Run("returns the record as it was before deletion", func(t *testing.T) {
		repo := newStub(entity.NewTodo("gone", "soon"))
		svc := todoUC.Service{Repo: repo}

		got, err := svc.Delete(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, &entity.Todo{ID: 1, Title: "gone", Content: "soon"}, got)
		assert.Empty(t, repo.data)
	})

	t.Run("missing id", func(t *testing.T) {
		svc := todoUC.Service{Repo: newStub()}

		_, err := svc.Delete(context.Background(), 3)
		assert.ErrorIs(t, err, todoUC.ErrTodoNotFound)
	})

	t.Run("write error is wrapped", func(t *testing.T) {
		boom := errors.New("locked")
		repo := newStub(entity.NewTodo("a", "b"))
		repo.writeErr = boom
		svc := todoUC.Service{Repo: repo}

		_, err := svc.Delete(context.Background(), 1)
		assert.ErrorIs(t, err, boom)
	})
}

func TestService_DeleteAll(t *testing.T) {
	repo := newStub(entity.NewTodo("a", ""), entity.NewTodo("b", ""))
	svc := todoUC.Service{Repo: repo}

	require.NoError(t, svc.DeleteAll(context.Background()))
	assert.Empty(t, repo.data)

	// 空でも成功する
	require.NoError(t, svc.DeleteAll(context.Background()))
}

func TestService_RecordsOperationMetrics(t *testing.T) {
	svc := todoUC.Service{Repo: newStub(entity.NewTodo("a", "b"))}
	counter := func(op, result string) float64 {
		var m dto.Metric
		require.NoError(t, metrics.TodoOperationsTotal.WithLabelValues(op, result).Write(&m))
		return m.GetCounter().GetValue()
	}

	beforeOK := counter(todoUC.OpGet, metrics.ResultSuccess)
	beforeMissing := counter(todoUC.OpGet, metrics.ResultNotFound)

	_, _ = svc.Get(context.Background(), 1)
	_, _ = svc.Get(context.Background(), 2)

	assert.Equal(t, beforeOK+1, counter(todoUC.OpGet, metrics.ResultSuccess))
	assert.Equal(t, beforeMissing+1, counter(todoUC.OpGet, metrics.ResultNotFound))
}

func TestService_StartsSpanPerOperation(t *testing.T) {
	repo := newStub()
	repo.err = errors.New("boom")
	svc := todoUC.Service{Repo: repo}

	before := len(spans.Ended())
	_ = svc.DeleteAll(context.Background())

	ended := spans.Ended()
	require.Len(t, ended, before+1)
	span := ended[len(ended)-1]
	assert.Equal(t, "todo.delete_all", span.Name())
	assert.Len(t, span.Events(), 1, "error should be recorded on the span")
}
