package todo

import "todo-api/internal/domain/entity"

// DTO is the wire form of a todo. ID is null until the store assigns one.
type DTO struct {
	ID      *int64 `json:"id" example:"1"`
	Title   string `json:"title" example:"buy milk"`
	Content string `json:"content" example:"2 litres, low fat"`
}

func toDTO(t *entity.Todo) DTO {
	out := DTO{Title: t.Title, Content: t.Content}
	if t.Persisted() {
		id := t.ID
		out.ID = &id
	}
	return out
}

func toDTOs(list []*entity.Todo) []DTO {
	out := make([]DTO, 0, len(list))
	for _, t := range list {
		out = append(out, toDTO(t))
	}
	return out
}

// toEntity drops the client-supplied id; identity comes from the path or the store.
func (d DTO) toEntity() *entity.Todo {
	return entity.NewTodo(d.Title, d.Content)
}
