// Package entity defines the domain records managed by the service.
package entity

// Todo is a single todo item.
// ID is zero until the record has been persisted; the store assigns it on
// insert and it never changes afterwards.
type Todo struct {
	ID      int64
	Title   string
	Content string
}

// NewTodo returns an unpersisted todo with the given title and content.
func NewTodo(title, content string) *Todo {
	return &Todo{Title: title, Content: content}
}

// Persisted reports whether the store has assigned an identity.
func (t *Todo) Persisted() bool {
	return t != nil && t.ID > 0
}

// Overwrite copies the mutable fields of src into t.
// The identity of t is left untouched.
func (t *Todo) Overwrite(src *Todo) {
	t.Title = src.Title
	t.Content = src.Content
}
