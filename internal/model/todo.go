package model

// Todo is the persisted entity. ID is absent until storage assigns it on first save.
// Two todos are equal only if all four fields are equal.
type Todo struct {
	ID        Optional[int64] `json:"id"`
	Title     string          `json:"title"`
	Completed bool            `json:"completed"`
	Order     Optional[int]   `json:"order"`
}

// TodoPatch is a sparse update. Absent fields mean "no change", except Order.
type TodoPatch struct {
	Title     Optional[string] `json:"title"`
	Completed Optional[bool]   `json:"completed"`
	Order     Optional[int]    `json:"order"`
}

// Merge returns the state produced by applying patch to existing.
//
// Title and Completed fall back to the existing values. Order does not:
// a patch without an order clears it.
func Merge(existing Todo, patch TodoPatch) Todo {
	return Todo{
		ID:        existing.ID,
		Title:     patch.Title.OrElse(existing.Title),
		Completed: patch.Completed.OrElse(existing.Completed),
		Order:     patch.Order,
	}
}

// TodoResponse is the read projection of a Todo, carrying its self link.
type TodoResponse struct {
	ID        int64         `json:"id"`
	Title     string        `json:"title"`
	Completed bool          `json:"completed"`
	Order     Optional[int] `json:"order"`
	URL       string        `json:"url"`
}

func NewTodoResponse(todo Todo, url string) TodoResponse {
	return TodoResponse{
		ID:        todo.ID.OrElse(0),
		Title:     todo.Title,
		Completed: todo.Completed,
		Order:     todo.Order,
		URL:       url,
	}
}
