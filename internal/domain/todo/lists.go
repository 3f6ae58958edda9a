package todo

import (
	"fmt"
	"slices"

	"github.com/GriffinCanCode/todolists/internal/shared/id"
)

// ListID and TodoID are re-exported so callers of this package rarely need
// the id package directly.
type (
	ListID = id.ListID
	TodoID = id.TodoID
)

// Todo is a named item with a completion flag.
type Todo struct {
	ID        TodoID
	Name      string
	Completed bool
}

// List is a named, ordered collection of todos.
type List struct {
	ID    ListID
	Name  string
	todos []*Todo
}

// Lists is the ordered collection of lists owned by one session.
type Lists struct {
	items []*List
}

// NewLists returns an empty collection.
func NewLists() *Lists {
	return &Lists{}
}

// Len returns the number of lists.
func (ls *Lists) Len() int {
	return len(ls.items)
}

// All returns the lists in insertion order. The slice is a copy; the lists
// are shared.
func (ls *Lists) All() []*List {
	return slices.Clone(ls.items)
}

// At returns the list at position i.
func (ls *Lists) At(i int) (*List, bool) {
	if i < 0 || i >= len(ls.items) {
		return nil, false
	}
	return ls.items[i], true
}

// IndexOf returns the current position of the list with the given id, or -1.
func (ls *Lists) IndexOf(listID ListID) int {
	return slices.IndexFunc(ls.items, func(l *List) bool { return l.ID == listID })
}

// Get returns the list with the given id.
func (ls *Lists) Get(listID ListID) (*List, error) {
	i := ls.IndexOf(listID)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", ErrListNotFound, listID)
	}
	return ls.items[i], nil
}

// Create validates name and appends a new empty list.
func (ls *Lists) Create(name string) (*List, error) {
	name = NormalizeName(name)
	if err := ValidateListName(name, ls, ""); err != nil {
		return nil, err
	}

	l := &List{ID: id.NewListID(), Name: name}
	ls.items = append(ls.items, l)
	return l, nil
}

// Rename validates newName and renames the list in place.
func (ls *Lists) Rename(listID ListID, newName string) (*List, error) {
	l, err := ls.Get(listID)
	if err != nil {
		return nil, err
	}

	newName = NormalizeName(newName)
	if err := ValidateListName(newName, ls, listID); err != nil {
		return nil, err
	}

	l.Name = newName
	return l, nil
}

// Delete removes the list. Lists after it move up one position.
func (ls *Lists) Delete(listID ListID) error {
	i := ls.IndexOf(listID)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrListNotFound, listID)
	}
	ls.items = slices.Delete(ls.items, i, i+1)
	return nil
}

// Todos returns the list's todos in insertion order. The slice is a copy;
// the todos are shared.
func (l *List) Todos() []*Todo {
	return slices.Clone(l.todos)
}

// Len returns the number of todos in the list.
func (l *List) Len() int {
	return len(l.todos)
}

// TodoAt returns the todo at position i.
func (l *List) TodoAt(i int) (*Todo, bool) {
	if i < 0 || i >= len(l.todos) {
		return nil, false
	}
	return l.todos[i], true
}

func (l *List) indexOf(todoID TodoID) int {
	return slices.IndexFunc(l.todos, func(t *Todo) bool { return t.ID == todoID })
}

// Todo returns the todo with the given id.
func (l *List) Todo(todoID TodoID) (*Todo, error) {
	i := l.indexOf(todoID)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", ErrTodoNotFound, todoID)
	}
	return l.todos[i], nil
}

// AddTodo validates name and appends an incomplete todo.
func (l *List) AddTodo(name string) (*Todo, error) {
	name = NormalizeName(name)
	if err := ValidateTodoName(name); err != nil {
		return nil, err
	}

	t := &Todo{ID: id.NewTodoID(), Name: name}
	l.todos = append(l.todos, t)
	return t, nil
}

// DeleteTodo removes the todo. Todos after it move up one position.
func (l *List) DeleteTodo(todoID TodoID) error {
	i := l.indexOf(todoID)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrTodoNotFound, todoID)
	}
	l.todos = slices.Delete(l.todos, i, i+1)
	return nil
}

// ToggleTodo sets the todo's completion flag to completed.
func (l *List) ToggleTodo(todoID TodoID, completed bool) (*Todo, error) {
	t, err := l.Todo(todoID)
	if err != nil {
		return nil, err
	}
	t.Completed = completed
	return t, nil
}

// CompleteAll marks every todo in the list completed.
func (l *List) CompleteAll() {
	for _, t := range l.todos {
		t.Completed = true
	}
}
