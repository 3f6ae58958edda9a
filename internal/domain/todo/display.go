package todo

import "fmt"

// Item is either a *List or a *Todo.
type Item interface {
	item()
}

func (*List) item() {}
func (*Todo) item() {}

// IsListComplete reports whether the list has todos and all of them are
// completed. An empty list is never complete.
func IsListComplete(l *List) bool {
	if l == nil || len(l.todos) == 0 {
		return false
	}
	for _, t := range l.todos {
		if !t.Completed {
			return false
		}
	}
	return true
}

// IsTodoComplete reports the todo's completion flag.
func IsTodoComplete(t *Todo) bool {
	return t != nil && t.Completed
}

// IsComplete applies the completion predicate matching the item's kind.
func IsComplete(it Item) bool {
	switch v := it.(type) {
	case *List:
		return IsListComplete(v)
	case *Todo:
		return IsTodoComplete(v)
	default:
		return false
	}
}

// Ranked pairs an item with its position in the input of CompletionSort.
type Ranked[T Item] struct {
	Item  T
	Index int
}

// CompletionSort orders items incomplete-first. It is a stable partition:
// each group keeps its input order, and every entry remembers
// its index in the input.
func CompletionSort[T Item](items []T) []Ranked[T] {
	out := make([]Ranked[T], 0, len(items))
	if len(items) == 0 {
		return out
	}

	complete := make([]bool, len(items))
	done := 0
	for i, it := range items {
		if IsComplete(it) {
			complete[i] = true
			done++
		}
	}

	if done == 0 || done == len(items) {
		for i, it := range items {
			out = append(out, Ranked[T]{Item: it, Index: i})
		}
		return out
	}

	for i, it := range items {
		if !complete[i] {
			out = append(out, Ranked[T]{Item: it, Index: i})
		}
	}
	for i, it := range items {
		if complete[i] {
			out = append(out, Ranked[T]{Item: it, Index: i})
		}
	}
	return out
}

// RemainingCount returns the number of incomplete todos and the total.
func RemainingCount(l *List) (remaining, total int) {
	if l == nil {
		return 0, 0
	}
	for _, t := range l.todos {
		if !t.Completed {
			remaining++
		}
	}
	return remaining, len(l.todos)
}

// Remaining formats RemainingCount as "remaining/total".
func Remaining(l *List) string {
	remaining, total := RemainingCount(l)
	return fmt.Sprintf("%d/%d", remaining, total)
}

// ListClass returns the CSS class for a list row.
func ListClass(l *List) string {
	if IsListComplete(l) {
		return "complete"
	}
	return ""
}

// TodoClass returns the CSS class for a todo row.
func TodoClass(t *Todo) string {
	if IsTodoComplete(t) {
		return "complete"
	}
	return ""
}
