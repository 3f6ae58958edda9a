// Package todo holds the todo-list domain: lists, todos, name validation and
// the completion-aware ordering used for display.
//
// Components:
//   - Lists: the ordered collection of lists owned by one session
//   - List / Todo: entities addressed by stable prefixed ids
//   - Validators: name length and uniqueness rules
//   - Display helpers: completion predicates, remaining counters and
//     CompletionSort, a stable partition that puts incomplete items first
//
// Nothing in this package locks. Callers serialize access per session (see
// package session).
//
// Example Usage:
//
//	lists := todo.NewLists()
//	groceries, err := lists.Create("Groceries")
//	milk, err := groceries.AddTodo("milk")
//	_, err = groceries.ToggleTodo(milk.ID, true)
//	for _, r := range todo.CompletionSort(groceries.Todos()) {
//		fmt.Println(r.Index, r.Item.Name)
//	}
package todo
