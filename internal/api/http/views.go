package http

import (
	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/todolists/internal/domain/session"
	"github.com/GriffinCanCode/todolists/internal/domain/todo"
)

// page carries what the layout needs on every view
type page struct {
	Title string
	Flash session.Flash
}

// setFlash lets render fill the embedded page of any view
func (p *page) setFlash(f session.Flash) { p.Flash = f }

type flashed interface {
	setFlash(session.Flash)
}

type listRow struct {
	ID        string
	Name      string
	Class     string
	Remaining string
	Complete  bool
	Position  int // index in insertion order
}

type todoRow struct {
	ID        string
	Name      string
	Class     string
	Completed bool
	Position  int
}

type listsPage struct {
	page
	Lists []listRow
}

type listPage struct {
	page
	List     listRow
	Todos    []todoRow
	TodoName string // rejected input shown again
}

type listFormPage struct {
	page
	ListID   string // empty on the new list form
	ListName string
}

type notFoundPage struct {
	page
	Message string
}

func newListRow(l *todo.List, position int) listRow {
	return listRow{
		ID:        l.ID.String(),
		Name:      l.Name,
		Class:     todo.ListClass(l),
		Remaining: todo.Remaining(l),
		Complete:  todo.IsListComplete(l),
		Position:  position,
	}
}

func listRows(lists *todo.Lists) []listRow {
	ranked := todo.CompletionSort(lists.All())
	rows := make([]listRow, 0, len(ranked))
	for _, r := range ranked {
		rows = append(rows, newListRow(r.Item, r.Index))
	}
	return rows
}

func newListPage(l *todo.List, todoName string) *listPage {
	ranked := todo.CompletionSort(l.Todos())
	rows := make([]todoRow, 0, len(ranked))
	for _, r := range ranked {
		rows = append(rows, todoRow{
			ID:        r.Item.ID.String(),
			Name:      r.Item.Name,
			Class:     todo.TodoClass(r.Item),
			Completed: r.Item.Completed,
			Position:  r.Index,
		})
	}

	return &listPage{
		page:     page{Title: l.Name},
		List:     newListRow(l, -1),
		Todos:    rows,
		TodoName: todoName,
	}
}

func listPath(listID todo.ListID) string {
	return "/lists/" + listID.String()
}

// render pops the session flash into the view and executes the named
// template. The flash is therefore shown exactly once.
func (h *Handlers) render(c *gin.Context, sess *session.Session, status int, name string, data any) {
	if f, ok := data.(flashed); ok {
		f.setFlash(sess.PopFlash())
	}
	c.HTML(status, name, data)
}
