package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/todolists/internal/api/middleware"
	"github.com/GriffinCanCode/todolists/internal/domain/session"
	"github.com/GriffinCanCode/todolists/internal/domain/todo"
	"github.com/GriffinCanCode/todolists/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/todolists/internal/shared/id"
)

// AddTodo appends a todo named by the todo field
func (h *Handlers) AddTodo(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	l, ok := h.lookupList(c, sess, c.Param("id"))
	if !ok {
		return
	}
	name := c.PostForm("todo")

	t, err := l.AddTodo(name)
	if err != nil {
		if h.rejected(c, sess, err) {
			h.render(c, sess, http.StatusUnprocessableEntity, "list.tmpl", newListPage(l, name))
			return
		}
		h.fail(c, sess, err)
		return
	}

	h.metrics.RecordTodoAdded()
	h.logger.Debug("Todo added",
		zap.String("list_id", l.ID.String()),
		zap.String("todo_id", t.ID.String()),
		tracing.Field(c.Request.Context()),
	)
	sess.SetSuccess(msgTodoAdded)
	c.Redirect(http.StatusSeeOther, listPath(l.ID))
}

// DeleteTodo removes a todo from its list
func (h *Handlers) DeleteTodo(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	l, t, ok := h.lookupTodo(c, sess)
	if !ok {
		return
	}

	if err := l.DeleteTodo(t.ID); err != nil {
		h.fail(c, sess, err)
		return
	}

	h.metrics.RecordTodoDeleted()
	h.logger.Debug("Todo deleted",
		zap.String("list_id", l.ID.String()),
		zap.String("todo_id", t.ID.String()),
		tracing.Field(c.Request.Context()),
	)
	sess.SetSuccess(msgTodoDeleted)
	c.Redirect(http.StatusSeeOther, listPath(l.ID))
}

// UpdateTodo sets a todo's completion flag from the completed field. Any
// value other than "true" marks it incomplete.
func (h *Handlers) UpdateTodo(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	l, t, ok := h.lookupTodo(c, sess)
	if !ok {
		return
	}
	completed := c.PostForm("completed") == "true"

	if _, err := l.ToggleTodo(t.ID, completed); err != nil {
		h.fail(c, sess, err)
		return
	}

	h.metrics.RecordTodoToggled(completed)
	h.logger.Debug("Todo updated",
		zap.String("list_id", l.ID.String()),
		zap.String("todo_id", t.ID.String()),
		zap.Bool("completed", completed),
		tracing.Field(c.Request.Context()),
	)
	sess.SetSuccess(msgTodoUpdated)
	c.Redirect(http.StatusSeeOther, listPath(l.ID))
}

// CompleteAll marks every todo of a list completed
func (h *Handlers) CompleteAll(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	l, ok := h.lookupList(c, sess, c.Param("id"))
	if !ok {
		return
	}

	l.CompleteAll()

	h.metrics.RecordCompleteAll()
	h.logger.Debug("All todos completed",
		zap.String("list_id", l.ID.String()),
		zap.Int("todos", l.Len()),
		tracing.Field(c.Request.Context()),
	)
	sess.SetSuccess(msgAllCompleted)
	c.Redirect(http.StatusSeeOther, listPath(l.ID))
}

func (h *Handlers) lookupTodo(c *gin.Context, sess *session.Session) (*todo.List, *todo.Todo, bool) {
	l, ok := h.lookupList(c, sess, c.Param("id"))
	if !ok {
		return nil, nil, false
	}

	raw := c.Param("todo_id")
	todoID, err := id.ParseTodoID(raw)
	if err == nil {
		var t *todo.Todo
		if t, err = l.Todo(todoID); err == nil {
			return l, t, true
		}
	}

	h.logger.Debug("Todo not found",
		zap.String("list_id", l.ID.String()),
		zap.String("todo_id", raw),
		zap.Error(err),
	)
	h.notFound(c, sess, msgTodoNotFound)
	return nil, nil, false
}
