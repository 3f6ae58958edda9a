package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/todolists/internal/api/middleware"
	"github.com/GriffinCanCode/todolists/internal/domain/session"
	"github.com/GriffinCanCode/todolists/internal/domain/todo"
	"github.com/GriffinCanCode/todolists/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/todolists/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/todolists/internal/shared/id"
)

// Flash texts shown after a successful mutation
const (
	msgListCreated  = "The list has been created."
	msgListUpdated  = "The list has been updated."
	msgListDeleted  = "The list has been deleted."
	msgTodoAdded    = "Item successfully added to list."
	msgTodoDeleted  = "Todo item deleted."
	msgTodoUpdated  = "The todo has been updated."
	msgAllCompleted = "All todo items have been updated."

	msgListNotFound = "The specified list was not found."
	msgTodoNotFound = "The specified todo was not found."
)

// Handlers contains all HTTP handlers
type Handlers struct {
	store   *session.Store
	metrics *monitoring.Metrics
	logger  *zap.Logger
	now     func() time.Time
}

// NewHandlers creates a new handler set
func NewHandlers(store *session.Store, metrics *monitoring.Metrics, logger *zap.Logger) *Handlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handlers{
		store:   store,
		metrics: metrics,
		logger:  logger,
		now:     time.Now,
	}
}

// Root redirects to the list overview
func (h *Handlers) Root(c *gin.Context) {
	c.Redirect(http.StatusSeeOther, "/lists")
}

// Health reports liveness and the number of live sessions
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"sessions": h.store.Len(),
		"requests": h.metrics.GetSnapshot(),
	})
}

// ListLists renders every list, incomplete ones first
func (h *Handlers) ListLists(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	h.render(c, sess, http.StatusOK, "lists.tmpl", &listsPage{
		page:  page{Title: "Todo Lists"},
		Lists: listRows(sess.Lists()),
	})
}

// NewList renders the new list form
func (h *Handlers) NewList(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	h.render(c, sess, http.StatusOK, "new_list.tmpl", &listFormPage{
		page: page{Title: "New List"},
	})
}

// CreateList adds a list named by the list_name field
func (h *Handlers) CreateList(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	name := c.PostForm("list_name")

	l, err := sess.Lists().Create(name)
	if err != nil {
		if h.rejected(c, sess, err) {
			h.render(c, sess, http.StatusUnprocessableEntity, "new_list.tmpl", &listFormPage{
				page:     page{Title: "New List"},
				ListName: name,
			})
			return
		}
		h.fail(c, sess, err)
		return
	}

	h.metrics.RecordListCreated()
	h.logger.Debug("List created",
		zap.String("list_id", l.ID.String()),
		tracing.Field(c.Request.Context()),
	)
	sess.SetSuccess(msgListCreated)
	c.Redirect(http.StatusSeeOther, "/lists")
}

// ShowList renders one list with its todos, incomplete ones first
func (h *Handlers) ShowList(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	l, ok := h.lookupList(c, sess, c.Param("id"))
	if !ok {
		return
	}

	h.render(c, sess, http.StatusOK, "list.tmpl", newListPage(l, ""))
}

// EditList renders the rename form
func (h *Handlers) EditList(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	l, ok := h.lookupList(c, sess, c.Param("id"))
	if !ok {
		return
	}

	h.render(c, sess, http.StatusOK, "edit_list.tmpl", &listFormPage{
		page:     page{Title: "Edit " + l.Name},
		ListID:   l.ID.String(),
		ListName: l.Name,
	})
}

// UpdateList renames a list to the list_name field
func (h *Handlers) UpdateList(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	l, ok := h.lookupList(c, sess, c.Param("id"))
	if !ok {
		return
	}
	name := c.PostForm("list_name")

	if _, err := sess.Lists().Rename(l.ID, name); err != nil {
		if h.rejected(c, sess, err) {
			h.render(c, sess, http.StatusUnprocessableEntity, "edit_list.tmpl", &listFormPage{
				page:     page{Title: "Edit " + l.Name},
				ListID:   l.ID.String(),
				ListName: name,
			})
			return
		}
		h.fail(c, sess, err)
		return
	}

	h.metrics.RecordListRenamed()
	h.logger.Debug("List renamed",
		zap.String("list_id", l.ID.String()),
		tracing.Field(c.Request.Context()),
	)
	sess.SetSuccess(msgListUpdated)
	c.Redirect(http.StatusSeeOther, listPath(l.ID))
}

// DeleteList removes a list
func (h *Handlers) DeleteList(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	l, ok := h.lookupList(c, sess, c.Param("id"))
	if !ok {
		return
	}

	if err := sess.Lists().Delete(l.ID); err != nil {
		h.fail(c, sess, err)
		return
	}

	h.metrics.RecordListDeleted()
	h.logger.Debug("List deleted",
		zap.String("list_id", l.ID.String()),
		tracing.Field(c.Request.Context()),
	)
	sess.SetSuccess(msgListDeleted)
	c.Redirect(http.StatusSeeOther, "/lists")
}

// lookupList resolves raw to a list of the session, rendering 404 when it
// does not name one.
func (h *Handlers) lookupList(c *gin.Context, sess *session.Session, raw string) (*todo.List, bool) {
	listID, err := id.ParseListID(raw)
	if err == nil {
		var l *todo.List
		if l, err = sess.Lists().Get(listID); err == nil {
			return l, true
		}
	}

	h.logger.Debug("List not found",
		zap.String("list_id", raw),
		zap.Error(err),
	)
	h.notFound(c, sess, msgListNotFound)
	return nil, false
}

// rejected records a validation failure on the session flash and reports
// whether err was one. Callers re-render the originating form on true.
func (h *Handlers) rejected(c *gin.Context, sess *session.Session, err error) bool {
	var verr *todo.ValidationError
	if !errors.As(err, &verr) {
		return false
	}

	h.metrics.RecordValidationFailure(verr.Field, verr.Reason())
	h.logger.Debug("Name rejected",
		zap.String("field", verr.Field),
		zap.String("reason", verr.Reason()),
		tracing.Field(c.Request.Context()),
	)
	sess.SetError(verr.Message)
	return true
}

func (h *Handlers) notFound(c *gin.Context, sess *session.Session, msg string) {
	h.render(c, sess, http.StatusNotFound, "not_found.tmpl", &notFoundPage{
		page:    page{Title: "Not Found"},
		Message: msg,
	})
}

// fail handles an error that is neither a rejection nor a missing entity
func (h *Handlers) fail(c *gin.Context, sess *session.Session, err error) {
	switch {
	case errors.Is(err, todo.ErrTodoNotFound):
		h.notFound(c, sess, msgTodoNotFound)
		return
	case errors.Is(err, todo.ErrListNotFound):
		h.notFound(c, sess, msgListNotFound)
		return
	}

	h.logger.Error("Request failed",
		zap.String("path", c.Request.URL.Path),
		zap.Error(err),
		tracing.Field(c.Request.Context()),
	)
	_ = c.Error(err)
	c.String(http.StatusInternalServerError, "Internal Server Error")
}
