package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires the handlers onto router. sessions attaches the
// caller's session and guards every page and the export; cors guards the
// /api group. Health stays sessionless so probes never mint sessions.
func RegisterRoutes(router *gin.Engine, h *Handlers, sessions, cors gin.HandlerFunc) {
	router.GET("/health", h.Health)

	web := router.Group("/", sessions)
	web.GET("/", h.Root)

	// Lists
	web.GET("/lists", h.ListLists)
	web.GET("/lists/new", h.NewList)
	web.POST("/lists", h.CreateList)
	web.GET("/lists/:id", h.ShowList)
	web.GET("/lists/:id/edit", h.EditList)
	web.POST("/lists/:id", h.UpdateList)
	web.POST("/lists/:id/destroy", h.DeleteList)

	// Todos
	web.POST("/lists/:id/todos", h.AddTodo)
	web.POST("/lists/:id/todos/:todo_id", h.UpdateTodo)
	web.POST("/lists/:id/todos/:todo_id/destroy", h.DeleteTodo)
	web.POST("/lists/:id/complete_all", h.CompleteAll)

	api := router.Group("/api", cors)
	api.GET("/export", sessions, h.Export)
	// Preflight is answered by the CORS middleware before this runs.
	api.OPTIONS("/export", func(c *gin.Context) { c.Status(http.StatusNoContent) })
}
