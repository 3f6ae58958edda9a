package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/todolists/internal/api/middleware"
	"github.com/GriffinCanCode/todolists/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/todolists/internal/shared/export"
)

// Export downloads the session's lists as JSON, YAML or TOML
func (h *Handlers) Export(c *gin.Context) {
	format, err := export.ParseFormat(c.Query("format"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sess := middleware.CurrentSession(c)
	data, err := export.Encode(format, export.FromLists(sess.Lists(), h.now()))
	if err != nil {
		if errors.Is(err, export.ErrUnsupportedFormat) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("Export failed",
			zap.String("format", string(format)),
			zap.Error(err),
			tracing.Field(c.Request.Context()),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed"})
		return
	}

	h.metrics.RecordExport(string(format))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename(format)))
	c.Data(http.StatusOK, export.ContentType(format), data)
}
