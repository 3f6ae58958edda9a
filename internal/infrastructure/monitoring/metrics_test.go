package monitoring

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRouter(metrics *Metrics) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Middleware(metrics))
	router.GET("/lists/:id", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	router.GET("/metrics", gin.WrapH(metrics.Handler()))
	return router
}

func TestMiddlewareUsesRouteTemplate(t *testing.T) {
	metrics := NewMetrics(prometheus.NewRegistry())
	router := setupTestRouter(metrics)

	for _, path := range []string{"/lists/list_a", "/lists/list_b", "/missing"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		router.ServeHTTP(httptest.NewRecorder(), req)
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.RequestsTotal.WithLabelValues("GET", "/lists/:id", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.RequestsTotal.WithLabelValues("GET", unmatchedRoute, "404")))

	snap := metrics.GetSnapshot()
	assert.Equal(t, int64(3), snap.TotalRequests)
	assert.Equal(t, int64(1), snap.TotalErrors)
}

func TestDomainCounters(t *testing.T) {
	metrics := NewMetrics(prometheus.NewRegistry())

	metrics.RecordListCreated()
	metrics.RecordListCreated()
	metrics.RecordListRenamed()
	metrics.RecordListDeleted()
	metrics.RecordTodoAdded()
	metrics.RecordTodoDeleted()
	metrics.RecordTodoToggled(true)
	metrics.RecordTodoToggled(false)
	metrics.RecordTodoToggled(true)
	metrics.RecordCompleteAll()
	metrics.RecordValidationFailure("list_name", "duplicate_name")
	metrics.RecordExport("yaml")
	metrics.SetSessionsActive(4)
	metrics.IncSessionsCreated()

	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.ListsCreated))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.ListsRenamed))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.ListsDeleted))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.TodosAdded))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.TodosDeleted))
	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.TodosToggled.WithLabelValues("true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.TodosToggled.WithLabelValues("false")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.TodosCompletedAll))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.ValidationFailures.WithLabelValues("list_name", "duplicate_name")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Exports.WithLabelValues("yaml")))
	assert.Equal(t, 4.0, testutil.ToFloat64(metrics.SessionsActive))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.SessionsCreated))
}

func TestHandlerExposesMetrics(t *testing.T) {
	metrics := NewMetrics(prometheus.NewRegistry())
	router := setupTestRouter(metrics)
	metrics.RecordListCreated()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "todolists_lists_created_total 1")
}

func TestSeparateRegistries(t *testing.T) {
	// Building twice must not panic with duplicate registration
	assert.NotPanics(t, func() {
		NewMetrics(prometheus.NewRegistry())
		NewMetrics(prometheus.NewRegistry())
	})
}
