package monitoring

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsMiddleware_LabelsByRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(MetricsMiddleware())
	r.GET("/api/modules/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, id := range []string{"module-1", "module-2"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/modules/"+id, nil))
	}
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	assert.Equal(t, 2.0, testutil.ToFloat64(RequestCounter.WithLabelValues("GET", "/api/modules/:id", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(RequestCounter.WithLabelValues("GET", "unmatched", "404")))
}
