package monitoring

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsMiddleware_CountsByRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(MetricsMiddleware())
	router.GET("/api/courses/:courseId/progress", func(c *gin.Context) { c.Status(http.StatusOK) })

	counter := RequestCounter.WithLabelValues(http.MethodGet, "/api/courses/:courseId/progress", "200")
	before := testutil.ToFloat64(counter)

	for _, id := range []string{"1", "2"} {
		req := httptest.NewRequest(http.MethodGet, "/api/courses/"+id+"/progress", nil)
		router.ServeHTTP(httptest.NewRecorder(), req)
	}

	// 路由模板聚合，不按具体 ID 拆分
	assert.Equal(t, before+2, testutil.ToFloat64(counter))
}
