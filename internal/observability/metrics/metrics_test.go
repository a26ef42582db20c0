package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestGinMiddlewareCountsRequests(t *testing.T) {
	gin.SetMode(gin.TestMode)

	m := NewHTTPMetrics(Config{ServiceName: "procura", Environment: "test"})

	router := gin.New()
	router.Use(m.GinMiddleware())
	router.GET("/api/ping", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/ping", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	got := testutil.ToFloat64(m.requests.WithLabelValues(http.MethodGet, "/api/ping", "200"))
	if got != 1 {
		t.Fatalf("expected 1 request counted, got %v", got)
	}
}
