package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"socio_verify_api/metrics"
	"socio_verify_api/tools"
	"socio_verify_api/types"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func okHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"requestId": c.GetString(types.REQUEST_ID_CONTEXT_KEY)})
}

func TestRequestIdMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(RequestIdMiddleware())
	r.GET("/", okHandler)

	t.Run("generates an id", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Len(t, w.Header().Get(types.REQUEST_ID_HEADER), 36)
	})

	t.Run("keeps the caller's id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(types.REQUEST_ID_HEADER, "trace-1")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, "trace-1", w.Header().Get(types.REQUEST_ID_HEADER))
		assert.Contains(t, w.Body.String(), "trace-1")
	})
}

func TestRequestLoggingMiddleware_ObservesLatencyByRoute(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())

	r := gin.New()
	r.Use(RequestLoggingMiddleware(tools.DiscardLogger{}, m))
	r.GET("/api/post/:id", okHandler)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/post/abc", nil))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	assert.Equal(t, 1, testutil.CollectAndCount(m.EndpointLatency.WithLabelValues("/api/post/:id", "GET", "200").(prometheus.Histogram)))
	assert.Equal(t, 2, testutil.CollectAndCount(m.EndpointLatency))
}

func TestPathValidationMiddlewares(t *testing.T) {
	r := gin.New()
	r.GET("/post/:id", VerificationIdParamMiddleware(tools.DiscardLogger{}), okHandler)
	r.GET("/media/:cid", CidParamMiddleware(tools.DiscardLogger{}), okHandler)

	tests := []struct {
		path   string
		status int
	}{
		{"/post/a1b2c3d4e5f60718293a4b5c6d7e8f9012345678", http.StatusOK},
		{"/post/A1B2C3D4E5F60718293A4B5C6D7E8F9012345678", http.StatusOK},
		{"/post/xyz", http.StatusBadRequest},
		{"/post/0xa1b2c3d4e5f60718293a4b5c6d7e8f9012345678", http.StatusBadRequest},
		{"/media/QmYwAPJzv5CZsnA625s3Xf2nemtYgPpHdWEz79ojWnPbdG", http.StatusOK},
		{"/media/not-a-cid", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))
			assert.Equal(t, tt.status, w.Code)
		})
	}
}
