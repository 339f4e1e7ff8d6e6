//go:build unit

package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"telemed-booking/internal/handler/middleware"
	"telemed-booking/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRateLimiter_Middleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func() *gin.Engine {
		limiter := middleware.NewRateLimiter(config.RateLimitConfig{WebhookPerSecond: 0.001, WebhookBurst: 2})
		r := gin.New()
		r.POST("/payments/webhook", limiter.Middleware(), func(c *gin.Context) {
			c.Status(http.StatusOK)
		})
		return r
	}
	send := func(r *gin.Engine, ip string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/payments/webhook", nil)
		req.RemoteAddr = ip + ":40000"
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		return rec
	}

	t.Run("burst is served then 429 with Retry-After", func(t *testing.T) {
		r := newRouter()

		assert.Equal(t, http.StatusOK, send(r, "10.0.0.1").Code)
		assert.Equal(t, http.StatusOK, send(r, "10.0.0.1").Code)

		rec := send(r, "10.0.0.1")
		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		assert.Equal(t, "1", rec.Header().Get("Retry-After"))
		assert.Contains(t, rec.Body.String(), "Rate limit exceeded")
	})

	t.Run("buckets are per client IP", func(t *testing.T) {
		r := newRouter()

		send(r, "10.0.0.1")
		send(r, "10.0.0.1")
		assert.Equal(t, http.StatusTooManyRequests, send(r, "10.0.0.1").Code)
		assert.Equal(t, http.StatusOK, send(r, "10.0.0.2").Code)
	})
}
