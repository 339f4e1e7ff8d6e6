//go:build unit

package api_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"telemed-booking/internal/handler/api"
	"telemed-booking/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHealthHandler_Check(t *testing.T) {
	gin.SetMode(gin.TestMode)

	up := pingerFunc(func(context.Context) error { return nil })
	down := pingerFunc(func(context.Context) error { return errors.New("connection refused") })

	testCases := []struct {
		name         string
		db, cache    api.Pinger
		expectStatus int
		expectBody   string
	}{
		{
			name: "all dependencies up", db: up, cache: up,
			expectStatus: http.StatusOK,
			expectBody:   `{"status":"ok","database":"ok","cache":"ok"}`,
		},
		{
			name: "cache down degrades", db: up, cache: down,
			expectStatus: http.StatusOK,
			expectBody:   `{"status":"degraded","database":"ok","cache":"down"}`,
		},
		{
			name: "database down is unavailable", db: down, cache: up,
			expectStatus: http.StatusServiceUnavailable,
			expectBody:   `{"status":"unavailable","database":"down","cache":"ok"}`,
		},
		{
			name: "both down", db: down, cache: down,
			expectStatus: http.StatusServiceUnavailable,
			expectBody:   `{"status":"unavailable","database":"down","cache":"down"}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			router := gin.New()
			router.GET("/health", api.NewHealthHandler(tc.db, tc.cache).Check)

			rec := httptest.PerformRequest(t, router, http.MethodGet, "/health", nil, "")

			assert.Equal(t, tc.expectStatus, rec.Code)
			assert.JSONEq(t, tc.expectBody, rec.Body.String())
		})
	}
}
