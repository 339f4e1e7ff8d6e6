package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"telemed-booking/internal/handler/httperr"
	"telemed-booking/internal/pkg/errs"
	"telemed-booking/internal/usecase/shared"

	"github.com/gin-gonic/gin"
)

const (
	IdempotencyKeyHeader = "Idempotency-Key"
	IdempotencyHitHeader = "X-Idempotency-Hit"
)

var errIdempotencyKeyReused = httperr.Sentinel("idempotency key reused with a different request")

type replayEntry struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
	UserID      string `json:"user_id,omitempty"`
	RequestHash string `json:"request_hash"`
}

// bodyCapture tees everything the handler writes.
type bodyCapture struct {
	gin.ResponseWriter
	buf bytes.Buffer
}

func (w *bodyCapture) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *bodyCapture) WriteString(s string) (int, error) {
	w.buf.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// Idempotency replays a previously finished response for the same path and Idempotency-Key
// from the cache. It is a fast path only; the booking ledger in Postgres stays authoritative,
// so every cache failure falls through to the handler.
func Idempotency(cache shared.Cache, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodGet || c.Request.Method == http.MethodHead || c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}
		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		cacheKey := "idempotency:" + c.Request.URL.Path + ":" + key

		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, errs.Wrap(err, "read body"), "Invalid request", nil)
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body))
		sum := sha256.Sum256(body)
		requestHash := hex.EncodeToString(sum[:])

		var userID string
		if id, ok := GetUserID(c); ok {
			userID = id.String()
		}

		// An entry owned by another caller is left alone and never overwritten.
		held := false
		if raw, err := cache.Get(ctx, cacheKey); err == nil {
			var entry replayEntry
			if jsonErr := json.Unmarshal(raw, &entry); jsonErr == nil {
				held = entry.UserID != userID
			}
			if !held && entry.Status != 0 {
				if entry.RequestHash != requestHash {
					httperr.AbortWithError(c, http.StatusUnprocessableEntity, errIdempotencyKeyReused,
						"Idempotency key was already used with a different request", nil)
					return
				}
				c.Header(IdempotencyHitHeader, "true")
				c.Data(entry.Status, entry.ContentType, entry.Body)
				c.Abort()
				return
			}
		} else if !errs.Is(err, shared.ErrCacheMiss) {
			slog.WarnContext(ctx, "idempotency cache read failed", slog.String("key", cacheKey), slog.Any("error", err))
		}

		capture := &bodyCapture{ResponseWriter: c.Writer}
		c.Writer = capture

		c.Next()

		status := capture.Status()
		if held || !cacheableStatus(status) {
			return
		}
		raw, err := json.Marshal(replayEntry{
			Status:      status,
			ContentType: capture.Header().Get("Content-Type"),
			Body:        capture.buf.Bytes(),
			UserID:      userID,
			RequestHash: requestHash,
		})
		if err != nil {
			return
		}
		if err := cache.Set(ctx, cacheKey, raw, ttl); err != nil {
			slog.WarnContext(ctx, "idempotency cache write failed", slog.String("key", cacheKey), slog.Any("error", err))
		}
	}
}

// Contention answers stay retryable under the same key.
func cacheableStatus(status int) bool {
	if status >= http.StatusInternalServerError {
		return false
	}
	return status != http.StatusConflict && status != http.StatusTooManyRequests
}
