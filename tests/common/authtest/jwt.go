//go:build unit || e2e

package authtest

import (
	"testing"
	"time"

	"telemed-booking/internal/domain/user"
	"telemed-booking/internal/pkg/config"
	"telemed-booking/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type JWTHelper struct {
	cfg config.JWTConfig
}

func NewJWTHelper(cfg config.JWTConfig) *JWTHelper {
	return &JWTHelper{cfg: cfg}
}

func (h *JWTHelper) GenerateToken(t *testing.T, userID uuid.UUID, role user.Role) string {
	t.Helper()
	duration, err := time.ParseDuration(h.cfg.Duration)
	require.NoError(t, err)
	token, err := jwt.NewService(h.cfg.Secret, duration).GenerateToken(userID, role)
	require.NoError(t, err)
	return token
}

func (h *JWTHelper) CreateExpiredToken(t *testing.T, userID uuid.UUID, role user.Role) string {
	t.Helper()
	token, err := jwt.NewService(h.cfg.Secret, time.Millisecond).GenerateToken(userID, role)
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)
	return token
}

// Caller pairs a fresh user id with a signed token for that user.
type Caller struct {
	ID    uuid.UUID
	Role  user.Role
	Token string
}

func (h *JWTHelper) NewCaller(t *testing.T, role user.Role) Caller {
	t.Helper()
	id := uuid.New()
	return Caller{ID: id, Role: role, Token: h.GenerateToken(t, id, role)}
}
