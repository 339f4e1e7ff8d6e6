//go:build unit

package usecase_test

import (
	"testing"
	"time"

	"telemed-booking/internal/domain/user"
	"telemed-booking/internal/pkg/jwt"
	"telemed-booking/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentityResolver_Resolve(t *testing.T) {
	svc := jwt.NewService("resolver-secret", time.Hour)
	resolver := usecase.NewIdentityResolver(svc)

	t.Run("valid token yields identity", func(t *testing.T) {
		userID := uuid.New()
		token, err := svc.GenerateToken(userID, user.RoleDoctor)
		require.NoError(t, err)

		identity, err := resolver.Resolve(token)
		require.NoError(t, err)
		assert.Equal(t, userID, identity.UserID)
		assert.Equal(t, user.RoleDoctor, identity.Role)
	})

	t.Run("token signed with another secret is rejected", func(t *testing.T) {
		other := jwt.NewService("other-secret", time.Hour)
		token, err := other.GenerateToken(uuid.New(), user.RolePatient)
		require.NoError(t, err)

		_, err = resolver.Resolve(token)
		assert.ErrorIs(t, err, jwt.ErrInvalidToken)
	})

	t.Run("garbage is rejected", func(t *testing.T) {
		_, err := resolver.Resolve("not-a-token")
		assert.Error(t, err)
	})
}
