package usecase

import (
	"telemed-booking/internal/domain/user"
	"telemed-booking/internal/pkg/jwt"
)

// IdentityResolver turns a bearer credential into the caller's identity.
type IdentityResolver interface {
	Resolve(token string) (user.Identity, error)
}

type jwtIdentityResolver struct {
	jwtService *jwt.Service
}

func NewIdentityResolver(jwtService *jwt.Service) IdentityResolver {
	return &jwtIdentityResolver{
		jwtService: jwtService,
	}
}

func (r *jwtIdentityResolver) Resolve(token string) (user.Identity, error) {
	claims, err := r.jwtService.ValidateToken(token)
	if err != nil {
		return user.Identity{}, err
	}

	role, err := user.NewRole(claims.Role)
	if err != nil {
		return user.Identity{}, jwt.ErrInvalidToken
	}

	return user.Identity{UserID: claims.UserID, Role: role}, nil
}
