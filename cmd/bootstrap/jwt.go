package bootstrap

import (
	"time"

	"telemed-booking/internal/pkg/config"
	"telemed-booking/internal/pkg/errs"
	"telemed-booking/internal/pkg/jwt"

	"go.uber.org/fx"
)

var JWTModule = fx.Module("jwt",
	fx.Provide(
		NewJWTService,
	),
)

func NewJWTService(cfg config.Config) (*jwt.Service, error) {
	duration, err := time.ParseDuration(cfg.JWT.Duration)
	if err != nil {
		return nil, errs.Wrapf(err, "invalid JWT_DURATION %q", cfg.JWT.Duration)
	}
	return jwt.NewService(cfg.JWT.Secret, duration), nil
}
