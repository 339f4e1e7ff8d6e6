package components

import (
	"telemed-booking/internal/handler"
	"telemed-booking/internal/handler/api"
	"telemed-booking/internal/handler/middleware"
	"telemed-booking/internal/infra/cache"
	"telemed-booking/internal/pkg/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewBookingHandler,
		api.NewPaymentHandler,
		api.NewSlotHandler,
		func(pool *pgxpool.Pool, c *cache.RedisCache) *api.HealthHandler {
			return api.NewHealthHandler(pool, c)
		},
		func(b *api.BookingHandler, p *api.PaymentHandler, s *api.SlotHandler, h *api.HealthHandler) handler.Handlers {
			return handler.Handlers{Booking: b, Payment: p, Slot: s, Health: h}
		},
		middleware.NewAuthMiddleware,
		func(cfg config.Config) *middleware.RateLimiter {
			return middleware.NewRateLimiter(cfg.RateLimit)
		},
	),
	fx.Invoke(handler.NewRouter),
)
