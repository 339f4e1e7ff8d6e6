package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"telemed-booking/internal/domain/user"
	"telemed-booking/internal/handler/api"
	"telemed-booking/internal/handler/middleware"
	"telemed-booking/internal/pkg/config"
	"telemed-booking/internal/usecase/shared"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

// Handlers groups everything the router mounts.
type Handlers struct {
	Booking *api.BookingHandler
	Payment *api.PaymentHandler
	Slot    *api.SlotHandler
	Health  *api.HealthHandler
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	logger *middleware.Logger,
	h Handlers,
	authMiddleware *middleware.AuthMiddleware,
	limiter *middleware.RateLimiter,
	cache shared.Cache,
) {
	setupMiddleware(engine, cfg, logger)
	setupRoutes(engine, cfg, h, authMiddleware, limiter, cache)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *middleware.Logger) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(logger.LoggingMiddleware())
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	cfg config.Config,
	h Handlers,
	authMiddleware *middleware.AuthMiddleware,
	limiter *middleware.RateLimiter,
	cache shared.Cache,
) {
	engine.GET("/health", h.Health.Check)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Replay sits after RequireAuth on every authenticated unsafe route; entries are scoped to the caller.
	replay := middleware.Idempotency(cache, cfg.Booking.IdempotencyTTL)

	slots := engine.Group("/slots")
	{
		addRoutes(slots, []route{
			{Method: http.MethodGet, Path: "", Handler: h.Slot.List},
			{
				Method:  http.MethodPost,
				Path:    "",
				Handler: h.Slot.Create,
				Mw:      []gin.HandlerFunc{authMiddleware.RequireAuth(), authMiddleware.RequireRole(user.RoleDoctor, user.RoleAdmin), replay},
			},
		})
	}

	bookings := engine.Group("/bookings")
	bookings.Use(authMiddleware.RequireAuth())
	{
		addRoutes(bookings, []route{
			{
				Method:  http.MethodPost,
				Path:    "",
				Handler: h.Booking.BookSlot,
				Mw:      []gin.HandlerFunc{authMiddleware.RequireRole(user.RolePatient), replay},
			},
			{Method: http.MethodGet, Path: "/:id", Handler: h.Booking.Get},
			{Method: http.MethodGet, Path: "/:id/history", Handler: h.Booking.History},
		})
	}

	payments := engine.Group("/payments")
	{
		addRoutes(payments, []route{
			{
				Method:  http.MethodPost,
				Path:    "/initiate",
				Handler: h.Payment.Initiate,
				Mw:      []gin.HandlerFunc{authMiddleware.RequireAuth(), authMiddleware.RequireRole(user.RolePatient, user.RoleAdmin), replay},
			},
			// Provider callbacks authenticate by signature, not bearer token.
			{Method: http.MethodPost, Path: "/webhook", Handler: h.Payment.Webhook, Mw: []gin.HandlerFunc{limiter.Middleware()}},
		})
	}
}

// addRoutes registers per-route middleware on gin's own chain so that c.Next works inside it.
func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		handlers := make([]gin.HandlerFunc, 0, len(r.Mw)+1)
		handlers = append(handlers, r.Mw...)
		handlers = append(handlers, r.Handler)
		g.Handle(r.Method, r.Path, handlers...)
	}
}
