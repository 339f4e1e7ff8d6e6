package components

import (
	"telemed-booking/internal/pkg/clock"
	"telemed-booking/internal/pkg/config"
	"telemed-booking/internal/pkg/signature"
	"telemed-booking/internal/usecase"
	"telemed-booking/internal/usecase/commands"
	"telemed-booking/internal/usecase/queries"
	"telemed-booking/internal/usecase/shared"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	func(cfg config.Config) config.BookingConfig { return cfg.Booking },
	func(cfg config.Config) config.PaymentConfig { return cfg.Payment },
	func(cfg config.Config) config.ReaperConfig { return cfg.Reaper },
	fx.Annotate(
		func(cfg config.PaymentConfig) *signature.HMACVerifier {
			return signature.NewHMACVerifier(cfg.WebhookSecret)
		},
		fx.As(new(signature.Verifier)),
	),
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewBookingCommands,
		commands.NewPaymentCommands,
		commands.NewSlotCommands,
		commands.NewReaperCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewBookingQueries,
		func(repo queries.SlotViewRepo, cache shared.Cache, cfg config.BookingConfig) queries.SlotQueries {
			return queries.NewSlotQueries(repo, cache, cfg.SlotCacheTTL)
		},
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewIdentityResolver,
	),
)
