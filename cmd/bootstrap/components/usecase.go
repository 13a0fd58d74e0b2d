package components

import (
	"go.uber.org/fx"

	"lastbite/internal/infra/notify"
	"lastbite/internal/pkg/clock"
	"lastbite/internal/pkg/config"
	"lastbite/internal/pkg/qr"
	"lastbite/internal/usecase/commands"
	"lastbite/internal/usecase/queries"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	qr.NewEncoder,
	func(cfg config.Config) commands.ReservationNotifier {
		return notify.NewBotNotifier(cfg.Bot)
	},
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewOfferUseCase,
		commands.NewReservationUseCase,
		commands.NewMerchantUseCase,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewOfferQueries,
		queries.NewRestaurantQueries,
		queries.NewKPIQueries,
	),
)
