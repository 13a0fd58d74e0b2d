package components

import (
	"go.uber.org/fx"

	"lastbite/internal/handler"
	"lastbite/internal/handler/api"
	"lastbite/internal/handler/middleware"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewOfferHandler,
		api.NewMerchantHandler,
		api.NewReservationHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
