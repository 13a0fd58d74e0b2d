package bootstrap

import (
	"go.uber.org/fx"

	"lastbite/cmd/bootstrap/components"
)

var Module = fx.Options(
	ConfigModule,
	DBModule,
	components.PersistenceModule,
	components.UseCaseModule,
	components.HandlerModule,
)
