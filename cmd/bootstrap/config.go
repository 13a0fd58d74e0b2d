package bootstrap

import (
	"go.uber.org/fx"

	"lastbite/internal/pkg/config"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
	),
)
