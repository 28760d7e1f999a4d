package signals

import (
	"github.com/plotwise/plotwise/pkg/config"
	"github.com/plotwise/plotwise/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(&config.Config{
		Env:       "development",
		LogLevel:  "error",
		LogFormat: "json",
	})
}
