package logger

import (
	"go.uber.org/zap"
)

// New builds the process logger. Production config for anything that is not
// explicitly a dev environment.
func New(env string) (*zap.Logger, error) {
	if env == "dev" || env == "development" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
