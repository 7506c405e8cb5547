package logger

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/aliskhannn/studyquiz/internal/config"
)

// New builds the application logger: JSON production output in production,
// colored development output everywhere else.
func New(cfg *config.Config) (*zap.Logger, error) {
	var (
		log *zap.Logger
		err error
	)

	switch cfg.Env {
	case "production":
		log, err = zap.NewProduction()
	default:
		log, err = zap.NewDevelopment()
	}
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	return log.Named("studyquiz").With(zap.String("env", cfg.Env)), nil
}
