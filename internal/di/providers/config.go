// Package providers contains dependency injection providers for cinemactl.
package providers

import (
	"github.com/samber/do/v2"

	"github.com/marczakjulia/BYT-PROJECT/internal/config"
	"github.com/marczakjulia/BYT-PROJECT/internal/logger"
)

// ProvideLogger provides the structured logger.
func ProvideLogger(i do.Injector) (*logger.Logger, error) {
	cfg := do.MustInvoke[*config.Config](i)

	log := logger.New(logger.Config{
		Level:       logger.ParseLevel(cfg.Logger.Level),
		AddSource:   cfg.App.Environment == "development" && cfg.Logger.Level == "debug",
		Environment: cfg.App.Environment,
	})

	log.Debug("Starting cinemactl",
		"environment", cfg.App.Environment,
		"log_level", cfg.Logger.Level,
		"data_dir", cfg.Data.Dir,
		"graph_file", cfg.Data.GraphFile,
	)

	return log, nil
}
