// Package di provides dependency injection configuration for cinemactl.
package di

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/samber/do/v2"

	"github.com/marczakjulia/BYT-PROJECT/internal/backup"
	"github.com/marczakjulia/BYT-PROJECT/internal/config"
	"github.com/marczakjulia/BYT-PROJECT/internal/di/providers"
	"github.com/marczakjulia/BYT-PROJECT/internal/logger"
	"github.com/marczakjulia/BYT-PROJECT/internal/pass"
	"github.com/marczakjulia/BYT-PROJECT/internal/store"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer(cfg *config.Config) *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.ProvideValue(injector, cfg)
	do.Provide(injector, providers.ProvideLogger)

	// Storage layer
	do.Provide(injector, providers.ProvideMovieIndex)
	do.Provide(injector, providers.ProvideCatalog)
	do.Provide(injector, providers.ProvideArchive)
	do.Provide(injector, providers.ProvideBackupService)

	// Ticket passes
	do.Provide(injector, providers.ProvidePassKey)
	do.Provide(injector, providers.ProvidePassEncoder)

	return injector
}

// Bootstrap initializes the storage layer and loads the saved graph, when
// there is one, into the catalog.
func Bootstrap(ctx context.Context, injector *do.RootScope) error {
	cfg := do.MustInvoke[*config.Config](injector)
	log := do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[*providers.MovieIndexHandle](injector)
	_ = do.MustInvoke[*store.Catalog](injector)
	_ = do.MustInvoke[*providers.ArchiveHandle](injector)
	backups := do.MustInvoke[*backup.Service](injector)

	if _, err := os.Stat(cfg.Data.GraphFile); errors.Is(err, fs.ErrNotExist) {
		log.Debug("No saved graph, starting empty", "path", cfg.Data.GraphFile)
	} else if _, err := backups.Load(ctx, cfg.Data.GraphFile); err != nil {
		return fmt.Errorf("load %s: %w", cfg.Data.GraphFile, err)
	}

	return providers.ReindexIfNeeded(ctx, injector)
}

// Passes returns the ticket pass encoder, creating the pass key on first
// use.
func Passes(injector *do.RootScope) (*pass.Encoder, error) {
	return do.Invoke[*pass.Encoder](injector)
}
