package providers

import (
	"github.com/samber/do/v2"

	"github.com/marczakjulia/BYT-PROJECT/internal/backup"
	"github.com/marczakjulia/BYT-PROJECT/internal/config"
	"github.com/marczakjulia/BYT-PROJECT/internal/logger"
	"github.com/marczakjulia/BYT-PROJECT/internal/store"
)

// ProvideCatalog provides the in-memory entity catalog, wired to the movie
// index.
func ProvideCatalog(i do.Injector) (*store.Catalog, error) {
	log := do.MustInvoke[*logger.Logger](i)
	indexHandle := do.MustInvoke[*MovieIndexHandle](i)

	cat := store.NewCatalog(log.Logger)
	cat.SetMovieIndexer(indexHandle.MovieIndex)

	return cat, nil
}

// ArchiveHandle wraps the snapshot archive with shutdown capability.
type ArchiveHandle struct {
	*store.Archive
}

// Shutdown implements do.Shutdownable.
func (h *ArchiveHandle) Shutdown() error {
	return h.Close()
}

// ProvideArchive provides the Badger snapshot archive.
func ProvideArchive(i do.Injector) (*ArchiveHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	archive, err := store.OpenArchive(cfg.Archive.Path, log.Logger)
	if err != nil {
		return nil, err
	}

	return &ArchiveHandle{Archive: archive}, nil
}

// ProvideBackupService provides the graph save/load and snapshot service.
func ProvideBackupService(i do.Injector) (*backup.Service, error) {
	cat := do.MustInvoke[*store.Catalog](i)
	archiveHandle := do.MustInvoke[*ArchiveHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return backup.NewService(cat, archiveHandle.Archive, log.Logger), nil
}
