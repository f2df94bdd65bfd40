package providers

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/marczakjulia/BYT-PROJECT/internal/config"
	"github.com/marczakjulia/BYT-PROJECT/internal/logger"
	"github.com/marczakjulia/BYT-PROJECT/internal/search"
	"github.com/marczakjulia/BYT-PROJECT/internal/store"
)

// MovieIndexHandle wraps the movie index with shutdown capability.
type MovieIndexHandle struct {
	*search.MovieIndex
}

// Shutdown implements do.Shutdownable.
func (h *MovieIndexHandle) Shutdown() error {
	return h.Close()
}

// ProvideMovieIndex provides the Bleve movie index.
func ProvideMovieIndex(i do.Injector) (*MovieIndexHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	index, err := search.NewMovieIndex(search.Options{
		Path:   cfg.Search.IndexPath,
		Logger: log.Logger,
	})
	if err != nil {
		return nil, err
	}

	docCount, _ := index.DocumentCount()
	log.Debug("Movie index initialized", "documents", docCount, "in_memory", cfg.Search.IndexPath == "")

	return &MovieIndexHandle{MovieIndex: index}, nil
}

// ReindexIfNeeded fills an empty movie index from the catalog. An in-memory
// index is always empty after startup, so a loaded graph is indexed here.
func ReindexIfNeeded(ctx context.Context, i do.Injector) error {
	indexHandle := do.MustInvoke[*MovieIndexHandle](i)
	cat := do.MustInvoke[*store.Catalog](i)
	log := do.MustInvoke[*logger.Logger](i)

	docCount, _ := indexHandle.DocumentCount()
	if docCount > 0 || cat.Movies.Len() == 0 {
		return nil
	}

	log.Debug("Movie index is empty but movies exist, reindexing", "movie_count", cat.Movies.Len())
	return cat.Reindex(ctx)
}
