package search

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/blevesearch/bleve/v2"

	"github.com/marczakjulia/BYT-PROJECT/internal/domain"
)

// MovieIndex wraps a Bleve index of movies. It satisfies store.MovieIndexer.
//
// All methods are safe for concurrent use. The mutex guards the index
// handle against Rebuild.
type MovieIndex struct {
	index  bleve.Index
	path   string // empty for an in-memory index
	logger *slog.Logger
	mu     sync.RWMutex
}

// Options configures the movie index.
type Options struct {
	Path   string       // Index directory; empty keeps the index in memory
	Logger *slog.Logger // Uses discard if nil
}

// mappingVersion is incremented whenever the index mapping changes.
// An on-disk index with another version is rebuilt on open.
const mappingVersion = "1"

// NewMovieIndex opens the index at opts.Path, creating it when missing.
// A corrupted index or one built with an older mapping is removed and
// recreated empty; callers repopulate it with Catalog.Reindex.
func NewMovieIndex(opts Options) (*MovieIndex, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	if opts.Path == "" {
		index, err := bleve.NewMemOnly(buildIndexMapping())
		if err != nil {
			return nil, fmt.Errorf("create index: %w", err)
		}
		return &MovieIndex{index: index, logger: logger}, nil
	}

	indexPath := filepath.Join(opts.Path, "movies.bleve")
	versionPath := filepath.Join(opts.Path, "movies.version")

	var index bleve.Index
	var err error
	needsRebuild := false

	indexExists := false
	if _, statErr := os.Stat(indexPath); statErr == nil {
		indexExists = true
	}

	if indexExists {
		existingVersion, readErr := os.ReadFile(versionPath)
		if readErr != nil || string(existingVersion) != mappingVersion {
			logger.Info("movie index mapping version changed, will rebuild",
				"old_version", string(existingVersion),
				"new_version", mappingVersion,
			)
			needsRebuild = true
		}
	}

	if !needsRebuild && indexExists {
		index, err = bleve.Open(indexPath)
		if err != nil {
			logger.Warn("failed to open existing index, will recreate",
				"path", indexPath,
				"error", err,
			)
			needsRebuild = true
		}
	}

	if needsRebuild {
		if removeErr := os.RemoveAll(indexPath); removeErr != nil {
			return nil, fmt.Errorf("remove old index: %w", removeErr)
		}
		index = nil
	}

	if index == nil {
		if err := os.MkdirAll(opts.Path, 0o755); err != nil {
			return nil, fmt.Errorf("create index dir: %w", err)
		}
		index, err = bleve.New(indexPath, buildIndexMapping())
		if err != nil {
			return nil, fmt.Errorf("create index: %w", err)
		}
		if writeErr := os.WriteFile(versionPath, []byte(mappingVersion), 0o644); writeErr != nil {
			logger.Warn("failed to write movie index version file", "error", writeErr)
		}
		logger.Info("created new movie index", "path", indexPath, "mapping_version", mappingVersion)
	} else {
		logger.Info("opened existing movie index", "path", indexPath)
	}

	return &MovieIndex{
		index:  index,
		path:   indexPath,
		logger: logger,
	}, nil
}

// Close closes the index and releases resources.
func (s *MovieIndex) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index.Close()
}

// IndexMovie adds or replaces the document of m.
func (s *MovieIndex) IndexMovie(ctx context.Context, m *domain.Movie) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc := NewMovieDocument(m)
	return s.index.Index(doc.ID, doc.ToMap())
}

// IndexMovies indexes movies in batches.
func (s *MovieIndex) IndexMovies(ctx context.Context, movies []*domain.Movie) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	const batchSize = 500

	for i := 0; i < len(movies); i += batchSize {
		if err := ctx.Err(); err != nil {
			return err
		}
		end := min(i+batchSize, len(movies))

		batch := s.index.NewBatch()
		for _, m := range movies[i:end] {
			doc := NewMovieDocument(m)
			if err := batch.Index(doc.ID, doc.ToMap()); err != nil {
				return fmt.Errorf("batch index %s: %w", doc.ID, err)
			}
		}

		if err := s.index.Batch(batch); err != nil {
			return fmt.Errorf("commit batch %d-%d: %w", i, end, err)
		}
	}

	return nil
}

// DeleteMovie removes a movie's document. Unknown IDs are ignored.
func (s *MovieIndex) DeleteMovie(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index.Delete(id)
}

// DocumentCount returns the number of indexed movies.
func (s *MovieIndex) DocumentCount() (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index.DocCount()
}

// Rebuild drops every document and starts from an empty index.
//
// It takes the exclusive lock, so searches block until it returns.
func (s *MovieIndex) Rebuild() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.index.Close(); err != nil {
		return fmt.Errorf("close index: %w", err)
	}

	var (
		index bleve.Index
		err   error
	)
	if s.path == "" {
		index, err = bleve.NewMemOnly(buildIndexMapping())
	} else {
		if err := os.RemoveAll(s.path); err != nil {
			return fmt.Errorf("remove index: %w", err)
		}
		index, err = bleve.New(s.path, buildIndexMapping())
	}
	if err != nil {
		return fmt.Errorf("create index: %w", err)
	}

	s.index = index
	s.logger.Info("rebuilt movie index", "path", s.path)

	return nil
}
