package backup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/marczakjulia/BYT-PROJECT/internal/store"
)

// ErrNoArchive is returned by snapshot operations when no archive is set.
var ErrNoArchive = errors.New("snapshot archive not configured")

// Result describes a saved or loaded document.
type Result struct {
	Path     string
	Size     int64
	Counts   store.Counts
	Duration time.Duration
	Checksum string
}

// Service saves and loads the catalog's graph, to files and to the
// snapshot archive.
type Service struct {
	catalog *store.Catalog
	archive *store.Archive
	logger  *slog.Logger
	now     func() time.Time
}

// NewService creates a Service. archive may be nil when snapshots are not
// needed.
func NewService(cat *store.Catalog, archive *store.Archive, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{
		catalog: cat,
		archive: archive,
		logger:  logger,
		now:     time.Now,
	}
}

// Save writes the whole graph to path as one XML document.
func (s *Service) Save(ctx context.Context, path string) (*Result, error) {
	start := s.now()

	doc, err := Export(ctx, s.catalog, start)
	if err != nil {
		return nil, err
	}
	data, err := doc.Encode()
	if err != nil {
		return nil, err
	}

	if err := writeFileAtomic(path, data); err != nil {
		return nil, err
	}

	result := &Result{
		Path:     path,
		Size:     int64(len(data)),
		Counts:   doc.Manifest.Counts,
		Duration: time.Since(start),
		Checksum: doc.Manifest.Checksum,
	}

	s.logger.Info("graph saved",
		"path", path,
		"entities", result.Counts.Total(),
		"size", result.Size,
		"checksum", result.Checksum)

	return result, nil
}

// Load replaces the catalog's contents with the graph saved at path. When
// the file is missing, malformed or inconsistent the catalog is left empty
// and the cause returned.
func (s *Service) Load(ctx context.Context, path string) (*Result, error) {
	start := time.Now()

	data, err := os.ReadFile(path)
	if err != nil {
		s.catalog.Clear(ctx)
		return nil, fmt.Errorf("read graph document: %w", err)
	}

	doc, err := s.replace(ctx, data)
	if err != nil {
		s.logger.Warn("graph load failed, catalog cleared", "path", path, "error", err)
		return nil, err
	}

	result := &Result{
		Path:     path,
		Size:     int64(len(data)),
		Counts:   doc.Manifest.Counts,
		Duration: time.Since(start),
		Checksum: doc.Manifest.Checksum,
	}

	s.logger.Info("graph loaded",
		"path", path,
		"entities", result.Counts.Total(),
		"duration", result.Duration)

	return result, nil
}

// Snapshot stores the current graph in the archive under name.
func (s *Service) Snapshot(ctx context.Context, name string) (store.Snapshot, error) {
	if s.archive == nil {
		return store.Snapshot{}, ErrNoArchive
	}

	doc, err := Export(ctx, s.catalog, s.now())
	if err != nil {
		return store.Snapshot{}, err
	}
	data, err := doc.Encode()
	if err != nil {
		return store.Snapshot{}, err
	}

	return s.archive.Put(ctx, name, doc.Manifest.Counts, data)
}

// Restore replaces the catalog's contents with an archived snapshot,
// referenced by ID or slug. On failure the catalog is left empty.
func (s *Service) Restore(ctx context.Context, ref string) (store.Snapshot, error) {
	if s.archive == nil {
		return store.Snapshot{}, ErrNoArchive
	}

	snap, data, err := s.archive.Get(ctx, ref)
	if err != nil {
		return store.Snapshot{}, err
	}

	if _, err := s.replace(ctx, data); err != nil {
		s.logger.Warn("snapshot restore failed, catalog cleared", "id", snap.ID, "error", err)
		return store.Snapshot{}, err
	}

	s.logger.Info("snapshot restored", "id", snap.ID, "name", snap.Name, "entities", snap.Counts.Total())
	return snap, nil
}

// Snapshots lists archived snapshots, newest first.
func (s *Service) Snapshots(ctx context.Context) ([]store.Snapshot, error) {
	if s.archive == nil {
		return nil, ErrNoArchive
	}
	return s.archive.List(ctx)
}

// replace decodes data and swaps it in for the catalog's contents.
func (s *Service) replace(ctx context.Context, data []byte) (*Document, error) {
	s.catalog.Clear(ctx)

	doc, err := DecodeDocument(data)
	if err != nil {
		return nil, err
	}
	if err := Import(ctx, s.catalog, doc); err != nil {
		s.catalog.Clear(ctx)
		return nil, err
	}
	return doc, nil
}

// writeFileAtomic writes to a temp file beside path and renames it into place.
func writeFileAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create graph dir: %w", err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("write graph document: %w", err)
	}
	defer os.Remove(tmpPath) // Clean up on failure

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename graph document: %w", err)
	}
	return nil
}
