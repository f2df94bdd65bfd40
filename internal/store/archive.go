package store

import (
	"cmp"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"github.com/marczakjulia/BYT-PROJECT/internal/normalize"
)

const (
	snapshotMetaPrefix = "snapshot:meta:"
	snapshotDataPrefix = "snapshot:data:"
)

// Snapshot describes one archived graph document.
type Snapshot struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
	Size      int       `json:"size"`
	Checksum  string    `json:"checksum"` // sha256 of the document, hex
	Counts    Counts    `json:"counts"`
}

// Archive keeps named, timestamped graph documents in a Badger database.
type Archive struct {
	db     *badger.DB
	logger *slog.Logger
	now    func() time.Time
}

// OpenArchive opens the archive at path. An empty path keeps the archive in
// memory.
func OpenArchive(path string, logger *slog.Logger) (*Archive, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	opts := badger.DefaultOptions(path)
	if path == "" {
		opts = opts.WithInMemory(true)
	} else {
		opts.SyncWrites = true       // Snapshots are rare and must survive crashes
		opts.CompactL0OnClose = true // Compact L0 tables on close for faster startup
	}
	opts.Logger = nil // Disable Badger's internal logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}

	logger.Info("Snapshot archive opened", "path", path, "in_memory", path == "")

	return &Archive{db: db, logger: logger, now: time.Now}, nil
}

// Close gracefully closes the database.
func (a *Archive) Close() error {
	a.logger.Info("Closing snapshot archive")
	return a.db.Close()
}

// Put stores doc under a fresh snapshot ID and returns its description.
func (a *Archive) Put(ctx context.Context, name string, counts Counts, doc []byte) (Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return Snapshot{}, err
	}

	sum := sha256.Sum256(doc)
	snap := Snapshot{
		ID:        uuid.NewString(),
		Name:      name,
		Slug:      normalize.Slugify(name),
		CreatedAt: a.now().UTC(),
		Size:      len(doc),
		Checksum:  hex.EncodeToString(sum[:]),
		Counts:    counts,
	}

	meta, err := json.Marshal(snap)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	err = a.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set([]byte(snapshotDataPrefix+snap.ID), doc); err != nil {
			return fmt.Errorf("failed to set snapshot data: %w", err)
		}
		if err := txn.Set([]byte(snapshotMetaPrefix+snap.ID), meta); err != nil {
			return fmt.Errorf("failed to set snapshot meta: %w", err)
		}
		return nil
	})
	if err != nil {
		return Snapshot{}, err
	}

	a.logger.Info("Snapshot archived", "id", snap.ID, "name", snap.Name, "bytes", snap.Size)
	return snap, nil
}

// Get retrieves a snapshot and its document by ID, or by slug when no ID
// matches (the newest snapshot with that slug wins). The document checksum
// is verified.
func (a *Archive) Get(ctx context.Context, ref string) (Snapshot, []byte, error) {
	if err := ctx.Err(); err != nil {
		return Snapshot{}, nil, err
	}

	snap, err := a.meta(ref)
	if errors.Is(err, ErrNotFound) {
		snap, err = a.bySlug(ctx, ref)
	}
	if err != nil {
		return Snapshot{}, nil, err
	}

	var doc []byte
	err = a.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(snapshotDataPrefix + snap.ID))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("data of snapshot %s: %w", snap.ID, ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("failed to get snapshot data: %w", err)
		}
		doc, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return Snapshot{}, nil, err
	}

	sum := sha256.Sum256(doc)
	if hex.EncodeToString(sum[:]) != snap.Checksum {
		return Snapshot{}, nil, fmt.Errorf("snapshot %s: %w", snap.ID, ErrChecksumMismatch)
	}
	return snap, doc, nil
}

// List returns every snapshot, newest first.
func (a *Archive) List(ctx context.Context) ([]Snapshot, error) {
	var snaps []Snapshot

	err := a.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(snapshotMetaPrefix)

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}

			var snap Snapshot
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &snap)
			})
			if err != nil {
				return fmt.Errorf("failed to unmarshal snapshot: %w", err)
			}
			snaps = append(snaps, snap)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.SortStableFunc(snaps, func(x, y Snapshot) int {
		return cmp.Or(y.CreatedAt.Compare(x.CreatedAt), cmp.Compare(x.ID, y.ID))
	})
	return snaps, nil
}

// Delete removes a snapshot.
// This operation is idempotent - it does not return an error if the snapshot does not exist.
func (a *Archive) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return a.db.Update(func(txn *badger.Txn) error {
		if err := txn.Delete([]byte(snapshotMetaPrefix + id)); err != nil {
			return fmt.Errorf("failed to delete snapshot meta: %w", err)
		}
		if err := txn.Delete([]byte(snapshotDataPrefix + id)); err != nil {
			return fmt.Errorf("failed to delete snapshot data: %w", err)
		}
		return nil
	})
}

func (a *Archive) meta(id string) (Snapshot, error) {
	var snap Snapshot

	err := a.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(snapshotMetaPrefix + id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("snapshot %s: %w", id, ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("failed to get snapshot meta: %w", err)
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &snap)
		})
	})
	return snap, err
}

func (a *Archive) bySlug(ctx context.Context, slug string) (Snapshot, error) {
	snaps, err := a.List(ctx)
	if err != nil {
		return Snapshot{}, err
	}

	want := normalize.Slugify(slug)
	for _, snap := range snaps {
		if want != "" && snap.Slug == want {
			return snap, nil
		}
	}
	return Snapshot{}, fmt.Errorf("snapshot %s: %w", slug, ErrNotFound)
}
