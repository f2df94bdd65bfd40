package backup_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marczakjulia/BYT-PROJECT/internal/backup"
	"github.com/marczakjulia/BYT-PROJECT/internal/domain"
	domainerrors "github.com/marczakjulia/BYT-PROJECT/internal/errors"
	"github.com/marczakjulia/BYT-PROJECT/internal/seed"
	"github.com/marczakjulia/BYT-PROJECT/internal/store"
)

func seededCatalog(t *testing.T) (*store.Catalog, *seed.Result) {
	t.Helper()
	cat := store.NewCatalog(nil)
	res, err := seed.Populate(context.Background(), cat, time.Now(), decimal.RequireFromString("27.50"))
	require.NoError(t, err)
	return cat, res
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	ctx := context.Background()
	src, res := seededCatalog(t)
	path := filepath.Join(t.TempDir(), "graph", "cinema.xml")

	saved, err := backup.NewService(src, nil, nil).Save(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, src.Counts(), saved.Counts)
	assert.NotEmpty(t, saved.Checksum)

	dst := store.NewCatalog(nil)
	loaded, err := backup.NewService(dst, nil, nil).Load(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, saved.Checksum, loaded.Checksum)
	assert.Equal(t, src.Counts(), dst.Counts())

	t.Run("cinemas and auditoriums", func(t *testing.T) {
		orig := res.Cinemas[0]
		c, err := dst.Cinemas.Get(orig.ID())
		require.NoError(t, err)
		assert.Equal(t, orig.Params(), c.Params())
		require.Len(t, c.Auditoriums(), len(orig.Auditoriums()))
		for i, a := range c.Auditoriums() {
			assert.Equal(t, orig.Auditoriums()[i].ID(), a.ID())
			assert.Same(t, c, a.Cinema())
			assert.Equal(t, orig.Auditoriums()[i].SeatCount(), a.SeatCount())
		}
	})

	t.Run("movies keep cut genres and releases", func(t *testing.T) {
		for _, orig := range res.Movies {
			m, err := dst.Movies.Get(orig.ID())
			require.NoError(t, err)
			assert.Equal(t, orig.Params(), m.Params())
			assert.Equal(t, orig.Cut().Kind(), m.Cut().Kind())
			assert.Equal(t, orig.TotalRuntime(), m.TotalRuntime())
			assert.ElementsMatch(t, orig.GenreKinds(), m.GenreKinds())
		}

		domZly, err := dst.Movies.Get(res.Movies[1].ID())
		require.NoError(t, err)
		horror, ok := domZly.Horror()
		require.True(t, ok)
		assert.Equal(t, []string{"the cellar", "the stable"}, horror.JumpScares())
		require.NotNil(t, domZly.NewRelease())
		assert.True(t, domZly.NewRelease().Exclusive())
		assert.Same(t, domZly, domZly.NewRelease().Movie())

		rejs, err := dst.Movies.Get(res.Movies[0].ID())
		require.NoError(t, err)
		require.NotNil(t, rejs.Rerelease())
		remastered, ok := rejs.Rerelease().Remastered()
		assert.True(t, ok)
		assert.True(t, remastered)
	})

	t.Run("screenings and tickets", func(t *testing.T) {
		orig := res.Screenings[0]
		s, err := dst.Screenings.Get(orig.ID())
		require.NoError(t, err)
		assert.True(t, orig.StartsAt().Equal(s.StartsAt()))
		assert.Equal(t, orig.Status(), s.Status())
		assert.Equal(t, orig.SeatCodes(), s.SeatCodes())
		assert.Contains(t, s.Movie().Screenings(), s)
		assert.Contains(t, s.Auditorium().Screenings(), s)

		tk, ok := s.Ticket("02A")
		require.True(t, ok)
		assert.Equal(t, domain.TicketPurchased, tk.Status())
		assert.Equal(t, domain.PaymentCreditCard, tk.PaymentType())
		assert.True(t, tk.Price().Equal(decimal.RequireFromString("27.50")))
		assert.Same(t, s, tk.Screening())
	})

	t.Run("review stays linked to its ticket", func(t *testing.T) {
		s, err := dst.Screenings.Get(res.Screenings[0].ID())
		require.NoError(t, err)
		tk, ok := s.Ticket("01A")
		require.True(t, ok)
		require.NotNil(t, tk.Review())
		assert.Same(t, tk, tk.Review().Ticket())
		assert.Same(t, s.Movie(), tk.Review().Movie())
		assert.Contains(t, s.Movie().Reviews(), tk.Review())
	})

	t.Run("staff roles and hierarchy", func(t *testing.T) {
		director, err := dst.Employees.Get(res.Employees[0].ID())
		require.NoError(t, err)
		floor, err := dst.Employees.Get(res.Employees[1].ID())
		require.NoError(t, err)
		cashier, err := dst.Employees.Get(res.Employees[2].ID())
		require.NoError(t, err)

		require.NotNil(t, floor.Manager())
		assert.Same(t, director.Manager(), floor.Manager().Supervisor())
		assert.Contains(t, director.Manager().Subordinates(), floor.Manager())
		assert.Len(t, director.Cinemas(), 2)
		assert.True(t, res.Employees[0].Salary().Equal(director.Salary()))
		require.NotNil(t, cashier.Worker())
		assert.True(t, res.Employees[2].Salary().Equal(cashier.Salary()))
		assert.True(t, res.Employees[2].DateOfBirth().Equal(cashier.DateOfBirth()))
	})

	t.Run("second save is identical", func(t *testing.T) {
		again, err := backup.NewService(dst, nil, nil).Save(ctx, filepath.Join(t.TempDir(), "again.xml"))
		require.NoError(t, err)
		assert.Equal(t, saved.Checksum, again.Checksum)
	})
}

func TestSave_UnregisteredReference(t *testing.T) {
	ctx := context.Background()

	t.Run("screening of deregistered movie", func(t *testing.T) {
		cat, res := seededCatalog(t)
		cat.Movies.Remove(res.Movies[2].ID())

		_, err := backup.NewService(cat, nil, nil).Save(ctx, filepath.Join(t.TempDir(), "g.xml"))
		assert.ErrorIs(t, err, backup.ErrUnregisteredReference)
	})

}

func TestSaveLoad_DetachedScreening(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		detach func(res *seed.Result)
	}{
		{
			name:   "removed from its movie",
			detach: func(res *seed.Result) { res.Movies[0].RemoveScreening(res.Screenings[0]) },
		},
		{
			name:   "removed from its auditorium",
			detach: func(res *seed.Result) { res.Screenings[0].Auditorium().RemoveScreening(res.Screenings[0]) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, res := seededCatalog(t)
			gone := res.Screenings[0]
			soldTo, ok := gone.Ticket("01A")
			require.True(t, ok)
			tt.detach(res)

			path := filepath.Join(t.TempDir(), "g.xml")
			saved, err := backup.NewService(src, nil, nil).Save(ctx, path)
			require.NoError(t, err)
			assert.Equal(t, len(res.Screenings)-1, saved.Counts.Screenings)
			assert.Equal(t, src.Tickets.Len()-len(gone.SeatCodes()), saved.Counts.Tickets)

			again, err := backup.NewService(src, nil, nil).Save(ctx, filepath.Join(t.TempDir(), "again.xml"))
			require.NoError(t, err)
			assert.Equal(t, saved.Checksum, again.Checksum)

			dst := store.NewCatalog(nil)
			_, err = backup.NewService(dst, nil, nil).Load(ctx, path)
			require.NoError(t, err)
			assert.Equal(t, len(res.Screenings)-1, dst.Screenings.Len())
			_, err = dst.Screenings.Get(gone.ID())
			assert.ErrorIs(t, err, store.ErrNotFound)
			_, err = dst.Tickets.Get(soldTo.ID())
			assert.ErrorIs(t, err, store.ErrNotFound)

			r, err := dst.Reviews.Get(soldTo.Review().ID())
			require.NoError(t, err)
			assert.Nil(t, r.Ticket())
			assert.Equal(t, res.Movies[0].ID(), r.Movie().ID())
		})
	}
}

func TestSaveLoad_SeatRemovalKeepsGraphLoadable(t *testing.T) {
	ctx := context.Background()
	src, res := seededCatalog(t)
	aud := res.Screenings[0].Auditorium()
	ticketed := aud.Seats()[0]

	extra, err := domain.NewSeat(domain.SeatParams{ID: "seat-extra", Code: "99Z", Type: domain.SeatTypeNormal})
	require.NoError(t, err)
	require.NoError(t, aud.AddSeat(extra))
	require.NoError(t, src.Seats.Add(extra))
	seats := aud.SeatCount()

	err = aud.RemoveSeat(ticketed)
	assert.Equal(t, domainerrors.CodeInvalidOperation, domainerrors.CodeOf(err))
	assert.Same(t, aud, ticketed.Auditorium())
	assert.Equal(t, seats, aud.SeatCount())

	path := filepath.Join(t.TempDir(), "g.xml")
	_, err = backup.NewService(src, nil, nil).Save(ctx, path)
	require.NoError(t, err)

	dst := store.NewCatalog(nil)
	_, err = backup.NewService(dst, nil, nil).Load(ctx, path)
	require.NoError(t, err)
	a, err := dst.Auditoriums.Get(aud.ID())
	require.NoError(t, err)
	assert.Equal(t, seats, a.SeatCount())
}

func TestSave_EmptyCatalog(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "empty.xml")

	res, err := backup.NewService(store.NewCatalog(nil), nil, nil).Save(ctx, path)
	require.NoError(t, err)
	assert.Zero(t, res.Counts.Total())

	cat, _ := seededCatalog(t)
	_, err = backup.NewService(cat, nil, nil).Load(ctx, path)
	require.NoError(t, err)
	assert.Zero(t, cat.Counts().Total())
}

func TestLoad_FailureClearsCatalog(t *testing.T) {
	ctx := context.Background()

	src, _ := seededCatalog(t)
	good := filepath.Join(t.TempDir(), "good.xml")
	_, err := backup.NewService(src, nil, nil).Save(ctx, good)
	require.NoError(t, err)
	data, err := os.ReadFile(good)
	require.NoError(t, err)

	tests := []struct {
		name    string
		content []byte
		wantErr error
	}{
		{
			name:    "malformed",
			content: []byte("<cinemaGraph><manifest"),
			wantErr: backup.ErrInvalidDocument,
		},
		{
			name:    "edited title",
			content: bytes.Replace(data, []byte("<title>Rejs</title>"), []byte("<title>Rejs 2</title>"), 1),
			wantErr: backup.ErrCorruptedDocument,
		},
		{
			name:    "miscounted entities",
			content: bytes.Replace(data, []byte(`reviews="1"`), []byte(`reviews="2"`), 1),
			wantErr: backup.ErrCorruptedDocument,
		},
		{
			name:    "future version",
			content: bytes.Replace(data, []byte(`<manifest version="1.0"`), []byte(`<manifest version="2.0"`), 1),
			wantErr: backup.ErrVersionMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NotEqual(t, data, tt.content)
			path := filepath.Join(t.TempDir(), "bad.xml")
			require.NoError(t, os.WriteFile(path, tt.content, 0o644))

			cat, _ := seededCatalog(t)
			_, err := backup.NewService(cat, nil, nil).Load(ctx, path)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Zero(t, cat.Counts().Total())
		})
	}

	t.Run("missing file", func(t *testing.T) {
		cat, _ := seededCatalog(t)
		_, err := backup.NewService(cat, nil, nil).Load(ctx, filepath.Join(t.TempDir(), "nope.xml"))
		assert.ErrorIs(t, err, os.ErrNotExist)
		assert.Zero(t, cat.Counts().Total())
	})
}

func TestSnapshots(t *testing.T) {
	ctx := context.Background()
	archive, err := store.OpenArchive("", nil)
	require.NoError(t, err)
	t.Cleanup(func() { archive.Close() })

	cat, res := seededCatalog(t)
	svc := backup.NewService(cat, archive, nil)
	want := cat.Counts()

	snap, err := svc.Snapshot(ctx, "Before premiere")
	require.NoError(t, err)
	assert.Equal(t, "before-premiere", snap.Slug)
	assert.Equal(t, want, snap.Counts)

	require.NoError(t, cat.RemoveScreening(res.Screenings[1]))
	assert.NotEqual(t, want, cat.Counts())

	restored, err := svc.Restore(ctx, "before-premiere")
	require.NoError(t, err)
	assert.Equal(t, snap.ID, restored.ID)
	assert.Equal(t, want, cat.Counts())
	_, err = cat.Screenings.Get(res.Screenings[1].ID())
	assert.NoError(t, err)

	list, err := svc.Snapshots(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, snap.ID, list[0].ID)

	_, err = svc.Restore(ctx, "no-such-snapshot")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestSnapshots_NoArchive(t *testing.T) {
	ctx := context.Background()
	svc := backup.NewService(store.NewCatalog(nil), nil, nil)

	_, err := svc.Snapshot(ctx, "x")
	assert.ErrorIs(t, err, backup.ErrNoArchive)
	_, err = svc.Restore(ctx, "x")
	assert.ErrorIs(t, err, backup.ErrNoArchive)
	_, err = svc.Snapshots(ctx)
	assert.ErrorIs(t, err, backup.ErrNoArchive)
}
