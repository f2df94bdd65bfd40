package store

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/marczakjulia/BYT-PROJECT/internal/domain"
	domainerrors "github.com/marczakjulia/BYT-PROJECT/internal/errors"
	"github.com/marczakjulia/BYT-PROJECT/internal/normalize"
)

// MovieIndexer is the interface for keeping the movie search index in sync.
// Catalog uses this without depending on the search implementation.
type MovieIndexer interface {
	IndexMovie(ctx context.Context, m *domain.Movie) error
	DeleteMovie(ctx context.Context, movieID string) error
}

// NoopMovieIndexer is a no-op implementation for testing.
type NoopMovieIndexer struct{}

// IndexMovie is a no-op.
func (NoopMovieIndexer) IndexMovie(context.Context, *domain.Movie) error { return nil }

// DeleteMovie is a no-op.
func (NoopMovieIndexer) DeleteMovie(context.Context, string) error { return nil }

// Counts is the number of registered entities per type.
type Counts struct {
	Cinemas     int `json:"cinemas" xml:"cinemas,attr"`
	Auditoriums int `json:"auditoriums" xml:"auditoriums,attr"`
	Seats       int `json:"seats" xml:"seats,attr"`
	Movies      int `json:"movies" xml:"movies,attr"`
	NewReleases int `json:"new_releases" xml:"newReleases,attr"`
	Rereleases  int `json:"rereleases" xml:"rereleases,attr"`
	Screenings  int `json:"screenings" xml:"screenings,attr"`
	Tickets     int `json:"tickets" xml:"tickets,attr"`
	Reviews     int `json:"reviews" xml:"reviews,attr"`
	Employees   int `json:"employees" xml:"employees,attr"`
}

// Total sums all counts.
func (c Counts) Total() int {
	return c.Cinemas + c.Auditoriums + c.Seats + c.Movies + c.NewReleases +
		c.Rereleases + c.Screenings + c.Tickets + c.Reviews + c.Employees
}

// Catalog is the repository of every live entity, one extent per type.
// It is the single object persisted and restored by the backup package.
type Catalog struct {
	Cinemas     *Extent[*domain.Cinema]
	Auditoriums *Extent[*domain.Auditorium]
	Seats       *Extent[*domain.Seat]
	Movies      *Extent[*domain.Movie]
	NewReleases *Extent[*domain.NewRelease]
	Rereleases  *Extent[*domain.Rerelease]
	Screenings  *Extent[*domain.Screening]
	Tickets     *Extent[*domain.Ticket]
	Reviews     *Extent[*domain.ReviewPage]
	Employees   *Extent[*domain.Employee]

	logger *slog.Logger

	// Set via SetMovieIndexer after creation; the index is built on top of
	// the catalog.
	indexer MovieIndexer
}

// NewCatalog creates an empty catalog.
func NewCatalog(logger *slog.Logger) *Catalog {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	c := &Catalog{
		logger:  logger,
		indexer: NoopMovieIndexer{},
	}
	c.initExtents()
	return c
}

func (c *Catalog) initExtents() {
	c.Cinemas = NewExtent[*domain.Cinema]("cinema").
		WithIndexTransform("name", func(x *domain.Cinema) []string {
			return []string{x.Name()}
		}, normalize.Fold)

	c.Auditoriums = NewExtent[*domain.Auditorium]("auditorium").
		WithIndex("cinema", func(a *domain.Auditorium) []string {
			if a.Cinema() == nil {
				return nil
			}
			return []string{a.Cinema().ID()}
		})

	c.Seats = NewExtent[*domain.Seat]("seat")

	c.Movies = NewExtent[*domain.Movie]("movie").
		WithIndexTransform("title", func(m *domain.Movie) []string {
			return []string{m.Title()}
		}, normalize.Fold).
		WithIndexTransform("director", func(m *domain.Movie) []string {
			return []string{m.Director()}
		}, normalize.Fold)

	c.NewReleases = NewExtent[*domain.NewRelease]("new release")
	c.Rereleases = NewExtent[*domain.Rerelease]("rerelease")

	c.Screenings = NewExtent[*domain.Screening]("screening").
		WithIndex("movie", func(s *domain.Screening) []string {
			if s.Movie() == nil {
				return nil
			}
			return []string{s.Movie().ID()}
		}).
		WithIndex("auditorium", func(s *domain.Screening) []string {
			if s.Auditorium() == nil {
				return nil
			}
			return []string{s.Auditorium().ID()}
		})

	c.Tickets = NewExtent[*domain.Ticket]("ticket").
		WithIndex("screening", func(t *domain.Ticket) []string {
			if t.Screening() == nil {
				return nil
			}
			return []string{t.Screening().ID()}
		})

	c.Reviews = NewExtent[*domain.ReviewPage]("review").
		WithIndex("movie", func(r *domain.ReviewPage) []string {
			if r.Movie() == nil {
				return nil
			}
			return []string{r.Movie().ID()}
		})

	c.Employees = NewExtent[*domain.Employee]("employee").
		WithIndexTransform("email", func(e *domain.Employee) []string {
			return []string{e.Email()}
		}, strings.ToLower).
		WithIndex("pesel", func(e *domain.Employee) []string {
			return []string{e.PESEL()}
		})
}

// SetMovieIndexer sets the indexer notified when movies are registered or
// removed.
func (c *Catalog) SetMovieIndexer(indexer MovieIndexer) {
	if indexer == nil {
		indexer = NoopMovieIndexer{}
	}
	c.indexer = indexer
}

// Counts returns the number of registered entities per type.
func (c *Catalog) Counts() Counts {
	return Counts{
		Cinemas:     c.Cinemas.Len(),
		Auditoriums: c.Auditoriums.Len(),
		Seats:       c.Seats.Len(),
		Movies:      c.Movies.Len(),
		NewReleases: c.NewReleases.Len(),
		Rereleases:  c.Rereleases.Len(),
		Screenings:  c.Screenings.Len(),
		Tickets:     c.Tickets.Len(),
		Reviews:     c.Reviews.Len(),
		Employees:   c.Employees.Len(),
	}
}

// Clear empties every extent and drops the catalog's movies from the index.
func (c *Catalog) Clear(ctx context.Context) {
	for m := range c.Movies.Seq() {
		c.unindex(ctx, m.ID())
	}

	c.Cinemas.Clear()
	c.Auditoriums.Clear()
	c.Seats.Clear()
	c.Movies.Clear()
	c.NewReleases.Clear()
	c.Rereleases.Clear()
	c.Screenings.Clear()
	c.Tickets.Clear()
	c.Reviews.Clear()
	c.Employees.Clear()
}

// Reindex pushes every registered movie to the indexer.
func (c *Catalog) Reindex(ctx context.Context) error {
	for m := range c.Movies.Seq() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := c.indexer.IndexMovie(ctx, m); err != nil {
			return fmt.Errorf("index movie %s: %w", m.ID(), err)
		}
	}
	return nil
}

// undo records additions so a failed registration can take them back.
type undo []func()

func (u *undo) rollback() {
	for i := len(*u) - 1; i >= 0; i-- {
		(*u)[i]()
	}
	*u = nil
}

// addTracked adds item to e and records its removal in u. An item already
// registered is left alone and not recorded.
func addTracked[T Identifiable](u *undo, e *Extent[T], item T) error {
	if e.Contains(item) {
		return nil
	}
	if err := e.Add(item); err != nil {
		return err
	}
	id := item.ID()
	*u = append(*u, func() { e.Remove(id) })
	return nil
}

// RegisterCinema adds a cinema together with its auditoriums and their seats.
// Nothing is registered when any of them is rejected.
func (c *Catalog) RegisterCinema(cin *domain.Cinema) error {
	var u undo
	if err := addTracked(&u, c.Cinemas, cin); err != nil {
		return err
	}
	for _, a := range cin.Auditoriums() {
		if err := c.registerAuditorium(&u, a); err != nil {
			u.rollback()
			return err
		}
	}
	return nil
}

// RegisterAuditorium adds an auditorium and its seats. Its cinema, if any,
// must already be registered. Nothing is registered when a seat is rejected.
func (c *Catalog) RegisterAuditorium(a *domain.Auditorium) error {
	var u undo
	if err := c.registerAuditorium(&u, a); err != nil {
		u.rollback()
		return err
	}
	return nil
}

func (c *Catalog) registerAuditorium(u *undo, a *domain.Auditorium) error {
	if a == nil {
		return domainerrors.InvalidArgument("auditorium is required")
	}
	if cin := a.Cinema(); cin != nil && !c.Cinemas.Contains(cin) {
		return fmt.Errorf("cinema %s: %w", cin.ID(), ErrNotFound)
	}
	if err := addTracked(u, c.Auditoriums, a); err != nil {
		return err
	}
	for _, s := range a.Seats() {
		if err := addTracked(u, c.Seats, s); err != nil {
			return err
		}
	}
	return nil
}

// RegisterMovie adds a movie and its release record and feeds it to the
// search index. Indexing failures are logged, not returned. A rejected
// release leaves the movie unregistered.
func (c *Catalog) RegisterMovie(ctx context.Context, m *domain.Movie) error {
	var u undo
	if err := addTracked(&u, c.Movies, m); err != nil {
		return err
	}
	if nr := m.NewRelease(); nr != nil {
		if err := addTracked(&u, c.NewReleases, nr); err != nil {
			u.rollback()
			return err
		}
	}
	if rr := m.Rerelease(); rr != nil {
		if err := addTracked(&u, c.Rereleases, rr); err != nil {
			u.rollback()
			return err
		}
	}

	if err := c.indexer.IndexMovie(ctx, m); err != nil {
		c.logger.Warn("failed to index movie", "movie_id", m.ID(), "error", err)
	}
	return nil
}

// RemoveMovie deregisters a movie that has no screenings. Its reviews stay
// registered but lose their movie.
func (c *Catalog) RemoveMovie(ctx context.Context, m *domain.Movie) error {
	if !c.Movies.Contains(m) {
		return fmt.Errorf("movie: %w", ErrNotFound)
	}
	if n := len(m.Screenings()); n > 0 {
		return domainerrors.InvalidOperationf("movie %q still has %d screenings", m.Title(), n)
	}

	for _, r := range m.Reviews() {
		if err := m.RemoveReview(r); err != nil {
			return err
		}
	}
	if nr := m.NewRelease(); nr != nil {
		c.NewReleases.Remove(nr.ID())
	}
	if rr := m.Rerelease(); rr != nil {
		c.Rereleases.Remove(rr.ID())
	}
	c.Movies.Remove(m.ID())
	c.unindex(ctx, m.ID())
	return nil
}

// RegisterScreening adds a screening and any tickets it already holds. Its
// movie and auditorium must be registered.
func (c *Catalog) RegisterScreening(s *domain.Screening) error {
	if s == nil {
		return domainerrors.InvalidArgument("screening is required")
	}
	if m := s.Movie(); m == nil || !c.Movies.Contains(m) {
		return fmt.Errorf("movie of screening %s: %w", s.ID(), ErrNotFound)
	}
	if a := s.Auditorium(); a == nil || !c.Auditoriums.Contains(a) {
		return fmt.Errorf("auditorium of screening %s: %w", s.ID(), ErrNotFound)
	}
	if err := c.Screenings.Add(s); err != nil {
		return err
	}
	for _, t := range s.Tickets() {
		if err := c.Tickets.Add(t); err != nil {
			return err
		}
	}
	return nil
}

// CreateTickets issues the tickets of a registered screening and registers
// them.
func (c *Catalog) CreateTickets(s *domain.Screening, price decimal.Decimal) ([]*domain.Ticket, error) {
	if !c.Screenings.Contains(s) {
		return nil, fmt.Errorf("screening: %w", ErrNotFound)
	}

	tickets, err := s.CreateTickets(price)
	if err != nil {
		return nil, err
	}
	for _, t := range tickets {
		if err := c.Tickets.Add(t); err != nil {
			return nil, err
		}
	}

	c.logger.Debug("tickets issued", "screening_id", s.ID(), "count", len(tickets), "price", price.StringFixed(2))
	return tickets, nil
}

// RemoveScreening detaches a screening that is not running and deregisters
// it with its tickets.
func (c *Catalog) RemoveScreening(s *domain.Screening) error {
	if !c.Screenings.Contains(s) {
		return fmt.Errorf("screening: %w", ErrNotFound)
	}
	if s.Status() == domain.ScreeningRunning {
		return domainerrors.InvalidOperation("cannot remove a running screening")
	}

	for _, t := range s.Tickets() {
		t.RemoveReview()
		c.Tickets.Remove(t.ID())
	}
	s.Detach()
	c.Screenings.Remove(s.ID())
	return nil
}

// RegisterEmployee adds an employee. Every cinema they work in must be
// registered.
func (c *Catalog) RegisterEmployee(e *domain.Employee) error {
	if e == nil {
		return domainerrors.InvalidArgument("employee is required")
	}
	for _, cin := range e.Cinemas() {
		if !c.Cinemas.Contains(cin) {
			return fmt.Errorf("cinema %s of employee %s: %w", cin.ID(), e.ID(), ErrNotFound)
		}
	}
	return c.Employees.Add(e)
}

// RegisterReview adds a review. Its movie and ticket, when set, must be
// registered.
func (c *Catalog) RegisterReview(r *domain.ReviewPage) error {
	if r == nil {
		return domainerrors.InvalidArgument("review is required")
	}
	if m := r.Movie(); m != nil && !c.Movies.Contains(m) {
		return fmt.Errorf("movie %s of review %s: %w", m.ID(), r.ID(), ErrNotFound)
	}
	if t := r.Ticket(); t != nil && !c.Tickets.Contains(t) {
		return fmt.Errorf("ticket %s of review %s: %w", t.ID(), r.ID(), ErrNotFound)
	}
	return c.Reviews.Add(r)
}

// DestroyCinema detaches a cinema from its auditoriums and employees and
// deregisters it along with its auditoriums and their seats. It fails,
// changing nothing, while an auditorium still hosts screenings or an
// employee works only in this cinema.
func (c *Catalog) DestroyCinema(cin *domain.Cinema) error {
	if !c.Cinemas.Contains(cin) {
		return fmt.Errorf("cinema: %w", ErrNotFound)
	}
	for _, a := range cin.Auditoriums() {
		if n := len(a.Screenings()); n > 0 {
			return domainerrors.InvalidOperationf("auditorium %s still hosts %d screenings", a.Name(), n)
		}
	}

	auditoriums, err := cin.Dismantle()
	if err != nil {
		return err
	}

	for _, a := range auditoriums {
		for _, s := range a.Seats() {
			c.Seats.Remove(s.ID())
		}
		c.Auditoriums.Remove(a.ID())
	}
	c.Cinemas.Remove(cin.ID())

	c.logger.Info("cinema destroyed", "cinema_id", cin.ID(), "auditoriums", len(auditoriums))
	return nil
}

func (c *Catalog) unindex(ctx context.Context, movieID string) {
	if err := c.indexer.DeleteMovie(ctx, movieID); err != nil {
		c.logger.Warn("failed to remove movie from index", "movie_id", movieID, "error", err)
	}
}
