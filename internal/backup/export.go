package backup

import (
	"context"
	"fmt"
	"time"

	"github.com/marczakjulia/BYT-PROJECT/internal/domain"
	"github.com/marczakjulia/BYT-PROJECT/internal/store"
)

// ordered collects entities once each, keeping first-seen order.
type ordered[T comparable] struct {
	items []T
	seen  map[T]bool
}

func newOrdered[T comparable]() *ordered[T] {
	return &ordered[T]{seen: make(map[T]bool)}
}

func (o *ordered[T]) add(items ...T) {
	var zero T
	for _, item := range items {
		if item == zero || o.seen[item] {
			continue
		}
		o.seen[item] = true
		o.items = append(o.items, item)
	}
}

// graph is the set of entities a document will hold: the catalog's extents
// plus the parts they own (seats, tickets, releases).
type graph struct {
	cinemas     *ordered[*domain.Cinema]
	auditoriums *ordered[*domain.Auditorium]
	seats       *ordered[*domain.Seat]
	movies      *ordered[*domain.Movie]
	newReleases *ordered[*domain.NewRelease]
	rereleases  *ordered[*domain.Rerelease]
	screenings  *ordered[*domain.Screening]
	tickets     *ordered[*domain.Ticket]
	reviews     *ordered[*domain.ReviewPage]
	employees   *ordered[*domain.Employee]
}

func collect(cat *store.Catalog) *graph {
	g := &graph{
		cinemas:     newOrdered[*domain.Cinema](),
		auditoriums: newOrdered[*domain.Auditorium](),
		seats:       newOrdered[*domain.Seat](),
		movies:      newOrdered[*domain.Movie](),
		newReleases: newOrdered[*domain.NewRelease](),
		rereleases:  newOrdered[*domain.Rerelease](),
		screenings:  newOrdered[*domain.Screening](),
		tickets:     newOrdered[*domain.Ticket](),
		reviews:     newOrdered[*domain.ReviewPage](),
		employees:   newOrdered[*domain.Employee](),
	}

	g.cinemas.add(cat.Cinemas.All()...)
	for _, c := range g.cinemas.items {
		g.auditoriums.add(c.Auditoriums()...)
	}
	g.auditoriums.add(cat.Auditoriums.All()...)
	for _, a := range g.auditoriums.items {
		g.seats.add(a.Seats()...)
	}
	g.seats.add(cat.Seats.All()...)

	g.movies.add(cat.Movies.All()...)
	for _, m := range g.movies.items {
		g.newReleases.add(m.NewRelease())
		g.rereleases.add(m.Rerelease())
	}
	g.newReleases.add(cat.NewReleases.All()...)
	g.rereleases.add(cat.Rereleases.All()...)

	// A screening removed from its movie or auditorium is no longer part of
	// the graph; it is left out together with its tickets.
	for _, s := range cat.Screenings.All() {
		if s.Movie() == nil || s.Auditorium() == nil {
			continue
		}
		g.screenings.add(s)
	}
	for _, s := range g.screenings.items {
		for _, code := range s.SeatCodes() {
			t, _ := s.Ticket(code)
			g.tickets.add(t)
		}
	}
	for _, t := range cat.Tickets.All() {
		if detached(t) {
			continue
		}
		g.tickets.add(t)
	}

	g.reviews.add(cat.Reviews.All()...)
	g.employees.add(cat.Employees.All()...)
	return g
}

// check verifies that every association points inside the graph.
func (g *graph) check() error {
	missing := func(kind, from, to string) error {
		return fmt.Errorf("%w: %s of %s is %s", ErrUnregisteredReference, kind, from, to)
	}

	for _, a := range g.auditoriums.items {
		if c := a.Cinema(); c != nil && !g.cinemas.seen[c] {
			return missing("cinema", "auditorium "+a.ID(), c.ID())
		}
	}
	for _, s := range g.seats.items {
		if a := s.Auditorium(); a != nil && !g.auditoriums.seen[a] {
			return missing("auditorium", "seat "+s.ID(), a.ID())
		}
	}
	for _, r := range g.newReleases.items {
		if m := r.Movie(); m != nil && !g.movies.seen[m] {
			return missing("movie", "new release "+r.ID(), m.ID())
		}
	}
	for _, r := range g.rereleases.items {
		if m := r.Movie(); m != nil && !g.movies.seen[m] {
			return missing("movie", "rerelease "+r.ID(), m.ID())
		}
	}
	for _, s := range g.screenings.items {
		if !g.movies.seen[s.Movie()] {
			return missing("movie", "screening "+s.ID(), s.Movie().ID())
		}
		if !g.auditoriums.seen[s.Auditorium()] {
			return missing("auditorium", "screening "+s.ID(), s.Auditorium().ID())
		}
	}
	for _, t := range g.tickets.items {
		if s := t.Screening(); s != nil && !g.screenings.seen[s] {
			return missing("screening", "ticket "+t.ID(), s.ID())
		}
	}
	for _, r := range g.reviews.items {
		if m := r.Movie(); m != nil && !g.movies.seen[m] {
			return missing("movie", "review "+r.ID(), m.ID())
		}
		if t := r.Ticket(); t != nil && !g.tickets.seen[t] && !detached(t) {
			return missing("ticket", "review "+r.ID(), t.ID())
		}
	}
	for _, e := range g.employees.items {
		for _, c := range e.Cinemas() {
			if !g.cinemas.seen[c] {
				return missing("cinema", "employee "+e.ID(), c.ID())
			}
		}
		if m := e.Manager(); m != nil && m.Supervisor() != nil && !g.employees.seen[m.Supervisor().Employee()] {
			return missing("supervisor", "employee "+e.ID(), m.Supervisor().Employee().ID())
		}
	}
	return nil
}

// detached reports whether t belongs to a screening left out of the graph.
func detached(t *domain.Ticket) bool {
	s := t.Screening()
	return s != nil && (s.Movie() == nil || s.Auditorium() == nil)
}

// Export builds a document from the catalog. Screenings detached from their
// movie or auditorium are skipped with their tickets, and reviews of those
// tickets are saved without the ticket link.
func Export(ctx context.Context, cat *store.Catalog, createdAt time.Time) (*Document, error) {
	g := collect(cat)
	if err := g.check(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var e Entities
	for _, c := range g.cinemas.items {
		e.Cinemas = append(e.Cinemas, exportCinema(c))
	}
	for _, a := range g.auditoriums.items {
		e.Auditoriums = append(e.Auditoriums, exportAuditorium(a))
	}
	for _, s := range g.seats.items {
		e.Seats = append(e.Seats, exportSeat(s))
	}
	for _, m := range g.movies.items {
		e.Movies = append(e.Movies, exportMovie(m))
	}
	for _, r := range g.newReleases.items {
		e.NewReleases = append(e.NewReleases, exportNewRelease(r))
	}
	for _, r := range g.rereleases.items {
		e.Rereleases = append(e.Rereleases, exportRerelease(r))
	}
	for _, s := range g.screenings.items {
		e.Screenings = append(e.Screenings, exportScreening(s))
	}
	for _, t := range g.tickets.items {
		e.Tickets = append(e.Tickets, exportTicket(t))
	}
	for _, r := range g.reviews.items {
		x := exportReview(r)
		if t := r.Ticket(); t != nil && !g.tickets.seen[t] {
			x.Ticket = ""
		}
		e.Reviews = append(e.Reviews, x)
	}
	for _, emp := range g.employees.items {
		e.Employees = append(e.Employees, exportEmployee(emp))
	}

	sum, err := e.checksum()
	if err != nil {
		return nil, err
	}

	return &Document{
		Manifest: Manifest{
			Version:   FormatVersion,
			CreatedAt: createdAt.UTC(),
			Counts:    e.counts(),
			Checksum:  sum,
		},
		Entities: e,
	}, nil
}

// refID returns the ID of x, or "" when x is nil.
func refID[T interface {
	comparable
	ID() string
}](x T) string {
	var zero T
	if x == zero {
		return ""
	}
	return x.ID()
}

func exportCinema(c *domain.Cinema) cinemaXML {
	return cinemaXML{
		ID:           c.ID(),
		Name:         c.Name(),
		Address:      c.Address(),
		Phone:        c.Phone(),
		Email:        c.Email(),
		OpeningHours: c.OpeningHours(),
	}
}

func exportAuditorium(a *domain.Auditorium) auditoriumXML {
	return auditoriumXML{
		ID:          a.ID(),
		Cinema:      refID(a.Cinema()),
		Name:        a.Name(),
		ScreenType:  string(a.ScreenType()),
		SoundSystem: string(a.SoundSystem()),
	}
}

func exportSeat(s *domain.Seat) seatXML {
	return seatXML{
		ID:         s.ID(),
		Auditorium: refID(s.Auditorium()),
		Code:       s.Code(),
		Type:       string(s.Type()),
	}
}

func exportMovie(m *domain.Movie) movieXML {
	x := movieXML{
		ID:             m.ID(),
		Title:          m.Title(),
		Country:        m.Country(),
		Description:    m.Description(),
		Director:       m.Director(),
		Length:         m.Length(),
		AgeRestriction: string(m.AgeRestriction()),
		Cut:            cutXML{Kind: string(m.Cut().Kind()), ExtraMinutes: m.Cut().ExtraMinutes()},
	}

	switch cut := m.Cut().(type) {
	case *domain.DirectorCut:
		x.Cut.ChangesDescription = cut.ChangesDescription()
		x.Cut.AlternativeEnding = cut.AlternativeEnding()
	case *domain.ExtendedCut:
		x.Cut.ExtraScenes = cut.ExtraScenesDescription()
		x.Cut.AddedScenes = cut.AddedScenes()
	}

	if c, ok := m.Comedy(); ok {
		x.Genres.Comedy = &comedyXML{HumorType: c.HumorType()}
	}
	if h, ok := m.Horror(); ok {
		x.Genres.Horror = &horrorXML{BrutalityRating: h.BrutalityRating(), JumpScares: h.JumpScares()}
	}
	if r, ok := m.Romance(); ok {
		x.Genres.Romance = &romanceXML{Intensity: r.Intensity(), InappropriateScenes: r.InappropriateScenes()}
	}
	return x
}

func exportNewRelease(r *domain.NewRelease) newReleaseXML {
	return newReleaseXML{
		ID:           r.ID(),
		Movie:        refID(r.Movie()),
		Exclusive:    r.Exclusive(),
		PremiereDate: formatDate(r.PremiereDate()),
		Distributor:  r.Distributor(),
	}
}

func exportRerelease(r *domain.Rerelease) rereleaseXML {
	x := rereleaseXML{
		ID:     r.ID(),
		Movie:  refID(r.Movie()),
		Date:   formatDate(r.Date()),
		Reason: r.Reason(),
	}
	if remastered, ok := r.Remastered(); ok {
		x.Remastered = &remastered
	}
	return x
}

func exportScreening(s *domain.Screening) screeningXML {
	return screeningXML{
		ID:         s.ID(),
		Movie:      s.Movie().ID(),
		Auditorium: s.Auditorium().ID(),
		Status:     string(s.Status()),
		Date:       formatDate(s.Date()),
		Start:      formatClock(s.StartTime()),
		Format:     string(s.Format()),
		Version:    string(s.Version()),
	}
}

func exportTicket(t *domain.Ticket) ticketXML {
	return ticketXML{
		ID:        t.ID(),
		Screening: refID(t.Screening()),
		Seat:      t.SeatCode(),
		Status:    string(t.Status()),
		Payment:   string(t.PaymentType()),
		Price:     t.Price().String(),
		Reason:    t.Reason(),
	}
}

func exportReview(r *domain.ReviewPage) reviewXML {
	return reviewXML{
		ID:      r.ID(),
		Movie:   refID(r.Movie()),
		Ticket:  refID(r.Ticket()),
		Rate:    r.Rate(),
		Name:    r.Name(),
		Surname: r.Surname(),
		Comment: r.Comment(),
	}
}

func exportEmployee(e *domain.Employee) employeeXML {
	addr := e.Address()
	x := employeeXML{
		ID:          e.ID(),
		Status:      string(e.Status()),
		Name:        e.Name(),
		Surname:     e.Surname(),
		PESEL:       e.PESEL(),
		Email:       e.Email(),
		DateOfBirth: formatDate(e.DateOfBirth()),
		HireDate:    formatDate(e.HireDate()),
		Address: addressXML{
			Street:         addr.Street,
			BuildingNumber: addr.BuildingNumber,
			City:           addr.City,
			PostalCode:     addr.PostalCode,
			Country:        addr.Country,
		},
	}
	for _, c := range e.Cinemas() {
		x.Cinemas = append(x.Cinemas, refXML{Ref: c.ID()})
	}

	if w := e.Worker(); w != nil {
		x.Worker = &workerXML{
			Shift:       string(w.Shift()),
			WorkType:    string(w.WorkType()),
			HoursWorked: w.HoursWorked().String(),
			HourlyRate:  w.HourlyRate().String(),
		}
	}
	if m := e.Manager(); m != nil {
		x.Manager = &managerXML{
			Department:      m.Department(),
			BaseSalary:      m.BaseSalary().String(),
			BonusPercentage: m.BonusPercentage().String(),
		}
		if sup := m.Supervisor(); sup != nil {
			x.Manager.Supervisor = sup.Employee().ID()
		}
	}
	return x
}
