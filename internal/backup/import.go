package backup

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/marczakjulia/BYT-PROJECT/internal/domain"
	"github.com/marczakjulia/BYT-PROJECT/internal/store"
)

// importer rebuilds a graph from a document. Entities are created in
// dependency order and associations resolved by ID as they are met; manager
// supervision, which may point forward, is linked last.
type importer struct {
	cinemas     map[string]*domain.Cinema
	auditoriums map[string]*domain.Auditorium
	seats       map[string]*domain.Seat
	movies      map[string]*domain.Movie
	newReleases map[string]*domain.NewRelease
	rereleases  map[string]*domain.Rerelease
	screenings  map[string]*domain.Screening
	tickets     map[string]*domain.Ticket
	reviews     map[string]*domain.ReviewPage
	employees   map[string]*domain.Employee

	// Registration order, mirroring the document.
	order struct {
		cinemas     []*domain.Cinema
		auditoriums []*domain.Auditorium
		seats       []*domain.Seat
		movies      []*domain.Movie
		newReleases []*domain.NewRelease
		rereleases  []*domain.Rerelease
		screenings  []*domain.Screening
		tickets     []*domain.Ticket
		reviews     []*domain.ReviewPage
		employees   []*domain.Employee
	}
}

func newImporter() *importer {
	return &importer{
		cinemas:     make(map[string]*domain.Cinema),
		auditoriums: make(map[string]*domain.Auditorium),
		seats:       make(map[string]*domain.Seat),
		movies:      make(map[string]*domain.Movie),
		newReleases: make(map[string]*domain.NewRelease),
		rereleases:  make(map[string]*domain.Rerelease),
		screenings:  make(map[string]*domain.Screening),
		tickets:     make(map[string]*domain.Ticket),
		reviews:     make(map[string]*domain.ReviewPage),
		employees:   make(map[string]*domain.Employee),
	}
}

// Import rebuilds the document's graph and registers it in cat, which is
// expected to be empty. On error cat may hold a partial graph.
func Import(ctx context.Context, cat *store.Catalog, doc *Document) error {
	im := newImporter()

	steps := []struct {
		name string
		fn   func(*Entities) error
	}{
		{"cinemas", im.importCinemas},
		{"auditoriums", im.importAuditoriums},
		{"seats", im.importSeats},
		{"movies", im.importMovies},
		{"new releases", im.importNewReleases},
		{"rereleases", im.importRereleases},
		{"screenings", im.importScreenings},
		{"tickets", im.importTickets},
		{"reviews", im.importReviews},
		{"employees", im.importEmployees},
		{"supervisors", im.linkSupervisors},
	}

	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := step.fn(&doc.Entities); err != nil {
			return fmt.Errorf("import %s: %w", step.name, err)
		}
	}

	return im.register(ctx, cat)
}

func invalid(kind, id string, err error) error {
	return fmt.Errorf("%w: %s %s: %w", ErrInvalidDocument, kind, id, err)
}

func unknownRef(kind, id, refKind, ref string) error {
	return fmt.Errorf("%w: %s %s references unknown %s %q", ErrInvalidDocument, kind, id, refKind, ref)
}

func duplicate(kind, id string) error {
	return fmt.Errorf("%w: duplicate %s id %q", ErrInvalidDocument, kind, id)
}

func parseDecimal(kind, id, field, s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, invalid(kind, id, fmt.Errorf("%s: %w", field, err))
	}
	return d, nil
}

func (im *importer) importCinemas(e *Entities) error {
	for _, x := range e.Cinemas {
		if _, ok := im.cinemas[x.ID]; ok {
			return duplicate("cinema", x.ID)
		}
		c, err := domain.NewCinema(domain.CinemaParams{
			ID:           x.ID,
			Name:         x.Name,
			Address:      x.Address,
			Phone:        x.Phone,
			Email:        x.Email,
			OpeningHours: x.OpeningHours,
		})
		if err != nil {
			return invalid("cinema", x.ID, err)
		}
		im.cinemas[x.ID] = c
		im.order.cinemas = append(im.order.cinemas, c)
	}
	return nil
}

func (im *importer) importAuditoriums(e *Entities) error {
	for _, x := range e.Auditoriums {
		if _, ok := im.auditoriums[x.ID]; ok {
			return duplicate("auditorium", x.ID)
		}
		a, err := domain.NewAuditorium(domain.AuditoriumParams{
			ID:          x.ID,
			Name:        x.Name,
			ScreenType:  domain.ScreenType(x.ScreenType),
			SoundSystem: domain.SoundSystem(x.SoundSystem),
		})
		if err != nil {
			return invalid("auditorium", x.ID, err)
		}
		if x.Cinema != "" {
			c, ok := im.cinemas[x.Cinema]
			if !ok {
				return unknownRef("auditorium", x.ID, "cinema", x.Cinema)
			}
			if err := c.AddAuditorium(a); err != nil {
				return invalid("auditorium", x.ID, err)
			}
		}
		im.auditoriums[x.ID] = a
		im.order.auditoriums = append(im.order.auditoriums, a)
	}
	return nil
}

func (im *importer) importSeats(e *Entities) error {
	for _, x := range e.Seats {
		if _, ok := im.seats[x.ID]; ok {
			return duplicate("seat", x.ID)
		}
		s, err := domain.NewSeat(domain.SeatParams{ID: x.ID, Code: x.Code, Type: domain.SeatType(x.Type)})
		if err != nil {
			return invalid("seat", x.ID, err)
		}
		if x.Auditorium != "" {
			a, ok := im.auditoriums[x.Auditorium]
			if !ok {
				return unknownRef("seat", x.ID, "auditorium", x.Auditorium)
			}
			if err := a.AddSeat(s); err != nil {
				return invalid("seat", x.ID, err)
			}
		}
		im.seats[x.ID] = s
		im.order.seats = append(im.order.seats, s)
	}
	return nil
}

func (im *importer) importMovies(e *Entities) error {
	for _, x := range e.Movies {
		if _, ok := im.movies[x.ID]; ok {
			return duplicate("movie", x.ID)
		}
		cut, err := importCut(x.Cut)
		if err != nil {
			return invalid("movie", x.ID, err)
		}
		genres, err := importGenres(x.Genres)
		if err != nil {
			return invalid("movie", x.ID, err)
		}
		m, err := domain.NewMovie(domain.MovieParams{
			ID:             x.ID,
			Title:          x.Title,
			Country:        x.Country,
			Description:    x.Description,
			Director:       x.Director,
			Length:         x.Length,
			AgeRestriction: domain.AgeRestriction(x.AgeRestriction),
		}, cut, genres...)
		if err != nil {
			return invalid("movie", x.ID, err)
		}
		im.movies[x.ID] = m
		im.order.movies = append(im.order.movies, m)
	}
	return nil
}

func importCut(x cutXML) (domain.CutType, error) {
	switch domain.CutKind(x.Kind) {
	case domain.CutNormal:
		return domain.NormalCut{}, nil
	case domain.CutDirector:
		return domain.NewDirectorCut(domain.DirectorCutParams{
			ExtraMinutes:       x.ExtraMinutes,
			ChangesDescription: x.ChangesDescription,
			AlternativeEnding:  x.AlternativeEnding,
		})
	case domain.CutExtended:
		return domain.NewExtendedCut(domain.ExtendedCutParams{
			ExtraMinutes:           x.ExtraMinutes,
			ExtraScenesDescription: x.ExtraScenes,
			AddedScenes:            x.AddedScenes,
		})
	default:
		return nil, fmt.Errorf("unknown cut kind %q", x.Kind)
	}
}

func importGenres(x genresXML) ([]domain.Genre, error) {
	var genres []domain.Genre
	if x.Comedy != nil {
		c, err := domain.NewComedy(x.Comedy.HumorType)
		if err != nil {
			return nil, err
		}
		genres = append(genres, c)
	}
	if x.Horror != nil {
		h, err := domain.NewHorror(domain.HorrorParams{
			BrutalityRating: x.Horror.BrutalityRating,
			JumpScares:      x.Horror.JumpScares,
		})
		if err != nil {
			return nil, err
		}
		genres = append(genres, h)
	}
	if x.Romance != nil {
		r, err := domain.NewRomance(domain.RomanceParams{
			Intensity:           x.Romance.Intensity,
			InappropriateScenes: x.Romance.InappropriateScenes,
		})
		if err != nil {
			return nil, err
		}
		genres = append(genres, r)
	}
	return genres, nil
}

func (im *importer) importNewReleases(e *Entities) error {
	for _, x := range e.NewReleases {
		if _, ok := im.newReleases[x.ID]; ok {
			return duplicate("new release", x.ID)
		}
		premiere, err := parseDate("premiereDate", x.PremiereDate, time.UTC)
		if err != nil {
			return err
		}
		r, err := domain.NewNewRelease(domain.NewReleaseParams{
			ID:           x.ID,
			Exclusive:    x.Exclusive,
			PremiereDate: premiere,
			Distributor:  x.Distributor,
		})
		if err != nil {
			return invalid("new release", x.ID, err)
		}
		if x.Movie != "" {
			m, ok := im.movies[x.Movie]
			if !ok {
				return unknownRef("new release", x.ID, "movie", x.Movie)
			}
			if err := m.SetNewRelease(r); err != nil {
				return invalid("new release", x.ID, err)
			}
		}
		im.newReleases[x.ID] = r
		im.order.newReleases = append(im.order.newReleases, r)
	}
	return nil
}

func (im *importer) importRereleases(e *Entities) error {
	for _, x := range e.Rereleases {
		if _, ok := im.rereleases[x.ID]; ok {
			return duplicate("rerelease", x.ID)
		}
		date, err := parseDate("date", x.Date, time.UTC)
		if err != nil {
			return err
		}
		r, err := domain.NewRerelease(domain.RereleaseParams{
			ID:         x.ID,
			Reason:     x.Reason,
			Date:       date,
			Remastered: x.Remastered,
		})
		if err != nil {
			return invalid("rerelease", x.ID, err)
		}
		if x.Movie != "" {
			m, ok := im.movies[x.Movie]
			if !ok {
				return unknownRef("rerelease", x.ID, "movie", x.Movie)
			}
			if err := m.SetRerelease(r); err != nil {
				return invalid("rerelease", x.ID, err)
			}
		}
		im.rereleases[x.ID] = r
		im.order.rereleases = append(im.order.rereleases, r)
	}
	return nil
}

func (im *importer) importScreenings(e *Entities) error {
	for _, x := range e.Screenings {
		if _, ok := im.screenings[x.ID]; ok {
			return duplicate("screening", x.ID)
		}
		m, ok := im.movies[x.Movie]
		if !ok {
			return unknownRef("screening", x.ID, "movie", x.Movie)
		}
		a, ok := im.auditoriums[x.Auditorium]
		if !ok {
			return unknownRef("screening", x.ID, "auditorium", x.Auditorium)
		}
		date, err := parseDate("date", x.Date, time.Local)
		if err != nil {
			return err
		}
		start, err := parseClock("start", x.Start)
		if err != nil {
			return err
		}
		s, err := domain.RestoreScreening(domain.ScreeningParams{
			ID:        x.ID,
			Date:      date,
			StartTime: start,
			Format:    domain.ScreeningFormat(x.Format),
			Version:   domain.ScreeningVersion(x.Version),
		}, domain.ScreeningStatus(x.Status), m, a)
		if err != nil {
			return invalid("screening", x.ID, err)
		}
		im.screenings[x.ID] = s
		im.order.screenings = append(im.order.screenings, s)
	}
	return nil
}

func (im *importer) importTickets(e *Entities) error {
	for _, x := range e.Tickets {
		if _, ok := im.tickets[x.ID]; ok {
			return duplicate("ticket", x.ID)
		}
		price, err := parseDecimal("ticket", x.ID, "price", x.Price)
		if err != nil {
			return err
		}
		t, err := domain.RestoreTicket(domain.TicketState{
			ID:          x.ID,
			Price:       price,
			Status:      domain.TicketStatus(x.Status),
			PaymentType: domain.PaymentType(x.Payment),
			Reason:      x.Reason,
		})
		if err != nil {
			return invalid("ticket", x.ID, err)
		}
		if x.Screening != "" {
			s, ok := im.screenings[x.Screening]
			if !ok {
				return unknownRef("ticket", x.ID, "screening", x.Screening)
			}
			if err := s.AddTicket(x.Seat, t); err != nil {
				return invalid("ticket", x.ID, err)
			}
		}
		im.tickets[x.ID] = t
		im.order.tickets = append(im.order.tickets, t)
	}
	return nil
}

func (im *importer) importReviews(e *Entities) error {
	for _, x := range e.Reviews {
		if _, ok := im.reviews[x.ID]; ok {
			return duplicate("review", x.ID)
		}
		var m *domain.Movie
		if x.Movie != "" {
			var ok bool
			if m, ok = im.movies[x.Movie]; !ok {
				return unknownRef("review", x.ID, "movie", x.Movie)
			}
		}
		r, err := domain.RestoreReviewPage(domain.ReviewParams{
			ID:      x.ID,
			Name:    x.Name,
			Surname: x.Surname,
			Rate:    x.Rate,
			Comment: x.Comment,
		}, m)
		if err != nil {
			return invalid("review", x.ID, err)
		}
		if x.Ticket != "" {
			t, ok := im.tickets[x.Ticket]
			if !ok {
				return unknownRef("review", x.ID, "ticket", x.Ticket)
			}
			if err := r.SetTicket(t); err != nil {
				return invalid("review", x.ID, err)
			}
		}
		im.reviews[x.ID] = r
		im.order.reviews = append(im.order.reviews, r)
	}
	return nil
}

func (im *importer) importEmployees(e *Entities) error {
	for _, x := range e.Employees {
		if _, ok := im.employees[x.ID]; ok {
			return duplicate("employee", x.ID)
		}

		p, err := employeeParams(x)
		if err != nil {
			return err
		}

		cinemas := make([]*domain.Cinema, 0, len(x.Cinemas))
		for _, ref := range x.Cinemas {
			c, ok := im.cinemas[ref.Ref]
			if !ok {
				return unknownRef("employee", x.ID, "cinema", ref.Ref)
			}
			cinemas = append(cinemas, c)
		}

		var emp *domain.Employee
		switch {
		case x.Worker != nil && x.Manager != nil:
			return invalid("employee", x.ID, errors.New("holds both worker and manager roles"))
		case x.Worker != nil:
			wp, err := workerParams(x.ID, x.Worker)
			if err != nil {
				return err
			}
			emp, err = domain.NewWorkerEmployee(p, wp, cinemas...)
			if err != nil {
				return invalid("employee", x.ID, err)
			}
		case x.Manager != nil:
			mp, err := managerParams(x.ID, x.Manager)
			if err != nil {
				return err
			}
			emp, err = domain.NewManagerEmployee(p, mp, cinemas...)
			if err != nil {
				return invalid("employee", x.ID, err)
			}
		default:
			return invalid("employee", x.ID, errors.New("has no role"))
		}

		im.employees[x.ID] = emp
		im.order.employees = append(im.order.employees, emp)
	}
	return nil
}

func employeeParams(x employeeXML) (domain.EmployeeParams, error) {
	born, err := parseDate("dateOfBirth", x.DateOfBirth, time.UTC)
	if err != nil {
		return domain.EmployeeParams{}, err
	}
	hired, err := parseDate("hireDate", x.HireDate, time.UTC)
	if err != nil {
		return domain.EmployeeParams{}, err
	}
	return domain.EmployeeParams{
		ID:          x.ID,
		Name:        x.Name,
		Surname:     x.Surname,
		PESEL:       x.PESEL,
		Email:       x.Email,
		DateOfBirth: born,
		HireDate:    hired,
		Address: domain.Address{
			Street:         x.Address.Street,
			BuildingNumber: x.Address.BuildingNumber,
			City:           x.Address.City,
			PostalCode:     x.Address.PostalCode,
			Country:        x.Address.Country,
		},
		Status: domain.EmployeeStatus(x.Status),
	}, nil
}

func workerParams(id string, x *workerXML) (domain.WorkerParams, error) {
	hours, err := parseDecimal("employee", id, "hoursWorked", x.HoursWorked)
	if err != nil {
		return domain.WorkerParams{}, err
	}
	rate, err := parseDecimal("employee", id, "hourlyRate", x.HourlyRate)
	if err != nil {
		return domain.WorkerParams{}, err
	}
	return domain.WorkerParams{
		Shift:       domain.ShiftType(x.Shift),
		WorkType:    domain.WorkType(x.WorkType),
		HoursWorked: hours,
		HourlyRate:  rate,
	}, nil
}

func managerParams(id string, x *managerXML) (domain.ManagerParams, error) {
	base, err := parseDecimal("employee", id, "baseSalary", x.BaseSalary)
	if err != nil {
		return domain.ManagerParams{}, err
	}
	bonus, err := parseDecimal("employee", id, "bonusPercentage", x.BonusPercentage)
	if err != nil {
		return domain.ManagerParams{}, err
	}
	return domain.ManagerParams{
		Department:      x.Department,
		BaseSalary:      base,
		BonusPercentage: bonus,
	}, nil
}

func (im *importer) linkSupervisors(e *Entities) error {
	for _, x := range e.Employees {
		if x.Manager == nil || x.Manager.Supervisor == "" {
			continue
		}
		sup, ok := im.employees[x.Manager.Supervisor]
		if !ok {
			return unknownRef("employee", x.ID, "supervisor", x.Manager.Supervisor)
		}
		if sup.Manager() == nil {
			return invalid("employee", x.ID, fmt.Errorf("supervisor %s is not a manager", x.Manager.Supervisor))
		}
		if err := im.employees[x.ID].Manager().SetSupervisor(sup.Manager()); err != nil {
			return invalid("employee", x.ID, err)
		}
	}
	return nil
}

// register adds the rebuilt graph to the catalog in dependency order.
func (im *importer) register(ctx context.Context, cat *store.Catalog) error {
	adders := []func() error{
		func() error { return addAll(cat.Cinemas, im.order.cinemas) },
		func() error { return addAll(cat.Auditoriums, im.order.auditoriums) },
		func() error { return addAll(cat.Seats, im.order.seats) },
		func() error {
			for _, m := range im.order.movies {
				if err := cat.RegisterMovie(ctx, m); err != nil {
					return err
				}
			}
			return nil
		},
		func() error { return addAll(cat.NewReleases, im.order.newReleases) },
		func() error { return addAll(cat.Rereleases, im.order.rereleases) },
		func() error { return addAll(cat.Screenings, im.order.screenings) },
		func() error { return addAll(cat.Tickets, im.order.tickets) },
		func() error { return addAll(cat.Reviews, im.order.reviews) },
		func() error { return addAll(cat.Employees, im.order.employees) },
	}

	for _, add := range adders {
		if err := add(); err != nil {
			return fmt.Errorf("register graph: %w", err)
		}
	}
	return nil
}

func addAll[T store.Identifiable](ext *store.Extent[T], items []T) error {
	for _, item := range items {
		if err := ext.Add(item); err != nil {
			return err
		}
	}
	return nil
}
