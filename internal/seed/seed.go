// Package seed provides a default demo graph: two cinemas, three
// auditoriums, a small repertoire with screenings and a staff hierarchy.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/marczakjulia/BYT-PROJECT/internal/domain"
	"github.com/marczakjulia/BYT-PROJECT/internal/id"
	"github.com/marczakjulia/BYT-PROJECT/internal/normalize"
	"github.com/marczakjulia/BYT-PROJECT/internal/store"
)

// AuditoriumSeed defines an auditorium and its seat rows.
type AuditoriumSeed struct {
	Name        string
	ScreenType  domain.ScreenType
	SoundSystem domain.SoundSystem
	Rows        []string // row letters
	PerRow      int
	VIPRows     []string
}

// CinemaSeed defines a cinema and its auditoriums.
type CinemaSeed struct {
	Params      domain.CinemaParams
	Auditoriums []AuditoriumSeed
}

// DefaultCinemas is the default venue list.
var DefaultCinemas = []CinemaSeed{
	{
		Params: domain.CinemaParams{
			Name:         "Kino Muranów",
			Address:      "Gen. Andersa 5, 00-147 Warszawa",
			Phone:        "+48 22 635 30 78",
			Email:        "kino@muranow.pl",
			OpeningHours: "10:00-23:30",
		},
		Auditoriums: []AuditoriumSeed{
			{Name: "Sala Kieślowskiego", ScreenType: domain.ScreenType2D, SoundSystem: domain.SoundSystemDolbyAtmos, Rows: []string{"A", "B"}, PerRow: 6, VIPRows: []string{"B"}},
			{Name: "Sala Wajdy", ScreenType: domain.ScreenTypeIMAX, SoundSystem: domain.SoundSystemDTS, Rows: []string{"A", "B"}, PerRow: 7},
		},
	},
	{
		Params: domain.CinemaParams{
			Name:         "Kino Pod Baranami",
			Address:      "Rynek Główny 27, 31-010 Kraków",
			Phone:        "+48 12 423 07 68",
			Email:        "kino@podbaranami.pl",
			OpeningHours: "11:00-23:00",
		},
		Auditoriums: []AuditoriumSeed{
			{Name: "Sala Czerwona", ScreenType: domain.ScreenType2D, SoundSystem: domain.SoundSystemStereo, Rows: []string{"A", "B", "C"}, PerRow: 4},
		},
	},
}

// Result lists the seeded entities callers usually act on next.
type Result struct {
	Cinemas    []*domain.Cinema
	Movies     []*domain.Movie
	Screenings []*domain.Screening
	Employees  []*domain.Employee
}

// Populate registers the default graph in cat. Screenings are scheduled from
// the day after now and get tickets at price; a few are sold and one is
// reviewed.
func Populate(ctx context.Context, cat *store.Catalog, now time.Time, price decimal.Decimal) (*Result, error) {
	res := &Result{}

	var auditoriums []*domain.Auditorium
	for _, cs := range DefaultCinemas {
		c, auds, err := buildCinema(cs)
		if err != nil {
			return nil, fmt.Errorf("seed cinema %s: %w", cs.Params.Name, err)
		}
		if err := cat.RegisterCinema(c); err != nil {
			return nil, err
		}
		res.Cinemas = append(res.Cinemas, c)
		auditoriums = append(auditoriums, auds...)
	}

	movies, err := buildMovies()
	if err != nil {
		return nil, fmt.Errorf("seed movies: %w", err)
	}
	for _, m := range movies {
		if err := cat.RegisterMovie(ctx, m); err != nil {
			return nil, err
		}
	}
	res.Movies = movies

	tomorrow := now.AddDate(0, 0, 1)
	plan := []struct {
		movie      *domain.Movie
		auditorium *domain.Auditorium
		day        time.Time
		start      time.Duration
		format     domain.ScreeningFormat
		version    domain.ScreeningVersion
	}{
		{movies[0], auditoriums[0], tomorrow, 18 * time.Hour, domain.ScreeningFormat2D, domain.ScreeningVersionOriginal},
		{movies[1], auditoriums[1], tomorrow, 21*time.Hour + 30*time.Minute, domain.ScreeningFormatIMAX, domain.ScreeningVersionSubtitles},
		{movies[2], auditoriums[2], tomorrow.AddDate(0, 0, 1), 19 * time.Hour, domain.ScreeningFormat2D, domain.ScreeningVersionLector},
	}
	for _, p := range plan {
		s, err := domain.NewScreening(domain.ScreeningParams{
			ID:        id.MustGenerate(id.Screening),
			Date:      p.day,
			StartTime: p.start,
			Format:    p.format,
			Version:   p.version,
		}, p.movie, p.auditorium)
		if err != nil {
			return nil, fmt.Errorf("seed screening of %s: %w", p.movie.Title(), err)
		}
		if err := cat.RegisterScreening(s); err != nil {
			return nil, err
		}
		if _, err := cat.CreateTickets(s, price); err != nil {
			return nil, err
		}
		res.Screenings = append(res.Screenings, s)
	}

	if err := sellAndReview(cat, res.Screenings[0]); err != nil {
		return nil, err
	}

	employees, err := buildStaff(res.Cinemas)
	if err != nil {
		return nil, fmt.Errorf("seed staff: %w", err)
	}
	for _, e := range employees {
		if err := cat.RegisterEmployee(e); err != nil {
			return nil, err
		}
	}
	res.Employees = employees

	return res, nil
}

func buildCinema(cs CinemaSeed) (*domain.Cinema, []*domain.Auditorium, error) {
	p := cs.Params
	p.ID = id.MustGenerate(id.Cinema)
	c, err := domain.NewCinema(p)
	if err != nil {
		return nil, nil, err
	}

	var auds []*domain.Auditorium
	for _, as := range cs.Auditoriums {
		a, err := domain.NewAuditorium(domain.AuditoriumParams{
			ID:          id.MustGenerate(id.Auditorium),
			Name:        as.Name,
			ScreenType:  as.ScreenType,
			SoundSystem: as.SoundSystem,
		})
		if err != nil {
			return nil, nil, err
		}
		for _, row := range as.Rows {
			seatType := domain.SeatTypeNormal
			for _, vip := range as.VIPRows {
				if vip == row {
					seatType = domain.SeatTypeVIP
				}
			}
			for n := 1; n <= as.PerRow; n++ {
				s, err := domain.NewSeat(domain.SeatParams{
					ID:   id.MustGenerate(id.Seat),
					Code: fmt.Sprintf("%02d%s", n, row),
					Type: seatType,
				})
				if err != nil {
					return nil, nil, err
				}
				if err := a.AddSeat(s); err != nil {
					return nil, nil, err
				}
			}
		}
		if err := c.AddAuditorium(a); err != nil {
			return nil, nil, err
		}
		auds = append(auds, a)
	}
	return c, auds, nil
}

func buildMovies() ([]*domain.Movie, error) {
	comedy, err := domain.NewComedy("absurdist satire")
	if err != nil {
		return nil, err
	}
	rejs, err := domain.NewMovie(domain.MovieParams{
		ID:             id.MustGenerate(id.Movie),
		Title:          "Rejs",
		Country:        "Poland",
		Description:    "A stowaway becomes the cultural officer of a Vistula river cruise.",
		Director:       "Marek Piwowski",
		Length:         67,
		AgeRestriction: domain.AgeRestrictionG,
	}, nil, comedy)
	if err != nil {
		return nil, err
	}
	remastered := true
	rr, err := domain.NewRerelease(domain.RereleaseParams{
		ID:         id.MustGenerate(id.Rerelease),
		Reason:     "4K restoration",
		Date:       time.Date(2020, 10, 2, 0, 0, 0, 0, time.UTC),
		Remastered: &remastered,
	})
	if err != nil {
		return nil, err
	}
	if err := rejs.SetRerelease(rr); err != nil {
		return nil, err
	}

	horror, err := domain.NewHorror(domain.HorrorParams{BrutalityRating: 8, JumpScares: []string{"the cellar", "the stable"}})
	if err != nil {
		return nil, err
	}
	cut, err := domain.NewDirectorCut(domain.DirectorCutParams{
		ExtraMinutes:       12,
		ChangesDescription: "Restored interrogation scenes",
	})
	if err != nil {
		return nil, err
	}
	domZly, err := domain.NewMovie(domain.MovieParams{
		ID:             id.MustGenerate(id.Movie),
		Title:          "Dom zły",
		Country:        "Poland",
		Description:    "A stormy night at a remote farmhouse ends in murder.",
		Director:       "Wojciech Smarzowski",
		Length:         105,
		AgeRestriction: domain.AgeRestrictionPG18,
	}, cut, horror)
	if err != nil {
		return nil, err
	}
	nr, err := domain.NewNewRelease(domain.NewReleaseParams{
		ID:           id.MustGenerate(id.NewRelease),
		Exclusive:    true,
		PremiereDate: time.Date(2026, 11, 6, 0, 0, 0, 0, time.UTC),
		Distributor:  "Kino Świat",
	})
	if err != nil {
		return nil, err
	}
	if err := domZly.SetNewRelease(nr); err != nil {
		return nil, err
	}

	romance, err := domain.NewRomance(domain.RomanceParams{Intensity: 4})
	if err != nil {
		return nil, err
	}
	bittersweet, err := domain.NewComedy("bittersweet")
	if err != nil {
		return nil, err
	}
	extended, err := domain.NewExtendedCut(domain.ExtendedCutParams{
		ExtraMinutes:           58,
		ExtraScenesDescription: "Television series material",
		AddedScenes:            []string{"the harvest", "the wedding in Serbinów"},
	})
	if err != nil {
		return nil, err
	}
	noce, err := domain.NewMovie(domain.MovieParams{
		ID:             id.MustGenerate(id.Movie),
		Title:          "Noce i dnie",
		Country:        "Poland",
		Description:    "Four decades of a marriage on a country estate.",
		Director:       "Jerzy Antczak",
		Length:         150,
		AgeRestriction: domain.AgeRestrictionPG13,
	}, extended, romance, bittersweet)
	if err != nil {
		return nil, err
	}

	return []*domain.Movie{rejs, domZly, noce}, nil
}

func sellAndReview(cat *store.Catalog, s *domain.Screening) error {
	sales := []struct {
		seat    string
		payment domain.PaymentType
	}{
		{"01A", domain.PaymentBlik},
		{"02A", domain.PaymentCreditCard},
		{"03B", domain.PaymentCash},
	}
	for _, sale := range sales {
		t, ok := s.Ticket(sale.seat)
		if !ok {
			return fmt.Errorf("seed: no ticket for seat %s", sale.seat)
		}
		if err := t.Sell(sale.payment); err != nil {
			return err
		}
	}

	t, _ := s.Ticket("01A")
	r, err := domain.NewReviewPage(domain.ReviewParams{
		ID:      id.MustGenerate(id.Review),
		Name:    "Zofia",
		Surname: "Maj",
		Rate:    9,
		Comment: "Still the funniest ninety minutes on the Vistula.",
	}, s.Movie())
	if err != nil {
		return err
	}
	if err := r.SetTicket(t); err != nil {
		return err
	}
	return cat.RegisterReview(r)
}

func buildStaff(cinemas []*domain.Cinema) ([]*domain.Employee, error) {
	person := func(name, surname, pesel string, born, hired time.Time, city string) domain.EmployeeParams {
		return domain.EmployeeParams{
			ID:          id.MustGenerate(id.Employee),
			Name:        name,
			Surname:     surname,
			PESEL:       pesel,
			Email:       fmt.Sprintf("%s.%s@kina.pl", normalize.Slugify(name), normalize.Slugify(surname)),
			DateOfBirth: born,
			HireDate:    hired,
			Address: domain.Address{
				Street:         "Marszałkowska",
				BuildingNumber: "84",
				City:           city,
				PostalCode:     "00-514",
				Country:        "Poland",
			},
			Status: domain.EmployeeWorking,
		}
	}
	date := func(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }

	director, err := domain.NewManagerEmployee(
		person("Anna", "Nowak", "78030412345", date(1978, 3, 4), date(2009, 9, 1), "Warszawa"),
		domain.ManagerParams{
			Department:      "Programming",
			BaseSalary:      decimal.RequireFromString("14500"),
			BonusPercentage: decimal.RequireFromString("0.20"),
		},
		cinemas...)
	if err != nil {
		return nil, err
	}

	floor, err := domain.NewManagerEmployee(
		person("Piotr", "Zieliński", "88111223456", date(1988, 11, 12), date(2016, 2, 15), "Kraków"),
		domain.ManagerParams{
			Department:      "Front of house",
			BaseSalary:      decimal.RequireFromString("9200"),
			BonusPercentage: decimal.RequireFromString("0.10"),
		},
		cinemas[1])
	if err != nil {
		return nil, err
	}
	if err := floor.Manager().SetSupervisor(director.Manager()); err != nil {
		return nil, err
	}

	cashier, err := domain.NewWorkerEmployee(
		person("Jan", "Wiśniewski", "99010134567", date(1999, 1, 1), date(2023, 6, 1), "Warszawa"),
		domain.WorkerParams{
			Shift:       domain.ShiftEvening,
			WorkType:    domain.WorkCashier,
			HoursWorked: decimal.RequireFromString("64"),
			HourlyRate:  decimal.RequireFromString("31.40"),
		},
		cinemas[0])
	if err != nil {
		return nil, err
	}

	return []*domain.Employee{director, floor, cashier}, nil
}
