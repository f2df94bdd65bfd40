package domain

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// fixedNow pins the package clock for the duration of a test.
func fixedNow(t *testing.T, at time.Time) {
	t.Helper()
	prev := now
	now = func() time.Time { return at }
	t.Cleanup(func() { now = prev })
}

func newTestCinema(t *testing.T, name string) *Cinema {
	t.Helper()
	c, err := NewCinema(CinemaParams{
		ID:           "cin-" + name,
		Name:         name,
		Address:      "Koszykowa 86, Warszawa",
		Phone:        "+48 22 000 00 00",
		Email:        "office@" + name + ".pl",
		OpeningHours: "10:00-23:00",
	})
	require.NoError(t, err)
	return c
}

func newTestSeat(t *testing.T, code string) *Seat {
	t.Helper()
	s, err := NewSeat(SeatParams{ID: "seat-" + code, Code: code, Type: SeatTypeNormal})
	require.NoError(t, err)
	return s
}

// newTestAuditorium creates an auditorium with seats 01A, 02A, ...
func newTestAuditorium(t *testing.T, name string, seats int) *Auditorium {
	t.Helper()
	a, err := NewAuditorium(AuditoriumParams{
		ID:          "aud-" + name,
		Name:        name,
		ScreenType:  ScreenType2D,
		SoundSystem: SoundSystemDolbyAtmos,
	})
	require.NoError(t, err)
	for i := 1; i <= seats; i++ {
		require.NoError(t, a.AddSeat(newTestSeat(t, fmt.Sprintf("%02dA", i))))
	}
	return a
}

func newTestComedy(t *testing.T) *Comedy {
	t.Helper()
	c, err := NewComedy("slapstick")
	require.NoError(t, err)
	return c
}

func newTestMovie(t *testing.T, title string) *Movie {
	t.Helper()
	m, err := NewMovie(MovieParams{
		ID:          "mov-" + title,
		Title:       title,
		Country:     "Poland",
		Description: "A test movie",
		Director:    "Andrzej Wajda",
		Length:      120,
	}, nil, newTestComedy(t))
	require.NoError(t, err)
	return m
}

func tomorrow() time.Time {
	return time.Now().AddDate(0, 0, 1)
}

func newTestScreening(t *testing.T, m *Movie, a *Auditorium) *Screening {
	t.Helper()
	s, err := NewScreening(ScreeningParams{
		ID:        "scr-" + m.Title() + "-" + a.Name(),
		Date:      tomorrow(),
		StartTime: 18 * time.Hour,
		Format:    ScreeningFormat2D,
		Version:   ScreeningVersionSubtitles,
	}, m, a)
	require.NoError(t, err)
	return s
}

// newTicketedScreening returns a screening in a 12-seat auditorium with
// tickets issued at 25.00.
func newTicketedScreening(t *testing.T) *Screening {
	t.Helper()
	s := newTestScreening(t, newTestMovie(t, "Rejs"), newTestAuditorium(t, "Sala 1", 12))
	_, err := s.CreateTickets(decimal.RequireFromString("25.00"))
	require.NoError(t, err)
	return s
}

func testEmployeeParams(id string) EmployeeParams {
	return EmployeeParams{
		ID:          id,
		Name:        "Anna",
		Surname:     "Nowak",
		PESEL:       "90010112345",
		Email:       id + "@cinema.pl",
		DateOfBirth: time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
		HireDate:    time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC),
		Address: Address{
			Street:         "Marszałkowska",
			BuildingNumber: "10",
			City:           "Warszawa",
			PostalCode:     "00-001",
			Country:        "Poland",
		},
		Status: EmployeeWorking,
	}
}

func testWorkerParams() WorkerParams {
	return WorkerParams{
		Shift:       ShiftMorning,
		WorkType:    WorkCashier,
		HoursWorked: decimal.RequireFromString("10"),
		HourlyRate:  decimal.RequireFromString("30.50"),
	}
}

func testManagerParams() ManagerParams {
	return ManagerParams{
		Department:      "Operations",
		BaseSalary:      decimal.RequireFromString("8000"),
		BonusPercentage: decimal.RequireFromString("0.10"),
	}
}

func newTestWorker(t *testing.T, id string, cinemas ...*Cinema) *Employee {
	t.Helper()
	e, err := NewWorkerEmployee(testEmployeeParams(id), testWorkerParams(), cinemas...)
	require.NoError(t, err)
	return e
}

func newTestManager(t *testing.T, id string, cinemas ...*Cinema) *Manager {
	t.Helper()
	e, err := NewManagerEmployee(testEmployeeParams(id), testManagerParams(), cinemas...)
	require.NoError(t, err)
	return e.Manager()
}

func newTestReview(t *testing.T, id string, m *Movie, rate int) *ReviewPage {
	t.Helper()
	r, err := NewReviewPage(ReviewParams{ID: id, Name: "Jan", Surname: "Kowalski", Rate: rate}, m)
	require.NoError(t, err)
	return r
}
