package domain

import (
	"slices"
	"strings"
	"time"

	domainerrors "github.com/marczakjulia/BYT-PROJECT/internal/errors"
)

// AuditoriumParams holds the attributes of a new auditorium.
type AuditoriumParams struct {
	ID          string      `json:"id" validate:"notblank"`
	Name        string      `json:"name" validate:"notblank"`
	ScreenType  ScreenType  `json:"screen_type" validate:"enum"`
	SoundSystem SoundSystem `json:"sound_system" validate:"enum"`
}

// Auditorium is a screening room. It owns its seats, belongs to at most one
// cinema and hosts any number of screenings.
//
// An auditorium may be built up seat by seat from zero, but tickets can only
// be issued once it holds MinAuditoriumSeats seats, and seats cannot be
// removed below that floor.
type Auditorium struct {
	id          string
	name        string
	screenType  ScreenType
	soundSystem SoundSystem
	seats       []*Seat
	cinema      *Cinema
	screenings  []*Screening
}

// NewAuditorium creates an empty auditorium not attached to any cinema.
func NewAuditorium(p AuditoriumParams) (*Auditorium, error) {
	p.ID = strings.TrimSpace(p.ID)
	p.Name = strings.TrimSpace(p.Name)
	if err := validate.Validate(p); err != nil {
		return nil, err
	}
	return &Auditorium{
		id:          p.ID,
		name:        p.Name,
		screenType:  p.ScreenType,
		soundSystem: p.SoundSystem,
	}, nil
}

func (a *Auditorium) ID() string               { return a.id }
func (a *Auditorium) Name() string             { return a.name }
func (a *Auditorium) ScreenType() ScreenType   { return a.screenType }
func (a *Auditorium) SoundSystem() SoundSystem { return a.soundSystem }
func (a *Auditorium) Cinema() *Cinema          { return a.cinema }

// SetName renames the auditorium.
func (a *Auditorium) SetName(name string) error {
	name = strings.TrimSpace(name)
	if err := validate.Var("name", name, "notblank"); err != nil {
		return err
	}
	a.name = name
	return nil
}

// SetScreenType changes the projection technology.
func (a *Auditorium) SetScreenType(t ScreenType) error {
	if err := validate.Var("screen_type", t, "enum"); err != nil {
		return err
	}
	a.screenType = t
	return nil
}

// SetSoundSystem changes the audio setup.
func (a *Auditorium) SetSoundSystem(s SoundSystem) error {
	if err := validate.Var("sound_system", s, "enum"); err != nil {
		return err
	}
	a.soundSystem = s
	return nil
}

// Seats returns the auditorium's seats in the order they were added.
func (a *Auditorium) Seats() []*Seat {
	return slices.Clone(a.seats)
}

// SeatCount returns the number of seats.
func (a *Auditorium) SeatCount() int {
	return len(a.seats)
}

// Seat looks a seat up by its code.
func (a *Auditorium) Seat(code string) (*Seat, bool) {
	for _, s := range a.seats {
		if s.code == code {
			return s, true
		}
	}
	return nil, false
}

// AddSeat places seat in the auditorium. Adding a seat that is already here
// is a no-op. A seat held by another auditorium, or one whose code is taken,
// is rejected.
func (a *Auditorium) AddSeat(seat *Seat) error {
	if seat == nil {
		return domainerrors.InvalidArgument("seat is required")
	}
	if seat.auditorium == a {
		return nil
	}
	if seat.auditorium != nil {
		return domainerrors.InvalidOperationf("seat %s already belongs to auditorium %s", seat.code, seat.auditorium.name)
	}
	if _, taken := a.Seat(seat.code); taken {
		return domainerrors.InvalidOperationf("auditorium %s already has a seat %s", a.name, seat.code)
	}

	a.seats = append(a.seats, seat)
	seat.auditorium = a
	return nil
}

// RemoveSeat takes seat out of the auditorium. A seat that is not here is
// ignored. Removing is refused once the auditorium is at the seat floor and
// while any screening here still holds a ticket for the seat.
func (a *Auditorium) RemoveSeat(seat *Seat) error {
	if seat == nil {
		return domainerrors.InvalidArgument("seat is required")
	}
	if seat.auditorium != a {
		return nil
	}
	for _, s := range a.screenings {
		if _, ok := s.tickets[seat.code]; ok {
			return domainerrors.InvalidOperationf("cannot remove seat %s: screening %s has a ticket for it", seat.code, s.id)
		}
	}
	if len(a.seats) <= MinAuditoriumSeats {
		return domainerrors.InvalidOperationf("cannot remove seat: auditorium must have at least %d seats", MinAuditoriumSeats)
	}

	a.seats, _ = removeItem(a.seats, seat)
	seat.auditorium = nil
	return nil
}

// SetCinema attaches the auditorium to c. See Cinema.AddAuditorium.
func (a *Auditorium) SetCinema(c *Cinema) error {
	if c == nil {
		return domainerrors.InvalidArgument("cinema is required")
	}
	return c.AddAuditorium(a)
}

// RemoveCinema detaches the auditorium from its cinema, if any.
func (a *Auditorium) RemoveCinema() {
	if a.cinema == nil {
		return
	}
	a.cinema.RemoveAuditorium(a)
}

// Screenings returns the screenings hosted here.
func (a *Auditorium) Screenings() []*Screening {
	return slices.Clone(a.screenings)
}

// AddScreening moves s into this auditorium. See Screening.SetAuditorium.
func (a *Auditorium) AddScreening(s *Screening) error {
	if s == nil {
		return domainerrors.InvalidArgument("screening is required")
	}
	return s.SetAuditorium(a)
}

// RemoveScreening detaches s from both this auditorium and its movie, since
// a screening cannot keep only one of them. Unknown screenings are ignored.
func (a *Auditorium) RemoveScreening(s *Screening) {
	if s == nil || s.auditorium != a {
		return
	}
	s.Detach()
}

// IsAvailable reports whether no active screening here overlaps the window
// [start, start+d). Canceled and finished screenings do not block.
func (a *Auditorium) IsAvailable(start time.Time, d time.Duration) bool {
	end := start.Add(d)
	for _, s := range a.screenings {
		if s.status == ScreeningCanceled || s.status == ScreeningFinished {
			continue
		}
		if start.Before(s.EndsAt()) && s.StartsAt().Before(end) {
			return false
		}
	}
	return true
}
