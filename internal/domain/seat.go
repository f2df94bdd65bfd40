package domain

import (
	"strings"

	domainerrors "github.com/marczakjulia/BYT-PROJECT/internal/errors"
)

// SeatParams holds the attributes of a new seat.
type SeatParams struct {
	ID   string   `json:"id" validate:"notblank"`
	Code string   `json:"code" validate:"seatcode"`
	Type SeatType `json:"type" validate:"enum"`
}

// Seat is a physical seat. Once placed in an auditorium it stays there
// until removed from it.
type Seat struct {
	id         string
	code       string
	seatType   SeatType
	auditorium *Auditorium
}

// NewSeat creates an unassigned seat.
func NewSeat(p SeatParams) (*Seat, error) {
	p.ID = strings.TrimSpace(p.ID)
	p.Code = strings.TrimSpace(p.Code)
	if err := validate.Validate(p); err != nil {
		return nil, err
	}
	return &Seat{id: p.ID, code: p.Code, seatType: p.Type}, nil
}

func (s *Seat) ID() string              { return s.id }
func (s *Seat) Code() string            { return s.code }
func (s *Seat) Type() SeatType          { return s.seatType }
func (s *Seat) Auditorium() *Auditorium { return s.auditorium }

// SetType changes the seat classification.
func (s *Seat) SetType(t SeatType) error {
	if err := validate.Var("type", t, "enum"); err != nil {
		return err
	}
	s.seatType = t
	return nil
}

// SetAuditorium places the seat in a. Placing it in the auditorium it already
// belongs to is a no-op; moving it to another one requires removing it first.
func (s *Seat) SetAuditorium(a *Auditorium) error {
	if a == nil {
		return domainerrors.InvalidArgument("auditorium is required")
	}
	return a.AddSeat(s)
}

// RemoveAuditorium takes the seat out of its auditorium, subject to the
// auditorium's seat floor. Does nothing for an unassigned seat.
func (s *Seat) RemoveAuditorium() error {
	if s.auditorium == nil {
		return nil
	}
	return s.auditorium.RemoveSeat(s)
}
