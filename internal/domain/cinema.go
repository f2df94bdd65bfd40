package domain

import (
	"slices"
	"strings"

	domainerrors "github.com/marczakjulia/BYT-PROJECT/internal/errors"
)

// CinemaParams holds the attributes of a new cinema.
type CinemaParams struct {
	ID           string `json:"id" validate:"notblank"`
	Name         string `json:"name" validate:"notblank"`
	Address      string `json:"address" validate:"notblank"`
	Phone        string `json:"phone" validate:"notblank"`
	Email        string `json:"email" validate:"notblank,contains=@"`
	OpeningHours string `json:"opening_hours" validate:"notblank"`
}

// Cinema is a venue. It owns auditoriums and shares employees with other
// cinemas.
type Cinema struct {
	id           string
	name         string
	address      string
	phone        string
	email        string
	openingHours string
	auditoriums  []*Auditorium
	employees    []*Employee
}

// NewCinema creates a cinema with no auditoriums or employees.
func NewCinema(p CinemaParams) (*Cinema, error) {
	p = trimCinemaParams(p)
	if err := validate.Validate(p); err != nil {
		return nil, err
	}
	c := &Cinema{id: p.ID}
	c.apply(p)
	return c, nil
}

func trimCinemaParams(p CinemaParams) CinemaParams {
	p.ID = strings.TrimSpace(p.ID)
	p.Name = strings.TrimSpace(p.Name)
	p.Address = strings.TrimSpace(p.Address)
	p.Phone = strings.TrimSpace(p.Phone)
	p.Email = strings.TrimSpace(p.Email)
	p.OpeningHours = strings.TrimSpace(p.OpeningHours)
	return p
}

func (c *Cinema) apply(p CinemaParams) {
	c.name = p.Name
	c.address = p.Address
	c.phone = p.Phone
	c.email = p.Email
	c.openingHours = p.OpeningHours
}

func (c *Cinema) ID() string           { return c.id }
func (c *Cinema) Name() string         { return c.name }
func (c *Cinema) Address() string      { return c.address }
func (c *Cinema) Phone() string        { return c.phone }
func (c *Cinema) Email() string        { return c.email }
func (c *Cinema) OpeningHours() string { return c.openingHours }

// Params returns the cinema's current attributes.
func (c *Cinema) Params() CinemaParams {
	return CinemaParams{
		ID:           c.id,
		Name:         c.name,
		Address:      c.address,
		Phone:        c.phone,
		Email:        c.email,
		OpeningHours: c.openingHours,
	}
}

// Update replaces the cinema's attributes. The ID in p is ignored.
func (c *Cinema) Update(p CinemaParams) error {
	p = trimCinemaParams(p)
	p.ID = c.id
	if err := validate.Validate(p); err != nil {
		return err
	}
	c.apply(p)
	return nil
}

// Auditoriums returns the cinema's auditoriums.
func (c *Cinema) Auditoriums() []*Auditorium {
	return slices.Clone(c.auditoriums)
}

// AddAuditorium attaches a. Attaching an auditorium twice is a no-op; one
// that already belongs to another cinema is rejected.
func (c *Cinema) AddAuditorium(a *Auditorium) error {
	if a == nil {
		return domainerrors.InvalidArgument("auditorium is required")
	}
	if a.cinema == c {
		return nil
	}
	if a.cinema != nil {
		return domainerrors.InvalidOperationf("auditorium %s already belongs to cinema %s", a.name, a.cinema.name)
	}

	c.auditoriums = append(c.auditoriums, a)
	a.cinema = c
	return nil
}

// RemoveAuditorium detaches a. Auditoriums not attached here are ignored.
func (c *Cinema) RemoveAuditorium(a *Auditorium) {
	if a == nil || a.cinema != c {
		return
	}
	c.auditoriums, _ = removeItem(c.auditoriums, a)
	a.cinema = nil
}

// Employees returns the cinema's employees.
func (c *Cinema) Employees() []*Employee {
	return slices.Clone(c.employees)
}

// AddEmployee links e to the cinema. Linking the same employee twice is an
// error.
func (c *Cinema) AddEmployee(e *Employee) error {
	if e == nil {
		return domainerrors.InvalidArgument("employee is required")
	}
	if slices.Contains(c.employees, e) {
		return domainerrors.InvalidOperationf("employee %s is already linked to cinema %s", e.id, c.name)
	}

	c.employees = append(c.employees, e)
	e.cinemas = append(e.cinemas, c)
	return nil
}

// RemoveEmployee unlinks e. The link must exist, and e must keep at least
// one other cinema.
func (c *Cinema) RemoveEmployee(e *Employee) error {
	if e == nil {
		return domainerrors.InvalidArgument("employee is required")
	}
	if !slices.Contains(c.employees, e) {
		return domainerrors.InvalidOperationf("employee %s is not linked to cinema %s", e.id, c.name)
	}
	if len(e.cinemas) <= 1 {
		return domainerrors.InvalidOperationf("employee %s must work in at least one cinema", e.id)
	}

	c.unlinkEmployee(e)
	return nil
}

func (c *Cinema) unlinkEmployee(e *Employee) {
	c.employees, _ = removeItem(c.employees, e)
	e.cinemas, _ = removeItem(e.cinemas, c)
}

// Dismantle detaches every auditorium and employee from the cinema and
// returns the auditoriums that were attached. It fails, changing nothing,
// when an employee works only here.
func (c *Cinema) Dismantle() ([]*Auditorium, error) {
	for _, e := range c.employees {
		if len(e.cinemas) <= 1 {
			return nil, domainerrors.InvalidOperationf("employee %s works only in cinema %s", e.id, c.name)
		}
	}

	auditoriums := slices.Clone(c.auditoriums)
	for _, a := range auditoriums {
		c.RemoveAuditorium(a)
	}
	for _, e := range slices.Clone(c.employees) {
		c.unlinkEmployee(e)
	}
	return auditoriums, nil
}
