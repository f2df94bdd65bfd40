package domain

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	domainerrors "github.com/marczakjulia/BYT-PROJECT/internal/errors"
)

// Address is an employee's postal address.
type Address struct {
	Street         string `json:"street" validate:"notblank"`
	BuildingNumber string `json:"building_number" validate:"notblank"`
	City           string `json:"city" validate:"notblank"`
	PostalCode     string `json:"postal_code" validate:"notblank"`
	Country        string `json:"country" validate:"notblank"`
}

// String formats the address on one line.
func (a Address) String() string {
	return fmt.Sprintf("%s %s, %s %s, %s", a.Street, a.BuildingNumber, a.PostalCode, a.City, a.Country)
}

// EmployeeParams holds the personal attributes of an employee.
type EmployeeParams struct {
	ID          string         `json:"id" validate:"notblank"`
	Name        string         `json:"name" validate:"notblank"`
	Surname     string         `json:"surname" validate:"notblank"`
	PESEL       string         `json:"pesel" validate:"notblank"`
	Email       string         `json:"email" validate:"required,email"`
	DateOfBirth time.Time      `json:"date_of_birth" validate:"notfuture"`
	HireDate    time.Time      `json:"hire_date" validate:"notfuture,gtfield=DateOfBirth"`
	Address     Address        `json:"address"`
	Status      EmployeeStatus `json:"status" validate:"enum"`
}

// Employee works in one or more cinemas, either as a Worker or as a Manager.
// Exactly one of Worker() and Manager() is non-nil at any time.
type Employee struct {
	id          string
	name        string
	surname     string
	pesel       string
	email       string
	dateOfBirth time.Time
	hireDate    time.Time
	address     Address
	status      EmployeeStatus
	cinemas     []*Cinema
	worker      *Worker
	manager     *Manager
}

// NewWorkerEmployee creates an employee in the worker role, linked to the
// given cinemas.
func NewWorkerEmployee(p EmployeeParams, wp WorkerParams, cinemas ...*Cinema) (*Employee, error) {
	e, err := newEmployee(p, cinemas)
	if err != nil {
		return nil, err
	}
	if err := validate.Validate(wp); err != nil {
		return nil, err
	}
	e.worker = &Worker{employee: e, p: wp}
	e.linkCinemas(cinemas)
	return e, nil
}

// NewManagerEmployee creates an employee in the manager role, linked to the
// given cinemas.
func NewManagerEmployee(p EmployeeParams, mp ManagerParams, cinemas ...*Cinema) (*Employee, error) {
	e, err := newEmployee(p, cinemas)
	if err != nil {
		return nil, err
	}
	m, err := newManager(e, mp)
	if err != nil {
		return nil, err
	}
	e.manager = m
	e.linkCinemas(cinemas)
	return e, nil
}

func newEmployee(p EmployeeParams, cinemas []*Cinema) (*Employee, error) {
	p = trimEmployeeParams(p)
	if err := validate.Validate(p); err != nil {
		return nil, err
	}
	if len(cinemas) == 0 {
		return nil, domainerrors.InvalidArgument("employee must work in at least one cinema")
	}
	for i, c := range cinemas {
		if c == nil {
			return nil, domainerrors.InvalidArgument("cinema must not be nil")
		}
		if slices.Contains(cinemas[:i], c) {
			return nil, domainerrors.InvalidArgumentf("cinema %s given more than once", c.name)
		}
	}
	e := &Employee{id: p.ID}
	e.apply(p)
	return e, nil
}

func trimEmployeeParams(p EmployeeParams) EmployeeParams {
	p.ID = strings.TrimSpace(p.ID)
	p.Name = strings.TrimSpace(p.Name)
	p.Surname = strings.TrimSpace(p.Surname)
	p.PESEL = strings.TrimSpace(p.PESEL)
	p.Email = strings.TrimSpace(p.Email)
	return p
}

func (e *Employee) apply(p EmployeeParams) {
	e.name = p.Name
	e.surname = p.Surname
	e.pesel = p.PESEL
	e.email = p.Email
	e.dateOfBirth = p.DateOfBirth
	e.hireDate = p.HireDate
	e.address = p.Address
	e.status = p.Status
}

func (e *Employee) linkCinemas(cinemas []*Cinema) {
	for _, c := range cinemas {
		c.employees = append(c.employees, e)
		e.cinemas = append(e.cinemas, c)
	}
}

func (e *Employee) ID() string             { return e.id }
func (e *Employee) Name() string           { return e.name }
func (e *Employee) Surname() string        { return e.surname }
func (e *Employee) PESEL() string          { return e.pesel }
func (e *Employee) Email() string          { return e.email }
func (e *Employee) DateOfBirth() time.Time { return e.dateOfBirth }
func (e *Employee) HireDate() time.Time    { return e.hireDate }
func (e *Employee) Address() Address       { return e.address }
func (e *Employee) Status() EmployeeStatus { return e.status }
func (e *Employee) Worker() *Worker        { return e.worker }
func (e *Employee) Manager() *Manager      { return e.manager }

// FullName is "Name Surname".
func (e *Employee) FullName() string {
	return e.name + " " + e.surname
}

// Params returns the employee's personal attributes.
func (e *Employee) Params() EmployeeParams {
	return EmployeeParams{
		ID:          e.id,
		Name:        e.name,
		Surname:     e.surname,
		PESEL:       e.pesel,
		Email:       e.email,
		DateOfBirth: e.dateOfBirth,
		HireDate:    e.hireDate,
		Address:     e.address,
		Status:      e.status,
	}
}

// Update replaces the personal attributes. The ID in p is ignored.
func (e *Employee) Update(p EmployeeParams) error {
	p = trimEmployeeParams(p)
	p.ID = e.id
	if err := validate.Validate(p); err != nil {
		return err
	}
	e.apply(p)
	return nil
}

// SetStatus changes the employment status.
func (e *Employee) SetStatus(s EmployeeStatus) error {
	if err := validate.Var("status", s, "enum"); err != nil {
		return err
	}
	e.status = s
	return nil
}

// Cinemas returns the cinemas the employee works in.
func (e *Employee) Cinemas() []*Cinema {
	return slices.Clone(e.cinemas)
}

// AddCinema links the employee to c. See Cinema.AddEmployee.
func (e *Employee) AddCinema(c *Cinema) error {
	if c == nil {
		return domainerrors.InvalidArgument("cinema is required")
	}
	return c.AddEmployee(e)
}

// RemoveCinema unlinks the employee from c. See Cinema.RemoveEmployee.
func (e *Employee) RemoveCinema(c *Cinema) error {
	if c == nil {
		return domainerrors.InvalidArgument("cinema is required")
	}
	return c.RemoveEmployee(e)
}

// Salary is the pay due for the employee's current role.
func (e *Employee) Salary() decimal.Decimal {
	if e.manager != nil {
		return e.manager.Salary()
	}
	return e.worker.Salary()
}
