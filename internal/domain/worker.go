package domain

import (
	"github.com/shopspring/decimal"

	domainerrors "github.com/marczakjulia/BYT-PROJECT/internal/errors"
)

// WorkerParams holds the attributes of the worker role.
type WorkerParams struct {
	Shift       ShiftType       `json:"shift" validate:"enum"`
	WorkType    WorkType        `json:"work_type" validate:"enum"`
	HoursWorked decimal.Decimal `json:"hours_worked" validate:"gte=0"`
	HourlyRate  decimal.Decimal `json:"hourly_rate" validate:"gt=0"`
}

// Worker is the hourly-paid role of an employee. A Worker replaced by
// ChangeToManager is detached from its employee and rejects further changes.
type Worker struct {
	employee *Employee
	p        WorkerParams
}

func (w *Worker) Employee() *Employee          { return w.employee }
func (w *Worker) Shift() ShiftType             { return w.p.Shift }
func (w *Worker) WorkType() WorkType           { return w.p.WorkType }
func (w *Worker) HoursWorked() decimal.Decimal { return w.p.HoursWorked }
func (w *Worker) HourlyRate() decimal.Decimal  { return w.p.HourlyRate }
func (w *Worker) Params() WorkerParams         { return w.p }

// Salary is hours worked times the hourly rate.
func (w *Worker) Salary() decimal.Decimal {
	return w.p.HoursWorked.Mul(w.p.HourlyRate)
}

func (w *Worker) active() error {
	if w.employee == nil {
		return domainerrors.InvalidOperation("worker role is no longer held by an employee")
	}
	return nil
}

// Update replaces the role's attributes.
func (w *Worker) Update(p WorkerParams) error {
	if err := w.active(); err != nil {
		return err
	}
	if err := validate.Validate(p); err != nil {
		return err
	}
	w.p = p
	return nil
}

// LogHours adds h hours to the hours worked.
func (w *Worker) LogHours(h decimal.Decimal) error {
	if err := w.active(); err != nil {
		return err
	}
	if err := validate.Var("hours", h, "gt=0"); err != nil {
		return err
	}
	w.p.HoursWorked = w.p.HoursWorked.Add(h)
	return nil
}

// ChangeToManager replaces the employee's worker role with a new manager
// role built from mp and returns it. The worker is discarded.
func (w *Worker) ChangeToManager(mp ManagerParams) (*Manager, error) {
	if err := w.active(); err != nil {
		return nil, err
	}
	m, err := newManager(w.employee, mp)
	if err != nil {
		return nil, err
	}

	e := w.employee
	e.worker = nil
	e.manager = m
	w.employee = nil
	return m, nil
}
