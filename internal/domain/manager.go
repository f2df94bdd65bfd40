package domain

import (
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	domainerrors "github.com/marczakjulia/BYT-PROJECT/internal/errors"
)

// ManagerParams holds the attributes of the manager role. The bonus is a
// fraction of base salary, at most 0.35.
type ManagerParams struct {
	Department      string          `json:"department" validate:"notblank"`
	BaseSalary      decimal.Decimal `json:"base_salary" validate:"gt=0"`
	BonusPercentage decimal.Decimal `json:"bonus_percentage" validate:"gte=0,lte=0.35"`
}

// Manager is the salaried role of an employee. Managers form a forest:
// each has at most one supervisor and any number of subordinates, with no
// cycles.
type Manager struct {
	employee     *Employee
	p            ManagerParams
	supervisor   *Manager
	subordinates []*Manager
}

func newManager(e *Employee, mp ManagerParams) (*Manager, error) {
	mp.Department = strings.TrimSpace(mp.Department)
	if err := validate.Validate(mp); err != nil {
		return nil, err
	}
	return &Manager{employee: e, p: mp}, nil
}

func (m *Manager) Employee() *Employee              { return m.employee }
func (m *Manager) Department() string               { return m.p.Department }
func (m *Manager) BaseSalary() decimal.Decimal      { return m.p.BaseSalary }
func (m *Manager) BonusPercentage() decimal.Decimal { return m.p.BonusPercentage }
func (m *Manager) Params() ManagerParams            { return m.p }
func (m *Manager) Supervisor() *Manager             { return m.supervisor }

// BonusAmount is base salary times bonus percentage.
func (m *Manager) BonusAmount() decimal.Decimal {
	return m.p.BaseSalary.Mul(m.p.BonusPercentage)
}

// Salary is base salary plus bonus.
func (m *Manager) Salary() decimal.Decimal {
	return m.p.BaseSalary.Add(m.BonusAmount())
}

// Subordinates returns the managers this one supervises.
func (m *Manager) Subordinates() []*Manager {
	return slices.Clone(m.subordinates)
}

func (m *Manager) active() error {
	if m.employee == nil {
		return domainerrors.InvalidOperation("manager role is no longer held by an employee")
	}
	return nil
}

// Update replaces the role's attributes.
func (m *Manager) Update(p ManagerParams) error {
	if err := m.active(); err != nil {
		return err
	}
	p.Department = strings.TrimSpace(p.Department)
	if err := validate.Validate(p); err != nil {
		return err
	}
	m.p = p
	return nil
}

// supervises reports whether m is s or appears above s in the hierarchy.
func (m *Manager) supervises(s *Manager) bool {
	for x := s; x != nil; x = x.supervisor {
		if x == m {
			return true
		}
	}
	return false
}

func checkSupervision(supervisor, subordinate *Manager) error {
	if supervisor == subordinate {
		return domainerrors.InvalidOperation("a manager cannot supervise themselves")
	}
	if err := supervisor.active(); err != nil {
		return err
	}
	if err := subordinate.active(); err != nil {
		return err
	}
	if subordinate.supervises(supervisor) {
		return domainerrors.InvalidOperationf("manager %s is above %s in the hierarchy", subordinate.employee.id, supervisor.employee.id)
	}
	return nil
}

// SetSupervisor makes s the manager's supervisor, replacing the current one.
func (m *Manager) SetSupervisor(s *Manager) error {
	if s == nil {
		return domainerrors.InvalidArgument("supervisor is required")
	}
	if m.supervisor == s {
		return nil
	}
	if err := checkSupervision(s, m); err != nil {
		return err
	}
	m.RemoveSupervisor()
	s.subordinates = append(s.subordinates, m)
	m.supervisor = s
	return nil
}

// RemoveSupervisor detaches the manager from its supervisor, if any.
func (m *Manager) RemoveSupervisor() {
	if m.supervisor == nil {
		return
	}
	m.supervisor.subordinates, _ = removeItem(m.supervisor.subordinates, m)
	m.supervisor = nil
}

// AddSubordinate puts s under this manager. s must not already report to
// anyone.
func (m *Manager) AddSubordinate(s *Manager) error {
	if s == nil {
		return domainerrors.InvalidArgument("subordinate is required")
	}
	if err := checkSupervision(m, s); err != nil {
		return err
	}
	if s.supervisor == m {
		return domainerrors.InvalidOperationf("manager %s is already a subordinate", s.employee.id)
	}
	if s.supervisor != nil {
		return domainerrors.InvalidOperationf("manager %s already reports to %s", s.employee.id, s.supervisor.employee.id)
	}
	m.subordinates = append(m.subordinates, s)
	s.supervisor = m
	return nil
}

// RemoveSubordinate detaches s, which must report to this manager.
func (m *Manager) RemoveSubordinate(s *Manager) error {
	if s == nil {
		return domainerrors.InvalidArgument("subordinate is required")
	}
	if s.supervisor != m {
		return domainerrors.InvalidOperation("manager is not a subordinate")
	}
	s.RemoveSupervisor()
	return nil
}

// ChangeToWorker replaces the employee's manager role with a new worker role
// built from wp and returns it. The manager leaves the hierarchy and is
// discarded.
func (m *Manager) ChangeToWorker(wp WorkerParams) (*Worker, error) {
	if err := m.active(); err != nil {
		return nil, err
	}
	if err := validate.Validate(wp); err != nil {
		return nil, err
	}

	m.RemoveSupervisor()
	for _, s := range m.subordinates {
		s.supervisor = nil
	}
	m.subordinates = nil

	e := m.employee
	w := &Worker{employee: e, p: wp}
	e.manager = nil
	e.worker = w
	m.employee = nil
	return w, nil
}
