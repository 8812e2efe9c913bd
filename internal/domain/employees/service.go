package employees

import (
	"context"
	"errors"
	"strings"

	"hrportal/internal/domain/auth"
	"hrportal/internal/domain/records"
	"hrportal/internal/platform/ids"
	"hrportal/internal/platform/store"
)

const entityType = "employee"

var (
	listGuard  = auth.RequirePermissions(auth.PermViewEmployees)
	writeGuard = auth.RequireRole(auth.RoleHR)
)

type Service struct {
	store *store.Collection[Employee]
	Hooks records.Hooks
}

func NewService(hooks records.Hooks) *Service {
	return &Service{store: store.NewCollection(cloneEmployee), Hooks: hooks}
}

func (s *Service) List(_ context.Context, actor *auth.User) ([]Employee, error) {
	if err := listGuard.Check(actor); err != nil {
		return nil, err
	}
	return s.store.Filter(nil), nil
}

func (s *Service) ListByDepartment(_ context.Context, actor *auth.User, department string) ([]Employee, error) {
	if err := listGuard.Check(actor); err != nil {
		return nil, err
	}
	return s.store.Filter(func(e Employee) bool { return strings.EqualFold(e.Department, department) }), nil
}

func (s *Service) ListActive(_ context.Context, actor *auth.User) ([]Employee, error) {
	if err := listGuard.Check(actor); err != nil {
		return nil, err
	}
	return s.store.Filter(func(e Employee) bool { return e.Status == StatusActive }), nil
}

func (s *Service) Get(_ context.Context, actor *auth.User, id string) (Employee, error) {
	if err := auth.RequireView(actor, id); err != nil {
		return Employee{}, err
	}
	emp, err := s.lookup(id)
	if err != nil {
		return Employee{}, err
	}
	return redactFor(actor, emp), nil
}

// redactFor drops compensation from records shown to anyone but HR or admin.
func redactFor(actor *auth.User, emp Employee) Employee {
	if !auth.IsHRorAdmin(actor) {
		emp.Salary = Salary{}
	}
	return emp
}

func (s *Service) Create(ctx context.Context, actor *auth.User, in Input) (Employee, error) {
	if err := writeGuard.Check(actor); err != nil {
		return Employee{}, err
	}
	if err := validate(in); err != nil {
		return Employee{}, err
	}
	emp := Employee{
		ID:             in.ID,
		Name:           strings.TrimSpace(in.Name),
		Email:          strings.TrimSpace(in.Email),
		Department:     in.Department,
		Position:       in.Position,
		EmployeeNumber: strings.TrimSpace(in.EmployeeNumber),
		JoinDate:       in.JoinDate,
		Status:         in.Status,
		Manager:        in.Manager,
		ContactInfo:    in.ContactInfo,
		Salary:         in.Salary,
		Documents:      []Document{},
	}
	if emp.ID == "" {
		emp.ID = ids.New()
	}
	if emp.Status == "" {
		emp.Status = StatusActive
	}

	err := s.store.InsertUnless(emp.ID, emp, func(existing Employee) bool {
		return strings.EqualFold(existing.EmployeeNumber, emp.EmployeeNumber)
	})
	if errors.Is(err, store.ErrDuplicate) {
		return Employee{}, ErrDuplicateEmployeeNumber
	}
	if err != nil {
		return Employee{}, err
	}
	s.Hooks.Record(ctx, actor.ID, "employee.create", entityType, emp.ID, nil, emp)
	return emp, nil
}

// Seed inserts a record without access checks. Used at start-up only.
func (s *Service) Seed(emp Employee) error {
	err := s.store.InsertUnless(emp.ID, emp, func(existing Employee) bool {
		return strings.EqualFold(existing.EmployeeNumber, emp.EmployeeNumber)
	})
	if errors.Is(err, store.ErrDuplicate) {
		return ErrDuplicateEmployeeNumber
	}
	return err
}

func (s *Service) Update(ctx context.Context, actor *auth.User, id string, in Input) (Employee, error) {
	if err := writeGuard.Check(actor); err != nil {
		return Employee{}, err
	}
	if err := validate(in); err != nil {
		return Employee{}, err
	}
	number := strings.TrimSpace(in.EmployeeNumber)

	var before Employee
	updated, err := s.store.UpdateUnless(id, func(e *Employee) error {
		before = cloneEmployee(*e)
		e.Name = strings.TrimSpace(in.Name)
		e.Email = strings.TrimSpace(in.Email)
		e.Department = in.Department
		e.Position = in.Position
		e.EmployeeNumber = number
		e.JoinDate = in.JoinDate
		if in.Status != "" {
			e.Status = in.Status
		}
		e.Manager = in.Manager
		e.ContactInfo = in.ContactInfo
		e.Salary = in.Salary
		return nil
	}, func(other Employee) bool {
		return strings.EqualFold(other.EmployeeNumber, number)
	})
	if errors.Is(err, store.ErrDuplicate) {
		return Employee{}, ErrDuplicateEmployeeNumber
	}
	if err != nil {
		return Employee{}, notFound(err)
	}
	s.Hooks.Record(ctx, actor.ID, "employee.update", entityType, id, before, updated)
	return updated, nil
}

// UpdateContact lets HR, or the employee holding edit_self, change contact details.
func (s *Service) UpdateContact(ctx context.Context, actor *auth.User, id string, contact ContactInfo) (Employee, error) {
	if actor == nil {
		return Employee{}, auth.ErrUnauthenticated
	}
	if !auth.CanEdit(actor, id) {
		return Employee{}, auth.ErrForbidden
	}
	var before ContactInfo
	updated, err := s.store.Update(id, func(e *Employee) error {
		before = e.ContactInfo
		e.ContactInfo = contact
		return nil
	})
	if err != nil {
		return Employee{}, notFound(err)
	}
	s.Hooks.Record(ctx, actor.ID, "employee.contact_update", entityType, id, before, contact)
	return redactFor(actor, updated), nil
}

// DisplayName resolves the name shown on workflow records.
func (s *Service) DisplayName(_ context.Context, id string) (string, error) {
	emp, err := s.lookup(id)
	if err != nil {
		return "", err
	}
	return emp.Name, nil
}

func (s *Service) Count() int {
	return s.store.Len()
}

func (s *Service) lookup(id string) (Employee, error) {
	emp, err := s.store.Get(id)
	if err != nil {
		return Employee{}, notFound(err)
	}
	return emp, nil
}

func validate(in Input) error {
	switch {
	case strings.TrimSpace(in.Name) == "":
		return records.Invalid("name", "is required")
	case strings.TrimSpace(in.Email) == "":
		return records.Invalid("email", "is required")
	case strings.TrimSpace(in.EmployeeNumber) == "":
		return records.Invalid("employeeId", "is required")
	case in.Status != "" && in.Status != StatusActive && in.Status != StatusInactive:
		return records.Invalid("status", "must be active or inactive")
	case in.Salary.Amount.IsNegative():
		return records.Invalid("salary.amount", "must not be negative")
	}
	return nil
}

func notFound(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
