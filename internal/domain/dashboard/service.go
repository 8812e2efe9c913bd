// Package dashboard computes the role-specific counters on the landing page.
package dashboard

import (
	"context"

	"hrportal/internal/domain/auth"
	"hrportal/internal/domain/leave"
	"hrportal/internal/domain/medical"
)

type LeaveCounter interface {
	CountByStatus(employeeID string, status leave.Status) int
}

type MedicalCounter interface {
	CountByStatus(employeeID string, status medical.Status) int
}

type WarningCounter interface {
	CountUnacknowledged(employeeID string) int
}

type ReviewCounter interface {
	CountPendingAcknowledgement(employeeID string) int
}

type EmployeeCounter interface {
	Count() int
}

// Overview holds the HR/admin counters.
type Overview struct {
	PendingLeave            int `json:"pendingLeave"`
	PendingMedical          int `json:"pendingMedical"`
	UnacknowledgedWarnings  int `json:"unacknowledgedWarnings"`
	ReviewsAwaitingEmployee int `json:"reviewsAwaitingEmployee"`
	Employees               int `json:"employees"`
}

// Personal holds the counters an employee sees about their own records.
type Personal struct {
	LeavePending           int `json:"leavePending"`
	LeaveApproved          int `json:"leaveApproved"`
	LeaveRejected          int `json:"leaveRejected"`
	MedicalPending         int `json:"medicalPending"`
	UnacknowledgedWarnings int `json:"unacknowledgedWarnings"`
	ReviewsToAcknowledge   int `json:"reviewsToAcknowledge"`
}

// View is the dashboard payload. Exactly one of Overview and Personal is set.
type View struct {
	Role     auth.Role `json:"role"`
	Overview *Overview `json:"overview,omitempty"`
	Personal *Personal `json:"personal,omitempty"`
}

type Service struct {
	Leave     LeaveCounter
	Medical   MedicalCounter
	Warnings  WarningCounter
	Reviews   ReviewCounter
	Employees EmployeeCounter
}

func (s *Service) For(_ context.Context, actor *auth.User) (View, error) {
	if actor == nil {
		return View{}, auth.ErrUnauthenticated
	}
	view := View{Role: actor.Role}
	switch actor.Role {
	case auth.RoleAdmin, auth.RoleHR:
		view.Overview = &Overview{
			PendingLeave:            s.Leave.CountByStatus("", leave.StatusPending),
			PendingMedical:          s.Medical.CountByStatus("", medical.StatusPending),
			UnacknowledgedWarnings:  s.Warnings.CountUnacknowledged(""),
			ReviewsAwaitingEmployee: s.Reviews.CountPendingAcknowledgement(""),
			Employees:               s.Employees.Count(),
		}
	case auth.RoleEmployee:
		id := actor.ID
		view.Personal = &Personal{
			LeavePending:           s.Leave.CountByStatus(id, leave.StatusPending),
			LeaveApproved:          s.Leave.CountByStatus(id, leave.StatusApproved),
			LeaveRejected:          s.Leave.CountByStatus(id, leave.StatusRejected),
			MedicalPending:         s.Medical.CountByStatus(id, medical.StatusPending),
			UnacknowledgedWarnings: s.Warnings.CountUnacknowledged(id),
			ReviewsToAcknowledge:   s.Reviews.CountPendingAcknowledgement(id),
		}
	default:
		return View{}, auth.ErrForbidden
	}
	return view, nil
}
