package leave

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"hrportal/internal/domain/auth"
	"hrportal/internal/domain/notifications"
	"hrportal/internal/domain/records"
	"hrportal/internal/platform/ids"
	"hrportal/internal/platform/store"
)

const (
	entityType     = "leave_request"
	transitionKind = "leave"
)

type Service struct {
	store  *store.Collection[LeaveRequest]
	people records.People
	Hooks  records.Hooks
	Now    func() time.Time
}

func NewService(people records.People, hooks records.Hooks) *Service {
	return &Service{
		store:  store.NewCollection(cloneRequest),
		people: people,
		Hooks:  hooks,
		Now:    time.Now,
	}
}

// Submit files a pending request. Employees file for themselves and need
// request_leave; HR and admins may file on behalf of anyone.
func (s *Service) Submit(ctx context.Context, actor *auth.User, in SubmitInput) (LeaveRequest, error) {
	if actor == nil {
		return LeaveRequest{}, auth.ErrUnauthenticated
	}
	employeeID := strings.TrimSpace(in.EmployeeID)
	if employeeID == "" {
		employeeID = actor.ID
	}
	if !auth.IsHRorAdmin(actor) && (employeeID != actor.ID || !auth.HasPermission(actor, auth.PermRequestLeave)) {
		return LeaveRequest{}, auth.ErrForbidden
	}

	switch {
	case strings.TrimSpace(in.Type) == "":
		return LeaveRequest{}, records.Invalid("type", "is required")
	case in.StartDate.IsZero():
		return LeaveRequest{}, records.Invalid("startDate", "is required")
	case in.EndDate.IsZero():
		return LeaveRequest{}, records.Invalid("endDate", "is required")
	case strings.TrimSpace(in.Reason) == "":
		return LeaveRequest{}, records.Invalid("reason", "is required")
	}
	days, err := CalculateDays(in.StartDate.Time, in.EndDate.Time)
	if err != nil {
		return LeaveRequest{}, records.Invalid("endDate", "must not be before startDate")
	}

	name, err := s.employeeName(ctx, actor, employeeID)
	if err != nil {
		return LeaveRequest{}, err
	}

	req := LeaveRequest{
		ID:               ids.New(),
		EmployeeID:       employeeID,
		EmployeeName:     name,
		Type:             strings.TrimSpace(in.Type),
		StartDate:        in.StartDate,
		EndDate:          in.EndDate,
		TotalDays:        days,
		Reason:           strings.TrimSpace(in.Reason),
		AppliedDate:      records.DateOf(s.now()),
		Comments:         records.Thread{},
		MedicalDocuments: []MedicalDocumentRef{},
	}
	if err := s.store.Insert(req.ID, req); err != nil {
		return LeaveRequest{}, err
	}
	s.Hooks.Transition(transitionKind, "submit", nil)
	s.Hooks.Record(ctx, actor.ID, "leave.submit", entityType, req.ID, nil, req)
	return req, nil
}

func (s *Service) Approve(ctx context.Context, actor *auth.User, id, comment string) (LeaveRequest, error) {
	return s.decide(ctx, actor, id, comment, true)
}

func (s *Service) Reject(ctx context.Context, actor *auth.User, id, reason string) (LeaveRequest, error) {
	return s.decide(ctx, actor, id, reason, false)
}

// decide closes a pending request. The pending check and the write happen
// under the collection lock, so a request is decided at most once.
func (s *Service) decide(ctx context.Context, actor *auth.User, id, text string, approve bool) (LeaveRequest, error) {
	action, outcome := "reject", records.OutcomeRejected
	if approve {
		action, outcome = "approve", records.OutcomeApproved
	}
	if err := auth.RequireSupervisor(actor); err != nil {
		s.Hooks.Transition(transitionKind, action, err)
		return LeaveRequest{}, err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		text = defaultDecisionText(approve)
	}
	now := s.now()

	var before LeaveRequest
	updated, err := s.store.Update(id, func(r *LeaveRequest) error {
		if r.Decision != nil {
			return fmt.Errorf("leave request is %s: %w", r.Status(), ErrInvalidState)
		}
		before = cloneRequest(*r)
		r.Decision = &records.Decision{
			Outcome:  outcome,
			By:       actor.Name,
			ByUserID: actor.ID,
			Date:     records.DateOf(now),
		}
		r.Comments = r.Comments.Append(records.NewComment(actor, text, now))
		return nil
	})
	err = notFound(err)
	s.Hooks.Transition(transitionKind, action, err)
	if err != nil {
		return LeaveRequest{}, err
	}

	s.Hooks.Record(ctx, actor.ID, "leave."+action, entityType, id, before, updated)
	notifyType, title := notifications.TypeLeaveRejected, "Leave request rejected"
	if approve {
		notifyType, title = notifications.TypeLeaveApproved, "Leave request approved"
	}
	s.Hooks.Notify(ctx, notifications.Message{
		UserID:     updated.EmployeeID,
		ActorID:    actor.ID,
		Type:       notifyType,
		Title:      title,
		Body:       fmt.Sprintf("%s (%s to %s): %s", updated.Type, updated.StartDate, updated.EndDate, text),
		EntityType: entityType,
		EntityID:   id,
	})
	return updated, nil
}

// AddComment appends to the request thread in any status. Anyone who can
// view the request may comment.
func (s *Service) AddComment(ctx context.Context, actor *auth.User, id, text string) (LeaveRequest, error) {
	current, err := s.Get(ctx, actor, id)
	if err != nil {
		return LeaveRequest{}, err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return LeaveRequest{}, records.Invalid("text", "is required")
	}
	comment := records.NewComment(actor, text, s.now())
	updated, err := s.store.Update(current.ID, func(r *LeaveRequest) error {
		r.Comments = r.Comments.Append(comment)
		return nil
	})
	if err != nil {
		return LeaveRequest{}, notFound(err)
	}
	s.Hooks.Record(ctx, actor.ID, "leave.comment", entityType, id, nil, comment)
	return updated, nil
}

// LinkDocument attaches a medical document reference. Status is untouched.
func (s *Service) LinkDocument(_ context.Context, id string, ref MedicalDocumentRef) error {
	_, err := s.store.Update(id, func(r *LeaveRequest) error {
		for _, existing := range r.MedicalDocuments {
			if existing.ID == ref.ID {
				return nil
			}
		}
		r.MedicalDocuments = append(r.MedicalDocuments, ref)
		return nil
	})
	return notFound(err)
}

// UpdateDocumentStatus mirrors a medical verification onto the linked reference.
func (s *Service) UpdateDocumentStatus(_ context.Context, id, documentID, status string) error {
	_, err := s.store.Update(id, func(r *LeaveRequest) error {
		for i := range r.MedicalDocuments {
			if r.MedicalDocuments[i].ID == documentID {
				r.MedicalDocuments[i].Status = status
				return nil
			}
		}
		return ErrNotFound
	})
	return notFound(err)
}

// Owner returns the employee a request belongs to, without access checks.
func (s *Service) Owner(_ context.Context, id string) (string, error) {
	r, err := s.store.Get(id)
	if err != nil {
		return "", notFound(err)
	}
	return r.EmployeeID, nil
}

func (s *Service) Get(_ context.Context, actor *auth.User, id string) (LeaveRequest, error) {
	if actor == nil {
		return LeaveRequest{}, auth.ErrUnauthenticated
	}
	r, err := s.store.Get(id)
	if err != nil {
		return LeaveRequest{}, notFound(err)
	}
	if !auth.CanView(actor, r.EmployeeID) {
		return LeaveRequest{}, auth.ErrForbidden
	}
	return r, nil
}

// ListForActor returns every request for HR and admins and the actor's own otherwise.
func (s *Service) ListForActor(_ context.Context, actor *auth.User) ([]LeaveRequest, error) {
	if actor == nil {
		return nil, auth.ErrUnauthenticated
	}
	return s.store.Filter(visibleTo(actor)), nil
}

func (s *Service) ListByEmployee(_ context.Context, actor *auth.User, employeeID string) ([]LeaveRequest, error) {
	if err := auth.RequireView(actor, employeeID); err != nil {
		return nil, err
	}
	return s.store.Filter(func(r LeaveRequest) bool { return r.EmployeeID == employeeID }), nil
}

func (s *Service) ListByStatus(_ context.Context, actor *auth.User, status Status) ([]LeaveRequest, error) {
	if actor == nil {
		return nil, auth.ErrUnauthenticated
	}
	visible := visibleTo(actor)
	return s.store.Filter(func(r LeaveRequest) bool { return visible(r) && r.Status() == status }), nil
}

// ListPending is the approval queue.
func (s *Service) ListPending(_ context.Context, actor *auth.User) ([]LeaveRequest, error) {
	if err := auth.RequireSupervisor(actor); err != nil {
		return nil, err
	}
	return s.store.Filter(func(r LeaveRequest) bool { return r.Decision == nil }), nil
}

// CountByStatus counts requests in status; an empty employeeID counts everyone's.
func (s *Service) CountByStatus(employeeID string, status Status) int {
	return s.store.Count(func(r LeaveRequest) bool {
		return (employeeID == "" || r.EmployeeID == employeeID) && r.Status() == status
	})
}

// Seed inserts a record as-is. Used at start-up only.
func (s *Service) Seed(r LeaveRequest) error {
	return s.store.Insert(r.ID, r)
}

func (s *Service) employeeName(ctx context.Context, actor *auth.User, employeeID string) (string, error) {
	if s.people != nil {
		name, err := s.people.DisplayName(ctx, employeeID)
		if err == nil {
			return name, nil
		}
		if !errors.Is(err, records.ErrNotFound) {
			return "", err
		}
	}
	if employeeID == actor.ID {
		return actor.Name, nil
	}
	return "", records.Invalid("employeeId", "unknown employee")
}

func (s *Service) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

func visibleTo(actor *auth.User) func(LeaveRequest) bool {
	return func(r LeaveRequest) bool { return auth.CanView(actor, r.EmployeeID) }
}

func notFound(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
