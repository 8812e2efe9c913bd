package disciplinary

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"hrportal/internal/domain/auth"
	"hrportal/internal/domain/notifications"
	"hrportal/internal/domain/records"
	"hrportal/internal/platform/ids"
	"hrportal/internal/platform/store"
)

const (
	entityType     = "warning"
	transitionKind = "warning"
)

type Service struct {
	store  *store.Collection[Warning]
	people records.People
	Hooks  records.Hooks
	Now    func() time.Time
}

func NewService(people records.People, hooks records.Hooks) *Service {
	return &Service{
		store:  store.NewCollection(cloneWarning),
		people: people,
		Hooks:  hooks,
		Now:    time.Now,
	}
}

func (s *Service) Issue(ctx context.Context, actor *auth.User, in IssueInput) (Warning, error) {
	if err := auth.RequireSupervisor(actor); err != nil {
		s.Hooks.Transition(transitionKind, "issue", err)
		return Warning{}, err
	}
	severity, ok := ParseSeverity(string(in.Severity))
	switch {
	case strings.TrimSpace(in.EmployeeID) == "":
		return Warning{}, records.Invalid("employeeId", "is required")
	case strings.TrimSpace(in.Type) == "":
		return Warning{}, records.Invalid("type", "is required")
	case strings.TrimSpace(in.Title) == "":
		return Warning{}, records.Invalid("title", "is required")
	case strings.TrimSpace(in.Description) == "":
		return Warning{}, records.Invalid("description", "is required")
	case !ok:
		return Warning{}, records.Invalid("severity", "must be minor, moderate or serious")
	}

	employeeID := strings.TrimSpace(in.EmployeeID)
	name, err := s.employeeName(ctx, employeeID)
	if err != nil {
		return Warning{}, err
	}
	issued := records.DateOf(s.now())
	attachments := make([]Attachment, 0, len(in.Attachments))
	for _, filename := range in.Attachments {
		if filename = strings.TrimSpace(filename); filename != "" {
			attachments = append(attachments, Attachment{ID: ids.Sortable(), Filename: filename, UploadDate: issued})
		}
	}

	w := Warning{
		ID:           ids.New(),
		EmployeeID:   employeeID,
		EmployeeName: name,
		Type:         strings.TrimSpace(in.Type),
		Title:        strings.TrimSpace(in.Title),
		Description:  strings.TrimSpace(in.Description),
		IssueDate:    issued,
		IssuedBy:     actor.Name,
		IssuedByID:   actor.ID,
		Severity:     severity,
		Status:       StatusActive,
		Attachments:  attachments,
	}
	if err := s.store.Insert(w.ID, w); err != nil {
		return Warning{}, err
	}
	s.Hooks.Transition(transitionKind, "issue", nil)
	s.Hooks.Record(ctx, actor.ID, "warning.issue", entityType, w.ID, nil, w)
	s.Hooks.Notify(ctx, notifications.Message{
		UserID:     w.EmployeeID,
		ActorID:    actor.ID,
		Type:       notifications.TypeWarningIssued,
		Title:      "Warning issued: " + w.Title,
		Body:       fmt.Sprintf("A %s %s warning was issued on %s. Please review and acknowledge it.", w.Severity, strings.ToLower(w.Type), w.IssueDate),
		EntityType: entityType,
		EntityID:   w.ID,
	})
	return w, nil
}

// Acknowledge is open to the warning's subject only, once.
func (s *Service) Acknowledge(ctx context.Context, actor *auth.User, id, comments string) (Warning, error) {
	if actor == nil {
		return Warning{}, auth.ErrUnauthenticated
	}
	now := s.now()
	var before Warning
	updated, err := s.store.Update(id, func(w *Warning) error {
		if w.EmployeeID != actor.ID {
			return auth.ErrForbidden
		}
		if w.Acknowledgement != nil {
			return fmt.Errorf("warning already acknowledged: %w", ErrInvalidState)
		}
		before = cloneWarning(*w)
		w.Acknowledgement = &Acknowledgement{Date: records.DateOf(now), Comments: strings.TrimSpace(comments)}
		return nil
	})
	err = notFound(err)
	s.Hooks.Transition(transitionKind, "acknowledge", err)
	if err != nil {
		return Warning{}, err
	}
	s.Hooks.Record(ctx, actor.ID, "warning.acknowledge", entityType, id, before, updated)
	if updated.IssuedByID != "" {
		s.Hooks.Notify(ctx, notifications.Message{
			UserID:     updated.IssuedByID,
			ActorID:    actor.ID,
			Type:       notifications.TypeWarningAcknowledged,
			Title:      "Warning acknowledged",
			Body:       fmt.Sprintf("%s acknowledged %q.", updated.EmployeeName, updated.Title),
			EntityType: entityType,
			EntityID:   id,
		})
	}
	return updated, nil
}

// AddFollowUp schedules the single follow-up a warning can carry.
func (s *Service) AddFollowUp(ctx context.Context, actor *auth.User, id string, date records.Date, comments string) (Warning, error) {
	if err := auth.RequireSupervisor(actor); err != nil {
		s.Hooks.Transition(transitionKind, "follow_up", err)
		return Warning{}, err
	}
	if date.IsZero() {
		return Warning{}, records.Invalid("followUpDate", "is required")
	}
	var note *string
	if c := strings.TrimSpace(comments); c != "" {
		note = &c
	}

	var before Warning
	updated, err := s.store.Update(id, func(w *Warning) error {
		if w.FollowUp != nil {
			return fmt.Errorf("warning already has a follow-up: %w", ErrInvalidState)
		}
		before = cloneWarning(*w)
		w.FollowUp = &FollowUp{Date: date, Comments: note}
		return nil
	})
	err = notFound(err)
	s.Hooks.Transition(transitionKind, "follow_up", err)
	if err != nil {
		return Warning{}, err
	}
	s.Hooks.Record(ctx, actor.ID, "warning.follow_up", entityType, id, before, updated)
	s.Hooks.Notify(ctx, notifications.Message{
		UserID:     updated.EmployeeID,
		ActorID:    actor.ID,
		Type:       notifications.TypeWarningFollowUp,
		Title:      "Warning follow-up scheduled",
		Body:       fmt.Sprintf("Follow-up for %q on %s.", updated.Title, date),
		EntityType: entityType,
		EntityID:   id,
	})
	return updated, nil
}

func (s *Service) Get(_ context.Context, actor *auth.User, id string) (Warning, error) {
	if actor == nil {
		return Warning{}, auth.ErrUnauthenticated
	}
	w, err := s.store.Get(id)
	if err != nil {
		return Warning{}, notFound(err)
	}
	if !auth.CanView(actor, w.EmployeeID) {
		return Warning{}, auth.ErrForbidden
	}
	return w, nil
}

func (s *Service) ListForActor(_ context.Context, actor *auth.User) ([]Warning, error) {
	return s.list(actor, nil)
}

func (s *Service) ListByEmployee(_ context.Context, actor *auth.User, employeeID string) ([]Warning, error) {
	if err := auth.RequireView(actor, employeeID); err != nil {
		return nil, err
	}
	return s.list(actor, func(w Warning) bool { return w.EmployeeID == employeeID })
}

func (s *Service) ListBySeverity(_ context.Context, actor *auth.User, severity Severity) ([]Warning, error) {
	return s.list(actor, func(w Warning) bool { return w.Severity == severity })
}

func (s *Service) ListByType(_ context.Context, actor *auth.User, warningType string) ([]Warning, error) {
	return s.list(actor, func(w Warning) bool { return strings.EqualFold(w.Type, warningType) })
}

func (s *Service) ListActive(_ context.Context, actor *auth.User) ([]Warning, error) {
	return s.list(actor, func(w Warning) bool { return w.Status == StatusActive })
}

func (s *Service) ListPendingAcknowledgement(_ context.Context, actor *auth.User) ([]Warning, error) {
	return s.list(actor, func(w Warning) bool { return w.Acknowledgement == nil })
}

func (s *Service) CountUnacknowledged(employeeID string) int {
	return s.store.Count(func(w Warning) bool {
		return (employeeID == "" || w.EmployeeID == employeeID) && w.Acknowledgement == nil
	})
}

func (s *Service) Seed(w Warning) error {
	return s.store.Insert(w.ID, w)
}

func (s *Service) list(actor *auth.User, match func(Warning) bool) ([]Warning, error) {
	if actor == nil {
		return nil, auth.ErrUnauthenticated
	}
	out := s.store.Filter(func(w Warning) bool {
		return auth.CanView(actor, w.EmployeeID) && (match == nil || match(w))
	})
	slices.SortStableFunc(out, compareWarnings)
	return out, nil
}

func (s *Service) employeeName(ctx context.Context, employeeID string) (string, error) {
	if s.people == nil {
		return "", records.Invalid("employeeId", "unknown employee")
	}
	name, err := s.people.DisplayName(ctx, employeeID)
	if errors.Is(err, records.ErrNotFound) {
		return "", records.Invalid("employeeId", "unknown employee")
	}
	return name, err
}

func (s *Service) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

func notFound(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
