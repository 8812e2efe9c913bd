package medical

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"hrportal/internal/domain/auth"
	"hrportal/internal/domain/leave"
	"hrportal/internal/domain/notifications"
	"hrportal/internal/domain/records"
	"hrportal/internal/platform/ids"
	"hrportal/internal/platform/store"
)

const (
	entityType     = "medical_document"
	transitionKind = "medical"
)

type Service struct {
	store  *store.Collection[MedicalDocument]
	people records.People
	leave  LeaveLinks
	Hooks  records.Hooks
	Now    func() time.Time
}

func NewService(people records.People, links LeaveLinks, hooks records.Hooks) *Service {
	return &Service{
		store:  store.NewCollection(cloneDocument),
		people: people,
		leave:  links,
		Hooks:  hooks,
		Now:    time.Now,
	}
}

// Upload records a pending document for the actor or, for HR and admins, for
// any employee. A linked leave request must belong to the same employee.
func (s *Service) Upload(ctx context.Context, actor *auth.User, in UploadInput) (MedicalDocument, error) {
	if actor == nil {
		return MedicalDocument{}, auth.ErrUnauthenticated
	}
	employeeID := strings.TrimSpace(in.EmployeeID)
	if employeeID == "" {
		employeeID = actor.ID
	}
	if !auth.CanView(actor, employeeID) {
		return MedicalDocument{}, auth.ErrForbidden
	}
	switch {
	case strings.TrimSpace(in.Title) == "":
		return MedicalDocument{}, records.Invalid("title", "is required")
	case strings.TrimSpace(in.Filename) == "":
		return MedicalDocument{}, records.Invalid("filename", "is required")
	}

	var leaveID *string
	if id := strings.TrimSpace(in.LeaveRequestID); id != "" {
		if err := s.checkLeaveOwner(ctx, id, employeeID); err != nil {
			return MedicalDocument{}, err
		}
		leaveID = &id
	}

	name, err := s.employeeName(ctx, actor, employeeID)
	if err != nil {
		return MedicalDocument{}, err
	}
	doc := MedicalDocument{
		ID:             ids.New(),
		EmployeeID:     employeeID,
		EmployeeName:   name,
		Title:          strings.TrimSpace(in.Title),
		Description:    strings.TrimSpace(in.Description),
		Filename:       strings.TrimSpace(in.Filename),
		UploadDate:     records.DateOf(s.now()),
		LeaveRequestID: leaveID,
		Comments:       records.Thread{},
	}
	if err := s.store.Insert(doc.ID, doc); err != nil {
		return MedicalDocument{}, err
	}
	if leaveID != nil {
		ref := leave.MedicalDocumentRef{ID: doc.ID, Filename: doc.Filename, UploadDate: doc.UploadDate, Status: string(StatusPending)}
		if err := s.leave.LinkDocument(ctx, *leaveID, ref); err != nil {
			s.store.Delete(doc.ID)
			return MedicalDocument{}, fmt.Errorf("link leave request: %w", err)
		}
	}
	s.Hooks.Transition(transitionKind, "upload", nil)
	s.Hooks.Record(ctx, actor.ID, "medical.upload", entityType, doc.ID, nil, doc)
	return doc, nil
}

func (s *Service) Verify(ctx context.Context, actor *auth.User, id, comment string) (MedicalDocument, error) {
	return s.decide(ctx, actor, id, strings.TrimSpace(comment), records.OutcomeVerified)
}

// Reject closes a pending document. A reason is required.
func (s *Service) Reject(ctx context.Context, actor *auth.User, id, reason string) (MedicalDocument, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" && auth.IsHRorAdmin(actor) {
		return MedicalDocument{}, records.Invalid("reason", "is required")
	}
	return s.decide(ctx, actor, id, reason, records.OutcomeRejected)
}

func (s *Service) decide(ctx context.Context, actor *auth.User, id, text string, outcome records.Outcome) (MedicalDocument, error) {
	action := "verify"
	if outcome == records.OutcomeRejected {
		action = "reject"
	}
	if err := auth.RequireSupervisor(actor); err != nil {
		s.Hooks.Transition(transitionKind, action, err)
		return MedicalDocument{}, err
	}
	now := s.now()

	var before MedicalDocument
	updated, err := s.store.Update(id, func(d *MedicalDocument) error {
		if d.Verification != nil {
			return fmt.Errorf("medical document is %s: %w", d.Status(), ErrInvalidState)
		}
		before = cloneDocument(*d)
		d.Verification = &records.Decision{
			Outcome:  outcome,
			By:       actor.Name,
			ByUserID: actor.ID,
			Date:     records.DateOf(now),
		}
		if text != "" {
			d.Comments = d.Comments.Append(records.NewComment(actor, text, now))
		}
		return nil
	})
	err = notFound(err)
	s.Hooks.Transition(transitionKind, action, err)
	if err != nil {
		return MedicalDocument{}, err
	}

	if updated.LeaveRequestID != nil {
		if err := s.leave.UpdateDocumentStatus(ctx, *updated.LeaveRequestID, updated.ID, string(updated.Status())); err != nil {
			slog.WarnContext(ctx, "leave document status sync failed", "documentId", updated.ID, "err", err)
		}
	}
	s.Hooks.Record(ctx, actor.ID, "medical."+action, entityType, id, before, updated)

	notifyType, title := notifications.TypeMedicalVerified, "Medical document verified"
	if outcome == records.OutcomeRejected {
		notifyType, title = notifications.TypeMedicalRejected, "Medical document rejected"
	}
	body := updated.Title
	if text != "" {
		body += ": " + text
	}
	s.Hooks.Notify(ctx, notifications.Message{
		UserID:     updated.EmployeeID,
		ActorID:    actor.ID,
		Type:       notifyType,
		Title:      title,
		Body:       body,
		EntityType: entityType,
		EntityID:   id,
	})
	return updated, nil
}

// AddComment appends to the document's own thread, never to a linked request's.
func (s *Service) AddComment(ctx context.Context, actor *auth.User, id, text string) (MedicalDocument, error) {
	current, err := s.Get(ctx, actor, id)
	if err != nil {
		return MedicalDocument{}, err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return MedicalDocument{}, records.Invalid("text", "is required")
	}
	comment := records.NewComment(actor, text, s.now())
	updated, err := s.store.Update(current.ID, func(d *MedicalDocument) error {
		d.Comments = d.Comments.Append(comment)
		return nil
	})
	if err != nil {
		return MedicalDocument{}, notFound(err)
	}
	s.Hooks.Record(ctx, actor.ID, "medical.comment", entityType, id, nil, comment)
	return updated, nil
}

func (s *Service) Get(_ context.Context, actor *auth.User, id string) (MedicalDocument, error) {
	if actor == nil {
		return MedicalDocument{}, auth.ErrUnauthenticated
	}
	d, err := s.store.Get(id)
	if err != nil {
		return MedicalDocument{}, notFound(err)
	}
	if !auth.CanView(actor, d.EmployeeID) {
		return MedicalDocument{}, auth.ErrForbidden
	}
	return d, nil
}

func (s *Service) ListForActor(_ context.Context, actor *auth.User) ([]MedicalDocument, error) {
	if actor == nil {
		return nil, auth.ErrUnauthenticated
	}
	return s.store.Filter(visibleTo(actor)), nil
}

func (s *Service) ListByEmployee(_ context.Context, actor *auth.User, employeeID string) ([]MedicalDocument, error) {
	if err := auth.RequireView(actor, employeeID); err != nil {
		return nil, err
	}
	return s.store.Filter(func(d MedicalDocument) bool { return d.EmployeeID == employeeID }), nil
}

func (s *Service) ListByStatus(_ context.Context, actor *auth.User, status Status) ([]MedicalDocument, error) {
	if actor == nil {
		return nil, auth.ErrUnauthenticated
	}
	visible := visibleTo(actor)
	return s.store.Filter(func(d MedicalDocument) bool { return visible(d) && d.Status() == status }), nil
}

func (s *Service) ListByLeaveRequest(_ context.Context, actor *auth.User, leaveRequestID string) ([]MedicalDocument, error) {
	if actor == nil {
		return nil, auth.ErrUnauthenticated
	}
	visible := visibleTo(actor)
	return s.store.Filter(func(d MedicalDocument) bool {
		return visible(d) && d.LeaveRequestID != nil && *d.LeaveRequestID == leaveRequestID
	}), nil
}

// ListPending is the verification queue.
func (s *Service) ListPending(_ context.Context, actor *auth.User) ([]MedicalDocument, error) {
	if err := auth.RequireSupervisor(actor); err != nil {
		return nil, err
	}
	return s.store.Filter(func(d MedicalDocument) bool { return d.Verification == nil }), nil
}

func (s *Service) CountByStatus(employeeID string, status Status) int {
	return s.store.Count(func(d MedicalDocument) bool {
		return (employeeID == "" || d.EmployeeID == employeeID) && d.Status() == status
	})
}

func (s *Service) Seed(d MedicalDocument) error {
	return s.store.Insert(d.ID, d)
}

func (s *Service) checkLeaveOwner(ctx context.Context, leaveID, employeeID string) error {
	if s.leave == nil {
		return records.Invalid("leaveRequestId", "leave linking is unavailable")
	}
	owner, err := s.leave.Owner(ctx, leaveID)
	if errors.Is(err, records.ErrNotFound) {
		return records.Invalid("leaveRequestId", "unknown leave request")
	}
	if err != nil {
		return err
	}
	if owner != employeeID {
		return records.Invalid("leaveRequestId", "belongs to another employee")
	}
	return nil
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

func visibleTo(actor *auth.User) func(MedicalDocument) bool {
	return func(d MedicalDocument) bool { return auth.CanView(actor, d.EmployeeID) }
}

func notFound(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
