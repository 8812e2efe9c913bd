package performance

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
	entityType     = "performance_review"
	transitionKind = "review"
)

type Service struct {
	store  *store.Collection[PerformanceReview]
	people records.People
	Hooks  records.Hooks
	Now    func() time.Time
}

func NewService(people records.People, hooks records.Hooks) *Service {
	return &Service{
		store:  store.NewCollection(cloneReview),
		people: people,
		Hooks:  hooks,
		Now:    time.Now,
	}
}

// Create opens a review awaiting the employee. The actor becomes the reviewer.
func (s *Service) Create(ctx context.Context, actor *auth.User, in CreateInput) (PerformanceReview, error) {
	if err := auth.RequireSupervisor(actor); err != nil {
		s.Hooks.Transition(transitionKind, "create", err)
		return PerformanceReview{}, err
	}
	employeeID := strings.TrimSpace(in.EmployeeID)
	switch {
	case employeeID == "":
		return PerformanceReview{}, records.Invalid("employeeId", "is required")
	case strings.TrimSpace(in.ReviewPeriod) == "":
		return PerformanceReview{}, records.Invalid("reviewPeriod", "is required")
	}
	if err := validateCategories(in.Categories); err != nil {
		return PerformanceReview{}, err
	}
	name, err := s.employeeName(ctx, employeeID)
	if err != nil {
		return PerformanceReview{}, err
	}

	categories := normalizeCategories(in.Categories)
	goals := make([]string, 0, len(in.Goals))
	for _, g := range in.Goals {
		if g = strings.TrimSpace(g); g != "" {
			goals = append(goals, g)
		}
	}
	review := PerformanceReview{
		ID:                  ids.New(),
		EmployeeID:          employeeID,
		EmployeeName:        name,
		ReviewerID:          actor.ID,
		ReviewerName:        actor.Name,
		ReviewPeriod:        strings.TrimSpace(in.ReviewPeriod),
		ReviewDate:          records.DateOf(s.now()),
		Categories:          categories,
		OverallRating:       OverallRating(categories),
		Strengths:           strings.TrimSpace(in.Strengths),
		AreasForImprovement: strings.TrimSpace(in.AreasForImprovement),
		Goals:               goals,
		Attachments:         []Attachment{},
	}
	if err := s.store.Insert(review.ID, review); err != nil {
		return PerformanceReview{}, err
	}
	s.Hooks.Transition(transitionKind, "create", nil)
	s.Hooks.Record(ctx, actor.ID, "review.create", entityType, review.ID, nil, review)
	s.Hooks.Notify(ctx, notifications.Message{
		UserID:     review.EmployeeID,
		ActorID:    actor.ID,
		Type:       notifications.TypeReviewAssigned,
		Title:      "Performance review ready",
		Body:       fmt.Sprintf("Your %s review is ready for acknowledgement. Overall rating %.1f.", review.ReviewPeriod, review.OverallRating),
		EntityType: entityType,
		EntityID:   review.ID,
	})
	return review, nil
}

// UpdateCategories replaces the category list and recomputes the overall
// rating. Completed reviews are frozen.
func (s *Service) UpdateCategories(ctx context.Context, actor *auth.User, id string, categories []Category) (PerformanceReview, error) {
	if err := auth.RequireSupervisor(actor); err != nil {
		s.Hooks.Transition(transitionKind, "update_categories", err)
		return PerformanceReview{}, err
	}
	if err := validateCategories(categories); err != nil {
		return PerformanceReview{}, err
	}
	categories = normalizeCategories(categories)

	var before PerformanceReview
	updated, err := s.store.Update(id, func(p *PerformanceReview) error {
		if p.Status() == StatusCompleted {
			return fmt.Errorf("review is completed: %w", ErrInvalidState)
		}
		before = cloneReview(*p)
		p.Categories = categories
		p.OverallRating = OverallRating(categories)
		return nil
	})
	err = notFound(err)
	s.Hooks.Transition(transitionKind, "update_categories", err)
	if err != nil {
		return PerformanceReview{}, err
	}
	s.Hooks.Record(ctx, actor.ID, "review.update_categories", entityType, id, before, updated)
	return updated, nil
}

// Acknowledge completes the review. Only the reviewed employee may do it, once.
func (s *Service) Acknowledge(ctx context.Context, actor *auth.User, id, comments string) (PerformanceReview, error) {
	if actor == nil {
		return PerformanceReview{}, auth.ErrUnauthenticated
	}
	now := s.now()
	text := strings.TrimSpace(comments)

	var before PerformanceReview
	updated, err := s.store.Update(id, func(p *PerformanceReview) error {
		if p.EmployeeID != actor.ID {
			return auth.ErrForbidden
		}
		if p.Acknowledgement != nil {
			return fmt.Errorf("review already acknowledged: %w", ErrInvalidState)
		}
		before = cloneReview(*p)
		p.EmployeeComments = &text
		p.Acknowledgement = &Acknowledgement{Date: records.DateOf(now)}
		return nil
	})
	err = notFound(err)
	s.Hooks.Transition(transitionKind, "acknowledge", err)
	if err != nil {
		return PerformanceReview{}, err
	}
	s.Hooks.Record(ctx, actor.ID, "review.acknowledge", entityType, id, before, updated)
	s.Hooks.Notify(ctx, notifications.Message{
		UserID:     updated.ReviewerID,
		ActorID:    actor.ID,
		Type:       notifications.TypeReviewAcknowledged,
		Title:      "Performance review acknowledged",
		Body:       fmt.Sprintf("%s acknowledged the %s review.", updated.EmployeeName, updated.ReviewPeriod),
		EntityType: entityType,
		EntityID:   id,
	})
	return updated, nil
}

func (s *Service) Get(_ context.Context, actor *auth.User, id string) (PerformanceReview, error) {
	if actor == nil {
		return PerformanceReview{}, auth.ErrUnauthenticated
	}
	p, err := s.store.Get(id)
	if err != nil {
		return PerformanceReview{}, notFound(err)
	}
	if !auth.CanView(actor, p.EmployeeID) {
		return PerformanceReview{}, auth.ErrForbidden
	}
	return p, nil
}

func (s *Service) ListForActor(_ context.Context, actor *auth.User) ([]PerformanceReview, error) {
	return s.list(actor, nil)
}

func (s *Service) ListByEmployee(_ context.Context, actor *auth.User, employeeID string) ([]PerformanceReview, error) {
	if err := auth.RequireView(actor, employeeID); err != nil {
		return nil, err
	}
	return s.list(actor, func(p PerformanceReview) bool { return p.EmployeeID == employeeID })
}

func (s *Service) ListByStatus(_ context.Context, actor *auth.User, status Status) ([]PerformanceReview, error) {
	return s.list(actor, func(p PerformanceReview) bool { return p.Status() == status })
}

func (s *Service) ListPendingAcknowledgement(_ context.Context, actor *auth.User) ([]PerformanceReview, error) {
	return s.list(actor, func(p PerformanceReview) bool { return p.Acknowledgement == nil })
}

// Summary aggregates every review. HR and admins only.
func (s *Service) Summary(_ context.Context, actor *auth.User) (Summary, error) {
	if err := auth.RequireSupervisor(actor); err != nil {
		return Summary{}, err
	}
	return buildSummary(s.store.Filter(nil)), nil
}

func (s *Service) CountPendingAcknowledgement(employeeID string) int {
	return s.store.Count(func(p PerformanceReview) bool {
		return (employeeID == "" || p.EmployeeID == employeeID) && p.Acknowledgement == nil
	})
}

func (s *Service) Seed(p PerformanceReview) error {
	return s.store.Insert(p.ID, p)
}

func (s *Service) list(actor *auth.User, match func(PerformanceReview) bool) ([]PerformanceReview, error) {
	if actor == nil {
		return nil, auth.ErrUnauthenticated
	}
	return s.store.Filter(func(p PerformanceReview) bool {
		return auth.CanView(actor, p.EmployeeID) && (match == nil || match(p))
	}), nil
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
