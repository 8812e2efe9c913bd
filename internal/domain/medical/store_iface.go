package medical

import (
	"context"

	"hrportal/internal/domain/leave"
)

// LeaveLinks is the slice of the leave service that medical uploads touch.
type LeaveLinks interface {
	Owner(ctx context.Context, id string) (string, error)
	LinkDocument(ctx context.Context, id string, ref leave.MedicalDocumentRef) error
	UpdateDocumentStatus(ctx context.Context, id, documentID, status string) error
}
