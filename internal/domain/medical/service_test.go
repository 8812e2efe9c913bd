package medical

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"hrportal/internal/domain/auth"
	"hrportal/internal/domain/leave"
	"hrportal/internal/domain/records"
)

var (
	hrUser = &auth.User{ID: "2", Name: "HR Manager", Role: auth.RoleHR, Permissions: auth.PermissionsFor(auth.RoleHR)}
	jane   = &auth.User{ID: "4", Name: "Jane Doe", Role: auth.RoleEmployee, Permissions: auth.PermissionsFor(auth.RoleEmployee)}
	bob    = &auth.User{ID: "5", Name: "Bob Johnson", Role: auth.RoleEmployee, Permissions: auth.PermissionsFor(auth.RoleEmployee)}
)

var today = time.Date(2023, 11, 9, 14, 30, 0, 0, time.UTC)

func newServices(t *testing.T) (*Service, *leave.Service) {
	t.Helper()
	leaveSvc := leave.NewService(nil, records.Hooks{})
	leaveSvc.Now = func() time.Time { return today }
	svc := NewService(nil, leaveSvc, records.Hooks{})
	svc.Now = func() time.Time { return today }
	return svc, leaveSvc
}

func TestUploadThenVerifyScenario(t *testing.T) {
	svc, _ := newServices(t)
	ctx := context.Background()

	doc, err := svc.Upload(ctx, jane, UploadInput{Title: "Doctor's Note", Filename: "note.pdf"})
	require.NoError(t, err)
	require.Equal(t, StatusPending, doc.Status())
	require.Nil(t, doc.Verification)
	require.Nil(t, doc.LeaveRequestID)
	require.Equal(t, "Jane Doe", doc.EmployeeName)

	raw, err := json.Marshal(doc)
	require.NoError(t, err)
	var view map[string]any
	require.NoError(t, json.Unmarshal(raw, &view))
	require.Equal(t, "pending", view["status"])
	require.Nil(t, view["verifiedBy"])

	verified, err := svc.Verify(ctx, hrUser, doc.ID, "")
	require.NoError(t, err)
	require.Equal(t, StatusVerified, verified.Status())
	require.Equal(t, "HR Manager", verified.Verification.By)
	require.Equal(t, "2023-11-09", verified.Verification.Date.String())
	require.Empty(t, verified.Comments)

	_, err = svc.Verify(ctx, hrUser, doc.ID, "again")
	require.ErrorIs(t, err, ErrInvalidState)
}

func TestVerifyCommentGoesToDocumentThread(t *testing.T) {
	svc, leaveSvc := newServices(t)
	ctx := context.Background()

	req, err := leaveSvc.Submit(ctx, jane, leave.SubmitInput{
		Type: "Sick Leave", StartDate: records.MustParseDate("2023-11-10"),
		EndDate: records.MustParseDate("2023-11-12"), Reason: "Flu",
	})
	require.NoError(t, err)

	doc, err := svc.Upload(ctx, jane, UploadInput{Title: "Doctor's Note", Filename: "note.pdf", LeaveRequestID: req.ID})
	require.NoError(t, err)
	require.Equal(t, req.ID, *doc.LeaveRequestID)

	linked, err := leaveSvc.Get(ctx, jane, req.ID)
	require.NoError(t, err)
	require.Len(t, linked.MedicalDocuments, 1)
	require.Equal(t, "pending", linked.MedicalDocuments[0].Status)

	verified, err := svc.Verify(ctx, hrUser, doc.ID, "Document verified")
	require.NoError(t, err)
	require.Len(t, verified.Comments, 1)
	require.Equal(t, "Document verified", verified.Comments[0].Text)

	linked, err = leaveSvc.Get(ctx, jane, req.ID)
	require.NoError(t, err)
	require.Empty(t, linked.Comments)
	require.Equal(t, leave.StatusPending, linked.Status())
	require.Equal(t, "verified", linked.MedicalDocuments[0].Status)

	byLeave, err := svc.ListByLeaveRequest(ctx, hrUser, req.ID)
	require.NoError(t, err)
	require.Len(t, byLeave, 1)
}

func TestUploadRejectsForeignLeaveRequest(t *testing.T) {
	svc, leaveSvc := newServices(t)
	ctx := context.Background()

	req, err := leaveSvc.Submit(ctx, jane, leave.SubmitInput{
		Type: "Sick Leave", StartDate: records.MustParseDate("2023-11-10"),
		EndDate: records.MustParseDate("2023-11-10"), Reason: "Flu",
	})
	require.NoError(t, err)

	var verr *records.ValidationError
	_, err = svc.Upload(ctx, bob, UploadInput{Title: "Note", Filename: "n.pdf", LeaveRequestID: req.ID})
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "leaveRequestId", verr.Field)

	_, err = svc.Upload(ctx, bob, UploadInput{Title: "Note", Filename: "n.pdf", LeaveRequestID: "missing"})
	require.ErrorAs(t, err, &verr)

	_, err = svc.Upload(ctx, bob, UploadInput{EmployeeID: "4", Title: "Note", Filename: "n.pdf"})
	require.ErrorIs(t, err, auth.ErrForbidden)
}

// brokenLinks owns every leave request but cannot record the link.
type brokenLinks struct{ owner string }

func (b brokenLinks) Owner(context.Context, string) (string, error) { return b.owner, nil }

func (brokenLinks) LinkDocument(context.Context, string, leave.MedicalDocumentRef) error {
	return errors.New("leave store unavailable")
}

func (brokenLinks) UpdateDocumentStatus(context.Context, string, string, string) error { return nil }

func TestUploadLeavesNothingBehindWhenLinkFails(t *testing.T) {
	svc := NewService(nil, brokenLinks{owner: "4"}, records.Hooks{})
	svc.Now = func() time.Time { return today }
	ctx := context.Background()

	_, err := svc.Upload(ctx, jane, UploadInput{Title: "Note", Filename: "n.pdf", LeaveRequestID: "l9"})
	require.Error(t, err)

	docs, err := svc.ListForActor(ctx, hrUser)
	require.NoError(t, err)
	require.Empty(t, docs)
}

func TestRejectNeedsReasonAndSupervisor(t *testing.T) {
	svc, _ := newServices(t)
	ctx := context.Background()
	doc, err := svc.Upload(ctx, bob, UploadInput{Title: "Claim", Filename: "claim.pdf"})
	require.NoError(t, err)

	_, err = svc.Reject(ctx, bob, doc.ID, "")
	require.ErrorIs(t, err, auth.ErrForbidden)

	var verr *records.ValidationError
	_, err = svc.Reject(ctx, hrUser, doc.ID, "")
	require.ErrorAs(t, err, &verr)

	rejected, err := svc.Reject(ctx, hrUser, doc.ID, "Illegible scan")
	require.NoError(t, err)
	require.Equal(t, StatusRejected, rejected.Status())
	require.Equal(t, "Illegible scan", rejected.Comments[0].Text)

	pending, err := svc.ListPending(ctx, hrUser)
	require.NoError(t, err)
	require.Empty(t, pending)
	require.Equal(t, 1, svc.CountByStatus("5", StatusRejected))
}

func TestListingsRespectOwnership(t *testing.T) {
	svc, _ := newServices(t)
	ctx := context.Background()
	_, err := svc.Upload(ctx, bob, UploadInput{Title: "Claim", Filename: "claim.pdf"})
	require.NoError(t, err)
	janeDoc, err := svc.Upload(ctx, jane, UploadInput{Title: "Note", Filename: "note.pdf"})
	require.NoError(t, err)

	own, err := svc.ListForActor(ctx, jane)
	require.NoError(t, err)
	require.Len(t, own, 1)

	all, err := svc.ListByStatus(ctx, hrUser, StatusPending)
	require.NoError(t, err)
	require.Len(t, all, 2)

	_, err = svc.Get(ctx, bob, janeDoc.ID)
	require.ErrorIs(t, err, auth.ErrForbidden)
	_, err = svc.ListByEmployee(ctx, bob, "4")
	require.ErrorIs(t, err, auth.ErrForbidden)

	commented, err := svc.AddComment(ctx, jane, janeDoc.ID, "Original copy available")
	require.NoError(t, err)
	require.Len(t, commented.Comments, 1)
}
