package medical

import (
	"encoding/json"

	"hrportal/internal/domain/records"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusVerified Status = "verified"
	StatusRejected Status = "rejected"
)

func ParseStatus(raw string) (Status, bool) {
	switch s := Status(raw); s {
	case StatusPending, StatusVerified, StatusRejected:
		return s, true
	}
	return "", false
}

type MedicalDocument struct {
	ID             string            `json:"id"`
	EmployeeID     string            `json:"employeeId"`
	EmployeeName   string            `json:"employeeName"`
	Title          string            `json:"title"`
	Description    string            `json:"description"`
	Filename       string            `json:"filename"`
	UploadDate     records.Date      `json:"uploadDate"`
	LeaveRequestID *string           `json:"leaveRequestId"`
	Verification   *records.Decision `json:"-"`
	Comments       records.Thread    `json:"comments"`
}

func (d MedicalDocument) Status() Status {
	if d.Verification == nil {
		return StatusPending
	}
	return Status(d.Verification.Outcome)
}

func (d MedicalDocument) MarshalJSON() ([]byte, error) {
	type plain MedicalDocument
	out := struct {
		plain
		Status           Status        `json:"status"`
		VerifiedBy       *string       `json:"verifiedBy"`
		VerificationDate *records.Date `json:"verificationDate"`
	}{plain: plain(d), Status: d.Status()}
	if d.Verification != nil {
		by, date := d.Verification.By, d.Verification.Date
		out.VerifiedBy = &by
		out.VerificationDate = &date
	}
	return json.Marshal(out)
}

type UploadInput struct {
	EmployeeID     string
	Title          string
	Description    string
	Filename       string
	LeaveRequestID string
}

func cloneDocument(d MedicalDocument) MedicalDocument {
	d.Verification = d.Verification.Clone()
	d.Comments = d.Comments.Clone()
	if d.LeaveRequestID != nil {
		id := *d.LeaveRequestID
		d.LeaveRequestID = &id
	}
	return d
}
