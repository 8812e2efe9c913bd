package leave

import (
	"encoding/json"
	"slices"

	"hrportal/internal/domain/records"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

func ParseStatus(raw string) (Status, bool) {
	switch s := Status(raw); s {
	case StatusPending, StatusApproved, StatusRejected:
		return s, true
	}
	return "", false
}

// MedicalDocumentRef is the leave-side view of a linked medical document.
type MedicalDocumentRef struct {
	ID         string       `json:"id"`
	Filename   string       `json:"fileName"`
	UploadDate records.Date `json:"uploadDate"`
	Status     string       `json:"status"`
}

type LeaveRequest struct {
	ID               string               `json:"id"`
	EmployeeID       string               `json:"employeeId"`
	EmployeeName     string               `json:"employeeName"`
	Type             string               `json:"type"`
	StartDate        records.Date         `json:"startDate"`
	EndDate          records.Date         `json:"endDate"`
	TotalDays        int                  `json:"totalDays"`
	Reason           string               `json:"reason"`
	AppliedDate      records.Date         `json:"appliedDate"`
	Decision         *records.Decision    `json:"-"`
	Comments         records.Thread       `json:"comments"`
	MedicalDocuments []MedicalDocumentRef `json:"medicalDocuments"`
}

// Status is pending until a decision exists.
func (r LeaveRequest) Status() Status {
	if r.Decision == nil {
		return StatusPending
	}
	return Status(r.Decision.Outcome)
}

func (r LeaveRequest) MarshalJSON() ([]byte, error) {
	type plain LeaveRequest
	out := struct {
		plain
		Status       Status        `json:"status"`
		ApprovedBy   *string       `json:"approvedBy"`
		ApprovedDate *records.Date `json:"approvedDate"`
	}{plain: plain(r), Status: r.Status()}
	if r.Decision != nil {
		by, date := r.Decision.By, r.Decision.Date
		out.ApprovedBy = &by
		out.ApprovedDate = &date
	}
	return json.Marshal(out)
}

type SubmitInput struct {
	EmployeeID string
	Type       string
	StartDate  records.Date
	EndDate    records.Date
	Reason     string
}

func cloneRequest(r LeaveRequest) LeaveRequest {
	r.Decision = r.Decision.Clone()
	r.Comments = r.Comments.Clone()
	r.MedicalDocuments = slices.Clone(r.MedicalDocuments)
	if r.MedicalDocuments == nil {
		r.MedicalDocuments = []MedicalDocumentRef{}
	}
	return r
}
