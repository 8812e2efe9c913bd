package disciplinary

import (
	"encoding/json"
	"slices"

	"hrportal/internal/domain/records"
)

type Severity string

const (
	SeverityMinor    Severity = "minor"
	SeverityModerate Severity = "moderate"
	SeveritySerious  Severity = "serious"
)

func ParseSeverity(raw string) (Severity, bool) {
	switch s := Severity(raw); s {
	case SeverityMinor, SeverityModerate, SeveritySerious:
		return s, true
	}
	return "", false
}

func (s Severity) rank() int {
	switch s {
	case SeveritySerious:
		return 3
	case SeverityModerate:
		return 2
	case SeverityMinor:
		return 1
	}
	return 0
}

// Status is fixed at issue time. Nothing moves a warning to resolved.
type Status string

const (
	StatusActive   Status = "active"
	StatusPending  Status = "pending"
	StatusResolved Status = "resolved"
)

type Acknowledgement struct {
	Date     records.Date
	Comments string
}

type FollowUp struct {
	Date     records.Date
	Comments *string
}

type Attachment struct {
	ID         string       `json:"id"`
	Filename   string       `json:"filename"`
	UploadDate records.Date `json:"uploadDate"`
}

type Warning struct {
	ID              string           `json:"id"`
	EmployeeID      string           `json:"employeeId"`
	EmployeeName    string           `json:"employeeName"`
	Type            string           `json:"type"`
	Title           string           `json:"title"`
	Description     string           `json:"description"`
	IssueDate       records.Date     `json:"issueDate"`
	IssuedBy        string           `json:"issuedBy"`
	IssuedByID      string           `json:"issuedById,omitempty"`
	Severity        Severity         `json:"severity"`
	Status          Status           `json:"status"`
	Acknowledgement *Acknowledgement `json:"-"`
	FollowUp        *FollowUp        `json:"-"`
	Attachments     []Attachment     `json:"attachments"`
}

func (w Warning) Acknowledged() bool {
	return w.Acknowledgement != nil
}

type acknowledgementView struct {
	Acknowledged bool          `json:"acknowledged"`
	Date         *records.Date `json:"date"`
	Comments     *string       `json:"comments"`
}

func (w Warning) MarshalJSON() ([]byte, error) {
	type plain Warning
	out := struct {
		plain
		Acknowledgement  acknowledgementView `json:"acknowledgement"`
		FollowUpDate     *records.Date       `json:"followUpDate"`
		FollowUpComments *string             `json:"followUpComments"`
	}{plain: plain(w)}
	if a := w.Acknowledgement; a != nil {
		date, comments := a.Date, a.Comments
		out.Acknowledgement = acknowledgementView{Acknowledged: true, Date: &date, Comments: &comments}
	}
	if f := w.FollowUp; f != nil {
		date := f.Date
		out.FollowUpDate = &date
		out.FollowUpComments = f.Comments
	}
	return json.Marshal(out)
}

type IssueInput struct {
	EmployeeID  string
	Type        string
	Title       string
	Description string
	Severity    Severity
	Attachments []string
}

func cloneWarning(w Warning) Warning {
	if w.Acknowledgement != nil {
		a := *w.Acknowledgement
		w.Acknowledgement = &a
	}
	if w.FollowUp != nil {
		f := *w.FollowUp
		if f.Comments != nil {
			c := *f.Comments
			f.Comments = &c
		}
		w.FollowUp = &f
	}
	w.Attachments = slices.Clone(w.Attachments)
	if w.Attachments == nil {
		w.Attachments = []Attachment{}
	}
	return w
}

// compareWarnings orders serious before minor, then newest issue first.
func compareWarnings(a, b Warning) int {
	if d := b.Severity.rank() - a.Severity.rank(); d != 0 {
		return d
	}
	return b.IssueDate.Compare(a.IssueDate.Time)
}
