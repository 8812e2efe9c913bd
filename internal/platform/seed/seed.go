// Package seed loads the demo organisation into the in-memory services.
package seed

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"

	"hrportal/internal/domain/auth"
	"hrportal/internal/domain/disciplinary"
	"hrportal/internal/domain/employees"
	"hrportal/internal/domain/leave"
	"hrportal/internal/domain/medical"
	"hrportal/internal/domain/performance"
	"hrportal/internal/domain/records"
)

//go:embed demo.json
var demoData []byte

type Targets struct {
	Directory *auth.Directory
	Employees *employees.Service
	Leave     *leave.Service
	Medical   *medical.Service
	Warnings  *disciplinary.Service
	Reviews   *performance.Service
}

type dataset struct {
	Users              []userRow            `json:"users"`
	Employees          []employees.Employee `json:"employees"`
	LeaveRequests      []leaveRow           `json:"leaveRequests"`
	MedicalDocuments   []medicalRow         `json:"medicalDocuments"`
	Warnings           []warningRow         `json:"warnings"`
	PerformanceReviews []reviewRow          `json:"performanceReviews"`
}

type userRow struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	Password    string   `json:"password"`
	Role        string   `json:"role"`
	Department  string   `json:"department"`
	Position    string   `json:"position"`
	Manager     string   `json:"manager"`
	Permissions []string `json:"permissions"`
}

type decisionRow struct {
	Status   string       `json:"status"`
	By       *string      `json:"approvedBy"`
	ByUserID string       `json:"approvedByUserId"`
	Date     records.Date `json:"approvedDate"`
}

type leaveRow struct {
	ID               string                     `json:"id"`
	EmployeeID       string                     `json:"employeeId"`
	EmployeeName     string                     `json:"employeeName"`
	Type             string                     `json:"type"`
	StartDate        records.Date               `json:"startDate"`
	EndDate          records.Date               `json:"endDate"`
	Reason           string                     `json:"reason"`
	AppliedDate      records.Date               `json:"appliedDate"`
	Comments         records.Thread             `json:"comments"`
	MedicalDocuments []leave.MedicalDocumentRef `json:"medicalDocuments"`
	decisionRow
}

type medicalRow struct {
	ID               string         `json:"id"`
	EmployeeID       string         `json:"employeeId"`
	EmployeeName     string         `json:"employeeName"`
	Title            string         `json:"title"`
	Description      string         `json:"description"`
	Filename         string         `json:"filename"`
	UploadDate       records.Date   `json:"uploadDate"`
	LeaveRequestID   *string        `json:"leaveRequestId"`
	Status           string         `json:"status"`
	VerifiedBy       *string        `json:"verifiedBy"`
	VerifiedByUserID string         `json:"verifiedByUserId"`
	VerificationDate records.Date   `json:"verificationDate"`
	Comments         records.Thread `json:"comments"`
}

type warningRow struct {
	ID              string                    `json:"id"`
	EmployeeID      string                    `json:"employeeId"`
	EmployeeName    string                    `json:"employeeName"`
	Type            string                    `json:"type"`
	Title           string                    `json:"title"`
	Description     string                    `json:"description"`
	IssueDate       records.Date              `json:"issueDate"`
	IssuedBy        string                    `json:"issuedBy"`
	IssuedByID      string                    `json:"issuedById"`
	Severity        string                    `json:"severity"`
	Status          string                    `json:"status"`
	Acknowledgement struct {
		Acknowledged bool         `json:"acknowledged"`
		Date         records.Date `json:"date"`
		Comments     *string      `json:"comments"`
	} `json:"acknowledgement"`
	FollowUpDate     records.Date              `json:"followUpDate"`
	FollowUpComments *string                   `json:"followUpComments"`
	Attachments      []disciplinary.Attachment `json:"attachments"`
}

type reviewRow struct {
	ID                  string                   `json:"id"`
	EmployeeID          string                   `json:"employeeId"`
	EmployeeName        string                   `json:"employeeName"`
	ReviewerID          string                   `json:"reviewerId"`
	ReviewerName        string                   `json:"reviewerName"`
	ReviewPeriod        string                   `json:"reviewPeriod"`
	ReviewDate          records.Date             `json:"reviewDate"`
	Categories          []performance.Category   `json:"categories"`
	Strengths           string                   `json:"strengths"`
	AreasForImprovement string                   `json:"areasForImprovement"`
	Goals               []string                 `json:"goals"`
	EmployeeComments    *string                  `json:"employeeComments"`
	Acknowledgement     struct {
		Acknowledged bool         `json:"acknowledged"`
		Date         records.Date `json:"date"`
	} `json:"employeeAcknowledgement"`
	Attachments []performance.Attachment `json:"attachments"`
}

// Load provisions the demo accounts and records. Any nil target is skipped.
func Load(t Targets) error {
	var data dataset
	dec := json.NewDecoder(bytes.NewReader(demoData))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&data); err != nil {
		return fmt.Errorf("decode demo data: %w", err)
	}

	if t.Directory != nil {
		for _, u := range data.Users {
			role, err := auth.ParseRole(u.Role)
			if err != nil {
				return fmt.Errorf("user %s: %w", u.ID, err)
			}
			user := auth.User{
				ID: u.ID, Name: u.Name, Email: u.Email, Role: role,
				Department: u.Department, Position: u.Position, Manager: u.Manager,
				Permissions: u.Permissions,
			}
			if err := t.Directory.Provision(user, u.Password); err != nil {
				return fmt.Errorf("user %s: %w", u.ID, err)
			}
		}
	}
	if t.Employees != nil {
		for _, e := range data.Employees {
			if err := t.Employees.Seed(e); err != nil {
				return fmt.Errorf("employee %s: %w", e.ID, err)
			}
		}
	}
	if t.Leave != nil {
		for _, row := range data.LeaveRequests {
			r, err := row.toRequest()
			if err == nil {
				err = t.Leave.Seed(r)
			}
			if err != nil {
				return fmt.Errorf("leave request %s: %w", row.ID, err)
			}
		}
	}
	if t.Medical != nil {
		for _, row := range data.MedicalDocuments {
			d, err := row.toDocument()
			if err == nil {
				err = t.Medical.Seed(d)
			}
			if err != nil {
				return fmt.Errorf("medical document %s: %w", row.ID, err)
			}
		}
	}
	if t.Warnings != nil {
		for _, row := range data.Warnings {
			w, err := row.toWarning()
			if err == nil {
				err = t.Warnings.Seed(w)
			}
			if err != nil {
				return fmt.Errorf("warning %s: %w", row.ID, err)
			}
		}
	}
	if t.Reviews != nil {
		for _, row := range data.PerformanceReviews {
			if err := t.Reviews.Seed(row.toReview()); err != nil {
				return fmt.Errorf("review %s: %w", row.ID, err)
			}
		}
	}
	return nil
}

func (d decisionRow) decision(pending, approved, rejected string) (*records.Decision, error) {
	var outcome records.Outcome
	switch d.Status {
	case pending:
		return nil, nil
	case approved:
		outcome = records.Outcome(approved)
	case rejected:
		outcome = records.Outcome(rejected)
	default:
		return nil, fmt.Errorf("unknown status %q", d.Status)
	}
	if d.By == nil || d.Date.IsZero() {
		return nil, fmt.Errorf("status %s needs decision actor and date", d.Status)
	}
	return &records.Decision{Outcome: outcome, By: *d.By, ByUserID: d.ByUserID, Date: d.Date}, nil
}

func (row leaveRow) toRequest() (leave.LeaveRequest, error) {
	days, err := leave.CalculateDays(row.StartDate.Time, row.EndDate.Time)
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	decision, err := row.decision(string(leave.StatusPending), string(leave.StatusApproved), string(leave.StatusRejected))
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	return leave.LeaveRequest{
		ID:               row.ID,
		EmployeeID:       row.EmployeeID,
		EmployeeName:     row.EmployeeName,
		Type:             row.Type,
		StartDate:        row.StartDate,
		EndDate:          row.EndDate,
		TotalDays:        days,
		Reason:           row.Reason,
		AppliedDate:      row.AppliedDate,
		Decision:         decision,
		Comments:         row.Comments,
		MedicalDocuments: row.MedicalDocuments,
	}, nil
}

func (row medicalRow) toDocument() (medical.MedicalDocument, error) {
	decision, err := decisionRow{
		Status: row.Status, By: row.VerifiedBy, ByUserID: row.VerifiedByUserID, Date: row.VerificationDate,
	}.decision(string(medical.StatusPending), string(medical.StatusVerified), string(medical.StatusRejected))
	if err != nil {
		return medical.MedicalDocument{}, err
	}
	return medical.MedicalDocument{
		ID:             row.ID,
		EmployeeID:     row.EmployeeID,
		EmployeeName:   row.EmployeeName,
		Title:          row.Title,
		Description:    row.Description,
		Filename:       row.Filename,
		UploadDate:     row.UploadDate,
		LeaveRequestID: row.LeaveRequestID,
		Verification:   decision,
		Comments:       row.Comments,
	}, nil
}

func (row warningRow) toWarning() (disciplinary.Warning, error) {
	severity, ok := disciplinary.ParseSeverity(row.Severity)
	if !ok {
		return disciplinary.Warning{}, fmt.Errorf("unknown severity %q", row.Severity)
	}
	w := disciplinary.Warning{
		ID:           row.ID,
		EmployeeID:   row.EmployeeID,
		EmployeeName: row.EmployeeName,
		Type:         row.Type,
		Title:        row.Title,
		Description:  row.Description,
		IssueDate:    row.IssueDate,
		IssuedBy:     row.IssuedBy,
		IssuedByID:   row.IssuedByID,
		Severity:     severity,
		Status:       disciplinary.Status(row.Status),
		Attachments:  row.Attachments,
	}
	if a := row.Acknowledgement; a.Acknowledged {
		ack := &disciplinary.Acknowledgement{Date: a.Date}
		if a.Comments != nil {
			ack.Comments = *a.Comments
		}
		w.Acknowledgement = ack
	}
	if !row.FollowUpDate.IsZero() {
		w.FollowUp = &disciplinary.FollowUp{Date: row.FollowUpDate, Comments: row.FollowUpComments}
	}
	return w, nil
}

func (row reviewRow) toReview() performance.PerformanceReview {
	p := performance.PerformanceReview{
		ID:                  row.ID,
		EmployeeID:          row.EmployeeID,
		EmployeeName:        row.EmployeeName,
		ReviewerID:          row.ReviewerID,
		ReviewerName:        row.ReviewerName,
		ReviewPeriod:        row.ReviewPeriod,
		ReviewDate:          row.ReviewDate,
		Categories:          row.Categories,
		OverallRating:       performance.OverallRating(row.Categories),
		Strengths:           row.Strengths,
		AreasForImprovement: row.AreasForImprovement,
		Goals:               row.Goals,
		EmployeeComments:    row.EmployeeComments,
		Attachments:         row.Attachments,
	}
	if row.Acknowledgement.Acknowledged {
		p.Acknowledgement = &performance.Acknowledgement{Date: row.Acknowledgement.Date}
	}
	return p
}
