package performance

import (
	"encoding/json"
	"slices"

	"hrportal/internal/domain/records"
)

type Status string

const (
	StatusPendingEmployee Status = "pending_employee"
	StatusCompleted       Status = "completed"
)

func ParseStatus(raw string) (Status, bool) {
	switch s := Status(raw); s {
	case StatusPendingEmployee, StatusCompleted:
		return s, true
	}
	return "", false
}

const (
	MinRating = 1
	MaxRating = 5
)

type Category struct {
	Name     string `json:"name"`
	Rating   int    `json:"rating"`
	Comments string `json:"comments"`
}

type Acknowledgement struct {
	Date records.Date
}

type Attachment struct {
	ID         string       `json:"id"`
	Filename   string       `json:"filename"`
	UploadDate records.Date `json:"uploadDate"`
}

type PerformanceReview struct {
	ID                  string           `json:"id"`
	EmployeeID          string           `json:"employeeId"`
	EmployeeName        string           `json:"employeeName"`
	ReviewerID          string           `json:"reviewerId"`
	ReviewerName        string           `json:"reviewerName"`
	ReviewPeriod        string           `json:"reviewPeriod"`
	ReviewDate          records.Date     `json:"reviewDate"`
	Categories          []Category       `json:"categories"`
	OverallRating       float64          `json:"overallRating"`
	Strengths           string           `json:"strengths"`
	AreasForImprovement string           `json:"areasForImprovement"`
	Goals               []string         `json:"goals"`
	EmployeeComments    *string          `json:"employeeComments"`
	Acknowledgement     *Acknowledgement `json:"-"`
	Attachments         []Attachment     `json:"attachments"`
}

// Status is completed exactly when the employee has acknowledged.
func (p PerformanceReview) Status() Status {
	if p.Acknowledgement == nil {
		return StatusPendingEmployee
	}
	return StatusCompleted
}

type acknowledgementView struct {
	Acknowledged bool          `json:"acknowledged"`
	Date         *records.Date `json:"date"`
}

func (p PerformanceReview) MarshalJSON() ([]byte, error) {
	type plain PerformanceReview
	out := struct {
		plain
		Status                  Status              `json:"status"`
		EmployeeAcknowledgement acknowledgementView `json:"employeeAcknowledgement"`
	}{plain: plain(p), Status: p.Status()}
	if p.Acknowledgement != nil {
		date := p.Acknowledgement.Date
		out.EmployeeAcknowledgement = acknowledgementView{Acknowledged: true, Date: &date}
	}
	return json.Marshal(out)
}

type CreateInput struct {
	EmployeeID          string
	ReviewPeriod        string
	Categories          []Category
	Strengths           string
	AreasForImprovement string
	Goals               []string
}

// Summary aggregates reviews for the HR overview.
type Summary struct {
	ReviewsTotal       int            `json:"reviewsTotal"`
	ReviewsCompleted   int            `json:"reviewsCompleted"`
	CompletionRate     float64        `json:"completionRate"`
	AverageRating      float64        `json:"averageRating"`
	RatingDistribution map[string]int `json:"ratingDistribution"`
}

func cloneReview(p PerformanceReview) PerformanceReview {
	p.Categories = slices.Clone(p.Categories)
	p.Goals = slices.Clone(p.Goals)
	p.Attachments = slices.Clone(p.Attachments)
	if p.Categories == nil {
		p.Categories = []Category{}
	}
	if p.Goals == nil {
		p.Goals = []string{}
	}
	if p.Attachments == nil {
		p.Attachments = []Attachment{}
	}
	if p.EmployeeComments != nil {
		c := *p.EmployeeComments
		p.EmployeeComments = &c
	}
	if p.Acknowledgement != nil {
		a := *p.Acknowledgement
		p.Acknowledgement = &a
	}
	return p
}
