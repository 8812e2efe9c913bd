package performance

import (
	"context"
	"fmt"

	"hrportal/internal/domain/auth"
	"hrportal/internal/platform/pdf"
)

// Report renders the review as a PDF.
func (s *Service) Report(ctx context.Context, actor *auth.User, id string) ([]byte, error) {
	p, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	return pdf.Render(reportDocument(p))
}

func reportDocument(p PerformanceReview) pdf.Document {
	ratings := make([]pdf.Field, 0, len(p.Categories))
	var notes []string
	for _, c := range p.Categories {
		ratings = append(ratings, pdf.Field{Label: c.Name, Value: fmt.Sprintf("%d / %d", c.Rating, MaxRating)})
		if c.Comments != "" {
			notes = append(notes, c.Name+": "+c.Comments)
		}
	}

	ack := []pdf.Field{{Label: "Status", Value: "Awaiting employee"}}
	if p.Acknowledgement != nil {
		ack = []pdf.Field{{Label: "Status", Value: "Acknowledged on " + p.Acknowledgement.Date.String()}}
	}
	var employeeNotes []string
	if p.EmployeeComments != nil && *p.EmployeeComments != "" {
		employeeNotes = []string{*p.EmployeeComments}
	}

	goals := make([]string, 0, len(p.Goals))
	for i, g := range p.Goals {
		goals = append(goals, fmt.Sprintf("%d. %s", i+1, g))
	}

	return pdf.Document{
		Title:    "Performance Review",
		Subtitle: fmt.Sprintf("%s, %s", p.EmployeeName, p.ReviewPeriod),
		Sections: []pdf.Section{
			{
				Heading: "Summary",
				Fields: []pdf.Field{
					{Label: "Reviewer", Value: p.ReviewerName},
					{Label: "Review date", Value: p.ReviewDate.String()},
					{Label: "Overall rating", Value: fmt.Sprintf("%.1f", p.OverallRating)},
					{Label: "Status", Value: string(p.Status())},
				},
			},
			{Heading: "Ratings", Fields: ratings, Body: notes},
			{Heading: "Strengths", Body: []string{p.Strengths}},
			{Heading: "Areas for improvement", Body: []string{p.AreasForImprovement}},
			{Heading: "Goals", Body: goals},
			{Heading: "Employee acknowledgement", Fields: ack, Body: employeeNotes},
		},
		Footer: "Reference " + p.ID,
	}
}
