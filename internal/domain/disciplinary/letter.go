package disciplinary

import (
	"context"
	"fmt"

	"hrportal/internal/domain/auth"
	"hrportal/internal/platform/pdf"
)

// Letter renders the warning as a PDF letter for its subject or HR.
func (s *Service) Letter(ctx context.Context, actor *auth.User, id string) ([]byte, error) {
	w, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	return pdf.Render(letterDocument(w))
}

func letterDocument(w Warning) pdf.Document {
	ack := "Not acknowledged"
	var ackBody []string
	if a := w.Acknowledgement; a != nil {
		ack = "Acknowledged on " + a.Date.String()
		if a.Comments != "" {
			ackBody = []string{a.Comments}
		}
	}
	followUp := []pdf.Field{{Label: "Scheduled", Value: "None"}}
	if f := w.FollowUp; f != nil {
		followUp = []pdf.Field{{Label: "Scheduled", Value: f.Date.String()}}
		if f.Comments != nil {
			followUp = append(followUp, pdf.Field{Label: "Notes", Value: *f.Comments})
		}
	}

	attachments := make([]string, 0, len(w.Attachments))
	for _, a := range w.Attachments {
		attachments = append(attachments, fmt.Sprintf("%s (%s)", a.Filename, a.UploadDate))
	}

	doc := pdf.Document{
		Title:    "Disciplinary Warning",
		Subtitle: w.Title,
		Sections: []pdf.Section{
			{
				Heading: "Details",
				Fields: []pdf.Field{
					{Label: "Employee", Value: w.EmployeeName},
					{Label: "Type", Value: w.Type},
					{Label: "Severity", Value: string(w.Severity)},
					{Label: "Status", Value: string(w.Status)},
					{Label: "Issued", Value: w.IssueDate.String()},
					{Label: "Issued by", Value: w.IssuedBy},
				},
			},
			{Heading: "Description", Body: []string{w.Description}},
			{Heading: "Acknowledgement", Fields: []pdf.Field{{Label: "Status", Value: ack}}, Body: ackBody},
			{Heading: "Follow-up", Fields: followUp},
		},
		Footer: "Reference " + w.ID,
	}
	if len(attachments) > 0 {
		doc.Sections = append(doc.Sections, pdf.Section{Heading: "Attachments", Body: attachments})
	}
	return doc
}
