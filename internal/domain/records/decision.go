package records

// Outcome is the terminal result of a supervisory decision.
type Outcome string

const (
	OutcomeApproved Outcome = "approved"
	OutcomeRejected Outcome = "rejected"
	OutcomeVerified Outcome = "verified"
)

// Decision records who closed a pending record and when. A record with no
// Decision is pending; one with a Decision always has both actor and date.
type Decision struct {
	Outcome  Outcome `json:"outcome"`
	By       string  `json:"by"`
	ByUserID string  `json:"byUserId"`
	Date     Date    `json:"date"`
}

func (d *Decision) Clone() *Decision {
	if d == nil {
		return nil
	}
	out := *d
	return &out
}
