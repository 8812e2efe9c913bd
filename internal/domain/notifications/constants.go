package notifications

const (
	TypeLeaveSubmitted      = "leave_submitted"
	TypeLeaveApproved       = "leave_approved"
	TypeLeaveRejected       = "leave_rejected"
	TypeMedicalUploaded     = "medical_uploaded"
	TypeMedicalVerified     = "medical_verified"
	TypeMedicalRejected     = "medical_rejected"
	TypeWarningIssued       = "warning_issued"
	TypeWarningAcknowledged = "warning_acknowledged"
	TypeWarningFollowUp     = "warning_follow_up"
	TypeReviewAssigned      = "review_assigned"
	TypeReviewAcknowledged  = "review_acknowledged"
)
