package alerts

import "time"

// Task type names routed through asynq.
const (
	TaskWelcomeEmail       = "email:welcome"
	TaskSellerAutoApproval = "seller:auto_approve"
	TaskUserReport         = "moderation:user_report"
)

// EmailEnvelope is the rendered mail handed to the mailer.
type EmailEnvelope struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// WelcomeEmailPayload greets a new account.
type WelcomeEmailPayload struct {
	UserID   string        `json:"user_id"`
	Name     string        `json:"name"`
	Email    string        `json:"email"`
	Envelope EmailEnvelope `json:"envelope"`
	SentAt   time.Time     `json:"sent_at"`
}

// SellerAutoApprovalPayload approves a pending application after the
// configured delay.
type SellerAutoApprovalPayload struct {
	UserID    string    `json:"user_id"`
	AppliedAt time.Time `json:"applied_at"`
}

// UserReportPayload records an abuse report. Reports are accepted and
// logged; there is no moderation queue entity.
type UserReportPayload struct {
	ReportedBy   string    `json:"reported_by"`
	ReportedUser string    `json:"reported_user"`
	ItemID       string    `json:"item_id"`
	HostelID     string    `json:"hostel_id"`
	Reason       string    `json:"reason"`
	Description  string    `json:"description"`
	ReportedAt   time.Time `json:"reported_at"`
}
