package alerts

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

// ensureClient returns a usable client instance
func ensureClient() *asynq.Client {
	if client == nil {
		Init("")
	}
	return client
}

// EnqueueWelcomeEmail schedules a welcome email to the user
func EnqueueWelcomeEmail(userID, email, name string) error {
	env := EmailEnvelope{
		To:      email,
		Subject: fmt.Sprintf("Welcome to Fretio, %s!", name),
		Body:    fmt.Sprintf("Hi %s, thanks for joining Fretio. Browse what your hostel mates are selling and list your own items once you are an approved seller.", name),
	}
	payload := WelcomeEmailPayload{UserID: userID, Name: name, Email: email, Envelope: env, SentAt: time.Now()}
	b, _ := json.Marshal(payload)
	task := asynq.NewTask(TaskWelcomeEmail, b)
	_, err := ensureClient().Enqueue(task, asynq.Queue("emails"))
	return err
}

// EnqueueSellerAutoApproval schedules approval of a pending seller
// application after the given delay.
func EnqueueSellerAutoApproval(userID string, delay time.Duration) error {
	payload := SellerAutoApprovalPayload{UserID: userID, AppliedAt: time.Now()}
	b, _ := json.Marshal(payload)
	task := asynq.NewTask(TaskSellerAutoApproval, b)
	_, err := ensureClient().Enqueue(task, asynq.Queue("workflows"), asynq.ProcessIn(delay))
	return err
}

// EnqueueUserReport records an abuse report for review.
func EnqueueUserReport(reportedBy, reportedUser, itemID, hostelID, reason, description string) error {
	payload := UserReportPayload{
		ReportedBy:   reportedBy,
		ReportedUser: reportedUser,
		ItemID:       itemID,
		HostelID:     hostelID,
		Reason:       reason,
		Description:  description,
		ReportedAt:   time.Now(),
	}
	b, _ := json.Marshal(payload)
	task := asynq.NewTask(TaskUserReport, b)
	_, err := ensureClient().Enqueue(task, asynq.Queue("moderation"))
	return err
}
