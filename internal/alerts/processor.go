package alerts

import (
	"context"
	"encoding/json"
	"log"
	"os"

	"github.com/hibiken/asynq"
)

var (
	client *asynq.Client
	server *asynq.Server
)

// SellerApprovalFunc performs the actual approval when the delayed
// auto-approval task fires. Wired from main to avoid an import cycle
// with the auth package.
var SellerApprovalFunc func(ctx context.Context, userID string) error

// Init starts the asynq server and initializes a shared client.
func Init(redisAddr string) {
	if redisAddr == "" {
		redisAddr = os.Getenv("REDIS_ADDR")
	}
	if redisAddr == "" {
		redisAddr = "127.0.0.1:6379"
	}

	redisOpt := asynq.RedisClientOpt{Addr: redisAddr}
	client = asynq.NewClient(redisOpt)

	server = asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: 5,
		Queues: map[string]int{
			"emails":     3,
			"workflows":  5,
			"moderation": 2,
		},
	})

	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskWelcomeEmail, handleWelcomeEmail)
	mux.HandleFunc(TaskSellerAutoApproval, handleSellerAutoApproval)
	mux.HandleFunc(TaskUserReport, handleUserReport)

	go func() {
		if err := server.Run(mux); err != nil {
			log.Printf("alerts worker stopped: %v", err)
		}
	}()
}

func handleWelcomeEmail(ctx context.Context, t *asynq.Task) error {
	var p WelcomeEmailPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return err
	}
	return sendMail(p.Envelope)
}

func handleSellerAutoApproval(ctx context.Context, t *asynq.Task) error {
	var p SellerAutoApprovalPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return err
	}
	if SellerApprovalFunc == nil {
		log.Printf("seller auto-approval skipped, no approval func wired (user %s)", p.UserID)
		return nil
	}
	if err := SellerApprovalFunc(ctx, p.UserID); err != nil {
		return err
	}
	log.Printf("seller application auto-approved for user %s", p.UserID)
	return nil
}

// handleUserReport records the report in the worker log. Accepted and
// logged only; there is no moderation entity to file it into.
func handleUserReport(ctx context.Context, t *asynq.Task) error {
	var p UserReportPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return err
	}
	log.Printf("User Report: reporter=%s reported=%s item=%s hostel=%s reason=%q description=%q at=%s",
		p.ReportedBy, p.ReportedUser, p.ItemID, p.HostelID, p.Reason, p.Description, p.ReportedAt.Format("2006-01-02T15:04:05Z07:00"))
	return nil
}
