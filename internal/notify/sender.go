package notify

import (
	"context"
	"time"
)

// SendRequest is one outgoing e-mail.
type SendRequest struct {
	To      []string
	From    string
	Subject string
	HTML    string
	ReplyTo string
}

type SendResult struct {
	MessageID string
	SentAt    time.Time
}

type Sender interface {
	Send(ctx context.Context, req SendRequest) (SendResult, error)
}
