package notify

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/resend/resend-go/v2"
	"go.uber.org/zap"
)

var ErrNoRecipients = errors.New("no recipients")

type ResendSender struct {
	client *resend.Client
	from   string
	logger *zap.Logger
}

func NewResendSender(apiKey, from string, logger *zap.Logger) *ResendSender {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ResendSender{
		client: resend.NewClient(apiKey),
		from:   from,
		logger: logger,
	}
}

func (s *ResendSender) Send(ctx context.Context, req SendRequest) (SendResult, error) {
	if len(req.To) == 0 {
		return SendResult{}, ErrNoRecipients
	}
	from := req.From
	if from == "" {
		from = s.from
	}

	params := &resend.SendEmailRequest{
		From:    from,
		To:      req.To,
		Subject: req.Subject,
		Html:    req.HTML,
	}
	if req.ReplyTo != "" {
		params.ReplyTo = req.ReplyTo
	}

	sent, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return SendResult{}, fmt.Errorf("resend send failed: %w", err)
	}

	s.logger.Debug("resend email sent", zap.String("message_id", sent.Id), zap.String("subject", req.Subject))
	return SendResult{
		MessageID: sent.Id,
		SentAt:    time.Now(),
	}, nil
}
