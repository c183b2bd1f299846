package notify

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// NoopSender logs instead of delivering. Used when no provider key is set.
type NoopSender struct {
	logger *zap.Logger
}

func NewNoopSender(logger *zap.Logger) *NoopSender {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NoopSender{logger: logger}
}

func (s *NoopSender) Send(_ context.Context, req SendRequest) (SendResult, error) {
	s.logger.Info("noop email send", zap.Strings("to", req.To), zap.String("subject", req.Subject))
	return SendResult{
		MessageID: fmt.Sprintf("noop-%d", time.Now().UnixNano()),
		SentAt:    time.Now(),
	}, nil
}
