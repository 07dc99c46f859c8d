// Package notify delivers ticket notifications. The default sender only
// logs; wiring a real SMTP or provider-backed sender is a deployment
// concern and slots in behind the same interface.
package notify

import (
	"context"

	"go.uber.org/zap"
)

// Message is a rendered notification ready for delivery.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Sender delivers a notification message.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

type logSender struct {
	logger *zap.Logger
}

// NewLogSender returns a Sender that records messages to the log
// instead of delivering them.
func NewLogSender(logger *zap.Logger) Sender {
	return &logSender{logger: logger}
}

func (s *logSender) Send(ctx context.Context, msg Message) error {
	s.logger.Info("notification sent",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.Int("body_bytes", len(msg.Body)))
	return nil
}
