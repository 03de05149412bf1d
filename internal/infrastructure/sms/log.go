package sms

import (
	"context"

	"github.com/loan-landing-api/internal/pkg/phone"
	"go.uber.org/zap"
)

// LogSender writes messages to the log instead of sending them. Development only.
type LogSender struct {
	logger *zap.Logger
}

func NewLogSender(logger *zap.Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) SendSMS(_ context.Context, to, message string) error {
	s.logger.Info("sms (not sent)", zap.String("to", phone.Mask(to)), zap.String("message", message))
	return nil
}
