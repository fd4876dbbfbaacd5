package notify

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/hireloop/jobboard/internal/core/domain"
)

// LogSender writes notifications to the log instead of delivering them.
// Used in development and when no mail transport is configured.
type LogSender struct {
	log zerolog.Logger
}

func NewLogSender(log zerolog.Logger) *LogSender {
	return &LogSender{log: log}
}

func (s *LogSender) Send(_ context.Context, n domain.Notification) error {
	s.log.Info().
		Str("notification_id", n.ID).
		Str("kind", n.Kind).
		Str("to", n.To).
		Str("subject", n.Subject).
		Msg(n.Message)
	return nil
}
