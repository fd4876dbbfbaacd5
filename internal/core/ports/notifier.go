package ports

import (
	"context"

	"github.com/hireloop/jobboard/internal/core/domain"
)

// Notifier accepts notifications for asynchronous delivery. Notify only
// enqueues; delivery failures never reach the caller.
type Notifier interface {
	Notify(ctx context.Context, n domain.Notification) error
}

// NotificationSender delivers a single notification over some transport.
type NotificationSender interface {
	Send(ctx context.Context, n domain.Notification) error
}
