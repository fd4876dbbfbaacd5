package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/hireloop/jobboard/internal/core/domain"
	"github.com/hireloop/jobboard/internal/core/ports"
)

// notify hands msg to n. The triggering write is already stored, so
// a failure here is only logged.
func notify(ctx context.Context, n ports.Notifier, log zerolog.Logger, msg domain.Notification) {
	if n == nil {
		return
	}
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now().UTC()
	}
	if err := n.Notify(ctx, msg); err != nil {
		log.Warn().Err(err).Str("kind", msg.Kind).Str("notification_id", msg.ID).Msg("notification not queued")
	}
}

// validationError turns validator output into a domain validation error.
func validationError(err error) error {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return domain.Invalid("%s", err.Error())
	}
	msgs := make([]string, 0, len(ve))
	for _, fe := range ve {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, field+" is required")
		case "email":
			msgs = append(msgs, field+" must be a valid email")
		case "min":
			msgs = append(msgs, fmt.Sprintf("%s must have at least %s", field, fe.Param()))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of: %s", field, fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed validation (%s)", field, fe.Tag()))
		}
	}
	return domain.Invalid("%s", strings.Join(msgs, "; "))
}

// employerFor resolves the caller's employer profile for ownership checks.
// A caller without one owns nothing.
func employerFor(ctx context.Context, repo ports.EmployerRepository, userID string) (*domain.Employer, error) {
	e, err := repo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}
	return e, nil
}

// uniqueIDs returns ids with blanks and repeats removed, order preserved.
func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
