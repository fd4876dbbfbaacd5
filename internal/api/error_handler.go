package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	goerrors "github.com/go-errors/errors"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/hireloop/jobboard/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their HTTP status codes.
//   - Logs unexpected errors, with the stack captured where they were wrapped,
//     without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, auth middleware, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, validationMessage(err)
	case errors.Is(err, domain.ErrProfileNotFound),
		errors.Is(err, domain.ErrDuplicateApplication),
		errors.Is(err, domain.ErrJobInactive),
		errors.Is(err, domain.ErrUserExists),
		errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusBadRequest, sentinelMessage(err)
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, domain.ErrUnauthorized.Error()
	case errors.Is(err, domain.ErrJobNotFound),
		errors.Is(err, domain.ErrApplicationNotFound),
		errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, sentinelMessage(err)
	case errors.Is(err, domain.ErrTooManyAttempts):
		return http.StatusTooManyRequests, domain.ErrTooManyAttempts.Error()
	}

	// Unexpected error: log the real cause, return a generic message.
	ev := log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID))
	var stackErr *goerrors.Error
	if errors.As(err, &stackErr) {
		ev = ev.Str("stack", string(stackErr.Stack()))
	}
	ev.Msg("unhandled error")

	return http.StatusInternalServerError, "server error"
}

// validationMessage strips the sentinel prefix added by domain.Invalid.
func validationMessage(err error) string {
	msg := err.Error()
	if rest, ok := strings.CutPrefix(msg, domain.ErrValidation.Error()+": "); ok {
		return rest
	}
	return msg
}

// sentinelMessage returns the message of the first known sentinel in err's
// chain, hiding any wrapping context.
func sentinelMessage(err error) string {
	for _, s := range []error{
		domain.ErrProfileNotFound,
		domain.ErrDuplicateApplication,
		domain.ErrJobInactive,
		domain.ErrUserExists,
		domain.ErrInvalidCredentials,
		domain.ErrJobNotFound,
		domain.ErrApplicationNotFound,
		domain.ErrUserNotFound,
	} {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return err.Error()
}
