// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	deliverycontext "brewhouse/internal/delivery/context"
	"brewhouse/internal/domain/entity"
	domainerrors "brewhouse/internal/domain/errors"
	"brewhouse/internal/domain/repository"
	"brewhouse/internal/errors"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// loggerFor returns a request-scoped logger if available, otherwise falls back to the given logger.
func loggerFor(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, fallback)
}

func findSession(ctx context.Context, repo repository.SessionRepository, sessionID uuid.UUID) (*entity.Session, error) {
	session, err := repo.FindByID(ctx, sessionID)
	if errors.Is(err, repository.ErrSessionNotFound) {
		return nil, errors.Wrap(domainerrors.ErrSessionNotFound, "session lookup")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find session")
	}

	return session, nil
}

// findSessionUser returns the user attached to the session, or nil when nobody is logged in.
func findSessionUser(ctx context.Context, repo repository.UserRepository, session *entity.Session) (*entity.User, error) {
	if !session.IsAuthenticated() {
		return nil, nil
	}

	user, err := repo.FindByID(ctx, *session.UserID)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, errors.Wrap(domainerrors.ErrUserNotFound, "session user lookup")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find session user")
	}

	return user, nil
}

// requireSessionUser is findSessionUser for operations only a logged-in user may run.
func requireSessionUser(ctx context.Context, sessions repository.SessionRepository, users repository.UserRepository, sessionID uuid.UUID) (*entity.User, error) {
	session, err := findSession(ctx, sessions, sessionID)
	if err != nil {
		return nil, err
	}
	if !session.IsAuthenticated() {
		return nil, errors.Wrap(domainerrors.ErrUnauthorized, "login required")
	}

	return findSessionUser(ctx, users, session)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// validationError converts validator output into ErrValidationFailed with field details.
func validationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	fields := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields = append(fields, fe.Namespace()+" failed on "+fe.Tag())
	}

	return domainerrors.ErrValidationFailed.WithDetails(strings.Join(fields, "; "))
}
