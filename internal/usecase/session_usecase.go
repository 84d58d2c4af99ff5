// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"github.com/google/uuid"

	"brewhouse/internal/domain/entity"
)

// OpenSessionOutput is a freshly created session and the token addressing it.
type OpenSessionOutput struct {
	Session *entity.Session
	Token   string
}

// SessionUsecase manages anonymous storefront sessions.
type SessionUsecase interface {
	// Open creates a session seeded with the welcome notifications.
	Open(ctx context.Context) (*OpenSessionOutput, error)

	// Resolve loads a session. A session that no longer exists is recreated
	// empty under the same id so a stale token keeps working.
	Resolve(ctx context.Context, sessionID uuid.UUID) (*entity.Session, error)

	ToggleTheme(ctx context.Context, sessionID uuid.UUID) (entity.Theme, error)
}
