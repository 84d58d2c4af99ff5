package impl

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"go.uber.org/fx"

	"brewhouse/internal/domain/entity"
	"brewhouse/internal/domain/repository"
	"brewhouse/internal/domain/service"
	"brewhouse/internal/errors"
	"brewhouse/internal/usecase"
)

type sessionService struct {
	txManager    repository.TransactionManager
	sessionRepo  repository.SessionRepository
	tokenService service.TokenService
	logger       *slog.Logger
}

// SessionServiceParams holds dependencies for SessionService, injected by Fx.
type SessionServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	SessionRepo  repository.SessionRepository
	TokenService service.TokenService
	Logger       *slog.Logger
}

// NewSessionService creates a new session service.
func NewSessionService(params SessionServiceParams) usecase.SessionUsecase {
	return &sessionService{
		txManager:    params.TxManager,
		sessionRepo:  params.SessionRepo,
		tokenService: params.TokenService,
		logger:       params.Logger,
	}
}

func (srv *sessionService) Open(ctx context.Context) (*usecase.OpenSessionOutput, error) {
	session, err := srv.create(ctx, uuid.New())
	if err != nil {
		return nil, err
	}

	token, err := srv.tokenService.GenerateSessionToken(session.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue session token")
	}

	loggerFor(ctx, srv.logger).Debug("Session opened", slog.String("session_id", session.ID.String()))

	return &usecase.OpenSessionOutput{Session: session, Token: token}, nil
}

func (srv *sessionService) Resolve(ctx context.Context, sessionID uuid.UUID) (*entity.Session, error) {
	session, err := srv.sessionRepo.FindByID(ctx, sessionID)
	if err == nil {
		return session, nil
	}
	if !errors.Is(err, repository.ErrSessionNotFound) {
		return nil, errors.Wrap(err, "failed to find session")
	}

	loggerFor(ctx, srv.logger).Info("Session missing, starting over", slog.String("session_id", sessionID.String()))

	session, err = srv.create(ctx, sessionID)
	if err == nil {
		return session, nil
	}

	// A concurrent request may have recreated it first.
	if existing, findErr := srv.sessionRepo.FindByID(ctx, sessionID); findErr == nil {
		return existing, nil
	}

	return nil, err
}

func (srv *sessionService) ToggleTheme(ctx context.Context, sessionID uuid.UUID) (entity.Theme, error) {
	var theme entity.Theme
	err := srv.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		session, err := findSession(ctx, repos.SessionRepo(), sessionID)
		if err != nil {
			return err
		}
		session.Theme = session.Theme.Toggle()
		theme = session.Theme

		return errors.Wrap(repos.SessionRepo().Update(ctx, session), "failed to save theme")
	})
	if err != nil {
		return "", err
	}

	return theme, nil
}

func (srv *sessionService) create(ctx context.Context, sessionID uuid.UUID) (*entity.Session, error) {
	session := entity.NewSession(sessionID)
	err := srv.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		if err := repos.SessionRepo().Create(ctx, session); err != nil {
			return errors.Wrap(err, "failed to create session")
		}

		return errors.Wrap(repos.NotificationRepo().Create(ctx, entity.WelcomeNotifications(session.ID)...), "failed to seed notifications")
	})
	if err != nil {
		return nil, err
	}

	return session, nil
}
