package impl

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/fx"

	"brewhouse/config"
	"brewhouse/internal/domain/entity"
	domainerrors "brewhouse/internal/domain/errors"
	"brewhouse/internal/domain/repository"
	"brewhouse/internal/domain/service"
	"brewhouse/internal/errors"
	"brewhouse/internal/usecase"
	"brewhouse/internal/util"
)

const (
	defaultSignupBonus = 50
	defaultGoogleBonus = 100
)

type identityService struct {
	txManager   repository.TransactionManager
	sessionRepo repository.SessionRepository
	userRepo    repository.UserRepository
	hasher      service.PasswordHasher
	google      service.GoogleTokenVerifier
	delay       time.Duration
	signupBonus int
	googleBonus int
	logger      *slog.Logger
}

// IdentityServiceParams holds dependencies for IdentityService, injected by Fx.
type IdentityServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	SessionRepo repository.SessionRepository
	UserRepo    repository.UserRepository
	Hasher      service.PasswordHasher
	Google      service.GoogleTokenVerifier `optional:"true"`
	Config      *config.Config
	Logger      *slog.Logger
}

// NewIdentityService is the constructor for identityService.
func NewIdentityService(params IdentityServiceParams) usecase.IdentityUsecase {
	srv := &identityService{
		txManager:   params.TxManager,
		sessionRepo: params.SessionRepo,
		userRepo:    params.UserRepo,
		hasher:      params.Hasher,
		google:      params.Google,
		signupBonus: defaultSignupBonus,
		googleBonus: defaultGoogleBonus,
		logger:      params.Logger,
	}
	if params.Config != nil && params.Config.Auth != nil {
		srv.delay = params.Config.Auth.SimulatedDelay
		if params.Config.Auth.SignupBonus > 0 {
			srv.signupBonus = params.Config.Auth.SignupBonus
		}
		if params.Config.Auth.GoogleBonus > 0 {
			srv.googleBonus = params.Config.Auth.GoogleBonus
		}
	}

	return srv
}

// Login signs in an existing account, or creates one on first sight of the email.
func (srv *identityService) Login(ctx context.Context, sessionID uuid.UUID, input usecase.LoginInput) (*entity.User, error) {
	email := normalizeEmail(input.Email)
	if email == "" || input.Password == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("email and password are required")
	}

	if err := util.Wait(ctx, srv.delay); err != nil {
		return nil, errors.Wrap(err, "login interrupted")
	}

	var user *entity.User
	err := srv.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		session, err := findSession(ctx, repos.SessionRepo(), sessionID)
		if err != nil {
			return err
		}

		existing, err := repos.UserRepo().FindByEmail(ctx, email)
		switch {
		case errors.Is(err, repository.ErrUserNotFound):
			user, err = srv.createUser(ctx, repos, entity.NameFromEmail(email), email, input.Password)
			if err != nil {
				return err
			}
		case err != nil:
			return errors.Wrap(err, "failed to find user by email")
		default:
			if !srv.hasher.Check(input.Password, existing.PasswordHash) {
				return errors.Wrap(domainerrors.ErrInvalidCredentials, "password mismatch")
			}
			user = existing
		}

		session.AttachUser(user.ID)

		return errors.Wrap(repos.SessionRepo().Update(ctx, session), "failed to attach user")
	})
	if err != nil {
		loggerFor(ctx, srv.logger).Warn("Login failed", slog.String("email", email), slog.Any("error", err))

		return nil, err
	}

	loggerFor(ctx, srv.logger).Info("User logged in", slog.String("user_id", user.ID.String()))

	return user, nil
}

// Signup always creates a new account and grants the signup bonus.
func (srv *identityService) Signup(ctx context.Context, sessionID uuid.UUID, input usecase.SignupInput) (*entity.User, error) {
	email := normalizeEmail(input.Email)
	name := strings.TrimSpace(input.Name)
	if email == "" || input.Password == "" || name == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("name, email and password are required")
	}

	if err := util.Wait(ctx, srv.delay); err != nil {
		return nil, errors.Wrap(err, "signup interrupted")
	}

	var user *entity.User
	err := srv.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		session, err := findSession(ctx, repos.SessionRepo(), sessionID)
		if err != nil {
			return err
		}

		_, err = repos.UserRepo().FindByEmail(ctx, email)
		if err == nil {
			return errors.Wrap(domainerrors.ErrUserAlreadyExists, "signup")
		}
		if !errors.Is(err, repository.ErrUserNotFound) {
			return errors.Wrap(err, "failed to find user by email")
		}

		user, err = srv.createUser(ctx, repos, name, email, input.Password)
		if err != nil {
			return err
		}

		welcome := entity.NewNotification(session.ID, entity.NotificationReward,
			"Welcome aboard!", fmt.Sprintf("You earned %d bonus credits for signing up!", srv.signupBonus))
		if err := repos.NotificationRepo().Create(ctx, welcome); err != nil {
			return errors.Wrap(err, "failed to create welcome notification")
		}

		session.AttachUser(user.ID)

		return errors.Wrap(repos.SessionRepo().Update(ctx, session), "failed to attach user")
	})
	if err != nil {
		return nil, err
	}

	loggerFor(ctx, srv.logger).Info("User signed up", slog.String("user_id", user.ID.String()))

	return user, nil
}

// LoginWithGoogle signs in with a Google ID token. First-time Google accounts
// start with the Google bonus and have no password.
func (srv *identityService) LoginWithGoogle(ctx context.Context, sessionID uuid.UUID, idToken string) (*entity.User, error) {
	if strings.TrimSpace(idToken) == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("id token is required")
	}
	if srv.google == nil {
		return nil, domainerrors.ErrGoogleSignInDisabled
	}

	identity, err := srv.google.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, err
	}
	email := normalizeEmail(identity.Email)

	if err := util.Wait(ctx, srv.delay); err != nil {
		return nil, errors.Wrap(err, "google login interrupted")
	}

	var (
		user    *entity.User
		created bool
	)
	err = srv.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		session, err := findSession(ctx, repos.SessionRepo(), sessionID)
		if err != nil {
			return err
		}

		user, err = repos.UserRepo().FindByEmail(ctx, email)
		switch {
		case errors.Is(err, repository.ErrUserNotFound):
			user, err = srv.createGoogleUser(ctx, repos, email, identity)
			if err != nil {
				return err
			}
			created = true
		case err != nil:
			return errors.Wrap(err, "failed to find user by email")
		}

		session.AttachUser(user.ID)

		return errors.Wrap(repos.SessionRepo().Update(ctx, session), "failed to attach user")
	})
	if err != nil {
		return nil, err
	}

	loggerFor(ctx, srv.logger).Info("User logged in with Google",
		slog.String("user_id", user.ID.String()),
		slog.Bool("created", created),
	)

	return user, nil
}

func (srv *identityService) createGoogleUser(ctx context.Context, repos repository.RepositoryFactory, email string, identity *service.GoogleIdentity) (*entity.User, error) {
	name := strings.TrimSpace(identity.Name)
	if name == "" {
		name = entity.NameFromEmail(email)
	}

	user := &entity.User{
		ID:     uuid.New(),
		Email:  email,
		Name:   name,
		Avatar: identity.Picture,
	}
	if err := user.EarnCredits(srv.googleBonus); err != nil {
		return nil, errors.Wrap(err, "failed to grant google bonus")
	}
	if err := repos.UserRepo().Create(ctx, user); err != nil {
		return nil, errors.Wrap(err, "failed to create user")
	}

	return user, nil
}

func (srv *identityService) createUser(ctx context.Context, repos repository.RepositoryFactory, name, email, password string) (*entity.User, error) {
	hash, err := srv.hasher.Hash(password)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash password")
	}

	user := &entity.User{
		ID:           uuid.New(),
		Email:        email,
		Name:         name,
		PasswordHash: hash,
	}
	if err := user.EarnCredits(srv.signupBonus); err != nil {
		return nil, errors.Wrap(err, "failed to grant signup bonus")
	}
	if err := repos.UserRepo().Create(ctx, user); err != nil {
		return nil, errors.Wrap(err, "failed to create user")
	}

	return user, nil
}

// ContinueAsGuest switches the session into one-shot guest checkout mode.
func (srv *identityService) ContinueAsGuest(ctx context.Context, sessionID uuid.UUID) error {
	return srv.updateSession(ctx, sessionID, func(session *entity.Session) {
		session.Detach()
		session.IsGuest = true
	})
}

func (srv *identityService) Logout(ctx context.Context, sessionID uuid.UUID) error {
	return srv.updateSession(ctx, sessionID, (*entity.Session).Detach)
}

func (srv *identityService) updateSession(ctx context.Context, sessionID uuid.UUID, mutate func(*entity.Session)) error {
	session, err := findSession(ctx, srv.sessionRepo, sessionID)
	if err != nil {
		return err
	}
	mutate(session)

	return errors.Wrap(srv.sessionRepo.Update(ctx, session), "failed to update session")
}

func (srv *identityService) CurrentUser(ctx context.Context, sessionID uuid.UUID) (*entity.User, error) {
	return requireSessionUser(ctx, srv.sessionRepo, srv.userRepo, sessionID)
}
