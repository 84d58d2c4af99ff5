package handler

import (
	"log/slog"

	"brewhouse/internal/delivery/api/response"
	deliverycontext "brewhouse/internal/delivery/context"
	"brewhouse/internal/domain/entity"
	domainerrors "brewhouse/internal/domain/errors"
	"brewhouse/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// SessionHandlerParams holds dependencies for SessionHandler, injected by Fx.
type SessionHandlerParams struct {
	fx.In

	SessionUC  usecase.SessionUsecase
	IdentityUC usecase.IdentityUsecase
	Logger     *slog.Logger
}

// SessionHandler opens sessions and reports their state.
type SessionHandler struct {
	sessionUC  usecase.SessionUsecase
	identityUC usecase.IdentityUsecase
	logger     *slog.Logger
}

// NewSessionHandler is the constructor for SessionHandler.
func NewSessionHandler(params SessionHandlerParams) *SessionHandler {
	return &SessionHandler{
		sessionUC:  params.SessionUC,
		identityUC: params.IdentityUC,
		logger:     params.Logger,
	}
}

type openSessionResponse struct {
	Token   string          `json:"token"`
	Session sessionResponse `json:"session"`
}

// Open creates an anonymous session and returns the token addressing it.
func (h *SessionHandler) Open(c echo.Context) error {
	out, err := h.sessionUC.Open(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Created(c, openSessionResponse{
		Token:   out.Token,
		Session: toSessionResponse(out.Session),
	})
}

type currentSessionResponse struct {
	Session sessionResponse `json:"session"`
	User    *userResponse   `json:"user,omitempty"`
}

// Current returns the session and, when logged in, its user.
func (h *SessionHandler) Current(c echo.Context) error {
	session, ok := deliverycontext.GetSession(c)
	if !ok {
		return response.HandleAppError(c, domainerrors.ErrUnauthorized)
	}

	resp := currentSessionResponse{Session: toSessionResponse(session)}
	if session.IsAuthenticated() {
		user, err := h.identityUC.CurrentUser(c.Request().Context(), session.ID)
		if err != nil {
			return response.HandleAppError(c, err)
		}
		u := toUserResponse(user)
		resp.User = &u
	}

	return response.OK(c, resp)
}

// ToggleTheme flips the colour scheme of the session.
func (h *SessionHandler) ToggleTheme(c echo.Context) error {
	sessionID, err := currentSessionID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	theme, err := h.sessionUC.ToggleTheme(c.Request().Context(), sessionID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, map[string]entity.Theme{"theme": theme})
}
