package handler

import (
	"log/slog"

	"brewhouse/internal/delivery/api/response"
	"brewhouse/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// AuthHandlerParams holds dependencies for AuthHandler, injected by Fx.
type AuthHandlerParams struct {
	fx.In

	IdentityUC usecase.IdentityUsecase
	Logger     *slog.Logger
}

// AuthHandler logs sessions in and out.
type AuthHandler struct {
	identityUC usecase.IdentityUsecase
	logger     *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler.
func NewAuthHandler(params AuthHandlerParams) *AuthHandler {
	return &AuthHandler{
		identityUC: params.IdentityUC,
		logger:     params.Logger,
	}
}

// LoginRequest represents the request body for logging in
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SignupRequest represents the request body for creating an account
type SignupRequest struct {
	Name     string `json:"name" validate:"required,max=80"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// GoogleLoginRequest carries the ID token returned by Google Sign-In.
type GoogleLoginRequest struct {
	IDToken string `json:"id_token" validate:"required"`
}

// Login handles the login request. An unknown email creates the account.
func (h *AuthHandler) Login(c echo.Context) error {
	sessionID, err := currentSessionID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid login input")
	}
	if err := c.Validate(&req); err != nil {
		return response.HandleAppError(c, err)
	}

	user, err := h.identityUC.Login(c.Request().Context(), sessionID, usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, toUserResponse(user))
}

// Signup handles the account creation request.
func (h *AuthHandler) Signup(c echo.Context) error {
	sessionID, err := currentSessionID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req SignupRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid signup input")
	}
	if err := c.Validate(&req); err != nil {
		return response.HandleAppError(c, err)
	}

	user, err := h.identityUC.Signup(c.Request().Context(), sessionID, usecase.SignupInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Created(c, toUserResponse(user))
}

// LoginWithGoogle signs the session in with a Google ID token.
func (h *AuthHandler) LoginWithGoogle(c echo.Context) error {
	sessionID, err := currentSessionID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req GoogleLoginRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid Google login input")
	}
	if err := c.Validate(&req); err != nil {
		return response.HandleAppError(c, err)
	}

	user, err := h.identityUC.LoginWithGoogle(c.Request().Context(), sessionID, req.IDToken)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, toUserResponse(user))
}

// ContinueAsGuest enables one guest checkout for the session.
func (h *AuthHandler) ContinueAsGuest(c echo.Context) error {
	sessionID, err := currentSessionID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	if err := h.identityUC.ContinueAsGuest(c.Request().Context(), sessionID); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Message(c, "Continuing as guest")
}

// Logout detaches the user from the session.
func (h *AuthHandler) Logout(c echo.Context) error {
	sessionID, err := currentSessionID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	if err := h.identityUC.Logout(c.Request().Context(), sessionID); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Message(c, "Successfully logged out")
}
