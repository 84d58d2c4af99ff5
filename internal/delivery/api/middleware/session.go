package middleware

import (
	"strings"

	"brewhouse/internal/delivery/api/response"
	deliverycontext "brewhouse/internal/delivery/context"
	domainerrors "brewhouse/internal/domain/errors"
	"brewhouse/internal/domain/service"
	"brewhouse/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// SessionMiddlewareParams holds dependencies for SessionMiddleware, injected by Fx.
type SessionMiddlewareParams struct {
	fx.In

	TokenService service.TokenService
	SessionUC    usecase.SessionUsecase
}

// SessionMiddleware resolves the storefront session named by the bearer token.
type SessionMiddleware struct {
	tokenSvc  service.TokenService
	sessionUC usecase.SessionUsecase
}

// NewSessionMiddleware is the constructor for SessionMiddleware.
func NewSessionMiddleware(params SessionMiddlewareParams) *SessionMiddleware {
	return &SessionMiddleware{
		tokenSvc:  params.TokenService,
		sessionUC: params.SessionUC,
	}
}

// Authenticate validates the token and stores the session on the context.
// A token whose session is gone gets a fresh empty session under the same id.
func (m *SessionMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
		if authHeader == "" {
			return response.Unauthorized(c, domainerrors.ErrUnauthorized.ErrorCode(), "Authorization header is missing")
		}

		tokenString, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found || tokenString == "" {
			return response.Unauthorized(c, domainerrors.ErrUnauthorized.ErrorCode(), "Invalid token format, must be Bearer token")
		}

		claims, err := m.tokenSvc.ValidateToken(tokenString)
		if err != nil {
			return response.Unauthorized(c, domainerrors.ErrUnauthorized.ErrorCode(), "Invalid or expired token")
		}

		session, err := m.sessionUC.Resolve(c.Request().Context(), claims.SessionID)
		if err != nil {
			return response.HandleAppError(c, err)
		}

		deliverycontext.SetSession(c, session)

		return next(c)
	}
}
