package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"brewhouse/config"
	"brewhouse/internal/domain/service"
	"brewhouse/internal/errors"
)

const tokenIssuer = "brewhouse"

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
type jwtService struct {
	secret []byte        // Secret key for signing session tokens.
	ttl    time.Duration // Time-to-live for session tokens.
	now    func() time.Time
}

// NewJWTService is the constructor for jwtService.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey.Access == "" {
		return nil, errors.New("jwt secret must be provided")
	}
	ttl := 30 * 24 * time.Hour
	if cfg.Auth != nil && cfg.Auth.TokenTTL > 0 {
		ttl = cfg.Auth.TokenTTL
	}

	return &jwtService{
		secret: []byte(cfg.SecretKey.Access),
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

// GenerateSessionToken signs a token whose subject is the session id.
func (s *jwtService) GenerateSessionToken(sessionID uuid.UUID) (string, error) {
	now := s.now()
	claims := service.Claims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   sessionID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign session token")
	}

	return signed, nil
}

// ValidateToken verifies the signature, expiry and issuer and returns the claims.
func (s *jwtService) ValidateToken(tokenString string) (*service.Claims, error) {
	claims := &service.Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	},
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, errors.Wrap(err, "invalid session token")
	}
	if claims.SessionID == uuid.Nil {
		return nil, errors.New("session token has no session id")
	}

	return claims, nil
}
