package service

import (
	"errors"
	"time"

	apperrors "fleet-dashboard/pkg/errors"

	jwt "github.com/golang-jwt/jwt/v5"
)

// SessionClaims — полезная нагрузка токена сессии дашборда.
type SessionClaims struct {
	SessionID string `json:"sessionId"`
	jwt.RegisteredClaims
}

type JWTService interface {
	GenerateSessionToken(sessionID string) (string, error)
	ValidateToken(tokenString string) (*SessionClaims, error)
	GetSessionTokenTTL() time.Duration
}

type jwtService struct {
	SecretKey       string
	SessionTokenExp time.Duration
}

func NewJWTService(secretKey string, sessionTokenExp time.Duration) JWTService {
	return &jwtService{
		SecretKey:       secretKey,
		SessionTokenExp: sessionTokenExp,
	}
}

func (s *jwtService) GenerateSessionToken(sessionID string) (string, error) {
	claims := &SessionClaims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.SessionTokenExp)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	return token.SignedString([]byte(s.SecretKey))
}

func (s *jwtService) ValidateToken(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperrors.ErrInvalidSigningMethod
		}
		return []byte(s.SecretKey), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.ErrTokenExpired
		}
		return nil, apperrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid || claims.SessionID == "" {
		return nil, apperrors.ErrInvalidToken
	}

	return claims, nil
}

func (s *jwtService) GetSessionTokenTTL() time.Duration {
	return s.SessionTokenExp
}
