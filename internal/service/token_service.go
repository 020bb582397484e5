package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"feedblog/internal/apperr"
)

// Identity is what a verified token resolves to.
type Identity struct {
	UserID string
	Email  string
}

// TokenService issues and verifies signed, time-limited identity tokens.
// Tokens are stateless: there is no revocation, a leaked token stays valid
// until its expiry.
type TokenService interface {
	Issue(userID, email string) (string, error)
	Verify(tokenString string) (*Identity, error)
}

type tokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(secret string, ttl time.Duration) TokenService {
	return &tokenService{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

func (s *tokenService) Issue(userID, email string) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"userId": userID,
		"email":  email,
		"exp":    now.Add(s.ttl).Unix(),
		"iat":    now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

func (s *tokenService) Verify(tokenString string) (*Identity, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())

	if err != nil {
		return nil, apperr.Wrap(apperr.Unauthenticated, "invalid token", err)
	}

	if !token.Valid {
		return nil, apperr.New(apperr.Unauthenticated, "invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, apperr.New(apperr.Unauthenticated, "invalid token claims")
	}

	userID, ok1 := claims["userId"].(string)
	email, ok2 := claims["email"].(string)
	if !ok1 || !ok2 {
		return nil, apperr.New(apperr.Unauthenticated, "invalid token claims")
	}

	return &Identity{UserID: userID, Email: email}, nil
}
