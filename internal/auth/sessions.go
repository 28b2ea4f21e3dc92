package auth

import (
	"context"

	"github.com/hotelops/backend/internal/authz"
)

// TokenSessions resolves bearer tokens into sessions by verifying the JWT.
// Implements authz.SessionProvider.
type TokenSessions struct {
	secret string
}

func NewTokenSessions(secret string) *TokenSessions {
	return &TokenSessions{secret: secret}
}

func (s *TokenSessions) GetSession(_ context.Context, token string) (*authz.Session, error) {
	if token == "" {
		return nil, nil
	}
	claims, err := ParseJWT(s.secret, token)
	if err != nil {
		return nil, err
	}
	return &authz.Session{
		UserID:    claims.UserID,
		Email:     claims.Email,
		HotelID:   claims.HotelID,
		Superuser: claims.Superuser,
	}, nil
}
