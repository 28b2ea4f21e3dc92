package authz

import (
	"context"

	"github.com/google/uuid"
	"github.com/hotelops/backend/internal/apperr"
	"github.com/hotelops/backend/internal/models"
	"github.com/hotelops/backend/internal/rbac"
	"go.uber.org/zap"
)

// Session is what the identity provider yields for a bearer token.
type Session struct {
	UserID    uuid.UUID
	Email     string
	HotelID   *uuid.UUID
	Superuser bool
}

// SessionProvider resolves a bearer token into a session. Returns nil for an
// absent or invalid session, never an authorization decision.
type SessionProvider interface {
	GetSession(ctx context.Context, token string) (*Session, error)
}

// MembershipProvider resolves the caller's membership in a hotel. Returns
// (nil, nil) when the user is not a member.
type MembershipProvider interface {
	Find(ctx context.Context, userID, hotelID uuid.UUID) (*models.Membership, error)
}

// Guard performs session resolution, tenant resolution and the permission
// check for every protected route. Failures are terminal for the request.
type Guard struct {
	sessions    SessionProvider
	memberships MembershipProvider
	log         *zap.Logger
}

func NewGuard(sessions SessionProvider, memberships MembershipProvider, log *zap.Logger) *Guard {
	return &Guard{sessions: sessions, memberships: memberships, log: log}
}

// AuthenticateOnly resolves identity without tenant scoping. Used by routes
// that need to know who is calling but not what they may touch.
func (g *Guard) AuthenticateOnly(ctx context.Context, token string) (*Context, error) {
	sess, err := g.sessions.GetSession(ctx, token)
	if err != nil {
		g.log.Debug("session resolution failed", zap.Error(err))
		return nil, apperr.Unauthenticated("invalid or expired session")
	}
	if sess == nil {
		return nil, apperr.Unauthenticated("authentication required")
	}

	authCtx := &Context{
		UserID:    sess.UserID,
		Email:     sess.Email,
		Superuser: sess.Superuser,
	}
	if sess.HotelID != nil {
		authCtx.HotelID = *sess.HotelID
	}
	return authCtx, nil
}

// Authorize resolves identity and the active hotel membership, then checks
// every (resource, actions) pair in required against the permission table.
// Superusers bypass the table; for them a missing active hotel is tolerated.
func (g *Guard) Authorize(ctx context.Context, token string, required rbac.Required) (*Context, error) {
	authCtx, err := g.AuthenticateOnly(ctx, token)
	if err != nil {
		return nil, err
	}

	if authCtx.Superuser {
		return authCtx, nil
	}

	if authCtx.HotelID == uuid.Nil {
		return nil, apperr.Forbidden("no active hotel")
	}
	membership, err := g.memberships.Find(ctx, authCtx.UserID, authCtx.HotelID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if membership == nil {
		return nil, apperr.Forbidden("no active hotel")
	}
	authCtx.Role = membership.Role

	perms := rbac.PermissionsFor(membership.Role)
	for resource, actions := range required {
		allowed := perms[resource]
		for _, action := range actions {
			if !containsAction(allowed, action) {
				return nil, apperr.Forbidden("missing permission %s:%s", resource, action)
			}
		}
	}

	return authCtx, nil
}

func containsAction(set []rbac.Action, action rbac.Action) bool {
	for _, a := range set {
		if a == action {
			return true
		}
	}
	return false
}
