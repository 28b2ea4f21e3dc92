package authz

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/hotelops/backend/internal/apperr"
	"github.com/hotelops/backend/internal/models"
	"github.com/hotelops/backend/internal/rbac"
	"go.uber.org/zap"
)

type fakeSessions struct {
	byToken map[string]*Session
}

func (f *fakeSessions) GetSession(_ context.Context, token string) (*Session, error) {
	if token == "broken" {
		return nil, errors.New("token parse error")
	}
	return f.byToken[token], nil
}

type fakeMemberships struct {
	byKey map[string]*models.Membership
}

func key(userID, hotelID uuid.UUID) string { return userID.String() + "/" + hotelID.String() }

func (f *fakeMemberships) Find(_ context.Context, userID, hotelID uuid.UUID) (*models.Membership, error) {
	return f.byKey[key(userID, hotelID)], nil
}

func newTestGuard(role rbac.Role) (*Guard, string, uuid.UUID, uuid.UUID) {
	userID := uuid.New()
	hotelID := uuid.New()
	sessions := &fakeSessions{byToken: map[string]*Session{
		"good": {UserID: userID, Email: "desk@grand.example", HotelID: &hotelID},
	}}
	memberships := &fakeMemberships{byKey: map[string]*models.Membership{
		key(userID, hotelID): {UserID: userID, HotelID: hotelID, Role: role},
	}}
	return NewGuard(sessions, memberships, zap.NewNop()), "good", userID, hotelID
}

func TestAuthorizeNoSession(t *testing.T) {
	g, _, _, _ := newTestGuard(rbac.RoleMember)

	for _, token := range []string{"", "unknown", "broken"} {
		_, err := g.Authorize(context.Background(), token, rbac.Required{rbac.ResourceReservations: {rbac.ActionRead}})
		if err == nil {
			t.Fatalf("token %q: expected error", token)
		}
		if apperr.From(err).Code != apperr.CodeUnauthenticated {
			t.Errorf("token %q: code = %q, want unauthenticated", token, apperr.From(err).Code)
		}
	}
}

func TestAuthorizeNoMembership(t *testing.T) {
	userID := uuid.New()
	hotelID := uuid.New()
	sessions := &fakeSessions{byToken: map[string]*Session{
		"t": {UserID: userID, Email: "x@y.z", HotelID: &hotelID},
	}}
	g := NewGuard(sessions, &fakeMemberships{byKey: map[string]*models.Membership{}}, zap.NewNop())

	_, err := g.Authorize(context.Background(), "t", rbac.Required{rbac.ResourceReservations: {rbac.ActionRead}})
	appErr := apperr.From(err)
	if appErr.Code != apperr.CodeForbidden {
		t.Fatalf("code = %q, want forbidden", appErr.Code)
	}
	if !strings.Contains(appErr.Message, "no active hotel") {
		t.Errorf("message = %q", appErr.Message)
	}
}

func TestAuthorizeNoActiveHotel(t *testing.T) {
	userID := uuid.New()
	sessions := &fakeSessions{byToken: map[string]*Session{
		"t": {UserID: userID, Email: "x@y.z"},
	}}
	g := NewGuard(sessions, &fakeMemberships{byKey: map[string]*models.Membership{}}, zap.NewNop())

	_, err := g.Authorize(context.Background(), "t", rbac.Required{rbac.ResourceReservations: {rbac.ActionRead}})
	if apperr.From(err).Code != apperr.CodeForbidden {
		t.Fatalf("code = %q, want forbidden", apperr.From(err).Code)
	}
}

func TestAuthorizePermissionTable(t *testing.T) {
	// Exhaustive: every (role, resource, action) decision of the table must
	// round-trip through the guard.
	for _, role := range rbac.Roles {
		g, token, _, _ := newTestGuard(role)
		for _, resource := range rbac.GuardedResources {
			for _, action := range []rbac.Action{
				rbac.ActionRead, rbac.ActionCreate, rbac.ActionUpdate, rbac.ActionDelete,
				rbac.ActionCancel, rbac.ActionCheckin, rbac.ActionCheckout,
			} {
				_, err := g.Authorize(context.Background(), token, rbac.Required{resource: {action}})
				allowed := rbac.Allows(role, resource, action)
				if allowed && err != nil {
					t.Errorf("%s %s:%s should be allowed, got %v", role, resource, action, err)
				}
				if !allowed {
					appErr := apperr.From(err)
					if appErr.Code != apperr.CodeForbidden {
						t.Errorf("%s %s:%s should be forbidden, got %v", role, resource, action, err)
					}
				}
			}
		}
	}
}

func TestAuthorizeMissingPermissionMessage(t *testing.T) {
	g, token, _, _ := newTestGuard(rbac.RoleMember)

	_, err := g.Authorize(context.Background(), token, rbac.Required{rbac.ResourceReservations: {rbac.ActionCancel}})
	appErr := apperr.From(err)
	if appErr.Code != apperr.CodeForbidden {
		t.Fatalf("code = %q, want forbidden", appErr.Code)
	}
	if appErr.Message != "missing permission reservations:cancel" {
		t.Errorf("message = %q", appErr.Message)
	}
}

func TestAuthorizeMultipleRequiredActions(t *testing.T) {
	g, token, _, _ := newTestGuard(rbac.RoleMember)

	// read is allowed, cancel is not: the pair as a whole must be denied.
	_, err := g.Authorize(context.Background(), token, rbac.Required{
		rbac.ResourceReservations: {rbac.ActionRead, rbac.ActionCancel},
	})
	if apperr.From(err).Code != apperr.CodeForbidden {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestAuthorizeContextPopulation(t *testing.T) {
	g, token, userID, hotelID := newTestGuard(rbac.RoleAdmin)

	authCtx, err := g.Authorize(context.Background(), token, rbac.Required{rbac.ResourceReservations: {rbac.ActionRead}})
	if err != nil {
		t.Fatalf("Authorize: %v", err)
	}
	if authCtx.UserID != userID {
		t.Errorf("UserID = %v, want %v", authCtx.UserID, userID)
	}
	if authCtx.HotelID != hotelID {
		t.Errorf("HotelID = %v, want %v", authCtx.HotelID, hotelID)
	}
	if authCtx.Role != rbac.RoleAdmin {
		t.Errorf("Role = %q", authCtx.Role)
	}
	if authCtx.Email != "desk@grand.example" {
		t.Errorf("Email = %q", authCtx.Email)
	}
	if authCtx.Superuser {
		t.Error("Superuser should be false")
	}
}

func TestSuperuserBypassesTable(t *testing.T) {
	sessions := &fakeSessions{byToken: map[string]*Session{
		"root": {UserID: uuid.New(), Email: "root@hotelops.example", Superuser: true},
	}}
	g := NewGuard(sessions, &fakeMemberships{byKey: map[string]*models.Membership{}}, zap.NewNop())

	// No membership, no active hotel, destructive action: still allowed.
	authCtx, err := g.Authorize(context.Background(), "root", rbac.Required{
		rbac.ResourceHotels:       {rbac.ActionDelete},
		rbac.ResourceReservations: {rbac.ActionCancel},
	})
	if err != nil {
		t.Fatalf("superuser should bypass permission checks, got %v", err)
	}
	if !authCtx.Superuser {
		t.Error("Superuser flag not set on context")
	}
	if authCtx.HotelID != uuid.Nil {
		t.Errorf("HotelID = %v, want Nil", authCtx.HotelID)
	}
}

func TestAuthenticateOnly(t *testing.T) {
	g, token, userID, hotelID := newTestGuard(rbac.RoleMember)

	authCtx, err := g.AuthenticateOnly(context.Background(), token)
	if err != nil {
		t.Fatalf("AuthenticateOnly: %v", err)
	}
	if authCtx.UserID != userID || authCtx.HotelID != hotelID {
		t.Errorf("context = %+v", authCtx)
	}
	// No membership resolution happened: role stays empty.
	if authCtx.Role != "" {
		t.Errorf("Role = %q, want empty", authCtx.Role)
	}

	if _, err := g.AuthenticateOnly(context.Background(), "nope"); apperr.From(err).Code != apperr.CodeUnauthenticated {
		t.Errorf("expected unauthenticated, got %v", err)
	}
}
