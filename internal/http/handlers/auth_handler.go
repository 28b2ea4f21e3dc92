package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/hotelops/backend/internal/apperr"
	"github.com/hotelops/backend/internal/auth"
	"github.com/hotelops/backend/internal/config"
	"github.com/hotelops/backend/internal/http/dto"
	"github.com/hotelops/backend/internal/middleware"
	"github.com/hotelops/backend/internal/repositories"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type AuthHandler struct {
	userRepo       *repositories.UserRepo
	membershipRepo *repositories.MembershipRepo
	hotelRepo      *repositories.HotelRepo
	cfg            *config.Config
	log            *zap.Logger
}

func NewAuthHandler(userRepo *repositories.UserRepo, membershipRepo *repositories.MembershipRepo, hotelRepo *repositories.HotelRepo, cfg *config.Config, log *zap.Logger) *AuthHandler {
	return &AuthHandler{userRepo: userRepo, membershipRepo: membershipRepo, hotelRepo: hotelRepo, cfg: cfg, log: log}
}

// Login verifies credentials and issues a token. The user's first hotel
// membership becomes the active hotel; SwitchHotel changes it later.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil || req.Email == "" || req.Password == "" {
		return respondError(c, apperr.InvalidInput("email and password are required"))
	}

	user, err := h.userRepo.GetByEmail(c.Context(), req.Email)
	if err != nil {
		h.log.Error("login lookup failed", zap.Error(err))
		return respondError(c, apperr.Internal(err))
	}
	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return respondError(c, apperr.Unauthenticated("invalid credentials"))
	}

	var activeHotel *uuid.UUID
	memberships, err := h.membershipRepo.ListByUser(c.Context(), user.ID)
	if err != nil {
		h.log.Error("membership lookup failed", zap.Error(err))
		return respondError(c, apperr.Internal(err))
	}
	if len(memberships) > 0 {
		activeHotel = &memberships[0].HotelID
	}

	token, err := auth.GenerateJWT(h.cfg.JWTSecret, user.ID, user.Email, activeHotel, user.Superuser, h.cfg.JWTExpiration)
	if err != nil {
		h.log.Error("failed to generate jwt", zap.Error(err))
		return respondError(c, apperr.Internal(err))
	}

	return c.JSON(dto.AuthResponse{Token: token, User: user})
}

// SwitchHotel re-issues the session token with a different active hotel.
// The caller must be a member of the target hotel unless superuser.
func (h *AuthHandler) SwitchHotel(c *fiber.Ctx) error {
	authCtx := middleware.AuthCtx(c)

	var req dto.SwitchHotelRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, apperr.InvalidInput("invalid request body"))
	}
	hotelID, err := uuid.Parse(req.HotelID)
	if err != nil {
		return respondError(c, apperr.InvalidInput("invalid hotel_id"))
	}

	if authCtx.Superuser {
		hotel, err := h.hotelRepo.GetByID(c.Context(), hotelID)
		if err != nil {
			return respondError(c, apperr.Internal(err))
		}
		if hotel == nil {
			return respondError(c, apperr.NotFound("hotel"))
		}
	} else {
		membership, err := h.membershipRepo.Find(c.Context(), authCtx.UserID, hotelID)
		if err != nil {
			return respondError(c, apperr.Internal(err))
		}
		if membership == nil {
			// Same answer whether the hotel exists or not.
			return respondError(c, apperr.NotFound("hotel"))
		}
	}

	token, err := auth.GenerateJWT(h.cfg.JWTSecret, authCtx.UserID, authCtx.Email, &hotelID, authCtx.Superuser, h.cfg.JWTExpiration)
	if err != nil {
		return respondError(c, apperr.Internal(err))
	}
	return c.JSON(dto.AuthResponse{Token: token})
}

// Me echoes the resolved authorization context.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	authCtx := middleware.AuthCtx(c)
	resp := dto.MeResponse{
		UserID:    authCtx.UserID.String(),
		Email:     authCtx.Email,
		Role:      string(authCtx.Role),
		Superuser: authCtx.Superuser,
	}
	if authCtx.HotelID != uuid.Nil {
		id := authCtx.HotelID.String()
		resp.HotelID = &id
	}
	return c.JSON(resp)
}
