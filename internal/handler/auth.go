package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/openwave/social-network-api/internal/config"
	"github.com/openwave/social-network-api/internal/model"
	"github.com/openwave/social-network-api/internal/repository"
	"github.com/openwave/social-network-api/internal/utils"
)

// AuthHandler bundles dependencies for registration, login, logout, and
// password updates.
type AuthHandler struct {
	Cfg    config.Config
	Users  UserStore
	Roles  RoleStore
	Tokens TokenStore
}

func NewAuthHandler(cfg config.Config, users UserStore, roles RoleStore, tokens TokenStore) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: users, Roles: roles, Tokens: tokens}
}

type registerReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Username string `json:"username"`
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type updatePasswordReq struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// Register creates a user. The role is decided exactly once, here: the
// configured administrator email receives the Administrator role, everyone
// else the default role. Duplicate email (case-insensitive) or username
// answers 400.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Username = strings.TrimSpace(req.Username)
	if req.Email == "" || req.Password == "" || req.Username == "" {
		return badRequest(c, "email, username and password are required.")
	}

	rctx := c.Request().Context()
	if _, err := h.Users.GetByEmail(rctx, req.Email); err == nil {
		return badRequest(c, "Email already registered.")
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return internalError(c, "lookup failed")
	}
	if _, err := h.Users.GetByUsername(rctx, req.Username); err == nil {
		return badRequest(c, "Username already taken.")
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return internalError(c, "lookup failed")
	}

	role, err := h.roleFor(c, req.Email)
	if err != nil {
		return internalError(c, "role lookup failed")
	}

	hash, err := utils.HashPassword(req.Password, h.Cfg.BcryptCost)
	if err != nil {
		return internalError(c, "hashing failed")
	}

	user := &model.User{
		Email:        req.Email,
		Username:     req.Username,
		PasswordHash: hash,
		RoleID:       role.ID,
		Role:         role,
	}
	if err := h.Users.Create(rctx, user); err != nil {
		switch {
		case errors.Is(err, repository.ErrEmailExists):
			return badRequest(c, "Email already registered.")
		case errors.Is(err, repository.ErrUsernameExists):
			return badRequest(c, "Username already taken.")
		}
		return internalError(c, "create user failed")
	}

	return c.JSON(http.StatusOK, echo.Map{"msg": "Registration Successful, Thanks."})
}

// Login verifies credentials and issues a signed access token carrying the
// user's email, numeric id, and a unique jti. Unknown email answers 404,
// wrong password 401.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return badRequest(c, "email and password are required.")
	}

	user, err := h.Users.GetByEmail(c.Request().Context(), req.Email)
	if errors.Is(err, repository.ErrUserNotFound) {
		return notFound(c, "Email not registered.")
	}
	if err != nil {
		return internalError(c, "lookup failed")
	}
	if !utils.VerifyPassword(user.PasswordHash, req.Password) {
		return unauthorized(c, "Incorrect Password.")
	}

	token, err := utils.NewAccessToken(h.Cfg.JWTSecret, user.Email, user.ID, h.Cfg.AccessTTLMin)
	if err != nil {
		return internalError(c, "issue token failed")
	}
	return c.JSON(http.StatusOK, echo.Map{"access_token": token.Token, "user_id": user.ID})
}

// Logout revokes the presented token by recording its jti. The token must
// still be valid to reach this handler; after revocation every later
// verification of the same jti fails even though the embedded expiry has
// not elapsed.
func (h *AuthHandler) Logout(c echo.Context) error {
	jti := actingJTI(c)
	if jti == "" {
		return unauthorized(c, "missing token")
	}
	if err := h.Tokens.Revoke(c.Request().Context(), jti, actingTokenTTL(c)); err != nil {
		return internalError(c, "revocation failed")
	}
	return c.JSON(http.StatusOK, echo.Map{"msg": "Logged out."})
}

// UpdatePassword replaces the acting user's password after re-verifying
// the old one. The wrong old password answers 401.
func (h *AuthHandler) UpdatePassword(c echo.Context) error {
	actor, err := actingUser(c)
	if err != nil {
		return unauthorized(c, "unauthorized")
	}
	var req updatePasswordReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	if req.OldPassword == "" {
		return badRequest(c, "old password cannot be empty.")
	}
	if req.NewPassword == "" {
		return badRequest(c, "new password cannot be empty.")
	}
	if !utils.VerifyPassword(actor.PasswordHash, req.OldPassword) {
		return unauthorized(c, "Incorrect old password.")
	}

	hash, err := utils.HashPassword(req.NewPassword, h.Cfg.BcryptCost)
	if err != nil {
		return internalError(c, "hashing failed")
	}
	if err := h.Users.UpdatePassword(c.Request().Context(), actor.ID, hash); err != nil {
		return internalError(c, "update failed")
	}
	return c.JSON(http.StatusOK, echo.Map{"msg": "Password Updated."})
}

// roleFor applies the construction rule for a new account.
func (h *AuthHandler) roleFor(c echo.Context, email string) (*model.Role, error) {
	if email == strings.ToLower(h.Cfg.AdminEmail) {
		return h.Roles.GetByName(c.Request().Context(), "Administrator")
	}
	return h.Roles.GetDefault(c.Request().Context())
}
