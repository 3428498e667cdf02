package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/openwave/social-network-api/internal/config"
	"github.com/openwave/social-network-api/internal/repository"
	"github.com/openwave/social-network-api/internal/utils"
)

// UserHandler bundles dependencies for user profile and account endpoints.
type UserHandler struct {
	Cfg      config.Config
	Users    UserStore
	Follows  FollowStore
	Posts    PostStore
	Comments CommentStore
	Likes    LikeStore
	Tokens   TokenStore
}

func NewUserHandler(cfg config.Config, users UserStore, follows FollowStore, posts PostStore, comments CommentStore, likes LikeStore, tokens TokenStore) *UserHandler {
	return &UserHandler{Cfg: cfg, Users: users, Follows: follows, Posts: posts, Comments: comments, Likes: likes, Tokens: tokens}
}

// GetUser handles GET /users/:id. Reading another user's record requires
// ownership or an elevated role.
func (h *UserHandler) GetUser(c echo.Context) error {
	actor, err := actingUser(c)
	if err != nil {
		return unauthorized(c, "unauthorized")
	}
	id, err := paramID(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}
	if !selfOrElevated(actor, id) {
		return forbidden(c, "Operation not allowed!")
	}
	return h.renderUser(c, id)
}

// GetProfile handles GET /user_profile/:id, readable by any authenticated
// user.
func (h *UserHandler) GetProfile(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}
	return h.renderUser(c, id)
}

func (h *UserHandler) renderUser(c echo.Context, id uint64) error {
	rctx := c.Request().Context()
	user, err := h.Users.GetByID(rctx, id)
	if errors.Is(err, repository.ErrUserNotFound) {
		return notFound(c, "User not found")
	}
	if err != nil {
		return internalError(c, "lookup failed")
	}
	uj, err := userJSON(rctx, user, h.Follows, h.Posts, h.Comments, h.Likes)
	if err != nil {
		return internalError(c, "render failed")
	}
	return c.JSON(http.StatusOK, uj)
}

// UpdateUsername handles POST /update_username for the acting user.
func (h *UserHandler) UpdateUsername(c echo.Context) error {
	actor, err := actingUser(c)
	if err != nil {
		return unauthorized(c, "unauthorized")
	}
	var req struct {
		NewUsername string `json:"new_username"`
	}
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	name := strings.TrimSpace(req.NewUsername)
	if name == "" {
		return badRequest(c, "username cannot be empty.")
	}
	if _, err := h.Users.GetByUsername(c.Request().Context(), name); err == nil {
		return badRequest(c, "username already taken.")
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return internalError(c, "lookup failed")
	}
	if err := h.Users.UpdateUsername(c.Request().Context(), actor.ID, name); err != nil {
		if errors.Is(err, repository.ErrUsernameExists) {
			return badRequest(c, "username already taken.")
		}
		return internalError(c, "update failed")
	}
	return c.JSON(http.StatusOK, echo.Map{"msg": "username updated."})
}

// UpdateEmail handles POST /update_email for the acting user.
func (h *UserHandler) UpdateEmail(c echo.Context) error {
	actor, err := actingUser(c)
	if err != nil {
		return unauthorized(c, "unauthorized")
	}
	var req struct {
		NewEmail string `json:"new_email"`
	}
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	email := strings.ToLower(strings.TrimSpace(req.NewEmail))
	if email == "" {
		return badRequest(c, "email cannot be empty.")
	}
	if _, err := h.Users.GetByEmail(c.Request().Context(), email); err == nil {
		return badRequest(c, "email already in use.")
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return internalError(c, "lookup failed")
	}
	if err := h.Users.UpdateEmail(c.Request().Context(), actor.ID, email); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return badRequest(c, "email already in use.")
		}
		return internalError(c, "update failed")
	}
	return c.JSON(http.StatusOK, echo.Map{"msg": "email updated."})
}

// UpdateImage handles POST /update_image for the acting user.
func (h *UserHandler) UpdateImage(c echo.Context) error {
	actor, err := actingUser(c)
	if err != nil {
		return unauthorized(c, "unauthorized")
	}
	var req struct {
		ImageURL string `json:"image_url"`
	}
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	if strings.TrimSpace(req.ImageURL) == "" {
		return badRequest(c, "image field cannot be empty.")
	}
	if err := h.Users.UpdateImage(c.Request().Context(), actor.ID, req.ImageURL); err != nil {
		return internalError(c, "update failed")
	}
	return c.JSON(http.StatusOK, echo.Map{"msg": "profile picture updated."})
}

// DeleteUser handles POST /user/:id/delete. Elevated actors delete
// directly; everyone else must supply the target user's current password,
// and the acting token is revoked as a side effect so the credential dies
// with the account.
func (h *UserHandler) DeleteUser(c echo.Context) error {
	actor, err := actingUser(c)
	if err != nil {
		return unauthorized(c, "unauthorized")
	}
	id, err := paramID(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}

	rctx := c.Request().Context()
	target, err := h.Users.GetByID(rctx, id)
	if errors.Is(err, repository.ErrUserNotFound) {
		return notFound(c, "User not found")
	}
	if err != nil {
		return internalError(c, "lookup failed")
	}

	deletedByAdmin := actor.IsElevated()
	if !deletedByAdmin {
		var req struct {
			OldPass string `json:"old_pass"`
		}
		if err := c.Bind(&req); err != nil {
			return badRequest(c, "invalid body")
		}
		if req.OldPass == "" {
			return badRequest(c, "password cannot be empty")
		}
		if !utils.VerifyPassword(target.PasswordHash, req.OldPass) {
			return forbidden(c, "incorrect password")
		}
	}

	if err := h.Users.Delete(rctx, target.ID); err != nil {
		return internalError(c, "delete failed")
	}

	// Revocation is a side effect of the deletion, so it only happens once
	// the delete has gone through. A failed delete must leave the requester
	// logged in.
	if !deletedByAdmin {
		if jti := actingJTI(c); jti != "" {
			if err := h.Tokens.Revoke(rctx, jti, actingTokenTTL(c)); err != nil {
				return internalError(c, "revocation failed")
			}
		}
	}

	msg := "User deleted & token blocked."
	if deletedByAdmin {
		msg = "User deleted (by admin)."
	}
	return c.JSON(http.StatusOK, echo.Map{"msg": msg})
}

// ListUsersAdmin handles GET /users, restricted to ADMIN, returning the
// full projection for every user.
func (h *UserHandler) ListUsersAdmin(c echo.Context) error {
	rctx := c.Request().Context()
	users, err := h.Users.List(rctx)
	if err != nil {
		return internalError(c, "lookup failed")
	}
	out := make([]echo.Map, 0, len(users))
	for i := range users {
		uj, err := userJSON(rctx, &users[i], h.Follows, h.Posts, h.Comments, h.Likes)
		if err != nil {
			return internalError(c, "render failed")
		}
		out = append(out, uj)
	}
	return c.JSON(http.StatusOK, echo.Map{"users": out})
}

// ListUsers handles GET /all_users with the reduced projection, available
// to any authenticated user.
func (h *UserHandler) ListUsers(c echo.Context) error {
	users, err := h.Users.List(c.Request().Context())
	if err != nil {
		return internalError(c, "lookup failed")
	}
	out := make([]echo.Map, 0, len(users))
	for i := range users {
		out = append(out, userInfoJSON(&users[i]))
	}
	return c.JSON(http.StatusOK, echo.Map{"users": out})
}
