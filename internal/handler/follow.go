package handler

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/openwave/social-network-api/internal/model"
	"github.com/openwave/social-network-api/internal/repository"
)

// FollowHandler bundles dependencies for the follow-graph endpoints.
type FollowHandler struct {
	Users   UserStore
	Follows FollowStore
	Events  EventPublisher
}

func NewFollowHandler(users UserStore, follows FollowStore, events EventPublisher) *FollowHandler {
	return &FollowHandler{Users: users, Follows: follows, Events: events}
}

// Follow handles GET /follow/:username, creating a directed edge from the
// acting user to the named user.
func (h *FollowHandler) Follow(c echo.Context) error {
	actor, err := actingUser(c)
	if err != nil {
		return unauthorized(c, "unauthorized")
	}
	rctx := c.Request().Context()
	target, err := h.Users.GetByUsername(rctx, c.Param("username"))
	if errors.Is(err, repository.ErrUserNotFound) {
		return notFound(c, "user not found.")
	}
	if err != nil {
		return internalError(c, "lookup failed")
	}

	err = h.Follows.Follow(rctx, actor.ID, target.ID)
	switch {
	case errors.Is(err, repository.ErrSelfFollow):
		return badRequest(c, "you cannot follow yourself.")
	case errors.Is(err, repository.ErrAlreadyFollowing):
		return conflict(c, "you are already following this user.")
	case err != nil:
		return internalError(c, "follow failed")
	}

	if h.Events != nil {
		if err := h.Events.PublishFollow(rctx, actor, target); err != nil {
			log.Printf("[FOLLOW] publish event: %v", err)
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"msg": "you are now following " + target.Username + "."})
}

// Unfollow handles GET /unfollow/:username, removing a directed edge.
func (h *FollowHandler) Unfollow(c echo.Context) error {
	actor, err := actingUser(c)
	if err != nil {
		return unauthorized(c, "unauthorized")
	}
	rctx := c.Request().Context()
	target, err := h.Users.GetByUsername(rctx, c.Param("username"))
	if errors.Is(err, repository.ErrUserNotFound) {
		return notFound(c, "user not found.")
	}
	if err != nil {
		return internalError(c, "lookup failed")
	}

	err = h.Follows.Unfollow(rctx, actor.ID, target.ID)
	switch {
	case errors.Is(err, repository.ErrNotFollowing):
		return notFound(c, "you are not following this user.")
	case err != nil:
		return internalError(c, "unfollow failed")
	}
	return c.JSON(http.StatusOK, echo.Map{"msg": "you unfollowed " + target.Username + "."})
}

// Followers handles GET /followers/:username. Only the named user may
// inspect their own follower list.
func (h *FollowHandler) Followers(c echo.Context) error {
	return h.listEdges(c, h.Follows.Followers)
}

// Following handles GET /following/:username with the same ownership
// rule.
func (h *FollowHandler) Following(c echo.Context) error {
	return h.listEdges(c, h.Follows.Following)
}

func (h *FollowHandler) listEdges(c echo.Context, list func(ctx context.Context, userID uint64) ([]model.User, error)) error {
	actor, err := actingUser(c)
	if err != nil {
		return unauthorized(c, "unauthorized")
	}
	rctx := c.Request().Context()
	target, err := h.Users.GetByUsername(rctx, c.Param("username"))
	if errors.Is(err, repository.ErrUserNotFound) {
		return notFound(c, "user not found.")
	}
	if err != nil {
		return internalError(c, "lookup failed")
	}
	if actor.ID != target.ID {
		return forbidden(c, "not allowed.")
	}
	users, err := list(rctx, target.ID)
	if err != nil {
		return internalError(c, "lookup failed")
	}
	out := make([]echo.Map, 0, len(users))
	for i := range users {
		out = append(out, echo.Map{"user_id": users[i].ID, "username": users[i].Username})
	}
	return c.JSON(http.StatusOK, echo.Map{"users": out})
}
