package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/openwave/social-network-api/internal/repository"
)

// LikeHandler bundles dependencies for the like toggle endpoint.
type LikeHandler struct {
	Posts    PostStore
	Comments CommentStore
	Likes    LikeStore
}

func NewLikeHandler(posts PostStore, comments CommentStore, likes LikeStore) *LikeHandler {
	return &LikeHandler{Posts: posts, Comments: comments, Likes: likes}
}

// LikeUnlike handles GET /like_unlike/:id. A first call likes the
// post, a second call from the same user removes the like. The reply
// carries the refreshed post so clients can repaint counts in one round
// trip.
func (h *LikeHandler) LikeUnlike(c echo.Context) error {
	actor, err := actingUser(c)
	if err != nil {
		return unauthorized(c, "unauthorized")
	}
	id, err := paramID(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}
	rctx := c.Request().Context()
	post, err := h.Posts.GetByID(rctx, id)
	if errors.Is(err, repository.ErrPostNotFound) {
		return notFound(c, "Post not found")
	}
	if err != nil {
		return internalError(c, "lookup failed")
	}

	liked, err := h.Likes.Exists(rctx, actor.ID, post.ID)
	if err != nil {
		return internalError(c, "lookup failed")
	}

	msg := "Post Liked"
	if liked {
		msg = "Post Unliked"
		err = h.Likes.Remove(rctx, actor.ID, post.ID)
	} else {
		err = h.Likes.Add(rctx, actor.ID, post.ID)
	}
	if err != nil {
		return internalError(c, "toggle failed")
	}

	pj, err := postJSON(rctx, *post, h.Comments, h.Likes)
	if err != nil {
		return internalError(c, "render failed")
	}
	return c.JSON(http.StatusOK, echo.Map{"msg": msg, "post_id": post.ID, "updated_post": pj})
}
