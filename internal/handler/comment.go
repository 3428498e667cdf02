package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/openwave/social-network-api/internal/model"
	"github.com/openwave/social-network-api/internal/repository"
)

// CommentHandler bundles dependencies for the comment endpoints.
type CommentHandler struct {
	Posts    PostStore
	Comments CommentStore
	Follows  FollowStore
}

func NewCommentHandler(posts PostStore, comments CommentStore, follows FollowStore) *CommentHandler {
	return &CommentHandler{Posts: posts, Comments: comments, Follows: follows}
}

// MakeComment handles POST /posts/:id/make_comment. Commenting on someone
// else's post requires following its author; authors may always comment on
// their own posts.
func (h *CommentHandler) MakeComment(c echo.Context) error {
	actor, err := actingUser(c)
	if err != nil {
		return unauthorized(c, "unauthorized")
	}
	id, err := paramID(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}
	var req struct {
		Body string `json:"body"`
	}
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	rctx := c.Request().Context()
	post, err := h.Posts.GetByID(rctx, id)
	if errors.Is(err, repository.ErrPostNotFound) {
		return notFound(c, "Post not found")
	}
	if err != nil {
		return internalError(c, "lookup failed")
	}
	if strings.TrimSpace(req.Body) == "" {
		return badRequest(c, "comment cannot be empty.")
	}

	if post.AuthorID != actor.ID {
		follows, err := h.Follows.IsFollowing(rctx, actor.ID, post.AuthorID)
		if err != nil {
			return internalError(c, "lookup failed")
		}
		if !follows {
			return forbidden(c, "you need to follow the user in order to make comments.")
		}
	}

	comment := &model.Comment{PostID: post.ID, AuthorID: actor.ID, Body: req.Body}
	if err := h.Comments.Create(rctx, comment); err != nil {
		return internalError(c, "create failed")
	}
	return c.JSON(http.StatusOK, echo.Map{"msg": "comment posted.", "comment_id": comment.ID})
}

// DeleteComment handles DELETE /delete_comment/:id. The comment's author
// and elevated roles may delete.
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	actor, err := actingUser(c)
	if err != nil {
		return unauthorized(c, "unauthorized")
	}
	id, err := paramID(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}
	rctx := c.Request().Context()
	comment, err := h.Comments.GetByID(rctx, id)
	if errors.Is(err, repository.ErrCommentNotFound) {
		return notFound(c, "Comment not found")
	}
	if err != nil {
		return internalError(c, "lookup failed")
	}
	if !selfOrElevated(actor, comment.AuthorID) {
		return forbidden(c, "Operation not allowed!")
	}
	if err := h.Comments.Delete(rctx, comment.ID); err != nil {
		return internalError(c, "delete failed")
	}
	return c.JSON(http.StatusOK, echo.Map{"msg": "comment deleted."})
}
