package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/openwave/social-network-api/internal/model"
	"github.com/openwave/social-network-api/internal/repository"
)

// PostHandler bundles dependencies for the post endpoints.
type PostHandler struct {
	Posts    PostStore
	Comments CommentStore
	Likes    LikeStore
}

func NewPostHandler(posts PostStore, comments CommentStore, likes LikeStore) *PostHandler {
	return &PostHandler{Posts: posts, Comments: comments, Likes: likes}
}

// ListPosts handles GET /posts, the public feed of every post newest
// first.
func (h *PostHandler) ListPosts(c echo.Context) error {
	rctx := c.Request().Context()
	posts, err := h.Posts.List(rctx)
	if err != nil {
		return internalError(c, "lookup failed")
	}
	out, err := postListJSON(rctx, posts, h.Comments, h.Likes)
	if err != nil {
		return internalError(c, "render failed")
	}
	return c.JSON(http.StatusOK, echo.Map{"posts": out})
}

// GetPost handles GET /posts/:id.
func (h *PostHandler) GetPost(c echo.Context) error {
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
	pj, err := postJSON(rctx, *post, h.Comments, h.Likes)
	if err != nil {
		return internalError(c, "render failed")
	}
	return c.JSON(http.StatusOK, pj)
}

// FollowedPosts handles GET /followed_users_posts, the acting user's timeline of
// posts authored by users they follow.
func (h *PostHandler) FollowedPosts(c echo.Context) error {
	actor, err := actingUser(c)
	if err != nil {
		return unauthorized(c, "unauthorized")
	}
	rctx := c.Request().Context()
	posts, err := h.Posts.ListFollowed(rctx, actor.ID)
	if err != nil {
		return internalError(c, "lookup failed")
	}
	out, err := postListJSON(rctx, posts, h.Comments, h.Likes)
	if err != nil {
		return internalError(c, "render failed")
	}
	return c.JSON(http.StatusOK, echo.Map{"posts": out})
}

// CreatePost handles POST /create-post.
func (h *PostHandler) CreatePost(c echo.Context) error {
	actor, err := actingUser(c)
	if err != nil {
		return unauthorized(c, "unauthorized")
	}
	var req struct {
		Body       string `json:"body"`
		ContentURL string `json:"content_url"`
	}
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	if strings.TrimSpace(req.Body) == "" {
		return badRequest(c, "post cannot be empty.")
	}

	post := &model.Post{AuthorID: actor.ID, Body: req.Body, ContentURL: req.ContentURL}
	if err := h.Posts.Create(c.Request().Context(), post); err != nil {
		return internalError(c, "create failed")
	}
	return c.JSON(http.StatusOK, echo.Map{"msg": "post created.", "post_id": post.ID})
}

// EditPost handles PUT /edit-post/:id. Only the author may edit, even
// moderators cannot.
func (h *PostHandler) EditPost(c echo.Context) error {
	actor, err := actingUser(c)
	if err != nil {
		return unauthorized(c, "unauthorized")
	}
	id, err := paramID(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}
	var req struct {
		Body       string `json:"body"`
		ContentURL string `json:"content_url"`
	}
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	if strings.TrimSpace(req.Body) == "" {
		return badRequest(c, "post cannot be empty.")
	}

	rctx := c.Request().Context()
	post, err := h.Posts.GetByID(rctx, id)
	if errors.Is(err, repository.ErrPostNotFound) {
		return notFound(c, "Post not found")
	}
	if err != nil {
		return internalError(c, "lookup failed")
	}
	if post.AuthorID != actor.ID {
		return forbidden(c, "Operation not allowed!")
	}

	post.Body = req.Body
	if req.ContentURL != "" {
		post.ContentURL = req.ContentURL
	}
	if err := h.Posts.Update(rctx, post); err != nil {
		return internalError(c, "update failed")
	}
	return c.JSON(http.StatusOK, echo.Map{"msg": "post updated."})
}

// DeletePost handles DELETE /delete-post/:id, author-only like EditPost.
func (h *PostHandler) DeletePost(c echo.Context) error {
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
	if post.AuthorID != actor.ID {
		return forbidden(c, "Operation not allowed!")
	}
	if err := h.Posts.Delete(rctx, post.ID); err != nil {
		return internalError(c, "delete failed")
	}
	return c.JSON(http.StatusOK, echo.Map{"msg": "post deleted."})
}
