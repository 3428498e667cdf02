package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openwave/social-network-api/internal/model"
)

func TestLikeUnlikeToggles(t *testing.T) {
	users, roles := newMemUserStore(), newMemRoleStore()
	posts := newMemPostStore()
	likes := newMemLikeStore()
	h := NewLikeHandler(posts, newMemCommentStore(), likes)

	alice := userFixture(t, users, roles, "alice", "User")
	bob := userFixture(t, users, roles, "bob", "User")
	require.NoError(t, posts.Create(context.Background(), &model.Post{AuthorID: bob.ID, Body: "hi", Author: bob}))

	toggle := func() (int, map[string]any) {
		c, rec := newTestContext(t, http.MethodGet, "/like_unlike/1", "", alice)
		c.SetParamNames("id")
		c.SetParamValues("1")
		require.NoError(t, h.LikeUnlike(c))
		return rec.Code, decodeBody(t, rec)
	}

	code, body := toggle()
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Post Liked", body["msg"])
	liked, err := likes.Exists(context.Background(), alice.ID, 1)
	require.NoError(t, err)
	assert.True(t, liked)

	// the reply carries the refreshed post
	updated, ok := body["updated_post"].(map[string]any)
	require.True(t, ok)
	assert.Len(t, updated["likes"], 1)

	code, body = toggle()
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Post Unliked", body["msg"])
	liked, err = likes.Exists(context.Background(), alice.ID, 1)
	require.NoError(t, err)
	assert.False(t, liked)
}

func TestLikeUnknownPost(t *testing.T) {
	users, roles := newMemUserStore(), newMemRoleStore()
	h := NewLikeHandler(newMemPostStore(), newMemCommentStore(), newMemLikeStore())
	alice := userFixture(t, users, roles, "alice", "User")

	c, rec := newTestContext(t, http.MethodGet, "/like_unlike/42", "", alice)
	c.SetParamNames("id")
	c.SetParamValues("42")
	require.NoError(t, h.LikeUnlike(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
