package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowHappyPath(t *testing.T) {
	users, roles := newMemUserStore(), newMemRoleStore()
	follows := newMemFollowStore()
	events := &recordingPublisher{}
	h := NewFollowHandler(users, follows, events)

	alice := userFixture(t, users, roles, "alice", "User")
	bob := userFixture(t, users, roles, "bob", "User")

	c, rec := newTestContext(t, http.MethodGet, "/follow/bob", "", alice)
	c.SetParamNames("username")
	c.SetParamValues("bob")
	require.NoError(t, h.Follow(c))
	require.Equal(t, http.StatusOK, rec.Code)

	following, err := follows.IsFollowing(context.Background(), alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, following)
	assert.Equal(t, 1, events.follows)

	// the edge is directed; bob does not follow alice
	reverse, err := follows.IsFollowing(context.Background(), bob.ID, alice.ID)
	require.NoError(t, err)
	assert.False(t, reverse)
}

func TestFollowSelfRejected(t *testing.T) {
	users, roles := newMemUserStore(), newMemRoleStore()
	h := NewFollowHandler(users, newMemFollowStore(), nil)
	alice := userFixture(t, users, roles, "alice", "User")

	c, rec := newTestContext(t, http.MethodGet, "/follow/alice", "", alice)
	c.SetParamNames("username")
	c.SetParamValues("alice")
	require.NoError(t, h.Follow(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "you cannot follow yourself.", decodeBody(t, rec)["msg"])
}

func TestFollowUnknownTarget(t *testing.T) {
	users, roles := newMemUserStore(), newMemRoleStore()
	h := NewFollowHandler(users, newMemFollowStore(), nil)
	alice := userFixture(t, users, roles, "alice", "User")

	c, rec := newTestContext(t, http.MethodGet, "/follow/ghost", "", alice)
	c.SetParamNames("username")
	c.SetParamValues("ghost")
	require.NoError(t, h.Follow(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "user not found.", decodeBody(t, rec)["msg"])
}

func TestFollowTwiceConflicts(t *testing.T) {
	users, roles := newMemUserStore(), newMemRoleStore()
	follows := newMemFollowStore()
	h := NewFollowHandler(users, follows, nil)
	alice := userFixture(t, users, roles, "alice", "User")
	bob := userFixture(t, users, roles, "bob", "User")
	require.NoError(t, follows.Follow(context.Background(), alice.ID, bob.ID))

	c, rec := newTestContext(t, http.MethodGet, "/follow/bob", "", alice)
	c.SetParamNames("username")
	c.SetParamValues("bob")
	require.NoError(t, h.Follow(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "you are already following this user.", decodeBody(t, rec)["msg"])
}

func TestUnfollowWithoutFollowing(t *testing.T) {
	users, roles := newMemUserStore(), newMemRoleStore()
	h := NewFollowHandler(users, newMemFollowStore(), nil)
	alice := userFixture(t, users, roles, "alice", "User")
	userFixture(t, users, roles, "bob", "User")

	c, rec := newTestContext(t, http.MethodGet, "/unfollow/bob", "", alice)
	c.SetParamNames("username")
	c.SetParamValues("bob")
	require.NoError(t, h.Unfollow(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "you are not following this user.", decodeBody(t, rec)["msg"])
}

func TestUnfollowRemovesEdge(t *testing.T) {
	users, roles := newMemUserStore(), newMemRoleStore()
	follows := newMemFollowStore()
	h := NewFollowHandler(users, follows, nil)
	alice := userFixture(t, users, roles, "alice", "User")
	bob := userFixture(t, users, roles, "bob", "User")
	require.NoError(t, follows.Follow(context.Background(), alice.ID, bob.ID))

	c, rec := newTestContext(t, http.MethodGet, "/unfollow/bob", "", alice)
	c.SetParamNames("username")
	c.SetParamValues("bob")
	require.NoError(t, h.Unfollow(c))
	require.Equal(t, http.StatusOK, rec.Code)

	following, err := follows.IsFollowing(context.Background(), alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, following)
}

func TestFollowersListingIsSelfOnly(t *testing.T) {
	users, roles := newMemUserStore(), newMemRoleStore()
	follows := newMemFollowStore()
	h := NewFollowHandler(users, follows, nil)
	alice := userFixture(t, users, roles, "alice", "User")
	bob := userFixture(t, users, roles, "bob", "User")
	require.NoError(t, follows.Follow(context.Background(), bob.ID, alice.ID))

	// alice may list her own followers
	c, rec := newTestContext(t, http.MethodGet, "/followers/alice", "", alice)
	c.SetParamNames("username")
	c.SetParamValues("alice")
	require.NoError(t, h.Followers(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	// but not bob's
	c, rec = newTestContext(t, http.MethodGet, "/followers/bob", "", alice)
	c.SetParamNames("username")
	c.SetParamValues("bob")
	require.NoError(t, h.Followers(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "not allowed.", decodeBody(t, rec)["msg"])
}
