package handler

// In-memory store stubs backing the handler tests. They mirror the
// repository semantics the handlers rely on, including the sentinel
// errors, without touching a database.

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/openwave/social-network-api/internal/middleware"
	"github.com/openwave/social-network-api/internal/model"
	"github.com/openwave/social-network-api/internal/repository"
)

type memUserStore struct {
	users     map[uint64]*model.User
	nextID    uint64
	deleteErr error
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: map[uint64]*model.User{}, nextID: 1}
}

func (s *memUserStore) Create(_ context.Context, u *model.User) error {
	for _, existing := range s.users {
		if existing.Email == strings.ToLower(u.Email) {
			return repository.ErrEmailExists
		}
		if existing.Username == u.Username {
			return repository.ErrUsernameExists
		}
	}
	u.ID = s.nextID
	s.nextID++
	u.Email = strings.ToLower(u.Email)
	s.users[u.ID] = u
	return nil
}

func (s *memUserStore) GetByID(_ context.Context, id uint64) (*model.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return u, nil
}

func (s *memUserStore) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range s.users {
		if u.Email == strings.ToLower(email) {
			return u, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (s *memUserStore) GetByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range s.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (s *memUserStore) List(_ context.Context) ([]model.User, error) {
	out := make([]model.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, *u)
	}
	return out, nil
}

func (s *memUserStore) UpdateUsername(_ context.Context, id uint64, username string) error {
	s.users[id].Username = username
	return nil
}

func (s *memUserStore) UpdateEmail(_ context.Context, id uint64, email string) error {
	s.users[id].Email = email
	return nil
}

func (s *memUserStore) UpdateImage(_ context.Context, id uint64, url string) error {
	s.users[id].ImageURL = url
	return nil
}

func (s *memUserStore) UpdatePassword(_ context.Context, id uint64, hash string) error {
	s.users[id].PasswordHash = hash
	return nil
}

func (s *memUserStore) Delete(_ context.Context, id uint64) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	delete(s.users, id)
	return nil
}

type memRoleStore struct {
	roles map[string]*model.Role
}

func newMemRoleStore() *memRoleStore {
	user := &model.Role{ID: 1, Name: "User", IsDefault: true}
	user.Add(model.PermissionFollow)
	user.Add(model.PermissionComment)
	user.Add(model.PermissionWrite)

	mod := &model.Role{ID: 2, Name: "Moderator"}
	mod.Permissions = user.Permissions
	mod.Add(model.PermissionModerate)

	admin := &model.Role{ID: 3, Name: "Administrator"}
	admin.Permissions = mod.Permissions
	admin.Add(model.PermissionAdmin)

	return &memRoleStore{roles: map[string]*model.Role{
		"User": user, "Moderator": mod, "Administrator": admin,
	}}
}

func (s *memRoleStore) GetByName(_ context.Context, name string) (*model.Role, error) {
	r, ok := s.roles[name]
	if !ok {
		return nil, repository.ErrRoleNotFound
	}
	return r, nil
}

func (s *memRoleStore) GetDefault(_ context.Context) (*model.Role, error) {
	for _, r := range s.roles {
		if r.IsDefault {
			return r, nil
		}
	}
	return nil, repository.ErrRoleNotFound
}

type edge struct{ follower, following uint64 }

type memFollowStore struct {
	edges map[edge]bool
}

func newMemFollowStore() *memFollowStore { return &memFollowStore{edges: map[edge]bool{}} }

func (s *memFollowStore) Follow(_ context.Context, followerID, followingID uint64) error {
	if followerID == followingID {
		return repository.ErrSelfFollow
	}
	e := edge{followerID, followingID}
	if s.edges[e] {
		return repository.ErrAlreadyFollowing
	}
	s.edges[e] = true
	return nil
}

func (s *memFollowStore) Unfollow(_ context.Context, followerID, followingID uint64) error {
	e := edge{followerID, followingID}
	if !s.edges[e] {
		return repository.ErrNotFollowing
	}
	delete(s.edges, e)
	return nil
}

func (s *memFollowStore) IsFollowing(_ context.Context, followerID, followingID uint64) (bool, error) {
	return s.edges[edge{followerID, followingID}], nil
}

func (s *memFollowStore) Followers(_ context.Context, userID uint64) ([]model.User, error) {
	var out []model.User
	for e := range s.edges {
		if e.following == userID {
			out = append(out, model.User{ID: e.follower})
		}
	}
	return out, nil
}

func (s *memFollowStore) Following(_ context.Context, userID uint64) ([]model.User, error) {
	var out []model.User
	for e := range s.edges {
		if e.follower == userID {
			out = append(out, model.User{ID: e.following})
		}
	}
	return out, nil
}

type memPostStore struct {
	posts  map[uint64]*model.Post
	nextID uint64
}

func newMemPostStore() *memPostStore {
	return &memPostStore{posts: map[uint64]*model.Post{}, nextID: 1}
}

func (s *memPostStore) Create(_ context.Context, p *model.Post) error {
	p.ID = s.nextID
	s.nextID++
	if p.Author == nil {
		p.Author = &model.User{ID: p.AuthorID}
	}
	s.posts[p.ID] = p
	return nil
}

func (s *memPostStore) GetByID(_ context.Context, id uint64) (*model.Post, error) {
	p, ok := s.posts[id]
	if !ok {
		return nil, repository.ErrPostNotFound
	}
	return p, nil
}

func (s *memPostStore) List(_ context.Context) ([]model.Post, error) {
	out := make([]model.Post, 0, len(s.posts))
	for _, p := range s.posts {
		out = append(out, *p)
	}
	return out, nil
}

func (s *memPostStore) ListByAuthor(_ context.Context, authorID uint64) ([]model.Post, error) {
	var out []model.Post
	for _, p := range s.posts {
		if p.AuthorID == authorID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (s *memPostStore) ListFollowed(_ context.Context, _ uint64) ([]model.Post, error) {
	return nil, nil
}

func (s *memPostStore) Update(_ context.Context, p *model.Post) error {
	s.posts[p.ID] = p
	return nil
}

func (s *memPostStore) Delete(_ context.Context, id uint64) error {
	delete(s.posts, id)
	return nil
}

type memCommentStore struct {
	comments map[uint64]*model.Comment
	nextID   uint64
}

func newMemCommentStore() *memCommentStore {
	return &memCommentStore{comments: map[uint64]*model.Comment{}, nextID: 1}
}

func (s *memCommentStore) Create(_ context.Context, c *model.Comment) error {
	c.ID = s.nextID
	s.nextID++
	if c.Author == nil {
		c.Author = &model.User{ID: c.AuthorID}
	}
	s.comments[c.ID] = c
	return nil
}

func (s *memCommentStore) GetByID(_ context.Context, id uint64) (*model.Comment, error) {
	c, ok := s.comments[id]
	if !ok {
		return nil, repository.ErrCommentNotFound
	}
	return c, nil
}

func (s *memCommentStore) ListByPost(_ context.Context, postID uint64) ([]model.Comment, error) {
	var out []model.Comment
	for _, c := range s.comments {
		if c.PostID == postID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (s *memCommentStore) Delete(_ context.Context, id uint64) error {
	delete(s.comments, id)
	return nil
}

type memLikeStore struct {
	likes map[edge]bool // follower=user, following=post
}

func newMemLikeStore() *memLikeStore { return &memLikeStore{likes: map[edge]bool{}} }

func (s *memLikeStore) Exists(_ context.Context, userID, postID uint64) (bool, error) {
	return s.likes[edge{userID, postID}], nil
}

func (s *memLikeStore) Add(_ context.Context, userID, postID uint64) error {
	s.likes[edge{userID, postID}] = true
	return nil
}

func (s *memLikeStore) Remove(_ context.Context, userID, postID uint64) error {
	delete(s.likes, edge{userID, postID})
	return nil
}

func (s *memLikeStore) ListByPost(_ context.Context, postID uint64) ([]model.PostLike, error) {
	var out []model.PostLike
	var id uint64
	for e := range s.likes {
		if e.following == postID {
			id++
			out = append(out, model.PostLike{ID: id, UserID: e.follower, PostID: postID})
		}
	}
	return out, nil
}

type memMessageStore struct {
	messages map[uint64]*model.Message
	nextID   uint64
}

func newMemMessageStore() *memMessageStore {
	return &memMessageStore{messages: map[uint64]*model.Message{}, nextID: 1}
}

func (s *memMessageStore) Create(_ context.Context, m *model.Message) error {
	m.ID = s.nextID
	s.nextID++
	s.messages[m.ID] = m
	return nil
}

func (s *memMessageStore) GetByID(_ context.Context, id uint64) (*model.Message, error) {
	m, ok := s.messages[id]
	if !ok {
		return nil, repository.ErrMessageNotFound
	}
	return m, nil
}

func (s *memMessageStore) ListSent(_ context.Context, userID uint64) ([]model.Message, error) {
	var out []model.Message
	for _, m := range s.messages {
		if m.SenderID == userID {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (s *memMessageStore) ListReceived(_ context.Context, userID uint64) ([]model.Message, error) {
	var out []model.Message
	for _, m := range s.messages {
		if m.RecipientID == userID {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (s *memMessageStore) Conversation(_ context.Context, a, b uint64) ([]model.Message, error) {
	var out []model.Message
	for _, m := range s.messages {
		if (m.SenderID == a && m.RecipientID == b) || (m.SenderID == b && m.RecipientID == a) {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (s *memMessageStore) Delete(_ context.Context, id uint64) error {
	delete(s.messages, id)
	return nil
}

type memTokenStore struct {
	revoked map[string]bool
}

func newMemTokenStore() *memTokenStore { return &memTokenStore{revoked: map[string]bool{}} }

func (s *memTokenStore) Revoke(_ context.Context, jti string, _ time.Duration) error {
	s.revoked[jti] = true
	return nil
}

func (s *memTokenStore) IsRevoked(_ context.Context, jti string) (bool, error) {
	return s.revoked[jti], nil
}

type recordingPublisher struct {
	follows  int
	messages int
}

func (p *recordingPublisher) PublishFollow(_ context.Context, _, _ *model.User) error {
	p.follows++
	return nil
}

func (p *recordingPublisher) PublishMessage(_ context.Context, _ *model.Message) error {
	p.messages++
	return nil
}

// newTestContext builds an Echo context for a request, optionally
// authenticated as the given user the way JWTAuth would leave it.
func newTestContext(t *testing.T, method, path, body string, actor *model.User) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("{}")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)
	if actor != nil {
		c.Set(middleware.ContextUserKey, actor)
		c.Set(middleware.ContextJTIKey, "test-jti")
		c.Set(middleware.ContextExpKey, time.Now().Add(30*time.Minute))
	}
	return c, rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m))
	return m
}

// userFixture creates a user with the given role in the store.
func userFixture(t *testing.T, users *memUserStore, roles *memRoleStore, username, roleName string) *model.User {
	t.Helper()
	role, err := roles.GetByName(context.Background(), roleName)
	require.NoError(t, err)
	u := &model.User{
		Email:        username + "@example.com",
		Username:     username,
		PasswordHash: "",
		RoleID:       role.ID,
		Role:         role,
	}
	require.NoError(t, users.Create(context.Background(), u))
	return u
}
