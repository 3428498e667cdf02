package handler

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/openwave/social-network-api/internal/model"
)

// Response shapes. Field names follow the public API contract; note the
// historical names (uploaded_content_url, shared_post_of_username) kept for
// client compatibility.

// userInfoJSON is the reduced user projection used inside posts, comments
// and the /all_users listing. The password hash is never rendered.
func userInfoJSON(u *model.User) echo.Map {
	roleName := ""
	if u.Role != nil {
		roleName = u.Role.Name
	}
	return echo.Map{
		"user_id":       u.ID,
		"username":      u.Username,
		"email":         u.Email,
		"role_id":       u.RoleID,
		"role_name":     roleName,
		"profile_image": u.ImageURL,
	}
}

func likeJSON(l model.PostLike) echo.Map {
	return echo.Map{
		"id":                l.ID,
		"liked_by":          l.UserID,
		"post_liked":        l.PostID,
		"liked_by_username": l.Username,
	}
}

func commentJSON(cm model.Comment) echo.Map {
	return echo.Map{
		"id":           cm.ID,
		"body":         cm.Body,
		"timestamp":    cm.CreatedAt,
		"commented_by": userInfoJSON(cm.Author),
		"post_id":      cm.PostID,
	}
}

// postJSON renders a post with its author details, likes, and comments
// (newest comment first, as the comment store lists them).
func postJSON(ctx context.Context, p model.Post, comments CommentStore, likes LikeStore) (echo.Map, error) {
	postLikes, err := likes.ListByPost(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	postComments, err := comments.ListByPost(ctx, p.ID)
	if err != nil {
		return nil, err
	}

	likeList := make([]echo.Map, 0, len(postLikes))
	for _, l := range postLikes {
		likeList = append(likeList, likeJSON(l))
	}
	commentList := make([]echo.Map, 0, len(postComments))
	for _, cm := range postComments {
		commentList = append(commentList, commentJSON(cm))
	}

	return echo.Map{
		"id":                   p.ID,
		"author_details":       userInfoJSON(p.Author),
		"uploaded_content_url": p.ContentURL,
		"body":                 p.Body,
		"timestamp":            p.CreatedAt,
		"likes":                likeList,
		"comments":             commentList,
	}, nil
}

func postListJSON(ctx context.Context, posts []model.Post, comments CommentStore, likes LikeStore) ([]echo.Map, error) {
	out := make([]echo.Map, 0, len(posts))
	for _, p := range posts {
		pj, err := postJSON(ctx, p, comments, likes)
		if err != nil {
			return nil, err
		}
		out = append(out, pj)
	}
	return out, nil
}

// userJSON is the full user projection: identity, role, follower and
// following lists, and the user's posts.
func userJSON(ctx context.Context, u *model.User, follows FollowStore, posts PostStore, comments CommentStore, likes LikeStore) (echo.Map, error) {
	followers, err := follows.Followers(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	following, err := follows.Following(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	userPosts, err := posts.ListByAuthor(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	postList, err := postListJSON(ctx, userPosts, comments, likes)
	if err != nil {
		return nil, err
	}

	followerList := make([]echo.Map, 0, len(followers))
	for _, f := range followers {
		followerList = append(followerList, echo.Map{"user_id": f.ID, "username": f.Username})
	}
	followingList := make([]echo.Map, 0, len(following))
	for _, f := range following {
		followingList = append(followingList, echo.Map{"user_id": f.ID, "username": f.Username})
	}

	roleName := ""
	if u.Role != nil {
		roleName = u.Role.Name
	}
	return echo.Map{
		"user_id":       u.ID,
		"username":      u.Username,
		"role_id":       u.RoleID,
		"role":          roleName,
		"email":         u.Email,
		"profile_image": u.ImageURL,
		"followers":     followerList,
		"following":     followingList,
		"posts":         postList,
	}, nil
}

func messageJSON(m model.Message) echo.Map {
	return echo.Map{
		"message_id":              m.ID,
		"sender":                  m.SenderID,
		"sender_name":             m.SenderName,
		"recipient_id":            m.RecipientID,
		"recipient_name":          m.RecipientName,
		"shared_status":           m.Shared,
		"shared_post_path":        m.SharedPostPath,
		"shared_post_of_username": m.SharedPostUsername,
		"body":                    m.Body,
		"sent_on":                 m.CreatedAt,
	}
}
