// Package router maps the HTTP surface onto the handlers. Public routes
// are registered directly on the Echo instance; everything else lives in a
// group behind the JWT middleware, with permission middleware layered on
// the routes that need a specific bit.
package router

import (
	"database/sql"

	"github.com/labstack/echo/v4"

	"github.com/openwave/social-network-api/internal/handler"
	"github.com/openwave/social-network-api/internal/middleware"
	"github.com/openwave/social-network-api/internal/model"
)

// Handlers collects every handler the router wires up.
type Handlers struct {
	Auth     *handler.AuthHandler
	Users    *handler.UserHandler
	Follows  *handler.FollowHandler
	Posts    *handler.PostHandler
	Comments *handler.CommentHandler
	Likes    *handler.LikeHandler
	Messages *handler.MessageHandler
}

// Register wires all routes. The auth middleware is built by the caller so
// that main owns the secret and the store wiring.
func Register(e *echo.Echo, db *sql.DB, h Handlers, auth echo.MiddlewareFunc) {
	e.GET("/healthz", handler.Health(db))

	e.POST("/register", h.Auth.Register)
	e.POST("/login", h.Auth.Login)
	e.GET("/posts", h.Posts.ListPosts)
	e.GET("/posts/:id", h.Posts.GetPost)

	g := e.Group("", auth)

	g.DELETE("/logout", h.Auth.Logout)
	g.POST("/update-password", h.Auth.UpdatePassword)
	// Older clients use the underscore spelling; keep both mapped to
	// the same handler.
	g.PUT("/update_password", h.Auth.UpdatePassword)

	g.GET("/users/:id", h.Users.GetUser)
	g.GET("/user_profile/:id", h.Users.GetProfile)
	g.GET("/users", h.Users.ListUsersAdmin, middleware.RequirePermission(model.PermissionAdmin))
	g.GET("/all_users", h.Users.ListUsers)
	g.POST("/update_username", h.Users.UpdateUsername)
	g.POST("/update_email", h.Users.UpdateEmail)
	g.POST("/update_image", h.Users.UpdateImage)
	g.POST("/user/:id/delete", h.Users.DeleteUser)

	g.GET("/follow/:username", h.Follows.Follow, middleware.RequirePermission(model.PermissionFollow))
	g.GET("/unfollow/:username", h.Follows.Unfollow, middleware.RequirePermission(model.PermissionFollow))
	g.GET("/followers/:username", h.Follows.Followers)
	g.GET("/following/:username", h.Follows.Following)

	g.POST("/create-post", h.Posts.CreatePost, middleware.RequirePermission(model.PermissionWrite))
	g.PUT("/edit-post/:id", h.Posts.EditPost, middleware.RequirePermission(model.PermissionWrite))
	g.DELETE("/delete-post/:id", h.Posts.DeletePost, middleware.RequirePermission(model.PermissionWrite))
	g.GET("/followed_users_posts", h.Posts.FollowedPosts)

	g.POST("/posts/:id/make_comment", h.Comments.MakeComment, middleware.RequirePermission(model.PermissionComment))
	g.DELETE("/delete_comment/:id", h.Comments.DeleteComment)

	g.GET("/like_unlike/:id", h.Likes.LikeUnlike)

	g.POST("/send_message/:id", h.Messages.SendMessage)
	g.GET("/sent_messages", h.Messages.SentMessages)
	g.GET("/received_messages", h.Messages.ReceivedMessages)
	g.GET("/show_conversation/:id", h.Messages.ShowConversation)
	g.DELETE("/delete_message/:id", h.Messages.DeleteMessage)
}
