package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/openwave/social-network-api/internal/config"
	"github.com/openwave/social-network-api/internal/database"
	"github.com/openwave/social-network-api/internal/handler"
	"github.com/openwave/social-network-api/internal/middleware"
	"github.com/openwave/social-network-api/internal/queue"
	"github.com/openwave/social-network-api/internal/repository"
	"github.com/openwave/social-network-api/internal/router"
	"github.com/openwave/social-network-api/internal/service"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("migrations: %v", err)
	}

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable, revocation checks fall back to the database")
	}

	users := repository.NewUserRepo(db)
	roles := repository.NewRoleRepo(db)
	follows := repository.NewFollowRepo(db)
	posts := repository.NewPostRepo(db)
	comments := repository.NewCommentRepo(db)
	likes := repository.NewLikeRepo(db)
	messages := repository.NewMessageRepo(db)
	tokens := repository.NewTokenRepo(db, rdb)

	if err := roles.Seed(context.Background()); err != nil {
		log.Fatalf("seed roles: %v", err)
	}

	events := service.NewSocialEventPublisher(queue.BrokerURL())
	go queue.StartSocialConsumer()

	h := router.Handlers{
		Auth:     handler.NewAuthHandler(cfg, users, roles, tokens),
		Users:    handler.NewUserHandler(cfg, users, follows, posts, comments, likes, tokens),
		Follows:  handler.NewFollowHandler(users, follows, events),
		Posts:    handler.NewPostHandler(posts, comments, likes),
		Comments: handler.NewCommentHandler(posts, comments, follows),
		Likes:    handler.NewLikeHandler(posts, comments, likes),
		Messages: handler.NewMessageHandler(users, messages, posts, events),
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())

	auth := middleware.JWTAuth(cfg.JWTSecret, users, tokens)
	router.Register(e, db, h, auth)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
