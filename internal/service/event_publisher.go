// Package service holds the broker-facing side of the social event flow.
package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/openwave/social-network-api/internal/model"
	"github.com/openwave/social-network-api/internal/queue"
)

// SocialEventPublisher publishes follow and message events to the
// social.events queue. Every error is logged and returned; callers treat
// publishing as best-effort and never fail a request over it. A fresh
// connection per publish keeps the publisher stateless and tolerant of
// broker restarts.
type SocialEventPublisher struct {
	URL string
}

func NewSocialEventPublisher(url string) *SocialEventPublisher {
	return &SocialEventPublisher{URL: url}
}

// PublishFollow emits a FollowEvent for a freshly created follow edge.
func (p *SocialEventPublisher) PublishFollow(ctx context.Context, follower, followed *model.User) error {
	ev := queue.FollowEvent{
		FollowerID:   follower.ID,
		FollowerName: follower.Username,
		FollowedID:   followed.ID,
		FollowedName: followed.Username,
		FollowedAt:   time.Now().UTC().Format(time.RFC3339),
	}
	return p.publish(ctx, ev)
}

// PublishMessage emits a MessageEvent for a stored direct message.
func (p *SocialEventPublisher) PublishMessage(ctx context.Context, m *model.Message) error {
	ev := queue.MessageEvent{
		MessageID:   m.ID,
		SenderID:    m.SenderID,
		RecipientID: m.RecipientID,
		Shared:      m.Shared,
		SentAt:      time.Now().UTC().Format(time.RFC3339),
	}
	return p.publish(ctx, ev)
}

func (p *SocialEventPublisher) publish(ctx context.Context, event any) error {
	conn, err := amqp.Dial(p.URL)
	if err != nil {
		log.Printf("[QUEUE] dial failed: %v", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Printf("[QUEUE] channel open failed: %v", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(queue.SocialQueueName, true, false, false, false, nil); err != nil {
		log.Printf("[QUEUE] queue declare failed: %v", err)
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("[QUEUE] marshal event failed: %v", err)
		return err
	}

	pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = ch.PublishWithContext(pubCtx, "", queue.SocialQueueName, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
	if err != nil {
		log.Printf("[QUEUE] publish failed: %v", err)
	}
	return err
}
