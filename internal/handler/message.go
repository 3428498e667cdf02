package handler

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/openwave/social-network-api/internal/model"
	"github.com/openwave/social-network-api/internal/repository"
)

// MessageHandler bundles dependencies for the direct-message endpoints.
type MessageHandler struct {
	Users    UserStore
	Messages MessageStore
	Posts    PostStore
	Events   EventPublisher
}

func NewMessageHandler(users UserStore, messages MessageStore, posts PostStore, events EventPublisher) *MessageHandler {
	return &MessageHandler{Users: users, Messages: messages, Posts: posts, Events: events}
}

// SendMessage handles POST /send_message/:id. A message may embed a
// shared post; the share fields are stored denormalized so the message
// survives the post's deletion.
func (h *MessageHandler) SendMessage(c echo.Context) error {
	actor, err := actingUser(c)
	if err != nil {
		return unauthorized(c, "unauthorized")
	}
	var req struct {
		Body         string `json:"body"`
		SharedPostID uint64 `json:"shared_post_id"`
	}
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	recipientID, err := paramID(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}

	rctx := c.Request().Context()
	recipient, err := h.Users.GetByID(rctx, recipientID)
	if errors.Is(err, repository.ErrUserNotFound) {
		return notFound(c, "user not found.")
	}
	if err != nil {
		return internalError(c, "lookup failed")
	}
	if recipient.ID == actor.ID {
		return badRequest(c, "you cannot message yourself.")
	}
	if strings.TrimSpace(req.Body) == "" {
		return badRequest(c, "message cannot be empty.")
	}

	msg := &model.Message{
		SenderID:    actor.ID,
		RecipientID: recipient.ID,
	}
	if req.SharedPostID != 0 {
		post, err := h.Posts.GetByID(rctx, req.SharedPostID)
		if errors.Is(err, repository.ErrPostNotFound) {
			return notFound(c, "Post not found")
		}
		if err != nil {
			return internalError(c, "lookup failed")
		}
		msg.Shared = true
		msg.SharedPostPath = post.ContentURL
		if post.Author != nil {
			msg.SharedPostUsername = post.Author.Username
		}
	}
	msg.Body = req.Body

	if err := h.Messages.Create(rctx, msg); err != nil {
		return internalError(c, "create failed")
	}
	msg.SenderName = actor.Username
	msg.RecipientName = recipient.Username

	if h.Events != nil {
		if err := h.Events.PublishMessage(rctx, msg); err != nil {
			log.Printf("[MESSAGE] publish event: %v", err)
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"msg": "message sent.", "message_id": msg.ID})
}

// SentMessages handles GET /sent_messages for the acting user.
func (h *MessageHandler) SentMessages(c echo.Context) error {
	actor, err := actingUser(c)
	if err != nil {
		return unauthorized(c, "unauthorized")
	}
	msgs, err := h.Messages.ListSent(c.Request().Context(), actor.ID)
	if err != nil {
		return internalError(c, "lookup failed")
	}
	return c.JSON(http.StatusOK, echo.Map{"messages": messageListJSON(msgs)})
}

// ReceivedMessages handles GET /received_messages for the acting user.
func (h *MessageHandler) ReceivedMessages(c echo.Context) error {
	actor, err := actingUser(c)
	if err != nil {
		return unauthorized(c, "unauthorized")
	}
	msgs, err := h.Messages.ListReceived(c.Request().Context(), actor.ID)
	if err != nil {
		return internalError(c, "lookup failed")
	}
	return c.JSON(http.StatusOK, echo.Map{"messages": messageListJSON(msgs)})
}

// ShowConversation handles GET /show_conversation/:id, the merged
// two-way thread between the acting user and the identified user in send
// order.
func (h *MessageHandler) ShowConversation(c echo.Context) error {
	actor, err := actingUser(c)
	if err != nil {
		return unauthorized(c, "unauthorized")
	}
	otherID, err := paramID(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}
	rctx := c.Request().Context()
	other, err := h.Users.GetByID(rctx, otherID)
	if errors.Is(err, repository.ErrUserNotFound) {
		return notFound(c, "user not found.")
	}
	if err != nil {
		return internalError(c, "lookup failed")
	}
	msgs, err := h.Messages.Conversation(rctx, actor.ID, other.ID)
	if err != nil {
		return internalError(c, "lookup failed")
	}
	return c.JSON(http.StatusOK, echo.Map{"conversation": messageListJSON(msgs)})
}

// DeleteMessage handles DELETE /delete_message/:id. The sender, the
// recipient, and elevated roles may delete.
func (h *MessageHandler) DeleteMessage(c echo.Context) error {
	actor, err := actingUser(c)
	if err != nil {
		return unauthorized(c, "unauthorized")
	}
	id, err := paramID(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}
	rctx := c.Request().Context()
	msg, err := h.Messages.GetByID(rctx, id)
	if errors.Is(err, repository.ErrMessageNotFound) {
		return notFound(c, "Message not found")
	}
	if err != nil {
		return internalError(c, "lookup failed")
	}
	if msg.SenderID != actor.ID && msg.RecipientID != actor.ID && !actor.IsElevated() {
		return forbidden(c, "Operation not allowed!")
	}
	if err := h.Messages.Delete(rctx, msg.ID); err != nil {
		return internalError(c, "delete failed")
	}
	return c.JSON(http.StatusOK, echo.Map{"msg": "message deleted."})
}

func messageListJSON(msgs []model.Message) []echo.Map {
	out := make([]echo.Map, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, messageJSON(m))
	}
	return out
}
