package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/eschool-api/internal/models"
	"github.com/noah-isme/eschool-api/pkg/response"
)

type chatService interface {
	Recipients(ctx context.Context, actor models.Actor) ([]models.AccountOption, error)
	Send(ctx context.Context, actor models.Actor, req models.SendChatRequest) (*models.ChatMessage, error)
	Inbox(ctx context.Context, actor models.Actor) ([]models.ChatView, error)
	Show(ctx context.Context, actor models.Actor, id string) (*models.ChatView, error)
}

// ChatHandler exposes direct messages between accounts.
type ChatHandler struct {
	chats chatService
}

// NewChatHandler constructs ChatHandler.
func NewChatHandler(chats chatService) *ChatHandler {
	return &ChatHandler{chats: chats}
}

// Recipients godoc
// @Summary Accounts a message can be sent to
// @Tags Chat
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /chats/recipients [get]
func (h *ChatHandler) Recipients(c *gin.Context) { actorPage(c, h.chats.Recipients) }

// Inbox godoc
// @Summary Messages sent to the caller, newest first
// @Tags Chat
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /chats [get]
func (h *ChatHandler) Inbox(c *gin.Context) { actorPage(c, h.chats.Inbox) }

// Send godoc
// @Summary Send a message
// @Tags Chat
// @Accept json
// @Produce json
// @Param payload body models.SendChatRequest true "Message"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /chats [post]
func (h *ChatHandler) Send(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	var req models.SendChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err, "invalid message payload"))
		return
	}
	msg, err := h.chats.Send(c.Request.Context(), actor, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, msg)
}

// Show godoc
// @Summary Show a message
// @Description Only the sender and the recipient can read a message.
// @Tags Chat
// @Produce json
// @Param id path string true "Message ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /chats/{id} [get]
func (h *ChatHandler) Show(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	msg, err := h.chats.Show(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, msg, nil)
}
