package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/eschool-api/internal/models"
	appErrors "github.com/noah-isme/eschool-api/pkg/errors"
	"github.com/noah-isme/eschool-api/pkg/logger"
	"github.com/noah-isme/eschool-api/pkg/validation"
)

type chatStore interface {
	Create(ctx context.Context, msg *models.ChatMessage) error
	Inbox(ctx context.Context, accountID string, limit int) ([]models.ChatView, error)
	FindByID(ctx context.Context, id string) (*models.ChatView, error)
}

type recipientLister interface {
	ListOthers(ctx context.Context, excludeID string) ([]models.Account, error)
}

// ChatService handles direct messages between accounts.
type ChatService struct {
	chats     chatStore
	accounts  recipientLister
	validator *validation.Validator
	logger    *zap.Logger
	now       func() time.Time
}

// NewChatService constructs a ChatService.
func NewChatService(chats chatStore, accounts recipientLister, validator *validation.Validator, logger *zap.Logger) *ChatService {
	if validator == nil {
		validator = validation.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ChatService{chats: chats, accounts: accounts, validator: validator, logger: logger, now: time.Now}
}

// Recipients lists every other account labelled "username - Role".
func (s *ChatService) Recipients(ctx context.Context, actor models.Actor) ([]models.AccountOption, error) {
	accounts, err := s.accounts.ListOthers(ctx, actor.AccountID)
	if err != nil {
		return nil, internalError(err, "failed to load recipients")
	}
	options := make([]models.AccountOption, 0, len(accounts))
	for _, a := range accounts {
		role := a.Role()
		options = append(options, models.AccountOption{
			ID:       a.ID,
			Username: a.Username,
			Role:     role,
			Label:    fmt.Sprintf("%s - %s", a.Username, role.Label()),
		})
	}
	return options, nil
}

// Send stores a message from the caller stamped with the current time.
func (s *ChatService) Send(ctx context.Context, actor models.Actor, req models.SendChatRequest) (*models.ChatMessage, error) {
	if fields := s.validator.Struct(req); fields != nil {
		return nil, appErrors.Fields(fields)
	}
	msg := &models.ChatMessage{FromID: actor.AccountID, ToID: req.ToID, Body: req.Body, SendDate: s.now().UTC()}
	if err := s.chats.Create(ctx, msg); err != nil {
		logger.WithContext(ctx, s.logger).Error("chat send failed", zap.String("to", req.ToID), zap.Error(err))
		return nil, persistenceError(err)
	}
	return msg, nil
}

// Inbox lists messages addressed to the caller, newest first.
func (s *ChatService) Inbox(ctx context.Context, actor models.Actor) ([]models.ChatView, error) {
	messages, err := s.chats.Inbox(ctx, actor.AccountID, 0)
	if err != nil {
		return nil, internalError(err, "failed to load inbox")
	}
	return messages, nil
}

// Show returns one message. Messages the caller neither sent nor received are reported as missing.
func (s *ChatService) Show(ctx context.Context, actor models.Actor, id string) (*models.ChatView, error) {
	msg, err := s.chats.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "message not found", "failed to load message")
	}
	if msg.FromID != actor.AccountID && msg.ToID != actor.AccountID {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "message not found")
	}
	return msg, nil
}
