package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/eschool-api/internal/models"
	appErrors "github.com/noah-isme/eschool-api/pkg/errors"
	"github.com/noah-isme/eschool-api/pkg/logger"
	"github.com/noah-isme/eschool-api/pkg/validation"
)

type accountStore interface {
	accountUniqueness
	FindByID(ctx context.Context, id string) (*models.Account, error)
	UpdateProfile(ctx context.Context, account *models.Account) error
	UpdatePassword(ctx context.Context, id, hash string) error
	CreateAuditLog(ctx context.Context, log *models.AuditLog) error
}

// AccountService manages the caller's own account.
type AccountService struct {
	repo      accountStore
	validator *validation.Validator
	logger    *zap.Logger
	hashCost  int
}

// NewAccountService constructs an AccountService.
func NewAccountService(repo accountStore, validator *validation.Validator, logger *zap.Logger) *AccountService {
	if validator == nil {
		validator = validation.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AccountService{repo: repo, validator: validator, logger: logger, hashCost: bcrypt.DefaultCost}
}

// Profile returns the caller's account.
func (s *AccountService) Profile(ctx context.Context, actor models.Actor) (*models.Account, error) {
	account, err := s.repo.FindByID(ctx, actor.AccountID)
	if err != nil {
		return nil, lookupError(err, "account not found", "failed to load account")
	}
	return account, nil
}

// UpdateProfile edits username, email and phone of the caller. Uniqueness is
// checked in the order username, email, phone and only for changed values.
func (s *AccountService) UpdateProfile(ctx context.Context, actor models.Actor, req models.UpdateAccountRequest) (*models.Account, error) {
	if req.ID != actor.AccountID {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "account not found")
	}
	if fields := s.validator.Struct(req); fields != nil {
		return nil, appErrors.Fields(fields)
	}
	account, err := s.Profile(ctx, actor)
	if err != nil {
		return nil, err
	}

	var email, phone string
	if account.Email != nil {
		email = *account.Email
	}
	if account.PhoneNumber != nil {
		phone = *account.PhoneNumber
	}
	checks := []uniqueCheck{
		{field: "username", value: req.Username, exclude: account.ID, changed: changedFrom(req.Username, account.Username, true), exists: s.repo.ExistsByUsername, message: msgUsernameTaken},
		{field: "email", value: req.Email, exclude: account.ID, changed: changedFrom(req.Email, email, true), exists: s.repo.ExistsByEmail, message: msgEmailTaken},
		{field: "phone_number", value: req.PhoneNumber, exclude: account.ID, changed: changedFrom(req.PhoneNumber, phone, false), exists: s.repo.ExistsByPhone, message: msgPhoneTaken},
	}
	if err := runUniqueChecks(ctx, checks); err != nil {
		return nil, err
	}

	before := fmt.Sprintf(`{"username":%q}`, account.Username)
	account.Username = req.Username
	account.Email = optional(req.Email)
	account.PhoneNumber = optional(req.PhoneNumber)
	if err := s.repo.UpdateProfile(ctx, account); err != nil {
		logger.WithContext(ctx, s.logger).Error("account update failed", zap.String("account_id", account.ID), zap.Error(err))
		return nil, persistenceError(err)
	}
	s.audit(ctx, actor, models.AuditActionAccountUpdate, []byte(before), []byte(fmt.Sprintf(`{"username":%q}`, account.Username)))
	return account, nil
}

// ChangePassword verifies the old password and stores the new one. The
// credential is left unchanged on any failure.
func (s *AccountService) ChangePassword(ctx context.Context, actor models.Actor, req models.ChangePasswordRequest) error {
	if fields := s.validator.Struct(req); fields != nil {
		return appErrors.Fields(fields)
	}
	if req.NewPassword != req.ConfirmPassword {
		return appErrors.Field("confirm_password", msgMismatch)
	}
	account, err := s.Profile(ctx, actor)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.OldPassword)); err != nil {
		return appErrors.Field("old_password", "old password is incorrect")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), s.hashCost)
	if err != nil {
		return internalError(err, "failed to hash password")
	}
	if err := s.repo.UpdatePassword(ctx, account.ID, string(hash)); err != nil {
		return persistenceError(err)
	}
	s.audit(ctx, actor, models.AuditActionPasswordChange, nil, []byte(`{"status":"changed"}`))
	return nil
}

func (s *AccountService) audit(ctx context.Context, actor models.Actor, action string, before, after []byte) {
	if err := s.repo.CreateAuditLog(ctx, &models.AuditLog{
		AccountID:  &actor.AccountID,
		Action:     action,
		Resource:   "account",
		ResourceID: &actor.AccountID,
		OldValues:  before,
		NewValues:  after,
		IPAddress:  actor.IP,
		UserAgent:  actor.UserAgent,
	}); err != nil {
		logger.WithContext(ctx, s.logger).Warn("failed to record account audit log", zap.String("action", action), zap.Error(err))
	}
}
