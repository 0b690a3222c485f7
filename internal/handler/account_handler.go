package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/eschool-api/internal/models"
	"github.com/noah-isme/eschool-api/pkg/response"
)

type accountService interface {
	Profile(ctx context.Context, actor models.Actor) (*models.Account, error)
	UpdateProfile(ctx context.Context, actor models.Actor, req models.UpdateAccountRequest) (*models.Account, error)
	ChangePassword(ctx context.Context, actor models.Actor, req models.ChangePasswordRequest) error
}

// AccountHandler serves the caller's own account.
type AccountHandler struct {
	accounts accountService
}

// NewAccountHandler constructs AccountHandler.
func NewAccountHandler(accounts accountService) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

// Profile godoc
// @Summary Current account
// @Tags Account
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /account [get]
func (h *AccountHandler) Profile(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	account, err := h.accounts.Profile(c.Request.Context(), actor)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, account, nil)
}

// UpdateProfile godoc
// @Summary Update current account
// @Description The path id must be the caller's account id.
// @Tags Account
// @Accept json
// @Produce json
// @Param id path string true "Account ID"
// @Param payload body models.UpdateAccountRequest true "Account"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /account/{id} [put]
func (h *AccountHandler) UpdateProfile(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	var req models.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err, "invalid account payload"))
		return
	}
	req.ID = c.Param("id")

	account, err := h.accounts.UpdateProfile(c.Request.Context(), actor, req)
	if err != nil {
		response.ErrorWithData(c, err, req)
		return
	}
	response.JSON(c, http.StatusOK, account, nil)
}

// ChangePassword godoc
// @Summary Change password
// @Tags Account
// @Accept json
// @Produce json
// @Param payload body models.ChangePasswordRequest true "Change password"
// @Success 204
// @Failure 400 {object} response.Envelope
// @Router /account/password [post]
func (h *AccountHandler) ChangePassword(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	var req models.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err, "invalid payload"))
		return
	}

	if err := h.accounts.ChangePassword(c.Request.Context(), actor, req); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
