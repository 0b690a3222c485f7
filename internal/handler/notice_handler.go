package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/eschool-api/internal/models"
	"github.com/noah-isme/eschool-api/pkg/response"
)

type noticeService interface {
	Get(ctx context.Context, id string) (*models.Notice, error)
}

// NoticeHandler exposes notices.
type NoticeHandler struct {
	notices noticeService
}

// NewNoticeHandler constructs NoticeHandler.
func NewNoticeHandler(notices noticeService) *NoticeHandler {
	return &NoticeHandler{notices: notices}
}

// Show godoc
// @Summary Show notice
// @Tags Notices
// @Produce json
// @Param id path string true "Notice ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /notices/{id} [get]
func (h *NoticeHandler) Show(c *gin.Context) {
	notice, err := h.notices.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, notice, nil)
}
