package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/eschool-api/internal/models"
	"github.com/noah-isme/eschool-api/pkg/response"
)

type searchService interface {
	Search(ctx context.Context, term string) (models.SearchResult, error)
}

// SearchHandler exposes the cross-entity prefix search.
type SearchHandler struct {
	service searchService
}

// NewSearchHandler constructs SearchHandler.
func NewSearchHandler(svc searchService) *SearchHandler {
	return &SearchHandler{service: svc}
}

// Search godoc
// @Summary Search students, teachers, parents and subjects
// @Tags Search
// @Produce json
// @Param search query string false "National ID, birth date (yyyy-MM-dd) or class/subject name prefix"
// @Success 200 {object} response.Envelope
// @Router /admin/search [get]
func (h *SearchHandler) Search(c *gin.Context) {
	result, err := h.service.Search(c.Request.Context(), c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}
