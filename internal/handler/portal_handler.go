package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/eschool-api/internal/models"
	"github.com/noah-isme/eschool-api/pkg/response"
)

type portalService interface {
	Home(ctx context.Context, actor models.Actor) (*models.StudentHome, error)
	Profile(ctx context.Context, actor models.Actor) (*models.StudentProfile, error)
	MyClass(ctx context.Context, actor models.Actor) (*models.ClassOverview, error)
	ViewMarks(ctx context.Context, actor models.Actor) ([]models.OfferingView, error)
	Truancy(ctx context.Context, actor models.Actor) (*models.TruancyReport, error)
	Teacher(ctx context.Context, id string) (*models.TeacherProfile, error)
}

// PortalHandler serves the student portal pages.
type PortalHandler struct {
	portal portalService
}

// NewPortalHandler constructs PortalHandler.
func NewPortalHandler(portal portalService) *PortalHandler {
	return &PortalHandler{portal: portal}
}

// actorPage runs load for the authenticated actor and writes its result.
func actorPage[T any](c *gin.Context, load func(ctx context.Context, actor models.Actor) (T, error)) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	result, err := load(c.Request.Context(), actor)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Home godoc
// @Summary Student home
// @Tags Student
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /student/home [get]
func (h *PortalHandler) Home(c *gin.Context) { actorPage(c, h.portal.Home) }

// Profile godoc
// @Summary Student profile
// @Tags Student
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /student/profile [get]
func (h *PortalHandler) Profile(c *gin.Context) { actorPage(c, h.portal.Profile) }

// MyClass godoc
// @Summary Class of the signed in student
// @Tags Student
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /student/class [get]
func (h *PortalHandler) MyClass(c *gin.Context) { actorPage(c, h.portal.MyClass) }

// ViewMarks godoc
// @Summary Subjects to pick a mark from
// @Tags Student
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /student/marks [get]
func (h *PortalHandler) ViewMarks(c *gin.Context) { actorPage(c, h.portal.ViewMarks) }

// Truancy godoc
// @Summary Absences of the signed in student
// @Tags Student
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /student/truancy [get]
func (h *PortalHandler) Truancy(c *gin.Context) { actorPage(c, h.portal.Truancy) }

// Teacher godoc
// @Summary View teacher
// @Tags Student
// @Produce json
// @Param id path string true "Teacher ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /student/teachers/{id} [get]
func (h *PortalHandler) Teacher(c *gin.Context) {
	teacher, err := h.portal.Teacher(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, teacher, nil)
}
