package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/eschool-api/internal/models"
	appErrors "github.com/noah-isme/eschool-api/pkg/errors"
	"github.com/noah-isme/eschool-api/pkg/response"
)

type studentService interface {
	Get(ctx context.Context, id string) (*models.StudentProfile, error)
	FormContext(ctx context.Context) (models.StudentFormContext, error)
	EditForm(ctx context.Context, id string) (*models.StudentFormView, error)
	Create(ctx context.Context, actor models.Actor, form models.StudentForm) (*models.StudentProfile, error)
	Update(ctx context.Context, actor models.Actor, id string, form models.StudentForm) (*models.StudentProfile, error)
}

// StudentHandler exposes student create, edit and view endpoints.
type StudentHandler struct {
	students studentService
}

// NewStudentHandler constructs StudentHandler.
func NewStudentHandler(students studentService) *StudentHandler {
	return &StudentHandler{students: students}
}

// Get godoc
// @Summary Get student
// @Tags Students
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /admin/students/{id} [get]
func (h *StudentHandler) Get(c *gin.Context) {
	profile, err := h.students.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, profile, nil)
}

// NewForm godoc
// @Summary Empty student form with class and parent options
// @Tags Students
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /admin/students/form [get]
func (h *StudentHandler) NewForm(c *gin.Context) {
	options, err := h.students.FormContext(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, models.StudentFormView{Options: options}, nil)
}

// EditForm godoc
// @Summary Student form prefilled with stored values
// @Tags Students
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /admin/students/{id}/edit [get]
func (h *StudentHandler) EditForm(c *gin.Context) {
	view, err := h.students.EditForm(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view, nil)
}

// Create godoc
// @Summary Create student with account
// @Description Uniqueness is checked in order email, username, phone number, national ID; the first violation is reported.
// @Tags Students
// @Accept json
// @Produce json
// @Param payload body models.StudentForm true "Student form"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /admin/students [post]
func (h *StudentHandler) Create(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	var form models.StudentForm
	if err := c.ShouldBindJSON(&form); err != nil {
		response.Error(c, bindError(err, "invalid student payload"))
		return
	}

	profile, err := h.students.Create(c.Request.Context(), actor, form)
	if err != nil {
		h.redisplay(c, err, form)
		return
	}
	response.Created(c, profile)
}

// Update godoc
// @Summary Update student with account
// @Description Only changed values are checked for uniqueness. The password is replaced only when submitted.
// @Tags Students
// @Accept json
// @Produce json
// @Param id path string true "Student ID"
// @Param payload body models.StudentForm true "Student form"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /admin/students/{id} [put]
func (h *StudentHandler) Update(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	var form models.StudentForm
	if err := c.ShouldBindJSON(&form); err != nil {
		response.Error(c, bindError(err, "invalid student payload"))
		return
	}

	profile, err := h.students.Update(c.Request.Context(), actor, c.Param("id"), form)
	if err != nil {
		h.redisplay(c, err, form)
		return
	}
	response.JSON(c, http.StatusOK, profile, nil)
}

// redisplay answers a rejected or failed upsert with the submitted values
// and the form options so the client can show the form again.
func (h *StudentHandler) redisplay(c *gin.Context, err error, form models.StudentForm) {
	if !appErrors.HasFields(err) && !errors.Is(err, appErrors.ErrPersistence) {
		response.Error(c, err)
		return
	}
	options, ctxErr := h.students.FormContext(c.Request.Context())
	if ctxErr != nil {
		response.Error(c, err)
		return
	}
	form.Normalize()
	response.ErrorWithData(c, err, models.StudentFormView{Values: form.Redisplay(), Options: options})
}
