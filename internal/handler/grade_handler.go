package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/eschool-api/internal/models"
	appErrors "github.com/noah-isme/eschool-api/pkg/errors"
	"github.com/noah-isme/eschool-api/pkg/response"
)

type gradeService interface {
	Marks(ctx context.Context, filter models.MarksFilter) (*models.MarksPage, error)
	StudentGrades(ctx context.Context, studentID string) (*models.StudentGrades, error)
	SubjectMark(ctx context.Context, studentID, subjectID string) (*models.SubjectMark, error)
}

// GradeHandler exposes marks for administrators and grades for students.
type GradeHandler struct {
	grades gradeService
}

// NewGradeHandler constructs GradeHandler.
func NewGradeHandler(grades gradeService) *GradeHandler {
	return &GradeHandler{grades: grades}
}

// Marks godoc
// @Summary List marks
// @Description Filters are AND-combined. Without any filter the list is empty; options are always returned.
// @Tags Grades
// @Produce json
// @Param classId query string false "Class ID"
// @Param subjectId query string false "Subject offering ID"
// @Param studentId query string false "Student ID"
// @Success 200 {object} response.Envelope
// @Router /admin/marks [get]
func (h *GradeHandler) Marks(c *gin.Context) {
	filter := models.MarksFilter{
		ClassID:   c.Query("classId"),
		SubjectID: c.Query("subjectId"),
		StudentID: c.Query("studentId"),
	}
	page, err := h.grades.Marks(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, page, nil)
}

// MyGrades godoc
// @Summary Grades of the signed in student
// @Tags Student
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /student/grades [get]
func (h *GradeHandler) MyGrades(c *gin.Context) {
	studentID, ok := studentProfile(c)
	if !ok {
		return
	}
	grades, err := h.grades.StudentGrades(c.Request.Context(), studentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, grades, nil)
}

// SubjectMark godoc
// @Summary Grade of the signed in student for one subject
// @Tags Student
// @Produce json
// @Param subjectId path string true "Subject offering ID"
// @Success 200 {object} response.Envelope
// @Router /student/grades/{subjectId} [get]
func (h *GradeHandler) SubjectMark(c *gin.Context) {
	studentID, ok := studentProfile(c)
	if !ok {
		return
	}
	mark, err := h.grades.SubjectMark(c.Request.Context(), studentID, c.Param("subjectId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, mark, nil)
}

func studentProfile(c *gin.Context) (string, bool) {
	actor, ok := actorFromContext(c)
	if !ok {
		return "", false
	}
	if actor.Role != models.RoleStudent || actor.ProfileID == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrForbidden, "student profile required"))
		return "", false
	}
	return actor.ProfileID, true
}
