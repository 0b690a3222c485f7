package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/eschool-api/internal/middleware"
	"github.com/noah-isme/eschool-api/internal/models"
)

// Handlers groups every HTTP handler mounted by Register.
type Handlers struct {
	Auth      *AuthHandler
	Account   *AccountHandler
	Roster    *RosterHandler
	Student   *StudentHandler
	Search    *SearchHandler
	Grade     *GradeHandler
	Portal    *PortalHandler
	Chat      *ChatHandler
	Notice    *NoticeHandler
	Calendar  *CalendarHandler
	Dashboard *DashboardHandler
	Metrics   *MetricsHandler
}

// Register mounts the API under prefix. Everything except login and the
// events calendar requires a bearer token.
func Register(r gin.IRouter, prefix string, h Handlers, tokens middleware.TokenValidator, audit middleware.AuditWriter, log *zap.Logger) {
	api := r.Group(prefix)
	api.Use(middleware.WithResponseMeta())

	api.POST("/auth/login", h.Auth.Login)
	api.GET("/calendar/events", h.Calendar.Events)

	secured := api.Group("")
	secured.Use(middleware.JWT(tokens))

	secured.GET("/account", h.Account.Profile)
	secured.PUT("/account/:id", h.Account.UpdateProfile)
	secured.POST("/account/password", h.Account.ChangePassword)

	secured.GET("/chats", h.Chat.Inbox)
	secured.GET("/chats/recipients", h.Chat.Recipients)
	secured.POST("/chats", middleware.Audit(audit, models.AuditActionChatSend, "chat", log), h.Chat.Send)
	secured.GET("/chats/:id", h.Chat.Show)
	secured.GET("/notices/:id", h.Notice.Show)

	admin := secured.Group("/admin")
	admin.Use(middleware.RequireRoles(models.RoleAdmin))
	admin.GET("/dashboard", h.Dashboard.Admin)
	admin.GET("/metrics", h.Metrics.Snapshot)
	admin.GET("/search", h.Search.Search)
	admin.GET("/marks", h.Grade.Marks)
	admin.GET("/students", h.Roster.List)
	admin.GET("/students/export", h.Roster.Export)
	admin.GET("/students/form", h.Student.NewForm)
	admin.POST("/students", h.Student.Create)
	admin.GET("/students/:id", h.Student.Get)
	admin.GET("/students/:id/edit", h.Student.EditForm)
	admin.PUT("/students/:id", h.Student.Update)

	student := secured.Group("/student")
	student.Use(middleware.RequireRoles(models.RoleStudent))
	student.GET("/home", h.Portal.Home)
	student.GET("/profile", h.Portal.Profile)
	student.GET("/class", h.Portal.MyClass)
	student.GET("/marks", h.Portal.ViewMarks)
	student.GET("/grades", h.Grade.MyGrades)
	student.GET("/grades/:subjectId", h.Grade.SubjectMark)
	student.GET("/truancy", h.Portal.Truancy)
	student.GET("/teachers/:id", h.Portal.Teacher)

	secured.GET("/calendar/schedule", middleware.RequireRoles(models.RoleStudent), h.Calendar.Schedule)
}
