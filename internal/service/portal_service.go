package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/noah-isme/eschool-api/internal/models"
	appErrors "github.com/noah-isme/eschool-api/pkg/errors"
)

type classFinder interface {
	FindByID(ctx context.Context, id string) (*models.Class, error)
}

type absenceStore interface {
	ListByStudent(ctx context.Context, studentID string) ([]models.AbsenceView, error)
}

type teacherStore interface {
	FindProfile(ctx context.Context, id string) (*models.TeacherProfile, error)
}

type noticeReader interface {
	Recent(ctx context.Context, limit int) ([]models.Notice, error)
}

type studentProfileReader interface {
	FindProfile(ctx context.Context, studentID string) (*models.StudentProfile, error)
}

// PortalService serves the pages of a signed in student.
type PortalService struct {
	students    studentDirectory
	profiles    studentProfileReader
	classes     classFinder
	offerings   offeringStore
	absences    absenceStore
	teachers    teacherStore
	notices     noticeReader
	recentLimit int
	logger      *zap.Logger
}

// NewPortalService constructs a PortalService.
func NewPortalService(students studentDirectory, profiles studentProfileReader, classes classFinder, offerings offeringStore, absences absenceStore, teachers teacherStore, notices noticeReader, recentLimit int, logger *zap.Logger) *PortalService {
	if recentLimit <= 0 {
		recentLimit = 10
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PortalService{
		students:    students,
		profiles:    profiles,
		classes:     classes,
		offerings:   offerings,
		absences:    absences,
		teachers:    teachers,
		notices:     notices,
		recentLimit: recentLimit,
		logger:      logger,
	}
}

func (s *PortalService) student(ctx context.Context, actor models.Actor) (*models.Student, *models.Class, error) {
	if actor.Role != models.RoleStudent || actor.ProfileID == "" {
		return nil, nil, appErrors.Clone(appErrors.ErrForbidden, "student profile required")
	}
	student, err := s.students.FindByID(ctx, actor.ProfileID)
	if err != nil {
		return nil, nil, lookupError(err, "student not found", "failed to load student")
	}
	class, err := s.classes.FindByID(ctx, student.ClassID)
	if err != nil {
		return nil, nil, lookupError(err, "class not found", "failed to load class")
	}
	return student, class, nil
}

// Home returns the student's class name and the newest notices.
func (s *PortalService) Home(ctx context.Context, actor models.Actor) (*models.StudentHome, error) {
	_, class, err := s.student(ctx, actor)
	if err != nil {
		return nil, err
	}
	notices, err := s.notices.Recent(ctx, s.recentLimit)
	if err != nil {
		return nil, internalError(err, "failed to load notices")
	}
	return &models.StudentHome{ClassName: class.Name, Notices: notices}, nil
}

// Profile returns the caller's own student profile.
func (s *PortalService) Profile(ctx context.Context, actor models.Actor) (*models.StudentProfile, error) {
	if actor.Role != models.RoleStudent || actor.ProfileID == "" {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "student profile required")
	}
	profile, err := s.profiles.FindProfile(ctx, actor.ProfileID)
	if err != nil {
		return nil, lookupError(err, "student not found", "failed to load student")
	}
	return profile, nil
}

// MyClass returns the student's class with its offerings by start time and the distinct subject names.
func (s *PortalService) MyClass(ctx context.Context, actor models.Actor) (*models.ClassOverview, error) {
	_, class, err := s.student(ctx, actor)
	if err != nil {
		return nil, err
	}
	offerings, err := s.offerings.ListByClass(ctx, class.ID)
	if err != nil {
		return nil, internalError(err, "failed to load subjects")
	}
	names := []string{}
	seen := make(map[string]struct{}, len(offerings))
	for _, o := range offerings {
		if _, ok := seen[o.SubjectName]; ok {
			continue
		}
		seen[o.SubjectName] = struct{}{}
		names = append(names, o.SubjectName)
	}
	return &models.ClassOverview{Class: *class, Offerings: offerings, SubjectNames: names}, nil
}

// ViewMarks lists the offerings of the student's class.
func (s *PortalService) ViewMarks(ctx context.Context, actor models.Actor) ([]models.OfferingView, error) {
	_, class, err := s.student(ctx, actor)
	if err != nil {
		return nil, err
	}
	offerings, err := s.offerings.ListByClass(ctx, class.ID)
	if err != nil {
		return nil, internalError(err, "failed to load subjects")
	}
	return offerings, nil
}

// Truancy lists the student's absences by lesson date.
func (s *PortalService) Truancy(ctx context.Context, actor models.Actor) (*models.TruancyReport, error) {
	student, class, err := s.student(ctx, actor)
	if err != nil {
		return nil, err
	}
	absences, err := s.absences.ListByStudent(ctx, student.ID)
	if err != nil {
		return nil, internalError(err, "failed to load absences")
	}
	return &models.TruancyReport{StudentName: student.FullName(), ClassName: class.Name, Absences: absences}, nil
}

// Teacher returns a teacher profile.
func (s *PortalService) Teacher(ctx context.Context, id string) (*models.TeacherProfile, error) {
	teacher, err := s.teachers.FindProfile(ctx, id)
	if err != nil {
		return nil, lookupError(err, "teacher not found", "failed to load teacher")
	}
	return teacher, nil
}
