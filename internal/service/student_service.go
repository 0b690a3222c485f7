package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/eschool-api/internal/models"
	appErrors "github.com/noah-isme/eschool-api/pkg/errors"
	"github.com/noah-isme/eschool-api/pkg/logger"
	"github.com/noah-isme/eschool-api/pkg/validation"
)

const (
	msgEmailTaken      = "email is already in use"
	msgUsernameTaken   = "username is already taken"
	msgPhoneTaken      = "phone number is already in use"
	msgNationalIDTaken = "national id is already registered"
	msgRequired        = "this field is required"
	msgMismatch        = "values do not match"
)

type studentStore interface {
	FindProfile(ctx context.Context, studentID string) (*models.StudentProfile, error)
	ExistsByNationalID(ctx context.Context, nationalID, excludeID string) (bool, error)
	CreateWithAccount(ctx context.Context, rec *models.StudentAccount) error
	UpdateWithAccount(ctx context.Context, rec *models.StudentAccount) error
}

type accountUniqueness interface {
	ExistsByUsername(ctx context.Context, username, excludeID string) (bool, error)
	ExistsByEmail(ctx context.Context, email, excludeID string) (bool, error)
	ExistsByPhone(ctx context.Context, phone, excludeID string) (bool, error)
}

type classLookup interface {
	List(ctx context.Context) ([]models.Class, error)
	FindByID(ctx context.Context, id string) (*models.Class, error)
}

type parentLookup interface {
	List(ctx context.Context) ([]models.Parent, error)
	Exists(ctx context.Context, id string) (bool, error)
}

type auditLogger interface {
	CreateAuditLog(ctx context.Context, log *models.AuditLog) error
}

// StudentService creates and edits students together with their accounts.
type StudentService struct {
	students  studentStore
	accounts  accountUniqueness
	classes   classLookup
	parents   parentLookup
	audit     auditLogger
	validator *validation.Validator
	metrics   *MetricsService
	logger    *zap.Logger
	hashCost  int
}

// NewStudentService constructs the student service.
func NewStudentService(students studentStore, accounts accountUniqueness, classes classLookup, parents parentLookup, audit auditLogger, validator *validation.Validator, metrics *MetricsService, logger *zap.Logger) *StudentService {
	if validator == nil {
		validator = validation.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{
		students:  students,
		accounts:  accounts,
		classes:   classes,
		parents:   parents,
		audit:     audit,
		validator: validator,
		metrics:   metrics,
		logger:    logger,
		hashCost:  bcrypt.DefaultCost,
	}
}

// Get returns the full student profile.
func (s *StudentService) Get(ctx context.Context, id string) (*models.StudentProfile, error) {
	profile, err := s.students.FindProfile(ctx, id)
	if err != nil {
		return nil, lookupError(err, "student not found", "failed to load student")
	}
	return profile, nil
}

// FormContext builds the dropdown options shown with the student form.
func (s *StudentService) FormContext(ctx context.Context) (models.StudentFormContext, error) {
	formCtx := models.StudentFormContext{Classes: []models.Option{}, Parents: []models.Option{}}
	classes, err := s.classes.List(ctx)
	if err != nil {
		return formCtx, internalError(err, "failed to load classes")
	}
	for _, c := range classes {
		formCtx.Classes = append(formCtx.Classes, models.Option{ID: c.ID, Label: c.Name})
	}
	parents, err := s.parents.List(ctx)
	if err != nil {
		return formCtx, internalError(err, "failed to load parents")
	}
	for _, p := range parents {
		formCtx.Parents = append(formCtx.Parents, models.Option{ID: p.ID, Label: fmt.Sprintf("%s-%s", p.NationalID, p.FullName())})
	}
	return formCtx, nil
}

// EditForm returns the stored values of a student with the form options.
func (s *StudentService) EditForm(ctx context.Context, id string) (*models.StudentFormView, error) {
	profile, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	options, err := s.FormContext(ctx)
	if err != nil {
		return nil, err
	}
	return &models.StudentFormView{Values: models.StudentFormFromProfile(profile), Options: options}, nil
}

// Create validates the form and persists address, student, account and role atomically.
func (s *StudentService) Create(ctx context.Context, actor models.Actor, form models.StudentForm) (*models.StudentProfile, error) {
	profile, err := s.create(ctx, actor, form)
	s.metrics.RecordUpsert("create", upsertOutcome(err))
	return profile, err
}

func (s *StudentService) create(ctx context.Context, actor models.Actor, form models.StudentForm) (*models.StudentProfile, error) {
	form.Normalize()
	if fields := s.validator.Struct(form); fields != nil {
		return nil, appErrors.Fields(fields)
	}
	if err := runUniqueChecks(ctx, s.checks(form, nil)); err != nil {
		return nil, err
	}
	class, err := s.checkReferences(ctx, form)
	if err != nil {
		return nil, err
	}
	if form.Password == "" {
		return nil, appErrors.Field("password", msgRequired)
	}
	if form.Password != form.ConfirmPassword {
		return nil, appErrors.Field("confirm_password", msgMismatch)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(form.Password), s.hashCost)
	if err != nil {
		return nil, internalError(err, "failed to hash password")
	}

	rec := s.records(form, &models.Account{}, &models.Student{})
	rec.Account.PasswordHash = string(hash)
	if err := s.students.CreateWithAccount(ctx, rec); err != nil {
		logger.WithContext(ctx, s.logger).Error("student create failed", zap.String("username", form.Username), zap.Error(err))
		return nil, persistenceError(err)
	}

	s.recordAudit(ctx, actor, models.AuditActionStudentCreate, rec.Student.ID, nil, form)
	return profileFromRecords(rec, class.Name), nil
}

// Update validates the form against the stored student and persists the changes atomically.
// The password is only replaced when one is submitted.
func (s *StudentService) Update(ctx context.Context, actor models.Actor, id string, form models.StudentForm) (*models.StudentProfile, error) {
	profile, err := s.update(ctx, actor, id, form)
	s.metrics.RecordUpsert("update", upsertOutcome(err))
	return profile, err
}

func (s *StudentService) update(ctx context.Context, actor models.Actor, id string, form models.StudentForm) (*models.StudentProfile, error) {
	stored, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	form.Normalize()
	if fields := s.validator.Struct(form); fields != nil {
		return nil, appErrors.Fields(fields)
	}
	if err := runUniqueChecks(ctx, s.checks(form, stored)); err != nil {
		return nil, err
	}
	class, err := s.checkReferences(ctx, form)
	if err != nil {
		return nil, err
	}
	var hash []byte
	if form.Password != "" || form.ConfirmPassword != "" {
		if form.Password != form.ConfirmPassword {
			return nil, appErrors.Field("confirm_password", msgMismatch)
		}
		if hash, err = bcrypt.GenerateFromPassword([]byte(form.Password), s.hashCost); err != nil {
			return nil, internalError(err, "failed to hash password")
		}
	}

	student := stored.Student
	rec := s.records(form, &models.Account{ID: stored.AccountID}, &student)
	rec.Account.PasswordHash = string(hash)
	if err := s.students.UpdateWithAccount(ctx, rec); err != nil {
		logger.WithContext(ctx, s.logger).Error("student update failed", zap.String("student_id", id), zap.Error(err))
		return nil, persistenceError(err)
	}

	s.recordAudit(ctx, actor, models.AuditActionStudentUpdate, id, models.StudentFormFromProfile(stored), form)
	return profileFromRecords(rec, class.Name), nil
}

// checks lists the uniqueness steps in reporting order: email, username, phone, national ID.
// With a stored profile only changed values are checked and the record itself is excluded.
func (s *StudentService) checks(form models.StudentForm, stored *models.StudentProfile) []uniqueCheck {
	var accountID, studentID, email, username, phone, nationalID string
	editing := stored != nil
	if editing {
		accountID, studentID = stored.AccountID, stored.ID
		username, nationalID = stored.Username, stored.NationalID
		if stored.Email != nil {
			email = *stored.Email
		}
		if stored.PhoneNumber != nil {
			phone = *stored.PhoneNumber
		}
	}
	return []uniqueCheck{
		{field: "email", value: form.Email, exclude: accountID, changed: !editing || changedFrom(form.Email, email, true), exists: s.accounts.ExistsByEmail, message: msgEmailTaken},
		{field: "username", value: form.Username, exclude: accountID, changed: !editing || changedFrom(form.Username, username, true), exists: s.accounts.ExistsByUsername, message: msgUsernameTaken},
		{field: "phone_number", value: form.PhoneNumber, exclude: accountID, changed: !editing || changedFrom(form.PhoneNumber, phone, false), exists: s.accounts.ExistsByPhone, message: msgPhoneTaken},
		{field: "national_id", value: form.NationalID, exclude: studentID, changed: !editing || changedFrom(form.NationalID, nationalID, false), exists: s.students.ExistsByNationalID, message: msgNationalIDTaken},
	}
}

func (s *StudentService) checkReferences(ctx context.Context, form models.StudentForm) (*models.Class, error) {
	class, err := s.classes.FindByID(ctx, form.ClassID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Field("class_id", "class does not exist")
		}
		return nil, internalError(err, "failed to validate class")
	}
	if form.ParentID != "" {
		found, err := s.parents.Exists(ctx, form.ParentID)
		if err != nil {
			return nil, internalError(err, "failed to validate parent")
		}
		if !found {
			return nil, appErrors.Field("parent_id", "parent does not exist")
		}
	}
	return class, nil
}

func (s *StudentService) records(form models.StudentForm, account *models.Account, student *models.Student) *models.StudentAccount {
	dob, _ := time.Parse("2006-01-02", form.DateOfBirth)

	account.Username = form.Username
	account.Email = optional(form.Email)
	account.PhoneNumber = optional(form.PhoneNumber)

	student.FirstName = form.FirstName
	student.MidName = form.MidName
	student.LastName = form.LastName
	student.Gender = models.Gender(form.Gender)
	student.DateOfBirth = dob
	student.NationalID = form.NationalID
	student.ClassID = form.ClassID
	student.ParentID = optional(form.ParentID)

	rec := &models.StudentAccount{Account: account, Student: student}
	if !form.Address.Empty() || student.AddressID != nil {
		rec.Address = &models.Address{
			Line1:    form.Address.Line1,
			Line2:    form.Address.Line2,
			District: form.Address.District,
			Location: form.Address.Location,
		}
	}
	return rec
}

func profileFromRecords(rec *models.StudentAccount, className string) *models.StudentProfile {
	return &models.StudentProfile{
		AccountID:   rec.Account.ID,
		Username:    rec.Account.Username,
		Email:       rec.Account.Email,
		PhoneNumber: rec.Account.PhoneNumber,
		Student:     *rec.Student,
		Address:     rec.Address,
		ClassName:   className,
	}
}

func (s *StudentService) recordAudit(ctx context.Context, actor models.Actor, action, studentID string, before interface{}, form models.StudentForm) {
	if s.audit == nil {
		return
	}
	log := &models.AuditLog{
		AccountID:  optional(actor.AccountID),
		Action:     action,
		Resource:   "student",
		ResourceID: &studentID,
		IPAddress:  actor.IP,
		UserAgent:  actor.UserAgent,
	}
	if before != nil {
		log.OldValues, _ = json.Marshal(before)
	}
	log.NewValues, _ = json.Marshal(form.Redisplay())
	if err := s.audit.CreateAuditLog(ctx, log); err != nil {
		logger.WithContext(ctx, s.logger).Warn("failed to record student audit log", zap.Error(err))
	}
}

func upsertOutcome(err error) string {
	switch {
	case err == nil:
		return "committed"
	case errors.Is(err, appErrors.ErrPersistence):
		return "failed"
	case appErrors.HasFields(err):
		return "rejected"
	default:
		return "error"
	}
}
