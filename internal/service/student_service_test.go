package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/eschool-api/internal/models"
	appErrors "github.com/noah-isme/eschool-api/pkg/errors"
	"github.com/noah-isme/eschool-api/pkg/validation"
)

type studentFixture struct {
	svc      *StudentService
	students *mockStudentRepo
	accounts *mockAccountRepo
}

func newStudentFixture() *studentFixture {
	accounts := newMockAccountRepo()
	students := &mockStudentRepo{
		profiles:    map[string]*models.StudentProfile{},
		nationalIDs: map[string]string{},
		calls:       &accounts.calls,
	}
	classes := &mockClassRepo{classes: []models.Class{{ID: "c1", Name: "10A"}, {ID: "c2", Name: "10B"}}}
	parents := &mockParentRepo{parents: []models.Parent{{ID: "p1", Person: models.Person{FirstName: "Mary", LastName: "Doe", NationalID: "800"}}}}
	svc := NewStudentService(students, accounts, classes, parents, accounts, validation.New(), NewMetricsService(), zap.NewNop())
	svc.hashCost = bcrypt.MinCost
	return &studentFixture{svc: svc, students: students, accounts: accounts}
}

// withStoredStudent registers student s1 owned by account a1.
func (f *studentFixture) withStoredStudent() {
	addressID := "ad1"
	f.students.profiles["s1"] = &models.StudentProfile{
		AccountID:   "a1",
		Username:    "jdoe",
		Email:       strPtr("jdoe@example.com"),
		PhoneNumber: strPtr("555"),
		Student: models.Student{
			ID:        "s1",
			Person:    models.Person{FirstName: "John", LastName: "Doe", Gender: models.GenderMale, NationalID: "900"},
			ClassID:   "c1",
			AddressID: &addressID,
		},
		Address:   &models.Address{ID: "ad1", Line1: "Main St"},
		ClassName: "10A",
	}
	f.accounts.usernames["jdoe"] = "a1"
	f.accounts.emails["jdoe@example.com"] = "a1"
	f.accounts.phones["555"] = "a1"
	f.students.nationalIDs["900"] = "s1"
}

func validStudentForm() models.StudentForm {
	return models.StudentForm{
		Username:        "jdoe",
		Email:           "jdoe@example.com",
		PhoneNumber:     "555",
		Password:        "secret1",
		ConfirmPassword: "secret1",
		FirstName:       "John",
		LastName:        "Doe",
		Gender:          "M",
		DateOfBirth:     "2010-05-01",
		NationalID:      "900",
		ClassID:         "c1",
		Address:         models.AddressForm{Line1: "Main St"},
	}
}

func fieldErrors(t *testing.T, err error) map[string]string {
	t.Helper()
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.Status)
	return appErr.Fields
}

var adminActor = models.Actor{AccountID: "admin-1", Role: models.RoleAdmin}

func TestStudentServiceCreateCommits(t *testing.T) {
	f := newStudentFixture()

	profile, err := f.svc.Create(context.Background(), adminActor, validStudentForm())
	require.NoError(t, err)
	assert.Equal(t, "new-student", profile.ID)
	assert.Equal(t, "10A", profile.ClassName)
	assert.Equal(t, []string{"email", "username", "phone", "national_id"}, f.accounts.calls)

	require.NotNil(t, f.students.created)
	rec := f.students.created
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(rec.Account.PasswordHash), []byte("secret1")))
	require.NotNil(t, rec.Address)
	assert.Equal(t, "Main St", rec.Address.Line1)
	assert.Equal(t, 2010, rec.Student.DateOfBirth.Year())
	assert.Nil(t, rec.Student.ParentID)
	require.Len(t, f.accounts.audits, 1)
	assert.Equal(t, models.AuditActionStudentCreate, f.accounts.audits[0].Action)
	assert.NotContains(t, string(f.accounts.audits[0].NewValues), "secret1")
}

func TestStudentServiceCreateReportsEmailBeforeUsername(t *testing.T) {
	f := newStudentFixture()
	f.accounts.usernames["jdoe"] = "other"
	f.accounts.emails["jdoe@example.com"] = "other"

	_, err := f.svc.Create(context.Background(), adminActor, validStudentForm())
	fields := fieldErrors(t, err)
	assert.Equal(t, map[string]string{"email": msgEmailTaken}, fields)
	assert.Equal(t, []string{"email"}, f.accounts.calls)
	assert.Nil(t, f.students.created)
}

func TestStudentServiceCreateUsernameTakenIgnoresCase(t *testing.T) {
	f := newStudentFixture()
	f.accounts.usernames["jdoe"] = "other"
	form := validStudentForm()
	form.Username = "JDoe"

	_, err := f.svc.Create(context.Background(), adminActor, form)
	assert.Equal(t, map[string]string{"username": msgUsernameTaken}, fieldErrors(t, err))
}

func TestStudentServiceCreateNationalIDTaken(t *testing.T) {
	f := newStudentFixture()
	f.students.nationalIDs["900"] = "s9"

	_, err := f.svc.Create(context.Background(), adminActor, validStudentForm())
	assert.Equal(t, map[string]string{"national_id": msgNationalIDTaken}, fieldErrors(t, err))
	assert.Equal(t, []string{"email", "username", "phone", "national_id"}, f.accounts.calls)
}

func TestStudentServiceCreateSkipsEmptyOptionalChecks(t *testing.T) {
	f := newStudentFixture()
	form := validStudentForm()
	form.Email = ""
	form.PhoneNumber = "  "

	_, err := f.svc.Create(context.Background(), adminActor, form)
	require.NoError(t, err)
	assert.Equal(t, []string{"username", "national_id"}, f.accounts.calls)
	assert.Nil(t, f.students.created.Account.Email)
	assert.Nil(t, f.students.created.Account.PhoneNumber)
}

func TestStudentServiceCreateStructuralValidation(t *testing.T) {
	f := newStudentFixture()
	form := validStudentForm()
	form.FirstName = ""
	form.Gender = "X"
	form.DateOfBirth = "01/05/2010"

	_, err := f.svc.Create(context.Background(), adminActor, form)
	fields := fieldErrors(t, err)
	assert.Equal(t, "this field is required", fields["first_name"])
	assert.Contains(t, fields, "gender")
	assert.Contains(t, fields, "date_of_birth")
	assert.Empty(t, f.accounts.calls)
}

func TestStudentServiceCreatePasswordRules(t *testing.T) {
	f := newStudentFixture()
	form := validStudentForm()
	form.Password, form.ConfirmPassword = "", ""

	_, err := f.svc.Create(context.Background(), adminActor, form)
	assert.Equal(t, map[string]string{"password": msgRequired}, fieldErrors(t, err))

	form.Password, form.ConfirmPassword = "secret1", "secret2"
	_, err = f.svc.Create(context.Background(), adminActor, form)
	assert.Equal(t, map[string]string{"confirm_password": msgMismatch}, fieldErrors(t, err))
	assert.Nil(t, f.students.created)
}

func TestStudentServiceCreateReferenceChecks(t *testing.T) {
	f := newStudentFixture()
	form := validStudentForm()
	form.ClassID = "missing"

	_, err := f.svc.Create(context.Background(), adminActor, form)
	assert.Contains(t, fieldErrors(t, err), "class_id")

	form.ClassID = "c1"
	form.ParentID = "p404"
	_, err = f.svc.Create(context.Background(), adminActor, form)
	assert.Contains(t, fieldErrors(t, err), "parent_id")

	form.ParentID = "p1"
	profile, err := f.svc.Create(context.Background(), adminActor, form)
	require.NoError(t, err)
	require.NotNil(t, profile.ParentID)
	assert.Equal(t, "p1", *profile.ParentID)
}

func TestStudentServiceCreatePersistenceFailure(t *testing.T) {
	f := newStudentFixture()
	f.students.persistErr = errors.New("connection reset")

	_, err := f.svc.Create(context.Background(), adminActor, validStudentForm())
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrPersistence))
	appErr := appErrors.FromError(err)
	assert.Equal(t, "PERSISTENCE_FAILED", appErr.Code)
	assert.Equal(t, http.StatusInternalServerError, appErr.Status)
	assert.Empty(t, f.accounts.audits)
}

func TestStudentServiceUpdateUnchangedSkipsUniqueness(t *testing.T) {
	f := newStudentFixture()
	f.withStoredStudent()
	form := validStudentForm()
	form.Password, form.ConfirmPassword = "", ""
	form.Username = "JDOE"
	form.Email = "JDoe@Example.com"

	profile, err := f.svc.Update(context.Background(), adminActor, "s1", form)
	require.NoError(t, err)
	assert.Empty(t, f.accounts.calls)
	require.NotNil(t, f.students.updated)
	assert.Empty(t, f.students.updated.Account.PasswordHash)
	assert.Equal(t, "a1", f.students.updated.Account.ID)
	assert.Equal(t, "ad1", *f.students.updated.Student.AddressID)
	assert.Equal(t, "JDOE", profile.Username)
}

func TestStudentServiceUpdateChangedUsernameTaken(t *testing.T) {
	f := newStudentFixture()
	f.withStoredStudent()
	f.accounts.usernames["taken"] = "a2"
	form := validStudentForm()
	form.Username = "taken"

	_, err := f.svc.Update(context.Background(), adminActor, "s1", form)
	assert.Equal(t, map[string]string{"username": msgUsernameTaken}, fieldErrors(t, err))
	assert.Equal(t, []string{"username"}, f.accounts.calls)
}

func TestStudentServiceUpdateChangedNationalIDExcludesSelf(t *testing.T) {
	f := newStudentFixture()
	f.withStoredStudent()
	f.students.nationalIDs["901"] = "s1"
	form := validStudentForm()
	form.NationalID = "901"
	form.Password, form.ConfirmPassword = "", ""

	_, err := f.svc.Update(context.Background(), adminActor, "s1", form)
	require.NoError(t, err)
	assert.Equal(t, []string{"national_id"}, f.accounts.calls)
}

func TestStudentServiceUpdatePassword(t *testing.T) {
	f := newStudentFixture()
	f.withStoredStudent()
	form := validStudentForm()
	form.Password, form.ConfirmPassword = "new-pass", "new-pas"

	_, err := f.svc.Update(context.Background(), adminActor, "s1", form)
	assert.Equal(t, map[string]string{"confirm_password": msgMismatch}, fieldErrors(t, err))

	form.ConfirmPassword = "new-pass"
	_, err = f.svc.Update(context.Background(), adminActor, "s1", form)
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(f.students.updated.Account.PasswordHash), []byte("new-pass")))
}

func TestStudentServiceUpdateNotFound(t *testing.T) {
	f := newStudentFixture()

	_, err := f.svc.Update(context.Background(), adminActor, "missing", validStudentForm())
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrNotFound))
}

func TestStudentServiceFormContext(t *testing.T) {
	f := newStudentFixture()

	formCtx, err := f.svc.FormContext(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []models.Option{{ID: "c1", Label: "10A"}, {ID: "c2", Label: "10B"}}, formCtx.Classes)
	assert.Equal(t, []models.Option{{ID: "p1", Label: "800-Mary Doe"}}, formCtx.Parents)
}

func TestStudentServiceEditForm(t *testing.T) {
	f := newStudentFixture()
	f.withStoredStudent()

	view, err := f.svc.EditForm(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, "jdoe", view.Values.Username)
	assert.Equal(t, "Main St", view.Values.Address.Line1)
	assert.Empty(t, view.Values.Password)
	assert.Len(t, view.Options.Classes, 2)
}
