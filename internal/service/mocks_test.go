package service

import (
	"context"
	"database/sql"
	"strings"

	"github.com/noah-isme/eschool-api/internal/models"
)

type mockAccountRepo struct {
	accounts    map[string]*models.Account
	usernames   map[string]string
	emails      map[string]string
	phones      map[string]string
	calls       []string
	audits      []*models.AuditLog
	updated     *models.Account
	newHash     string
	updateErr   error
	passwordErr error
}

func newMockAccountRepo() *mockAccountRepo {
	return &mockAccountRepo{
		accounts:  map[string]*models.Account{},
		usernames: map[string]string{},
		emails:    map[string]string{},
		phones:    map[string]string{},
	}
}

func taken(index map[string]string, key, excludeID string) bool {
	id, ok := index[key]
	return ok && id != excludeID
}

func (m *mockAccountRepo) ExistsByUsername(ctx context.Context, username, excludeID string) (bool, error) {
	m.calls = append(m.calls, "username")
	return taken(m.usernames, strings.ToLower(username), excludeID), nil
}

func (m *mockAccountRepo) ExistsByEmail(ctx context.Context, email, excludeID string) (bool, error) {
	m.calls = append(m.calls, "email")
	return taken(m.emails, strings.ToLower(email), excludeID), nil
}

func (m *mockAccountRepo) ExistsByPhone(ctx context.Context, phone, excludeID string) (bool, error) {
	m.calls = append(m.calls, "phone")
	return taken(m.phones, phone, excludeID), nil
}

func (m *mockAccountRepo) FindByID(ctx context.Context, id string) (*models.Account, error) {
	if a, ok := m.accounts[id]; ok {
		clone := *a
		return &clone, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockAccountRepo) FindByUsername(ctx context.Context, username string) (*models.Account, error) {
	for _, a := range m.accounts {
		if strings.EqualFold(a.Username, username) {
			clone := *a
			return &clone, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockAccountRepo) UpdateProfile(ctx context.Context, account *models.Account) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	m.updated = account
	return nil
}

func (m *mockAccountRepo) UpdatePassword(ctx context.Context, id, hash string) error {
	if m.passwordErr != nil {
		return m.passwordErr
	}
	m.newHash = hash
	return nil
}

func (m *mockAccountRepo) ListOthers(ctx context.Context, excludeID string) ([]models.Account, error) {
	out := []models.Account{}
	for _, a := range m.accounts {
		if a.ID != excludeID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (m *mockAccountRepo) CreateAuditLog(ctx context.Context, log *models.AuditLog) error {
	m.audits = append(m.audits, log)
	return nil
}

type mockStudentRepo struct {
	profiles    map[string]*models.StudentProfile
	nationalIDs map[string]string
	people      []models.PersonSummary
	created     *models.StudentAccount
	updated     *models.StudentAccount
	persistErr  error
	calls       *[]string
}

func (m *mockStudentRepo) FindProfile(ctx context.Context, studentID string) (*models.StudentProfile, error) {
	if p, ok := m.profiles[studentID]; ok {
		clone := *p
		return &clone, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockStudentRepo) FindByID(ctx context.Context, id string) (*models.Student, error) {
	if p, ok := m.profiles[id]; ok {
		student := p.Student
		return &student, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockStudentRepo) List(ctx context.Context) ([]models.PersonSummary, error) {
	return m.people, nil
}

func (m *mockStudentRepo) ExistsByNationalID(ctx context.Context, nationalID, excludeID string) (bool, error) {
	if m.calls != nil {
		*m.calls = append(*m.calls, "national_id")
	}
	return taken(m.nationalIDs, nationalID, excludeID), nil
}

func (m *mockStudentRepo) CreateWithAccount(ctx context.Context, rec *models.StudentAccount) error {
	if m.persistErr != nil {
		return m.persistErr
	}
	rec.Student.ID = "new-student"
	rec.Account.ID = "new-account"
	m.created = rec
	return nil
}

func (m *mockStudentRepo) UpdateWithAccount(ctx context.Context, rec *models.StudentAccount) error {
	if m.persistErr != nil {
		return m.persistErr
	}
	m.updated = rec
	return nil
}

type mockClassRepo struct {
	classes []models.Class
}

func (m *mockClassRepo) List(ctx context.Context) ([]models.Class, error) {
	return m.classes, nil
}

func (m *mockClassRepo) FindByID(ctx context.Context, id string) (*models.Class, error) {
	for _, c := range m.classes {
		if c.ID == id {
			clone := c
			return &clone, nil
		}
	}
	return nil, sql.ErrNoRows
}

type mockParentRepo struct {
	parents []models.Parent
}

func (m *mockParentRepo) List(ctx context.Context) ([]models.Parent, error) {
	return m.parents, nil
}

func (m *mockParentRepo) Exists(ctx context.Context, id string) (bool, error) {
	for _, p := range m.parents {
		if p.ID == id {
			return true, nil
		}
	}
	return false, nil
}

type mockOfferingRepo struct {
	offerings []models.OfferingView
}

func (m *mockOfferingRepo) List(ctx context.Context) ([]models.OfferingView, error) {
	return m.offerings, nil
}

func (m *mockOfferingRepo) ListByClass(ctx context.Context, classID string) ([]models.OfferingView, error) {
	out := []models.OfferingView{}
	for _, o := range m.offerings {
		if o.ClassID == classID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (m *mockOfferingRepo) FindByID(ctx context.Context, id string) (*models.OfferingView, error) {
	for _, o := range m.offerings {
		if o.ID == id {
			clone := o
			return &clone, nil
		}
	}
	return nil, sql.ErrNoRows
}

type mockNoticeRepo struct {
	notices []models.Notice
}

func (m *mockNoticeRepo) Recent(ctx context.Context, limit int) ([]models.Notice, error) {
	if len(m.notices) > limit {
		return m.notices[:limit], nil
	}
	return m.notices, nil
}

func (m *mockNoticeRepo) FindByID(ctx context.Context, id string) (*models.Notice, error) {
	for _, n := range m.notices {
		if n.ID == id {
			clone := n
			return &clone, nil
		}
	}
	return nil, sql.ErrNoRows
}

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }
