package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/eschool-api/internal/models"
	"github.com/noah-isme/eschool-api/pkg/database"
)

const rosterBase = "FROM accounts a JOIN students s ON s.id = a.student_id JOIN classes c ON c.id = s.class_id"

const rosterColumns = `a.id AS account_id, s.id AS student_id, a.username, s.first_name, s.mid_name, s.last_name,
        s.gender, s.date_of_birth, s.national_id, c.name AS class_name`

// StudentRepository manages persistence for student records.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository constructs a StudentRepository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// rosterWhere builds the roster search predicate: contains on first and last
// name, prefix on username, national ID and class name.
func rosterWhere(search string) (string, []interface{}) {
	if search == "" {
		return "", nil
	}
	where := ` WHERE (s.last_name LIKE $1 ESCAPE '\' OR s.first_name LIKE $1 ESCAPE '\'` +
		` OR a.username LIKE $2 ESCAPE '\' OR s.national_id LIKE $2 ESCAPE '\' OR c.name LIKE $2 ESCAPE '\')`
	return where, []interface{}{containsPattern(search), prefixPattern(search)}
}

// CountRoster returns the number of roster entries matching search.
func (r *StudentRepository) CountRoster(ctx context.Context, search string) (int, error) {
	where, args := rosterWhere(search)
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) "+rosterBase+where, args...); err != nil {
		return 0, fmt.Errorf("count roster: %w", err)
	}
	return total, nil
}

// ListRoster returns one window of the roster ordered by last name, first name and ID.
func (r *StudentRepository) ListRoster(ctx context.Context, search string, limit, offset int) ([]models.RosterEntry, error) {
	where, args := rosterWhere(search)
	query := fmt.Sprintf("SELECT %s %s%s ORDER BY s.last_name, s.first_name, s.id LIMIT %d OFFSET %d",
		rosterColumns, rosterBase, where, limit, offset)
	entries := []models.RosterEntry{}
	if err := r.db.SelectContext(ctx, &entries, query, args...); err != nil {
		return nil, fmt.Errorf("list roster: %w", err)
	}
	return entries, nil
}

// FindByID fetches a bare student profile.
func (r *StudentRepository) FindByID(ctx context.Context, id string) (*models.Student, error) {
	const query = `SELECT id, first_name, mid_name, last_name, gender, date_of_birth, national_id, address_id, class_id, parent_id, created_at, updated_at
        FROM students WHERE id = $1`
	var student models.Student
	if err := r.db.GetContext(ctx, &student, query, id); err != nil {
		return nil, err
	}
	return &student, nil
}

type studentProfileRow struct {
	AccountID   string  `db:"account_id"`
	Username    string  `db:"username"`
	Email       *string `db:"email"`
	PhoneNumber *string `db:"phone_number"`
	models.Student
	ClassName        string     `db:"class_name"`
	Line1            *string    `db:"line1"`
	Line2            *string    `db:"line2"`
	District         *string    `db:"district"`
	Location         *string    `db:"location"`
	ParentFirstName  *string    `db:"parent_first_name"`
	ParentMidName    *string    `db:"parent_mid_name"`
	ParentLastName   *string    `db:"parent_last_name"`
	ParentGender     *string    `db:"parent_gender"`
	ParentBirthDate  *time.Time `db:"parent_date_of_birth"`
	ParentNationalID *string    `db:"parent_national_id"`
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func (row studentProfileRow) toModel() *models.StudentProfile {
	profile := &models.StudentProfile{
		AccountID:   row.AccountID,
		Username:    row.Username,
		Email:       row.Email,
		PhoneNumber: row.PhoneNumber,
		Student:     row.Student,
		ClassName:   row.ClassName,
	}
	if row.AddressID != nil {
		profile.Address = &models.Address{
			ID:       *row.AddressID,
			Line1:    deref(row.Line1),
			Line2:    deref(row.Line2),
			District: deref(row.District),
			Location: deref(row.Location),
		}
	}
	if row.ParentID != nil {
		parent := &models.Parent{ID: *row.ParentID}
		parent.FirstName = deref(row.ParentFirstName)
		parent.MidName = deref(row.ParentMidName)
		parent.LastName = deref(row.ParentLastName)
		parent.Gender = models.Gender(deref(row.ParentGender))
		parent.NationalID = deref(row.ParentNationalID)
		if row.ParentBirthDate != nil {
			parent.DateOfBirth = *row.ParentBirthDate
		}
		profile.Parent = parent
	}
	return profile
}

// FindProfile loads the student with its account, address, class and parent.
func (r *StudentRepository) FindProfile(ctx context.Context, studentID string) (*models.StudentProfile, error) {
	const query = `SELECT a.id AS account_id, a.username, a.email, a.phone_number,
        s.id, s.first_name, s.mid_name, s.last_name, s.gender, s.date_of_birth, s.national_id, s.address_id, s.class_id, s.parent_id, s.created_at, s.updated_at,
        c.name AS class_name, ad.line1, ad.line2, ad.district, ad.location,
        p.first_name AS parent_first_name, p.mid_name AS parent_mid_name, p.last_name AS parent_last_name,
        p.gender AS parent_gender, p.date_of_birth AS parent_date_of_birth, p.national_id AS parent_national_id
        FROM students s
        JOIN accounts a ON a.student_id = s.id
        JOIN classes c ON c.id = s.class_id
        LEFT JOIN addresses ad ON ad.id = s.address_id
        LEFT JOIN parents p ON p.id = s.parent_id
        WHERE s.id = $1`
	var row studentProfileRow
	if err := r.db.GetContext(ctx, &row, query, studentID); err != nil {
		return nil, err
	}
	return row.toModel(), nil
}

// ExistsByNationalID checks if a student with the national ID exists optionally excluding an ID.
func (r *StudentRepository) ExistsByNationalID(ctx context.Context, nationalID, excludeID string) (bool, error) {
	return existsExcluding(ctx, r.db, "national id", "SELECT 1 FROM students WHERE national_id = $1", nationalID, excludeID)
}

// List returns every student ordered by last and first name.
func (r *StudentRepository) List(ctx context.Context) ([]models.PersonSummary, error) {
	query := fmt.Sprintf("SELECT %s FROM students ORDER BY last_name, first_name, id", personColumns)
	students := []models.PersonSummary{}
	if err := r.db.SelectContext(ctx, &students, query); err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	return students, nil
}

// Search returns students whose national ID or birth date starts with term.
func (r *StudentRepository) Search(ctx context.Context, term string, limit int) ([]models.PersonSummary, error) {
	return searchPeople(ctx, r.db, "students", term, limit)
}

// CreateWithAccount inserts address, student, account and role assignment in one transaction.
func (r *StudentRepository) CreateWithAccount(ctx context.Context, rec *models.StudentAccount) error {
	now := time.Now().UTC()
	student, account := rec.Student, rec.Account
	if student.ID == "" {
		student.ID = uuid.NewString()
	}
	if account.ID == "" {
		account.ID = uuid.NewString()
	}
	student.CreatedAt, student.UpdatedAt = now, now
	account.CreatedAt, account.UpdatedAt = now, now
	account.StudentID = &student.ID

	return database.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if rec.Address != nil {
			if err := insertAddress(ctx, tx, rec.Address); err != nil {
				return err
			}
			student.AddressID = &rec.Address.ID
		}
		const studentQuery = `INSERT INTO students (id, first_name, mid_name, last_name, gender, date_of_birth, national_id, address_id, class_id, parent_id, created_at, updated_at)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
		if _, err := tx.ExecContext(ctx, studentQuery, student.ID, student.FirstName, student.MidName, student.LastName, student.Gender,
			student.DateOfBirth, student.NationalID, student.AddressID, student.ClassID, student.ParentID, student.CreatedAt, student.UpdatedAt); err != nil {
			return fmt.Errorf("create student: %w", err)
		}
		const accountQuery = `INSERT INTO accounts (id, username, email, phone_number, password_hash, student_id, created_at, updated_at)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
		if _, err := tx.ExecContext(ctx, accountQuery, account.ID, account.Username, account.Email, account.PhoneNumber,
			account.PasswordHash, account.StudentID, account.CreatedAt, account.UpdatedAt); err != nil {
			return fmt.Errorf("create account: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO account_roles (account_id, role) VALUES ($1, $2)`, account.ID, models.RoleStudent); err != nil {
			return fmt.Errorf("assign role: %w", err)
		}
		return nil
	})
}

// UpdateWithAccount updates address, student and account in one transaction.
// The password hash is only written when non-empty.
func (r *StudentRepository) UpdateWithAccount(ctx context.Context, rec *models.StudentAccount) error {
	now := time.Now().UTC()
	student, account := rec.Student, rec.Account
	student.UpdatedAt, account.UpdatedAt = now, now

	return database.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if rec.Address != nil {
			if student.AddressID != nil {
				rec.Address.ID = *student.AddressID
				const query = `UPDATE addresses SET line1 = $1, line2 = $2, district = $3, location = $4 WHERE id = $5`
				if _, err := tx.ExecContext(ctx, query, rec.Address.Line1, rec.Address.Line2, rec.Address.District, rec.Address.Location, rec.Address.ID); err != nil {
					return fmt.Errorf("update address: %w", err)
				}
			} else {
				if err := insertAddress(ctx, tx, rec.Address); err != nil {
					return err
				}
				student.AddressID = &rec.Address.ID
			}
		}
		const studentQuery = `UPDATE students SET first_name = $1, mid_name = $2, last_name = $3, gender = $4, date_of_birth = $5,
            national_id = $6, address_id = $7, class_id = $8, parent_id = $9, updated_at = $10 WHERE id = $11`
		if _, err := tx.ExecContext(ctx, studentQuery, student.FirstName, student.MidName, student.LastName, student.Gender, student.DateOfBirth,
			student.NationalID, student.AddressID, student.ClassID, student.ParentID, student.UpdatedAt, student.ID); err != nil {
			return fmt.Errorf("update student: %w", err)
		}
		const accountQuery = `UPDATE accounts SET username = $1, email = $2, phone_number = $3, updated_at = $4 WHERE id = $5`
		if _, err := tx.ExecContext(ctx, accountQuery, account.Username, account.Email, account.PhoneNumber, account.UpdatedAt, account.ID); err != nil {
			return fmt.Errorf("update account: %w", err)
		}
		if account.PasswordHash != "" {
			if _, err := tx.ExecContext(ctx, `UPDATE accounts SET password_hash = $1 WHERE id = $2`, account.PasswordHash, account.ID); err != nil {
				return fmt.Errorf("update password: %w", err)
			}
		}
		return nil
	})
}

func insertAddress(ctx context.Context, tx *sqlx.Tx, address *models.Address) error {
	if address.ID == "" {
		address.ID = uuid.NewString()
	}
	const query = `INSERT INTO addresses (id, line1, line2, district, location) VALUES ($1, $2, $3, $4, $5)`
	if _, err := tx.ExecContext(ctx, query, address.ID, address.Line1, address.Line2, address.District, address.Location); err != nil {
		return fmt.Errorf("create address: %w", err)
	}
	return nil
}
