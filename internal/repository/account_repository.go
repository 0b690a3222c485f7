package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/eschool-api/internal/models"
)

const accountColumns = "id, username, email, phone_number, password_hash, student_id, teacher_id, parent_id, created_at, updated_at"

// AccountRepository handles persistence for accounts.
type AccountRepository struct {
	db *sqlx.DB
}

// NewAccountRepository creates a new repository instance.
func NewAccountRepository(db *sqlx.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// FindByID retrieves an account by its identifier.
func (r *AccountRepository) FindByID(ctx context.Context, id string) (*models.Account, error) {
	var account models.Account
	query := fmt.Sprintf("SELECT %s FROM accounts WHERE id = $1", accountColumns)
	if err := r.db.GetContext(ctx, &account, query, id); err != nil {
		return nil, err
	}
	return &account, nil
}

// FindByUsername retrieves an account by username, ignoring case.
func (r *AccountRepository) FindByUsername(ctx context.Context, username string) (*models.Account, error) {
	var account models.Account
	query := fmt.Sprintf("SELECT %s FROM accounts WHERE LOWER(username) = LOWER($1) LIMIT 1", accountColumns)
	if err := r.db.GetContext(ctx, &account, query, username); err != nil {
		return nil, err
	}
	return &account, nil
}

// ExistsByUsername reports whether another account uses the username.
func (r *AccountRepository) ExistsByUsername(ctx context.Context, username, excludeID string) (bool, error) {
	return existsExcluding(ctx, r.db, "username", "SELECT 1 FROM accounts WHERE LOWER(username) = LOWER($1)", username, excludeID)
}

// ExistsByEmail reports whether another account uses the email.
func (r *AccountRepository) ExistsByEmail(ctx context.Context, email, excludeID string) (bool, error) {
	return existsExcluding(ctx, r.db, "email", "SELECT 1 FROM accounts WHERE LOWER(email) = LOWER($1)", email, excludeID)
}

// ExistsByPhone reports whether another account uses the phone number.
func (r *AccountRepository) ExistsByPhone(ctx context.Context, phone, excludeID string) (bool, error) {
	return existsExcluding(ctx, r.db, "phone", "SELECT 1 FROM accounts WHERE phone_number = $1", phone, excludeID)
}

// UpdateProfile persists username, email and phone of an account.
func (r *AccountRepository) UpdateProfile(ctx context.Context, account *models.Account) error {
	account.UpdatedAt = time.Now().UTC()
	const query = `UPDATE accounts SET username = $1, email = $2, phone_number = $3, updated_at = $4 WHERE id = $5`
	if _, err := r.db.ExecContext(ctx, query, account.Username, account.Email, account.PhoneNumber, account.UpdatedAt, account.ID); err != nil {
		return fmt.Errorf("update account: %w", err)
	}
	return nil
}

// UpdatePassword replaces the stored password hash.
func (r *AccountRepository) UpdatePassword(ctx context.Context, id, hash string) error {
	const query = `UPDATE accounts SET password_hash = $1, updated_at = $2 WHERE id = $3`
	if _, err := r.db.ExecContext(ctx, query, hash, time.Now().UTC(), id); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

// ListOthers returns every account except the given one ordered by username.
func (r *AccountRepository) ListOthers(ctx context.Context, excludeID string) ([]models.Account, error) {
	query := fmt.Sprintf("SELECT %s FROM accounts WHERE id <> $1 ORDER BY username", accountColumns)
	accounts := []models.Account{}
	if err := r.db.SelectContext(ctx, &accounts, query, excludeID); err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	return accounts, nil
}

// CreateAuditLog stores an audit log entry.
func (r *AccountRepository) CreateAuditLog(ctx context.Context, log *models.AuditLog) error {
	if log.ID == "" {
		log.ID = uuid.NewString()
	}
	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO audit_logs (id, account_id, action, resource, resource_id, old_values, new_values, ip_address, user_agent, created_at) VALUES (:id, :account_id, :action, :resource, :resource_id, :old_values, :new_values, :ip_address, :user_agent, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, log); err != nil {
		return fmt.Errorf("create audit log: %w", err)
	}
	return nil
}
