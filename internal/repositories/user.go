package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-auth-service/internal/models"
)

const userColumns = `user_id, username, email, password_hash, reset_code, reset_code_expires_at, created_at, updated_at`

// UserReadRepository reads user records.
type UserReadRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewUserReadRepository(db *sqlx.DB, txGetter TxGetter) *UserReadRepository {
	return &UserReadRepository{db: db, txGetter: txGetter}
}

// GetByEmail returns the user with the exact email, or nil if there is none.
func (r *UserReadRepository) GetByEmail(ctx context.Context, email string) (*models.UserDB, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return r.getOne(ctx, query, []any{email}, email)
}

// GetByID returns the user with the given id, or nil if there is none.
func (r *UserReadRepository) GetByID(ctx context.Context, userID uuid.UUID) (*models.UserDB, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1`
	return r.getOne(ctx, query, []any{userID}, userID)
}

// GetByEmailAndResetCode returns the user only if code is its current reset
// code and the code expires strictly after now.
func (r *UserReadRepository) GetByEmailAndResetCode(ctx context.Context, email, code string, now time.Time) (*models.UserDB, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE email = $1
		  AND reset_code = $2
		  AND reset_code_expires_at > $3
	`
	return r.getOne(ctx, query, []any{email, code, now}, email, now)
}

func (r *UserReadRepository) getOne(ctx context.Context, query string, args []any, logArgs ...any) (*models.UserDB, error) {
	var user models.UserDB
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &user, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		logQuery(query, logArgs, "not found", nil)
		return nil, nil
	}
	logQuery(query, logArgs, user.UserID, err)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UserWriteRepository writes user records.
type UserWriteRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewUserWriteRepository(db *sqlx.DB, txGetter TxGetter) *UserWriteRepository {
	return &UserWriteRepository{db: db, txGetter: txGetter}
}

// Create inserts a new user. A taken email yields ErrDuplicateEmail.
func (r *UserWriteRepository) Create(ctx context.Context, user *models.UserDB) error {
	query := `
		INSERT INTO users (user_id, username, email, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
	`
	_, err := r.exec(ctx, query,
		[]any{user.UserID, user.Username, user.Email, user.PasswordHash},
		user.UserID, user.Username, user.Email,
	)
	if isUniqueViolation(err) {
		return ErrDuplicateEmail
	}
	return err
}

// SetResetCode stores a reset code and its expiry together.
func (r *UserWriteRepository) SetResetCode(ctx context.Context, userID uuid.UUID, code string, expiresAt time.Time) error {
	query := `
		UPDATE users
		SET reset_code = $2, reset_code_expires_at = $3, updated_at = NOW()
		WHERE user_id = $1
	`
	_, err := r.exec(ctx, query, []any{userID, code, expiresAt}, userID, expiresAt)
	return err
}

// ConsumeResetCode clears the reset code and its expiry together, but only
// if code is still the user's unexpired reset code. It reports whether a
// row was cleared. The row lock makes a concurrent second consume see the
// cleared code and report false.
func (r *UserWriteRepository) ConsumeResetCode(ctx context.Context, userID uuid.UUID, code string, now time.Time) (bool, error) {
	query := `
		UPDATE users
		SET reset_code = NULL, reset_code_expires_at = NULL, updated_at = NOW()
		WHERE user_id = $1
		  AND reset_code = $2
		  AND reset_code_expires_at > $3
	`
	rowsAffected, err := r.exec(ctx, query, []any{userID, code, now}, userID, now)
	if err != nil {
		return false, err
	}
	return rowsAffected == 1, nil
}

// SetPasswordHash replaces the password hash.
func (r *UserWriteRepository) SetPasswordHash(ctx context.Context, userID uuid.UUID, passwordHash string) error {
	query := `
		UPDATE users
		SET password_hash = $2, updated_at = NOW()
		WHERE user_id = $1
	`
	_, err := r.exec(ctx, query, []any{userID, passwordHash}, userID)
	return err
}

func (r *UserWriteRepository) exec(ctx context.Context, query string, args []any, logArgs ...any) (int64, error) {
	res, err := executor(ctx, r.db, r.txGetter).ExecContext(ctx, query, args...)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}
	logQuery(query, logArgs, rowsAffected, err)
	return rowsAffected, err
}
