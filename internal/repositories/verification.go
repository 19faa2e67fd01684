package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-auth-service/internal/models"
)

// VerificationRepository keeps pending registration codes in PostgreSQL.
type VerificationRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewVerificationRepository(db *sqlx.DB, txGetter TxGetter) *VerificationRepository {
	return &VerificationRepository{db: db, txGetter: txGetter}
}

// Upsert replaces any pending code for the email.
func (r *VerificationRepository) Upsert(ctx context.Context, email, code string, expiresAt time.Time) error {
	query := `
		INSERT INTO pending_verifications (email, code, expires_at, created_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (email) DO UPDATE
		SET code = EXCLUDED.code,
		    expires_at = EXCLUDED.expires_at,
		    created_at = NOW()
	`
	res, err := executor(ctx, r.db, r.txGetter).ExecContext(ctx, query, email, code, expiresAt)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}
	logQuery(query, []any{email, expiresAt}, rowsAffected, err)
	return err
}

// FindValid returns the pending entry only if the code matches and it
// expires strictly after now. Otherwise it returns nil.
func (r *VerificationRepository) FindValid(ctx context.Context, email, code string, now time.Time) (*models.PendingVerification, error) {
	query := `
		SELECT email, code, expires_at, created_at
		FROM pending_verifications
		WHERE email = $1 AND code = $2 AND expires_at > $3
	`
	var entry models.PendingVerification
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &entry, query, email, code, now)
	if errors.Is(err, sql.ErrNoRows) {
		logQuery(query, []any{email, now}, "not found", nil)
		return nil, nil
	}
	logQuery(query, []any{email, now}, entry.ExpiresAt, err)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// DeleteByEmail removes the pending entry for the email.
func (r *VerificationRepository) DeleteByEmail(ctx context.Context, email string) error {
	query := `DELETE FROM pending_verifications WHERE email = $1`
	res, err := executor(ctx, r.db, r.txGetter).ExecContext(ctx, query, email)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}
	logQuery(query, []any{email}, rowsAffected, err)
	return err
}

// DeleteExpired removes every entry that is no longer valid at now.
func (r *VerificationRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	query := `DELETE FROM pending_verifications WHERE expires_at <= $1`
	res, err := r.db.ExecContext(ctx, query, now)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}
	logQuery(query, []any{now}, rowsAffected, err)
	return rowsAffected, err
}
