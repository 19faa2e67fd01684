package repositories

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-auth-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var userRowColumns = []string{
	"user_id", "username", "email", "password_hash",
	"reset_code", "reset_code_expires_at", "created_at", "updated_at",
}

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return sqlx.NewDb(db, "sqlmock"), mock
}

func TestUserReadRepository_GetByEmail(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)
	id := uuid.New()

	t.Run("Found", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewUserReadRepository(db, nil)

		rows := sqlmock.NewRows(userRowColumns).
			AddRow(id.String(), "alice", "a@x.com", "hash", nil, nil, now, now)
		mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE email = $1")).
			WithArgs("a@x.com").
			WillReturnRows(rows)

		user, err := repo.GetByEmail(ctx, "a@x.com")
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, id, user.UserID)
		assert.Equal(t, "alice", user.Username)
		assert.Equal(t, "hash", user.PasswordHash)
		assert.Nil(t, user.ResetCode)
		assert.Nil(t, user.ResetCodeExpiresAt)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("NotFound", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewUserReadRepository(db, nil)

		mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE email = $1")).
			WithArgs("nobody@x.com").
			WillReturnRows(sqlmock.NewRows(userRowColumns))

		user, err := repo.GetByEmail(ctx, "nobody@x.com")
		assert.NoError(t, err)
		assert.Nil(t, user)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("DBError", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewUserReadRepository(db, nil)

		mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE email = $1")).
			WillReturnError(errors.New("connection refused"))

		user, err := repo.GetByEmail(ctx, "a@x.com")
		assert.EqualError(t, err, "connection refused")
		assert.Nil(t, user)
	})
}

func TestUserReadRepository_GetByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserReadRepository(db, nil)
	now := time.Now().UTC()
	id := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE user_id = $1")).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(userRowColumns).
			AddRow(id.String(), "bob", "b@x.com", "hash", nil, nil, now, now))

	user, err := repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "b@x.com", user.Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserReadRepository_GetByEmailAndResetCode(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()
	id := uuid.New()
	expires := now.Add(10 * time.Minute)

	t.Run("Valid", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewUserReadRepository(db, nil)

		mock.ExpectQuery(regexp.QuoteMeta("AND reset_code_expires_at > $3")).
			WithArgs("a@x.com", "1234", now).
			WillReturnRows(sqlmock.NewRows(userRowColumns).
				AddRow(id.String(), "alice", "a@x.com", "hash", "1234", expires, now, now))

		user, err := repo.GetByEmailAndResetCode(ctx, "a@x.com", "1234", now)
		require.NoError(t, err)
		require.NotNil(t, user)
		require.NotNil(t, user.ResetCode)
		assert.Equal(t, "1234", *user.ResetCode)
		assert.True(t, user.HasValidResetCode("1234", now))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("InvalidOrExpired", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewUserReadRepository(db, nil)

		mock.ExpectQuery(regexp.QuoteMeta("AND reset_code_expires_at > $3")).
			WithArgs("a@x.com", "0000", now).
			WillReturnRows(sqlmock.NewRows(userRowColumns))

		user, err := repo.GetByEmailAndResetCode(ctx, "a@x.com", "0000", now)
		assert.NoError(t, err)
		assert.Nil(t, user)
	})
}

func TestUserWriteRepository_Create(t *testing.T) {
	ctx := context.Background()
	user := &models.UserDB{
		UserID:       uuid.New(),
		Username:     "alice",
		Email:        "a@x.com",
		PasswordHash: "hash",
	}

	t.Run("Success", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewUserWriteRepository(db, nil)

		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
			WithArgs(user.UserID, "alice", "a@x.com", "hash").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Create(ctx, user))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewUserWriteRepository(db, nil)

		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
			WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation})

		err := repo.Create(ctx, user)
		assert.ErrorIs(t, err, ErrDuplicateEmail)
	})

	t.Run("OtherError", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewUserWriteRepository(db, nil)

		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
			WillReturnError(errors.New("disk full"))

		err := repo.Create(ctx, user)
		assert.EqualError(t, err, "disk full")
	})
}

func TestUserWriteRepository_ResetCode(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()
	expires := time.Now().Add(10 * time.Minute)

	t.Run("SetResetCode", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewUserWriteRepository(db, nil)

		mock.ExpectExec(regexp.QuoteMeta("SET reset_code = $2, reset_code_expires_at = $3")).
			WithArgs(id, "4321", sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.SetResetCode(ctx, id, "4321", expires))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ConsumeResetCode", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewUserWriteRepository(db, nil)
		now := time.Now()

		mock.ExpectExec(regexp.QuoteMeta("SET reset_code = NULL, reset_code_expires_at = NULL")).
			WithArgs(id, "4321", now).
			WillReturnResult(sqlmock.NewResult(0, 1))

		consumed, err := repo.ConsumeResetCode(ctx, id, "4321", now)
		assert.NoError(t, err)
		assert.True(t, consumed)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ConsumeResetCode already used", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewUserWriteRepository(db, nil)
		now := time.Now()

		mock.ExpectExec(regexp.QuoteMeta("AND reset_code = $2")).
			WithArgs(id, "4321", now).
			WillReturnResult(sqlmock.NewResult(0, 0))

		consumed, err := repo.ConsumeResetCode(ctx, id, "4321", now)
		assert.NoError(t, err)
		assert.False(t, consumed)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ConsumeResetCode error", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewUserWriteRepository(db, nil)

		mock.ExpectExec(regexp.QuoteMeta("AND reset_code_expires_at > $3")).
			WillReturnError(errors.New("db error"))

		consumed, err := repo.ConsumeResetCode(ctx, id, "4321", time.Now())
		assert.EqualError(t, err, "db error")
		assert.False(t, consumed)
	})

	t.Run("SetPasswordHash", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewUserWriteRepository(db, nil)

		mock.ExpectExec(regexp.QuoteMeta("SET password_hash = $2, updated_at = NOW()")).
			WithArgs(id, "newhash").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.SetPasswordHash(ctx, id, "newhash"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserWriteRepository_UsesRequestTx(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectRollback()

	tx, err := db.Beginx()
	require.NoError(t, err)

	repo := NewUserWriteRepository(db, func(ctx context.Context) *sqlx.Tx { return tx })
	err = repo.Create(context.Background(), &models.UserDB{UserID: uuid.New(), Email: "a@x.com"})
	assert.NoError(t, err)

	require.NoError(t, tx.Rollback())
	assert.NoError(t, mock.ExpectationsWereMet())
}
