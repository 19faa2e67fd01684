//go:generate mockgen -source=auth.go -destination=mock_auth.go -package=services

package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-auth-service/internal/logger"
	"github.com/sbilibin2017/gw-auth-service/internal/models"
	"github.com/sbilibin2017/gw-auth-service/internal/repositories"
	"golang.org/x/crypto/bcrypt"
)

const (
	// CodeTTL is how long reset and verification codes stay valid.
	CodeTTL = 600 * time.Second
	// BcryptCost is the work factor for password hashes.
	BcryptCost = 10
)

// Code kinds used as metric labels.
const (
	KindVerification = "verification"
	KindReset        = "reset"
)

// Login outcomes used as metric labels.
const (
	LoginSuccess            = "success"
	LoginUserNotFound       = "user_not_found"
	LoginInvalidCredentials = "invalid_credentials"
)

const (
	verificationSubject = "Email Verification"
	verificationBody    = "Your verification code is: %s"
	resetSubject        = "Password Reset Request"
	resetBody           = "You have requested a password reset. Here is your reset code: %s"
)

// Error variables
var (
	ErrValidation           = errors.New("required field is missing")
	ErrUserNotFound         = errors.New("user not found")
	ErrUserAlreadyExists    = errors.New("user already exists")
	ErrInvalidOrExpiredCode = errors.New("invalid or expired code")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrDelivery             = errors.New("failed to deliver code")
	ErrPasswordTooLong      = errors.New("password exceeds 72 bytes")
)

// UserReader defines read-only operations for users.
type UserReader interface {
	GetByEmail(ctx context.Context, email string) (*models.UserDB, error)
	GetByID(ctx context.Context, userID uuid.UUID) (*models.UserDB, error)
	GetByEmailAndResetCode(ctx context.Context, email, code string, now time.Time) (*models.UserDB, error)
}

// UserWriter defines write operations for users.
type UserWriter interface {
	Create(ctx context.Context, user *models.UserDB) error
	SetResetCode(ctx context.Context, userID uuid.UUID, code string, expiresAt time.Time) error
	ConsumeResetCode(ctx context.Context, userID uuid.UUID, code string, now time.Time) (bool, error)
	SetPasswordHash(ctx context.Context, userID uuid.UUID, passwordHash string) error
}

// VerificationRegistry keeps pending registration codes, one per email.
type VerificationRegistry interface {
	Upsert(ctx context.Context, email, code string, expiresAt time.Time) error
	FindValid(ctx context.Context, email, code string, now time.Time) (*models.PendingVerification, error)
	DeleteByEmail(ctx context.Context, email string) error
}

// CodeGenerator produces one-time codes.
type CodeGenerator interface {
	GenerateResetCode() string
	GenerateVerificationCode() string
}

// Notifier delivers a message to an email address.
type Notifier interface {
	Send(ctx context.Context, to, subject, body string) error
}

// JWTGenerator defines an interface for generating JWT tokens.
type JWTGenerator interface {
	Generate(ctx context.Context, userID uuid.UUID) (string, error)
	Expiration() time.Duration
}

// EventRecorder receives auth events for metrics.
type EventRecorder interface {
	RecordCodeIssued(kind string)
	RecordCodeRejected(kind string)
	RecordDeliveryFailure(kind string)
	RecordLogin(outcome string)
}

// AuthService handles registration, login and password reset.
type AuthService struct {
	reader   UserReader
	writer   UserWriter
	registry VerificationRegistry
	codes    CodeGenerator
	notifier Notifier
	jwt      JWTGenerator
	events   EventRecorder
	now      func() time.Time
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(
	reader UserReader,
	writer UserWriter,
	registry VerificationRegistry,
	codes CodeGenerator,
	notifier Notifier,
	jwt JWTGenerator,
	events EventRecorder,
) *AuthService {
	return &AuthService{
		reader:   reader,
		writer:   writer,
		registry: registry,
		codes:    codes,
		notifier: notifier,
		jwt:      jwt,
		events:   events,
		now:      time.Now,
	}
}

// RequestVerificationCode stores a fresh registration code for email,
// replacing any earlier one, and emails it.
func (svc *AuthService) RequestVerificationCode(ctx context.Context, email string) error {
	if email == "" {
		return ErrValidation
	}

	code := svc.codes.GenerateVerificationCode()
	if err := svc.registry.Upsert(ctx, email, code, svc.now().Add(CodeTTL)); err != nil {
		logger.Log.Errorw("failed to store verification code", "email", email, "err", err)
		return err
	}
	svc.events.RecordCodeIssued(KindVerification)

	// the stored code stays valid even if delivery fails
	if err := svc.notifier.Send(ctx, email, verificationSubject, fmt.Sprintf(verificationBody, code)); err != nil {
		logger.Log.Errorw("failed to send verification code", "email", email, "err", err)
		svc.events.RecordDeliveryFailure(KindVerification)
		return fmt.Errorf("%w: %w", ErrDelivery, err)
	}

	return nil
}

// Register creates a user if code is the pending, unexpired verification
// code for email, then consumes the code.
func (svc *AuthService) Register(ctx context.Context, username, email, password, code string) error {
	if username == "" || email == "" || password == "" || code == "" {
		return ErrValidation
	}

	entry, err := svc.registry.FindValid(ctx, email, code, svc.now())
	if err != nil {
		logger.Log.Errorw("failed to look up verification code", "email", email, "err", err)
		return err
	}
	if entry == nil {
		logger.Log.Warnw("invalid or expired verification code", "email", email)
		svc.events.RecordCodeRejected(KindVerification)
		return ErrInvalidOrExpiredCode
	}

	hashedPassword, err := hashPassword(password)
	if err != nil {
		return err
	}

	user := &models.UserDB{
		UserID:       uuid.New(),
		Username:     username,
		Email:        email,
		PasswordHash: hashedPassword,
	}
	if err := svc.writer.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicateEmail) {
			logger.Log.Warnw("user already exists", "email", email)
			return ErrUserAlreadyExists
		}
		logger.Log.Errorw("failed to save user", "email", email, "err", err)
		return err
	}

	// The user exists now; a leftover code cannot create a second account
	// because the email is unique.
	if err := svc.registry.DeleteByEmail(ctx, email); err != nil {
		logger.Log.Warnw("failed to delete consumed verification code", "email", email, "err", err)
	}

	logger.Log.Infow("user registered", "user_id", user.UserID, "email", email)
	return nil
}

// Login checks the credentials and issues a session token.
func (svc *AuthService) Login(ctx context.Context, email, password string) (*models.LoginResult, error) {
	if email == "" || password == "" {
		return nil, ErrValidation
	}

	user, err := svc.reader.GetByEmail(ctx, email)
	if err != nil {
		logger.Log.Errorw("failed to get user", "email", email, "err", err)
		return nil, err
	}
	if user == nil {
		logger.Log.Warnw("user does not exist", "email", email)
		svc.events.RecordLogin(LoginUserNotFound)
		return nil, ErrUserNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		logger.Log.Warnw("invalid credentials", "email", email)
		svc.events.RecordLogin(LoginInvalidCredentials)
		return nil, ErrInvalidCredentials
	}

	token, err := svc.jwt.Generate(ctx, user.UserID)
	if err != nil {
		logger.Log.Errorw("failed to generate JWT", "err", err)
		return nil, err
	}
	svc.events.RecordLogin(LoginSuccess)

	return &models.LoginResult{
		Token:     token,
		ExpiresIn: int64(svc.jwt.Expiration() / time.Second),
		User:      user.Summary(),
	}, nil
}

// RequestReset stores a fresh reset code on the user and emails it.
func (svc *AuthService) RequestReset(ctx context.Context, email string) error {
	if email == "" {
		return ErrValidation
	}

	user, err := svc.reader.GetByEmail(ctx, email)
	if err != nil {
		logger.Log.Errorw("failed to get user", "email", email, "err", err)
		return err
	}
	if user == nil {
		logger.Log.Warnw("user does not exist", "email", email)
		return ErrUserNotFound
	}

	code := svc.codes.GenerateResetCode()
	if err := svc.writer.SetResetCode(ctx, user.UserID, code, svc.now().Add(CodeTTL)); err != nil {
		logger.Log.Errorw("failed to store reset code", "user_id", user.UserID, "err", err)
		return err
	}
	svc.events.RecordCodeIssued(KindReset)

	if err := svc.notifier.Send(ctx, user.Email, resetSubject, fmt.Sprintf(resetBody, code)); err != nil {
		logger.Log.Errorw("failed to send reset code", "email", user.Email, "err", err)
		svc.events.RecordDeliveryFailure(KindReset)
		return fmt.Errorf("%w: %w", ErrDelivery, err)
	}

	return nil
}

// VerifyResetCode reports whether code is the user's current reset code.
// It does not change any state.
func (svc *AuthService) VerifyResetCode(ctx context.Context, email, code string) error {
	_, err := svc.userByResetCode(ctx, email, code)
	return err
}

// ResetPassword sets a new password if code is the user's current reset
// code and ends the reset flow.
func (svc *AuthService) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	user, err := svc.userByResetCode(ctx, email, code)
	if err != nil {
		return err
	}
	if newPassword == "" {
		return ErrValidation
	}

	hashedPassword, err := hashPassword(newPassword)
	if err != nil {
		return err
	}

	// Clearing the code only succeeds while it is still set and unexpired,
	// so of two concurrent resets with the same code only one gets here.
	consumed, err := svc.writer.ConsumeResetCode(ctx, user.UserID, code, svc.now())
	if err != nil {
		logger.Log.Errorw("failed to clear reset code", "user_id", user.UserID, "err", err)
		return err
	}
	if !consumed {
		logger.Log.Warnw("reset code already used or expired", "user_id", user.UserID)
		svc.events.RecordCodeRejected(KindReset)
		return ErrInvalidOrExpiredCode
	}

	if err := svc.writer.SetPasswordHash(ctx, user.UserID, hashedPassword); err != nil {
		logger.Log.Errorw("failed to update password", "user_id", user.UserID, "err", err)
		return err
	}

	logger.Log.Infow("password reset", "user_id", user.UserID)
	return nil
}

// Me returns the public summary of the user with userID.
func (svc *AuthService) Me(ctx context.Context, userID uuid.UUID) (*models.UserSummary, error) {
	user, err := svc.reader.GetByID(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to get user", "user_id", userID, "err", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	summary := user.Summary()
	return &summary, nil
}

func (svc *AuthService) userByResetCode(ctx context.Context, email, code string) (*models.UserDB, error) {
	if email == "" || code == "" {
		svc.events.RecordCodeRejected(KindReset)
		return nil, ErrInvalidOrExpiredCode
	}

	now := svc.now()
	user, err := svc.reader.GetByEmailAndResetCode(ctx, email, code, now)
	if err != nil {
		logger.Log.Errorw("failed to look up reset code", "email", email, "err", err)
		return nil, err
	}
	if user == nil || !user.HasValidResetCode(code, now) {
		logger.Log.Warnw("invalid or expired reset code", "email", email)
		svc.events.RecordCodeRejected(KindReset)
		return nil, ErrInvalidOrExpiredCode
	}

	return user, nil
}

// hashPassword hashes with bcrypt. Passwords over 72 bytes are rejected
// instead of being silently truncated.
func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", ErrPasswordTooLong
	}
	if err != nil {
		logger.Log.Errorw("failed to hash password", "err", err)
		return "", err
	}
	return string(hashed), nil
}
