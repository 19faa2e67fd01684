//go:generate mockgen -source=password_reset.go -destination=mock_password_reset.go -package=handlers

package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sbilibin2017/gw-auth-service/internal/logger"
	"github.com/sbilibin2017/gw-auth-service/internal/middlewares"
	"github.com/sbilibin2017/gw-auth-service/internal/services"
)

// ResetRequester starts a password reset.
type ResetRequester interface {
	RequestReset(ctx context.Context, email string) error
}

// ResetCodeVerifier checks a reset code without consuming it.
type ResetCodeVerifier interface {
	VerifyResetCode(ctx context.Context, email, code string) error
}

// PasswordResetter completes a password reset.
type PasswordResetter interface {
	ResetPassword(ctx context.Context, email, code, newPassword string) error
}

// ForgotPasswordRequest represents the JSON body for starting a reset
// swagger:model ForgotPasswordRequest
type ForgotPasswordRequest struct {
	// Email
	// required: true
	// default: john@example.com
	Email string `json:"email"`
}

// VerifyCodeRequest represents the JSON body for checking a reset code
// swagger:model VerifyCodeRequest
type VerifyCodeRequest struct {
	// Email
	// required: true
	// default: john@example.com
	Email string `json:"email"`

	// Reset code from the email
	// required: true
	// default: 4821
	ResetCode string `json:"resetCode"`
}

// VerifyCodeResponse represents a successful code check
// swagger:model VerifyCodeResponse
type VerifyCodeResponse struct {
	// default: true
	Success bool `json:"success"`

	// default: Code verified successfully
	Message string `json:"message"`
}

// ResetPasswordRequest represents the JSON body for setting a new password
// swagger:model ResetPasswordRequest
type ResetPasswordRequest struct {
	// Email
	// required: true
	// default: john@example.com
	Email string `json:"email"`

	// Reset code from the email
	// required: true
	// default: 4821
	ResetCode string `json:"resetCode"`

	// New password
	// required: true
	// default: newsecret123
	NewPassword string `json:"newPassword"`
}

// NewForgotPasswordHandler returns an HTTP handler that emails a reset code.
// @Summary Request password reset
// @Description Generates a 4-digit reset code valid for 10 minutes and emails it to the user.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body handlers.ForgotPasswordRequest true "Account email"
// @Success 200 {object} handlers.MessageResponse "Reset code sent to your email"
// @Failure 400 {object} handlers.MessageResponse "Email is required / User not found"
// @Failure 500 {object} handlers.MessageResponse "Error sending reset code email"
// @Router /forgot-password [post]
func NewForgotPasswordHandler(svc ResetRequester) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ForgotPasswordRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeMessage(w, http.StatusBadRequest, "Email is required")
			return
		}

		if err := svc.RequestReset(r.Context(), req.Email); err != nil {
			switch {
			case errors.Is(err, services.ErrValidation):
				writeMessage(w, http.StatusBadRequest, "Email is required")
			case errors.Is(err, services.ErrUserNotFound):
				writeMessage(w, http.StatusBadRequest, "User not found")
			default:
				logger.Log.Errorw("forgot password failed", "request_id", middlewares.GetRequestID(r.Context()), "err", err)
				writeMessage(w, http.StatusInternalServerError, "Error sending reset code email")
			}
			return
		}

		writeMessage(w, http.StatusOK, "Reset code sent to your email")
	}
}

// NewVerifyCodeHandler returns an HTTP handler that checks a reset code.
// @Summary Verify reset code
// @Description Checks that the reset code matches and has not expired. The code stays usable.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body handlers.VerifyCodeRequest true "Email and reset code"
// @Success 200 {object} handlers.VerifyCodeResponse "Code verified successfully"
// @Failure 400 {object} handlers.MessageResponse "Invalid or expired code"
// @Failure 500 {object} handlers.MessageResponse "Error verifying reset code"
// @Router /verify-code [post]
func NewVerifyCodeHandler(svc ResetCodeVerifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req VerifyCodeRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid or expired code")
			return
		}

		if err := svc.VerifyResetCode(r.Context(), req.Email, req.ResetCode); err != nil {
			switch {
			case errors.Is(err, services.ErrInvalidOrExpiredCode):
				writeMessage(w, http.StatusBadRequest, "Invalid or expired code")
			default:
				logger.Log.Errorw("verify reset code failed", "request_id", middlewares.GetRequestID(r.Context()), "err", err)
				writeMessage(w, http.StatusInternalServerError, "Error verifying reset code")
			}
			return
		}

		writeJSON(w, http.StatusOK, VerifyCodeResponse{
			Success: true,
			Message: "Code verified successfully",
		})
	}
}

// NewResetPasswordHandler returns an HTTP handler that sets a new password.
// @Summary Reset password
// @Description Sets a new password if the reset code is valid. The code is consumed.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body handlers.ResetPasswordRequest true "Email, reset code and new password"
// @Success 200 {object} handlers.MessageResponse "Password reset successful"
// @Failure 400 {object} handlers.MessageResponse "Invalid or expired code / Password too long / Error resetting password"
// @Router /reset-password [post]
func NewResetPasswordHandler(svc PasswordResetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ResetPasswordRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid or expired code")
			return
		}

		if err := svc.ResetPassword(r.Context(), req.Email, req.ResetCode, req.NewPassword); err != nil {
			switch {
			case errors.Is(err, services.ErrInvalidOrExpiredCode):
				writeMessage(w, http.StatusBadRequest, "Invalid or expired code")
			case errors.Is(err, services.ErrPasswordTooLong):
				writeMessage(w, http.StatusBadRequest, "Password must be at most 72 bytes")
			default:
				logger.Log.Errorw("reset password failed", "request_id", middlewares.GetRequestID(r.Context()), "err", err)
				writeMessage(w, http.StatusBadRequest, "Error resetting password")
			}
			return
		}

		writeMessage(w, http.StatusOK, "Password reset successful")
	}
}
