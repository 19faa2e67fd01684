//go:generate mockgen -source=verification.go -destination=mock_verification.go -package=handlers

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

// VerificationCodeSender defines the interface that the service must implement.
type VerificationCodeSender interface {
	RequestVerificationCode(ctx context.Context, email string) error
}

// SendVerificationCodeRequest represents the JSON body for requesting a registration code
// swagger:model SendVerificationCodeRequest
type SendVerificationCodeRequest struct {
	// Email
	// required: true
	// default: john@example.com
	Email string `json:"email"`
}

// NewSendVerificationCodeHandler returns an HTTP handler that emails a registration code.
// @Summary Send verification code
// @Description Generates a 6-character code valid for 10 minutes and emails it. A new request replaces the previous code.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body handlers.SendVerificationCodeRequest true "Email to verify"
// @Success 200 {object} handlers.MessageResponse "Verification code sent to email."
// @Failure 400 {object} handlers.MessageResponse "Email is required"
// @Failure 500 {object} handlers.MessageResponse "Error sending verification code"
// @Router /send-verification-code [post]
func NewSendVerificationCodeHandler(svc VerificationCodeSender) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SendVerificationCodeRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeMessage(w, http.StatusBadRequest, "Email is required")
			return
		}

		if err := svc.RequestVerificationCode(r.Context(), req.Email); err != nil {
			switch {
			case errors.Is(err, services.ErrValidation):
				writeMessage(w, http.StatusBadRequest, "Email is required")
			default:
				logger.Log.Errorw("send verification code failed", "request_id", middlewares.GetRequestID(r.Context()), "err", err)
				writeMessage(w, http.StatusInternalServerError, "Error sending verification code")
			}
			return
		}

		writeMessage(w, http.StatusOK, "Verification code sent to email.")
	}
}
