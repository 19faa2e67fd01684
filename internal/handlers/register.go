//go:generate mockgen -source=register.go -destination=mock_register.go -package=handlers

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

// Registerer defines the interface that the service must implement.
type Registerer interface {
	Register(ctx context.Context, username, email, password, code string) error
}

// RegisterRequest represents the JSON body for user registration
// swagger:model RegisterRequest
type RegisterRequest struct {
	// Username
	// required: true
	// default: john_doe
	Username string `json:"username"`

	// Email
	// required: true
	// default: john@example.com
	Email string `json:"email"`

	// Password
	// required: true
	// default: secret123
	Password string `json:"password"`

	// Verification code from the email
	// required: true
	// default: a1b2c3
	Code string `json:"code"`
}

// NewRegisterHandler returns an HTTP handler for user registration.
// @Summary Register a new user
// @Description Creates a user account if the verification code sent to the email is valid. The code is consumed.
// @Tags auth
// @Accept json
// @Produce json
// @Param registerRequest body handlers.RegisterRequest true "User registration request"
// @Success 201 {object} handlers.MessageResponse "User registered successfully"
// @Failure 400 {object} handlers.MessageResponse "Missing fields, invalid code, password too long or user already exists"
// @Failure 500 {object} handlers.MessageResponse "Error registering user"
// @Router /register [post]
func NewRegisterHandler(svc Registerer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeMessage(w, http.StatusBadRequest, "All fields are required")
			return
		}

		err := svc.Register(r.Context(), req.Username, req.Email, req.Password, req.Code)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrValidation):
				writeMessage(w, http.StatusBadRequest, "All fields are required")
			case errors.Is(err, services.ErrInvalidOrExpiredCode):
				writeMessage(w, http.StatusBadRequest, "Invalid or expired verification code")
			case errors.Is(err, services.ErrUserAlreadyExists):
				writeMessage(w, http.StatusBadRequest, "User already exists")
			case errors.Is(err, services.ErrPasswordTooLong):
				writeMessage(w, http.StatusBadRequest, "Password must be at most 72 bytes")
			default:
				logger.Log.Errorw("register failed", "request_id", middlewares.GetRequestID(r.Context()), "err", err)
				writeMessage(w, http.StatusInternalServerError, "Error registering user")
			}
			return
		}

		writeMessage(w, http.StatusCreated, "User registered successfully")
	}
}
