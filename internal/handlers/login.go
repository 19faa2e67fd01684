//go:generate mockgen -source=login.go -destination=mock_login.go -package=handlers

package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sbilibin2017/gw-auth-service/internal/logger"
	"github.com/sbilibin2017/gw-auth-service/internal/middlewares"
	"github.com/sbilibin2017/gw-auth-service/internal/models"
	"github.com/sbilibin2017/gw-auth-service/internal/services"
)

// Loginer defines the interface that the login service must implement.
type Loginer interface {
	Login(ctx context.Context, email, password string) (*models.LoginResult, error)
}

// LoginRequest represents the JSON body for user login
// swagger:model LoginRequest
type LoginRequest struct {
	// Email
	// required: true
	// default: john@example.com
	Email string `json:"email"`

	// Password
	// required: true
	// default: secret123
	Password string `json:"password"`
}

// LoginResponse represents a successful login response
// swagger:model LoginResponse
type LoginResponse struct {
	// JWT token
	// default: JWT_TOKEN
	Token string `json:"token"`

	// Token validity in seconds
	// default: 21600
	ExpiresIn int64 `json:"expiresIn"`

	// Authenticated user
	User models.UserSummary `json:"user"`
}

// NewLoginHandler returns an HTTP handler for user login.
// @Summary User login
// @Description Authenticate user and return JWT token
// @Tags auth
// @Accept json
// @Produce json
// @Param loginRequest body handlers.LoginRequest true "Login Request"
// @Success 200 {object} handlers.LoginResponse "JWT token returned"
// @Failure 400 {object} handlers.MessageResponse "Missing fields, unknown user or invalid credentials"
// @Failure 500 {object} handlers.MessageResponse "Error logging in"
// @Router /login [post]
func NewLoginHandler(svc Loginer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeMessage(w, http.StatusBadRequest, "Email and password are required")
			return
		}

		res, err := svc.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrValidation):
				writeMessage(w, http.StatusBadRequest, "Email and password are required")
			case errors.Is(err, services.ErrUserNotFound):
				writeMessage(w, http.StatusBadRequest, "User not found")
			case errors.Is(err, services.ErrInvalidCredentials):
				writeMessage(w, http.StatusBadRequest, "Invalid credentials")
			default:
				logger.Log.Errorw("login failed", "request_id", middlewares.GetRequestID(r.Context()), "err", err)
				writeMessage(w, http.StatusInternalServerError, "Error logging in")
			}
			return
		}

		writeJSON(w, http.StatusOK, LoginResponse{
			Token:     res.Token,
			ExpiresIn: res.ExpiresIn,
			User:      res.User,
		})
	}
}
