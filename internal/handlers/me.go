//go:generate mockgen -source=me.go -destination=mock_me.go -package=handlers

package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-auth-service/internal/logger"
	"github.com/sbilibin2017/gw-auth-service/internal/middlewares"
	"github.com/sbilibin2017/gw-auth-service/internal/models"
	"github.com/sbilibin2017/gw-auth-service/internal/services"
)

// Profiler returns the public data of a user.
type Profiler interface {
	Me(ctx context.Context, userID uuid.UUID) (*models.UserSummary, error)
}

// NewMeHandler returns an HTTP handler for the authenticated user's profile.
// @Summary Current user
// @Description Returns the user identified by the bearer token
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.UserSummary "Current user"
// @Failure 401 "Missing or invalid token"
// @Failure 404 {object} handlers.MessageResponse "User not found"
// @Failure 500 {object} handlers.MessageResponse "Internal server error"
// @Router /me [get]
func NewMeHandler(svc Profiler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middlewares.GetUserIDFromContext(r.Context())
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		summary, err := svc.Me(r.Context(), userID)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrUserNotFound):
				writeMessage(w, http.StatusNotFound, "User not found")
			default:
				logger.Log.Errorw("get current user failed", "request_id", middlewares.GetRequestID(r.Context()), "user_id", userID, "err", err)
				writeMessage(w, http.StatusInternalServerError, "Internal server error")
			}
			return
		}

		writeJSON(w, http.StatusOK, summary)
	}
}
