package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/sbilibin2017/gw-auth-service/internal/models"
	"github.com/sbilibin2017/gw-auth-service/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockLoginer(ctrl)

	t.Run("success", func(t *testing.T) {
		mockSvc.EXPECT().Login(gomock.Any(), "a@x.com", "secret").Return(&models.LoginResult{
			Token:     "JWT_TOKEN",
			ExpiresIn: 21600,
			User:      models.UserSummary{ID: "42", Username: "alice", Email: "a@x.com"},
		}, nil)

		w := doPost(NewLoginHandler(mockSvc), "/login", `{"email":"a@x.com","password":"secret"}`)

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t,
			`{"token":"JWT_TOKEN","expiresIn":21600,"user":{"id":"42","username":"alice","email":"a@x.com"}}`,
			w.Body.String(),
		)

		var raw map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw))
		assert.NotContains(t, string(raw["user"]), "password")
	})

	tests := []struct {
		name            string
		body            string
		mockSetup       func()
		expectedCode    int
		expectedMessage string
	}{
		{
			name:            "invalid JSON",
			body:            "{invalid json}",
			mockSetup:       func() {},
			expectedCode:    http.StatusBadRequest,
			expectedMessage: "Email and password are required",
		},
		{
			name: "missing fields",
			body: `{"email":"a@x.com"}`,
			mockSetup: func() {
				mockSvc.EXPECT().Login(gomock.Any(), "a@x.com", "").Return(nil, services.ErrValidation)
			},
			expectedCode:    http.StatusBadRequest,
			expectedMessage: "Email and password are required",
		},
		{
			name: "user not found",
			body: `{"email":"nobody@x.com","password":"secret"}`,
			mockSetup: func() {
				mockSvc.EXPECT().Login(gomock.Any(), "nobody@x.com", "secret").Return(nil, services.ErrUserNotFound)
			},
			expectedCode:    http.StatusBadRequest,
			expectedMessage: "User not found",
		},
		{
			name: "wrong password",
			body: `{"email":"a@x.com","password":"wrong"}`,
			mockSetup: func() {
				mockSvc.EXPECT().Login(gomock.Any(), "a@x.com", "wrong").Return(nil, services.ErrInvalidCredentials)
			},
			expectedCode:    http.StatusBadRequest,
			expectedMessage: "Invalid credentials",
		},
		{
			name: "internal error",
			body: `{"email":"a@x.com","password":"secret"}`,
			mockSetup: func() {
				mockSvc.EXPECT().Login(gomock.Any(), "a@x.com", "secret").Return(nil, errors.New("db error"))
			},
			expectedCode:    http.StatusInternalServerError,
			expectedMessage: "Error logging in",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()

			w := doPost(NewLoginHandler(mockSvc), "/login", tt.body)

			assert.Equal(t, tt.expectedCode, w.Code)
			assert.Equal(t, map[string]any{"message": tt.expectedMessage}, decodeBody(t, w))
		})
	}
}
