package handlers

import (
	"errors"
	"net/http"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/sbilibin2017/gw-auth-service/internal/logger"
	"github.com/sbilibin2017/gw-auth-service/internal/middlewares"
	"github.com/sbilibin2017/gw-auth-service/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestRegisterHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockRegisterer(ctrl)
	validBody := `{"username":"alice","email":"a@x.com","password":"secret","code":"a1b2c3"}`

	tests := []struct {
		name            string
		body            string
		mockSetup       func()
		expectedCode    int
		expectedMessage string
	}{
		{
			name: "success",
			body: validBody,
			mockSetup: func() {
				mockSvc.EXPECT().Register(gomock.Any(), "alice", "a@x.com", "secret", "a1b2c3").Return(nil)
			},
			expectedCode:    http.StatusCreated,
			expectedMessage: "User registered successfully",
		},
		{
			name:            "invalid JSON",
			body:            "{invalid json}",
			mockSetup:       func() {},
			expectedCode:    http.StatusBadRequest,
			expectedMessage: "All fields are required",
		},
		{
			name: "missing fields",
			body: `{"username":"alice"}`,
			mockSetup: func() {
				mockSvc.EXPECT().Register(gomock.Any(), "alice", "", "", "").Return(services.ErrValidation)
			},
			expectedCode:    http.StatusBadRequest,
			expectedMessage: "All fields are required",
		},
		{
			name: "invalid code",
			body: validBody,
			mockSetup: func() {
				mockSvc.EXPECT().Register(gomock.Any(), "alice", "a@x.com", "secret", "a1b2c3").
					Return(services.ErrInvalidOrExpiredCode)
			},
			expectedCode:    http.StatusBadRequest,
			expectedMessage: "Invalid or expired verification code",
		},
		{
			name: "user already exists",
			body: validBody,
			mockSetup: func() {
				mockSvc.EXPECT().Register(gomock.Any(), "alice", "a@x.com", "secret", "a1b2c3").
					Return(services.ErrUserAlreadyExists)
			},
			expectedCode:    http.StatusBadRequest,
			expectedMessage: "User already exists",
		},
		{
			name: "password too long",
			body: validBody,
			mockSetup: func() {
				mockSvc.EXPECT().Register(gomock.Any(), "alice", "a@x.com", "secret", "a1b2c3").
					Return(services.ErrPasswordTooLong)
			},
			expectedCode:    http.StatusBadRequest,
			expectedMessage: "Password must be at most 72 bytes",
		},
		{
			name: "internal error",
			body: validBody,
			mockSetup: func() {
				mockSvc.EXPECT().Register(gomock.Any(), "alice", "a@x.com", "secret", "a1b2c3").
					Return(errors.New("db error"))
			},
			expectedCode:    http.StatusInternalServerError,
			expectedMessage: "Error registering user",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()

			w := doPost(NewRegisterHandler(mockSvc), "/register", tt.body)

			assert.Equal(t, tt.expectedCode, w.Code)
			assert.Equal(t, map[string]any{"message": tt.expectedMessage}, decodeBody(t, w))
		})
	}
}

func TestRegisterHandler_ErrorLogCarriesRequestID(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	originalLog := logger.Log
	logger.Log = zap.New(core).Sugar()
	defer func() { logger.Log = originalLog }()

	ctrl := gomock.NewController(t)
	mockSvc := NewMockRegisterer(ctrl)
	mockSvc.EXPECT().Register(gomock.Any(), "alice", "a@x.com", "secret", "a1b2c3").Return(errors.New("db error"))

	h := middlewares.LoggingMiddleware(NewRegisterHandler(mockSvc))
	w := doPost(h, "/register", `{"username":"alice","email":"a@x.com","password":"secret","code":"a1b2c3"}`)
	require.Equal(t, http.StatusInternalServerError, w.Code)

	entries := logs.FilterMessage("register failed").All()
	require.Len(t, entries, 1)
	reqID := w.Header().Get("X-Request-ID")
	require.NotEmpty(t, reqID)
	assert.Equal(t, reqID, entries[0].ContextMap()["request_id"])
}
